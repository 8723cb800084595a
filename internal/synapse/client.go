package synapse

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/pkg/signature"
)

const DefaultClientTimeout = 30 * time.Second

// ClientConfig configures the signing transport client.
type ClientConfig struct {
	Timeout     time.Duration
	ColdkeyName string
	HotkeyName  string
}

// Client sends signed, zstd-compressed requests to miner axons.
type Client struct {
	config            *ClientConfig
	restyClient       *resty.Client
	encMu             sync.Mutex
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	signatureProvider *signature.Provider
	hotkey            string
}

// NewClient creates a transport client. When a hotkey name is configured the
// wallet keypair is loaded so requests can be signed.
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		config = &ClientConfig{}
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}

	restyClient := resty.New().
		SetTimeout(config.Timeout).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeader("Accept-Encoding", "zstd")

	client := &Client{
		config:      config,
		restyClient: restyClient,
	}

	if config.HotkeyName != "" {
		keypair, err := signature.LoadKeypairFromHotkey(config.ColdkeyName, config.HotkeyName)
		if err != nil {
			return nil, fmt.Errorf("failed to load keypair: %w", err)
		}

		signProvider, err := signature.NewProvider(keypair)
		if err != nil {
			return nil, fmt.Errorf("failed to create signature provider: %w", err)
		}

		address, err := signature.ToSS58Address(keypair)
		if err != nil {
			return nil, fmt.Errorf("failed to encode hotkey address: %w", err)
		}

		client.signatureProvider = signProvider
		client.hotkey = address
	}

	var buf bytes.Buffer
	encoder, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	client.encoder = encoder

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	client.decoder = decoder

	return client, nil
}

// Close releases the compression codecs.
func (c *Client) Close() {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
}

// Hotkey returns the client's SS58 hotkey address, empty when unsigned.
func (c *Client) Hotkey() string {
	return c.hotkey
}

// CreateAuthParams signs the standard ownership message with the wallet
// hotkey.
func (c *Client) CreateAuthParams() (AuthParams, error) {
	if c.signatureProvider == nil {
		return AuthParams{}, fmt.Errorf("signature provider not initialized, hotkey name required in ClientConfig")
	}

	message := "I swear that I am the owner of hotkey:" + c.hotkey
	sig, err := c.signatureProvider.Sign(message)
	if err != nil {
		return AuthParams{}, fmt.Errorf("failed to sign message: %w", err)
	}

	return AuthParams{
		Hotkey:    c.hotkey,
		Message:   message,
		Signature: sig,
	}, nil
}

// compress serializes access to the shared encoder so SendMany can fan out
// safely.
func (c *Client) compress(data []byte) ([]byte, error) {
	c.encMu.Lock()
	defer c.encMu.Unlock()

	var buf bytes.Buffer
	c.encoder.Reset(&buf)
	if _, err := c.encoder.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress request: %w", err)
	}
	if err := c.encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize compression: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Client) buildHeaders(auth AuthParams) map[string]string {
	return map[string]string{
		"Content-Type":     "application/json",
		"Accept-Encoding":  "zstd",
		"Content-Encoding": "zstd",
		SignatureHeader:    auth.Signature,
		MessageHeader:      auth.Message,
		HotkeyHeader:       auth.Hotkey,
	}
}

// Send posts a signed request to baseURL+path and decodes the enveloped
// response body.
func Send[Req any, Resp any](ctx context.Context, c *Client, baseURL, path string, request Req, auth AuthParams) (Resp, error) {
	var zero Resp

	endpoint := strings.TrimSuffix(baseURL, "/") + path

	jsonData, err := sonic.Marshal(request)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal request: %w", err)
	}

	compressed, err := c.compress(jsonData)
	if err != nil {
		return zero, err
	}

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetHeaders(c.buildHeaders(auth)).
		SetBody(compressed).
		Post(endpoint)
	if err != nil {
		return zero, fmt.Errorf("failed to make request: %w", err)
	}

	responseBody := resp.Body()
	if resp.Header().Get("Content-Encoding") == "zstd" {
		decompressed, err := c.decoder.DecodeAll(responseBody, nil)
		if err != nil {
			return zero, fmt.Errorf("failed to decompress response: %w", err)
		}
		responseBody = decompressed
	}

	if resp.IsError() {
		return zero, fmt.Errorf("HTTP error %d: %s", resp.StatusCode(), string(responseBody))
	}

	var envelope StdResponse[Resp]
	if err := sonic.Unmarshal(responseBody, &envelope); err != nil {
		return zero, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if envelope.Error != nil {
		return zero, fmt.Errorf("server error: %s", *envelope.Error)
	}

	return envelope.Body, nil
}

// SendMany fans one request type out to many axons concurrently. The result
// and error slices are index-aligned with baseURLs.
func SendMany[Req any, Resp any](ctx context.Context, c *Client, baseURLs []string, path string, requests []Req, auth AuthParams) ([]Resp, []error) {
	responses := make([]Resp, len(baseURLs))
	errs := make([]error, len(baseURLs))

	if len(baseURLs) != len(requests) {
		log.Error().Msg("baseURLs and requests must have the same length")
		for i := range errs {
			errs[i] = fmt.Errorf("baseURLs and requests must have the same length")
		}
		return responses, errs
	}

	var wg sync.WaitGroup
	wg.Add(len(baseURLs))
	for i, url := range baseURLs {
		go func(index int, url string, request Req) {
			defer wg.Done()
			resp, err := Send[Req, Resp](ctx, c, url, path, request, auth)
			if err != nil {
				errs[index] = fmt.Errorf("error in request %d: %w", index, err)
				return
			}
			responses[index] = resp
		}(i, url, requests[i])
	}
	wg.Wait()

	return responses, errs
}
