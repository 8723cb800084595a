// Package subtensor provides a Bittensor chain client that talks to a local
// subtensor gateway sidecar over HTTP.
package subtensor

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/internal/config"
)

// ChainClient is the subset of gateway operations the node runtimes use.
type ChainClient interface {
	GetLatestBlock() (LatestBlockResponse, error)
	GetMetagraph(netuid int) (SubnetMetagraphResponse, error)
	GetSubnetHyperparams(netuid int) (SubnetHyperparamsResponse, error)
	ServeAxon(params ServeAxonParams) (ExtrinsicHashResponse, error)
	SetWeights(params SetWeightsParams) (ExtrinsicHashResponse, error)
	SignMessage(params SignMessageParams) (SignMessageResponse, error)
	VerifyMessage(params VerifyMessageParams) (VerifyMessageResponse, error)
	GetKeyringPair() (KeyringPairInfoResponse, error)
}

// Client is a resty-backed gateway client.
type Client struct {
	client  *resty.Client
	BaseURL string
}

// NewClient creates a gateway client from the environment configuration.
func NewClient(cfg *config.GatewayEnvConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	url := fmt.Sprintf("http://%s:%s", cfg.GatewayHost, cfg.GatewayPort)

	client := resty.New().
		SetBaseURL(url).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTimeout(15 * time.Second)

	return &Client{client: client, BaseURL: url}, nil
}

func getJSON[T any](client *resty.Client, path string) (Response[T], error) {
	var result Response[T]
	resp, err := client.R().
		SetResult(&result).
		Get(path)
	if err != nil {
		return Response[T]{}, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("path", path).Str("body", resp.String()).Msg("gateway get non-2xx")
		return Response[T]{}, fmt.Errorf("request returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error != nil {
		return Response[T]{}, fmt.Errorf("response error: %v", result.Error)
	}
	return result, nil
}

func postJSON[T any](client *resty.Client, path string, body any) (Response[T], error) {
	var result Response[T]
	resp, err := client.R().
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return Response[T]{}, fmt.Errorf("post %s: %w", path, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("path", path).Str("body", resp.String()).Msg("gateway post non-2xx")
		return Response[T]{}, fmt.Errorf("request returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error != nil {
		return Response[T]{}, fmt.Errorf("response error: %v", result.Error)
	}
	return result, nil
}

// GetLatestBlock retrieves the latest block details from the chain.
func (c *Client) GetLatestBlock() (LatestBlockResponse, error) {
	return getJSON[LatestBlock](c.client, "/chain/latest-block")
}

// GetMetagraph fetches the subnet metagraph for the given netuid.
func (c *Client) GetMetagraph(netuid int) (SubnetMetagraphResponse, error) {
	return getJSON[SubnetMetagraph](c.client, fmt.Sprintf("/chain/subnet-metagraph/%d", netuid))
}

// GetSubnetHyperparams fetches the subnet hyperparameters for the given netuid.
func (c *Client) GetSubnetHyperparams(netuid int) (SubnetHyperparamsResponse, error) {
	return getJSON[SubnetHyperparams](c.client, fmt.Sprintf("/chain/subnet-hyperparameters/%d", netuid))
}

// ServeAxon announces the miner's endpoint on chain and returns the
// extrinsic hash.
func (c *Client) ServeAxon(params ServeAxonParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/serve-axon", params)
}

// SetWeights submits subnet weights and returns the extrinsic hash.
func (c *Client) SetWeights(params SetWeightsParams) (ExtrinsicHashResponse, error) {
	return postJSON[string](c.client, "/chain/set-weights", params)
}

// SignMessage signs an arbitrary message with the node's keypair.
func (c *Client) SignMessage(params SignMessageParams) (SignMessageResponse, error) {
	return postJSON[SignMessage](c.client, "/substrate/sign-message/sign", params)
}

// VerifyMessage verifies a signed message against a signee address.
func (c *Client) VerifyMessage(params VerifyMessageParams) (VerifyMessageResponse, error) {
	return postJSON[VerifyMessage](c.client, "/substrate/sign-message/verify", params)
}

// GetKeyringPair returns information about the node's keyring pair.
func (c *Client) GetKeyringPair() (KeyringPairInfoResponse, error) {
	return getJSON[KeyringPairInfo](c.client, "/substrate/keyring-pair-info")
}
