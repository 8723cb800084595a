// Package chainutils contains helpers shared by the chain-facing parts of
// the node: external address discovery, weight encoding, and metagraph
// lookups.
package chainutils

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

// Public address-echo services, tried in order until one yields a valid
// IPv4 address.
var ipEchoEndpoints = []string{
	"https://checkip.amazonaws.com",
	"https://api.ipify.org",
	"https://icanhazip.com",
}

const maxIPResponseBytes = 64

func newDiscoveryClient() *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 5 * time.Second
	rc.Logger = nil
	return rc.StandardClient()
}

// GetExternalIP queries public address-echo services and returns the
// external IPv4 address. A malformed or non-IPv4 response is an error:
// discovery must fail fast rather than hand a bad advertised address to
// the chain.
func GetExternalIP() (net.IP, error) {
	return discoverExternalIP(context.Background(), newDiscoveryClient(), ipEchoEndpoints)
}

func discoverExternalIP(ctx context.Context, client *http.Client, endpoints []string) (net.IP, error) {
	var lastErr error
	for _, endpoint := range endpoints {
		ip, err := queryIPEcho(ctx, client, endpoint)
		if err != nil {
			log.Warn().Err(err).Str("endpoint", endpoint).Msg("address discovery attempt failed")
			lastErr = err
			continue
		}
		return ip, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no address-echo endpoints configured")
	}
	return nil, fmt.Errorf("discover external ip: %w", lastErr)
}

func queryIPEcho(ctx context.Context, client *http.Client, endpoint string) (net.IP, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", endpoint, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxIPResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	ipStr := strings.TrimSpace(string(b))
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return nil, fmt.Errorf("invalid ip returned: %q", ipStr)
	}
	ip = ip.To4()
	if ip == nil {
		return nil, fmt.Errorf("non-ipv4 address returned: %s", ipStr)
	}
	return ip, nil
}

// IPv4ToInt converts an IPv4 net.IP to its big-endian uint32 representation.
func IPv4ToInt(ip net.IP) (uint32, error) {
	ip4 := ip.To4()
	if ip4 == nil {
		return 0, fmt.Errorf("not an ipv4 address")
	}
	return binary.BigEndian.Uint32(ip4), nil
}

// GetExternalIPInt discovers the external IP and returns it as uint32.
func GetExternalIPInt() (uint32, error) {
	ip, err := GetExternalIP()
	if err != nil {
		return 0, err
	}
	return IPv4ToInt(ip)
}
