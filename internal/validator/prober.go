package validator

import (
	"context"
	"time"

	"github.com/storynet-labs/storynet/internal/synapse"
)

// SynapseProber probes miner axons over the signed synapse transport.
type SynapseProber struct {
	client *synapse.Client
}

func NewSynapseProber(client *synapse.Client) *SynapseProber {
	return &SynapseProber{client: client}
}

// ProbeAxon sends one signed heartbeat and reports the round-trip latency.
func (p *SynapseProber) ProbeAxon(ctx context.Context, baseURL string, req synapse.HeartbeatRequest) (synapse.HeartbeatResponse, time.Duration, error) {
	auth, err := p.client.CreateAuthParams()
	if err != nil {
		return synapse.HeartbeatResponse{}, 0, err
	}

	start := time.Now()
	resp, err := synapse.Send[synapse.HeartbeatRequest, synapse.HeartbeatResponse](ctx, p.client, baseURL, synapse.HeartbeatRoute, req, auth)
	return resp, time.Since(start), err
}
