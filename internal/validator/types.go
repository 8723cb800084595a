// Package validator implements the validator runtime: block and metagraph
// sync, miner probe rounds, score persistence, and weight submission.
package validator

import (
	"context"
	"time"

	"github.com/storynet-labs/storynet/internal/subtensor"
	"github.com/storynet-labs/storynet/internal/synapse"
)

const (
	redisProbeHistoryKey = "validator:probe_history"
	probeHistoryMaxLen   = 1000
)

// ScoresData is the persisted score state, index-aligned with Hotkeys.
type ScoresData struct {
	Step    int       `json:"step"`
	Hotkeys []string  `json:"hotkeys"`
	Scores  []float64 `json:"scores"`
}

// MetagraphData holds the current subnet metagraph and derived runtime data.
type MetagraphData struct {
	Metagraph              subtensor.SubnetMetagraph
	CurrentActiveMinerUids []int64
}

// AxonProber sends a single liveness probe to a miner axon. It exists so
// probe rounds can be tested without a transport.
type AxonProber interface {
	ProbeAxon(ctx context.Context, baseURL string, req synapse.HeartbeatRequest) (synapse.HeartbeatResponse, time.Duration, error)
}

// probeOutcome pairs a probed miner with the raw result of its probe.
type probeOutcome struct {
	Hotkey  string        `json:"hotkey"`
	UID     int64         `json:"uid"`
	Success bool          `json:"success"`
	Latency time.Duration `json:"latency"`
}
