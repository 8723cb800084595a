package miner

import (
	"context"

	"github.com/storynet-labs/storynet/internal/config"
	"github.com/storynet-labs/storynet/internal/generator"
	"github.com/storynet-labs/storynet/internal/subtensor"
	"github.com/storynet-labs/storynet/internal/synapse"
	"github.com/storynet-labs/storynet/internal/utils/chainutils"
)

// IPResolver discovers the miner's external IPv4 address. It exists so the
// discovery step can be observed and faked in tests.
type IPResolver interface {
	ExternalIPInt() (uint32, error)
}

// EchoResolver resolves through the public address-echo services.
type EchoResolver struct{}

func (EchoResolver) ExternalIPInt() (uint32, error) {
	return chainutils.GetExternalIPInt()
}

// Miner serves the story generation axon and announces it on chain.
type Miner struct {
	cfg    *config.AppConfig
	srv    *synapse.Server
	chain  subtensor.ChainClient
	gen    generator.StoryGenerator
	hotkey string
	axon   subtensor.ServeAxonParams

	ctx    context.Context
	cancel context.CancelFunc
}
