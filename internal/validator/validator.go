package validator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/internal/config"
	"github.com/storynet-labs/storynet/internal/scheduler"
	"github.com/storynet-labs/storynet/internal/subtensor"
	"github.com/storynet-labs/storynet/internal/synapse"
	"github.com/storynet-labs/storynet/internal/utils/redis"
	"github.com/storynet-labs/storynet/pkg/signature"
)

// Validator coordinates probe rounds and on-chain state for the subnet.
type Validator struct {
	Chain  subtensor.ChainClient
	Redis  redis.RedisInterface
	Prober AxonProber

	// Chain global state
	LatestBlock      int64
	MetagraphData    MetagraphData
	ValidatorHotkey  string
	LatestScoresData ScoresData

	IntervalConfig *config.IntervalConfig
	Config         *config.AppConfig

	metagraphCallback *scheduler.BlockCallback
	weightsCallback   *scheduler.BlockCallback

	srv *synapse.Server

	Ctx    context.Context
	Cancel context.CancelFunc
	Wg     sync.WaitGroup

	mu                sync.Mutex
	probeRoundRunning atomic.Bool
}

// NewValidator constructs a Validator with intervals based on environment.
// Persisted scores are loaded from the configured scores file, which is
// created empty when missing.
func NewValidator(cfg *config.AppConfig, chain subtensor.ChainClient, r redis.RedisInterface, prober AxonProber) (*Validator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	intervalConfig := config.NewIntervalConfig(cfg.Environment)

	keyringData, err := chain.GetKeyringPair()
	if err != nil {
		return nil, fmt.Errorf("failed to get validator hotkey: %w", err)
	}
	hotkey := keyringData.Data.KeyringPair.Address
	log.Info().Msgf("Validator hotkey %s loaded!", hotkey)

	latestScoresData, err := loadScores(cfg.ScoresFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	log.Info().Msgf("Loaded latest scores from file: step %d, %d hotkeys", latestScoresData.Step, len(latestScoresData.Hotkeys))

	ctx, cancel := context.WithCancel(context.Background())

	v := &Validator{
		Chain:  chain,
		Redis:  r,
		Prober: prober,

		ValidatorHotkey:  hotkey,
		LatestScoresData: latestScoresData,

		IntervalConfig: intervalConfig,
		Config:         cfg,

		Ctx:    ctx,
		Cancel: cancel,
	}

	v.metagraphCallback = scheduler.NewBlockCallback(intervalConfig.MetagraphBlocks, v.syncMetagraph)
	v.weightsCallback = scheduler.NewBlockCallback(intervalConfig.WeightBlocks, v.submitWeights)

	v.srv = synapse.NewServer(&synapse.ServerConfig{
		Host: synapse.DefaultServerHost,
		Port: cfg.ValidatorPort,
	}, signature.NewVerifier())
	synapse.ServeHealth(v.srv, func(c *fiber.Ctx) (synapse.HealthResponse, error) {
		return synapse.HealthResponse{Status: "ok", Healthy: true}, nil
	})

	return v, nil
}

// runTicker runs a function periodically until the provided context is
// canceled. fn is executed in its own goroutine to ensure the ticker loop
// can exit quickly when the context is canceled.
func (v *Validator) runTicker(ctx context.Context, d time.Duration, fn func()) {
	defer v.Wg.Done()
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			go fn()
		}
	}
}

// Start kicks off the block loop, probe rounds, and the health server.
func (v *Validator) Start() {
	// seed chain state before the tickers take over
	v.syncBlock()
	if err := v.syncMetagraph(); err != nil {
		log.Error().Err(err).Msg("initial metagraph sync failed")
	}

	v.Wg.Add(1)
	go v.runTicker(v.Ctx, v.IntervalConfig.BlockInterval, func() {
		v.syncBlock()
	})

	v.Wg.Add(1)
	go v.runTicker(v.Ctx, v.IntervalConfig.ProbeRoundInterval, func() {
		v.sendProbeRound()
	})

	go func() {
		if err := v.srv.Start(v.Ctx); err != nil {
			log.Error().Err(err).Msg("validator server stopped")
		}
	}()
}

// Stop cancels background routines and waits for them to finish.
func (v *Validator) Stop() {
	if v.Cancel != nil {
		v.Cancel()
	}
	v.Wg.Wait()
}
