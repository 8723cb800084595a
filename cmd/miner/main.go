package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/internal/config"
	"github.com/storynet-labs/storynet/internal/generator"
	"github.com/storynet-labs/storynet/internal/miner"
	"github.com/storynet-labs/storynet/internal/subtensor"
	"github.com/storynet-labs/storynet/internal/utils/logger"
)

func main() {
	logger.Init()
	log.Info().Msg("Starting miner...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	chain, err := subtensor.NewClient(&cfg.GatewayEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init subtensor gateway client")
	}

	keyringData, err := chain.GetKeyringPair()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load miner hotkey")
	}
	hotkey := keyringData.Data.KeyringPair.Address
	log.Info().Msgf("Miner hotkey %s loaded!", hotkey)

	gen, err := generator.Load(cfg.GeneratorConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init story generator")
	}

	m, err := miner.NewMiner(cfg, chain, gen, miner.EchoResolver{}, hotkey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct miner")
	}

	if err := m.Run(); err != nil {
		log.Fatal().Err(err).Msg("failed to start miner")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Msg("Miner is running. Press Ctrl+C to shutdown...")
	<-sigChan
	log.Info().Msg("shutdown signal received, stopping miner")

	m.Stop()
	log.Info().Msg("Miner shutdown complete")
}
