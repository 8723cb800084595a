package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/internal/config"
	"github.com/storynet-labs/storynet/internal/subtensor"
	"github.com/storynet-labs/storynet/internal/synapse"
	"github.com/storynet-labs/storynet/internal/utils/logger"
	"github.com/storynet-labs/storynet/internal/utils/redis"
	"github.com/storynet-labs/storynet/internal/validator"
)

func main() {
	logger.Init()
	log.Info().Msg("Starting validator...")

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

	var r redis.RedisInterface
	if rd, err := redis.NewRedis(&cfg.RedisEnvConfig); err != nil {
		log.Error().Err(err).Msg("failed to init redis client, continuing without redis")
	} else {
		r = rd
	}

	client, err := synapse.NewClient(&synapse.ClientConfig{
		Timeout:     cfg.ClientTimeout,
		ColdkeyName: cfg.WalletColdkey,
		HotkeyName:  cfg.WalletHotkey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init synapse client")
	}
	defer client.Close()

	v, err := validator.NewValidator(cfg, chain, r, validator.NewSynapseProber(client))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct validator")
	}

	// setup signal handling for graceful shutdown before starting validator
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutdown signal received, stopping validator")
		v.Stop()
	}()

	v.Start()

	// wait until validator context is cancelled (v.Stop will call Cancel())
	<-v.Ctx.Done()
	log.Info().Msg("validator stopped")
}
