// Package miner implements the miner node runtime.
package miner

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/storynet-labs/storynet/internal/config"
	"github.com/storynet-labs/storynet/internal/generator"
	"github.com/storynet-labs/storynet/internal/subtensor"
	"github.com/storynet-labs/storynet/internal/synapse"
	"github.com/storynet-labs/storynet/internal/utils/chainutils"
	"github.com/storynet-labs/storynet/pkg/signature"
)

// NewMiner builds the miner runtime. When no explicit axon address is
// configured the external IP is discovered exactly once; a discovery
// failure aborts startup so a bad advertised address never reaches the
// chain.
func NewMiner(cfg *config.AppConfig, chain subtensor.ChainClient, gen generator.StoryGenerator, resolver IPResolver, hotkey string) (*Miner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if resolver == nil {
		resolver = EchoResolver{}
	}

	ipInt, err := resolveAdvertisedIP(cfg.Address, resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve advertised address: %w", err)
	}

	externalPort := cfg.ExternalPort
	if externalPort == 0 {
		externalPort = cfg.Port
	}

	axon := subtensor.ServeAxonParams{
		Version: 1,
		IP:      int(ipInt),
		Port:    externalPort,
		IPType:  0, // IPv4
		Netuid:  cfg.Netuid,
	}

	srv := synapse.NewServer(&synapse.ServerConfig{
		Host:      synapse.DefaultServerHost,
		Port:      cfg.Port,
		BodyLimit: cfg.BodySizeLimit,
	}, signature.NewVerifier())

	ctx, cancel := context.WithCancel(context.Background())
	m := &Miner{
		cfg:    cfg,
		srv:    srv,
		chain:  chain,
		gen:    gen,
		hotkey: hotkey,
		axon:   axon,
		ctx:    ctx,
		cancel: cancel,
	}
	m.registerRoutes()

	return m, nil
}

// resolveAdvertisedIP turns the configured address into the integer form
// the chain expects. An empty address triggers a single external discovery.
func resolveAdvertisedIP(address string, resolver IPResolver) (uint32, error) {
	if address == "" {
		ipInt, err := resolver.ExternalIPInt()
		if err != nil {
			return 0, fmt.Errorf("external ip discovery failed: %w", err)
		}
		return ipInt, nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		addrs, err := net.LookupIP(address)
		if err != nil || len(addrs) == 0 {
			return 0, fmt.Errorf("cannot resolve address %q", address)
		}
		ip = addrs[0]
	}

	ipInt, err := chainutils.IPv4ToInt(ip)
	if err != nil {
		return 0, fmt.Errorf("address %q is not ipv4: %w", address, err)
	}
	return ipInt, nil
}

func (m *Miner) registerRoutes() {
	synapse.ServeRoute(m.srv, synapse.GenerateRoute, func(c *fiber.Ctx, req synapse.GenerateRequest) (synapse.GenerateResponse, error) {
		result, err := m.gen.Generate(c.Context(), req.Input)
		if err != nil {
			return synapse.GenerateResponse{}, err
		}
		return synapse.GenerateResponse{Result: *result}, nil
	})

	synapse.ServeRoute(m.srv, synapse.HeartbeatRoute, func(c *fiber.Ctx, req synapse.HeartbeatRequest) (synapse.HeartbeatResponse, error) {
		log.Debug().Str("validator", req.ValidatorHotkey).Msg("heartbeat received")
		return synapse.HeartbeatResponse{
			MinerHotkey: m.hotkey,
			Timestamp:   time.Now().Unix(),
		}, nil
	})

	synapse.ServeHealth(m.srv, func(c *fiber.Ctx) (synapse.HealthResponse, error) {
		info := m.gen.ModelInfo()
		healthy := m.gen.HealthCheck(c.Context())
		status := "ok"
		if !healthy {
			status = "degraded"
		}
		return synapse.HealthResponse{
			Status:  status,
			Mode:    m.gen.Mode(),
			Model:   info.Name,
			Healthy: healthy,
		}, nil
	})
}

// AxonParams returns the endpoint announcement built at construction.
func (m *Miner) AxonParams() subtensor.ServeAxonParams {
	return m.axon
}

// Run announces the axon on chain and starts the server.
func (m *Miner) Run() error {
	resp, err := m.chain.ServeAxon(m.axon)
	if err != nil {
		return fmt.Errorf("failed to serve axon: %w", err)
	}
	log.Info().
		Str("extrinsic", resp.Data).
		Int("port", m.axon.Port).
		Int("netuid", m.axon.Netuid).
		Msg("axon registered on chain")

	go func() {
		if err := m.srv.Start(m.ctx); err != nil {
			log.Error().Err(err).Msg("failed to start miner server")
		}
	}()
	log.Info().Int("port", m.cfg.Port).Msg("miner server started")
	return nil
}

// Stop shuts the miner down.
func (m *Miner) Stop() {
	if m.cancel != nil {
		m.cancel()
		// give some time for shutdown
		time.Sleep(100 * time.Millisecond)
	}
	log.Info().Msg("miner stopped")
}
