package miner

import (
	"context"
	"errors"
	"testing"

	"github.com/storynet-labs/storynet/internal/config"
	"github.com/storynet-labs/storynet/internal/generator"
)

type countingResolver struct {
	calls int
	ip    uint32
	err   error
}

func (r *countingResolver) ExternalIPInt() (uint32, error) {
	r.calls++
	return r.ip, r.err
}

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, _ generator.GenerationInput) (*generator.GenerationResult, error) {
	return &generator.GenerationResult{GeneratedContent: "stub"}, nil
}
func (stubGenerator) Mode() string                     { return generator.ModeLocal }
func (stubGenerator) ModelInfo() generator.ModelInfo   { return generator.ModelInfo{Name: "stub"} }
func (stubGenerator) HealthCheck(_ context.Context) bool { return true }

func testConfig() *config.AppConfig {
	cfg := &config.AppConfig{}
	cfg.Netuid = 81
	cfg.Port = 8091
	cfg.BodySizeLimit = 1024
	return cfg
}

func TestNewMinerDiscoversExactlyOnce(t *testing.T) {
	resolver := &countingResolver{ip: 0x01020304}

	m, err := NewMiner(testConfig(), nil, stubGenerator{}, resolver, "miner-hotkey")
	if err != nil {
		t.Fatalf("new miner: %v", err)
	}
	defer m.Stop()

	if resolver.calls != 1 {
		t.Errorf("discovery should run exactly once, ran %d times", resolver.calls)
	}

	axon := m.AxonParams()
	if axon.IP != 0x01020304 {
		t.Errorf("discovered ip not used: got %#x", axon.IP)
	}
	if axon.Port != 8091 {
		t.Errorf("external port should default to the axon port, got %d", axon.Port)
	}
	if axon.Netuid != 81 {
		t.Errorf("netuid not forwarded, got %d", axon.Netuid)
	}
}

func TestNewMinerDiscoveryFailureAborts(t *testing.T) {
	resolver := &countingResolver{err: errors.New("all endpoints down")}

	_, err := NewMiner(testConfig(), nil, stubGenerator{}, resolver, "miner-hotkey")
	if err == nil {
		t.Fatal("discovery failure must abort startup")
	}
}

func TestNewMinerExplicitAddressSkipsDiscovery(t *testing.T) {
	resolver := &countingResolver{}

	cfg := testConfig()
	cfg.Address = "203.0.113.7"

	m, err := NewMiner(cfg, nil, stubGenerator{}, resolver, "miner-hotkey")
	if err != nil {
		t.Fatalf("new miner: %v", err)
	}
	defer m.Stop()

	if resolver.calls != 0 {
		t.Errorf("explicit address should skip discovery, ran %d times", resolver.calls)
	}
	if m.AxonParams().IP != 0xCB007107 {
		t.Errorf("unexpected ip: %#x", m.AxonParams().IP)
	}
}

func TestNewMinerExternalPortOverride(t *testing.T) {
	cfg := testConfig()
	cfg.ExternalPort = 9000

	m, err := NewMiner(cfg, nil, stubGenerator{}, &countingResolver{ip: 1}, "miner-hotkey")
	if err != nil {
		t.Fatalf("new miner: %v", err)
	}
	defer m.Stop()

	if m.AxonParams().Port != 9000 {
		t.Errorf("external port override not applied, got %d", m.AxonParams().Port)
	}
}

func TestResolveAdvertisedIPUnresolvable(t *testing.T) {
	if _, err := resolveAdvertisedIP("host.invalid", &countingResolver{}); err == nil {
		t.Error("unresolvable hostname should error")
	}
}

func TestResolveAdvertisedIPRejectsIPv6(t *testing.T) {
	if _, err := resolveAdvertisedIP("2001:db8::1", &countingResolver{}); err == nil {
		t.Error("ipv6 address should be rejected")
	}
}
