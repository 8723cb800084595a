package config

import (
	"strings"
	"time"
)

// IntervalConfig groups the periodic intervals used by the validator
// runtime. Block-counted intervals (metagraph sync, weight submission) are
// expressed in blocks; the rest are wall-clock durations.
type IntervalConfig struct {
	BlockInterval      time.Duration
	ProbeRoundInterval time.Duration
	MetagraphBlocks    int
	WeightBlocks       int
}

var (
	DevIntervalConfig = &IntervalConfig{
		BlockInterval:      2 * time.Second,
		ProbeRoundInterval: 15 * time.Second,
		MetagraphBlocks:    5,
		WeightBlocks:       10,
	}
	TestIntervalConfig = &IntervalConfig{
		BlockInterval:      12 * time.Second,
		ProbeRoundInterval: 5 * time.Minute,
		MetagraphBlocks:    10,
		WeightBlocks:       100,
	}
	ProdIntervalConfig = &IntervalConfig{
		BlockInterval:      12 * time.Second,
		ProbeRoundInterval: 15 * time.Minute,
		MetagraphBlocks:    25,
		WeightBlocks:       360,
	}
)

func NewIntervalConfig(environment string) *IntervalConfig {
	switch strings.ToLower(environment) {
	case "dev":
		return DevIntervalConfig
	case "test":
		return TestIntervalConfig
	case "prod":
		return ProdIntervalConfig
	}
	return ProdIntervalConfig
}
