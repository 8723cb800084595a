package scoring

import "time"

// ProbeResult is one validator probe against a miner axon.
type ProbeResult struct {
	Hotkey  string
	Success bool
	Latency time.Duration
}

// RoundScores maps miner hotkeys to the raw score of a single probe round.
type RoundScores map[string]float64
