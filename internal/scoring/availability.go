// Package scoring turns validator probe results into miner weights.
package scoring

import (
	"math"
)

// ProbeScore converts a single probe result into a raw score in [0, 1].
// A failed probe scores zero. A successful probe earns the availability
// component plus a latency component that decays linearly to zero at
// LatencyCeiling.
func ProbeScore(result ProbeResult) float64 {
	if !result.Success {
		return 0.0
	}

	latencyScore := 1.0 - float64(result.Latency)/float64(LatencyCeiling)
	if latencyScore < 0 {
		latencyScore = 0
	}

	return AvailabilityWeight + LatencyWeight*latencyScore
}

// ScoreRound scores every probe in a round, keyed by miner hotkey.
func ScoreRound(results []ProbeResult) RoundScores {
	scores := make(RoundScores, len(results))
	for _, r := range results {
		scores[r.Hotkey] = ProbeScore(r)
	}
	return scores
}

// UpdateEMA folds a new observation into a running score with smoothing
// factor alpha.
func UpdateEMA(previous, observed, alpha float64) float64 {
	updated := alpha*observed + (1.0-alpha)*previous
	if math.IsNaN(updated) {
		return 0.0
	}
	return updated
}
