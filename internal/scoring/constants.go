package scoring

import "time"

const (
	// EMAAlpha weighs the newest probe round against score history.
	EMAAlpha = 0.1

	// LatencyCeiling is the latency at and beyond which the latency
	// component of a probe score is zero.
	LatencyCeiling = 10 * time.Second

	// AvailabilityWeight and LatencyWeight split a probe score between
	// reachability and responsiveness.
	AvailabilityWeight = 0.7
	LatencyWeight      = 0.3
)
