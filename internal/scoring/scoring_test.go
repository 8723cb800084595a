package scoring

import (
	"math"
	"testing"
	"time"
)

func TestL1Normalize(t *testing.T) {
	got := L1Normalize([]float64{1, 1, 2})
	want := []float64{0.25, 0.25, 0.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("normalize mismatch at %d: got %v", i, got)
		}
	}
}

func TestL1NormalizeZeroSum(t *testing.T) {
	got := L1Normalize([]float64{0, 0, 0})
	for i, v := range got {
		if v != 0 {
			t.Fatalf("expected zeros, got %v at %d", v, i)
		}
	}
}

func TestL1NormalizeDoesNotMutateInput(t *testing.T) {
	in := []float64{2, 2}
	L1Normalize(in)
	if in[0] != 2 || in[1] != 2 {
		t.Errorf("input slice was mutated: %v", in)
	}
}

func TestMinMaxScale(t *testing.T) {
	got := MinMaxScale([]float64{2, 4, 6})
	want := []float64{0, 0.5, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("scale mismatch at %d: got %v", i, got)
		}
	}
}

func TestMinMaxScaleConstant(t *testing.T) {
	got := MinMaxScale([]float64{3, 3, 3})
	for i, v := range got {
		if v != 0 {
			t.Fatalf("constant input should scale to zeros, got %v at %d", v, i)
		}
	}
}

func TestProbeScoreFailure(t *testing.T) {
	score := ProbeScore(ProbeResult{Hotkey: "hk", Success: false, Latency: time.Millisecond})
	if score != 0 {
		t.Errorf("failed probe should score 0, got %v", score)
	}
}

func TestProbeScoreFastSuccess(t *testing.T) {
	score := ProbeScore(ProbeResult{Hotkey: "hk", Success: true, Latency: 0})
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("instant response should score 1.0, got %v", score)
	}
}

func TestProbeScoreSlowSuccess(t *testing.T) {
	// at or beyond the latency ceiling only the availability component remains
	score := ProbeScore(ProbeResult{Hotkey: "hk", Success: true, Latency: LatencyCeiling})
	if math.Abs(score-AvailabilityWeight) > 1e-9 {
		t.Errorf("expected %v at latency ceiling, got %v", AvailabilityWeight, score)
	}

	score = ProbeScore(ProbeResult{Hotkey: "hk", Success: true, Latency: 2 * LatencyCeiling})
	if math.Abs(score-AvailabilityWeight) > 1e-9 {
		t.Errorf("latency past ceiling should not go negative, got %v", score)
	}
}

func TestProbeScoreOrdering(t *testing.T) {
	fast := ProbeScore(ProbeResult{Success: true, Latency: 100 * time.Millisecond})
	slow := ProbeScore(ProbeResult{Success: true, Latency: 5 * time.Second})
	if fast <= slow {
		t.Errorf("faster miner should score higher: fast=%v slow=%v", fast, slow)
	}
}

func TestScoreRound(t *testing.T) {
	results := []ProbeResult{
		{Hotkey: "a", Success: true, Latency: time.Second},
		{Hotkey: "b", Success: false},
	}
	scores := ScoreRound(results)
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores["a"] <= 0 {
		t.Errorf("successful probe should score above 0, got %v", scores["a"])
	}
	if scores["b"] != 0 {
		t.Errorf("failed probe should score 0, got %v", scores["b"])
	}
}

func TestUpdateEMA(t *testing.T) {
	got := UpdateEMA(1.0, 0.0, 0.1)
	if math.Abs(got-0.9) > 1e-9 {
		t.Errorf("expected 0.9, got %v", got)
	}

	got = UpdateEMA(0.0, 1.0, 0.1)
	if math.Abs(got-0.1) > 1e-9 {
		t.Errorf("expected 0.1, got %v", got)
	}

	if got := UpdateEMA(math.NaN(), 1.0, 0.1); got != 0 {
		t.Errorf("NaN history should reset to 0, got %v", got)
	}
}
