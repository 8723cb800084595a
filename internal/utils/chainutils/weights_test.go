package chainutils

import (
	"testing"
)

func TestConvertWeightsAndUidsForEmit(t *testing.T) {
	uids := []int64{0, 1, 2}
	weights := []float64{0.5, 1.0, 0.0}

	gotUids, gotVals, err := ConvertWeightsAndUidsForEmit(uids, weights)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	// zero-weight uid 2 is dropped
	if len(gotUids) != 2 || gotUids[0] != 0 || gotUids[1] != 1 {
		t.Fatalf("unexpected uids: %v", gotUids)
	}
	if gotVals[1] != U16Max {
		t.Errorf("max weight should scale to U16Max, got %d", gotVals[1])
	}
	if gotVals[0] != 32768 {
		t.Errorf("half weight should scale to 32768, got %d", gotVals[0])
	}
}

func TestConvertWeightsAndUidsForEmit_Errors(t *testing.T) {
	if _, _, err := ConvertWeightsAndUidsForEmit([]int64{1}, []float64{1, 2}); err == nil {
		t.Error("expected length mismatch error")
	}
	if _, _, err := ConvertWeightsAndUidsForEmit([]int64{1}, []float64{-1}); err == nil {
		t.Error("expected negative weight error")
	}
	if _, _, err := ConvertWeightsAndUidsForEmit([]int64{-1}, []float64{1}); err == nil {
		t.Error("expected negative uid error")
	}
}

func TestConvertWeightsAndUidsForEmit_AllZero(t *testing.T) {
	gotUids, gotVals, err := ConvertWeightsAndUidsForEmit([]int64{0, 1}, []float64{0, 0})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(gotUids) != 0 || len(gotVals) != 0 {
		t.Fatalf("expected empty emit for all-zero weights, got %v %v", gotUids, gotVals)
	}
}

func TestClampNegativeWeights(t *testing.T) {
	got := ClampNegativeWeights([]float64{-0.5, 0, 0.25})
	want := []float64{0, 0, 0.25}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("clamp mismatch at %d: got %v", i, got)
		}
	}
}
