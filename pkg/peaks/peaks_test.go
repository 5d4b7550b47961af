// ABOUTME: Tests for peak aggregation helpers and sentinel conventions
// ABOUTME: Empty-series infinities, absolute maxima, and mirror pairs
package peaks

import (
	"math"
	"testing"
)

func TestMaxMinEmptySentinels(t *testing.T) {
	if got := Max(nil); !math.IsInf(got, -1) {
		t.Errorf("Max(empty) = %v, want -Inf", got)
	}
	if got := Min(nil); !math.IsInf(got, 1) {
		t.Errorf("Min(empty) = %v, want +Inf", got)
	}
}

func TestMaxMin(t *testing.T) {
	series := []float64{0.2, -0.8, 0.5, -0.1}
	if got := Max(series); got != 0.5 {
		t.Errorf("Max = %v, want 0.5", got)
	}
	if got := Min(series); got != -0.8 {
		t.Errorf("Min = %v, want -0.8", got)
	}
}

func TestAbsMax(t *testing.T) {
	cases := []struct {
		series []float64
		want   float64
	}{
		{[]float64{0.2, -0.8, 0.5}, 0.8},
		{[]float64{0.9, 0.1}, 0.9},
		{[]float64{-0.3}, 0.3},
	}
	for _, c := range cases {
		if got := AbsMax(c.series); got != c.want {
			t.Errorf("AbsMax(%v) = %v, want %v", c.series, got, c.want)
		}
	}
}

func TestHasNegative(t *testing.T) {
	if HasNegative([]float64{0, 0.5, 1}) {
		t.Error("magnitude-only series reported negatives")
	}
	if !HasNegative([]float64{0.5, -0.5}) {
		t.Error("paired series negatives missed")
	}
	if HasNegative(nil) {
		t.Error("empty series reported negatives")
	}
}

func TestMirrorPairs(t *testing.T) {
	got := MirrorPairs([]float64{0.5, 1})
	want := []float64{0.5, -0.5, 1, -1}
	if len(got) != len(want) {
		t.Fatalf("MirrorPairs length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MirrorPairs[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestColumns(t *testing.T) {
	paired := []float64{0.5, -0.5, 0.25, -0.25}
	if got := Columns(paired); got != 2 {
		t.Errorf("Columns(paired) = %d, want 2", got)
	}
	magnitudes := []float64{0.5, 0.25, 0.75}
	if got := Columns(magnitudes); got != 3 {
		t.Errorf("Columns(magnitudes) = %d, want 3", got)
	}
	if got := Columns(nil); got != 0 {
		t.Errorf("Columns(nil) = %d, want 0", got)
	}
}

func TestAtOutOfRangeReadsZero(t *testing.T) {
	series := []float64{0.5, -0.5}
	if got := At(series, 1); got != -0.5 {
		t.Errorf("At(1) = %v, want -0.5", got)
	}
	if got := At(series, 2); got != 0 {
		t.Errorf("At(past end) = %v, want 0", got)
	}
	if got := At(series, -1); got != 0 {
		t.Errorf("At(-1) = %v, want 0", got)
	}
}
