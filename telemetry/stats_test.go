package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
	}{
		{"empty", nil, 0},
		{"single", []float64{4.0}, 4.0},
		{"uniform", []float64{2, 2, 2, 2}, 2.0},
		{"spread", []float64{1, 2, 3, 4, 5}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50, p90 := Summarize(tt.values)

			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}

			if len(tt.values) == 0 {
				if std != 0 || p50 != 0 || p90 != 0 {
					t.Errorf("empty input should yield zeros, got std=%v p50=%v p90=%v", std, p50, p90)
				}
				return
			}

			if std < 0 {
				t.Errorf("std = %v, want >= 0", std)
			}
			if p50 > p90 {
				t.Errorf("p50 (%v) > p90 (%v)", p50, p90)
			}

			min, max := tt.values[0], tt.values[0]
			for _, v := range tt.values {
				min = math.Min(min, v)
				max = math.Max(max, v)
			}
			if p50 < min || p50 > max || p90 < min || p90 > max {
				t.Errorf("quantiles outside data range [%v, %v]: p50=%v p90=%v", min, max, p50, p90)
			}
		})
	}
}

func TestSummarize_SingleSampleStd(t *testing.T) {
	_, std, _, _ := Summarize([]float64{7.5})
	if std != 0 {
		t.Errorf("std for single sample = %v, want 0", std)
	}
}

func TestSummarize_UnsortedInput(t *testing.T) {
	mean, _, p50, p90 := Summarize([]float64{5, 1, 3, 2, 4})
	if math.Abs(mean-3.0) > 1e-9 {
		t.Errorf("mean = %v, want 3.0", mean)
	}
	if p50 > p90 {
		t.Errorf("p50 (%v) > p90 (%v)", p50, p90)
	}
}
