package vision

import "testing"

func TestEstimateDepth(t *testing.T) {
	tests := []struct {
		name       string
		faceHeight float64
		want       float64
	}{
		{"one meter", 120, 1.0},
		{"half meter", 240, 0.5},
		{"two meters", 60, 2.0},
		{"clamped near", 1000, 0.3},
		{"clamped far", 10, 5.0},
		{"zero height", 0, 0},
		{"negative height", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateDepth(tt.faceHeight); got != tt.want {
				t.Errorf("EstimateDepth(%v) = %v, want %v", tt.faceHeight, got, tt.want)
			}
		})
	}
}

func TestDistanceCategory(t *testing.T) {
	tests := []struct {
		distance float64
		want     string
	}{
		{0, "unknown"},
		{0.4, "very close"},
		{0.8, "close"},
		{1.5, "nearby"},
		{2.5, "moderate"},
		{4.0, "far"},
	}

	for _, tt := range tests {
		if got := DistanceCategory(tt.distance); got != tt.want {
			t.Errorf("DistanceCategory(%v) = %q, want %q", tt.distance, got, tt.want)
		}
	}
}
