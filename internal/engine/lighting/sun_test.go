package lighting

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float32
		want               [3]float32
	}{
		{"horizon front", 0, 0, [3]float32{0, 0, 1}},
		{"horizon right", 90, 0, [3]float32{1, 0, 0}},
		{"zenith", 45, 90, [3]float32{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			for i := range got {
				if math32.Abs(got[i]-tt.want[i]) > 1e-5 {
					t.Fatalf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
				}
			}
		})
	}
}
