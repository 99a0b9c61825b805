package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/skinlab/pkg/math"
)

func unitBox(center [3]float32) AABB {
	return AABB{
		Min: [3]float32{center[0] - 1, center[1] - 1, center[2] - 1},
		Max: [3]float32{center[0] + 1, center[1] + 1, center[2] + 1},
	}
}

func TestIntersectAABB(t *testing.T) {
	box := unitBox([3]float32{0, 0, 0})
	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"head on", Ray{Origin: [3]float32{0, 0, 5}, Direction: [3]float32{0, 0, -1}}, true, 4},
		{"inside", Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{1, 0, 0}}, true, 1},
		{"behind", Ray{Origin: [3]float32{0, 0, 5}, Direction: [3]float32{0, 0, 1}}, false, 0},
		{"parallel miss", Ray{Origin: [3]float32{0, 3, 5}, Direction: [3]float32{0, 0, -1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit || (hit && math32.Abs(got-tt.wantT) > 1e-5) {
				t.Errorf("IntersectAABB = %v, %v; want %v, %v", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	ray := Ray{Origin: [3]float32{0, 0, 20}, Direction: [3]float32{0, 0, -1}}
	boxes := []AABB{
		unitBox([3]float32{0, 0, 0}),
		unitBox([3]float32{0, 0, 10}),
		unitBox([3]float32{5, 0, 15}),
	}
	if i, d := ray.Nearest(boxes); i != 1 || d != 9 {
		t.Errorf("Nearest = %d at %v, want 1 at 9", i, d)
	}
	if i, _ := ray.Nearest(boxes[2:]); i != -1 {
		t.Errorf("Nearest = %d, want miss", i)
	}
}

func TestScreenToRay(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(math32.Pi/3, 1, 0.1, 100)
	ray := ScreenToRay(50, 50, 100, 100, proj.Mul(view).Inverse())

	// The center of the screen looks straight down -Z.
	want := [3]float32{0, 0, -1}
	for i := range 3 {
		if math32.Abs(ray.Direction[i]-want[i]) > 1e-3 {
			t.Fatalf("Direction = %v, want %v", ray.Direction, want)
		}
	}
	if _, hit := ray.IntersectAABB(unitBox([3]float32{0, 0, 0})); !hit {
		t.Error("center ray should hit a box at the origin")
	}
}
