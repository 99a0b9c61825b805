// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/skinlab/pkg/math"
)

// Lens holds the projection parameters shared by every camera.
type Lens struct {
	FOV  float32 // vertical, radians
	Near float32
	Far  float32
}

// DefaultLens returns a 60 degree lens.
func DefaultLens() Lens {
	return Lens{FOV: math32.Pi / 3, Near: 0.1, Far: 500}
}

// Projection returns the perspective matrix for the given aspect ratio.
func (l Lens) Projection(aspect float32) math.Mat4 {
	return math.Perspective(l.FOV, aspect, l.Near, l.Far)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Lens

	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Lens:            DefaultLens(),
		Distance:        5.0,
		RotationX:       0.3,
		MinDistance:     0.5,
		MaxDistance:     200.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosX := math32.Cos(c.RotationX)
	offset := math.Vec3{
		X: c.Distance * cosX * math32.Sin(c.RotationY),
		Y: c.Distance * math32.Sin(c.RotationX),
		Z: c.Distance * cosX * math32.Cos(c.RotationY),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a box and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(minB, maxB [3]float32) {
	c.Center = math.V3(minB).Add(math.V3(maxB)).Scale(0.5)

	radius := math.V3(maxB).Sub(math.V3(minB)).Length() / 2
	if radius <= 0 {
		radius = 1
	}
	// Distance at which the bounding sphere fills the vertical FOV.
	c.Distance = clamp(radius/math32.Sin(c.FOV/2), c.MinDistance, c.MaxDistance)
	c.RotationX = 0.3
	c.RotationY = 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
