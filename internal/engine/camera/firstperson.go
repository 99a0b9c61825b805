package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/skinlab/pkg/math"
)

// MaxPitch keeps the first-person view short of straight up or down.
const MaxPitch = 89 * math32.Pi / 180

// FirstPersonCamera is a free-flying yaw/pitch camera.
// Yaw 0 looks down -Z.
type FirstPersonCamera struct {
	Lens

	Position math.Vec3
	Yaw      float32 // radians, positive turns left
	Pitch    float32 // radians, positive looks up

	MoveSpeed        float32 // units per second
	MouseSensitivity float32 // radians per pixel
}

// NewFirstPersonCamera creates a camera at pos looking down -Z.
func NewFirstPersonCamera(pos math.Vec3) *FirstPersonCamera {
	return &FirstPersonCamera{
		Lens:             DefaultLens(),
		Position:         pos,
		MoveSpeed:        5,
		MouseSensitivity: 0.003,
	}
}

// Forward returns the unit view direction.
func (c *FirstPersonCamera) Forward() math.Vec3 {
	cosP := math32.Cos(c.Pitch)
	return math.Vec3{
		X: -math32.Sin(c.Yaw) * cosP,
		Y: math32.Sin(c.Pitch),
		Z: -math32.Cos(c.Yaw) * cosP,
	}
}

// Right returns the unit strafe direction on the XZ plane.
func (c *FirstPersonCamera) Right() math.Vec3 {
	return math.Vec3{X: math32.Cos(c.Yaw), Z: -math32.Sin(c.Yaw)}
}

// Look applies relative mouse motion in pixels.
func (c *FirstPersonCamera) Look(dx, dy float32) {
	c.Yaw -= dx * c.MouseSensitivity
	c.Pitch = clamp(c.Pitch-dy*c.MouseSensitivity, -MaxPitch, MaxPitch)
}

// Move translates the camera along its view axes. forward, right and up
// are in [-1, 1], usually from input.Axis.
func (c *FirstPersonCamera) Move(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt
	delta := c.Forward().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(math.Vec3{Y: up})
	c.Position = c.Position.Add(delta.Scale(step))
}

// LookAt points the camera at target.
func (c *FirstPersonCamera) LookAt(target math.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Length() == 0 {
		return
	}
	dir = dir.Normalize()
	c.Yaw = math32.Atan2(-dir.X, -dir.Z)
	c.Pitch = clamp(math32.Asin(dir.Y), -MaxPitch, MaxPitch)
}

// ViewMatrix returns the view matrix for this camera.
func (c *FirstPersonCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), math.Vec3{Y: 1})
}
