package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/skinlab/internal/config"
	"github.com/Faultbox/skinlab/internal/engine/animation"
	"github.com/Faultbox/skinlab/internal/engine/debug"
	"github.com/Faultbox/skinlab/internal/engine/model"
	"github.com/Faultbox/skinlab/internal/engine/picking"
	"github.com/Faultbox/skinlab/pkg/math"
)

type action int

const (
	actNone action = iota
	actQuit
	actPause
	actRestart
	actLoop
	actFaster
	actSlower
	actWireframe
	actBounds
	actCollisions
	actFullscreen
	actScreenshot
	actSave
)

var keyBindings = map[sdl.Scancode]action{
	sdl.SCANCODE_ESCAPE: actQuit,
	sdl.SCANCODE_P:      actPause,
	sdl.SCANCODE_R:      actRestart,
	sdl.SCANCODE_L:      actLoop,
	sdl.SCANCODE_EQUALS: actFaster,
	sdl.SCANCODE_MINUS:  actSlower,
	sdl.SCANCODE_F1:     actWireframe,
	sdl.SCANCODE_F2:     actBounds,
	sdl.SCANCODE_F3:     actCollisions,
	sdl.SCANCODE_F11:    actFullscreen,
	sdl.SCANCODE_F12:    actScreenshot,
	sdl.SCANCODE_F5:     actSave,
}

func keyAction(key sdl.Scancode) action {
	return keyBindings[key]
}

const (
	speedStep = 1.25
	minSpeed  = 0.05
)

// controlPlayback applies a transport action and returns a log message, or
// "" when the action is not a playback action.
func controlPlayback(act action, m *model.SkinnedModel) string {
	pb := m.Playback
	switch act {
	case actPause:
		switch pb.State() {
		case animation.Playing:
			pb.Pause()
			return "animation paused"
		case animation.Paused:
			pb.Resume()
			return "animation resumed"
		default:
			pb.Play()
			return "animation started"
		}
	case actRestart:
		pb.Stop()
		pb.Play()
		return "animation restarted"
	case actLoop:
		pb.SetLooped(!pb.Looped())
		return "animation loop toggled"
	case actFaster:
		pb.SetSpeed(max(pb.Speed()*speedStep, minSpeed))
		return "animation speed changed"
	case actSlower:
		pb.SetSpeed(pb.Speed() / speedStep)
		return "animation speed changed"
	}
	return ""
}

// configurePlayback applies the animation settings to a freshly built model.
func configurePlayback(m *model.SkinnedModel, cfg config.AnimationConfig) {
	m.Playback.SetLooped(cfg.Loop)
	m.Playback.SetSpeed(cfg.Speed)
	if cfg.Autoplay && m.HasAnimation() {
		m.Playback.Play()
	}
}

// collisionCubes places one cube on each mesh, sized to its largest extent.
func collisionCubes(m *model.SkinnedModel) *debug.CubeSet {
	set := debug.NewCubeSet()
	for _, mesh := range m.Meshes() {
		if !mesh.Bounds.Valid() {
			continue
		}
		size := mesh.Bounds.Size()
		half := max(size[0], size[1], size[2]) / 2
		set.Add(mesh.Bounds.Center(), half)
	}
	return set
}

// pickMesh returns the nearest mesh whose bounds the ray hits.
func pickMesh(ray picking.Ray, meshes []*model.Mesh) (*model.Mesh, float32) {
	boxes := make([]picking.AABB, 0, len(meshes))
	owners := make([]*model.Mesh, 0, len(meshes))
	for _, mesh := range meshes {
		if !mesh.Bounds.Valid() {
			continue
		}
		boxes = append(boxes, picking.AABB{Min: mesh.Bounds.Min, Max: mesh.Bounds.Max})
		owners = append(owners, mesh)
	}
	i, t := ray.Nearest(boxes)
	if i < 0 {
		return nil, 0
	}
	return owners[i], t
}

// captureSettings copies the live viewer state back into cfg.
func captureSettings(cfg *config.Config, eye math.Vec3, pb *animation.Playback, wireframe, showBounds bool) {
	cfg.Camera.Position = eye.Array()
	cfg.Animation.Loop = pb.Looped()
	cfg.Animation.Speed = pb.Speed()
	cfg.Debug.Wireframe = wireframe
	cfg.Debug.ShowBounds = showBounds
}
