// Package scene renders a skinned model and its debug overlays.
package scene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Faultbox/skinlab/internal/engine/debug"
	"github.com/Faultbox/skinlab/internal/engine/lighting"
	"github.com/Faultbox/skinlab/internal/engine/model"
	"github.com/Faultbox/skinlab/internal/engine/texture"
	"github.com/Faultbox/skinlab/pkg/math"
)

// Lighting is a single directional light.
type Lighting struct {
	Direction [3]float32
	Ambient   [3]float32
	Diffuse   [3]float32
}

// DefaultLighting returns a sun high in front and to the right.
func DefaultLighting() Lighting {
	return Lighting{
		Direction: lighting.SunDirection(30, 60),
		Ambient:   [3]float32{0.3, 0.3, 0.3},
		Diffuse:   [3]float32{1.0, 1.0, 1.0},
	}
}

// Overlay selects the debug geometry drawn after the model.
type Overlay struct {
	ShowBounds  bool
	Cubes       *debug.CubeSet
	BoundsColor [4]float32
	CubeColor   [4]float32
}

// DefaultOverlay draws nothing.
func DefaultOverlay() Overlay {
	return Overlay{
		BoundsColor: [4]float32{1, 1, 0, 1},
		CubeColor:   [4]float32{0, 1, 0.4, 1},
	}
}

// Scene owns the renderers and the texture cache for one model.
type Scene struct {
	Light Lighting

	skinned  *SkinnedRenderer
	lines    *LineRenderer
	textures *texture.Cache
	fallback uint32
	model    *model.SkinnedModel
}

// New creates a scene. textureDir resolves relative texture paths.
func New(textureDir string) (*Scene, error) {
	s := &Scene{
		Light:    DefaultLighting(),
		textures: texture.NewCache(textureDir),
		fallback: texture.Upload(whitePixel()),
	}

	var err error
	if s.skinned, err = NewSkinnedRenderer(s.fallback); err != nil {
		s.Destroy()
		return nil, err
	}
	if s.lines, err = NewLineRenderer(); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func whitePixel() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	return img
}

// SetModel uploads m, replacing the current model.
func (s *Scene) SetModel(m *model.SkinnedModel) error {
	if m == nil {
		return fmt.Errorf("nil model")
	}
	if s.model != nil {
		s.skinned.Release(s.model)
	}
	s.model = m
	s.skinned.Upload(m, s.textures.Get)
	return nil
}

// Model returns the current model.
func (s *Scene) Model() *model.SkinnedModel {
	return s.model
}

// Render draws the model then the overlay.
func (s *Scene) Render(view, projection math.Mat4, eye math.Vec3, overlay Overlay) {
	if s.model == nil {
		return
	}
	s.skinned.Render(s.model, view, projection, eye, s.Light)

	viewProj := projection.Mul(view)
	if overlay.ShowBounds {
		if b := s.model.Bounds(); b.Valid() {
			minB, maxB := debug.PaddedBox(b.Min, b.Max, 0.01)
			s.lines.Draw(debug.BoxLines(minB, maxB), viewProj, overlay.BoundsColor)
		}
	}
	if overlay.Cubes != nil {
		s.lines.Draw(overlay.Cubes.Lines(), viewProj, overlay.CubeColor)
	}
}

// Destroy releases every GPU resource the scene created.
func (s *Scene) Destroy() {
	if s.model != nil && s.skinned != nil {
		s.skinned.Release(s.model)
	}
	if s.skinned != nil {
		s.skinned.Destroy()
	}
	if s.lines != nil {
		s.lines.Destroy()
	}
	if s.textures != nil {
		s.textures.Release()
	}
	texture.Delete(s.fallback)
}
