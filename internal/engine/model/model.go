package model

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/engine/animation"
	"github.com/Faultbox/skinlab/internal/engine/skeleton"
	"github.com/Faultbox/skinlab/internal/logger"
	"github.com/Faultbox/skinlab/pkg/math"
)

// identityBones is handed out for models without bones so every model
// satisfies the same shader interface.
var identityBones = func() []math.Mat4 {
	out := make([]math.Mat4, MaxBones)
	for i := range out {
		out[i] = math.Identity()
	}
	return out
}()

// SkinnedModel owns a skeleton, its meshes and one clip with its playback
// cursor. It is not safe for concurrent use.
type SkinnedModel struct {
	Name     string
	Skeleton *skeleton.Skeleton
	Clip     animation.Clip
	Playback *animation.Playback

	meshes    []*Mesh
	bounds    Bounds
	dropped   int
	evaluator animation.Evaluator
	bones     []math.Mat4
}

// New returns an empty model: no bones, no meshes, a stopped cursor.
func New() *SkinnedModel {
	return &SkinnedModel{
		Skeleton: &skeleton.Skeleton{},
		Playback: animation.NewPlayback(),
		bounds:   emptyBounds(),
	}
}

// FromScene builds a model from an imported scene: the skeleton under the
// armature, inverse binds and vertex weights from the skins, and the keys of
// the first animation. A nil or incomplete scene returns an empty model
// together with the error; the empty model still evaluates.
func FromScene(scene *asset.Scene) (*SkinnedModel, error) {
	m := New()
	if err := scene.Validate(); err != nil {
		return m, fmt.Errorf("building model: %w", err)
	}
	log := logger.Named("model")

	if scene.Source != "" {
		m.Name = filepath.Base(scene.Source)
	}
	m.Skeleton = skeleton.Build(scene.Root)
	if m.Skeleton.Len() > MaxBones {
		log.Warn("bone count exceeds shader limit, extra bones are ignored when drawing",
			zap.Int("bones", m.Skeleton.Len()),
			zap.Int("max", MaxBones),
		)
	}

	for _, src := range scene.Meshes {
		skeleton.ApplyInverseBinds(m.Skeleton, src.Joints)
	}

	if len(scene.Animations) > 0 {
		anim := scene.Animations[0]
		attached := skeleton.AttachChannels(m.Skeleton, anim.Channels)
		m.Clip = animation.Clip{
			Name:           anim.Name,
			Duration:       anim.Duration,
			TicksPerSecond: anim.TicksPerSecond,
		}
		log.Debug("clip attached",
			zap.String("clip", anim.Name),
			zap.Float32("duration", anim.Duration),
			zap.Int("channels", attached),
		)
	}

	for _, src := range scene.Meshes {
		mesh, dropped := BuildMesh(src, m.Skeleton)
		m.meshes = append(m.meshes, mesh)
		m.bounds = m.bounds.Union(mesh.Bounds)
		m.dropped += dropped
	}

	m.bones = m.evaluator.Evaluate(m.Skeleton, m.Playback, m.bones)

	log.Info("model built",
		zap.String("model", m.Name),
		zap.Int("bones", m.Skeleton.Len()),
		zap.Int("meshes", len(m.meshes)),
		zap.Int("droppedInfluences", m.dropped),
	)
	return m, nil
}

// Update advances the clip by dt seconds, then samples every bone at the
// new time.
func (m *SkinnedModel) Update(dt float32) {
	m.Playback.Advance(dt, m.Clip)
	if m.Skeleton.Skinned() {
		m.bones = m.evaluator.Evaluate(m.Skeleton, m.Playback, m.bones)
	}
}

// BoneMatrices returns one skinning matrix per bone index, as computed by
// the last Update. Models without bones get MaxBones identity matrices.
// The slice is owned by the model and overwritten by the next Update.
func (m *SkinnedModel) BoneMatrices() []math.Mat4 {
	if !m.Skeleton.Skinned() {
		return identityBones
	}
	return m.bones
}

// Meshes returns the model's meshes.
func (m *SkinnedModel) Meshes() []*Mesh {
	return m.meshes
}

// Bounds returns the bind-pose bounding box of all meshes.
func (m *SkinnedModel) Bounds() Bounds {
	return m.bounds
}

// Skinned reports whether the model has bones.
func (m *SkinnedModel) Skinned() bool {
	return m.Skeleton.Skinned()
}

// HasAnimation reports whether the model has a playable clip with keys.
func (m *SkinnedModel) HasAnimation() bool {
	if !m.Clip.Valid() {
		return false
	}
	for i := range m.Skeleton.Bones {
		if !m.Skeleton.Bones[i].Tracks.Empty() {
			return true
		}
	}
	return false
}

// DroppedInfluences returns how many vertex weights were discarded at build.
func (m *SkinnedModel) DroppedInfluences() int {
	return m.dropped
}

// BoneDebugInfo describes every bone for debug views.
func (m *SkinnedModel) BoneDebugInfo() []BoneDebugInfo {
	sk := m.Skeleton
	info := make([]BoneDebugInfo, sk.Len())
	for i := range sk.Bones {
		b := &sk.Bones[i]
		info[i] = BoneDebugInfo{
			Index:        i,
			Name:         b.Name,
			Depth:        sk.Depth(i),
			WireID:       skeleton.WireID(i),
			PositionKeys: len(b.Tracks.Positions),
			RotationKeys: len(b.Tracks.Rotations),
			ScaleKeys:    len(b.Tracks.Scales),
			HasInverse:   !b.InverseBind.IsIdentity(),
		}
		if p := sk.Parent(i); p >= 0 {
			info[i].Parent = sk.Bones[p].Name
		}
	}
	return info
}
