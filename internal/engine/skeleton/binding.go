package skeleton

import (
	"go.uber.org/zap"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/logger"
)

// MaxInfluences is the number of (bone, weight) pairs a vertex can carry.
const MaxInfluences = 4

// VertexBinding is the per-vertex skin data uploaded to the GPU.
// IDs use the wire convention: bone index + 1, with 0 meaning unused.
type VertexBinding struct {
	IDs     [MaxInfluences]int32
	Weights [MaxInfluences]float32
}

// WireID converts a bone index into a vertex attribute id.
func WireID(bone int) int32 {
	return int32(bone) + 1
}

// BoneIndex converts a vertex attribute id back into a bone index.
// It reports false for the unused id 0.
func BoneIndex(id int32) (int, bool) {
	if id <= 0 {
		return -1, false
	}
	return int(id - 1), true
}

// Count returns the number of used slots.
func (b *VertexBinding) Count() int {
	n := 0
	for _, id := range b.IDs {
		if id != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of the stored weights.
func (b *VertexBinding) Total() float32 {
	var sum float32
	for _, w := range b.Weights {
		sum += w
	}
	return sum
}

func (b *VertexBinding) add(bone int, weight float32) bool {
	for i := range b.IDs {
		if b.IDs[i] == 0 {
			b.IDs[i] = WireID(bone)
			b.Weights[i] = weight
			return true
		}
	}
	return false
}

// BindWeights resolves name-keyed skin weights into per-vertex bindings.
// Zero weights are ignored. Influences beyond MaxInfluences, unknown bone
// names and out-of-range vertices are dropped and logged; the number of
// dropped influences is returned.
func BindWeights(sk *Skeleton, vertexCount int, weights []asset.VertexWeight) ([]VertexBinding, int) {
	log := logger.Named("skeleton")
	out := make([]VertexBinding, vertexCount)
	dropped := 0

	for _, w := range weights {
		if w.Weight == 0 {
			continue
		}
		if w.Vertex < 0 || w.Vertex >= vertexCount {
			log.Warn("dropping weight for vertex out of range",
				zap.String("bone", w.Bone),
				zap.Int("vertex", w.Vertex),
				zap.Int("vertices", vertexCount),
			)
			dropped++
			continue
		}
		bone, ok := sk.Index(w.Bone)
		if !ok {
			log.Warn("dropping weight for unknown bone",
				zap.String("bone", w.Bone),
				zap.Int("vertex", w.Vertex),
			)
			dropped++
			continue
		}
		if !out[w.Vertex].add(bone, w.Weight) {
			log.Warn("dropping excess bone influence",
				zap.String("bone", w.Bone),
				zap.Int("vertex", w.Vertex),
				zap.Float32("weight", w.Weight),
				zap.Int("max", MaxInfluences),
			)
			dropped++
		}
	}
	return out, dropped
}

// inverseBindEpsilon tolerates float noise between skins that export the
// same joint.
const inverseBindEpsilon = 1e-5

// ApplyInverseBinds stores each joint's inverse bind matrix on the bone of
// the same name and returns how many joints matched. When skins disagree on
// a joint the last one applied wins.
func ApplyInverseBinds(sk *Skeleton, joints []asset.SkinJoint) int {
	log := logger.Named("skeleton")
	matched := 0
	for _, j := range joints {
		idx, ok := sk.Index(j.Bone)
		if !ok {
			log.Warn("skin joint has no bone", zap.String("bone", j.Bone))
			continue
		}
		prev := sk.Bones[idx].InverseBind
		if !prev.IsIdentity() && !prev.ApproxEqual(j.InverseBind, inverseBindEpsilon) {
			log.Warn("conflicting inverse bind matrices for bone, keeping the latest",
				zap.String("bone", j.Bone),
			)
		}
		sk.Bones[idx].InverseBind = j.InverseBind
		matched++
	}
	return matched
}
