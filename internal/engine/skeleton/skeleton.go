// Package skeleton builds the bone hierarchy of a skinned model from an
// imported node tree and binds vertex weights and keyframe channels to it.
//
// Bones are addressed by 0-based index everywhere inside the engine. Names
// are resolved once, at import; evaluation never looks a bone up by name.
package skeleton

import (
	"github.com/Faultbox/skinlab/internal/engine/animation"
	"github.com/Faultbox/skinlab/pkg/math"
)

// Bone is one joint of the skeleton.
type Bone struct {
	Name string

	// TransformToParent is the imported local transform of the parent node.
	// Root bones carry the armature's transform.
	TransformToParent math.Mat4

	// InverseBind maps mesh space into the bone's bind space. Identity
	// unless a skin entry names the bone.
	InverseBind math.Mat4

	// PathToRoot lists ancestor indices, root first and immediate parent
	// last. Its length is the bone's depth; roots have an empty path.
	PathToRoot []int

	Tracks animation.Tracks
}

// Skeleton is the ordered bone array of one model. Every parent index is
// smaller than the indices of its children.
type Skeleton struct {
	Bones []Bone
	index map[string]int
}

func newSkeleton() *Skeleton {
	return &Skeleton{index: make(map[string]int)}
}

// Len returns the bone count.
func (s *Skeleton) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bones)
}

// Skinned reports whether the skeleton has any bones.
func (s *Skeleton) Skinned() bool {
	return s.Len() > 0
}

// Index resolves a bone name to its index.
func (s *Skeleton) Index(name string) (int, bool) {
	if s == nil {
		return -1, false
	}
	i, ok := s.index[name]
	return i, ok
}

// Depth returns the number of ancestors of bone i.
func (s *Skeleton) Depth(i int) int {
	return len(s.Bones[i].PathToRoot)
}

// Parent returns the parent index of bone i, or -1 for a root bone.
func (s *Skeleton) Parent(i int) int {
	path := s.Bones[i].PathToRoot
	if len(path) == 0 {
		return -1
	}
	return path[len(path)-1]
}

// Children returns the indices of the direct children of bone i.
func (s *Skeleton) Children(i int) []int {
	var out []int
	for j := i + 1; j < len(s.Bones); j++ {
		if s.Parent(j) == i {
			out = append(out, j)
		}
	}
	return out
}

// Roots returns the indices of bones without a parent.
func (s *Skeleton) Roots() []int {
	var out []int
	for i := 0; i < s.Len(); i++ {
		if s.Parent(i) == -1 {
			out = append(out, i)
		}
	}
	return out
}

// BoneCount implements animation.Rig.
func (s *Skeleton) BoneCount() int { return s.Len() }

// BonePath implements animation.Rig.
func (s *Skeleton) BonePath(i int) []int { return s.Bones[i].PathToRoot }

// BoneTracks implements animation.Rig.
func (s *Skeleton) BoneTracks(i int) *animation.Tracks { return &s.Bones[i].Tracks }

// BoneInverseBind implements animation.Rig.
func (s *Skeleton) BoneInverseBind(i int) math.Mat4 { return s.Bones[i].InverseBind }

var _ animation.Rig = (*Skeleton)(nil)
