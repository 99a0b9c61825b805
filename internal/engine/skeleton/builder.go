package skeleton

import (
	"go.uber.org/zap"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/logger"
	"github.com/Faultbox/skinlab/pkg/math"
)

// Build creates the bone array from the nodes nested under the armature.
//
// The armature is found breadth first by name. Its direct children become
// root bones, in child order. A LIFO stack then visits each bone and appends
// its node's children, so every bone lands after its parent. Without an
// armature the skeleton is empty and the model renders unskinned.
func Build(root *asset.Node) *Skeleton {
	log := logger.Named("skeleton")
	sk := newSkeleton()

	arm := asset.FindNode(root, asset.ArmatureName)
	if arm == nil {
		log.Warn("no armature node, model has no bones", zap.String("armature", asset.ArmatureName))
		return sk
	}

	// nodes[i] is the scene node of bone i.
	var nodes []*asset.Node
	var stack []int

	for _, child := range arm.Children {
		idx := sk.add(child.Name, arm.Transform, nil, log)
		nodes = append(nodes, child)
		stack = append(stack, idx)
	}

	for len(stack) > 0 {
		parent := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := nodes[parent]
		parentPath := sk.Bones[parent].PathToRoot
		for _, child := range node.Children {
			path := make([]int, len(parentPath)+1)
			copy(path, parentPath)
			path[len(parentPath)] = parent

			idx := sk.add(child.Name, node.Transform, path, log)
			nodes = append(nodes, child)
			stack = append(stack, idx)
		}
	}

	log.Debug("skeleton built", zap.Int("bones", len(sk.Bones)))
	return sk
}

func (s *Skeleton) add(name string, toParent math.Mat4, path []int, log *zap.Logger) int {
	idx := len(s.Bones)
	s.Bones = append(s.Bones, Bone{
		Name:              name,
		TransformToParent: toParent,
		InverseBind:       math.Identity(),
		PathToRoot:        path,
	})
	if prev, dup := s.index[name]; dup {
		log.Warn("duplicate bone name, keeping first",
			zap.String("bone", name),
			zap.Int("first", prev),
			zap.Int("duplicate", idx),
		)
		return idx
	}
	s.index[name] = idx
	return idx
}
