// Package asset turns model files into the plain scene description the
// skeleton and model packages consume: a named node tree, per-mesh vertex
// data with (bone, vertex, weight) triples, and keyframe channels.
package asset

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/skinlab/pkg/math"
)

// ArmatureName is the node name under which the skeleton is nested.
const ArmatureName = "Armature"

// Import errors. Both are fatal to the import only.
var (
	ErrNilScene        = errors.New("asset: scene is nil")
	ErrIncompleteScene = errors.New("asset: scene is incomplete")
)

// Node is one node of the imported scene graph.
type Node struct {
	Name      string
	Transform math.Mat4 // local to parent
	Children  []*Node
}

// VertexWeight is one skin influence, keyed by bone name.
type VertexWeight struct {
	Bone   string
	Vertex int
	Weight float32
}

// SkinJoint carries the inverse bind matrix of one joint.
type SkinJoint struct {
	Bone        string
	InverseBind math.Mat4
}

// Key3 is a timed vector key (position or scale).
type Key3 struct {
	Time  float32
	Value [3]float32
}

// KeyQ is a timed rotation key stored as [x, y, z, w].
type KeyQ struct {
	Time  float32
	Value [4]float32
}

// Channel holds the three key lists that target one bone.
type Channel struct {
	Bone      string
	Positions []Key3
	Rotations []KeyQ
	Scales    []Key3
}

// Animation is one clip. Times are in ticks.
type Animation struct {
	Name           string
	Duration       float32
	TicksPerSecond float32
	Channels       []Channel
}

// TextureRef points at texture image data, either inline or by path.
type TextureRef struct {
	Path     string
	Data     []byte
	MimeType string
}

// Empty reports whether the reference points at nothing.
func (t TextureRef) Empty() bool {
	return t.Path == "" && len(t.Data) == 0
}

// MaterialTextures holds the four texture slots a mesh may bind.
type MaterialTextures struct {
	Diffuse  TextureRef
	Specular TextureRef
	Emission TextureRef
	Normal   TextureRef
}

// Mesh is one drawable primitive.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
	Weights   []VertexWeight
	Joints    []SkinJoint
	Textures  MaterialTextures
}

// Scene is everything one import produced.
type Scene struct {
	Source     string
	Root       *Node
	Meshes     []Mesh
	Animations []Animation
	Incomplete bool
}

// Validate reports the structural problems that make a scene unusable.
func (s *Scene) Validate() error {
	if s == nil {
		return ErrNilScene
	}
	if s.Incomplete || s.Root == nil {
		return ErrIncompleteScene
	}
	return nil
}

// FindNode locates the first node with the given name, breadth first.
func FindNode(root *Node, name string) *Node {
	if root == nil {
		return nil
	}
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.Name == name {
			return n
		}
		queue = append(queue, n.Children...)
	}
	return nil
}

// Walk visits every node depth first, parents before children.
func Walk(root *Node, fn func(n *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	if root != nil {
		visit(root, 0)
	}
}

// CountNodes returns the number of nodes in the subtree, root included.
func CountNodes(root *Node) int {
	count := 0
	Walk(root, func(*Node, int) { count++ })
	return count
}
