// Package model assembles skinned models: a skeleton, its meshes and one
// animation clip, evaluated once per frame into bone matrices.
package model

import "github.com/Faultbox/skinlab/internal/asset"

// MaxBones is the size of the bone matrix array the shaders declare.
const MaxBones = 100

// Vertex is one skinned vertex as laid out in the vertex buffer.
// BoneIDs use the wire convention (bone index + 1, 0 unused).
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	BoneIDs  [4]int32
	Weights  [4]float32
}

// TextureSet holds the GL texture names of the four material slots.
// 0 means the slot is not bound.
type TextureSet struct {
	Diffuse  uint32
	Specular uint32
	Emission uint32
	Normal   uint32
}

// Handles returns the slots in texture unit order.
func (t TextureSet) Handles() [4]uint32 {
	return [4]uint32{t.Diffuse, t.Specular, t.Emission, t.Normal}
}

// Mesh holds one drawable primitive and its GPU resources.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	// GPUHandle is the vertex array object, 0 until uploaded.
	GPUHandle uint32
	Textures  TextureSet

	// Sources says where each texture slot's image comes from.
	Sources asset.MaterialTextures
}

// IndexCount returns the number of indices drawn.
func (m *Mesh) IndexCount() int32 {
	return int32(len(m.Indices))
}

// Uploaded reports whether the mesh has a vertex array.
func (m *Mesh) Uploaded() bool {
	return m.GPUHandle != 0
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// Valid reports whether the box contains at least one point.
func (b Bounds) Valid() bool {
	return b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2]
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the box extents.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Union returns the box enclosing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	if !other.Valid() {
		return b
	}
	updateBounds(&b, other.Min)
	updateBounds(&b, other.Max)
	return b
}

func updateBounds(b *Bounds, p [3]float32) {
	if p[0] < b.Min[0] {
		b.Min[0] = p[0]
	}
	if p[1] < b.Min[1] {
		b.Min[1] = p[1]
	}
	if p[2] < b.Min[2] {
		b.Min[2] = p[2]
	}
	if p[0] > b.Max[0] {
		b.Max[0] = p[0]
	}
	if p[1] > b.Max[1] {
		b.Max[1] = p[1]
	}
	if p[2] > b.Max[2] {
		b.Max[2] = p[2]
	}
}

// BoneDebugInfo stores debug information about one bone.
type BoneDebugInfo struct {
	Index        int
	Name         string
	Parent       string
	Depth        int
	WireID       int32
	PositionKeys int
	RotationKeys int
	ScaleKeys    int
	HasInverse   bool
}
