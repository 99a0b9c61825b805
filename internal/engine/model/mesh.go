package model

import (
	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/engine/skeleton"
	"github.com/Faultbox/skinlab/pkg/math"
)

// BuildMesh converts an imported primitive into GPU-ready vertices and binds
// its skin weights to sk. It returns the number of dropped influences.
// Missing normals are generated from faces and smoothed.
func BuildMesh(src asset.Mesh, sk *skeleton.Skeleton) (*Mesh, int) {
	n := len(src.Positions)
	mesh := &Mesh{
		Name:     src.Name,
		Vertices: make([]Vertex, n),
		Bounds:   emptyBounds(),
		Sources:  src.Textures,
	}

	for i, p := range src.Positions {
		v := &mesh.Vertices[i]
		v.Position = p
		if i < len(src.Normals) {
			v.Normal = src.Normals[i]
		}
		if i < len(src.UVs) {
			v.TexCoord = src.UVs[i]
		}
		updateBounds(&mesh.Bounds, p)
	}

	// Triangles referencing missing vertices are skipped whole.
	for i := 0; i+2 < len(src.Indices); i += 3 {
		a, b, c := src.Indices[i], src.Indices[i+1], src.Indices[i+2]
		if int(a) >= n || int(b) >= n || int(c) >= n {
			continue
		}
		mesh.Indices = append(mesh.Indices, a, b, c)
	}

	if len(src.Normals) < n {
		faceNormals(mesh.Vertices, mesh.Indices)
		SmoothNormals(mesh.Vertices)
	}

	dropped := 0
	if sk.Skinned() && len(src.Weights) > 0 {
		var bindings []skeleton.VertexBinding
		bindings, dropped = skeleton.BindWeights(sk, n, src.Weights)
		for i := range bindings {
			mesh.Vertices[i].BoneIDs = bindings[i].IDs
			mesh.Vertices[i].Weights = bindings[i].Weights
		}
	}
	return mesh, dropped
}

// faceNormals accumulates each triangle's normal onto its vertices.
func faceNormals(vertices []Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = [3]float32{}
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		p0 := math.V3(vertices[a].Position)
		e1 := math.V3(vertices[b].Position).Sub(p0)
		e2 := math.V3(vertices[c].Position).Sub(p0)
		normal := e1.Cross(e2)

		// Degenerate triangle
		if normal.Length() < 1e-5 {
			continue
		}
		for _, idx := range [3]uint32{a, b, c} {
			vertices[idx].Normal = math.V3(vertices[idx].Normal).Add(normal).Array()
		}
	}
	for i := range vertices {
		vertices[i].Normal = normalizeOrUp(vertices[i].Normal)
	}
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on models.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(math.V3(vertices[idx].Normal))
		}
		avg := normalizeOrUp(sum.Array())

		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

func normalizeOrUp(v [3]float32) [3]float32 {
	vec := math.V3(v)
	if vec.Length() < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return vec.Normalize().Array()
}
