package model

import (
	"testing"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/engine/skeleton"
)

func TestBuildMeshGeneratesNormals(t *testing.T) {
	src := asset.Mesh{
		Name:      "Floor",
		Positions: [][3]float32{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	mesh, dropped := BuildMesh(src, &skeleton.Skeleton{})
	if dropped != 0 {
		t.Errorf("dropped = %d", dropped)
	}
	for i, v := range mesh.Vertices {
		if v.Normal != [3]float32{0, 1, 0} {
			t.Errorf("vertex %d normal = %v, want (0, 1, 0)", i, v.Normal)
		}
	}
}

func TestBuildMeshTrimsBadIndices(t *testing.T) {
	src := asset.Mesh{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2, 2, 1, 9},
	}
	mesh, _ := BuildMesh(src, &skeleton.Skeleton{})
	if mesh.IndexCount() != 3 {
		t.Errorf("IndexCount = %d, want 3", mesh.IndexCount())
	}
	if mesh.Uploaded() {
		t.Error("fresh mesh should not be uploaded")
	}
}

func TestSmoothNormals(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{5, 0, 0}, Normal: [3]float32{0, 0, 1}},
	}
	SmoothNormals(vertices)

	if vertices[0].Normal != vertices[1].Normal {
		t.Errorf("shared position normals differ: %v %v", vertices[0].Normal, vertices[1].Normal)
	}
	if vertices[0].Normal[0] < 0.7 || vertices[0].Normal[0] > 0.71 {
		t.Errorf("averaged normal = %v", vertices[0].Normal)
	}
	if vertices[2].Normal != [3]float32{0, 0, 1} {
		t.Errorf("lone vertex normal changed: %v", vertices[2].Normal)
	}
}

func TestBounds(t *testing.T) {
	b := emptyBounds()
	if b.Valid() {
		t.Error("empty bounds should be invalid")
	}
	b = b.Union(Bounds{Min: [3]float32{-1, 0, 0}, Max: [3]float32{1, 2, 4}})
	if b.Center() != [3]float32{0, 1, 2} || b.Size() != [3]float32{2, 2, 4} {
		t.Errorf("center %v size %v", b.Center(), b.Size())
	}
	if got := b.Union(emptyBounds()); got != b {
		t.Errorf("union with empty changed bounds: %+v", got)
	}
}

func TestTextureSetHandles(t *testing.T) {
	ts := TextureSet{Diffuse: 3, Normal: 9}
	if ts.Handles() != [4]uint32{3, 0, 0, 9} {
		t.Errorf("Handles = %v", ts.Handles())
	}
}
