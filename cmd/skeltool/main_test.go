package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/engine/model"
	"github.com/Faultbox/skinlab/pkg/math"
)

func node(name string, transform math.Mat4, children ...*asset.Node) *asset.Node {
	return &asset.Node{Name: name, Transform: transform, Children: children}
}

// slideScene moves Root from x=0 to x=4 over one second.
func slideScene() *asset.Scene {
	id := math.Identity()
	return &asset.Scene{
		Source: "slide.glb",
		Root: node("Scene", id,
			node("Armature", id,
				node("Root", id,
					node("Tip", math.Translate(0, 1, 0)),
				),
			),
		),
		Meshes: []asset.Mesh{{
			Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Indices:   []uint32{0, 1, 2},
			Weights:   []asset.VertexWeight{{Bone: "Root", Vertex: 0, Weight: 1}},
			Joints:    []asset.SkinJoint{{Bone: "Tip", InverseBind: math.Translate(0, -1, 0)}},
		}},
		Animations: []asset.Animation{{
			Name:           "Slide",
			Duration:       1000,
			TicksPerSecond: 1000,
			Channels: []asset.Channel{{
				Bone: "Root",
				Positions: []asset.Key3{
					{Time: 0},
					{Time: 1000, Value: [3]float32{4, 0, 0}},
				},
			}},
		}},
	}
}

func slideModel(t *testing.T) (*asset.Scene, *model.SkinnedModel) {
	t.Helper()
	sc := slideScene()
	m, err := model.FromScene(sc)
	if err != nil {
		t.Fatalf("FromScene: %v", err)
	}
	return sc, m
}

func TestPrintBones(t *testing.T) {
	_, m := slideModel(t)
	var buf bytes.Buffer
	printBones(&buf, m)
	out := buf.String()

	for _, want := range []string{
		"Bones: 2",
		"Clip:  Slide (1000 ticks @ 1000/s)",
		"  1 Root  [T2 R0 S0]",
		"  2   Tip  [T0 R0 S0] bind",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSample(t *testing.T) {
	_, m := slideModel(t)
	var buf bytes.Buffer
	if err := printSample(&buf, m, 0.5, "Root"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "ticks=500.0") {
		t.Errorf("missing cursor:\n%s", out)
	}
	// Row 0 of a translation by (2, 0, 0).
	if !strings.Contains(out, "[  1.0000   0.0000   0.0000   2.0000]") {
		t.Errorf("missing translated row:\n%s", out)
	}
	if strings.Contains(out, "Tip") {
		t.Errorf("bone filter ignored:\n%s", out)
	}

	if err := printSample(&buf, m, 0, "Nope"); err == nil {
		t.Error("expected error for unknown bone")
	}
}

func TestPlay(t *testing.T) {
	_, m := slideModel(t)
	var buf bytes.Buffer
	play(&buf, m, 4, 1.5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "250.0") || !strings.Contains(lines[1], "playing") {
		t.Errorf("first step = %q", lines[1])
	}
	// The clip is not looped, so it stops at the end and the pose resets.
	if !strings.Contains(lines[4], "stopped") || !strings.Contains(lines[4], "(0.000, 0.000, 0.000)") {
		t.Errorf("end step = %q", lines[4])
	}

	var empty bytes.Buffer
	play(&empty, model.New(), 4, 1)
	if !strings.Contains(empty.String(), "no animation") {
		t.Errorf("empty model output %q", empty.String())
	}
}

func TestDump(t *testing.T) {
	sc, m := slideModel(t)
	for _, what := range []string{"scene", "skeleton", "clip"} {
		var buf bytes.Buffer
		if err := dump(&buf, spewConfig, what, sc, m); err != nil {
			t.Fatalf("%s: %v", what, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: empty dump", what)
		}
	}

	var buf bytes.Buffer
	if err := dump(&buf, spewConfig, "mesh", sc, m); err == nil {
		t.Error("expected error for unknown target")
	}
}
