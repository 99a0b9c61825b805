package skeleton

import (
	"testing"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/engine/animation"
	"github.com/Faultbox/skinlab/pkg/math"
)

func TestAttachChannels(t *testing.T) {
	logs := observe(t)
	sk := chain("Root", "Arm")

	channels := []asset.Channel{
		{
			Bone: "Arm",
			Positions: []asset.Key3{
				{Time: 2, Value: [3]float32{2, 0, 0}},
				{Time: 0, Value: [3]float32{0, 0, 0}},
			},
			Rotations: []asset.KeyQ{{Time: 0, Value: [4]float32{0, 0, 0, 2}}},
		},
		{Bone: "Tail", Scales: []asset.Key3{{Time: 0, Value: [3]float32{1, 1, 1}}}},
	}

	if got := AttachChannels(sk, channels); got != 1 {
		t.Fatalf("attached %d channels, want 1", got)
	}
	if logs.FilterMessageSnippet("unknown bone").Len() != 1 {
		t.Error("expected a warning for the unmatched channel")
	}

	arm, _ := sk.Index("Arm")
	tracks := &sk.Bones[arm].Tracks
	if !tracks.Sorted() || tracks.Positions[0].Time != 0 {
		t.Errorf("positions not sorted: %+v", tracks.Positions)
	}
	if tracks.Rotations[0].Value != math.QuatIdentity() {
		t.Errorf("rotation should be normalized, got %v", tracks.Rotations[0].Value)
	}

	root, _ := sk.Index("Root")
	if !sk.Bones[root].Tracks.Empty() {
		t.Error("Root should have no keys")
	}
}

func TestSkeletonDrivesEvaluator(t *testing.T) {
	observe(t)
	sk := chain("R", "C")
	AttachChannels(sk, []asset.Channel{{
		Bone: "R",
		Positions: []asset.Key3{
			{Time: 0, Value: [3]float32{0, 0, 0}},
			{Time: 2, Value: [3]float32{2, 0, 0}},
		},
	}})
	inverse := math.Translate(0, -1, 0)
	ApplyInverseBinds(sk, []asset.SkinJoint{{Bone: "C", InverseBind: inverse}})

	clip := animation.Clip{Duration: 2, TicksPerSecond: 1}
	pb := animation.NewPlayback()
	pb.Play()
	pb.Seek(1, clip)

	var e animation.Evaluator
	out := e.Evaluate(sk, pb, nil)

	c, _ := sk.Index("C")
	want := math.Translate(1, 0, 0).Mul(inverse)
	if !out[c].ApproxEqual(want, 1e-5) {
		t.Errorf("C = %v, want %v", out[c], want)
	}
}
