package animation

import (
	"testing"

	"github.com/Faultbox/skinlab/pkg/math"
)

type testBone struct {
	path    []int
	tracks  Tracks
	inverse math.Mat4
}

type testRig []testBone

func (r testRig) BoneCount() int { return len(r) }
func (r testRig) BonePath(i int) []int { return r[i].path }
func (r testRig) BoneTracks(i int) *Tracks { return &r[i].tracks }
func (r testRig) BoneInverseBind(i int) math.Mat4 { return r[i].inverse }

// rootAndChild is a two bone chain: the root moves from (0,0,0) to (2,0,0)
// over two ticks, the child has no keys.
func rootAndChild() testRig {
	return testRig{
		{
			inverse: math.Identity(),
			tracks: Tracks{Positions: []VecKey{
				{Time: 0, Value: [3]float32{0, 0, 0}},
				{Time: 2, Value: [3]float32{2, 0, 0}},
			}},
		},
		{
			path:    []int{0},
			inverse: math.Translate(0, -1, 0),
		},
	}
}

func TestEvaluateChildInheritsParentMotion(t *testing.T) {
	rig := rootAndChild()
	clip := Clip{Duration: 2, TicksPerSecond: 1}
	pb := NewPlayback()
	pb.Play()
	pb.Seek(1, clip)

	var e Evaluator
	out := e.Evaluate(rig, pb, nil)

	if len(out) != 2 {
		t.Fatalf("expected 2 matrices, got %d", len(out))
	}
	if want := math.Translate(1, 0, 0); !out[0].ApproxEqual(want, eps) {
		t.Errorf("root = %v, want %v", out[0], want)
	}
	want := math.Translate(1, 0, 0).Mul(math.Translate(0, -1, 0))
	if !out[1].ApproxEqual(want, eps) {
		t.Errorf("child = %v, want %v", out[1], want)
	}
}

func TestEvaluateExcludesAncestorInverseBind(t *testing.T) {
	rig := rootAndChild()
	rig[0].inverse = math.Scale(5, 5, 5)
	clip := Clip{Duration: 2, TicksPerSecond: 1}
	pb := NewPlayback()
	pb.Play()
	pb.Seek(1, clip)

	var e Evaluator
	out := e.Evaluate(rig, pb, nil)

	if want := math.Translate(1, 0, 0).Mul(math.Scale(5, 5, 5)); !out[0].ApproxEqual(want, eps) {
		t.Errorf("root should carry its own inverse bind, got %v", out[0])
	}
	if want := math.Translate(1, 0, 0).Mul(math.Translate(0, -1, 0)); !out[1].ApproxEqual(want, eps) {
		t.Errorf("child should not carry the root inverse bind, got %v", out[1])
	}
}

func TestEvaluateAncestorOrder(t *testing.T) {
	// root -> mid -> leaf; root rotates 90 degrees about Y, mid translates +X.
	quarter := math.QuatFromAxisAngle(math.Vec3{Y: 1}, 1.5707964)
	rig := testRig{
		{inverse: math.Identity(), tracks: Tracks{Rotations: []QuatKey{{Time: 0, Value: quarter}, {Time: 10, Value: quarter}}}},
		{path: []int{0}, inverse: math.Identity(), tracks: Tracks{Positions: []VecKey{{Time: 0, Value: [3]float32{1, 0, 0}}, {Time: 10, Value: [3]float32{1, 0, 0}}}}},
		{path: []int{0, 1}, inverse: math.Identity()},
	}
	clip := Clip{Duration: 10, TicksPerSecond: 1}
	pb := NewPlayback()
	pb.Play()
	pb.Seek(5, clip)

	var e Evaluator
	out := e.Evaluate(rig, pb, nil)

	// Root applied outermost: the +X offset is rotated onto -Z.
	got := out[2].TransformPoint([3]float32{0, 0, 0})
	if !nearVec(got, [3]float32{0, 0, -1}) {
		t.Errorf("leaf origin = %v, want (0, 0, -1)", got)
	}
}

func TestEvaluateNotRunningIsIdentity(t *testing.T) {
	for _, bones := range []int{0, 1, 5} {
		rig := make(testRig, bones)
		for i := range rig {
			rig[i].inverse = math.Translate(float32(i), 2, 3)
			if i > 0 {
				rig[i].path = []int{i - 1}
			}
		}

		var e Evaluator
		out := e.Evaluate(rig, NewPlayback(), nil)
		if len(out) != bones {
			t.Fatalf("%d bones: got %d matrices", bones, len(out))
		}
		for i, m := range out {
			if !m.IsIdentity() {
				t.Errorf("%d bones: matrix %d = %v, want identity", bones, i, m)
			}
		}
	}
}

func TestEvaluatePausedStillSamples(t *testing.T) {
	rig := rootAndChild()
	clip := Clip{Duration: 2, TicksPerSecond: 1}
	pb := NewPlayback()
	pb.Play()
	pb.Seek(1, clip)
	pb.Pause()

	var e Evaluator
	out := e.Evaluate(rig, pb, nil)
	if out[0].IsIdentity() {
		t.Error("paused playback should keep the sampled pose")
	}
}

func TestEvaluateReusesBuffer(t *testing.T) {
	rig := rootAndChild()
	buf := make([]math.Mat4, 8)
	var e Evaluator
	out := e.Evaluate(rig, nil, buf)
	if len(out) != 2 || &out[0] != &buf[0] {
		t.Error("expected the caller's buffer to be reused")
	}
}
