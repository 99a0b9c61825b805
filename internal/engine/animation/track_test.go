package animation

import (
	stdmath "math"
	"testing"

	"github.com/Faultbox/skinlab/pkg/math"
)

const eps = 1e-5

func near(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) <= eps
}

func nearVec(a, b [3]float32) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}

func TestSamplePositionInterpolates(t *testing.T) {
	keys := []VecKey{
		{Time: 0, Value: [3]float32{0, 0, 0}},
		{Time: 2, Value: [3]float32{2, 0, 0}},
		{Time: 4, Value: [3]float32{2, 4, 0}},
	}

	tests := []struct {
		name string
		t    float32
		want [3]float32
	}{
		{"first key exact", 0, [3]float32{0, 0, 0}},
		{"first segment middle", 1, [3]float32{1, 0, 0}},
		{"inner key exact", 2, [3]float32{2, 0, 0}},
		{"second segment quarter", 2.5, [3]float32{2, 1, 0}},
		{"before range", -1, [3]float32{0, 0, 0}},
		{"last key exact has no bracket", 4, [3]float32{0, 0, 0}},
		{"after range", 9, [3]float32{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SamplePosition(keys, tt.t); !nearVec(got, tt.want) {
				t.Errorf("SamplePosition(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestSampleApproachesNextKey(t *testing.T) {
	keys := []VecKey{
		{Time: 0, Value: [3]float32{0, 0, 0}},
		{Time: 1, Value: [3]float32{3, 6, 9}},
	}
	got := SampleScale(keys, 0.99999)
	want := [3]float32{3, 6, 9}
	for i := range got {
		if stdmath.Abs(float64(got[i]-want[i])) > 1e-3 {
			t.Errorf("sample just before end = %v, want close to %v", got, want)
		}
	}
}

func TestSampleFallbacks(t *testing.T) {
	single := []VecKey{{Time: 0, Value: [3]float32{5, 5, 5}}}

	if got := SamplePosition(nil, 0); got != [3]float32{} {
		t.Errorf("empty position track = %v", got)
	}
	if got := SamplePosition(single, 0); got != [3]float32{} {
		t.Errorf("single-key position track = %v", got)
	}
	if got := SampleScale(nil, 0); got != [3]float32{1, 1, 1} {
		t.Errorf("empty scale track = %v", got)
	}
	if got := SampleScale(single, 0); got != [3]float32{1, 1, 1} {
		t.Errorf("single-key scale track = %v", got)
	}
	if got := SampleRotation(nil, 0); got != math.QuatIdentity() {
		t.Errorf("empty rotation track = %v", got)
	}
	rot := []QuatKey{{Time: 0, Value: math.QuatFromAxisAngle(math.Vec3{Y: 1}, 1)}}
	if got := SampleRotation(rot, 0); got != math.QuatIdentity() {
		t.Errorf("single-key rotation track = %v", got)
	}
}

func TestSampleRotation(t *testing.T) {
	up := math.Vec3{Y: 1}
	q0 := math.QuatIdentity()
	q1 := math.QuatFromAxisAngle(up, stdmath.Pi/2)
	keys := []QuatKey{{Time: 10, Value: q0}, {Time: 20, Value: q1}}

	if got := SampleRotation(keys, 10); !got.SameRotation(q0, eps) {
		t.Errorf("at first key got %v", got)
	}

	half := SampleRotation(keys, 15)
	want := math.QuatFromAxisAngle(up, stdmath.Pi/4)
	if !half.SameRotation(want, eps) {
		t.Errorf("halfway got %v, want %v", half, want)
	}

	end := SampleRotation(keys, 19.9999)
	if !end.SameRotation(q1, 1e-4) {
		t.Errorf("near end got %v, want close to %v", end, q1)
	}
}

func TestTracksSort(t *testing.T) {
	tr := Tracks{
		Positions: []VecKey{{Time: 2}, {Time: 0, Value: [3]float32{1}}, {Time: 0, Value: [3]float32{2}}},
		Rotations: []QuatKey{{Time: 5}, {Time: 1}},
		Scales:    []VecKey{{Time: 1}, {Time: 3}},
	}
	if tr.Sorted() {
		t.Fatal("unsorted tracks reported sorted")
	}
	tr.Sort()
	if !tr.Sorted() {
		t.Fatal("tracks not sorted after Sort")
	}
	// Equal times keep input order.
	if tr.Positions[0].Value[0] != 1 || tr.Positions[1].Value[0] != 2 {
		t.Errorf("sort not stable: %+v", tr.Positions)
	}
}

func TestTracksLocal(t *testing.T) {
	tr := Tracks{
		Positions: []VecKey{{Time: 0, Value: [3]float32{0, 0, 0}}, {Time: 2, Value: [3]float32{4, 0, 0}}},
		Scales:    []VecKey{{Time: 0, Value: [3]float32{1, 1, 1}}, {Time: 2, Value: [3]float32{3, 3, 3}}},
	}
	m := tr.Local(1)
	// Scale 2 then translate (2, 0, 0).
	if got := m.TransformPoint([3]float32{1, 0, 0}); !nearVec(got, [3]float32{4, 0, 0}) {
		t.Errorf("Local(1) maps (1,0,0) to %v", got)
	}

	var empty Tracks
	if !empty.Empty() || !empty.Local(3).IsIdentity() {
		t.Error("empty tracks should sample to identity")
	}
}
