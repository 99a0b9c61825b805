// Package animation samples keyframe tracks and evaluates per-bone skinning
// matrices for one playing clip.
package animation

import (
	"cmp"
	"slices"

	"github.com/Faultbox/skinlab/pkg/math"
)

// VecKey is a timed position or scale sample.
type VecKey struct {
	Time  float32 // ticks
	Value [3]float32
}

// QuatKey is a timed rotation sample.
type QuatKey struct {
	Time  float32 // ticks
	Value math.Quat
}

// Tracks holds the three independent key sequences of one bone.
// Each sequence is non-decreasing in time.
type Tracks struct {
	Positions []VecKey
	Rotations []QuatKey
	Scales    []VecKey
}

// Empty reports whether no track has any key.
func (tr *Tracks) Empty() bool {
	return len(tr.Positions) == 0 && len(tr.Rotations) == 0 && len(tr.Scales) == 0
}

// Sort orders every sequence by time. Keys with equal times keep their order.
func (tr *Tracks) Sort() {
	byTime := func(a, b VecKey) int { return cmp.Compare(a.Time, b.Time) }
	slices.SortStableFunc(tr.Positions, byTime)
	slices.SortStableFunc(tr.Scales, byTime)
	slices.SortStableFunc(tr.Rotations, func(a, b QuatKey) int { return cmp.Compare(a.Time, b.Time) })
}

// Sorted reports whether every sequence is non-decreasing in time.
func (tr *Tracks) Sorted() bool {
	for i := 1; i < len(tr.Positions); i++ {
		if tr.Positions[i].Time < tr.Positions[i-1].Time {
			return false
		}
	}
	for i := 1; i < len(tr.Rotations); i++ {
		if tr.Rotations[i].Time < tr.Rotations[i-1].Time {
			return false
		}
	}
	for i := 1; i < len(tr.Scales); i++ {
		if tr.Scales[i].Time < tr.Scales[i-1].Time {
			return false
		}
	}
	return true
}

// Local samples all three tracks at t and returns T * R * S.
func (tr *Tracks) Local(t float32) math.Mat4 {
	return math.Compose(
		SamplePosition(tr.Positions, t),
		SampleRotation(tr.Rotations, t),
		SampleScale(tr.Scales, t),
	)
}

// bracket finds the first i with keys[i] <= t < keys[i+1] and the blend
// factor between them.
func bracket(n int, timeAt func(int) float32, t float32) (int, float32, bool) {
	for i := 0; i+1 < n; i++ {
		t0, t1 := timeAt(i), timeAt(i+1)
		if t0 <= t && t < t1 {
			return i, (t - t0) / (t1 - t0), true
		}
	}
	return 0, 0, false
}

// SamplePosition interpolates a position track at t.
// Outside the key range, or with fewer than two keys, it returns zero.
func SamplePosition(keys []VecKey, t float32) [3]float32 {
	i, f, ok := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if !ok {
		return [3]float32{}
	}
	return math.LerpVec3(keys[i].Value, keys[i+1].Value, f)
}

// SampleScale interpolates a scale track at t.
// Outside the key range, or with fewer than two keys, it returns unit scale.
func SampleScale(keys []VecKey, t float32) [3]float32 {
	i, f, ok := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if !ok {
		return [3]float32{1, 1, 1}
	}
	return math.LerpVec3(keys[i].Value, keys[i+1].Value, f)
}

// SampleRotation slerps a rotation track at t.
// Outside the key range, or with fewer than two keys, it returns identity.
func SampleRotation(keys []QuatKey, t float32) math.Quat {
	i, f, ok := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if !ok {
		return math.QuatIdentity()
	}
	return keys[i].Value.Slerp(keys[i+1].Value, f)
}
