package animation

import "github.com/Faultbox/skinlab/pkg/math"

// Rig is the bone data the evaluator reads. Bones are addressed by their
// 0-based index.
type Rig interface {
	BoneCount() int
	// BonePath returns the ancestor indices, root first, immediate parent last.
	BonePath(i int) []int
	BoneTracks(i int) *Tracks
	BoneInverseBind(i int) math.Mat4
}

// Evaluator computes skinning matrices. It caches each bone's sampled
// local transform for the duration of one Evaluate call.
type Evaluator struct {
	local  []math.Mat4
	cached []bool
}

// Evaluate writes one matrix per bone into out, growing it as needed, and
// returns it. A stopped cursor yields identity for every bone.
//
// A bone's matrix is its sampled T*R*S times its inverse bind, left
// multiplied by each ancestor's sampled T*R*S from the immediate parent
// up to the root. Ancestor inverse binds are not applied.
func (e *Evaluator) Evaluate(rig Rig, pb *Playback, out []math.Mat4) []math.Mat4 {
	n := rig.BoneCount()
	if cap(out) < n {
		out = make([]math.Mat4, n)
	}
	out = out[:n]

	if pb == nil || !pb.Running() {
		for i := range out {
			out[i] = math.Identity()
		}
		return out
	}

	e.reset(n)
	t := pb.Ticks()
	for i := 0; i < n; i++ {
		m := e.sample(rig, i, t).Mul(rig.BoneInverseBind(i))
		path := rig.BonePath(i)
		for j := len(path) - 1; j >= 0; j-- {
			m = e.sample(rig, path[j], t).Mul(m)
		}
		out[i] = m
	}
	return out
}

func (e *Evaluator) reset(n int) {
	if cap(e.local) < n {
		e.local = make([]math.Mat4, n)
		e.cached = make([]bool, n)
	}
	e.local = e.local[:n]
	e.cached = e.cached[:n]
	for i := range e.cached {
		e.cached[i] = false
	}
}

func (e *Evaluator) sample(rig Rig, i int, t float32) math.Mat4 {
	if !e.cached[i] {
		e.local[i] = rig.BoneTracks(i).Local(t)
		e.cached[i] = true
	}
	return e.local[i]
}
