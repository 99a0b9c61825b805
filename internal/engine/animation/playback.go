package animation

import "math"

// State is the playback state derived from the running and paused flags.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Playback is the per-model playback cursor.
type Playback struct {
	ticks   float32
	running bool
	paused  bool
	looped  bool
	speed   float32

	// Blend state between two clip indices. Carried but not consumed by
	// sampling.
	BlendFactor  float32
	CurrentIndex int
	NextIndex    int
}

// NewPlayback returns a stopped cursor at tick 0 with unit speed.
func NewPlayback() *Playback {
	return &Playback{speed: 1}
}

// State returns the current playback state.
func (p *Playback) State() State {
	switch {
	case !p.running:
		return Stopped
	case p.paused:
		return Paused
	default:
		return Playing
	}
}

// Running reports whether bones are sampled (playing or paused).
func (p *Playback) Running() bool { return p.running }

// Looped reports whether the clip wraps at its end.
func (p *Playback) Looped() bool { return p.looped }

// Ticks returns the current cursor position.
func (p *Playback) Ticks() float32 { return p.ticks }

// Speed returns the playback speed multiplier.
func (p *Playback) Speed() float32 { return p.speed }

// Play starts or resumes playback from the current cursor.
func (p *Playback) Play() {
	p.running = true
	p.paused = false
}

// Pause freezes the cursor. Bones keep being sampled at the frozen time.
func (p *Playback) Pause() {
	if p.running {
		p.paused = true
	}
}

// Resume continues a paused clip.
func (p *Playback) Resume() {
	if p.running {
		p.paused = false
	}
}

// Stop halts playback and rewinds to tick 0.
func (p *Playback) Stop() {
	p.running = false
	p.paused = false
	p.ticks = 0
}

// SetLooped toggles wraparound at the end of the clip.
func (p *Playback) SetLooped(looped bool) { p.looped = looped }

// SetSpeed sets the speed multiplier. Negative values are treated as zero.
func (p *Playback) SetSpeed(speed float32) {
	if speed < 0 {
		speed = 0
	}
	p.speed = speed
}

// Seek moves the cursor, clamped into [0, Duration).
func (p *Playback) Seek(ticks float32, clip Clip) {
	switch {
	case ticks < 0 || !clip.Valid():
		ticks = 0
	case ticks >= clip.Duration:
		ticks = math.Nextafter32(clip.Duration, 0)
	}
	p.ticks = ticks
}

// Advance moves the cursor by dt seconds. It only has an effect while
// playing. At the end of the clip a looped cursor wraps once, otherwise it
// rewinds to 0 and playback stops.
func (p *Playback) Advance(dt float32, clip Clip) {
	if p.State() != Playing {
		return
	}
	p.ticks += dt * clip.Rate() * p.speed
	if p.ticks < clip.Duration {
		return
	}
	if p.looped && clip.Valid() {
		p.ticks -= clip.Duration
		return
	}
	p.ticks = 0
	p.running = false
	p.paused = false
}
