package animation

// DefaultTicksPerSecond is used when a clip does not declare its rate.
const DefaultTicksPerSecond = 25

// Clip holds the timing of one imported animation.
type Clip struct {
	Name           string
	Duration       float32 // ticks
	TicksPerSecond float32
}

// Rate returns the clip's ticks per second, falling back to the default.
func (c Clip) Rate() float32 {
	if c.TicksPerSecond <= 0 {
		return DefaultTicksPerSecond
	}
	return c.TicksPerSecond
}

// Seconds returns the clip length in wall-clock seconds.
func (c Clip) Seconds() float32 {
	return c.Duration / c.Rate()
}

// Valid reports whether the clip has a positive length.
func (c Clip) Valid() bool {
	return c.Duration > 0
}
