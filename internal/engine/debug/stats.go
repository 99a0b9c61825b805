package debug

import (
	"fmt"
	"time"
)

// FrameStats averages frame times over a fixed window.
type FrameStats struct {
	window  time.Duration
	elapsed time.Duration
	frames  int

	fps     float64
	frameMS float64
}

// NewFrameStats creates stats averaged over window.
func NewFrameStats(window time.Duration) *FrameStats {
	if window <= 0 {
		window = time.Second
	}
	return &FrameStats{window: window}
}

// Tick records one frame. It returns true when a new average is ready.
func (s *FrameStats) Tick(dt time.Duration) bool {
	s.elapsed += dt
	s.frames++
	if s.elapsed < s.window {
		return false
	}
	secs := s.elapsed.Seconds()
	s.fps = float64(s.frames) / secs
	s.frameMS = secs * 1000 / float64(s.frames)
	s.elapsed = 0
	s.frames = 0
	return true
}

// FPS returns the last averaged frame rate.
func (s *FrameStats) FPS() float64 {
	return s.fps
}

// FrameMS returns the last averaged frame time in milliseconds.
func (s *FrameStats) FrameMS() float64 {
	return s.frameMS
}

// Title formats the stats for a window title.
func (s *FrameStats) Title(base string, bones int, state string) string {
	return fmt.Sprintf("%s | %.0f FPS (%.2f ms) | %d bones | %s", base, s.fps, s.frameMS, bones, state)
}
