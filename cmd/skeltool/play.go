package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/skinlab/internal/engine/model"
)

func cmdPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	fps := fs.Int("fps", 10, "Steps per second")
	seconds := fs.Float64("seconds", 2, "Simulated time")
	loop := fs.Bool("loop", false, "Loop the clip")
	speed := fs.Float64("speed", 1, "Playback speed")
	fs.Parse(args)
	path, err := singleModelArg(fs, "play [-fps n] [-seconds s] [-loop] <model>")
	if err != nil {
		return err
	}
	if *fps <= 0 {
		return fmt.Errorf("fps must be positive")
	}
	_, m, err := loadModel(path)
	if err != nil {
		return err
	}
	m.Playback.SetLooped(*loop)
	m.Playback.SetSpeed(float32(*speed))
	play(os.Stdout, m, *fps, float32(*seconds))
	return nil
}

// play steps the model at a fixed rate and prints the cursor and the root
// bone's translation after each step.
func play(w io.Writer, m *model.SkinnedModel, fps int, seconds float32) {
	if !m.HasAnimation() {
		fmt.Fprintln(w, "model has no animation")
		return
	}
	m.Playback.Play()
	dt := 1 / float32(fps)
	steps := int(seconds*float32(fps) + 0.5)

	fmt.Fprintf(w, "%6s %10s %-8s %s\n", "step", "ticks", "state", "root")
	for step := 1; step <= steps; step++ {
		m.Update(dt)
		root := m.BoneMatrices()[0].Translation()
		fmt.Fprintf(w, "%6d %10.1f %-8s (%.3f, %.3f, %.3f)\n",
			step, m.Playback.Ticks(), m.Playback.State(), root[0], root[1], root[2])
	}
}
