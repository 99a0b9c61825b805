// skeltool is a CLI utility for inspecting skinned models and their clips.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/engine/model"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "bones", "tree":
		err = cmdBones(args)
	case "sample":
		err = cmdSample(args)
	case "dump":
		err = cmdDump(args)
	case "play":
		err = cmdPlay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`skeltool - skinned model inspector

Usage:
  skeltool <command> [options] <model.gltf|model.glb>

Commands:
  bones <model>                      Print the bone hierarchy
  sample [-t sec] [-bone name] <model>
                                     Print bone matrices at a time
  dump [-what scene|skeleton|clip] <model>
                                     Dump imported structures
  play [-fps n] [-seconds s] [-loop] <model>
                                     Step playback and print the cursor

Examples:
  skeltool bones hero.glb
  skeltool sample -t 0.5 -bone Hips hero.glb
  skeltool play -fps 10 -seconds 3 -loop hero.glb`)
}

// loadModel imports and builds a model. Build errors still return the
// (empty) model so the tool can report what it got.
func loadModel(path string) (*asset.Scene, *model.SkinnedModel, error) {
	sc, err := asset.Load(path)
	if err != nil {
		return nil, nil, err
	}
	m, err := model.FromScene(sc)
	return sc, m, err
}

func singleModelArg(fs *flag.FlagSet, usage string) (string, error) {
	if fs.NArg() < 1 {
		return "", fmt.Errorf("usage: skeltool %s", usage)
	}
	return fs.Arg(0), nil
}

func cmdBones(args []string) error {
	fs := flag.NewFlagSet("bones", flag.ExitOnError)
	fs.Parse(args)
	path, err := singleModelArg(fs, "bones <model>")
	if err != nil {
		return err
	}
	_, m, err := loadModel(path)
	if err != nil {
		return err
	}
	printBones(os.Stdout, m)
	return nil
}

func printBones(w io.Writer, m *model.SkinnedModel) {
	infos := m.BoneDebugInfo()
	fmt.Fprintf(w, "Model: %s\n", m.Name)
	fmt.Fprintf(w, "Bones: %d\n", len(infos))
	if m.HasAnimation() {
		fmt.Fprintf(w, "Clip:  %s (%.0f ticks @ %.0f/s)\n", m.Clip.Name, m.Clip.Duration, m.Clip.Rate())
	}
	if n := m.DroppedInfluences(); n > 0 {
		fmt.Fprintf(w, "Dropped influences: %d\n", n)
	}
	fmt.Fprintln(w)

	for _, b := range infos {
		inv := ""
		if b.HasInverse {
			inv = " bind"
		}
		fmt.Fprintf(w, "%3d %s%s  [T%d R%d S%d]%s\n",
			b.WireID, strings.Repeat("  ", b.Depth), b.Name,
			b.PositionKeys, b.RotationKeys, b.ScaleKeys, inv)
	}
}

func cmdSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	at := fs.Float64("t", 0, "Time in seconds")
	bone := fs.String("bone", "", "Only print this bone")
	fs.Parse(args)
	path, err := singleModelArg(fs, "sample [-t sec] [-bone name] <model>")
	if err != nil {
		return err
	}
	_, m, err := loadModel(path)
	if err != nil {
		return err
	}
	return printSample(os.Stdout, m, float32(*at), *bone)
}

func printSample(w io.Writer, m *model.SkinnedModel, seconds float32, only string) error {
	if _, ok := m.Skeleton.Index(only); only != "" && !ok {
		return fmt.Errorf("unknown bone %q", only)
	}

	m.Playback.Play()
	m.Playback.Seek(seconds*m.Clip.Rate(), m.Clip)
	m.Update(0)

	fmt.Fprintf(w, "t=%.3fs ticks=%.1f\n", seconds, m.Playback.Ticks())
	mats := m.BoneMatrices()
	for i, b := range m.Skeleton.Bones {
		if only != "" && b.Name != only {
			continue
		}
		fmt.Fprintf(w, "%s\n", b.Name)
		mat := mats[i]
		for row := range 4 {
			fmt.Fprintf(w, "  [%8.4f %8.4f %8.4f %8.4f]\n",
				mat[row], mat[4+row], mat[8+row], mat[12+row])
		}
	}
	return nil
}
