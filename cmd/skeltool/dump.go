package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/engine/model"
)

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                8,
}

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	what := fs.String("what", "skeleton", "What to dump: scene, skeleton or clip")
	depth := fs.Int("depth", spewConfig.MaxDepth, "Maximum nesting depth")
	fs.Parse(args)
	path, err := singleModelArg(fs, "dump [-what scene|skeleton|clip] <model>")
	if err != nil {
		return err
	}
	sc, m, err := loadModel(path)
	if err != nil {
		return err
	}
	cfg := *spewConfig
	cfg.MaxDepth = *depth
	return dump(os.Stdout, &cfg, *what, sc, m)
}

func dump(w io.Writer, cfg *spew.ConfigState, what string, sc *asset.Scene, m *model.SkinnedModel) error {
	switch what {
	case "scene":
		cfg.Fdump(w, sc.Root)
	case "skeleton":
		cfg.Fdump(w, m.Skeleton.Bones)
	case "clip":
		cfg.Fdump(w, m.Clip, m.Playback)
	default:
		return fmt.Errorf("unknown dump target %q", what)
	}
	return nil
}
