package skeleton

import (
	"go.uber.org/zap"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/engine/animation"
	"github.com/Faultbox/skinlab/internal/logger"
	"github.com/Faultbox/skinlab/pkg/math"
)

// AttachChannels copies each channel's keys into the bone it names and
// returns how many channels were attached. Channels naming an unknown bone
// are skipped. Keys are stored sorted by time.
func AttachChannels(sk *Skeleton, channels []asset.Channel) int {
	log := logger.Named("skeleton")
	attached := 0

	for _, ch := range channels {
		idx, ok := sk.Index(ch.Bone)
		if !ok {
			log.Warn("skipping channel for unknown bone", zap.String("bone", ch.Bone))
			continue
		}

		tracks := tracksFromChannel(ch)
		if !tracks.Sorted() {
			log.Debug("sorting out-of-order keys", zap.String("bone", ch.Bone))
			tracks.Sort()
		}
		sk.Bones[idx].Tracks = tracks
		attached++
	}
	return attached
}

func tracksFromChannel(ch asset.Channel) animation.Tracks {
	tr := animation.Tracks{
		Positions: make([]animation.VecKey, len(ch.Positions)),
		Rotations: make([]animation.QuatKey, len(ch.Rotations)),
		Scales:    make([]animation.VecKey, len(ch.Scales)),
	}
	for i, k := range ch.Positions {
		tr.Positions[i] = animation.VecKey{Time: k.Time, Value: k.Value}
	}
	for i, k := range ch.Rotations {
		tr.Rotations[i] = animation.QuatKey{Time: k.Time, Value: math.QuatFromArray(k.Value).Normalize()}
	}
	for i, k := range ch.Scales {
		tr.Scales[i] = animation.VecKey{Time: k.Time, Value: k.Value}
	}
	return tr
}
