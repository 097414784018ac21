package audio

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/cablespeak/internal/synth"
)

// Player streams decoded speech to an output device.
type Player struct {
	host Host
}

// NewPlayer creates a player on top of h.
func NewPlayer(h Host) *Player {
	return &Player{host: h}
}

// Play sends buf to the device at index and blocks until it has been
// played. A nil buffer is a no-op. Failures are returned as *PlaybackError
// and never retried.
func (p *Player) Play(ctx context.Context, buf *synth.Buffer, device int) error {
	if buf == nil {
		return nil
	}

	start := time.Now()
	err := p.host.PlayAndWait(ctx, buf.Samples, buf.SampleRate, buf.Channels, device)
	if err != nil {
		log.Error("playback failed", "device", device, "error", err)
		return &PlaybackError{Device: device, Cause: err}
	}
	log.Debug("playback finished", "device", device, "audio", buf.Duration(), "took", time.Since(start))
	return nil
}
