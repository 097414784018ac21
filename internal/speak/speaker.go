// Package speak runs one speech request: validate, synthesize, play.
package speak

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/cablespeak/internal/audio"
	"github.com/dgnsrekt/cablespeak/internal/synth"
	"github.com/google/uuid"
)

// Synthesizer produces decoded speech for text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*synth.Buffer, error)
}

// Player plays decoded speech on a device.
type Player interface {
	Play(ctx context.Context, buf *synth.Buffer, device int) error
}

// Request is a single utterance aimed at a device. A nil Device means the
// user has not selected one.
type Request struct {
	Text   string
	Device *audio.Device
}

// Result describes a completed request.
type Result struct {
	ID       string
	Device   audio.Device
	Duration time.Duration
	Frames   int
	Took     time.Duration
}

// Speaker runs requests synchronously. Synthesis and playback are two
// sequential stages of one call; a cancelled context stops the request
// before the next stage starts.
type Speaker struct {
	synth  Synthesizer
	player Player
}

// New creates a Speaker.
func New(s Synthesizer, p Player) *Speaker {
	return &Speaker{synth: s, player: p}
}

// Speak validates the request, synthesizes the text and plays it, blocking
// until playback ends. The device is checked before synthesis so that no
// audio is rendered for a request that cannot be played.
func (s *Speaker) Speak(ctx context.Context, req Request) (Result, error) {
	res := Result{ID: uuid.NewString()}
	logger := log.With("request", res.ID)

	if strings.TrimSpace(req.Text) == "" {
		return res, ErrEmptyText
	}
	if req.Device == nil {
		return res, ErrNoDevice
	}
	res.Device = *req.Device

	start := time.Now()
	logger.Info("speaking", "device", req.Device.Index, "runes", len([]rune(req.Text)))

	buf, err := s.synth.Synthesize(ctx, req.Text)
	if err != nil {
		logger.Error("synthesis failed", "error", err)
		return res, err
	}
	if buf == nil {
		// the synthesizer treats blank-after-normalisation text as a no-op
		return res, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := s.player.Play(ctx, buf, req.Device.Index); err != nil {
		return res, err
	}

	res.Duration = buf.Duration()
	res.Frames = buf.Frames()
	res.Took = time.Since(start)
	logger.Info("spoken", "audio", res.Duration, "took", res.Took)
	return res, nil
}
