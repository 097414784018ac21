// Package synth turns text into decoded speech samples by running an
// external speech engine and reading back the WAV file it writes.
package synth

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/unicode/norm"
)

// Synthesizer is the text to samples adapter. It builds a fresh engine for
// every call from the current settings, so a config reload takes effect on
// the next utterance.
type Synthesizer struct {
	settings func() Settings
	runner   Runner
	newEng   func(Settings, Runner) (Engine, error)
	tempDir  string
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithEngine makes every call use e instead of the configured engine.
func WithEngine(e Engine) Option {
	return func(s *Synthesizer) {
		s.newEng = func(Settings, Runner) (Engine, error) { return e, nil }
	}
}

// WithRunner replaces the subprocess runner.
func WithRunner(r Runner) Option {
	return func(s *Synthesizer) { s.runner = r }
}

// WithTempDir sets the directory for intermediate WAV files. The system
// temp directory is used by default.
func WithTempDir(dir string) Option {
	return func(s *Synthesizer) { s.tempDir = dir }
}

// New creates a Synthesizer. settings is consulted on every call.
func New(settings func() Settings, opts ...Option) *Synthesizer {
	if settings == nil {
		settings = DefaultSettings
	}
	s := &Synthesizer{
		settings: settings,
		newEng:   NewEngine,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// runnerFor returns the configured runner, or one bounded by the timeout
// of the current settings.
func (s *Synthesizer) runnerFor(settings Settings) Runner {
	if s.runner != nil {
		return s.runner
	}
	return NewExecRunner(settings.Timeout)
}

// Synthesize renders text and decodes the result. Blank text returns a nil
// buffer and a nil error without touching the engine. On error the buffer
// is always nil.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*Buffer, error) {
	text = norm.NFC.String(text)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	settings := s.settings()
	eng, err := s.newEng(settings, s.runnerFor(settings))
	if err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(s.tempDir, "cablespeak-*.wav")
	if err != nil {
		return nil, fmt.Errorf("unable to create temp file: %w", err)
	}
	path := f.Name()
	_ = f.Close()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn("unable to remove temp file", "path", path, "error", err)
		}
	}()

	start := time.Now()
	if err := eng.Render(ctx, text, path); err != nil {
		return nil, &EngineError{Engine: eng.Name(), Cause: err}
	}
	rendered := time.Since(start)

	if fi, err := os.Stat(path); err == nil {
		log.Debug("speech rendered",
			"engine", eng.Name(),
			"runes", len([]rune(text)),
			"size", humanize.Bytes(uint64(fi.Size())), //nolint:gosec
			"took", rendered)
	}

	buf, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug("speech decoded",
		"rate", buf.SampleRate,
		"channels", buf.Channels,
		"frames", humanize.Comma(int64(buf.Frames())),
		"duration", buf.Duration())
	return buf, nil
}
