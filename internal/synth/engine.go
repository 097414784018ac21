package synth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

// Engine names accepted in Settings.Engine.
const (
	EngineEspeak  = "espeak"
	EnginePiper   = "piper"
	EngineCommand = "command"
	EngineMock    = "mock"
)

// Engine renders speech for a piece of text into a WAV container.
type Engine interface {
	// Name returns the engine name used in logs and errors.
	Name() string

	// Render writes a PCM WAV file for text to path. The file already
	// exists and is empty when Render is called.
	Render(ctx context.Context, text, path string) error
}

// Settings selects and configures the speech engine. The voice is a single
// fixed default; there is no per-request voice selection.
type Settings struct {
	Engine  string
	Voice   string
	Timeout time.Duration

	EspeakBinary string
	PiperBinary  string
	PiperModel   string

	// Command is a command line template for the "command" engine. The
	// placeholders {text}, {output} and {voice} are substituted.
	Command string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Engine:      EngineEspeak,
		Voice:       "en",
		Timeout:     DefaultTimeout,
		PiperBinary: "piper",
	}
}

// NewEngine builds the engine described by s.
func NewEngine(s Settings, runner Runner) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s.Engine)) {
	case "", EngineEspeak, "espeak-ng":
		return newEspeakEngine(s, runner)
	case EnginePiper:
		return newPiperEngine(s, runner)
	case EngineCommand:
		return newCommandEngine(s, runner)
	case EngineMock:
		return NewMockEngine(), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: espeak, piper, command, mock)", ErrUnknownEngine, s.Engine)
	}
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	if x, err := homedir.Expand(p); err == nil {
		return x
	}
	return p
}
