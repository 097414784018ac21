package synth

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// piperEngine drives the piper neural TTS binary. Text is fed on stdin and
// piper writes a WAV file with --output_file.
type piperEngine struct {
	binary string
	model  string
	runner Runner
}

func newPiperEngine(s Settings, runner Runner) (*piperEngine, error) {
	model := expandPath(s.PiperModel)
	if model == "" {
		return nil, errors.New("piper: no voice model configured (set piper.model)")
	}
	if _, err := os.Stat(model); err != nil {
		return nil, fmt.Errorf("piper: model file not found: %w", err)
	}
	bin, err := LookupBinary(expandPath(s.PiperBinary), "piper")
	if err != nil {
		return nil, err
	}
	return &piperEngine{binary: bin, model: model, runner: runner}, nil
}

func (e *piperEngine) Name() string { return EnginePiper }

func (e *piperEngine) Render(ctx context.Context, text, path string) error {
	return e.runner.Run(ctx, Command{
		Name:  e.binary,
		Args:  []string{"--model", e.model, "--output_file", path},
		Stdin: text,
	})
}
