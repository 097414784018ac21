package synth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// commandEngine runs a user supplied command line. The template is split
// into words first and placeholders are substituted per word, so the text
// never goes through a shell.
type commandEngine struct {
	argv   []string
	voice  string
	runner Runner
}

func newCommandEngine(s Settings, runner Runner) (*commandEngine, error) {
	argv, err := shellwords.NewParser().Parse(s.Command)
	if err != nil {
		return nil, fmt.Errorf("parse engine command: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("engine command is empty (set command)")
	}
	if !strings.Contains(s.Command, "{output}") {
		return nil, errors.New("engine command must contain an {output} placeholder")
	}
	bin, err := LookupBinary(expandPath(argv[0]))
	if err != nil {
		return nil, err
	}
	argv[0] = bin
	return &commandEngine{argv: argv, voice: s.Voice, runner: runner}, nil
}

func (e *commandEngine) Name() string { return EngineCommand }

func (e *commandEngine) Render(ctx context.Context, text, path string) error {
	r := strings.NewReplacer("{text}", text, "{output}", path, "{voice}", e.voice)
	args := make([]string, 0, len(e.argv)-1)
	for _, a := range e.argv[1:] {
		args = append(args, r.Replace(a))
	}
	return e.runner.Run(ctx, Command{Name: e.argv[0], Args: args})
}
