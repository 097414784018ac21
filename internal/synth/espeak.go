package synth

import "context"

// espeakEngine drives espeak-ng, or classic espeak when espeak-ng is not
// installed. Both write 16-bit mono WAV with -w.
type espeakEngine struct {
	binary string
	voice  string
	runner Runner
}

func newEspeakEngine(s Settings, runner Runner) (*espeakEngine, error) {
	candidates := []string{"espeak-ng", "espeak"}
	if s.EspeakBinary != "" {
		candidates = []string{expandPath(s.EspeakBinary)}
	}
	bin, err := LookupBinary(candidates...)
	if err != nil {
		return nil, err
	}
	return &espeakEngine{binary: bin, voice: s.Voice, runner: runner}, nil
}

func (e *espeakEngine) Name() string { return EngineEspeak }

func (e *espeakEngine) Render(ctx context.Context, text, path string) error {
	args := []string{"-w", path}
	if e.voice != "" {
		args = append(args, "-v", e.voice)
	}
	// "--" keeps text starting with a dash from being read as a flag
	args = append(args, "--", text)
	return e.runner.Run(ctx, Command{Name: e.binary, Args: args})
}
