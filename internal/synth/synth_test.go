package synth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func newTestSynthesizer(t *testing.T, eng Engine) (*Synthesizer, string) {
	t.Helper()
	dir := t.TempDir()
	return New(DefaultSettings, WithEngine(eng), WithTempDir(dir)), dir
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected temp dir to be empty, found %d entries", len(entries))
	}
}

func TestSynthesizeBlankTextSkipsEngine(t *testing.T) {
	eng := NewMockEngine()
	s, dir := newTestSynthesizer(t, eng)

	for _, text := range []string{"", " ", "\t\n", "\u00a0"} {
		buf, err := s.Synthesize(context.Background(), text)
		if err != nil {
			t.Errorf("%q: unexpected error %v", text, err)
		}
		if buf != nil {
			t.Errorf("%q: expected nil buffer", text)
		}
	}
	if eng.Calls() != 0 {
		t.Errorf("engine should not be invoked for blank text, got %d calls", eng.Calls())
	}
	assertEmptyDir(t, dir)
}

func TestSynthesizeMono(t *testing.T) {
	eng := NewMockEngine()
	s, dir := newTestSynthesizer(t, eng)

	buf, err := s.Synthesize(context.Background(), "Hello world")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if buf == nil {
		t.Fatal("expected a buffer")
	}
	frames, channels := buf.Shape()
	if channels != 1 {
		t.Errorf("expected 1 channel, got %d", channels)
	}
	if frames != len("Hello world")*eng.PerRune {
		t.Errorf("unexpected frame count %d", frames)
	}
	if buf.SampleRate != 22050 {
		t.Errorf("expected 22050Hz, got %d", buf.SampleRate)
	}
	for i, v := range buf.Samples {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %f", i, v)
		}
	}
	if eng.Calls() != 1 {
		t.Errorf("expected 1 engine call, got %d", eng.Calls())
	}
	assertEmptyDir(t, dir)
}

func TestSynthesizeStereo(t *testing.T) {
	eng := NewMockEngine()
	eng.Channels = 2
	s, _ := newTestSynthesizer(t, eng)

	buf, err := s.Synthesize(context.Background(), "stereo")
	if err != nil {
		t.Fatal(err)
	}
	if _, c := buf.Shape(); c != 2 {
		t.Errorf("expected 2 columns, got %d", c)
	}
}

func TestSynthesizeUnsupportedWidthRemovesTempFile(t *testing.T) {
	eng := NewMockEngine()
	eng.BitDepth = 8
	s, dir := newTestSynthesizer(t, eng)

	buf, err := s.Synthesize(context.Background(), "eight bits")
	if buf != nil {
		t.Error("expected nil buffer")
	}
	var werr *UnsupportedSampleWidthError
	if !errors.As(err, &werr) {
		t.Fatalf("expected UnsupportedSampleWidthError, got %v", err)
	}
	if werr.Width != 1 {
		t.Errorf("expected width 1, got %d", werr.Width)
	}
	if werr.Error() != "unsupported sample width: 1" {
		t.Errorf("unexpected message %q", werr.Error())
	}
	assertEmptyDir(t, dir)
}

func TestSynthesizeEngineFailure(t *testing.T) {
	eng := NewMockEngine()
	eng.Err = errors.New("boom")
	s, dir := newTestSynthesizer(t, eng)

	buf, err := s.Synthesize(context.Background(), "fail")
	if buf != nil {
		t.Error("expected nil buffer")
	}
	var eerr *EngineError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected EngineError, got %v", err)
	}
	if eerr.Engine != EngineMock {
		t.Errorf("expected engine %q, got %q", EngineMock, eerr.Engine)
	}
	assertEmptyDir(t, dir)
}

func TestSynthesizeUsesCurrentSettings(t *testing.T) {
	current := DefaultSettings()
	current.Engine = "nope"
	s := New(func() Settings { return current }, WithTempDir(t.TempDir()))

	if _, err := s.Synthesize(context.Background(), "hi"); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine, got %v", err)
	}

	current.Engine = EngineMock
	if _, err := s.Synthesize(context.Background(), "hi"); err != nil {
		t.Fatalf("expected reloaded settings to be used, got %v", err)
	}
}

func TestSynthesizeRunnerFollowsTimeout(t *testing.T) {
	current := DefaultSettings()
	s := New(func() Settings { return current })

	r, ok := s.runnerFor(current).(*ExecRunner)
	if !ok || r.timeout != current.Timeout {
		t.Fatalf("expected an exec runner with %v, got %+v", current.Timeout, r)
	}

	current.Timeout = 5 * time.Second
	if r := s.runnerFor(current).(*ExecRunner); r.timeout != 5*time.Second {
		t.Errorf("expected reloaded timeout, got %v", r.timeout)
	}

	fixed := &recordingRunner{}
	if got := New(DefaultSettings, WithRunner(fixed)).runnerFor(current); got != Runner(fixed) {
		t.Error("an explicit runner should be used as is")
	}
}
