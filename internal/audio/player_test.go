package audio

import (
	"context"
	"errors"
	"testing"

	"github.com/dgnsrekt/cablespeak/internal/synth"
)

func TestPlayNilBufferIsNoop(t *testing.T) {
	host := NewMockHost(DefaultMockDevices()...)
	p := NewPlayer(host)

	if err := p.Play(context.Background(), nil, 3); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if n := len(host.Calls()); n != 0 {
		t.Errorf("expected no host calls, got %d", n)
	}
}

func TestPlayForwardsBufferAndDevice(t *testing.T) {
	host := NewMockHost(DefaultMockDevices()...)
	p := NewPlayer(host)
	buf := &synth.Buffer{Samples: []float32{0, 0.5, -0.5, 0.25}, SampleRate: 22050, Channels: 2}

	if err := p.Play(context.Background(), buf, 3); err != nil {
		t.Fatal(err)
	}

	calls := host.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	c := calls[0]
	if c.Device != 3 || c.SampleRate != 22050 || c.Channels != 2 || len(c.Samples) != 4 {
		t.Errorf("unexpected call %+v", c)
	}
}

func TestPlayWrapsHostFailure(t *testing.T) {
	host := NewMockHost(DefaultMockDevices()...)
	cause := errors.New("device unplugged")
	host.PlayErr = cause
	p := NewPlayer(host)
	buf := &synth.Buffer{Samples: []float32{0}, SampleRate: 8000, Channels: 1}

	err := p.Play(context.Background(), buf, 1)
	var perr *PlaybackError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PlaybackError, got %v", err)
	}
	if perr.Device != 1 || !errors.Is(err, cause) {
		t.Errorf("unexpected error %v", err)
	}
	// not retried
	if n := len(host.Calls()); n != 1 {
		t.Errorf("expected a single attempt, got %d", n)
	}
}

func TestPlayMissingDevice(t *testing.T) {
	host := NewMockHost(DefaultMockDevices()...)
	p := NewPlayer(host)
	buf := &synth.Buffer{Samples: []float32{0}, SampleRate: 8000, Channels: 1}

	if err := p.Play(context.Background(), buf, 42); !errors.Is(err, ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
}
