//go:build !nocgo
// +build !nocgo

package audio

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoHost plays through the system default output with oto. oto cannot
// pick a device, so it reports a single one.
type otoHost struct {
	mu       sync.Mutex
	ctx      *oto.Context
	rate     int
	channels int
}

func newOtoHost() (*otoHost, error) {
	return &otoHost{}, nil
}

func (h *otoHost) Devices() ([]Device, error) {
	return []Device{{Index: 0, Name: "System default", MaxOutputChannels: 2, IsDefault: true}}, nil
}

// context returns the process wide oto context. oto allows only one per
// process, so its format is fixed by the first utterance.
func (h *otoHost) context(rate, channels int) (*oto.Context, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctx != nil {
		if rate != h.rate || channels != h.channels {
			return nil, fmt.Errorf("oto backend is fixed at %dHz/%dch, got %dHz/%dch", h.rate, h.channels, rate, channels)
		}
		return h.ctx, nil
	}

	options := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}
	switch runtime.GOOS {
	case "darwin":
		options.BufferSize = 100 * time.Millisecond
	default:
		options.BufferSize = 50 * time.Millisecond
	}

	c, ready, err := oto.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("unable to create audio context: %w", err)
	}
	<-ready

	h.ctx, h.rate, h.channels = c, rate, channels
	return c, nil
}

func (h *otoHost) PlayAndWait(ctx context.Context, samples []float32, sampleRate, channels, index int) error {
	if index != 0 {
		return fmt.Errorf("%w: index %d", ErrDeviceNotFound, index)
	}
	c, err := h.context(sampleRate, channels)
	if err != nil {
		return err
	}

	p := c.NewPlayer(bytes.NewReader(Float32ToBytes(samples)))
	defer p.Close() //nolint:errcheck
	p.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return p.Err()
}

// Close is a no-op: an oto context lives until the process exits.
func (h *otoHost) Close() error { return nil }
