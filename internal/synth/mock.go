package synth

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync/atomic"
	"unicode/utf8"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// MockEngine renders a short sine tone instead of speech. It is used for
// demos on machines without a speech engine and throughout the tests.
type MockEngine struct {
	SampleRate int
	Channels   int
	BitDepth   int

	// PerRune is the number of frames rendered for every rune of text.
	PerRune int

	// Err, when set, is returned by Render instead of writing audio.
	Err error

	calls atomic.Int64
}

// NewMockEngine returns a mock engine producing 16-bit mono 22050Hz audio.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		SampleRate: 22050,
		Channels:   1,
		BitDepth:   16,
		PerRune:    1323, // 60ms
	}
}

func (e *MockEngine) Name() string { return EngineMock }

// Calls returns how many times Render was invoked.
func (e *MockEngine) Calls() int { return int(e.calls.Load()) }

func (e *MockEngine) Render(_ context.Context, text, path string) error {
	e.calls.Add(1)
	if e.Err != nil {
		return e.Err
	}

	frames := utf8.RuneCountInString(text) * e.PerRune
	data := make([]int, 0, frames*e.Channels)
	peak := float64(int(1)<<(e.BitDepth-1)-1) * 0.25
	for i := 0; i < frames; i++ {
		v := int(peak * math.Sin(2*math.Pi*440*float64(i)/float64(e.SampleRate)))
		for c := 0; c < e.Channels; c++ {
			data = append(data, v)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mock: %w", err)
	}
	enc := wav.NewEncoder(f, e.SampleRate, e.BitDepth, e.Channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: e.Channels, SampleRate: e.SampleRate},
		Data:           data,
		SourceBitDepth: e.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("mock: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("mock: %w", err)
	}
	return f.Close()
}
