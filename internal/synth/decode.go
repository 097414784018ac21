package synth

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// pcm16Scale maps the int16 range onto [-1.0, 1.0).
const pcm16Scale = 32768.0

// DecodeFile decodes the WAV container at path.
func DecodeFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open wave file: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return Decode(f)
}

// Decode reads a PCM WAV container and converts its samples to normalized
// floats. Only 16-bit signed samples in mono or stereo are accepted.
func Decode(r io.ReadSeeker) (*Buffer, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
		}
		return nil, ErrInvalidContainer
	}

	if d.BitDepth != 16 {
		return nil, &UnsupportedSampleWidthError{Width: int(d.BitDepth) / 8}
	}
	channels := int(d.NumChans)
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("unable to read samples: %w", err)
	}

	// a trailing partial frame is dropped so the shape stays rectangular
	n := len(pcm.Data) - len(pcm.Data)%channels
	samples := make([]float32, n)
	for i, v := range pcm.Data[:n] {
		samples[i] = float32(v) / pcm16Scale
	}

	return &Buffer{
		Samples:    samples,
		SampleRate: int(d.SampleRate),
		Channels:   channels,
	}, nil
}
