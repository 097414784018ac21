package synth

import "time"

// Buffer holds decoded speech as interleaved, normalized float32 samples.
// Logically it is a frames x channels matrix. A Buffer is never modified
// after Synthesize returns it.
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Frames returns the number of frames in the buffer.
func (b *Buffer) Frames() int {
	if b == nil || b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Shape returns the (frames, channels) dimensions of the buffer.
func (b *Buffer) Shape() (int, int) {
	if b == nil {
		return 0, 0
	}
	return b.Frames(), b.Channels
}

// At returns the sample of the given channel in the given frame.
func (b *Buffer) At(frame, channel int) float32 {
	return b.Samples[frame*b.Channels+channel]
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}
