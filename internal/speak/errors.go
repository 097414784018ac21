package speak

import (
	"errors"

	"github.com/dgnsrekt/cablespeak/internal/audio"
	"github.com/dgnsrekt/cablespeak/internal/synth"
)

var (
	// ErrEmptyText indicates the utterance was empty or whitespace only.
	ErrEmptyText = errors.New("enter text to speak")

	// ErrNoDevice indicates no output device was selected.
	ErrNoDevice = errors.New("select an output device")
)

// ErrorKind groups request failures by how the shell reports them.
type ErrorKind int

const (
	// KindNone is the kind of a nil error.
	KindNone ErrorKind = iota
	// KindInvalidInput covers blank text and a missing device.
	KindInvalidInput
	// KindUnsupportedFormat covers engine output the decoder rejects.
	KindUnsupportedFormat
	// KindPlayback covers device and driver failures.
	KindPlayback
	// KindSynthesis covers engine failures.
	KindSynthesis
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid input"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindPlayback:
		return "playback"
	case KindSynthesis:
		return "synthesis"
	default:
		return "unknown"
	}
}

// Kind classifies err.
func Kind(err error) ErrorKind {
	var perr *audio.PlaybackError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyText), errors.Is(err, ErrNoDevice):
		return KindInvalidInput
	case errors.Is(err, synth.ErrUnsupportedSampleWidth),
		errors.Is(err, synth.ErrUnsupportedChannels),
		errors.Is(err, synth.ErrInvalidContainer):
		return KindUnsupportedFormat
	case errors.As(err, &perr):
		return KindPlayback
	default:
		return KindSynthesis
	}
}
