package synth

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSampleWidth indicates the engine produced samples that
	// are not 16-bit signed PCM.
	ErrUnsupportedSampleWidth = errors.New("unsupported sample width")

	// ErrUnsupportedChannels indicates the container is neither mono nor
	// stereo.
	ErrUnsupportedChannels = errors.New("unsupported channel count")

	// ErrInvalidContainer indicates the engine output is not a readable WAV
	// file.
	ErrInvalidContainer = errors.New("invalid wave container")

	// ErrEngineNotFound indicates the configured engine binary is missing.
	ErrEngineNotFound = errors.New("speech engine not found")

	// ErrUnknownEngine indicates an unsupported engine name in the config.
	ErrUnknownEngine = errors.New("unknown speech engine")
)

// UnsupportedSampleWidthError reports the sample width, in bytes, of a
// rejected container.
type UnsupportedSampleWidthError struct {
	Width int
}

func (e *UnsupportedSampleWidthError) Error() string {
	return fmt.Sprintf("unsupported sample width: %d", e.Width)
}

// Is makes errors.Is(err, ErrUnsupportedSampleWidth) hold.
func (e *UnsupportedSampleWidthError) Is(target error) bool {
	return target == ErrUnsupportedSampleWidth
}

// EngineError wraps a failure of the external speech engine.
type EngineError struct {
	Engine string
	Cause  error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Engine, e.Cause)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}
