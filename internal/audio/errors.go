package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrAudioUnavailable indicates the binary was built without audio
	// support.
	ErrAudioUnavailable = errors.New("audio not available in nocgo build")

	// ErrDeviceNotFound indicates the requested device index no longer
	// exists on the host.
	ErrDeviceNotFound = errors.New("output device not found")

	// ErrHostClosed indicates the host was used after Close.
	ErrHostClosed = errors.New("audio host closed")

	// ErrUnknownBackend indicates an unsupported audio backend name.
	ErrUnknownBackend = errors.New("unknown audio backend")
)

// PlaybackError wraps any failure raised while playing on a device.
type PlaybackError struct {
	Device int
	Cause  error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback on device %d failed: %v", e.Device, e.Cause)
}

func (e *PlaybackError) Unwrap() error {
	return e.Cause
}
