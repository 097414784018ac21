package audio

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by NewHost.
const (
	BackendMalgo = "malgo"
	BackendOto   = "oto"
	BackendMock  = "mock"
)

// Host is the host audio subsystem.
type Host interface {
	// Devices enumerates every device the host knows about, including
	// ones without output channels.
	Devices() ([]Device, error)

	// PlayAndWait plays interleaved float32 samples on the device at index
	// and blocks until playback has finished or ctx is done.
	PlayAndWait(ctx context.Context, samples []float32, sampleRate, channels, index int) error

	// Close releases the host.
	Close() error
}

// NewHost creates the host for the named backend.
func NewHost(backend string) (Host, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMalgo, "miniaudio":
		return newMalgoHost()
	case BackendOto:
		return newOtoHost()
	case BackendMock:
		return NewMockHost(DefaultMockDevices()...), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: malgo, oto, mock)", ErrUnknownBackend, backend)
	}
}
