package audio

import (
	"context"
	"fmt"
	"sync"
)

// PlayCall records one PlayAndWait invocation on a MockHost.
type PlayCall struct {
	Samples    []float32
	SampleRate int
	Channels   int
	Device     int
}

// MockHost simulates a host audio subsystem without touching hardware.
type MockHost struct {
	mu      sync.Mutex
	devices []Device
	calls   []PlayCall

	// PlayErr, when set, is returned from PlayAndWait.
	PlayErr error

	// DevicesErr, when set, is returned from Devices.
	DevicesErr error

	// OnPlay is invoked synchronously from PlayAndWait.
	OnPlay func(PlayCall)
}

// NewMockHost creates a mock host reporting the given devices.
func NewMockHost(devices ...Device) *MockHost {
	return &MockHost{devices: devices}
}

// DefaultMockDevices mirrors a typical desktop with a virtual cable
// installed, including a capture-only entry.
func DefaultMockDevices() []Device {
	return []Device{
		{Index: 0, Name: "Microphone (USB Audio)", MaxOutputChannels: 0},
		{Index: 1, Name: "Speakers (Realtek High Definition Audio)", MaxOutputChannels: 2, IsDefault: true},
		{Index: 2, Name: "CABLE Output (VB-Audio Virtual Cable)", MaxOutputChannels: 0},
		{Index: 3, Name: "CABLE Input (VB-Audio Virtual Cable)", MaxOutputChannels: 2},
	}
}

// SetDevices replaces the reported device list.
func (m *MockHost) SetDevices(devices ...Device) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.devices = devices
}

func (m *MockHost) Devices() ([]Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DevicesErr != nil {
		return nil, m.DevicesErr
	}
	return append([]Device(nil), m.devices...), nil
}

func (m *MockHost) PlayAndWait(ctx context.Context, samples []float32, sampleRate, channels, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	call := PlayCall{Samples: samples, SampleRate: sampleRate, Channels: channels, Device: index}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	found := false
	for _, d := range m.devices {
		if d.Index == index {
			found = true
			break
		}
	}
	onPlay, playErr := m.OnPlay, m.PlayErr
	m.mu.Unlock()

	if onPlay != nil {
		onPlay(call)
	}
	if playErr != nil {
		return playErr
	}
	if !found {
		return fmt.Errorf("%w: index %d", ErrDeviceNotFound, index)
	}
	return nil
}

// Calls returns every recorded PlayAndWait invocation.
func (m *MockHost) Calls() []PlayCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PlayCall(nil), m.calls...)
}

func (m *MockHost) Close() error { return nil }
