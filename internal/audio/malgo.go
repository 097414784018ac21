//go:build !nocgo
// +build !nocgo

package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/malgo"
)

// unknownChannels is reported for devices whose native formats could not be
// queried or accept any channel count.
const unknownChannels = 2

// malgoHost talks to the platform audio API through miniaudio.
type malgoHost struct {
	mu      sync.Mutex
	ctx     *malgo.AllocatedContext
	closed  bool
	playing sync.WaitGroup
}

func newMalgoHost() (*malgoHost, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to initialise audio context: %w", err)
	}
	return &malgoHost{ctx: ctx}, nil
}

// withContext runs fn under the host lock so the context cannot be freed
// by Close while fn uses it.
func (h *malgoHost) withContext(fn func(*malgo.AllocatedContext) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	return fn(h.ctx)
}

// Devices enumerates playback endpoints. The channel capacity comes from a
// detailed per-device query, which enumeration alone does not fill in.
func (h *malgoHost) Devices() ([]Device, error) {
	var devices []Device
	err := h.withContext(func(ctx *malgo.AllocatedContext) error {
		infos, err := ctx.Devices(malgo.Playback)
		if err != nil {
			return err
		}
		devices = make([]Device, 0, len(infos))
		for i, info := range infos {
			detailed, err := ctx.DeviceInfo(malgo.Playback, info.ID, malgo.Shared)
			if err != nil {
				log.Debug("device info query failed", "device", info.Name(), "error", err)
				detailed = info
			}
			devices = append(devices, Device{
				Index:             i,
				Name:              info.Name(),
				MaxOutputChannels: maxChannels(detailed),
				IsDefault:         info.IsDefault != 0,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func maxChannels(info malgo.DeviceInfo) int {
	n := int(info.FormatCount)
	if n > len(info.Formats) {
		n = len(info.Formats)
	}
	if n == 0 {
		return unknownChannels
	}
	best := 0
	for _, f := range info.Formats[:n] {
		if f.Channels == 0 {
			// zero means the device takes any channel count
			return unknownChannels
		}
		if int(f.Channels) > best {
			best = int(f.Channels)
		}
	}
	return best
}

// PlayAndWait opens the device at index for float32 output and feeds it
// from the data callback until the samples and the drain periods run out.
func (h *malgoHost) PlayAndWait(ctx context.Context, samples []float32, sampleRate, channels, index int) error {
	const periods = 2

	feeder := newPCMFeeder(Float32ToBytes(samples), channels*bytesPerFloat, periods)
	done := make(chan struct{}, 1)

	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frameCount uint32) {
			if feeder.fill(out, frameCount) {
				select {
				case done <- struct{}{}:
				default:
				}
			}
		},
	}

	var device *malgo.Device
	err := h.withContext(func(mctx *malgo.AllocatedContext) error {
		infos, err := mctx.Devices(malgo.Playback)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(infos) {
			return fmt.Errorf("%w: index %d", ErrDeviceNotFound, index)
		}

		cfg := malgo.DefaultDeviceConfig(malgo.Playback)
		cfg.Playback.Format = malgo.FormatF32
		cfg.Playback.Channels = uint32(channels) //nolint:gosec
		cfg.Playback.DeviceID = infos[index].ID.Pointer()
		cfg.SampleRate = uint32(sampleRate) //nolint:gosec
		cfg.PeriodSizeInFrames = 512
		cfg.Periods = periods

		device, err = malgo.InitDevice(mctx.Context, cfg, callbacks)
		if err != nil {
			return fmt.Errorf("unable to open device %d: %w", index, err)
		}
		h.playing.Add(1)
		return nil
	})
	if err != nil {
		return err
	}
	defer h.playing.Done()
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("unable to start device %d: %w", index, err)
	}
	defer device.Stop() //nolint:errcheck

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Close releases the context once in-flight playback has finished.
func (h *malgoHost) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	h.playing.Wait()
	err := h.ctx.Uninit()
	h.ctx.Free()
	return err
}
