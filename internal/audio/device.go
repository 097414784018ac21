package audio

import (
	"fmt"
	"strconv"

	"github.com/sahilm/fuzzy"
)

// Device is an output endpoint as reported by the host. Index is the
// position in the host's enumeration and is only valid until the next
// enumeration.
type Device struct {
	Index             int    `yaml:"index"`
	Name              string `yaml:"name"`
	MaxOutputChannels int    `yaml:"max_output_channels"`
	IsDefault         bool   `yaml:"default,omitempty"`
}

func (d Device) String() string {
	return fmt.Sprintf("%d: %s", d.Index, d.Name)
}

// ListOutputDevices queries the host and keeps the devices that can output
// at least one channel, in host order.
func ListOutputDevices(h Host) ([]Device, error) {
	all, err := h.Devices()
	if err != nil {
		return nil, fmt.Errorf("unable to query audio devices: %w", err)
	}
	out := make([]Device, 0, len(all))
	for _, d := range all {
		if d.MaxOutputChannels > 0 {
			out = append(out, d)
		}
	}
	return out, nil
}

type deviceNames []Device

func (d deviceNames) String(i int) string { return d[i].Name }
func (d deviceNames) Len() int            { return len(d) }

// FindDevice resolves a user supplied device reference. A number is taken
// as a host index; anything else is fuzzy matched against device names and
// the best match wins.
func FindDevice(devices []Device, ref string) (Device, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		for _, d := range devices {
			if d.Index == i {
				return d, nil
			}
		}
		return Device{}, fmt.Errorf("%w: index %d", ErrDeviceNotFound, i)
	}

	matches := fuzzy.FindFrom(ref, deviceNames(devices))
	if len(matches) == 0 {
		return Device{}, fmt.Errorf("%w: %q", ErrDeviceNotFound, ref)
	}
	return devices[matches[0].Index], nil
}
