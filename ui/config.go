package ui

import "time"

// Config contains TUI-specific configuration.
type Config struct {
	EnableMouse bool

	// Backend is the audio backend name, shown in the header.
	Backend string

	// Engine is the speech engine name, shown in the header.
	Engine string

	// Minimum time between two device refreshes.
	RefreshLimit time.Duration `env:"CABLESPEAK_REFRESH_LIMIT" envDefault:"500ms"`

	// How long transient status messages stay on screen.
	StatusTimeout time.Duration `env:"CABLESPEAK_STATUS_TIMEOUT" envDefault:"3s"`

	// Number of device rows visible at once.
	DeviceRows int `env:"CABLESPEAK_DEVICE_ROWS" envDefault:"6"`
}
