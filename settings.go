package main

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/cablespeak/internal/synth"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var settings atomic.Pointer[synth.Settings]

// loadSettings reads the engine settings from viper and makes them current.
func loadSettings() synth.Settings {
	s := synth.Settings{
		Engine:       strings.ToLower(strings.TrimSpace(viper.GetString("engine"))),
		Voice:        viper.GetString("voice"),
		Timeout:      viper.GetDuration("timeout"),
		EspeakBinary: viper.GetString("espeak.binary"),
		PiperBinary:  viper.GetString("piper.binary"),
		PiperModel:   viper.GetString("piper.model"),
		Command:      viper.GetString("command"),
	}
	if s.Engine == "espeak-ng" {
		s.Engine = synth.EngineEspeak
	}
	settings.Store(&s)
	return s
}

// currentSettings is consulted by the synthesizer on every utterance.
func currentSettings() synth.Settings {
	if s := settings.Load(); s != nil {
		return *s
	}
	return loadSettings()
}

// watchConfig reloads engine settings when the config file changes, so a
// running shell picks up a new engine or voice on the next utterance.
func watchConfig() {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		s := loadSettings()
		log.Info("configuration reloaded", "path", e.Name, "engine", s.Engine, "voice", s.Voice)
	})
	viper.WatchConfig()
}
