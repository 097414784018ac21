package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func withConfigPaths(t *testing.T, flag, def string) {
	t.Helper()
	oldFlag, oldDef := configFile, defaultConfigFile
	configFile, defaultConfigFile = flag, def
	t.Cleanup(func() { configFile, defaultConfigFile = oldFlag, oldDef })
}

func TestEnsureConfigFileFirstRun(t *testing.T) {
	def := filepath.Join(t.TempDir(), "cablespeak", "cablespeak.yml")
	withConfigPaths(t, "", def)

	if configPath() == "" {
		t.Fatal("expected a config path on first run")
	}
	if err := ensureConfigFile(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(def)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != defaultConfig {
		t.Error("expected the default config to be written")
	}

	// an existing file is left alone
	if err := os.WriteFile(def, []byte("engine: mock\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := ensureConfigFile(); err != nil {
		t.Fatal(err)
	}
	if b, _ := os.ReadFile(def); string(b) != "engine: mock\n" {
		t.Errorf("existing config overwritten: %q", b)
	}
}

func TestEnsureConfigFileRejectsExtension(t *testing.T) {
	withConfigPaths(t, filepath.Join(t.TempDir(), "cablespeak.toml"), "")
	if err := ensureConfigFile(); err == nil {
		t.Error("expected an error for a non-yaml config")
	}
}

func TestLoadConfigFileFromFlag(t *testing.T) {
	file := filepath.Join(t.TempDir(), "custom.yml")
	if err := os.WriteFile(file, []byte("engine: mock\nvoice: de\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	withConfigPaths(t, file, "")

	if err := loadConfigFile(file); err != nil {
		t.Fatal(err)
	}
	if configPath() != file {
		t.Errorf("expected --config to win, got %q", configPath())
	}
	s := loadSettings()
	if s.Engine != "mock" || s.Voice != "de" {
		t.Errorf("settings not read from the given file: %+v", s)
	}

	if err := loadConfigFile(filepath.Join(t.TempDir(), "missing.yml")); err != nil {
		t.Errorf("a missing file should not be an error, got %v", err)
	}
	viper.Reset()
}
