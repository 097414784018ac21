package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# speech engine: espeak, piper, command or mock
engine: "espeak"
# voice passed to the engine (espeak voice name, e.g. "en", "ru", "de")
voice: "en"
# maximum time a single synthesis may take
timeout: "30s"

espeak:
  # binary: "/usr/bin/espeak-ng"

piper:
  binary: "piper"
  # model: "~/.local/share/piper-voices/en_US-lessac-medium.onnx"

# command line for the "command" engine; {text}, {output} and {voice}
# are substituted. The command must write a 16-bit PCM WAV file to {output}.
# command: "say -o {output} --data-format=LEI16@22050 {text}"

audio:
  # audio backend: malgo (choose any output device) or oto (system default)
  backend: "malgo"

log:
  # debug, info, warn or error
  level: "info"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the cablespeak config file",
	Long:    paragraph(fmt.Sprintf("\n%s the cablespeak config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("cablespeak config\ncablespeak config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		file := configPath()
		c, err := editor.Cmd("cablespeak", file)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", file)
		return nil
	},
}

// configPath returns the file the config command and the first run work
// on: --config, then the file viper read, then the default location.
func configPath() string {
	for _, p := range []string{configFile, viper.ConfigFileUsed(), defaultConfigFile} {
		if p != "" {
			return p
		}
	}
	return ""
}

// ensureConfigFile writes the default config unless the file exists.
func ensureConfigFile() error {
	file := configPath()
	if file == "" {
		return errors.New("no config file location found")
	}
	if ext := path.Ext(file); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	_, err := os.Stat(file)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("unable to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return fmt.Errorf("unable create directory: %w", err)
	}
	if err := os.WriteFile(file, []byte(defaultConfig), 0o600); err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	log.Debug("wrote default configuration", "path", file)
	return nil
}
