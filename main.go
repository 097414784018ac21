// Package main provides the entry point for the cablespeak CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/cablespeak/internal/audio"
	"github.com/dgnsrekt/cablespeak/internal/speak"
	"github.com/dgnsrekt/cablespeak/internal/synth"
	"github.com/dgnsrekt/cablespeak/ui"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	mouse      bool
	mockAudio  bool

	// defaultConfigFile is where the config lives when no file was found
	// and --config is not given.
	defaultConfigFile string

	rootCmd = &cobra.Command{
		Use:   "cablespeak",
		Short: "Speak typed text into any audio device",
		Long: paragraph(
			fmt.Sprintf("\nType text, pick an output device and %s. Route it into a virtual audio cable to talk in calls without a microphone.", keyword("hear it spoken")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	if cmd.Root().PersistentFlags().Changed("config") {
		if err := loadConfigFile(configFile); err != nil {
			return err
		}
	}
	mouse = viper.GetBool("mouse")

	s := loadSettings()
	switch s.Engine {
	case synth.EngineEspeak, synth.EnginePiper, synth.EngineCommand, synth.EngineMock:
	default:
		return fmt.Errorf("%w: %q", synth.ErrUnknownEngine, s.Engine)
	}
	if s.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if lvl := viper.GetString("log.level"); lvl != "" {
		l, err := log.ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		log.SetLevel(l)
	}
	return nil
}

// backendName returns the configured audio backend, honouring --mock-audio.
func backendName() string {
	if mockAudio {
		return audio.BackendMock
	}
	return viper.GetString("audio.backend")
}

// app bundles what every command needs to speak.
type app struct {
	host    audio.Host
	speaker *speak.Speaker
}

func newApp() (*app, error) {
	host, err := audio.NewHost(backendName())
	if err != nil {
		return nil, fmt.Errorf("unable to open audio backend: %w", err)
	}
	s := synth.New(currentSettings)
	return &app{
		host:    host,
		speaker: speak.New(s, audio.NewPlayer(host)),
	}, nil
}

func (a *app) devices() ([]audio.Device, error) {
	return audio.ListOutputDevices(a.host)
}

func (a *app) Close() error {
	return a.host.Close()
}

func execute(*cobra.Command, []string) error {
	return runTUI()
}

func runTUI() error {
	// Read environment to get debugging stuff
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}
	cfg.EnableMouse = mouse
	cfg.Engine = currentSettings().Engine
	cfg.Backend = backendName()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	watchConfig()

	if _, err := ui.NewProgram(cfg, a.speaker, a.devices).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// signalContext is cancelled on interrupt so a blocking playback started
// from the CLI can be aborted.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().String("engine", "", "speech engine: espeak, piper, command or mock")
	rootCmd.PersistentFlags().String("voice", "", "voice passed to the speech engine")
	rootCmd.PersistentFlags().String("backend", "", "audio backend: malgo or oto")
	rootCmd.PersistentFlags().BoolVar(&mockAudio, "mock-audio", false, "do not touch audio hardware")
	_ = rootCmd.PersistentFlags().MarkHidden("mock-audio")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse support")
	_ = rootCmd.Flags().MarkHidden("mouse")

	// Config bindings
	_ = viper.BindPFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))
	_ = viper.BindPFlag("voice", rootCmd.PersistentFlags().Lookup("voice"))
	_ = viper.BindPFlag("audio.backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))

	defaults := synth.DefaultSettings()
	viper.SetDefault("engine", defaults.Engine)
	viper.SetDefault("voice", defaults.Voice)
	viper.SetDefault("timeout", defaults.Timeout)
	viper.SetDefault("piper.binary", defaults.PiperBinary)
	viper.SetDefault("audio.backend", audio.BackendMalgo)
	viper.SetDefault("log.level", "info")

	rootCmd.AddCommand(configCmd, manCmd, sayCmd, devicesCmd, shellCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "cablespeak")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "cablespeak")}, dirs...)
	}

	if c := os.Getenv("CABLESPEAK_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("cablespeak")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("cablespeak")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	defaultConfigFile = filepath.Join(dirs[0], "cablespeak.yml")
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
		return
	}
	if err := loadConfigFile(defaultConfigFile); err != nil {
		log.Warn("Could not read default configuration", "err", err)
	}
}

// loadConfigFile makes path the config file and reads it. A missing file
// is not an error; `cablespeak config` creates it.
func loadConfigFile(path string) error {
	viper.SetConfigFile(path)
	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("unable to read config file %s: %w", path, err)
}
