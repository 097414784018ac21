package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/dgnsrekt/cablespeak/internal/audio"
	"github.com/dgnsrekt/cablespeak/internal/speak"
	"github.com/spf13/cobra"
)

const shellHelp = `Type a line to speak it on the selected device.
  /devices    list output devices
  /use <n>    select a device by index or name
  /help       show this help
  /quit       leave the shell`

var shellCmd = &cobra.Command{
	Use:     "shell",
	Short:   "Speak lines typed at a prompt",
	Long:    paragraph(fmt.Sprintf("\nA line-mode alternative to the TUI. Every line you %s is spoken on the selected device.", keyword("enter"))),
	Example: paragraph("cablespeak shell\ncablespeak shell --engine piper"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close() //nolint:errcheck

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "cablespeak> ",
			HistoryFile:     filepath.Join(os.TempDir(), ".cablespeak_history"),
			HistoryLimit:    100,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("unable to start readline: %w", err)
		}
		defer rl.Close() //nolint:errcheck

		sh := newShell(a.speaker, a.devices, rl.Stdout())
		sh.refresh()
		fmt.Fprintln(rl.Stdout(), shellHelp)

		for {
			line, err := rl.Readline()
			if err != nil {
				if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
					return nil
				}
				return fmt.Errorf("unable to read input: %w", err)
			}

			ctx, cancel := signalContext()
			quit := sh.handle(ctx, line)
			cancel()
			if quit {
				return nil
			}
		}
	},
}

type shellSpeaker interface {
	Speak(ctx context.Context, req speak.Request) (speak.Result, error)
}

// shell holds the line-mode session state: the device list from the last
// refresh and the current selection.
type shell struct {
	speaker  shellSpeaker
	list     func() ([]audio.Device, error)
	out      io.Writer
	devices  []audio.Device
	selected *audio.Device
}

func newShell(s shellSpeaker, list func() ([]audio.Device, error), out io.Writer) *shell {
	return &shell{speaker: s, list: list, out: out}
}

// refresh rebuilds the device list and keeps the selection only if the
// same index still names the same device. Otherwise the first entry is
// selected, as in the TUI.
func (s *shell) refresh() {
	devices, err := s.list()
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		s.devices = nil
		s.selected = nil
		return
	}
	s.devices = devices

	if s.selected != nil {
		for _, d := range devices {
			if d.Index == s.selected.Index && d.Name == s.selected.Name {
				return
			}
		}
	}
	s.selected = nil
	if len(devices) > 0 {
		d := devices[0]
		s.selected = &d
	}
}

// handle runs one input line and reports whether the shell should exit.
func (s *shell) handle(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	cmd, arg, _ := strings.Cut(input, " ")
	switch cmd {
	case "/quit", "/exit", "exit", "quit":
		return true
	case "/help":
		fmt.Fprintln(s.out, shellHelp)
		return false
	case "/devices":
		s.refresh()
		if err := writeDeviceTable(s.out, s.devices); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if s.selected != nil {
			fmt.Fprintf(s.out, "Selected: %s\n", s.selected)
		}
		return false
	case "/use":
		d, err := audio.FindDevice(s.devices, strings.TrimSpace(arg))
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return false
		}
		s.selected = &d
		fmt.Fprintf(s.out, "Selected: %s\n", d)
		return false
	}

	res, err := s.speaker.Speak(ctx, speak.Request{Text: input, Device: s.selected})
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", describeError(err))
		return false
	}
	fmt.Fprintf(s.out, "Spoke %s on %s\n", res.Duration.Round(100*time.Millisecond), res.Device)
	return false
}
