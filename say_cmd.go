package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/cablespeak/internal/audio"
	"github.com/dgnsrekt/cablespeak/internal/speak"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	sayDevice    string
	sayClipboard bool

	sayCmd = &cobra.Command{
		Use:   "say [text...]",
		Short: "Speak text once and exit",
		Long: paragraph(fmt.Sprintf("\n%s the given text on an output device. Without arguments the text is read from stdin when it is piped, or from the clipboard with --clipboard.", keyword("Speak"))),
		Example: paragraph(`cablespeak say "Hello world" --device 3
echo "Hello world" | cablespeak say --device "CABLE Input"
cablespeak say --clipboard`),
		RunE: runSay,
	}
)

func runSay(cmd *cobra.Command, args []string) error {
	text, err := sayText(args, os.Stdin, sayClipboard)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	devices, err := a.devices()
	if err != nil {
		return err
	}
	dev, err := pickDevice(devices, sayDevice)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := a.speaker.Speak(ctx, speak.Request{Text: text, Device: dev})
	if err != nil {
		return describeError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Spoke %s (%s frames) on %s\n",
		res.Duration.Round(10*time.Millisecond), humanize.Comma(int64(res.Frames)), res.Device)
	return nil
}

// sayText picks the utterance from, in order, the arguments, the clipboard
// when asked for, and stdin when it is not a terminal.
func sayText(args []string, stdin *os.File, fromClipboard bool) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if fromClipboard {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("unable to read clipboard: %w", err)
		}
		return text, nil
	}
	if stdin != nil && !term.IsTerminal(int(stdin.Fd())) { //nolint:gosec
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("unable to read stdin: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return "", nil
}

// pickDevice resolves ref against devices. An empty ref selects the host's
// default output, or the first device when the host marks none. A nil
// device without an error means there is nothing to select.
func pickDevice(devices []audio.Device, ref string) (*audio.Device, error) {
	if ref != "" {
		d, err := audio.FindDevice(devices, ref)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}
	for _, d := range devices {
		if d.IsDefault {
			return &d, nil
		}
	}
	if len(devices) == 0 {
		return nil, nil
	}
	d := devices[0]
	return &d, nil
}

// describeError turns request failures into the messages the shell shows.
func describeError(err error) error {
	switch speak.Kind(err) {
	case speak.KindInvalidInput:
		return err
	case speak.KindUnsupportedFormat:
		log.Error("unsupported audio", "error", err)
		return fmt.Errorf("the speech engine produced unsupported audio: %w", err)
	case speak.KindPlayback:
		var perr *audio.PlaybackError
		if errors.As(err, &perr) {
			return fmt.Errorf("playback error: %w", perr.Cause)
		}
	}
	return err
}

func init() {
	sayCmd.Flags().StringVarP(&sayDevice, "device", "d", "", "output device index or name")
	sayCmd.Flags().BoolVarP(&sayClipboard, "clipboard", "c", false, "speak the clipboard contents")
}
