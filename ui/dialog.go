package ui

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgnsrekt/cablespeak/internal/audio"
	"github.com/dgnsrekt/cablespeak/internal/speak"
	"github.com/muesli/reflow/wordwrap"
)

const dialogWidth = 48

type dialogLevel int

const (
	levelWarning dialogLevel = iota
	levelError
)

// dialog is a modal notification. While one is open every key except
// dismiss and quit is ignored.
type dialog struct {
	level   dialogLevel
	title   string
	message string
}

func warningDialog(message string) *dialog {
	return &dialog{level: levelWarning, title: "Attention", message: message}
}

func errorDialog(title, message string) *dialog {
	return &dialog{level: levelError, title: title, message: message}
}

// dialogFor maps a failed request onto the notification the user sees.
func dialogFor(err error) *dialog {
	switch speak.Kind(err) {
	case speak.KindNone:
		return nil
	case speak.KindInvalidInput:
		return warningDialog(sentence(err.Error()))
	case speak.KindUnsupportedFormat:
		return errorDialog("Error", sentence(err.Error()))
	case speak.KindPlayback:
		var perr *audio.PlaybackError
		if errors.As(err, &perr) {
			return errorDialog("Playback error", perr.Cause.Error())
		}
		return errorDialog("Playback error", err.Error())
	default:
		return errorDialog("Speech engine error", err.Error())
	}
}

// sentence capitalises s and terminates it with a period.
func sentence(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[n:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

func (d *dialog) View() string {
	color := yellow
	icon := "!"
	if d.level == levelError {
		color = red
		icon = "✗"
	}

	title := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + d.title)
	body := wordwrap.String(d.message, dialogWidth)
	hint := subtleStyle.Render("esc / enter to dismiss")

	return dialogStyle.
		BorderForeground(color).
		Width(dialogWidth + 4).
		Render(title + "\n\n" + body + "\n\n" + hint)
}
