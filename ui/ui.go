// Package ui provides the interactive terminal shell for cablespeak.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/cablespeak/internal/audio"
	"github.com/dgnsrekt/cablespeak/internal/speak"
	"github.com/mattn/go-runewidth"
	te "github.com/muesli/termenv"
	"golang.org/x/time/rate"
)

const ellipsis = "…"

// Speaker runs a speech request to completion.
type Speaker interface {
	Speak(ctx context.Context, req speak.Request) (speak.Result, error)
}

// DeviceLister returns the current output devices.
type DeviceLister func() ([]audio.Device, error)

// NewProgram returns a new Tea program.
func NewProgram(cfg Config, s Speaker, devices DeviceLister) *tea.Program {
	log.Debug("starting cablespeak", "engine", cfg.Engine, "backend", cfg.Backend)

	lipgloss.SetHasDarkBackground(te.HasDarkBackground())

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(newModel(cfg, s, devices), opts...)
}

type focusArea int

const (
	focusText focusArea = iota
	focusDevices
)

type (
	devicesMsg struct {
		devices []audio.Device
		err     error
	}
	speakDoneMsg struct {
		res speak.Result
		err error
	}
	clipboardMsg struct {
		text string
		err  error
	}
	statusMessageTimeoutMsg struct{ seq int }
)

type model struct {
	cfg    Config
	keys   keyMap
	width  int
	height int

	speaker Speaker
	list    DeviceLister
	limiter *rate.Limiter

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	focus   focusArea

	// devices is rebuilt on every refresh; selected indexes into it and is
	// -1 when nothing is selected.
	devices  []audio.Device
	selected int
	offset   int

	busy      bool
	dialog    *dialog
	status    string
	statusSeq int
}

func newModel(cfg Config, s Speaker, devices DeviceLister) model {
	if cfg.DeviceRows <= 0 {
		cfg.DeviceRows = 6
	}
	if cfg.StatusTimeout <= 0 {
		cfg.StatusTimeout = 3 * time.Second
	}
	if cfg.RefreshLimit <= 0 {
		cfg.RefreshLimit = 500 * time.Millisecond
	}

	ti := textinput.New()
	ti.Placeholder = "Type something to say…"
	ti.Prompt = "› "
	ti.CharLimit = 2000
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(fuchsia)

	return model{
		cfg:      cfg,
		keys:     newKeyMap(),
		speaker:  s,
		list:     devices,
		limiter:  rate.NewLimiter(rate.Every(cfg.RefreshLimit), 1),
		input:    ti,
		spinner:  sp,
		help:     help.New(),
		selected: -1,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refreshDevicesCmd())
}

func (m model) refreshDevicesCmd() tea.Cmd {
	list := m.list
	return func() tea.Msg {
		devices, err := list()
		return devicesMsg{devices: devices, err: err}
	}
}

func (m model) speakCmd(req speak.Request) tea.Cmd {
	s := m.speaker
	return func() tea.Msg {
		res, err := s.Speak(context.Background(), req)
		return speakDoneMsg{res: res, err: err}
	}
}

func readClipboardCmd() tea.Msg {
	text, err := clipboard.ReadAll()
	return clipboardMsg{text: text, err: err}
}

func (m *model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(m.cfg.StatusTimeout, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg{seq: seq}
	})
}

// selectedDevice returns the device under the cursor, or nil.
func (m model) selectedDevice() *audio.Device {
	if m.selected < 0 || m.selected >= len(m.devices) {
		return nil
	}
	d := m.devices[m.selected]
	return &d
}

// speak validates the form and starts a request. Text is checked first,
// then the device, and only then is the speaker invoked.
func (m *model) speak() tea.Cmd {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		m.dialog = dialogFor(speak.ErrEmptyText)
		return nil
	}
	dev := m.selectedDevice()
	if dev == nil {
		m.dialog = dialogFor(speak.ErrNoDevice)
		return nil
	}

	m.busy = true
	m.status = ""
	return tea.Batch(m.spinner.Tick, m.speakCmd(speak.Request{Text: text, Device: dev}))
}

func (m *model) moveSelection(delta int) {
	if len(m.devices) == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.devices) {
		m.selected = len(m.devices) - 1
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.cfg.DeviceRows {
		m.offset = m.selected - m.cfg.DeviceRows + 1
	}
}

func (m *model) toggleFocus() {
	if m.focus == focusText {
		m.focus = focusDevices
		m.input.Blur()
		return
	}
	m.focus = focusText
	m.input.Focus()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, min(msg.Width-6, 80))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.dialog != nil {
			if key.Matches(msg, m.keys.Dismiss) {
				m.dialog = nil
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case m.busy:
			// one utterance at a time; keys wait until playback ends
			return m, nil

		case key.Matches(msg, m.keys.Speak):
			return m, m.speak()

		case key.Matches(msg, m.keys.Refresh):
			if !m.limiter.Allow() {
				return m, m.setStatus("Refreshing too fast, wait a moment")
			}
			return m, m.refreshDevicesCmd()

		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.moveSelection(1)
			return m, nil

		case key.Matches(msg, m.keys.Focus):
			m.toggleFocus()
			return m, nil

		case key.Matches(msg, m.keys.Clipboard):
			return m, readClipboardCmd
		}

		if m.focus == focusText {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil

	case devicesMsg:
		if msg.err != nil {
			log.Error("unable to list devices", "error", msg.err)
			m.dialog = errorDialog("Audio devices", msg.err.Error())
			m.devices = nil
			m.selected = -1
			return m, nil
		}
		m.devices = msg.devices
		m.offset = 0
		m.selected = -1
		if len(m.devices) > 0 {
			m.selected = 0
		}
		log.Debug("devices refreshed", "count", len(m.devices))

	case speakDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.dialog = dialogFor(msg.err)
			return m, nil
		}
		cmds = append(cmds, m.setStatus(fmt.Sprintf("Spoke %s on %s",
			msg.res.Duration.Round(100*time.Millisecond), msg.res.Device.Name)))

	case clipboardMsg:
		if msg.err != nil {
			cmds = append(cmds, m.setStatus("Clipboard unavailable"))
			break
		}
		m.input.SetValue(strings.TrimSpace(msg.text))
		m.input.CursorEnd()

	case statusMessageTimeoutMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	var b strings.Builder

	header := titleStyle.Render("cablespeak")
	if m.cfg.Engine != "" || m.cfg.Backend != "" {
		header += " " + subtleStyle.Render(fmt.Sprintf("%s → %s", m.cfg.Engine, m.cfg.Backend))
	}
	b.WriteString(header + "\n\n")

	b.WriteString(m.label("Text", m.focus == focusText) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	b.WriteString(m.label("Output device (virtual cable)", m.focus == focusDevices) + "\n")
	b.WriteString(m.devicesView() + "\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " Speaking…")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n" + m.help.View(m.keys))

	view := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	if m.dialog != nil && m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.dialog.View())
	}
	if m.dialog != nil {
		return view + "\n" + m.dialog.View()
	}
	return view
}

func (m model) label(s string, focused bool) string {
	if focused {
		return focusedLabelStyle.Render(s)
	}
	return labelStyle.Render(s)
}

func (m model) devicesView() string {
	if len(m.devices) == 0 {
		return subtleStyle.Render("  No output devices found. Press ctrl+r to refresh.")
	}

	nameWidth := 60
	if m.width > 0 {
		nameWidth = max(10, m.width-12)
	}

	end := min(len(m.devices), m.offset+m.cfg.DeviceRows)
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		line := runewidth.Truncate(m.devices[i].String(), nameWidth, ellipsis)
		if i == m.selected {
			rows = append(rows, selectedStyle.Render("▸ "+line))
			continue
		}
		rows = append(rows, deviceStyle.Render("  "+line))
	}
	if len(m.devices) > m.cfg.DeviceRows {
		rows = append(rows, subtleStyle.Render(fmt.Sprintf("  %d/%d", m.selected+1, len(m.devices))))
	}
	return strings.Join(rows, "\n")
}
