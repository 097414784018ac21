package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dgnsrekt/cablespeak/internal/audio"
	"github.com/dgnsrekt/cablespeak/internal/speak"
	"github.com/dgnsrekt/cablespeak/internal/synth"
	"gopkg.in/yaml.v3"
)

func outputDevices(t *testing.T) []audio.Device {
	t.Helper()
	devices, err := audio.ListOutputDevices(audio.NewMockHost(audio.DefaultMockDevices()...))
	if err != nil {
		t.Fatal(err)
	}
	return devices
}

func TestPickDevice(t *testing.T) {
	devices := outputDevices(t)

	tests := []struct {
		name  string
		ref   string
		index int
	}{
		{name: "default", ref: "", index: 1},
		{name: "by index", ref: "3", index: 3},
		{name: "by name", ref: "cable input", index: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := pickDevice(devices, tt.ref)
			if err != nil {
				t.Fatal(err)
			}
			if d == nil || d.Index != tt.index {
				t.Errorf("expected device %d, got %+v", tt.index, d)
			}
		})
	}

	if _, err := pickDevice(devices, "7"); !errors.Is(err, audio.ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
	if d, err := pickDevice(nil, ""); d != nil || err != nil {
		t.Errorf("expected no device and no error, got %+v %v", d, err)
	}
}

func TestPickDeviceFirstWithoutDefault(t *testing.T) {
	devices := []audio.Device{
		{Index: 4, Name: "A", MaxOutputChannels: 2},
		{Index: 5, Name: "B", MaxOutputChannels: 2},
	}
	d, err := pickDevice(devices, "")
	if err != nil || d == nil || d.Index != 4 {
		t.Errorf("expected first device, got %+v %v", d, err)
	}
}

func TestSayTextFromArgs(t *testing.T) {
	text, err := sayText([]string{"Hello", "world"}, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if text != "Hello world" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestWriteDevicesTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDevices(&buf, outputDevices(t), "table"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "CABLE Input (VB-Audio Virtual Cable)") {
		t.Errorf("missing cable device:\n%s", out)
	}
	if strings.Contains(out, "Microphone") {
		t.Errorf("input-only device listed:\n%s", out)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 3 {
		t.Errorf("expected header and 2 rows, got %d lines", len(lines))
	}
}

func TestWriteDevicesYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDevices(&buf, outputDevices(t), "yaml"); err != nil {
		t.Fatal(err)
	}
	var got []audio.Device
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Index != 3 || got[1].MaxOutputChannels != 2 {
		t.Errorf("unexpected devices %+v", got)
	}
}

func TestWriteDevicesUnknownFormat(t *testing.T) {
	if err := writeDevices(&bytes.Buffer{}, nil, "xml"); err == nil {
		t.Error("expected an error")
	}
}

func TestDescribePlaybackError(t *testing.T) {
	err := describeError(&audio.PlaybackError{Device: 3, Cause: errors.New("device unavailable")})
	if err.Error() != "playback error: device unavailable" {
		t.Errorf("unexpected message %q", err)
	}
	if !errors.Is(describeError(speak.ErrEmptyText), speak.ErrEmptyText) {
		t.Error("invalid input should pass through")
	}
}

func newTestShell(t *testing.T) (*shell, *audio.MockHost, *bytes.Buffer) {
	t.Helper()
	host := audio.NewMockHost(audio.DefaultMockDevices()...)
	s := synth.New(synth.DefaultSettings, synth.WithEngine(synth.NewMockEngine()), synth.WithTempDir(t.TempDir()))
	sp := speak.New(s, audio.NewPlayer(host))
	var out bytes.Buffer
	sh := newShell(sp, func() ([]audio.Device, error) { return audio.ListOutputDevices(host) }, &out)
	sh.refresh()
	return sh, host, &out
}

func TestShellSpeaksOnSelectedDevice(t *testing.T) {
	sh, host, out := newTestShell(t)

	if sh.handle(context.Background(), "/use 3") {
		t.Fatal("unexpected quit")
	}
	if sh.selected == nil || sh.selected.Index != 3 {
		t.Fatalf("expected device 3 selected, got %+v", sh.selected)
	}

	sh.handle(context.Background(), "Hello world")
	calls := host.Calls()
	if len(calls) != 1 || calls[0].Device != 3 {
		t.Fatalf("unexpected playback calls %+v", calls)
	}
	if !strings.Contains(out.String(), "Spoke") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestShellCommands(t *testing.T) {
	sh, host, out := newTestShell(t)

	if sh.selected == nil || sh.selected.Index != 1 {
		t.Fatalf("expected first output device preselected, got %+v", sh.selected)
	}

	sh.handle(context.Background(), "   ")
	sh.handle(context.Background(), "/use nothing-like-this-exists")
	if !strings.Contains(out.String(), "Error:") {
		t.Errorf("expected an error for an unknown device, got %q", out.String())
	}

	host.SetDevices(audio.Device{Index: 0, Name: "Mic", MaxOutputChannels: 0})
	sh.handle(context.Background(), "/devices")
	if sh.selected != nil {
		t.Errorf("selection should be cleared, got %+v", sh.selected)
	}
	out.Reset()
	sh.handle(context.Background(), "Hello")
	if !strings.Contains(out.String(), "select an output device") {
		t.Errorf("expected the device warning, got %q", out.String())
	}
	if len(host.Calls()) != 0 {
		t.Error("nothing should be played")
	}

	if !sh.handle(context.Background(), "/quit") {
		t.Error("expected /quit to exit")
	}
}

func TestShellSelectsFirstDevice(t *testing.T) {
	devices := []audio.Device{
		{Index: 0, Name: "CABLE Input", MaxOutputChannels: 2},
		{Index: 1, Name: "Speakers", MaxOutputChannels: 2, IsDefault: true},
	}
	sh := newShell(nil, func() ([]audio.Device, error) { return devices, nil }, &bytes.Buffer{})
	sh.refresh()
	if sh.selected == nil || sh.selected.Index != 0 {
		t.Fatalf("expected the first entry selected, got %+v", sh.selected)
	}

	sh.handle(context.Background(), "/use 1")
	sh.refresh()
	if sh.selected == nil || sh.selected.Index != 1 {
		t.Errorf("selection should survive a refresh, got %+v", sh.selected)
	}
}
