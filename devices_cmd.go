package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgnsrekt/cablespeak/internal/audio"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	devicesFormat string

	devicesCmd = &cobra.Command{
		Use:     "devices",
		Short:   "List audio output devices",
		Long:    paragraph(fmt.Sprintf("\n%s the output devices of the audio backend. Use the index or part of the name with %s.", keyword("List"), keyword("say --device"))),
		Example: paragraph("cablespeak devices\ncablespeak devices --format yaml"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			devices, err := a.devices()
			if err != nil {
				return err
			}
			return writeDevices(cmd.OutOrStdout(), devices, devicesFormat)
		},
	}
)

func writeDevices(w io.Writer, devices []audio.Device, format string) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(devices); err != nil {
			return fmt.Errorf("unable to encode devices: %w", err)
		}
		return enc.Close()
	case "", "table":
		return writeDeviceTable(w, devices)
	default:
		return fmt.Errorf("unknown format %q: use table or yaml", format)
	}
}

func writeDeviceTable(w io.Writer, devices []audio.Device) error {
	if len(devices) == 0 {
		_, err := fmt.Fprintln(w, "No output devices found.")
		return err
	}

	nameWidth := len("NAME")
	for _, d := range devices {
		nameWidth = max(nameWidth, runewidth.StringWidth(d.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%5s  %s  %8s\n", "INDEX", runewidth.FillRight("NAME", nameWidth), "CHANNELS")
	for _, d := range devices {
		mark := " "
		if d.IsDefault {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s%4d  %s  %8d\n", mark, d.Index, runewidth.FillRight(d.Name, nameWidth), d.MaxOutputChannels)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func init() {
	devicesCmd.Flags().StringVarP(&devicesFormat, "format", "f", "table", "output format: table or yaml")
}
