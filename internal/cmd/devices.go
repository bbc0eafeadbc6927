package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PixPMusic/midiparams/internal/midi"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List MIDI input ports",
	Long:  `List the named MIDI input ports with the port index used by --port.`,
	Args:  cobra.NoArgs,
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	_, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer midi.Shutdown()

	driver, err := midi.NewDriver(log)
	if err != nil {
		return err
	}
	return printDevices(cmd, driver)
}

func printDevices(cmd *cobra.Command, lister midi.PortLister) error {
	devices, err := midi.ListDevices(lister)
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(devices) == 0 {
		fmt.Fprintln(out, "No MIDI input found")
		return nil
	}
	for _, d := range devices {
		fmt.Fprintf(out, "%3d  %s\n", d.Index, d.Name)
	}
	return nil
}
