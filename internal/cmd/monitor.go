package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PixPMusic/midiparams/internal/config"
	"github.com/PixPMusic/midiparams/internal/host"
	"github.com/PixPMusic/midiparams/internal/midi"
	"github.com/PixPMusic/midiparams/internal/slots"
	"github.com/PixPMusic/midiparams/internal/workbench"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print slot changes from a MIDI input",
	Long: `Open the selected MIDI input headless and print every slot whose value
changes until interrupted.

Bindings are given as slot=key, e.g.:
  midiparams monitor --port 1 --bind 0=21 --bind 1=22`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().Int("port", -1, "MIDI input port index (default: saved selection)")
	monitorCmd.Flags().StringArray("bind", nil, "bind a slot to a controller key (slot=key)")
	monitorCmd.Flags().Bool("save", false, "persist bindings and port selection on exit")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	settings, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer midi.Shutdown()

	port, _ := cmd.Flags().GetInt("port")
	bindings, _ := cmd.Flags().GetStringArray("bind")
	save, _ := cmd.Flags().GetBool("save")

	wb, err := workbench.Open(settings, config.StatePath(), midi.Factory(log), log)
	if err != nil {
		return err
	}
	defer wb.Close()

	out := cmd.OutOrStdout()
	wb.Banner.OnChange(func(shown bool, sev host.Severity, msg string) {
		if shown {
			fmt.Fprintf(out, "%s: %s\n", sev, msg)
		}
	})
	if sev, msg, shown := wb.Banner.Current(); shown {
		fmt.Fprintf(out, "%s: %s\n", sev, msg)
	}

	if err := wb.Bind(bindings); err != nil {
		return err
	}
	if port >= 0 {
		if err := wb.SelectPort(port); err != nil {
			return err
		}
	}
	if d, ok := wb.Instance.Port(); ok {
		fmt.Fprintf(out, "listening on %d: %s\n", d.Index, d.Name)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watch(ctx, wb.Instance.Table(), settings.Workbench.PollInterval(), out)

	if save {
		return wb.Save()
	}
	return nil
}

// watch prints slots whose value changed each interval until ctx is done
func watch(ctx context.Context, table *slots.Table, interval time.Duration, out io.Writer) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := table.Snapshot()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := table.Snapshot()
			printChanges(out, last, cur)
			last = cur
		}
	}
}

func printChanges(out io.Writer, prev, cur [slots.Count]slots.Binding) {
	for i := range cur {
		if cur[i].Value != prev[i].Value {
			fmt.Fprintf(out, "slot %2d  key %3d  value %3d\n", i, cur[i].Key, cur[i].Value)
		}
	}
}
