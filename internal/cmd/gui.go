package cmd

import (
	"context"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/PixPMusic/midiparams/internal/config"
	"github.com/PixPMusic/midiparams/internal/midi"
	"github.com/PixPMusic/midiparams/internal/tray"
	"github.com/PixPMusic/midiparams/internal/window"
	"github.com/PixPMusic/midiparams/internal/workbench"
)

const appID = "com.pixpmusic.midiparams"

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Run the workbench window",
	Long: `Run the workbench: a window with the Controls page and a system tray
menu. The window opens on first launch; afterwards use the tray menu.`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	settings, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer midi.Shutdown()

	wb, err := workbench.Open(settings, config.StatePath(), midi.Factory(log), log)
	if err != nil {
		return err
	}
	defer wb.Close()

	fyneApp := app.NewWithID(appID)
	mainWindow := window.NewMainWindow(fyneApp, wb, log)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go mainWindow.Run(ctx)

	tray.Setup(fyneApp, wb.OpenAtStartup(), log, tray.Callbacks{
		OnOpen:           mainWindow.Show,
		OnReconnect:      mainWindow.Reconnect,
		OnQuit:           fyneApp.Quit,
		OnStartupChanged: wb.SetOpenAtStartup,
	})

	// Show window if first launch, otherwise run in background
	if wb.FirstLaunch() {
		mainWindow.Show()
	}

	// Blocks until app.Quit is called
	fyneApp.Run()

	cancel()
	if err := wb.Save(); err != nil {
		log.Error("failed to save state", "error", err)
		return err
	}
	return nil
}
