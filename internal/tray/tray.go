// Package tray installs the workbench's system tray menu.
package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/PixPMusic/midiparams/internal/logging"
	"github.com/PixPMusic/midiparams/internal/startup"
)

// Callbacks for tray menu actions
type Callbacks struct {
	OnOpen      func()
	OnReconnect func()
	OnQuit      func()

	// OnStartupChanged persists the launch-at-login preference
	OnStartupChanged func(enabled bool) error
}

// Setup initializes the system tray using Fyne's built-in support. It is a
// no-op when the app is not running on a desktop driver.
func Setup(app fyne.App, openAtStartup bool, log *logging.Logger, callbacks Callbacks) {
	desk, ok := app.(desktop.App)
	if !ok {
		return
	}
	if log == nil {
		log = logging.Nop()
	}
	log = log.WithComponent("tray")

	entry := startup.Default()
	syncLoginItem(entry, openAtStartup, log)

	openItem := fyne.NewMenuItem("Open MidiParams", func() {
		if callbacks.OnOpen != nil {
			callbacks.OnOpen()
		}
	})

	reconnectItem := fyne.NewMenuItem("Reconnect MIDI Input", func() {
		if callbacks.OnReconnect != nil {
			callbacks.OnReconnect()
		}
	})

	startupItem := fyne.NewMenuItem("Open at Startup", nil)
	startupItem.Checked = openAtStartup

	quitItem := fyne.NewMenuItem("Quit", func() {
		if callbacks.OnQuit != nil {
			callbacks.OnQuit()
		}
	})

	menu := fyne.NewMenu("MidiParams",
		openItem,
		reconnectItem,
		fyne.NewMenuItemSeparator(),
		startupItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	// Set the action after menu is created so we can refresh it
	startupItem.Action = func() {
		enabled := !startupItem.Checked
		var err error
		if enabled {
			err = startup.Enable(entry)
		} else {
			err = startup.Disable(entry)
		}
		if err != nil {
			log.Error("failed to update login item", "enabled", enabled, "error", err)
			return
		}
		startupItem.Checked = enabled
		if callbacks.OnStartupChanged != nil {
			if err := callbacks.OnStartupChanged(enabled); err != nil {
				log.Error("failed to save startup preference", "error", err)
			}
		}
		menu.Refresh()
	}

	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(icon())
}

// syncLoginItem re-registers the login item when the saved preference is
// on but the entry is gone, e.g. after the binary moved
func syncLoginItem(entry startup.Entry, wanted bool, log *logging.Logger) {
	if !wanted || startup.IsEnabled(entry) {
		return
	}
	if err := startup.Enable(entry); err != nil {
		log.Warn("failed to restore login item", "error", err)
	}
}
