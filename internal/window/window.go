package window

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/PixPMusic/midiparams/internal/host"
	"github.com/PixPMusic/midiparams/internal/logging"
	"github.com/PixPMusic/midiparams/internal/midi"
	"github.com/PixPMusic/midiparams/internal/workbench"
)

// MainWindow renders the plugin's Controls page for the workbench instance
type MainWindow struct {
	window fyne.Window
	wb     *workbench.Workbench
	log    *logging.Logger

	banner     *widget.Label
	status     *statusIndicator
	portSelect *widget.Select
	deviceList *widget.List
	devices    []midi.Device
	controls   []*intControl

	// syncing is set while values read back from the instance are pushed
	// into widgets, so their change handlers do not report user edits.
	// Only touched on the fyne goroutine.
	syncing bool
}

// NewMainWindow creates the main application window
func NewMainWindow(app fyne.App, wb *workbench.Workbench, log *logging.Logger) *MainWindow {
	if log == nil {
		log = logging.Nop()
	}
	win := app.NewWindow(wb.Descriptor.Info.Label)

	mw := &MainWindow{
		window: win,
		wb:     wb,
		log:    log.WithComponent("window"),
	}

	mw.setupUI()

	win.Resize(fyne.NewSize(720, 640))
	win.CenterOnScreen()

	win.SetCloseIntercept(func() {
		win.Hide()
	})

	sev, msg, shown := wb.Banner.Current()
	mw.setBanner(shown, sev, msg)
	wb.Banner.OnChange(func(shown bool, sev host.Severity, msg string) {
		fyne.Do(func() { mw.setBanner(shown, sev, msg) })
	})

	return mw
}

func (mw *MainWindow) setupUI() {
	mw.banner = widget.NewLabel("")
	mw.banner.Importance = widget.WarningImportance
	mw.banner.Hide()

	mw.status = newStatusIndicator(mw.Reconnect)

	header := container.NewVBox(mw.status, mw.banner)

	tabs := container.NewAppTabs(
		container.NewTabItem("Controls", mw.createControlsTab()),
		container.NewTabItem("Devices", mw.createDevicesTab()),
	)

	mw.window.SetContent(container.NewBorder(header, nil, nil, nil, tabs))
}

func (mw *MainWindow) setBanner(shown bool, sev host.Severity, msg string) {
	if !shown {
		mw.banner.SetText("")
		mw.banner.Hide()
	} else {
		mw.banner.Importance = widget.WarningImportance
		if sev == host.SeverityError {
			mw.banner.Importance = widget.DangerImportance
		}
		mw.banner.SetText(msg)
		mw.banner.Show()
	}
	mw.refreshStatus()
}

func (mw *MainWindow) refreshStatus() {
	port, ok := mw.wb.Instance.Port()
	mw.status.SetConnected(ok && mw.wb.Instance.IsConnected(), port.Name)
}

// Reconnect reopens the selected MIDI port. Must run on the fyne goroutine.
func (mw *MainWindow) Reconnect() {
	mw.wb.Instance.Reconnect()
	mw.refreshStatus()
}

// Run polls slot values into the widgets until ctx is canceled
func (mw *MainWindow) Run(ctx context.Context) {
	interval := mw.wb.Settings().Workbench.PollInterval()
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(mw.syncValues)
		}
	}
}

// syncValues pushes parameter values changed outside the UI into widgets
func (mw *MainWindow) syncValues() {
	mw.syncing = true
	defer func() { mw.syncing = false }()

	for _, c := range mw.controls {
		c.sync()
	}
}

// Show displays the window
func (mw *MainWindow) Show() {
	mw.refreshDevices()
	mw.refreshStatus()
	mw.window.Show()
}
