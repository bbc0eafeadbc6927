package window

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/PixPMusic/midiparams/internal/midi"
	"github.com/PixPMusic/midiparams/internal/plugin"
)

// ============ DEVICES TAB ============

func (mw *MainWindow) createDevicesTab() fyne.CanvasObject {
	devicesHeader := widget.NewLabel("MIDI Inputs")
	devicesHeader.TextStyle = fyne.TextStyle{Bold: true}

	reconnectBtn := widget.NewButtonWithIcon("Reconnect", theme.ViewRefreshIcon(), func() {
		mw.Reconnect()
		mw.refreshDevices()
	})

	devicesToolbar := container.NewBorder(nil, nil, devicesHeader, reconnectBtn)

	headerIndex := widget.NewLabel("Port")
	headerIndex.TextStyle = fyne.TextStyle{Bold: true}
	headerName := widget.NewLabel("Name")
	headerName.TextStyle = fyne.TextStyle{Bold: true}
	headerState := widget.NewLabel("State")
	headerState.TextStyle = fyne.TextStyle{Bold: true}

	columnHeaders := container.NewGridWithColumns(3, headerIndex, headerName, headerState)

	mw.deviceList = widget.NewList(
		func() int { return len(mw.devices) },
		func() fyne.CanvasObject { return mw.createDeviceRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { mw.updateDeviceRow(id, obj) },
	)

	hint := widget.NewLabel("The port list is read when the node is created. Restart to pick up new devices.")
	hint.Wrapping = fyne.TextWrapWord

	return container.NewBorder(
		container.NewVBox(devicesToolbar, widget.NewSeparator(), columnHeaders),
		container.NewVBox(widget.NewSeparator(), hint),
		nil, nil,
		mw.deviceList,
	)
}

func (mw *MainWindow) createDeviceRow() fyne.CanvasObject {
	return container.NewGridWithColumns(3,
		widget.NewLabel(""), widget.NewLabel(""), widget.NewLabel(""),
	)
}

func (mw *MainWindow) updateDeviceRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(mw.devices) {
		return
	}

	device := mw.devices[id]
	grid := obj.(*fyne.Container)

	grid.Objects[0].(*widget.Label).SetText(strconv.Itoa(device.Index))
	grid.Objects[1].(*widget.Label).SetText(device.Name)

	state := ""
	if open, ok := mw.wb.Instance.Port(); ok && open.Index == device.Index {
		state = "Connected"
	}
	grid.Objects[2].(*widget.Label).SetText(state)
}

// refreshDevices rebuilds the device list from the port choice options
func (mw *MainWindow) refreshDevices() {
	mw.devices = mw.devices[:0]
	if choice, err := mw.wb.Params.Choice(plugin.ParamPort); err == nil {
		for _, o := range choice.Options() {
			mw.devices = append(mw.devices, midi.Device{Index: o.Value, Name: o.Label})
		}
	}
	if mw.deviceList != nil {
		mw.deviceList.Refresh()
	}
}
