package window

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ============ STATUS INDICATOR WIDGET ============

var (
	colorConnected    = color.NRGBA{R: 0x2e, G: 0xb8, B: 0x4b, A: 0xff}
	colorDisconnected = color.NRGBA{R: 0xe0, G: 0x9b, B: 0x1a, A: 0xff}
)

const (
	textConnected    = "Connected"
	textDisconnected = "Not connected (tap to retry)"
)

// statusIndicator shows whether the MIDI input is connected as a coloured
// dot plus the port name. Tapping it asks for a reconnect.
type statusIndicator struct {
	widget.BaseWidget
	dot   *canvas.Rectangle
	label *widget.Label
	onTap func()
}

func newStatusIndicator(onTap func()) *statusIndicator {
	dot := canvas.NewRectangle(colorDisconnected)
	dot.SetMinSize(fyne.NewSize(14, 14))
	dot.CornerRadius = 7

	s := &statusIndicator{dot: dot, label: widget.NewLabel(textDisconnected), onTap: onTap}
	s.ExtendBaseWidget(s)
	return s
}

// SetConnected updates the dot colour and text. port is shown when connected.
func (s *statusIndicator) SetConnected(connected bool, port string) {
	if connected {
		s.dot.FillColor = colorConnected
		s.label.SetText(textConnected + ": " + port)
	} else {
		s.dot.FillColor = colorDisconnected
		s.label.SetText(textDisconnected)
	}
	s.dot.Refresh()
}

func (s *statusIndicator) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewHBox(container.NewCenter(s.dot), s.label))
}

func (s *statusIndicator) Tapped(_ *fyne.PointEvent) {
	if s.onTap != nil {
		s.onTap()
	}
}

func (s *statusIndicator) TappedSecondary(_ *fyne.PointEvent) {}
