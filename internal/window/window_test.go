package window

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/midiparams/internal/config"
	"github.com/PixPMusic/midiparams/internal/midi"
	"github.com/PixPMusic/midiparams/internal/midi/miditest"
	"github.com/PixPMusic/midiparams/internal/plugin"
	"github.com/PixPMusic/midiparams/internal/slots"
	"github.com/PixPMusic/midiparams/internal/workbench"
)

func newTestWindow(t *testing.T, ports ...midi.Device) (*MainWindow, *workbench.Workbench, *miditest.Fake) {
	t.Helper()
	a := test.NewTempApp(t)

	fake := miditest.NewFake(ports...)
	wb, err := workbench.Open(config.Default(), filepath.Join(t.TempDir(), "state.json"),
		func() (midi.Transport, error) { return fake, nil }, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	return NewMainWindow(a, wb, nil), wb, fake
}

func TestControlsForEverySlot(t *testing.T) {
	mw, _, _ := newTestWindow(t, midi.Device{Index: 0, Name: "USB MIDI"})

	require.Len(t, mw.controls, 2*slots.Count)
	assert.Equal(t, slots.KeyParamName(0), mw.controls[0].param.Name())
	assert.Equal(t, slots.ValueParamName(24), mw.controls[49].param.Name())
	require.NotNil(t, mw.portSelect)
	assert.Equal(t, "USB MIDI", mw.portSelect.Selected)
	assert.False(t, mw.banner.Visible())
}

func TestSyncShowsRoutedValues(t *testing.T) {
	mw, wb, fake := newTestWindow(t, midi.Device{Index: 0, Name: "USB MIDI"})
	require.NoError(t, wb.Bind([]string{"0=21"}))

	fake.Send(0xB0, 21, 99)
	mw.syncValues()

	value := mw.controls[1]
	assert.Equal(t, float64(99), value.slider.Value)
	assert.Equal(t, "99", value.readout.Text)
	// Syncing must not be mistaken for a user edit.
	assert.Equal(t, 21, wb.Instance.Table().Key(0))
}

func TestSliderEditsBinding(t *testing.T) {
	mw, wb, _ := newTestWindow(t, midi.Device{Index: 0, Name: "USB MIDI"})

	// Same path as a drag: value updated, then OnChanged.
	s := mw.controls[4].slider
	s.Value = 42
	s.OnChanged(s.Value)

	assert.Equal(t, 42, wb.Instance.Table().Key(2))
	assert.Equal(t, "42", mw.controls[4].readout.Text)
}

func TestBannerShowsNoDevice(t *testing.T) {
	mw, wb, _ := newTestWindow(t)

	assert.Equal(t, plugin.StatusNoDevice, wb.Instance.Status())
	assert.True(t, mw.banner.Visible())
	assert.Equal(t, plugin.MessageNoDevice, mw.banner.Text)

	// Editing a binding clears first, then warns that the input is closed.
	require.NoError(t, wb.Edit(slots.KeyParamName(0), 5))
	assert.Equal(t, plugin.MessageNotConnected, mw.banner.Text)
}

func TestDevicesListFromPortOptions(t *testing.T) {
	mw, _, _ := newTestWindow(t,
		midi.Device{Index: 0, Name: "USB MIDI"},
		midi.Device{Index: 1, Name: ""},
		midi.Device{Index: 2, Name: "Keys"},
	)

	mw.refreshDevices()

	assert.Equal(t, []midi.Device{{Index: 0, Name: "USB MIDI"}, {Index: 2, Name: "Keys"}}, mw.devices)
}

func TestStatusIndicatorFollowsConnection(t *testing.T) {
	mw, wb, _ := newTestWindow(t, midi.Device{Index: 0, Name: "USB MIDI"})

	mw.refreshStatus()
	assert.Equal(t, textConnected+": USB MIDI", mw.status.label.Text)
	assert.Equal(t, colorConnected, mw.status.dot.FillColor)

	require.NoError(t, wb.Close())
	mw.refreshStatus()
	assert.Equal(t, textDisconnected, mw.status.label.Text)
	assert.Equal(t, colorDisconnected, mw.status.dot.FillColor)
}

func TestStatusIndicatorTapReconnects(t *testing.T) {
	taps := 0
	s := newStatusIndicator(func() { taps++ })

	test.Tap(s)

	assert.Equal(t, 1, taps)
}
