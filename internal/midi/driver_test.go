package midi_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/testdrv"

	"github.com/PixPMusic/midiparams/internal/midi"
)

// recordingDriver wraps a gomidi test driver and records how its input
// ports are listened to.
type recordingDriver struct {
	drivers.Driver

	mu      sync.Mutex
	configs []drivers.ListenConfig
	stops   int
}

func (r *recordingDriver) Ins() ([]drivers.In, error) {
	ins, err := r.Driver.Ins()
	if err != nil {
		return nil, err
	}
	wrapped := make([]drivers.In, len(ins))
	for i, in := range ins {
		wrapped[i] = &recordingIn{In: in, driver: r}
	}
	return wrapped, nil
}

func (r *recordingDriver) listens() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.configs)
}

func (r *recordingDriver) lastConfig() drivers.ListenConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.configs[len(r.configs)-1]
}

func (r *recordingDriver) stopped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stops
}

type recordingIn struct {
	drivers.In
	driver *recordingDriver
}

func (in *recordingIn) Listen(onMsg func(msg []byte, milliseconds int32), config drivers.ListenConfig) (func(), error) {
	in.driver.mu.Lock()
	in.driver.configs = append(in.driver.configs, config)
	in.driver.mu.Unlock()

	stop, err := in.In.Listen(onMsg, config)
	if err != nil {
		return nil, err
	}
	return func() {
		in.driver.mu.Lock()
		in.driver.stops++
		in.driver.mu.Unlock()
		stop()
	}, nil
}

func newTestDriver(t *testing.T) (*midi.Driver, *recordingDriver, drivers.Out) {
	t.Helper()
	td := testdrv.New("midiparams-test")
	rec := &recordingDriver{Driver: td}

	d, err := midi.NewDriverFor(rec, nil)
	require.NoError(t, err)

	outs, err := td.Outs()
	require.NoError(t, err)
	require.NotEmpty(t, outs)
	require.NoError(t, outs[0].Open())
	t.Cleanup(func() {
		_ = d.ClosePort()
		_ = outs[0].Close()
	})
	return d, rec, outs[0]
}

func TestNewDriverForNil(t *testing.T) {
	_, err := midi.NewDriverFor(nil, nil)
	assert.ErrorIs(t, err, midi.ErrBackendUnavailable)
}

func TestDriverPortsKeepNumbers(t *testing.T) {
	d, _, _ := newTestDriver(t)

	ports, err := d.Ports()
	require.NoError(t, err)
	require.NotEmpty(t, ports)
	assert.Equal(t, 0, ports[0].Index)
	assert.NotEmpty(t, ports[0].Name)
}

func TestDriverListensToEveryTypeWhenNothingIgnored(t *testing.T) {
	d, rec, _ := newTestDriver(t)

	d.IgnoreTypes(false, false, false)
	require.NoError(t, d.OpenPort(0))

	conf := rec.lastConfig()
	assert.True(t, conf.SysEx)
	assert.True(t, conf.TimeCode)
	assert.True(t, conf.ActiveSense)
}

func TestDriverIgnoresTypesByDefault(t *testing.T) {
	d, rec, _ := newTestDriver(t)

	require.NoError(t, d.OpenPort(0))

	conf := rec.lastConfig()
	assert.False(t, conf.SysEx)
	assert.False(t, conf.TimeCode)
	assert.False(t, conf.ActiveSense)
}

func TestDriverForwardsMessages(t *testing.T) {
	d, _, out := newTestDriver(t)

	var mu sync.Mutex
	var got [][]byte
	d.SetCallback(func(msg []byte) {
		mu.Lock()
		got = append(got, append([]byte(nil), msg...))
		mu.Unlock()
	})
	require.NoError(t, d.OpenPort(0))
	require.True(t, d.IsPortOpen())

	require.NoError(t, out.Send([]byte{0xB0, 21, 77}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []byte{0xB0, 21, 77}, got[0])
	mu.Unlock()
}

func TestDriverOpenReplacesOpenPort(t *testing.T) {
	d, rec, _ := newTestDriver(t)

	require.NoError(t, d.OpenPort(0))
	require.NoError(t, d.OpenPort(0))

	assert.Equal(t, 2, rec.listens())
	assert.Equal(t, 1, rec.stopped())
	assert.True(t, d.IsPortOpen())
}

func TestDriverOpenUnknownPort(t *testing.T) {
	d, _, _ := newTestDriver(t)

	assert.Error(t, d.OpenPort(42))
	assert.False(t, d.IsPortOpen())
}

func TestDriverClosePortIsIdempotent(t *testing.T) {
	d, rec, _ := newTestDriver(t)

	require.NoError(t, d.ClosePort())
	require.NoError(t, d.OpenPort(0))
	require.NoError(t, d.ClosePort())
	require.NoError(t, d.ClosePort())

	assert.False(t, d.IsPortOpen())
	assert.Equal(t, 1, rec.stopped())
}
