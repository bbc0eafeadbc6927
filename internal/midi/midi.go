// Package midi bridges MIDI input ports to the slot table: port
// enumeration, the single-port session lifecycle and message routing.
package midi

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/PixPMusic/midiparams/internal/logging"
)

// Driver is a Transport backed by a gomidi driver. Each plugin instance
// owns its own Driver; the underlying gomidi driver is shared and released
// with Shutdown.
type Driver struct {
	drv      drivers.Driver
	mu       sync.Mutex
	in       drivers.In
	stop     func()
	callback func(msg []byte)

	ignoreSysEx       bool
	ignoreTiming      bool
	ignoreActiveSense bool

	log *logging.Logger
}

// NewDriver creates a Driver on the registered gomidi driver. It fails with
// ErrBackendUnavailable when none has been registered; the binary registers
// rtmidi.
func NewDriver(log *logging.Logger) (*Driver, error) {
	return NewDriverFor(drivers.Get(), log)
}

// NewDriverFor creates a Driver on drv
func NewDriverFor(drv drivers.Driver, log *logging.Logger) (*Driver, error) {
	if drv == nil {
		return nil, ErrBackendUnavailable
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Driver{
		drv:               drv,
		ignoreSysEx:       true,
		ignoreTiming:      true,
		ignoreActiveSense: true,
		log:               log.WithComponent("driver"),
	}, nil
}

// Factory returns a TransportFactory producing Drivers
func Factory(log *logging.Logger) TransportFactory {
	return func() (Transport, error) {
		return NewDriver(log)
	}
}

// Shutdown releases the shared gomidi driver
func Shutdown() {
	midi.CloseDriver()
}

// Ports returns every input port with its driver port number
func (d *Driver) Ports() ([]Device, error) {
	ins, err := d.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("failed to list input ports: %w", err)
	}
	ports := make([]Device, 0, len(ins))
	for _, in := range ins {
		ports = append(ports, Device{Index: in.Number(), Name: in.String()})
	}
	return ports, nil
}

// SetCallback implements Transport. It takes effect on the next OpenPort.
func (d *Driver) SetCallback(fn func(msg []byte)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callback = fn
}

// IgnoreTypes implements Transport. It takes effect on the next OpenPort.
func (d *Driver) IgnoreTypes(sysex, timing, activeSense bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ignoreSysEx, d.ignoreTiming, d.ignoreActiveSense = sysex, timing, activeSense
}

// OpenPort opens the input port with the given number and starts listening
func (d *Driver) OpenPort(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.in != nil {
		d.closeLocked()
	}

	in, err := d.inPort(index)
	if err != nil {
		return err
	}
	if !in.IsOpen() {
		if err := in.Open(); err != nil {
			return fmt.Errorf("failed to open input port %d: %w", index, err)
		}
	}

	opts := []midi.Option{
		midi.HandleError(func(err error) {
			d.log.Warn("midi listener error", "port", index, "error", err)
		}),
	}
	if !d.ignoreSysEx {
		opts = append(opts, midi.UseSysEx())
	}
	if !d.ignoreTiming {
		opts = append(opts, midi.UseTimeCode())
	}
	if !d.ignoreActiveSense {
		opts = append(opts, midi.UseActiveSense())
	}

	callback := d.callback
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		if callback != nil {
			callback([]byte(msg))
		}
	}, opts...)
	if err != nil {
		_ = in.Close()
		return fmt.Errorf("failed to start listening: %w", err)
	}

	d.in = in
	d.stop = stop
	return nil
}

func (d *Driver) inPort(index int) (drivers.In, error) {
	ins, err := d.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("failed to list input ports: %w", err)
	}
	for _, in := range ins {
		if in.Number() == index {
			return in, nil
		}
	}
	return nil, fmt.Errorf("input port not found: %d", index)
}

// ClosePort stops listening and closes the port. It is a no-op when closed.
func (d *Driver) ClosePort() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closeLocked()
}

func (d *Driver) closeLocked() error {
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
	in := d.in
	d.in = nil
	if in == nil || !in.IsOpen() {
		return nil
	}
	if err := in.Close(); err != nil {
		return fmt.Errorf("failed to close input port %d: %w", in.Number(), err)
	}
	return nil
}

// IsPortOpen implements Transport
func (d *Driver) IsPortOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.in != nil && d.in.IsOpen()
}
