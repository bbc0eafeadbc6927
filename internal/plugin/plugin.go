// Package plugin ties the MIDI session, router and slot table to one host
// instance and drives the persistent warning shown to the user.
package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/PixPMusic/midiparams/internal/host"
	"github.com/PixPMusic/midiparams/internal/logging"
	"github.com/PixPMusic/midiparams/internal/midi"
	"github.com/PixPMusic/midiparams/internal/slots"
)

// Status is the persistent message state of an instance
type Status int

const (
	StatusClear Status = iota
	StatusNoDevice
	StatusNotConnected
)

// Messages shown for each warning status
const (
	MessageNoDevice     = "No MIDI input found"
	MessageNotConnected = "MIDI input not connected"
)

func (s Status) String() string {
	switch s {
	case StatusNoDevice:
		return "no_device"
	case StatusNotConnected:
		return "not_connected"
	default:
		return "clear"
	}
}

// Instance is one live plugin instance
type Instance struct {
	id      uuid.UUID
	log     *logging.Logger
	params  *host.ParamSet
	notify  host.Notifier
	port    *host.ChoiceParam
	table   *slots.Table
	session *midi.Session

	mu     sync.Mutex
	status Status
	closed bool
}

// Option configures an Instance
type Option func(*Instance)

// WithID sets the instance ID instead of generating one
func WithID(id uuid.UUID) Option {
	return func(in *Instance) {
		in.id = id
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(in *Instance) {
		in.log = l
	}
}

// New binds an instance to params, creates its transport and opens the
// selected port. Transport and port failures become persistent warnings;
// only missing parameters are returned as errors.
func New(params *host.ParamSet, notify host.Notifier, newTransport midi.TransportFactory, opts ...Option) (*Instance, error) {
	in := &Instance{
		id:     uuid.New(),
		log:    logging.Nop(),
		params: params,
		notify: notify,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.log = in.log.WithInstance(in.id.String())

	port, err := params.Choice(ParamPort)
	if err != nil {
		return nil, fmt.Errorf("failed to bind port parameter: %w", err)
	}
	in.port = port

	table, err := slots.Bind(params)
	if err != nil {
		return nil, err
	}
	in.table = table

	transport, err := newTransport()
	if err != nil {
		in.log.Error("failed to create MIDI transport", "error", err)
		transport = midi.Unavailable(err)
	}
	in.session = midi.NewSession(transport, midi.NewRouter(table, in.log), in, in.log)

	in.openInput()
	return in, nil
}

// ID returns the instance ID
func (in *Instance) ID() uuid.UUID {
	return in.id
}

// Table returns the slot table
func (in *Instance) Table() *slots.Table {
	return in.table
}

// Params returns the parameter set the instance is bound to
func (in *Instance) Params() *host.ParamSet {
	return in.params
}

// Status returns the current persistent message state
func (in *Instance) Status() Status {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.status
}

// IsConnected reports whether a MIDI port is open
func (in *Instance) IsConnected() bool {
	return in.session.IsOpen()
}

// Port returns the open MIDI port
func (in *Instance) Port() (midi.Device, bool) {
	return in.session.Port()
}

// SelectedPort implements midi.Selector using the port choice
func (in *Instance) SelectedPort() (int, bool) {
	o, ok := in.port.Selected()
	if !ok {
		return 0, false
	}
	return o.Value, true
}

// ChangedParam is called by the host after the user edits a parameter
func (in *Instance) ChangedParam(name string) {
	in.mu.Lock()
	closed := in.closed
	in.mu.Unlock()
	if closed {
		return
	}

	in.clearStatus()
	switch {
	case slots.IsKeyParam(name):
		if !in.session.IsOpen() {
			in.setStatus(StatusNotConnected)
		}
	case name == ParamPort:
		in.openInput()
	}
}

// Reconnect reopens the selected port
func (in *Instance) Reconnect() {
	in.clearStatus()
	in.openInput()
}

// Close closes the MIDI port. No callback runs once Close returns.
func (in *Instance) Close() error {
	in.mu.Lock()
	in.closed = true
	in.mu.Unlock()
	return in.session.Close()
}

func (in *Instance) openInput() {
	err := in.session.Open(midi.UseSelection)
	if err == nil {
		if port, ok := in.session.Port(); ok {
			in.log.Info("midi port opened", "port", port.Index, "name", port.Name)
		}
		return
	}

	in.log.Warn("failed to open MIDI input", "error", err)
	if errors.Is(err, midi.ErrNoDeviceFound) {
		in.setStatus(StatusNoDevice)
		return
	}
	in.setStatus(StatusNotConnected)
}

func (in *Instance) setStatus(s Status) {
	in.mu.Lock()
	in.status = s
	in.mu.Unlock()

	switch s {
	case StatusNoDevice:
		in.notify.SetPersistentMessage(host.SeverityWarning, MessageNoDevice)
	case StatusNotConnected:
		in.notify.SetPersistentMessage(host.SeverityWarning, MessageNotConnected)
	}
}

func (in *Instance) clearStatus() {
	in.mu.Lock()
	in.status = StatusClear
	in.mu.Unlock()
	in.notify.ClearPersistentMessage()
}
