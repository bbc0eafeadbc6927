package midi

import (
	"fmt"
	"sync"

	"github.com/PixPMusic/midiparams/internal/logging"
)

// UseSelection asks Open to resolve the port from the stored selection
const UseSelection = -1

// Selector resolves the currently selected device to a transport port index
type Selector interface {
	SelectedPort() (index int, ok bool)
}

// Session owns at most one open input port of a Transport
type Session struct {
	transport Transport
	dispatch  Dispatcher
	selector  Selector
	log       *logging.Logger

	// Callbacks hold the read side while dispatching; Close takes the
	// write side so no callback is in flight once it returns.
	mu     sync.RWMutex
	active bool
	port   Device
}

// NewSession creates a closed Session. selector may be nil if Open is never
// called with UseSelection.
func NewSession(t Transport, d Dispatcher, selector Selector, log *logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	return &Session{
		transport: t,
		dispatch:  d,
		selector:  selector,
		log:       log.WithComponent("session"),
	}
}

// Open closes any open port and opens the port with the given index, or the
// selected one for UseSelection. It returns ErrNoDeviceFound when the
// transport lists no ports and ErrPortOpenFailed when the port cannot be
// opened; in both cases the session is left closed.
func (s *Session) Open(index int) error {
	if err := s.Close(); err != nil {
		s.log.Warn("failed to close previous MIDI port", "error", err)
	}

	ports, err := s.transport.Ports()
	if err != nil {
		return fmt.Errorf("failed to enumerate MIDI inputs: %w", err)
	}
	if len(ports) == 0 {
		return ErrNoDeviceFound
	}

	if index == UseSelection {
		var ok bool
		if s.selector != nil {
			index, ok = s.selector.SelectedPort()
		}
		if !ok {
			return fmt.Errorf("%w: no port selected", ErrPortOpenFailed)
		}
	}

	var port Device
	found := false
	for _, p := range ports {
		if p.Index == index {
			port, found = p, true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: port %d out of range", ErrPortOpenFailed, index)
	}

	s.transport.SetCallback(s.receive)
	s.transport.IgnoreTypes(false, false, false)

	// Active before the port opens: devices may send their current state
	// as soon as they are connected.
	s.mu.Lock()
	s.active = true
	s.port = port
	s.mu.Unlock()

	s.log.Info("midi open port", "port", index, "name", port.Name)
	if err := s.transport.OpenPort(index); err != nil {
		s.deactivate()
		return fmt.Errorf("%w: %w", ErrPortOpenFailed, err)
	}
	if !s.transport.IsPortOpen() {
		s.deactivate()
		return fmt.Errorf("%w: port %d", ErrPortOpenFailed, index)
	}
	return nil
}

func (s *Session) deactivate() {
	s.mu.Lock()
	s.active = false
	s.port = Device{}
	s.mu.Unlock()
}

// Close stops delivery and closes the port. It is safe to call on a closed
// session. When Close returns no callback is running.
func (s *Session) Close() error {
	s.mu.Lock()
	wasActive := s.active
	s.active = false
	s.port = Device{}
	s.mu.Unlock()

	if err := s.transport.ClosePort(); err != nil {
		return fmt.Errorf("failed to close MIDI port: %w", err)
	}
	if wasActive {
		s.log.Info("midi port closed")
	}
	return nil
}

// IsOpen reports whether a port is open and delivering to the router
func (s *Session) IsOpen() bool {
	s.mu.RLock()
	active := s.active
	s.mu.RUnlock()
	return active && s.transport.IsPortOpen()
}

// Port returns the open port
func (s *Session) Port() (Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.port, s.active
}

// receive runs on the transport goroutine
func (s *Session) receive(msg []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("recovered panic in MIDI callback", "panic", r)
		}
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		return
	}
	s.dispatch.Dispatch(msg)
}
