// Package miditest provides an in-memory MIDI transport for tests.
package miditest

import (
	"errors"
	"sync"

	"github.com/PixPMusic/midiparams/internal/midi"
)

// Call names recorded by Fake
const (
	CallPorts       = "ports"
	CallOpen        = "open"
	CallClose       = "close"
	CallSetCallback = "callback"
	CallIgnore      = "ignore"
)

// ErrRefused is returned by OpenPort for ports listed in Fake.Refuse
var ErrRefused = errors.New("port refused")

// Fake is a midi.Transport whose ports and failures are set by the test.
// Send delivers a message to the registered callback the way a transport
// goroutine would.
type Fake struct {
	mu       sync.Mutex
	ports    []midi.Device
	refuse   map[int]bool
	open     bool
	openPort int
	callback func([]byte)
	ignored  [3]bool
	calls    []string
}

// NewFake creates a Fake listing ports
func NewFake(ports ...midi.Device) *Fake {
	return &Fake{ports: ports, refuse: make(map[int]bool), openPort: -1}
}

// SetPorts replaces the port list
func (f *Fake) SetPorts(ports ...midi.Device) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ports = ports
}

// Refuse makes OpenPort fail for index
func (f *Fake) Refuse(index int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refuse[index] = true
}

// Ports implements midi.Transport
func (f *Fake) Ports() ([]midi.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, CallPorts)
	return append([]midi.Device(nil), f.ports...), nil
}

// OpenPort implements midi.Transport
func (f *Fake) OpenPort(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, CallOpen)
	if f.refuse[index] {
		return ErrRefused
	}
	f.open = true
	f.openPort = index
	return nil
}

// ClosePort implements midi.Transport
func (f *Fake) ClosePort() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, CallClose)
	f.open = false
	f.openPort = -1
	return nil
}

// IsPortOpen implements midi.Transport
func (f *Fake) IsPortOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// SetCallback implements midi.Transport
func (f *Fake) SetCallback(fn func([]byte)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, CallSetCallback)
	f.callback = fn
}

// IgnoreTypes implements midi.Transport
func (f *Fake) IgnoreTypes(sysex, timing, activeSense bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, CallIgnore)
	f.ignored = [3]bool{sysex, timing, activeSense}
}

// Ignored returns the last IgnoreTypes arguments
func (f *Fake) Ignored() (sysex, timing, activeSense bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ignored[0], f.ignored[1], f.ignored[2]
}

// OpenIndex returns the open port index, or -1
func (f *Fake) OpenIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.openPort
}

// Send delivers msg to the callback. Like a real transport it keeps
// delivering to the registered callback regardless of session state.
func (f *Fake) Send(msg ...byte) {
	f.mu.Lock()
	cb := f.callback
	f.mu.Unlock()
	if cb != nil {
		cb(msg)
	}
}

// Calls returns the recorded calls, optionally filtered to the given names
func (f *Fake) Calls(names ...string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(names) == 0 {
		return append([]string(nil), f.calls...)
	}
	var out []string
	for _, c := range f.calls {
		for _, n := range names {
			if c == n {
				out = append(out, c)
			}
		}
	}
	return out
}

// ResetCalls clears the call log
func (f *Fake) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
