package midi

import "errors"

var (
	// ErrNoDeviceFound is returned when the transport reports no input ports
	ErrNoDeviceFound = errors.New("no MIDI input found")
	// ErrPortOpenFailed is returned when the chosen port is out of range or refused to open
	ErrPortOpenFailed = errors.New("MIDI input not connected")
	// ErrMalformedMessage marks messages too short to carry a key and value
	ErrMalformedMessage = errors.New("malformed MIDI message")
	// ErrBackendUnavailable is returned when no MIDI backend could be initialised
	ErrBackendUnavailable = errors.New("MIDI backend unavailable")
)

// Device is an input port as reported by the transport. Index is the
// transport's own port number and stays valid for OpenPort even when
// unnamed ports are filtered out of a presented list.
type Device struct {
	Index int
	Name  string
}

// PortLister enumerates input ports
type PortLister interface {
	Ports() ([]Device, error)
}

// Transport is the MIDI input capability the bridge needs
type Transport interface {
	PortLister

	// OpenPort starts delivering messages from the port with the given index
	OpenPort(index int) error
	// ClosePort stops delivery. Closing a closed port is not an error.
	ClosePort() error
	IsPortOpen() bool

	// SetCallback registers the function receiving raw message bytes.
	// It is called on a transport-owned goroutine.
	SetCallback(fn func(msg []byte))
	// IgnoreTypes selects which system message categories are filtered
	// before reaching the callback.
	IgnoreTypes(sysex, timing, activeSense bool)
}

// TransportFactory creates a Transport for one plugin instance
type TransportFactory func() (Transport, error)

// Unavailable returns a Transport standing in for a backend that failed to
// initialise: it lists no ports and refuses to open.
func Unavailable(cause error) Transport {
	return unavailable{cause: cause}
}

type unavailable struct {
	cause error
}

func (u unavailable) Ports() ([]Device, error) {
	return nil, u.err()
}

func (u unavailable) OpenPort(int) error {
	return u.err()
}

func (u unavailable) ClosePort() error { return nil }
func (u unavailable) IsPortOpen() bool { return false }
func (u unavailable) SetCallback(func([]byte)) {}
func (u unavailable) IgnoreTypes(bool, bool, bool) {}

func (u unavailable) err() error {
	if u.cause == nil {
		return ErrBackendUnavailable
	}
	return errors.Join(ErrBackendUnavailable, u.cause)
}
