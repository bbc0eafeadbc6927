package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/midiparams/internal/logging"
	"github.com/PixPMusic/midiparams/internal/slots"
)

// Dispatcher receives raw messages from a Session
type Dispatcher interface {
	Dispatch(msg []byte)
}

// Router decodes controller-style messages and writes them into a slot table
type Router struct {
	table *slots.Table
	log   *logging.Logger
}

// NewRouter creates a Router updating table
func NewRouter(table *slots.Table, log *logging.Logger) *Router {
	if log == nil {
		log = logging.Nop()
	}
	return &Router{table: table, log: log}
}

// Decode extracts (key, value) from a 3-byte style message. The status byte
// is not inspected, so note and controller messages decode alike.
func Decode(msg []byte) (key, value uint8, err error) {
	if len(msg) < 3 {
		return 0, 0, fmt.Errorf("%w: %d bytes", ErrMalformedMessage, len(msg))
	}
	key, value = msg[1], msg[2]
	if key > slots.MaxValue || value > slots.MaxValue {
		return 0, 0, fmt.Errorf("%w: data byte out of range % X", ErrMalformedMessage, msg[:3])
	}
	return key, value, nil
}

// Dispatch implements Dispatcher. Malformed messages are dropped silently.
func (r *Router) Dispatch(msg []byte) {
	key, value, err := Decode(msg)
	if err != nil {
		return
	}

	n := r.table.Apply(key, value)
	if r.log.DebugEnabled() {
		r.log.Debug("midi input", "key", key, "value", value, "slots", n, "message", midi.Message(msg).String())
	}
}
