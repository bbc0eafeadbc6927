// Package slots implements the fixed table of (key, value) bindings that
// exposes MIDI controller values as host parameters.
package slots

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PixPMusic/midiparams/internal/host"
)

const (
	// Count is the number of bindings every instance exposes
	Count = 25

	MinValue = 0
	MaxValue = 127

	KeyParamPrefix   = "input"
	ValueParamPrefix = "value"
)

// Field is a host-persisted integer the table reads and writes
type Field interface {
	Value() int
	SetValue(v int)
}

// Slot pairs the host field holding a controller key with the field
// receiving that controller's value
type Slot struct {
	key   Field
	value Field
}

// Binding is a point-in-time copy of one slot
type Binding struct {
	Key   int
	Value int
}

// Table is the fixed-capacity slot arena. It holds no storage of its own;
// every read and write goes to the bound host fields.
type Table struct {
	slots [Count]Slot
}

// KeyParamName returns the host parameter name holding slot i's key
func KeyParamName(i int) string {
	return KeyParamPrefix + strconv.Itoa(i)
}

// ValueParamName returns the host parameter name holding slot i's value
func ValueParamName(i int) string {
	return ValueParamPrefix + strconv.Itoa(i)
}

// IsKeyParam reports whether name is one of the key-binding parameters
func IsKeyParam(name string) bool {
	return slotIndex(name, KeyParamPrefix) >= 0
}

func slotIndex(name, prefix string) int {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok || rest == "" {
		return -1
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 || i >= Count || strconv.Itoa(i) != rest {
		return -1
	}
	return i
}

// Describe returns the parameter declarations for every slot: the key field
// shares its line with the value field, and a divider follows each pair.
func Describe() []host.ParamDescriptor {
	params := make([]host.ParamDescriptor, 0, Count*2)
	for i := 0; i < Count; i++ {
		params = append(params,
			host.ParamDescriptor{
				Kind:             host.KindInt,
				Name:             KeyParamName(i),
				Label:            "Input",
				Hint:             "The ID of the MIDI knob you want to get the value from.",
				Min:              MinValue,
				Max:              MaxValue,
				Default:          MinValue,
				EvaluateOnChange: true,
				Layout:           host.LayoutNoNewLine,
				LayoutPadding:    1,
			},
			host.ParamDescriptor{
				Kind:             host.KindInt,
				Name:             ValueParamName(i),
				Label:            "Value",
				Hint:             "MIDI value.",
				Min:              MinValue,
				Max:              MaxValue,
				Default:          MinValue,
				EvaluateOnChange: true,
				Layout:           host.LayoutDivider,
			},
		)
	}
	return params
}

// Bind fetches the key and value fields of every slot from params
func Bind(params *host.ParamSet) (*Table, error) {
	t := &Table{}
	for i := range t.slots {
		key, err := params.Int(KeyParamName(i))
		if err != nil {
			return nil, fmt.Errorf("failed to bind slot %d: %w", i, err)
		}
		value, err := params.Int(ValueParamName(i))
		if err != nil {
			return nil, fmt.Errorf("failed to bind slot %d: %w", i, err)
		}
		t.slots[i] = Slot{key: key, value: value}
	}
	return t, nil
}

// Key returns the controller key bound to slot i. i must be in [0, Count).
func (t *Table) Key(i int) int {
	return t.slots[i].key.Value()
}

// SetKey binds slot i to controller key k
func (t *Table) SetKey(i, k int) {
	t.slots[i].key.SetValue(k)
}

// Value returns the last value stored in slot i
func (t *Table) Value(i int) int {
	return t.slots[i].value.Value()
}

// SetValue stores v in slot i
func (t *Table) SetValue(i, v int) {
	t.slots[i].value.SetValue(v)
}

// Apply stores value in every slot bound to key and returns how many
// slots were updated. Duplicate keys are legal; all of them update.
func (t *Table) Apply(key, value uint8) int {
	n := 0
	for i := range t.slots {
		if t.slots[i].key.Value() == int(key) {
			t.slots[i].value.SetValue(int(value))
			n++
		}
	}
	return n
}

// Snapshot copies every binding. Each slot is read atomically, but the copy
// as a whole is not a consistent cut across slots.
func (t *Table) Snapshot() [Count]Binding {
	var out [Count]Binding
	for i := range t.slots {
		out[i] = Binding{Key: t.slots[i].key.Value(), Value: t.slots[i].value.Value()}
	}
	return out
}
