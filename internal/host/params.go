package host

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// IntParam is an integer parameter clamped to its declared range.
// Reads and writes are atomic, so one goroutine may write while another
// reads without ever observing a partial update.
type IntParam struct {
	name     string
	min, max int32
	value    atomic.Int32
}

func newIntParam(d ParamDescriptor) *IntParam {
	p := &IntParam{name: d.Name, min: int32(d.Min), max: int32(d.Max)}
	p.value.Store(p.clamp(d.Default))
	return p
}

// Name returns the parameter name
func (p *IntParam) Name() string {
	return p.name
}

// Value returns the current value
func (p *IntParam) Value() int {
	return int(p.value.Load())
}

// SetValue stores v, clamped to the declared range
func (p *IntParam) SetValue(v int) {
	p.value.Store(p.clamp(v))
}

func (p *IntParam) clamp(v int) int32 {
	if p.min > p.max {
		return int32(v)
	}
	if v < int(p.min) {
		return p.min
	}
	if v > int(p.max) {
		return p.max
	}
	return int32(v)
}

// ChoiceParam selects one of a fixed list of options by position
type ChoiceParam struct {
	name    string
	options []Option
	index   atomic.Int32
}

func newChoiceParam(d ParamDescriptor) *ChoiceParam {
	p := &ChoiceParam{name: d.Name, options: append([]Option(nil), d.Options...)}
	p.index.Store(int32(d.Default))
	return p
}

// Name returns the parameter name
func (p *ChoiceParam) Name() string {
	return p.name
}

// Options returns a copy of the option list
func (p *ChoiceParam) Options() []Option {
	return append([]Option(nil), p.options...)
}

// Value returns the selected option position
func (p *ChoiceParam) Value() int {
	return int(p.index.Load())
}

// SetValue selects the option at position i. Out of range positions are ignored.
func (p *ChoiceParam) SetValue(i int) {
	if i < 0 || i >= len(p.options) {
		return
	}
	p.index.Store(int32(i))
}

// Selected returns the selected option, or false if the list is empty
func (p *ChoiceParam) Selected() (Option, bool) {
	i := p.Value()
	if i < 0 || i >= len(p.options) {
		return Option{}, false
	}
	return p.options[i], true
}

// SelectLabel selects the first option whose label matches
func (p *ChoiceParam) SelectLabel(label string) bool {
	for i, o := range p.options {
		if o.Label == label {
			p.index.Store(int32(i))
			return true
		}
	}
	return false
}

// ParamSet holds the live parameters of one plugin instance, keyed by name
type ParamSet struct {
	mu      sync.RWMutex
	ints    map[string]*IntParam
	choices map[string]*ChoiceParam
}

// NewParamSet instantiates every parameter declared in d with its default value
func NewParamSet(d Descriptor) *ParamSet {
	s := &ParamSet{
		ints:    make(map[string]*IntParam),
		choices: make(map[string]*ChoiceParam),
	}
	for _, pd := range d.Params {
		switch pd.Kind {
		case KindInt:
			s.ints[pd.Name] = newIntParam(pd)
		case KindChoice:
			s.choices[pd.Name] = newChoiceParam(pd)
		}
	}
	return s
}

// Int fetches an integer parameter by name
func (s *ParamSet) Int(name string) (*IntParam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.ints[name]
	if !ok {
		return nil, fmt.Errorf("integer parameter not found: %s", name)
	}
	return p, nil
}

// Choice fetches a choice parameter by name
func (s *ParamSet) Choice(name string) (*ChoiceParam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.choices[name]
	if !ok {
		return nil, fmt.Errorf("choice parameter not found: %s", name)
	}
	return p, nil
}

// Export returns the current integer values and selected choice labels,
// the form in which the host persists them
func (s *ParamSet) Export() (ints map[string]int, choices map[string]string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ints = make(map[string]int, len(s.ints))
	for name, p := range s.ints {
		ints[name] = p.Value()
	}
	choices = make(map[string]string, len(s.choices))
	for name, p := range s.choices {
		if o, ok := p.Selected(); ok {
			choices[name] = o.Label
		}
	}
	return ints, choices
}

// Import restores values produced by Export. Unknown names and choice labels
// that are no longer offered are skipped.
func (s *ParamSet) Import(ints map[string]int, choices map[string]string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for name, v := range ints {
		if p, ok := s.ints[name]; ok {
			p.SetValue(v)
		}
	}
	for name, label := range choices {
		if p, ok := s.choices[name]; ok {
			p.SelectLabel(label)
		}
	}
}
