// Package workbench is the standalone host: it describes the plugin,
// instantiates and persists its parameters, and owns the live instance
// shared by the window and the monitor command.
package workbench

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/PixPMusic/midiparams/internal/config"
	"github.com/PixPMusic/midiparams/internal/host"
	"github.com/PixPMusic/midiparams/internal/logging"
	"github.com/PixPMusic/midiparams/internal/midi"
	"github.com/PixPMusic/midiparams/internal/plugin"
	"github.com/PixPMusic/midiparams/internal/slots"
)

// Workbench hosts one plugin instance
type Workbench struct {
	Descriptor host.Descriptor
	Params     *host.ParamSet
	Banner     *host.Banner
	Instance   *plugin.Instance

	settings  *config.Settings
	state     *config.State
	statePath string
	stateID   string
	name      string
	log       *logging.Logger
}

// Open describes the plugin against the devices newTransport reports,
// restores the instance named by settings from statePath (creating it if
// it was never saved) and creates it.
func Open(settings *config.Settings, statePath string, newTransport midi.TransportFactory, log *logging.Logger) (*Workbench, error) {
	if log == nil {
		log = logging.Nop()
	}

	st, err := config.LoadState(statePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	name := settings.Workbench.Instance
	if name == "" {
		name = config.DefaultInstance
	}
	saved := st.GetInstance(name)
	if saved == nil {
		st.UpdateInstance(config.NewInstanceState(name))
		saved = st.GetInstance(name)
	}

	devices := describeDevices(newTransport, log)
	desc := plugin.Describe(devices)
	params := host.NewParamSet(desc)
	params.Import(saved.Ints, saved.Choices)
	restorePort(params, devices, saved.Choices[plugin.ParamPort], settings.MIDI.Port, log)

	opts := []plugin.Option{plugin.WithLogger(log)}
	if id, err := uuid.Parse(saved.ID); err == nil {
		opts = append(opts, plugin.WithID(id))
	}

	banner := host.NewBanner(nil)
	inst, err := plugin.New(params, banner, newTransport, opts...)
	if err != nil {
		return nil, err
	}

	return &Workbench{
		Descriptor: desc,
		Params:     params,
		Banner:     banner,
		Instance:   inst,
		settings:   settings,
		state:      st,
		statePath:  statePath,
		stateID:    saved.ID,
		name:       name,
		log:        log,
	}, nil
}

// restorePort checks the saved device is still offered, falling back to the
// configured port name when nothing was saved
func restorePort(params *host.ParamSet, devices []midi.Device, saved, configured string, log *logging.Logger) {
	port, err := params.Choice(plugin.ParamPort)
	if err != nil {
		return
	}
	if saved != "" {
		if _, ok := midi.FindDevice(devices, saved); !ok {
			log.Warn("saved MIDI port not found", "port", saved)
		}
		return
	}
	if configured == "" {
		return
	}
	d, ok := midi.FindDevice(devices, configured)
	if !ok {
		log.Warn("configured MIDI port not found", "port", configured)
		return
	}
	selectDevice(port, d.Index)
}

// selectDevice selects the option carrying the given port index
func selectDevice(port *host.ChoiceParam, index int) bool {
	for i, o := range port.Options() {
		if o.Value == index {
			port.SetValue(i)
			return true
		}
	}
	return false
}

// describeDevices enumerates named ports through a throwaway transport
func describeDevices(newTransport midi.TransportFactory, log *logging.Logger) []midi.Device {
	t, err := newTransport()
	if err != nil {
		log.Warn("failed to create MIDI transport for device list", "error", err)
		return nil
	}
	devices, err := midi.ListDevices(t)
	if err != nil {
		log.Warn("failed to list MIDI devices", "error", err)
		return nil
	}
	return devices
}

// Settings returns the settings the workbench was opened with
func (w *Workbench) Settings() *config.Settings {
	return w.settings
}

// Edit sets a parameter the way a user edit would and notifies the instance
func (w *Workbench) Edit(name string, value int) error {
	if p, err := w.Params.Int(name); err == nil {
		p.SetValue(value)
	} else if c, err := w.Params.Choice(name); err == nil {
		c.SetValue(value)
	} else {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	w.Instance.ChangedParam(name)
	return nil
}

// SelectPort selects the device with the given transport port index
func (w *Workbench) SelectPort(index int) error {
	port, err := w.Params.Choice(plugin.ParamPort)
	if err != nil {
		return err
	}
	if !selectDevice(port, index) {
		return fmt.Errorf("%w: port %d", midi.ErrPortOpenFailed, index)
	}
	w.Instance.ChangedParam(plugin.ParamPort)
	return nil
}

// Bind applies "slot=key" bindings
func (w *Workbench) Bind(bindings []string) error {
	for _, b := range bindings {
		slot, key, err := ParseBinding(b)
		if err != nil {
			return err
		}
		w.Instance.Table().SetKey(slot, key)
		w.Instance.ChangedParam(slots.KeyParamName(slot))
	}
	return nil
}

// ParseBinding parses "slot=key", both in range
func ParseBinding(s string) (slot, key int, err error) {
	left, right, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("invalid binding %q: want slot=key", s)
	}
	slot, err = strconv.Atoi(strings.TrimSpace(left))
	if err != nil || slot < 0 || slot >= slots.Count {
		return 0, 0, fmt.Errorf("invalid binding %q: slot must be 0-%d", s, slots.Count-1)
	}
	key, err = strconv.Atoi(strings.TrimSpace(right))
	if err != nil || key < slots.MinValue || key > slots.MaxValue {
		return 0, 0, fmt.Errorf("invalid binding %q: key must be %d-%d", s, slots.MinValue, slots.MaxValue)
	}
	return slot, key, nil
}

// Save persists the current parameter values
func (w *Workbench) Save() error {
	ints, choices := w.Params.Export()
	w.state.UpdateInstance(config.InstanceState{
		ID:      w.stateID,
		Name:    w.name,
		Ints:    ints,
		Choices: choices,
	})
	w.state.FirstLaunchCompleted = true
	if err := w.state.Save(w.statePath); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// FirstLaunch reports whether state has never been saved
func (w *Workbench) FirstLaunch() bool {
	return !w.state.FirstLaunchCompleted
}

// OpenAtStartup reports the persisted launch-at-login preference
func (w *Workbench) OpenAtStartup() bool {
	return w.state.OpenAtStartup
}

// SetOpenAtStartup records the launch-at-login preference and saves
func (w *Workbench) SetOpenAtStartup(enabled bool) error {
	w.state.OpenAtStartup = enabled
	return w.Save()
}

// Close closes the instance's MIDI port
func (w *Workbench) Close() error {
	return w.Instance.Close()
}
