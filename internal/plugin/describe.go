package plugin

import (
	"github.com/PixPMusic/midiparams/internal/host"
	"github.com/PixPMusic/midiparams/internal/midi"
	"github.com/PixPMusic/midiparams/internal/slots"
)

const (
	PluginName         = "MidiParams"
	PluginGrouping     = "Other"
	PluginIdentifier   = "com.pixpmusic.midiparams"
	PluginVersionMajor = 1
	PluginVersionMinor = 0
	PluginDescription  = "A meta node that exposes values from MIDI controllers as parameters. " +
		"Bind a controller number to an input and read the controller's last value " +
		"from the matching value parameter."

	ParamPort     = "port"
	ParamPortHint = "MIDI input port (device)."

	ClipSource = "Source"
	ClipOutput = "Output"

	PageControls = "Controls"
)

// Describe declares the plugin for a host. devices populates the port
// choice; each option carries the device's transport port index.
func Describe(devices []midi.Device) host.Descriptor {
	options := make([]host.Option, 0, len(devices))
	for _, d := range devices {
		if d.Name == "" {
			continue
		}
		options = append(options, host.Option{Label: d.Name, Value: d.Index})
	}

	params := []host.ParamDescriptor{{
		Kind:    host.KindChoice,
		Name:    ParamPort,
		Label:   "Port",
		Hint:    ParamPortHint,
		Options: options,
		Layout:  host.LayoutDivider,
	}}
	params = append(params, slots.Describe()...)

	page := host.PageDescriptor{Name: PageControls, Params: make([]string, 0, len(params))}
	for _, p := range params {
		page.Params = append(page.Params, p.Name)
	}

	return host.Descriptor{
		Info: host.PluginInfo{
			Label:              PluginName,
			Grouping:           PluginGrouping,
			Identifier:         PluginIdentifier,
			Description:        PluginDescription,
			VersionMajor:       PluginVersionMajor,
			VersionMinor:       PluginVersionMinor,
			Contexts:           []string{"generator"},
			BitDepths:          []string{"float"},
			RenderThreadSafety: "fully_safe",
		},
		Clips: []host.ClipDescriptor{
			// Neither clip carries pixels; the host requires an output.
			{Name: ClipSource, Optional: true},
			{Name: ClipOutput, Components: []string{"RGBA"}},
		},
		Pages:  []host.PageDescriptor{page},
		Params: params,
	}
}
