// Package host models the parts of the hosting compositing application that
// the MIDI bridge depends on: parameter declaration, parameter storage and
// persistent user messages.
package host

// LayoutHint controls how the host places a parameter relative to the next one
type LayoutHint int

const (
	LayoutNormal    LayoutHint = iota // next parameter starts a new line
	LayoutNoNewLine                   // next parameter shares this line
	LayoutDivider                     // draw a divider after this parameter
)

// ParamKind distinguishes the parameter types the plugin declares
type ParamKind int

const (
	KindInt ParamKind = iota
	KindChoice
)

// Option is one entry of a choice parameter. Value is opaque to the host.
type Option struct {
	Label string
	Value int
}

// ParamDescriptor declares a single host parameter
type ParamDescriptor struct {
	Kind             ParamKind
	Name             string
	Label            string
	Hint             string
	Min              int
	Max              int
	Default          int
	Options          []Option // KindChoice only
	Animates         bool
	EvaluateOnChange bool
	Layout           LayoutHint
	LayoutPadding    int
}

// ClipDescriptor declares an image connector
type ClipDescriptor struct {
	Name          string
	Optional      bool
	Components    []string
	SupportsTiles bool
}

// PageDescriptor groups parameters for display, in order
type PageDescriptor struct {
	Name   string
	Params []string
}

// PluginInfo carries the static plugin metadata
type PluginInfo struct {
	Label                   string
	Grouping                string
	Identifier              string
	Description             string
	VersionMajor            int
	VersionMinor            int
	Contexts                []string
	BitDepths               []string
	SupportsTiles           bool
	SupportsMultiResolution bool
	RenderThreadSafety      string
}

// Descriptor is everything a plugin registers during the describe phase
type Descriptor struct {
	Info   PluginInfo
	Clips  []ClipDescriptor
	Pages  []PageDescriptor
	Params []ParamDescriptor
}

// Param returns the descriptor for the named parameter
func (d Descriptor) Param(name string) (ParamDescriptor, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamDescriptor{}, false
}

