package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/midiparams/internal/host"
	"github.com/PixPMusic/midiparams/internal/midi"
	"github.com/PixPMusic/midiparams/internal/slots"
)

func TestDescribePortOptions(t *testing.T) {
	desc := Describe([]midi.Device{
		{Index: 0, Name: "USB MIDI"},
		{Index: 1, Name: ""},
		{Index: 2, Name: "Keys"},
	})

	port, ok := desc.Param(ParamPort)
	require.True(t, ok)
	assert.Equal(t, host.KindChoice, port.Kind)
	assert.Equal(t, []host.Option{{Label: "USB MIDI", Value: 0}, {Label: "Keys", Value: 2}}, port.Options)
	assert.Equal(t, host.LayoutDivider, port.Layout)
}

func TestDescribeParamsAndPage(t *testing.T) {
	desc := Describe(nil)

	require.Len(t, desc.Params, 1+2*slots.Count)
	require.Len(t, desc.Pages, 1)
	page := desc.Pages[0]
	assert.Equal(t, PageControls, page.Name)
	assert.Equal(t, ParamPort, page.Params[0])
	assert.Equal(t, "input0", page.Params[1])
	assert.Equal(t, "value24", page.Params[len(page.Params)-1])

	port, ok := desc.Param(ParamPort)
	require.True(t, ok)
	assert.Empty(t, port.Options)
}

func TestDescribeClips(t *testing.T) {
	desc := Describe(nil)

	require.Len(t, desc.Clips, 2)
	src, out := desc.Clips[0], desc.Clips[1]
	assert.Equal(t, ClipSource, src.Name)
	assert.True(t, src.Optional)
	assert.Equal(t, ClipOutput, out.Name)
	assert.False(t, out.Optional)
	assert.Equal(t, []string{"RGBA"}, out.Components)

	assert.Equal(t, PluginGrouping, desc.Info.Grouping)
	assert.Equal(t, PluginVersionMajor, desc.Info.VersionMajor)
}
