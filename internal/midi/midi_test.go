package midi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/midiparams/internal/host"
	"github.com/PixPMusic/midiparams/internal/slots"
)

func newTable(t *testing.T) *slots.Table {
	t.Helper()
	table, err := slots.Bind(host.NewParamSet(host.Descriptor{Params: slots.Describe()}))
	require.NoError(t, err)
	return table
}

type fixedSelector struct {
	index int
	ok    bool
}

func (s fixedSelector) SelectedPort() (int, bool) {
	return s.index, s.ok
}
