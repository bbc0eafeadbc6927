package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/midiparams/internal/host"
)

func newTable(t *testing.T) (*Table, *host.ParamSet) {
	t.Helper()
	params := host.NewParamSet(host.Descriptor{Params: Describe()})
	table, err := Bind(params)
	require.NoError(t, err)
	return table, params
}

func TestDescribe(t *testing.T) {
	params := Describe()
	require.Len(t, params, Count*2)

	assert.Equal(t, "input0", params[0].Name)
	assert.Equal(t, host.LayoutNoNewLine, params[0].Layout)
	assert.Equal(t, "value0", params[1].Name)
	assert.Equal(t, host.LayoutDivider, params[1].Layout)
	assert.Equal(t, "value24", params[len(params)-1].Name)

	for _, p := range params {
		assert.Equal(t, MinValue, p.Min, p.Name)
		assert.Equal(t, MaxValue, p.Max, p.Name)
		assert.Equal(t, 0, p.Default, p.Name)
		assert.False(t, p.Animates, p.Name)
	}
}

func TestBindMissingParam(t *testing.T) {
	params := host.NewParamSet(host.Descriptor{Params: Describe()[:10]})
	_, err := Bind(params)
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	table, _ := newTable(t)
	for i, b := range table.Snapshot() {
		assert.Equal(t, Binding{}, b, "slot %d", i)
	}
}

func TestTableIsBackedByHostParams(t *testing.T) {
	table, params := newTable(t)

	table.SetKey(3, 21)
	table.SetValue(3, 99)

	key, err := params.Int("input3")
	require.NoError(t, err)
	value, err := params.Int("value3")
	require.NoError(t, err)
	assert.Equal(t, 21, key.Value())
	assert.Equal(t, 99, value.Value())

	value.SetValue(7)
	assert.Equal(t, 7, table.Value(3))
}

func TestApplyDuplicateKeys(t *testing.T) {
	table, _ := newTable(t)
	table.SetKey(0, 5)
	table.SetKey(1, 6)
	table.SetKey(2, 5)
	for i := 3; i < Count; i++ {
		table.SetKey(i, 100)
	}

	n := table.Apply(5, 90)

	assert.Equal(t, 2, n)
	assert.Equal(t, 90, table.Value(0))
	assert.Equal(t, 0, table.Value(1))
	assert.Equal(t, 90, table.Value(2))
}

func TestApplyNoMatch(t *testing.T) {
	table, _ := newTable(t)
	for i := 0; i < Count; i++ {
		table.SetKey(i, 1)
	}
	assert.Zero(t, table.Apply(2, 40))
	for _, b := range table.Snapshot() {
		assert.Zero(t, b.Value)
	}
}

func TestParamNames(t *testing.T) {
	tests := []struct {
		name string
		key  bool
	}{
		{"input0", true},
		{"input24", true},
		{"input25", false},
		{"input", false},
		{"input01", false},
		{"value7", false},
		{"port", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, IsKeyParam(tt.name))
		})
	}
}
