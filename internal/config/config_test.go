package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStateMissingFile(t *testing.T) {
	st, err := LoadState(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	require.Len(t, st.Instances, 1)
	assert.NotEmpty(t, st.Instances[0].ID)
	assert.NotNil(t, st.Instances[0].Ints)
}

func TestStateSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	st := &State{FirstLaunchCompleted: true}
	inst := NewInstanceState(DefaultInstance)
	inst.Ints["input0"] = 21
	inst.Choices["port"] = "USB MIDI"
	st.UpdateInstance(inst)

	require.NoError(t, st.Save(path))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.True(t, loaded.FirstLaunchCompleted)
	got := loaded.GetInstance(DefaultInstance)
	require.NotNil(t, got)
	assert.Equal(t, inst.ID, got.ID)
	assert.Equal(t, 21, got.Ints["input0"])
	assert.Equal(t, "USB MIDI", got.Choices["port"])
}

func TestLoadStateFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"instances":[{"name":"old"}]}`), 0644))

	st, err := LoadState(path)
	require.NoError(t, err)
	require.Len(t, st.Instances, 1)
	assert.NotEmpty(t, st.Instances[0].ID)
	assert.NotNil(t, st.Instances[0].Ints)
	assert.NotNil(t, st.Instances[0].Choices)
}

func TestLoadStateInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := LoadState(path)
	assert.Error(t, err)
}

func TestUpdateInstance(t *testing.T) {
	st := &State{}
	a := NewInstanceState("a")
	st.UpdateInstance(a)
	a.Ints["input0"] = 7
	st.UpdateInstance(a)
	st.UpdateInstance(NewInstanceState("b"))

	require.Len(t, st.Instances, 2)
	assert.Equal(t, 7, st.GetInstance("a").Ints["input0"])
	assert.NotNil(t, st.GetInstance("b"))
	assert.Nil(t, st.GetInstance("c"))
}

func TestDefaultSettingsAreValid(t *testing.T) {
	s := Default()
	assert.NoError(t, s.Validate())
	assert.Equal(t, 50, s.Workbench.PollIntervalMs)
	assert.Equal(t, "50ms", s.Workbench.PollInterval().String())
}

func TestValidateRejectsBadSettings(t *testing.T) {
	s := Default()
	s.Log.Level = "loud"
	s.Log.Format = "xml"
	s.Workbench.PollIntervalMs = 1
	s.Workbench.Instance = " "

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "log.format")
	assert.Contains(t, err.Error(), "poll_interval_ms")
	assert.Contains(t, err.Error(), "workbench.instance")
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("midi.port", "Keys")
	viper.Set("log.level", "debug")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Keys", s.MIDI.Port)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, 50, s.Workbench.PollIntervalMs)
	assert.Equal(t, DefaultInstance, s.Workbench.Instance)
}
