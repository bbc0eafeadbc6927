package tray

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PixPMusic/midiparams/internal/logging"
	"github.com/PixPMusic/midiparams/internal/startup"
)

func TestSyncLoginItemRestoresMissingEntry(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("autostart files are linux only")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	entry := startup.Entry{ID: "com.example.test", Name: "MidiParams", Exec: "/usr/bin/midiparams"}

	syncLoginItem(entry, false, logging.Nop())
	assert.False(t, startup.IsEnabled(entry))

	syncLoginItem(entry, true, logging.Nop())
	assert.True(t, startup.IsEnabled(entry))
}
