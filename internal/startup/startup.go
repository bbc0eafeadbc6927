// Package startup registers the workbench to launch at login.
package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Entry describes the login item
type Entry struct {
	ID   string   // reverse-DNS identifier, used for the launchd label
	Name string   // display name
	Exec string   // executable path; empty means os.Executable
	Args []string // arguments passed after the executable
}

// Default returns the entry that starts the workbench window
func Default() Entry {
	return Entry{
		ID:   "com.pixpmusic.midiparams",
		Name: "MidiParams",
		Args: []string{"gui"},
	}
}

func (e Entry) command() ([]string, error) {
	path := e.Exec
	if path == "" {
		var err error
		if path, err = os.Executable(); err != nil {
			return nil, err
		}
	}
	return append([]string{path}, e.Args...), nil
}

// Enable registers the entry to launch at system startup
func Enable(e Entry) error {
	switch runtime.GOOS {
	case "darwin":
		return enableMacOS(e)
	case "linux":
		return enableLinux(e)
	case "windows":
		return enableWindows(e)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Disable removes the entry from system startup
func Disable(e Entry) error {
	switch runtime.GOOS {
	case "darwin":
		return removeIfExists(macOSPlistPath(e))
	case "linux":
		return removeIfExists(linuxDesktopPath(e))
	case "windows":
		return disableWindows(e)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsEnabled checks if the entry is registered for startup
func IsEnabled(e Entry) bool {
	switch runtime.GOOS {
	case "darwin":
		return exists(macOSPlistPath(e))
	case "linux":
		return exists(linuxDesktopPath(e))
	case "windows":
		return exec.Command("reg", "query", windowsRegistryKey, "/v", e.Name).Run() == nil
	default:
		return false
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// --- macOS Implementation ---

func macOSPlistPath(e Entry) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "LaunchAgents", e.ID+".plist")
}

func macOSPlist(e Entry, argv []string) string {
	var args strings.Builder
	for _, a := range argv {
		fmt.Fprintf(&args, "        <string>%s</string>\n", a)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
%s    </array>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`, e.ID, args.String())
}

func enableMacOS(e Entry) error {
	argv, err := e.command()
	if err != nil {
		return err
	}
	return writeFile(macOSPlistPath(e), macOSPlist(e, argv))
}

// --- Linux Implementation ---

func linuxDesktopPath(e Entry) string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "autostart", strings.ToLower(e.Name)+".desktop")
}

func linuxDesktop(e Entry, argv []string) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
Hidden=false
NoDisplay=false
X-GNOME-Autostart-enabled=true
`, e.Name, strings.Join(argv, " "))
}

func enableLinux(e Entry) error {
	argv, err := e.command()
	if err != nil {
		return err
	}
	return writeFile(linuxDesktopPath(e), linuxDesktop(e, argv))
}

// --- Windows Implementation ---

const windowsRegistryKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func enableWindows(e Entry) error {
	argv, err := e.command()
	if err != nil {
		return err
	}
	value := `"` + argv[0] + `"`
	if len(argv) > 1 {
		value += " " + strings.Join(argv[1:], " ")
	}
	return exec.Command("reg", "add", windowsRegistryKey,
		"/v", e.Name,
		"/t", "REG_SZ",
		"/d", value,
		"/f").Run()
}

func disableWindows(e Entry) error {
	output, err := exec.Command("reg", "delete", windowsRegistryKey, "/v", e.Name, "/f").CombinedOutput()
	// Ignore error if the key doesn't exist
	if err != nil && !strings.Contains(string(output), "unable to find the specified registry key or value") {
		return err
	}
	return nil
}
