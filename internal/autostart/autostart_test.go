package autostart

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLinuxEntryLifecycle(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG autostart only applies to linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if IsEnabled() {
		t.Fatal("Expected autostart to be disabled in a fresh config dir")
	}
	if err := Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if !IsEnabled() {
		t.Fatal("Expected autostart to be enabled")
	}

	data, err := os.ReadFile(filepath.Join(dir, "autostart", "gesturify.desktop"))
	if err != nil {
		t.Fatalf("read desktop entry: %v", err)
	}
	if !strings.Contains(string(data), "serve") || !strings.Contains(string(data), "[Desktop Entry]") {
		t.Errorf("Unexpected desktop entry:\n%s", data)
	}

	if err := Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if IsEnabled() {
		t.Fatal("Expected autostart to be disabled")
	}
	// Disabling twice is not an error
	if err := Disable(); err != nil {
		t.Fatalf("second Disable: %v", err)
	}
}

func TestMacPlistRendersLabel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent.plist")
	err := writeEntry(func() (string, error) { return path, nil }, macLaunchAgentPlist, "/usr/local/bin/gesturify")
	if err != nil {
		t.Fatalf("writeEntry: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read plist: %v", err)
	}
	for _, want := range []string{Label, "/usr/local/bin/gesturify", "<string>serve</string>"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Expected plist to contain %q", want)
		}
	}
}
