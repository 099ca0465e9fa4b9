package desktop

import (
	"os/exec"
	goruntime "runtime"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/options"
)

const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Package-level hooks for testing.
var (
	currentOS  = goruntime.GOOS
	runCommand = func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).Output()
	}
)

// ResolveTheme maps a configured theme to "dark" or "light", asking the OS
// when it is "auto".
func ResolveTheme(theme string) string {
	switch theme {
	case ThemeDark, ThemeLight:
		return theme
	}
	return DetectSystemTheme()
}

// DetectSystemTheme returns "dark" or "light" based on OS settings.
// Falls back to "light" if detection fails.
func DetectSystemTheme() string {
	switch currentOS {
	case "darwin":
		return detectMacOSTheme()
	case "linux":
		return detectLinuxTheme()
	default:
		return ThemeLight
	}
}

// detectMacOSTheme checks AppleInterfaceStyle for dark mode
func detectMacOSTheme() string {
	output, err := runCommand("defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		// Key doesn't exist when in light mode
		return ThemeLight
	}
	if strings.TrimSpace(string(output)) == "Dark" {
		return ThemeDark
	}
	return ThemeLight
}

// detectLinuxTheme checks GNOME color-scheme, then the GTK theme name
func detectLinuxTheme() string {
	output, err := runCommand("gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err == nil {
		lower := strings.ToLower(string(output))
		if strings.Contains(lower, "dark") {
			return ThemeDark
		}
		if strings.Contains(lower, "light") {
			return ThemeLight
		}
	}

	output, err = runCommand("gsettings", "get", "org.gnome.desktop.interface", "gtk-theme")
	if err == nil && strings.Contains(strings.ToLower(string(output)), "dark") {
		return ThemeDark
	}
	return ThemeLight
}

// Background returns the window colour matching the page stylesheet for theme.
func Background(theme string) *options.RGBA {
	if theme == ThemeDark {
		return &options.RGBA{R: 47, G: 47, B: 47, A: 1}
	}
	return &options.RGBA{R: 246, G: 246, B: 246, A: 1}
}
