package desktop

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupThemeHooks fakes the OS and the settings commands it would run.
func setupThemeHooks(t *testing.T, goos string, answers map[string]string) {
	t.Helper()
	origOS, origRun := currentOS, runCommand

	currentOS = goos
	runCommand = func(name string, args ...string) ([]byte, error) {
		key := name + " " + strings.Join(args, " ")
		if out, ok := answers[key]; ok {
			return []byte(out), nil
		}
		return nil, errors.New("not found")
	}

	t.Cleanup(func() {
		currentOS, runCommand = origOS, origRun
	})
}

func TestResolveThemeExplicit(t *testing.T) {
	setupThemeHooks(t, "darwin", map[string]string{
		"defaults read -g AppleInterfaceStyle": "Dark\n",
	})

	assert.Equal(t, ThemeLight, ResolveTheme(ThemeLight))
	assert.Equal(t, ThemeDark, ResolveTheme(ThemeDark))
	assert.Equal(t, ThemeDark, ResolveTheme(ThemeAuto))
}

func TestDetectMacOSTheme(t *testing.T) {
	setupThemeHooks(t, "darwin", nil)
	assert.Equal(t, ThemeLight, DetectSystemTheme(), "missing key means light mode")

	setupThemeHooks(t, "darwin", map[string]string{
		"defaults read -g AppleInterfaceStyle": "Dark\n",
	})
	assert.Equal(t, ThemeDark, DetectSystemTheme())
}

func TestDetectLinuxTheme(t *testing.T) {
	setupThemeHooks(t, "linux", map[string]string{
		"gsettings get org.gnome.desktop.interface color-scheme": "'prefer-dark'",
	})
	assert.Equal(t, ThemeDark, DetectSystemTheme())

	setupThemeHooks(t, "linux", map[string]string{
		"gsettings get org.gnome.desktop.interface color-scheme": "'prefer-light'",
	})
	assert.Equal(t, ThemeLight, DetectSystemTheme())

	setupThemeHooks(t, "linux", map[string]string{
		"gsettings get org.gnome.desktop.interface color-scheme": "'default'",
		"gsettings get org.gnome.desktop.interface gtk-theme":    "'Adwaita-dark'",
	})
	assert.Equal(t, ThemeDark, DetectSystemTheme())

	setupThemeHooks(t, "linux", nil)
	assert.Equal(t, ThemeLight, DetectSystemTheme())
}

func TestDetectOtherOS(t *testing.T) {
	setupThemeHooks(t, "windows", nil)
	assert.Equal(t, ThemeLight, DetectSystemTheme())
}

func TestBackground(t *testing.T) {
	assert.Equal(t, uint8(47), Background(ThemeDark).R)
	assert.Equal(t, uint8(246), Background(ThemeLight).R)
}
