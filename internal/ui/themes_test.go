package ui

import (
	"bytes"
	"os"
	"testing"
)

// Theme tests mutate package state, so none of them run in parallel.

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name  string
		want  Theme
		known bool
	}{
		{"dark", DarkTheme, true},
		{"light", LightTheme, true},
		{" Light ", LightTheme, true},
		{"none", NoColorTheme, true},
		{"unknown", DarkTheme, false},
		{"", DarkTheme, false},
	}
	for _, tt := range tests {
		known := SetTheme(tt.name)
		if got := GetCurrentTheme(); got.Name != tt.want.Name {
			t.Errorf("SetTheme(%q) -> %q, want %q", tt.name, got.Name, tt.want.Name)
		}
		if known != tt.known {
			t.Errorf("SetTheme(%q) reported %v, want %v", tt.name, known, tt.known)
		}
	}
}

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Error("InitTheme(true) should disable colors")
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("color functions should be empty without colors")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}

	os.Unsetenv("NO_COLOR")
	t.Setenv(ThemeEnv, "")
	InitTheme(false)
	if GetCurrentTheme().Name != "dark" {
		t.Errorf("expected dark theme, got %q", GetCurrentTheme().Name)
	}
	if ColorGreen() != DarkTheme.Success {
		t.Error("ColorGreen should follow the current theme")
	}

	t.Setenv(ThemeEnv, "light")
	InitTheme(false)
	if GetCurrentTheme().Name != "light" {
		t.Errorf("%s=light selected %q", ThemeEnv, GetCurrentTheme().Name)
	}
	if ColorUnderline() != LightTheme.Underline || ColorBold() == "" {
		t.Error("style helpers should follow the current theme")
	}
}

func TestThemeNames(t *testing.T) {
	got := ThemeNames()
	want := []string{"dark", "light", "none"}
	if len(got) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ThemeNames() = %v, want %v", got, want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}
