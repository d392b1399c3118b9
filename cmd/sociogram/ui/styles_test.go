package ui

import "testing"

func TestPrefersDark(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("SOCIOGRAM_DARK_MODE", "1")
	if !PrefersDark() {
		t.Fatalf("expected dark when SOCIOGRAM_DARK_MODE=1")
	}

	t.Setenv("SOCIOGRAM_DARK_MODE", "0")
	t.Setenv("COLORFGBG", "15;0")
	if PrefersDark() {
		t.Fatalf("explicit SOCIOGRAM_DARK_MODE=0 should win over COLORFGBG")
	}

	t.Setenv("SOCIOGRAM_DARK_MODE", "")
	cases := map[string]bool{
		"15;0":        true,
		"7;default;8": true,
		"0;15":        false,
		"0;7":         false,
		"garbage":     false,
		"":            false,
	}
	for value, want := range cases {
		t.Setenv("COLORFGBG", value)
		if got := PrefersDark(); got != want {
			t.Errorf("COLORFGBG=%q: expected %v, got %v", value, want, got)
		}
	}
}

func TestThemeDisplay(t *testing.T) {
	d := NewThemeDisplay()
	if d.IsDark() {
		t.Fatalf("expected light theme initially")
	}
	d.ApplyDarkMode(true)
	if !d.IsDark() || d.Styles().Theme.Background != DarkBackground {
		t.Fatalf("expected dark styles after ApplyDarkMode(true)")
	}
	d.ApplyDarkMode(false)
	if d.IsDark() {
		t.Fatalf("expected light styles after ApplyDarkMode(false)")
	}
}

func TestThemeFor(t *testing.T) {
	if ThemeFor(true) != DarkTheme() || ThemeFor(false) != LightTheme() {
		t.Fatalf("ThemeFor should map the flag to the matching theme")
	}
}
