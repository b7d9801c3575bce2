package uninstall

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeAppName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My-App", "myapp"},
		{"visual_studio code", "visualstudiocode"},
		{"firefox", "firefox"},
		{"-_ ", ""},
	}
	for _, tt := range tests {
		if got := normalizeAppName(tt.in); got != tt.want {
			t.Errorf("normalizeAppName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSearchPatterns(t *testing.T) {
	if got := searchPatterns("vim"); len(got) != 1 || got[0] != "vim" {
		t.Errorf("short name patterns = %v", got)
	}
	got := searchPatterns("libreoffice")
	if len(got) != 2 || got[1] != "libre" {
		t.Errorf("long name patterns = %v, want prefix fallback", got)
	}
}

func TestMatchesAnyNormalizesEntryName(t *testing.T) {
	if !matchesAny("zxqv-app-data", []string{"zxqvapp"}) {
		t.Error("dashed entry should match normalized pattern")
	}
	if matchesAny("unrelated", []string{"zxqvapp"}) {
		t.Error("unrelated entry matched")
	}
}

func TestFindLeftovers(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	mustMkFile := func(path, content string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mustMkFile(filepath.Join(home, ".config", "zxqvapp", "settings.json"), "{}")
	mustMkFile(filepath.Join(home, ".cache", "zxqv-app", "blob"), "123456")
	mustMkFile(filepath.Join(home, ".config", "autostart", "zxqvapp.desktop"), "[Desktop Entry]")
	mustMkFile(filepath.Join(home, ".local", "share", "unrelated", "data"), "x")

	leftovers := FindLeftovers("zxqv-app")

	byPath := make(map[string]LeftoverFile, len(leftovers))
	for _, l := range leftovers {
		byPath[l.Path] = l
	}

	cfg, ok := byPath[filepath.Join(home, ".config", "zxqvapp")]
	if !ok || cfg.Type != LeftoverConfig {
		t.Errorf("config leftover missing or mistyped: %+v", leftovers)
	}
	cache, ok := byPath[filepath.Join(home, ".cache", "zxqv-app")]
	if !ok || cache.Type != LeftoverCache || cache.Size != 6 {
		t.Errorf("cache leftover = %+v", cache)
	}
	auto, ok := byPath[filepath.Join(home, ".config", "autostart", "zxqvapp.desktop")]
	if !ok || auto.Type != LeftoverAutostart {
		t.Errorf("autostart leftover missing: %+v", leftovers)
	}
	if _, ok := byPath[filepath.Join(home, ".local", "share", "unrelated")]; ok {
		t.Error("unrelated entry reported as leftover")
	}
}

func TestFindLeftoversEmptyName(t *testing.T) {
	if got := FindLeftovers(""); got != nil {
		t.Errorf("leftovers = %+v, want nil", got)
	}
	if got := FindLeftovers("-_"); got != nil {
		t.Errorf("separator-only name gave %+v, want nil", got)
	}
}
