package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// useTempDataDir points the data directory at a fresh temp dir
func useTempDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)
	Init("padnav-test")
	return dir
}

func TestValidFontSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"exact preset 14", 14, 14},
		{"equidistant picks lower", 11, 10},
		{"closer to 24", 23, 24},
		{"below minimum", 1, 10},
		{"above maximum", 100, 32},
		{"negative", -5, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidFontSize(tc.input)
			if got != tc.expected {
				t.Errorf("ValidFontSize(%d) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Version != 1 {
		t.Errorf("expected version 1, got %d", config.Version)
	}
	if config.Performance.PowerLimitW != 15 {
		t.Errorf("expected power limit 15, got %d", config.Performance.PowerLimitW)
	}
	if !config.Performance.FanAuto {
		t.Error("expected fan auto on by default")
	}
	if config.Display.Brightness%BrightnessStep != 0 {
		t.Errorf("default brightness %d is not on a step", config.Display.Brightness)
	}
	if !ValidResolution(config.Display.Resolution) {
		t.Errorf("default resolution %q is not selectable", config.Display.Resolution)
	}
	if errs := ValidateConfig(config, []string{"Default"}); len(errs) != 0 {
		t.Errorf("default config is invalid: %v", errs)
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "test.json")

	data := struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}{
		Name:  "test",
		Value: 42,
	}

	if err := AtomicWriteJSON(path, data); err != nil {
		t.Fatalf("AtomicWriteJSON failed: %v", err)
	}

	var result struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	if err := ReadJSON(path, &result); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if result.Name != data.Name || result.Value != data.Value {
		t.Errorf("data mismatch: expected %+v, got %+v", data, result)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file was not cleaned up")
	}
}

func TestReadJSONInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	var v map[string]any
	if err := ReadJSON(path, &v); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfigRoundTripThroughDataDir(t *testing.T) {
	useTempDataDir(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig on missing file: %v", err)
	}
	if config.Display.Brightness != DefaultConfig().Display.Brightness {
		t.Error("missing file should load defaults")
	}

	config.Display.Brightness = 0
	config.Graphics.AFMF = true
	if err := SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Display.Brightness != 0 {
		t.Errorf("brightness 0 should survive a reload, got %d", loaded.Display.Brightness)
	}
	if !loaded.Graphics.AFMF {
		t.Error("afmf should survive a reload")
	}
}

func TestLoadConfigCorrupted(t *testing.T) {
	useTempDataDir(t)
	path, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for corrupted config")
	}
}

func TestCreateConfigIfMissing(t *testing.T) {
	useTempDataDir(t)

	if err := CreateConfigIfMissing(); err != nil {
		t.Fatalf("CreateConfigIfMissing: %v", err)
	}
	path, _ := GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not created: %v", err)
	}
}

func TestLibraryProfiles(t *testing.T) {
	lib := DefaultLibrary()

	p := NewProfile("Elden Ring", PerformanceConfig{PowerLimitW: 25, FanPreset: "turbo"})
	if p.ID == "" {
		t.Fatal("profile has no ID")
	}
	lib.AddProfile(p)

	if lib.ProfileCount() != 1 {
		t.Errorf("expected 1 profile, got %d", lib.ProfileCount())
	}
	if got := lib.GetProfile(p.ID); got == nil || got.PowerLimitW != 25 {
		t.Errorf("unexpected profile %+v", got)
	}

	if !lib.ToggleFavorite(p.ID) || !p.Favorite {
		t.Error("favorite should toggle on")
	}
	if lib.ToggleFavorite("missing") {
		t.Error("toggling a missing profile should report false")
	}

	lib.MarkApplied(p.ID)
	if p.LastApplied == 0 {
		t.Error("last applied not recorded")
	}

	lib.RemoveProfile(p.ID)
	if lib.ProfileCount() != 0 {
		t.Errorf("expected 0 profiles after removal, got %d", lib.ProfileCount())
	}
}

func TestLibrarySorting(t *testing.T) {
	lib := DefaultLibrary()
	lib.AddProfile(&GameProfile{ID: "1", Name: "Zelda", LastApplied: 100})
	lib.AddProfile(&GameProfile{ID: "2", Name: "alan wake", LastApplied: 50})
	lib.AddProfile(&GameProfile{ID: "3", Name: "Hades", LastApplied: 300, Favorite: true})
	lib.AddProfile(&GameProfile{ID: "4", Name: "Zelda", LastApplied: 10})

	byName := lib.GetProfilesSorted("name")
	want := []string{"3", "2", "1", "4"}
	for i, id := range want {
		if byName[i].ID != id {
			t.Errorf("name sort [%d] = %s, want %s", i, byName[i].ID, id)
		}
	}

	byRecent := lib.GetProfilesSorted("lastApplied")
	want = []string{"3", "1", "2", "4"}
	for i, id := range want {
		if byRecent[i].ID != id {
			t.Errorf("lastApplied sort [%d] = %s, want %s", i, byRecent[i].ID, id)
		}
	}
}

func TestLibraryRoundTrip(t *testing.T) {
	useTempDataDir(t)

	lib, err := LoadLibrary()
	if err != nil {
		t.Fatalf("LoadLibrary on missing file: %v", err)
	}
	lib.AddProfile(&GameProfile{ID: "a", Name: "Celeste", PowerLimitW: 99, FanPreset: "loud"})
	if err := SaveLibrary(lib); err != nil {
		t.Fatalf("SaveLibrary: %v", err)
	}

	loaded, err := LoadLibrary()
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	p := loaded.GetProfile("a")
	if p == nil {
		t.Fatal("profile lost")
	}
	if p.PowerLimitW != PowerLimitMax {
		t.Errorf("power limit should be clamped on load, got %d", p.PowerLimitW)
	}
	if p.FanPreset != "balanced" {
		t.Errorf("unknown fan preset should be reset, got %q", p.FanPreset)
	}
}

func TestSetBaseDir(t *testing.T) {
	useTempDataDir(t)
	dir := filepath.Join(t.TempDir(), "custom")
	SetBaseDir(dir)
	t.Cleanup(func() { SetBaseDir("") })

	path, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "config.json") {
		t.Errorf("GetConfigPath() = %q, want under %q", path, dir)
	}

	if err := EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}

func TestFormatLastApplied(t *testing.T) {
	now := time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   int64
		want string
	}{
		{"never", 0, "Never"},
		{"earlier today", now.Add(-2 * time.Hour).Unix(), "Today"},
		{"yesterday", now.AddDate(0, 0, -1).Unix(), "Yesterday"},
		{"this year", time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC).Unix(), "Mar 4"},
		{"previous year", time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC).Unix(), "Dec 25, 2024"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatLastApplied(tc.ts, now); got != tc.want {
				t.Errorf("FormatLastApplied(%d) = %q, want %q", tc.ts, got, tc.want)
			}
		})
	}
}
