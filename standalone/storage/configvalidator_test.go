package storage

import (
	"encoding/json"
	"strings"
	"testing"
)

var validTestThemes = []string{"Default", "Dark", "Light", "Retro"}

func TestDetectPresentKeys(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected []string
		absent   []string
	}{
		{
			name:     "nested keys",
			json:     `{"version": 1, "display": {"brightness": 0}, "performance": {"fanAuto": false}}`,
			expected: []string{"version", "display", "display.brightness", "performance.fanAuto"},
			absent:   []string{"display.resolution", "theme"},
		},
		{
			name:   "empty object",
			json:   `{}`,
			absent: []string{"version", "display.brightness"},
		},
		{
			name:   "invalid json",
			json:   `{`,
			absent: []string{"version"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := detectPresentKeys([]byte(tc.json))
			for _, k := range tc.expected {
				if !got[k] {
					t.Errorf("expected %q present", k)
				}
			}
			for _, k := range tc.absent {
				if got[k] {
					t.Errorf("expected %q absent", k)
				}
			}
		})
	}
}

func TestApplyMissingDefaults(t *testing.T) {
	t.Run("present zero values are kept", func(t *testing.T) {
		raw := []byte(`{"display": {"brightness": 0}, "performance": {"fanAuto": false}}`)
		config := &Config{}
		if err := json.Unmarshal(raw, config); err != nil {
			t.Fatal(err)
		}
		ApplyMissingDefaults(config, detectPresentKeys(raw))

		if config.Display.Brightness != 0 {
			t.Errorf("brightness 0 was overwritten with %d", config.Display.Brightness)
		}
		if config.Performance.FanAuto {
			t.Error("explicit fanAuto=false was overwritten")
		}
		if config.Display.Resolution != DefaultConfig().Display.Resolution {
			t.Errorf("missing resolution not defaulted: %q", config.Display.Resolution)
		}
		if config.Performance.PowerLimitW != DefaultConfig().Performance.PowerLimitW {
			t.Errorf("missing power limit not defaulted: %d", config.Performance.PowerLimitW)
		}
	})

	t.Run("empty file gets every default", func(t *testing.T) {
		config := &Config{}
		ApplyMissingDefaults(config, map[string]bool{})
		if errs := ValidateConfig(config, validTestThemes); len(errs) != 0 {
			t.Errorf("defaulted config is invalid: %v", errs)
		}
	})
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantKey string
	}{
		{"bad version", func(c *Config) { c.Version = 2 }, "version"},
		{"unknown theme", func(c *Config) { c.Theme = "Neon" }, "theme"},
		{"off-preset font", func(c *Config) { c.FontSize = 15 }, "fontSize"},
		{"narrow window", func(c *Config) { c.Window.Width = 400 }, "window.width"},
		{"short window", func(c *Config) { c.Window.Height = 100 }, "window.height"},
		{"power too low", func(c *Config) { c.Performance.PowerLimitW = 4 }, "performance.powerLimitW"},
		{"power too high", func(c *Config) { c.Performance.PowerLimitW = 31 }, "performance.powerLimitW"},
		{"unknown fan preset", func(c *Config) { c.Performance.FanPreset = "silent" }, "performance.fanPreset"},
		{"brightness off step", func(c *Config) { c.Display.Brightness = 42 }, "display.brightness"},
		{"brightness above range", func(c *Config) { c.Display.Brightness = 105 }, "display.brightness"},
		{"unknown resolution", func(c *Config) { c.Display.Resolution = "640x480" }, "display.resolution"},
		{"sharpness out of range", func(c *Config) { c.Graphics.Sharpness = -1 }, "graphics.sharpness"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)

			errs := ValidateConfig(config, validTestThemes)
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %v", errs)
			}
			if !strings.HasPrefix(errs[0], tc.wantKey+":") {
				t.Errorf("error %q does not name %s", errs[0], tc.wantKey)
			}

			CorrectConfig(config, validTestThemes)
			if errs := ValidateConfig(config, validTestThemes); len(errs) != 0 {
				t.Errorf("corrected config still invalid: %v", errs)
			}
		})
	}
}

func TestCorrectConfigPreservesValidFields(t *testing.T) {
	config := DefaultConfig()
	config.Theme = "Dark"
	config.Display.Brightness = 35
	config.Performance.PowerLimitW = 99

	CorrectConfig(config, validTestThemes)

	if config.Theme != "Dark" {
		t.Errorf("valid theme changed to %q", config.Theme)
	}
	if config.Display.Brightness != 35 {
		t.Errorf("valid brightness changed to %d", config.Display.Brightness)
	}
	if config.Performance.PowerLimitW != DefaultConfig().Performance.PowerLimitW {
		t.Errorf("invalid power limit not reset: %d", config.Performance.PowerLimitW)
	}
}

func TestValidateLibrary(t *testing.T) {
	lib := DefaultLibrary()
	lib.Version = 0
	lib.Profiles["a"] = &GameProfile{ID: "b"}

	errs := ValidateLibrary(lib)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}

	CorrectLibrary(lib)
	if errs := ValidateLibrary(lib); len(errs) != 0 {
		t.Errorf("corrected library still invalid: %v", errs)
	}
	if lib.Profiles["a"].ID != "a" {
		t.Errorf("profile id not corrected: %q", lib.Profiles["a"].ID)
	}
}

func TestSanitizeLibraryEntries(t *testing.T) {
	lib := DefaultLibrary()
	lib.Profiles["x"] = &GameProfile{PowerLimitW: 1, FanPreset: "turbo", LastApplied: -5, Added: -1}
	SanitizeLibraryEntries(lib)

	p := lib.Profiles["x"]
	if p.ID != "x" {
		t.Errorf("empty id not filled from key: %q", p.ID)
	}
	if p.PowerLimitW != PowerLimitMin {
		t.Errorf("power limit not clamped: %d", p.PowerLimitW)
	}
	if p.FanPreset != "turbo" {
		t.Errorf("valid fan preset changed: %q", p.FanPreset)
	}
	if p.LastApplied != 0 || p.Added != 0 {
		t.Errorf("negative timestamps not reset: %+v", p)
	}
}
