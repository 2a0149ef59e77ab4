package storage

import (
	"encoding/json"
	"fmt"
)

// defaultedKeys lists the dotted-path keys that get a default when absent.
// Boolean fields are not listed; their zero value is the default.
var defaultedKeys = []string{
	"version", "theme", "fontSize",
	"window.width", "window.height",
	"performance.powerLimitW", "performance.fanAuto", "performance.fanPreset",
	"display.brightness", "display.resolution",
	"graphics.sharpness",
}

// detectPresentKeys unmarshals JSON bytes to determine which config keys
// are explicitly present in the file. Returns a flat set of dotted-path
// keys (e.g. "display.brightness").
func detectPresentKeys(jsonBytes []byte) map[string]bool {
	present := make(map[string]bool)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return present
	}

	for key, value := range raw {
		present[key] = true

		var nested map[string]json.RawMessage
		if json.Unmarshal(value, &nested) != nil {
			continue
		}
		for sub := range nested {
			present[key+"."+sub] = true
		}
	}
	return present
}

// ApplyMissingDefaults sets default values for config fields that are
// absent from the JSON file. Intentional zero values (brightness=0) are
// preserved.
func ApplyMissingDefaults(config *Config, presentKeys map[string]bool) {
	d := DefaultConfig()

	for _, key := range defaultedKeys {
		if presentKeys[key] {
			continue
		}
		switch key {
		case "version":
			config.Version = d.Version
		case "theme":
			config.Theme = d.Theme
		case "fontSize":
			config.FontSize = d.FontSize
		case "window.width":
			config.Window.Width = d.Window.Width
		case "window.height":
			config.Window.Height = d.Window.Height
		case "performance.powerLimitW":
			config.Performance.PowerLimitW = d.Performance.PowerLimitW
		case "performance.fanAuto":
			config.Performance.FanAuto = d.Performance.FanAuto
		case "performance.fanPreset":
			config.Performance.FanPreset = d.Performance.FanPreset
		case "display.brightness":
			config.Display.Brightness = d.Display.Brightness
		case "display.resolution":
			config.Display.Resolution = d.Display.Resolution
		case "graphics.sharpness":
			config.Graphics.Sharpness = d.Graphics.Sharpness
		}
	}
}

// configRule checks one field and resets it to the default when invalid
type configRule struct {
	check   func(c *Config, validThemes []string) string // "" when valid
	correct func(c, d *Config)
}

var configRules = []configRule{
	{
		check: func(c *Config, _ []string) string {
			if c.Version != 1 {
				return fmt.Sprintf("version: %d (valid: 1)", c.Version)
			}
			return ""
		},
		correct: func(c, d *Config) { c.Version = d.Version },
	},
	{
		check: func(c *Config, validThemes []string) string {
			if !contains(validThemes, c.Theme) {
				return fmt.Sprintf("theme: %q (valid: %v)", c.Theme, validThemes)
			}
			return ""
		},
		correct: func(c, d *Config) { c.Theme = d.Theme },
	},
	{
		check: func(c *Config, _ []string) string {
			if ValidFontSize(c.FontSize) != c.FontSize {
				return fmt.Sprintf("fontSize: %d (valid: %v)", c.FontSize, FontSizePresets)
			}
			return ""
		},
		correct: func(c, d *Config) { c.FontSize = d.FontSize },
	},
	{
		check: func(c *Config, _ []string) string {
			if c.Window.Width < 900 {
				return fmt.Sprintf("window.width: %d (valid: >= 900)", c.Window.Width)
			}
			return ""
		},
		correct: func(c, d *Config) { c.Window.Width = d.Window.Width },
	},
	{
		check: func(c *Config, _ []string) string {
			if c.Window.Height < 650 {
				return fmt.Sprintf("window.height: %d (valid: >= 650)", c.Window.Height)
			}
			return ""
		},
		correct: func(c, d *Config) { c.Window.Height = d.Window.Height },
	},
	{
		check: func(c *Config, _ []string) string {
			if p := c.Performance.PowerLimitW; p < PowerLimitMin || p > PowerLimitMax {
				return fmt.Sprintf("performance.powerLimitW: %d (valid: %d-%d)", p, PowerLimitMin, PowerLimitMax)
			}
			return ""
		},
		correct: func(c, d *Config) { c.Performance.PowerLimitW = d.Performance.PowerLimitW },
	},
	{
		check: func(c *Config, _ []string) string {
			if !ValidFanPreset(c.Performance.FanPreset) {
				return fmt.Sprintf("performance.fanPreset: %q (valid: %v)", c.Performance.FanPreset, FanPresets)
			}
			return ""
		},
		correct: func(c, d *Config) { c.Performance.FanPreset = d.Performance.FanPreset },
	},
	{
		check: func(c *Config, _ []string) string {
			if b := c.Display.Brightness; b < 0 || b > 100 || b%BrightnessStep != 0 {
				return fmt.Sprintf("display.brightness: %d (valid: 0-100 in steps of %d)", b, BrightnessStep)
			}
			return ""
		},
		correct: func(c, d *Config) { c.Display.Brightness = d.Display.Brightness },
	},
	{
		check: func(c *Config, _ []string) string {
			if !ValidResolution(c.Display.Resolution) {
				return fmt.Sprintf("display.resolution: %q (valid: %v)", c.Display.Resolution, Resolutions)
			}
			return ""
		},
		correct: func(c, d *Config) { c.Display.Resolution = d.Display.Resolution },
	},
	{
		check: func(c *Config, _ []string) string {
			if s := c.Graphics.Sharpness; s < 0 || s > 100 {
				return fmt.Sprintf("graphics.sharpness: %d (valid: 0-100)", s)
			}
			return ""
		},
		correct: func(c, d *Config) { c.Graphics.Sharpness = d.Graphics.Sharpness },
	},
}

// ValidateConfig checks all config fields against valid ranges and returns
// human-readable error descriptions. An empty slice means the config is valid.
// validThemes should be the list of known theme names.
func ValidateConfig(config *Config, validThemes []string) []string {
	var errors []string
	for _, r := range configRules {
		if msg := r.check(config, validThemes); msg != "" {
			errors = append(errors, msg)
		}
	}
	return errors
}

// CorrectConfig resets any invalid fields to their defaults from DefaultConfig().
// Valid fields are preserved. validThemes should be the list of known theme names.
func CorrectConfig(config *Config, validThemes []string) *Config {
	d := DefaultConfig()
	for _, r := range configRules {
		if r.check(config, validThemes) != "" {
			r.correct(config, d)
		}
	}
	return config
}
