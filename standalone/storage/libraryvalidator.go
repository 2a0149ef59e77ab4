package storage

import "fmt"

// SanitizeLibraryEntries silently corrects invalid profile fields.
// This runs on load so invalid values never reach the UI.
func SanitizeLibraryEntries(lib *Library) {
	for id, p := range lib.Profiles {
		if p.ID == "" {
			p.ID = id
		}
		if p.PowerLimitW < PowerLimitMin {
			p.PowerLimitW = PowerLimitMin
		}
		if p.PowerLimitW > PowerLimitMax {
			p.PowerLimitW = PowerLimitMax
		}
		if !ValidFanPreset(p.FanPreset) {
			p.FanPreset = DefaultConfig().Performance.FanPreset
		}
		if p.LastApplied < 0 {
			p.LastApplied = 0
		}
		if p.Added < 0 {
			p.Added = 0
		}
	}
}

// ValidateLibrary checks library-level fields and returns human-readable
// error descriptions. An empty slice means the library is valid.
func ValidateLibrary(lib *Library) []string {
	var errors []string

	if lib.Version != 1 {
		errors = append(errors, fmt.Sprintf("version: %d (valid: 1)", lib.Version))
	}
	for id, p := range lib.Profiles {
		if p.ID != id {
			errors = append(errors, fmt.Sprintf("profiles.%s: id %q does not match key", id, p.ID))
		}
	}

	return errors
}

// CorrectLibrary resets invalid library-level fields
func CorrectLibrary(lib *Library) *Library {
	if lib.Version != 1 {
		lib.Version = 1
	}
	for id, p := range lib.Profiles {
		p.ID = id
	}
	return lib
}
