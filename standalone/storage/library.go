package storage

import (
	"errors"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LoadLibrary loads the profiles from library.json.
// A missing file yields an empty library; a corrupted file is an error.
func LoadLibrary() (*Library, error) {
	path, err := GetLibraryPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultLibrary(), nil
	}

	library := &Library{}
	if err := ReadJSON(path, library); err != nil {
		return nil, err
	}
	if library.Profiles == nil {
		library.Profiles = make(map[string]*GameProfile)
	}
	if library.Version == 0 {
		library.Version = 1
	}

	SanitizeLibraryEntries(library)
	return library, nil
}

// SaveLibrary saves the library to library.json atomically
func SaveLibrary(library *Library) error {
	path, err := GetLibraryPath()
	if err != nil {
		return err
	}
	return AtomicWriteJSON(path, library)
}

// NewProfile creates a profile with a fresh ID from the current settings
func NewProfile(name string, perf PerformanceConfig) *GameProfile {
	return &GameProfile{
		ID:          uuid.NewString(),
		Name:        name,
		PowerLimitW: perf.PowerLimitW,
		FanPreset:   perf.FanPreset,
		Added:       time.Now().Unix(),
	}
}

// AddProfile adds or replaces a profile
func (lib *Library) AddProfile(p *GameProfile) {
	if lib.Profiles == nil {
		lib.Profiles = make(map[string]*GameProfile)
	}
	lib.Profiles[p.ID] = p
}

// GetProfile retrieves a profile by ID
func (lib *Library) GetProfile(id string) *GameProfile {
	if lib.Profiles == nil {
		return nil
	}
	return lib.Profiles[id]
}

// RemoveProfile deletes a profile
func (lib *Library) RemoveProfile(id string) {
	if lib.Profiles != nil {
		delete(lib.Profiles, id)
	}
}

// ProfileCount returns the number of profiles
func (lib *Library) ProfileCount() int {
	return len(lib.Profiles)
}

// ToggleFavorite flips a profile's favorite flag. Returns false when the
// profile does not exist.
func (lib *Library) ToggleFavorite(id string) bool {
	p := lib.GetProfile(id)
	if p == nil {
		return false
	}
	p.Favorite = !p.Favorite
	return true
}

// MarkApplied records that a profile was applied now
func (lib *Library) MarkApplied(id string) {
	if p := lib.GetProfile(id); p != nil {
		p.LastApplied = time.Now().Unix()
	}
}

// GetProfilesSorted returns profiles ordered for display. Favorites come
// first; sortBy is "name" or "lastApplied".
func (lib *Library) GetProfilesSorted(sortBy string) []*GameProfile {
	profiles := make([]*GameProfile, 0, len(lib.Profiles))
	for _, p := range lib.Profiles {
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		a, b := profiles[i], profiles[j]
		if a.Favorite != b.Favorite {
			return a.Favorite
		}
		if sortBy == "lastApplied" && a.LastApplied != b.LastApplied {
			return a.LastApplied > b.LastApplied
		}
		return compareProfiles(a, b)
	})
	return profiles
}

// compareProfiles orders by name (case-insensitive), then ID
func compareProfiles(a, b *GameProfile) bool {
	an := strings.ToLower(a.Name)
	bn := strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	return a.ID < b.ID
}

// FormatLastApplied formats a Unix timestamp relative to now: "Never",
// "Today", "Yesterday", "Jan 2" this year, or "Jan 2, 2006".
func FormatLastApplied(timestamp int64, now time.Time) string {
	if timestamp == 0 {
		return "Never"
	}

	t := time.Unix(timestamp, 0).In(now.Location())
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	if t.Year() == yesterday.Year() && t.YearDay() == yesterday.YearDay() {
		return "Yesterday"
	}
	if t.Year() == now.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}
