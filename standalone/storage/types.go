package storage

// Config represents the user settings stored in config.json
type Config struct {
	Version     int               `json:"version"`
	Theme       string            `json:"theme"`    // Theme name: "Default", "Dark", "Light", "Retro"
	FontSize    int               `json:"fontSize"` // 10-32, default 14
	Window      WindowConfig      `json:"window"`
	Performance PerformanceConfig `json:"performance"`
	Display     DisplayConfig     `json:"display"`
	Graphics    GraphicsConfig    `json:"graphics"`
}

// PerformanceConfig contains power and cooling settings
type PerformanceConfig struct {
	PowerLimitW int    `json:"powerLimitW"` // 5-30
	FanAuto     bool   `json:"fanAuto"`
	FanPreset   string `json:"fanPreset"` // "quiet", "balanced", "turbo"
	CPUBoost    bool   `json:"cpuBoost"`
}

// DisplayConfig contains panel settings
type DisplayConfig struct {
	Brightness int    `json:"brightness"` // 0-100 in steps of 5
	Resolution string `json:"resolution"` // One of Resolutions
}

// GraphicsConfig mirrors the driver 3D settings so they survive a restart
type GraphicsConfig struct {
	RSR       bool `json:"rsr"`
	Sharpness int  `json:"sharpness"` // 0-100
	AFMF      bool `json:"afmf"`
	AntiLag   bool `json:"antiLag"`
}

// WindowConfig contains window position and size
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	X          *int `json:"x,omitempty"` // nil = OS decides position
	Y          *int `json:"y,omitempty"`
	Fullscreen bool `json:"fullscreen"`
}

// Library represents the game profiles stored in library.json
type Library struct {
	Version  int                     `json:"version"`
	Profiles map[string]*GameProfile `json:"profiles"` // profile ID -> profile
}

// GameProfile is a saved performance preset for one game
type GameProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PowerLimitW int    `json:"powerLimitW"`
	FanPreset   string `json:"fanPreset"`
	Favorite    bool   `json:"favorite"`
	LastApplied int64  `json:"lastApplied"` // Unix timestamp, 0 = never
	Added       int64  `json:"added"`       // Unix timestamp when created
}

// Power limit bounds in watts
const (
	PowerLimitMin = 5
	PowerLimitMax = 30
)

// BrightnessStep is the granularity of the brightness setting
const BrightnessStep = 5

// FanPresets lists the manual fan curves
var FanPresets = []string{"quiet", "balanced", "turbo"}

// Resolutions lists the selectable render resolutions
var Resolutions = []string{"1280x720", "1280x800", "1600x900", "1920x1080", "1920x1200"}

// FontSizePresets lists the available font size options
var FontSizePresets = []int{10, 12, 14, 16, 18, 20, 24, 28, 32}

// ValidFontSize returns the nearest valid preset font size.
func ValidFontSize(size int) int {
	best := FontSizePresets[0]
	for _, p := range FontSizePresets {
		if abs(p-size) < abs(best-size) {
			best = p
		}
	}
	return best
}

// ValidFanPreset reports whether name is a known fan curve
func ValidFanPreset(name string) bool {
	return contains(FanPresets, name)
}

// ValidResolution reports whether res is selectable
func ValidResolution(res string) bool {
	return contains(Resolutions, res)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Theme:    "Default",
		FontSize: 14,
		Window: WindowConfig{
			Width:  900,
			Height: 650,
		},
		Performance: PerformanceConfig{
			PowerLimitW: 15,
			FanAuto:     true,
			FanPreset:   "balanced",
		},
		Display: DisplayConfig{
			Brightness: 70,
			Resolution: "1280x800",
		},
		Graphics: GraphicsConfig{
			Sharpness: 75,
		},
	}
}

// DefaultLibrary returns a new Library with default values
func DefaultLibrary() *Library {
	return &Library{
		Version:  1,
		Profiles: make(map[string]*GameProfile),
	}
}
