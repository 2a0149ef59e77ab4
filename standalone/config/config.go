// Package config loads the runtime options: input timing, gamepad
// bindings, logging, metrics and feedback toggles. Options come from
// padnav.yaml, PADNAV_* environment variables and built-in defaults, in
// that order of precedence after the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/input"
)

// Options holds the runtime configuration
type Options struct {
	// Input timing
	PollRate     int           `mapstructure:"poll_rate"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	RepeatRate   time.Duration `mapstructure:"repeat_rate"`
	DeadZone     float64       `mapstructure:"dead_zone"`
	DisableStick bool          `mapstructure:"disable_stick"`

	// Logical button name -> gamepad button name
	Bindings map[string]string `mapstructure:"bindings"`

	// Logging
	LogLevel string `mapstructure:"log_level"`

	// Prometheus listen address; empty disables the endpoint
	MetricsAddr string `mapstructure:"metrics_addr"`

	// Feedback
	Sounds bool `mapstructure:"sounds"`
	Rumble bool `mapstructure:"rumble"`

	// Directory for config.json and library.json; empty uses the platform default
	DataDir string `mapstructure:"data_dir"`
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		PollRate:     input.DefaultPollRate,
		InitialDelay: input.DefaultInitialDelay,
		RepeatRate:   input.DefaultRepeatRate,
		DeadZone:     input.DefaultDeadZone,
		Bindings:     input.DefaultBindings(),
		LogLevel:     "info",
		Sounds:       true,
		Rumble:       true,
	}
}

// SamplerOptions converts the timing fields for input.Sampler
func (o *Options) SamplerOptions() input.Options {
	return input.Options{
		InitialDelay: o.InitialDelay,
		RepeatRate:   o.RepeatRate,
		DeadZone:     o.DeadZone,
		DisableStick: o.DisableStick,
	}
}

// Validate reports every invalid option
func (o *Options) Validate() error {
	var errs []error

	if o.PollRate < 1 || o.PollRate > 1000 {
		errs = append(errs, fmt.Errorf("poll_rate: %d (valid: 1-1000)", o.PollRate))
	}
	if o.InitialDelay <= 0 {
		errs = append(errs, fmt.Errorf("initial_delay: %s (must be positive)", o.InitialDelay))
	}
	if o.RepeatRate <= 0 {
		errs = append(errs, fmt.Errorf("repeat_rate: %s (must be positive)", o.RepeatRate))
	}
	if o.DeadZone <= 0 || o.DeadZone >= 1 {
		errs = append(errs, fmt.Errorf("dead_zone: %g (valid: between 0 and 1)", o.DeadZone))
	}
	if _, err := zap.ParseAtomicLevel(o.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	pads := make(map[string]bool, len(input.PadButtonNames))
	for _, p := range input.PadButtonNames {
		pads[p] = true
	}
	names := make([]string, 0, len(o.Bindings))
	for name := range o.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := input.ButtonNames[name]; !ok {
			errs = append(errs, fmt.Errorf("bindings.%s: unknown button", name))
		}
		if pad := o.Bindings[name]; !pads[pad] {
			errs = append(errs, fmt.Errorf("bindings.%s: unknown gamepad button %q", name, pad))
		}
	}

	return errors.Join(errs...)
}

// Loader reads Options through its own viper instance
type Loader struct {
	v      *viper.Viper
	logger *zap.Logger

	mu      sync.Mutex
	current *Options
}

// NewLoader creates a loader. An explicit path is read as-is; otherwise
// padnav.yaml is searched in the user config dir and the working dir.
func NewLoader(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("padnav")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "padnav"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PADNAV")
	v.AutomaticEnv()

	d := DefaultOptions()
	v.SetDefault("poll_rate", d.PollRate)
	v.SetDefault("initial_delay", d.InitialDelay)
	v.SetDefault("repeat_rate", d.RepeatRate)
	v.SetDefault("dead_zone", d.DeadZone)
	v.SetDefault("disable_stick", d.DisableStick)
	for name, pad := range d.Bindings {
		v.SetDefault("bindings."+name, pad)
	}
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("metrics_addr", d.MetricsAddr)
	v.SetDefault("sounds", d.Sounds)
	v.SetDefault("rumble", d.Rumble)
	v.SetDefault("data_dir", d.DataDir)

	return &Loader{v: v, logger: logger}
}

// Load reads the config file, if any, and returns validated options
func (l *Loader) Load() (*Options, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	opts, err := l.decode()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.current = opts
	l.mu.Unlock()
	return opts, nil
}

// ConfigFile returns the file in use, or "" when running on defaults
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Current returns the most recently loaded options
func (l *Loader) Current() *Options {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Watch calls fn with the new options whenever the config file changes.
// Invalid edits are logged and ignored. Returns false when there is no
// file to watch.
func (l *Loader) Watch(fn func(*Options)) bool {
	if l.v.ConfigFileUsed() == "" {
		return false
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		opts, err := l.decode()
		if err != nil {
			l.logger.Warn("Ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}

		l.mu.Lock()
		l.current = opts
		l.mu.Unlock()

		l.logger.Info("Config reloaded", zap.String("file", e.Name), zap.Stringer("op", e.Op))
		fn(opts)
	})
	l.v.WatchConfig()
	return true
}

func (l *Loader) decode() (*Options, error) {
	opts := &Options{}
	if err := l.v.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return opts, nil
}
