package input

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/types"
)

// Default sampling parameters
const (
	DefaultPollRate     = 60
	DefaultInitialDelay = 180 * time.Millisecond
	DefaultRepeatRate   = 50 * time.Millisecond
	DefaultDeadZone     = 0.7
)

// Options configures edge and repeat timing
type Options struct {
	InitialDelay time.Duration // Hold time before the first repeat
	RepeatRate   time.Duration // Interval between subsequent repeats
	DeadZone     float64       // Stick deflection needed to count as a press
	DisableStick bool          // Ignore the stick and use the d-pad only
}

// DefaultOptions returns the standard timing
func DefaultOptions() Options {
	return Options{
		InitialDelay: DefaultInitialDelay,
		RepeatRate:   DefaultRepeatRate,
		DeadZone:     DefaultDeadZone,
	}
}

// heldButton tracks one button between polls
type heldButton struct {
	last      time.Time // Time of the press edge or the most recent repeat
	repeating bool      // True once the first repeat has fired
}

// Sampler converts device snapshots into edge and repeat intents.
// Sample may be called from any goroutine; SetOptions may race with it.
type Sampler struct {
	mu     sync.Mutex
	device Device
	opts   Options
	logger *zap.Logger
	held   map[Button]*heldButton
	now    func() time.Time
}

// NewSampler creates a sampler reading from device
func NewSampler(device Device, opts Options, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sampler{
		device: device,
		opts:   normalize(opts),
		logger: logger,
		held:   make(map[Button]*heldButton),
		now:    time.Now,
	}
}

// normalize fills zero values with defaults
func normalize(opts Options) Options {
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = DefaultInitialDelay
	}
	if opts.RepeatRate <= 0 {
		opts.RepeatRate = DefaultRepeatRate
	}
	if opts.DeadZone <= 0 || opts.DeadZone >= 1 {
		opts.DeadZone = DefaultDeadZone
	}
	return opts
}

// SetOptions replaces the timing parameters. Held buttons keep their
// timestamps so an in-progress repeat continues with the new rate.
func (s *Sampler) SetOptions(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = normalize(opts)
}

// Options returns the active timing parameters
func (s *Sampler) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Sample polls the device once and returns the intents for this tick
func (s *Sampler) Sample() []types.Intent {
	return s.SampleAt(s.now())
}

// SampleAt polls the device and evaluates edges and repeats at now.
// A poll error skips the tick without touching held state. A missing
// device releases everything and yields no intents.
func (s *Sampler) SampleAt(now time.Time) []types.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return nil
	}

	state, err := s.device.Poll()
	if err != nil {
		s.logger.Debug("Skipping input tick", zap.Error(err))
		return nil
	}
	if !state.Connected {
		if len(s.held) > 0 {
			s.held = make(map[Button]*heldButton)
		}
		return nil
	}

	pressed := state.Buttons
	if !s.opts.DisableStick {
		pressed |= stickButtons(state.StickX, state.StickY, s.opts.DeadZone)
	}

	var intents []types.Intent
	for _, b := range allButtons {
		if pressed&b == 0 {
			delete(s.held, b)
			continue
		}

		h, ok := s.held[b]
		if !ok {
			s.held[b] = &heldButton{last: now}
			intents = append(intents, b.Intent())
			continue
		}
		if !b.Repeats() {
			continue
		}

		threshold := s.opts.InitialDelay
		if h.repeating {
			threshold = s.opts.RepeatRate
		}
		if now.Sub(h.last) >= threshold {
			h.last = now
			h.repeating = true
			intents = append(intents, b.Intent())
		}
	}
	return intents
}

// Reset forgets all held buttons
func (s *Sampler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = make(map[Button]*heldButton)
}

// stickButtons maps a stick deflection past the dead zone onto d-pad buttons
func stickButtons(x, y, deadZone float64) Button {
	var b Button
	if x < -deadZone {
		b |= ButtonLeft
	} else if x > deadZone {
		b |= ButtonRight
	}
	if y < -deadZone {
		b |= ButtonUp
	} else if y > deadZone {
		b |= ButtonDown
	}
	return b
}
