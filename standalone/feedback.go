package standalone

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/config"
	"github.com/user-none/padnav/standalone/gamepad"
)

// soundSink plays PCM data
type soundSink interface {
	Play(data []byte) error
}

// pulser vibrates the connected gamepads
type pulser interface {
	Play(p gamepad.Pulse)
}

// Feedback plays the navigation click and the edge bump. Both can be
// switched at runtime from the config watcher goroutine.
type Feedback struct {
	sounds atomic.Bool
	rumble atomic.Bool
	warned atomic.Bool

	click  []byte
	sink   soundSink
	pad    pulser
	logger *zap.Logger
}

// NewFeedback creates feedback backed by oto and ebiten rumble
func NewFeedback(opts *config.Options, logger *zap.Logger) *Feedback {
	return newFeedback(opts, NewSoundPlayer(0.6), gamepad.NewRumbler(), logger)
}

func newFeedback(opts *config.Options, sink soundSink, pad pulser, logger *zap.Logger) *Feedback {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Feedback{
		click:  generateClick(),
		sink:   sink,
		pad:    pad,
		logger: logger,
	}
	f.Apply(opts)
	return f
}

// Apply picks up the feedback toggles from opts
func (f *Feedback) Apply(opts *config.Options) {
	if opts == nil {
		return
	}
	f.sounds.Store(opts.Sounds)
	f.rumble.Store(opts.Rumble)
}

// Moved plays the click for a focus move
func (f *Feedback) Moved() {
	if !f.sounds.Load() {
		return
	}
	if err := f.sink.Play(f.click); err != nil && !f.warned.Swap(true) {
		f.logger.Warn("Navigation sounds unavailable", zap.Error(err))
	}
}

// Absorbed bumps the gamepad when a move hits an edge
func (f *Feedback) Absorbed() {
	if f.rumble.Load() {
		f.pad.Play(gamepad.Bump)
	}
}

// Close releases the audio player
func (f *Feedback) Close() {
	if c, ok := f.sink.(interface{ Close() }); ok {
		c.Close()
	}
}
