package gamepad

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Minimum thresholds for rumble events. Lower values fall below the
// actuation threshold of most gamepad motors.
const (
	minRumbleMagnitude = 0.40
	minRumbleDuration  = 60 * time.Millisecond
)

// Pulse is one vibration request
type Pulse struct {
	Strong   float64
	Weak     float64
	Duration time.Duration
}

// Bump is the short pulse played when a move hits an edge
var Bump = Pulse{Strong: 0, Weak: 0.5, Duration: 80 * time.Millisecond}

// vibrator sends a vibration to one gamepad
type vibrator func(id ebiten.GamepadID, opts *ebiten.VibrateGamepadOptions)

// Rumbler plays pulses on every connected gamepad
type Rumbler struct {
	ids     func() []ebiten.GamepadID
	vibrate vibrator
}

// NewRumbler creates a Rumbler backed by ebiten
func NewRumbler() *Rumbler {
	return &Rumbler{
		ids:     func() []ebiten.GamepadID { return ebiten.AppendGamepadIDs(nil) },
		vibrate: ebiten.VibrateGamepad,
	}
}

// Play fires p on all connected gamepads. A zero pulse does nothing.
func (r *Rumbler) Play(p Pulse) {
	strong := clampMagnitude(p.Strong)
	weak := clampMagnitude(p.Weak)
	if strong == 0 && weak == 0 {
		return
	}
	d := p.Duration
	if d < minRumbleDuration {
		d = minRumbleDuration
	}

	for _, id := range r.ids() {
		r.vibrate(id, &ebiten.VibrateGamepadOptions{
			Duration:        d,
			StrongMagnitude: strong,
			WeakMagnitude:   weak,
		})
	}
}

// clampMagnitude clamps to 1.0 and lifts non-zero values to the perceptible floor
func clampMagnitude(m float64) float64 {
	switch {
	case m <= 0:
		return 0
	case m > 1:
		return 1
	case m < minRumbleMagnitude:
		return minRumbleMagnitude
	}
	return m
}
