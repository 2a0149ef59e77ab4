// Package input converts raw controller state into navigation intents.
//
// A Device reports the level state of the controller; the Sampler turns it
// into pressed edges and timed repeats; the Pump runs the Sampler on its own
// ticker and hands intents to the UI goroutine through a buffered channel.
package input

import "github.com/user-none/padnav/standalone/types"

// Button is a bitmask of logical navigation buttons
type Button uint16

const (
	ButtonUp Button = 1 << iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonActivate
	ButtonCancel
	ButtonPagePrevious
	ButtonPageNext
)

// allButtons is the sampling order. Directions come first so a frame that
// carries both a move and an activate applies the move before the activate.
var allButtons = []Button{
	ButtonUp,
	ButtonDown,
	ButtonLeft,
	ButtonRight,
	ButtonPagePrevious,
	ButtonPageNext,
	ButtonActivate,
	ButtonCancel,
}

// ButtonNames maps config binding names to logical buttons
var ButtonNames = map[string]Button{
	"up":            ButtonUp,
	"down":          ButtonDown,
	"left":          ButtonLeft,
	"right":         ButtonRight,
	"activate":      ButtonActivate,
	"cancel":        ButtonCancel,
	"page_previous": ButtonPagePrevious,
	"page_next":     ButtonPageNext,
}

// Intent returns the navigation intent emitted for the button
func (b Button) Intent() types.Intent {
	switch b {
	case ButtonUp:
		return types.IntentUp
	case ButtonDown:
		return types.IntentDown
	case ButtonLeft:
		return types.IntentLeft
	case ButtonRight:
		return types.IntentRight
	case ButtonActivate:
		return types.IntentActivate
	case ButtonCancel:
		return types.IntentCancel
	case ButtonPagePrevious:
		return types.IntentPagePrevious
	case ButtonPageNext:
		return types.IntentPageNext
	}
	return types.IntentNone
}

// Repeats reports whether holding the button produces repeat events.
// Activate and Cancel only fire on the press edge.
func (b Button) Repeats() bool {
	switch b {
	case ButtonActivate, ButtonCancel:
		return false
	}
	return true
}

// State is one snapshot of the controller
type State struct {
	Connected bool
	Buttons   Button
	// Left stick deflection in [-1, 1]; negative Y is up
	StickX float64
	StickY float64
}

// Device reads the current controller state.
// A disconnected controller is not an error; it reports Connected=false.
type Device interface {
	Poll() (State, error)
}

// DeviceFunc adapts a function to the Device interface
type DeviceFunc func() (State, error)

// Poll calls f
func (f DeviceFunc) Poll() (State, error) {
	return f()
}

// PadButtonNames lists the standard-layout gamepad buttons a binding may name
var PadButtonNames = []string{
	"A", "B", "X", "Y",
	"L1", "R1", "L2", "R2",
	"Start", "Select",
	"DpadUp", "DpadDown", "DpadLeft", "DpadRight",
	"L3", "R3",
}

// DefaultBindings maps each logical button name to a gamepad button name
func DefaultBindings() map[string]string {
	return map[string]string{
		"up":            "DpadUp",
		"down":          "DpadDown",
		"left":          "DpadLeft",
		"right":         "DpadRight",
		"activate":      "A",
		"cancel":        "B",
		"page_previous": "L1",
		"page_next":     "R1",
	}
}
