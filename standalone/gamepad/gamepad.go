// Package gamepad reads a standard-layout controller through ebiten and
// reports it as an input.Device.
package gamepad

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/padnav/standalone/input"
)

// padNameMap maps gamepad button name strings to ebiten StandardGamepadButton values.
var padNameMap = map[string]ebiten.StandardGamepadButton{
	"A":         ebiten.StandardGamepadButtonRightBottom,
	"B":         ebiten.StandardGamepadButtonRightRight,
	"X":         ebiten.StandardGamepadButtonRightLeft,
	"Y":         ebiten.StandardGamepadButtonRightTop,
	"L1":        ebiten.StandardGamepadButtonFrontTopLeft,
	"R1":        ebiten.StandardGamepadButtonFrontTopRight,
	"L2":        ebiten.StandardGamepadButtonFrontBottomLeft,
	"R2":        ebiten.StandardGamepadButtonFrontBottomRight,
	"Start":     ebiten.StandardGamepadButtonCenterRight,
	"Select":    ebiten.StandardGamepadButtonCenterLeft,
	"DpadUp":    ebiten.StandardGamepadButtonLeftTop,
	"DpadDown":  ebiten.StandardGamepadButtonLeftBottom,
	"DpadLeft":  ebiten.StandardGamepadButtonLeftLeft,
	"DpadRight": ebiten.StandardGamepadButtonLeftRight,
	"L3":        ebiten.StandardGamepadButtonLeftStick,
	"R3":        ebiten.StandardGamepadButtonRightStick,
}

var padToName map[ebiten.StandardGamepadButton]string

func init() {
	padToName = make(map[ebiten.StandardGamepadButton]string, len(padNameMap))
	for name, btn := range padNameMap {
		padToName[btn] = name
	}
}

// ParsePad converts a gamepad button name string to an ebiten.StandardGamepadButton.
// Returns the button and true if the name is valid, or 0 and false otherwise.
func ParsePad(name string) (ebiten.StandardGamepadButton, bool) {
	b, ok := padNameMap[name]
	return b, ok
}

// PadToName converts an ebiten.StandardGamepadButton to its name string
func PadToName(b ebiten.StandardGamepadButton) (string, bool) {
	name, ok := padToName[b]
	return name, ok
}

// Binding pairs a logical button with the pad button that drives it
type Binding struct {
	Button input.Button
	Pad    ebiten.StandardGamepadButton
}

// ParseBindings converts config bindings (logical name -> pad name) into
// a sorted binding list. Logical buttons missing from m keep their
// default pad button.
func ParseBindings(m map[string]string) ([]Binding, error) {
	merged := input.DefaultBindings()
	for name, pad := range m {
		merged[name] = pad
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Binding, 0, len(names))
	for _, name := range names {
		btn, ok := input.ButtonNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown button %q", name)
		}
		pad, ok := ParsePad(merged[name])
		if !ok {
			return nil, fmt.Errorf("button %s: unknown gamepad button %q", name, merged[name])
		}
		out = append(out, Binding{Button: btn, Pad: pad})
	}
	return out, nil
}

// source is the slice of ebiten's gamepad API the Pad reads
type source interface {
	GamepadIDs() []ebiten.GamepadID
	Standard(id ebiten.GamepadID) bool
	Pressed(id ebiten.GamepadID, b ebiten.StandardGamepadButton) bool
	Axis(id ebiten.GamepadID, a ebiten.StandardGamepadAxis) float64
}

type ebitenSource struct{}

func (ebitenSource) GamepadIDs() []ebiten.GamepadID {
	return ebiten.AppendGamepadIDs(nil)
}

func (ebitenSource) Standard(id ebiten.GamepadID) bool {
	return ebiten.IsStandardGamepadLayoutAvailable(id)
}

func (ebitenSource) Pressed(id ebiten.GamepadID, b ebiten.StandardGamepadButton) bool {
	return ebiten.IsStandardGamepadButtonPressed(id, b)
}

func (ebitenSource) Axis(id ebiten.GamepadID, a ebiten.StandardGamepadAxis) float64 {
	return ebiten.StandardGamepadAxisValue(id, a)
}

// Pad reports the first connected standard-layout gamepad. It is safe to
// poll from the input pump goroutine while bindings change on the UI goroutine.
type Pad struct {
	src source

	mu       sync.RWMutex
	bindings []Binding
}

// New creates a Pad using the given config bindings
func New(bindings map[string]string) (*Pad, error) {
	return newPad(ebitenSource{}, bindings)
}

func newPad(src source, bindings map[string]string) (*Pad, error) {
	p := &Pad{src: src}
	if err := p.SetBindings(bindings); err != nil {
		return nil, err
	}
	return p, nil
}

// SetBindings replaces the button bindings. On error the old bindings stay.
func (p *Pad) SetBindings(m map[string]string) error {
	b, err := ParseBindings(m)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.bindings = b
	p.mu.Unlock()
	return nil
}

// Poll implements input.Device
func (p *Pad) Poll() (input.State, error) {
	id, ok := p.active()
	if !ok {
		return input.State{}, nil
	}

	st := input.State{Connected: true}
	p.mu.RLock()
	for _, b := range p.bindings {
		if p.src.Pressed(id, b.Pad) {
			st.Buttons |= b.Button
		}
	}
	p.mu.RUnlock()

	st.StickX = p.src.Axis(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	st.StickY = p.src.Axis(id, ebiten.StandardGamepadAxisLeftStickVertical)
	return st, nil
}

// active returns the first gamepad with a standard layout
func (p *Pad) active() (ebiten.GamepadID, bool) {
	for _, id := range p.src.GamepadIDs() {
		if p.src.Standard(id) {
			return id, true
		}
	}
	return 0, false
}
