package elements

// Button runs an action on activation
type Button struct {
	Base
	value  string
	action func()
}

// NewButton creates a button
func NewButton(label string, action func()) *Button {
	return &Button{Base: Base{label: label}, action: action}
}

// Activate runs the action
func (b *Button) Activate() {
	if b.action != nil {
		b.action()
	}
}

// Value returns the secondary text shown next to the label
func (b *Button) Value() string {
	return b.value
}

// SetValue changes the secondary text
func (b *Button) SetValue(v string) {
	b.value = v
	b.changed()
}

// Toggle flips a boolean setting
type Toggle struct {
	Base
	on      bool
	onApply func(bool) error
}

// NewToggle creates a toggle with an initial state. apply is called with
// the new state on every flip.
func NewToggle(label string, initial bool, apply func(bool) error) *Toggle {
	return &Toggle{Base: Base{label: label}, on: initial, onApply: apply}
}

// On reports the toggle state
func (t *Toggle) On() bool {
	return t.on
}

// Set changes the state without writing it, for syncing from the model
func (t *Toggle) Set(on bool) {
	t.on = on
	t.changed()
}

// Activate flips the state and writes it. A rejected write flips it back.
func (t *Toggle) Activate() {
	t.on = !t.on
	t.changed()
	if t.onApply == nil {
		return
	}
	v := t.on
	if err := t.apply(func() error { return t.onApply(v) }); err != nil {
		t.on = !v
		t.changed()
	}
}

// Value returns On or Off
func (t *Toggle) Value() string {
	if t.on {
		return "On"
	}
	return "Off"
}
