// Package elements provides the focusable controls used by the pages:
// buttons, toggles, sliders, list selectors and composite rows. Elements
// hold no rendering state; views read them through Describer and are
// told to redraw through the change handler.
package elements

import (
	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/types"
)

// Describer is implemented by elements that render as a labeled row
type Describer interface {
	Label() string
	Value() string
}

// ErrorHandler receives failed apply callbacks
type ErrorHandler func(label string, err error)

// Base carries the state shared by every element
type Base struct {
	label    string
	focused  bool
	onChange func()
	onError  ErrorHandler
}

// Label returns the row label
func (b *Base) Label() string {
	return b.label
}

// Focused reports whether the element holds device focus
func (b *Base) Focused() bool {
	return b.focused
}

// SetChangeHandler installs the redraw callback
func (b *Base) SetChangeHandler(fn func()) {
	b.onChange = fn
}

// SetErrorHandler installs the callback for failed applies
func (b *Base) SetErrorHandler(fn ErrorHandler) {
	b.onError = fn
}

func (b *Base) CanMove(types.Direction) bool { return false }
func (b *Base) HandleMove(types.Direction)   {}
func (b *Base) Cancel() bool                 { return false }
func (b *Base) OnFocusGained()               { b.focused = true }
func (b *Base) OnFocusLost()                 { b.focused = false }

func (b *Base) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}

// apply runs a write callback. Failures are logged and passed to the
// error handler before being returned.
func (b *Base) apply(fn func() error) error {
	if fn == nil {
		return nil
	}
	err := fn()
	if err != nil {
		zap.L().Warn("Apply failed", zap.String("element", b.label), zap.Error(err))
		if b.onError != nil {
			b.onError(b.label, err)
		}
	}
	return err
}
