// Package nav routes directional navigation intents across a tree of
// focusable elements.
//
// Pages own a tree of Nodes. Nodes marked navigable and eligible (enabled
// and visible along their whole ancestor chain) make up the page registry.
// The Controller holds device focus, dispatches intents to the focused
// element, and yields to modal dialogs through a scoped capture.
package nav

import "github.com/user-none/padnav/standalone/types"

// Element is the behavior every focusable unit implements
type Element interface {
	// CanMove reports whether the element consumes a move in dir itself
	// (adjusting a value, moving a preview, changing child) instead of
	// letting focus leave.
	CanMove(dir types.Direction) bool
	// HandleMove applies a move the element claimed through CanMove
	HandleMove(dir types.Direction)
	// Activate performs the primary action
	Activate()
	// Cancel backs out of a sub-mode. It returns false when there was
	// nothing to cancel so the page can handle the back action.
	Cancel() bool
	// OnFocusGained is called after the element becomes focused
	OnFocusGained()
	// OnFocusLost is called after focus moves away
	OnFocusLost()
}

// ModeKind identifies a nested interaction state of a focused element
type ModeKind int

const (
	ModeNone ModeKind = iota
	ModeValueAdjust
	ModeListPreview
	ModeCompositeChild
)

// String returns the mode name
func (k ModeKind) String() string {
	switch k {
	case ModeValueAdjust:
		return "value-adjust"
	case ModeListPreview:
		return "list-preview"
	case ModeCompositeChild:
		return "composite-child"
	default:
		return "none"
	}
}

// SubMode is the sub-mode of an element. Child is only meaningful
// for ModeCompositeChild.
type SubMode struct {
	Kind  ModeKind
	Child int
}

// Moder is implemented by elements with sub-modes
type Moder interface {
	Mode() SubMode
}

// ModeOf returns the element's sub-mode, or ModeNone when it has none
func ModeOf(e Element) SubMode {
	if m, ok := e.(Moder); ok {
		return m.Mode()
	}
	return SubMode{}
}
