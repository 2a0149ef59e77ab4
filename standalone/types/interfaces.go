// Package types provides shared navigation types used across UI packages.
// This package exists to avoid import cycles between screens, nav and input.
package types

// Direction is a directional navigation input
type Direction int

// Direction constants for navigation
const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Intent is a discrete navigation command emitted by the input sampler
type Intent int

const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
	IntentActivate
	IntentCancel
	IntentPageNext
	IntentPagePrevious
)

// String returns the intent name as used in logs and metric labels
func (i Intent) String() string {
	switch i {
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentActivate:
		return "activate"
	case IntentCancel:
		return "cancel"
	case IntentPageNext:
		return "page_next"
	case IntentPagePrevious:
		return "page_previous"
	default:
		return "none"
	}
}

// Direction returns the direction carried by a directional intent,
// or DirNone for every other intent.
func (i Intent) Direction() Direction {
	switch i {
	case IntentUp:
		return DirUp
	case IntentDown:
		return DirDown
	case IntentLeft:
		return DirLeft
	case IntentRight:
		return DirRight
	}
	return DirNone
}

// IsDirectional reports whether the intent moves focus or adjusts a value
func (i Intent) IsDirectional() bool {
	return i.Direction() != DirNone
}

// Navigation zone types
const (
	NavZoneHorizontal = "horizontal" // Left/Right navigates, Up/Down exits zone
	NavZoneVertical   = "vertical"   // Up/Down navigates, Left/Right exits zone
	NavZoneGrid       = "grid"       // 2D grid navigation
)

// Navigation index constants
const (
	NavIndexPreserve = -1 // Try to preserve column/row position
	NavIndexFirst    = -2 // Go to first item
	NavIndexLast     = -3 // Go to last item
)

// PageHost provides callbacks from screens back to the application
type PageHost interface {
	// SelectPage switches pages in response to pointer input
	SelectPage(index int)
	// RequestRebuild asks for a UI rebuild after structural changes
	RequestRebuild()
	// GetWindowWidth is used for responsive layout calculations
	GetWindowWidth() int
}
