package standalone

// AppState represents the current state of the application
type AppState int

const (
	// StatePages shows the page tabs with the current page
	StatePages AppState = iota
	// StateDialog shows a confirm dialog over the current page
	StateDialog
)

// String returns the string representation of the state
func (s AppState) String() string {
	switch s {
	case StatePages:
		return "Pages"
	case StateDialog:
		return "Dialog"
	default:
		return "Unknown"
	}
}
