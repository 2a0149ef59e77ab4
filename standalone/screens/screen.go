// Package screens renders navigation pages with ebitenui and maps their
// nodes back to on-screen widgets for highlighting and scrolling.
package screens

import (
	"github.com/user-none/padnav/standalone/types"
)

// Re-export interfaces from types package so the app can implement them
// without importing screens internals
type (
	PageHost = types.PageHost
)
