package elements

import (
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/types"
)

// ListSelector picks one option from a list. Activate opens a preview
// in which Up and Down move the selection; a second Activate commits and
// Cancel restores the selection that was current when the preview opened.
type ListSelector struct {
	Base
	options    []string
	selected   int
	previewing bool
	snapshot   int
	onApply    func(int) error
}

// NewListSelector creates a selector. apply is called with the index on commit.
func NewListSelector(label string, options []string, selected int, apply func(int) error) *ListSelector {
	l := &ListSelector{
		Base:    Base{label: label},
		options: options,
		onApply: apply,
	}
	l.selected = l.clamp(selected)
	return l
}

// Options returns the option labels
func (l *ListSelector) Options() []string {
	return l.options
}

// Selected returns the selected index, which is the previewed index while open
func (l *ListSelector) Selected() int {
	return l.selected
}

// Previewing reports whether the list is open
func (l *ListSelector) Previewing() bool {
	return l.previewing
}

// Mode implements nav.Moder
func (l *ListSelector) Mode() nav.SubMode {
	if l.previewing {
		return nav.SubMode{Kind: nav.ModeListPreview}
	}
	return nav.SubMode{}
}

func (l *ListSelector) Activate() {
	if !l.previewing {
		if len(l.options) == 0 {
			return
		}
		l.previewing = true
		l.snapshot = l.selected
		l.changed()
		return
	}
	l.commit()
}

func (l *ListSelector) CanMove(dir types.Direction) bool {
	return l.previewing && (dir == types.DirUp || dir == types.DirDown)
}

func (l *ListSelector) HandleMove(dir types.Direction) {
	switch dir {
	case types.DirUp:
		l.selected = l.clamp(l.selected - 1)
	case types.DirDown:
		l.selected = l.clamp(l.selected + 1)
	default:
		return
	}
	l.changed()
}

// Cancel closes an open preview and restores the snapshot
func (l *ListSelector) Cancel() bool {
	if !l.previewing {
		return false
	}
	l.restore()
	return true
}

func (l *ListSelector) OnFocusLost() {
	l.Base.OnFocusLost()
	if l.previewing {
		l.restore()
	}
}

// Select commits a pointer-chosen index
func (l *ListSelector) Select(i int) {
	if i < 0 || i >= len(l.options) {
		return
	}
	l.selected = i
	l.commit()
}

// Value returns the selected option label
func (l *ListSelector) Value() string {
	if l.selected < 0 || l.selected >= len(l.options) {
		return ""
	}
	return l.options[l.selected]
}

func (l *ListSelector) commit() {
	l.previewing = false
	l.changed()
	if l.onApply != nil {
		i := l.selected
		l.apply(func() error { return l.onApply(i) })
	}
}

func (l *ListSelector) restore() {
	l.selected = l.snapshot
	l.previewing = false
	l.changed()
}

func (l *ListSelector) clamp(i int) int {
	if len(l.options) == 0 {
		return 0
	}
	return max(0, min(i, len(l.options)-1))
}
