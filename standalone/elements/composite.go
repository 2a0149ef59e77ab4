package elements

import (
	"strings"

	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/types"
)

// Part is one child of a composite row
type Part struct {
	Label    string
	Action   func() error
	Enabled  func() bool // nil means always enabled
	Selected func() bool // drawn as active; nil means never
}

func (p Part) enabled() bool {
	return p.Enabled == nil || p.Enabled()
}

// CompositeRow is a single focus stop holding several actions laid out
// left to right. Left and Right move between enabled parts; Activate
// runs the current part.
type CompositeRow struct {
	Base
	parts []Part
	index int
}

// NewCompositeRow creates a row over parts
func NewCompositeRow(label string, parts ...Part) *CompositeRow {
	return &CompositeRow{Base: Base{label: label}, parts: parts}
}

// Parts returns the children
func (c *CompositeRow) Parts() []Part {
	return c.parts
}

// Index returns the current child
func (c *CompositeRow) Index() int {
	return c.index
}

// Mode implements nav.Moder
func (c *CompositeRow) Mode() nav.SubMode {
	if !c.focused {
		return nav.SubMode{}
	}
	return nav.SubMode{Kind: nav.ModeCompositeChild, Child: c.index}
}

func (c *CompositeRow) CanMove(dir types.Direction) bool {
	return c.step(dir) >= 0
}

func (c *CompositeRow) HandleMove(dir types.Direction) {
	if i := c.step(dir); i >= 0 {
		c.index = i
		c.changed()
	}
}

func (c *CompositeRow) Activate() {
	if c.index >= len(c.parts) {
		return
	}
	p := c.parts[c.index]
	if p.enabled() && p.Action != nil {
		c.apply(p.Action)
		c.changed()
	}
}

// Click runs a part chosen by pointer
func (c *CompositeRow) Click(i int) {
	if i < 0 || i >= len(c.parts) {
		return
	}
	c.index = i
	c.Activate()
}

func (c *CompositeRow) OnFocusGained() {
	c.Base.OnFocusGained()
	if c.index >= len(c.parts) || !c.parts[c.index].enabled() {
		c.index = c.firstEnabled()
	}
	c.changed()
}

func (c *CompositeRow) OnFocusLost() {
	c.Base.OnFocusLost()
	c.index = 0
	c.changed()
}

// Value lists the selected parts
func (c *CompositeRow) Value() string {
	var on []string
	for _, p := range c.parts {
		if p.Selected != nil && p.Selected() {
			on = append(on, p.Label)
		}
	}
	return strings.Join(on, ", ")
}

// step returns the next enabled part in dir, or -1
func (c *CompositeRow) step(dir types.Direction) int {
	delta := 0
	switch dir {
	case types.DirLeft:
		delta = -1
	case types.DirRight:
		delta = 1
	default:
		return -1
	}
	for i := c.index + delta; i >= 0 && i < len(c.parts); i += delta {
		if c.parts[i].enabled() {
			return i
		}
	}
	return -1
}

func (c *CompositeRow) firstEnabled() int {
	for i, p := range c.parts {
		if p.enabled() {
			return i
		}
	}
	return 0
}
