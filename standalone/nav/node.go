package nav

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyAttached is returned when adding a node that already has a parent
	ErrAlreadyAttached = errors.New("node already attached")
	// ErrNotNavigable is returned when a navigable node has no element behind it
	ErrNotNavigable = errors.New("navigable node has no element")
)

// Node is one entry in a page tree. Layout containers are plain nodes
// with no element; focusable units carry an Element and are marked
// navigable with a group and an ordering key.
type Node struct {
	id      uuid.UUID
	name    string
	element Element

	navigable bool
	group     string
	order     int

	enabled bool
	visible bool

	parent   *Node
	children []*Node

	deviceFocused bool
	highlighted   bool
	listeners     []func(bool)
}

// NewNode creates an enabled, visible node. el may be nil for containers.
func NewNode(name string, el Element) *Node {
	return &Node{
		id:      uuid.New(),
		name:    name,
		element: el,
		enabled: true,
		visible: true,
	}
}

// ID returns the node's stable identity
func (n *Node) ID() uuid.UUID {
	return n.id
}

// Name returns the node key used by zone layouts
func (n *Node) Name() string {
	return n.name
}

// Element returns the node's behavior, or nil for containers
func (n *Node) Element() Element {
	return n.element
}

// MarkNavigable registers the node as a focus candidate with a group
// name and ordering key. Returns n for chaining in page builders.
func (n *Node) MarkNavigable(group string, order int) *Node {
	n.navigable = true
	n.group = group
	n.order = order
	return n
}

// ClearNavigable removes the node from the focus candidates
func (n *Node) ClearNavigable() {
	n.navigable = false
}

// IsNavigable reports whether the node was marked navigable
func (n *Node) IsNavigable() bool {
	return n.navigable
}

// Group returns the navigation group name
func (n *Node) Group() string {
	return n.group
}

// Order returns the ordering key
func (n *Node) Order() int {
	return n.order
}

// SetEnabled enables or disables the node and its subtree
func (n *Node) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Enabled returns the node's own enabled flag
func (n *Node) Enabled() bool {
	return n.enabled
}

// SetVisible shows or hides the node and its subtree
func (n *Node) SetVisible(visible bool) {
	n.visible = visible
}

// Visible returns the node's own visible flag
func (n *Node) Visible() bool {
	return n.visible
}

// Eligible reports whether the node and every ancestor are enabled and visible
func (n *Node) Eligible() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if !cur.enabled || !cur.visible {
			return false
		}
	}
	return true
}

// Parent returns the parent node, or nil for a detached or root node
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Add attaches children in order. A child may only live in one tree.
func (n *Node) Add(children ...*Node) error {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil {
			return fmt.Errorf("add %q to %q: %w", c.name, n.name, ErrAlreadyAttached)
		}
		if c.IsAncestorOf(n) {
			return fmt.Errorf("add %q to %q: would create a cycle", c.name, n.name)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return nil
}

// MustAdd is Add for static page builders where a failure is a bug
func (n *Node) MustAdd(children ...*Node) *Node {
	if err := n.Add(children...); err != nil {
		panic(err)
	}
	return n
}

// Remove detaches child from n. Returns false if it was not a child.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Detach removes the node from its parent
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// IsAncestorOf reports whether n is other or one of its ancestors
func (n *Node) IsAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// IsDeviceFocused reports whether the node holds device focus
func (n *Node) IsDeviceFocused() bool {
	return n.deviceFocused
}

// Highlighted reports whether the node should draw the device focus indicator
func (n *Node) Highlighted() bool {
	return n.highlighted
}

// OnHighlightChanged registers a callback for highlight changes.
// Callbacks run on the UI goroutine.
func (n *Node) OnHighlightChanged(fn func(bool)) {
	if fn != nil {
		n.listeners = append(n.listeners, fn)
	}
}

// setHighlighted updates the flag and returns the listeners to notify,
// or nil when nothing changed.
func (n *Node) setHighlighted(v bool) []func(bool) {
	if n.highlighted == v {
		return nil
	}
	n.highlighted = v
	return n.listeners
}

// String returns the node name for logs
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.name
}
