package nav

import (
	"errors"
	"fmt"
	"sort"

	"github.com/user-none/padnav/standalone/types"
)

// Page is one top-level screen: a node tree, its zone layout, and the
// page-scoped focus state. Focus never bleeds between pages; leaving a
// page clears its focus.
type Page struct {
	name    string
	root    *Node
	group   string
	columns int

	zones       map[string]*Zone
	zoneOrder   []string
	transitions map[string]map[types.Direction]Transition
	zoneOf      map[string]string

	focused *Node
	onBack  func() bool
}

// NewPage creates a page over root. Without declared zones the registry
// is laid out as a single grid of SetColumns columns (default 1).
func NewPage(name string, root *Node) *Page {
	return &Page{
		name:        name,
		root:        root,
		columns:     1,
		zones:       make(map[string]*Zone),
		transitions: make(map[string]map[types.Direction]Transition),
		zoneOf:      make(map[string]string),
	}
}

// Name returns the page title
func (p *Page) Name() string {
	return p.name
}

// Root returns the page tree
func (p *Page) Root() *Node {
	return p.root
}

// SetGroup restricts the registry to nodes of one navigation group
func (p *Page) SetGroup(group string) *Page {
	p.group = group
	return p
}

// SetColumns sets the row width of the implicit layout
func (p *Page) SetColumns(columns int) *Page {
	if columns < 1 {
		columns = 1
	}
	p.columns = columns
	return p
}

// Columns returns the row width of the implicit layout
func (p *Page) Columns() int {
	return p.columns
}

// Elements returns the current registry for the page
func (p *Page) Elements() []*Node {
	return GetNavigableElements(p.root, p.group)
}

// RegisterZone declares a navigation zone over named nodes.
// For grid zones, keys should be in row-major order.
// columns is only used for grid zones.
func (p *Page) RegisterZone(name, zoneType string, keys []string, columns int) {
	if _, exists := p.zones[name]; !exists {
		p.zoneOrder = append(p.zoneOrder, name)
	}
	p.zones[name] = &Zone{
		Type:    zoneType,
		Keys:    keys,
		Columns: columns,
	}
	for _, key := range keys {
		p.zoneOf[key] = name
	}
}

// SetZoneKeys replaces a zone's members after the tree changes
func (p *Page) SetZoneKeys(name string, keys []string) {
	z, ok := p.zones[name]
	if !ok {
		return
	}
	for _, key := range z.Keys {
		if p.zoneOf[key] == name {
			delete(p.zoneOf, key)
		}
	}
	z.Keys = keys
	for _, key := range keys {
		p.zoneOf[key] = name
	}
}

// SetTransition defines where focus goes when leaving a zone in a
// direction. Transitions are one-way; declare the reverse separately.
func (p *Page) SetTransition(fromZone string, dir types.Direction, toZone string, toIndex int) {
	if p.transitions[fromZone] == nil {
		p.transitions[fromZone] = make(map[types.Direction]Transition)
	}
	p.transitions[fromZone][dir] = Transition{
		ToZone:  toZone,
		ToIndex: toIndex,
	}
}

// SetBackHandler installs the page-level back action. The handler
// returns false when it has nothing to do, letting the controller
// fall back to the previous page.
func (p *Page) SetBackHandler(fn func() bool) {
	p.onBack = fn
}

// Focused returns the page's device-focused node, or nil
func (p *Page) Focused() *Node {
	return p.focused
}

// ZoneInfo describes one zone for diagnostics
type ZoneInfo struct {
	Name        string
	Type        string
	Columns     int
	Keys        []string
	Transitions map[string]Transition // keyed by direction name
}

// Zones returns the declared zones in registration order
func (p *Page) Zones() []ZoneInfo {
	out := make([]ZoneInfo, 0, len(p.zoneOrder))
	for _, name := range p.zoneOrder {
		z := p.zones[name]
		info := ZoneInfo{
			Name:        name,
			Type:        z.Type,
			Columns:     z.Columns,
			Keys:        append([]string(nil), z.Keys...),
			Transitions: make(map[string]Transition),
		}
		for dir, tr := range p.transitions[name] {
			info.Transitions[dir.String()] = tr
		}
		out = append(out, info)
	}
	return out
}

// Validate checks the tree and the zone layout. Every navigable node must
// belong to a zone when zones are declared, every zone key must name a
// navigable node, and transitions must point at declared zones.
func (p *Page) Validate() error {
	if p.root == nil {
		return fmt.Errorf("page %q: nil root", p.name)
	}

	var errs []error
	if err := Validate(p.root); err != nil {
		errs = append(errs, err)
	}

	if len(p.zones) > 0 {
		navigable := make(map[string]bool)
		var walk func(n *Node)
		walk = func(n *Node) {
			if n.navigable && matchesGroup(n, p.group) {
				navigable[n.name] = true
				if _, ok := p.zoneOf[n.name]; !ok {
					errs = append(errs, fmt.Errorf("node %q is not in any zone", n.name))
				}
			}
			for _, c := range n.children {
				walk(c)
			}
		}
		walk(p.root)

		for _, name := range p.zoneOrder {
			z := p.zones[name]
			switch z.Type {
			case types.NavZoneHorizontal, types.NavZoneVertical:
			case types.NavZoneGrid:
				if z.Columns <= 0 {
					errs = append(errs, fmt.Errorf("zone %q: grid needs columns", name))
				}
			default:
				errs = append(errs, fmt.Errorf("zone %q: unknown type %q", name, z.Type))
			}
			for _, key := range z.Keys {
				if !navigable[key] {
					errs = append(errs, fmt.Errorf("zone %q: %q is not a navigable node", name, key))
				}
			}
		}
	}

	froms := make([]string, 0, len(p.transitions))
	for from := range p.transitions {
		froms = append(froms, from)
	}
	sort.Strings(froms)
	for _, from := range froms {
		if _, ok := p.zones[from]; !ok {
			errs = append(errs, fmt.Errorf("transition from unknown zone %q", from))
		}
		for dir, tr := range p.transitions[from] {
			if _, ok := p.zones[tr.ToZone]; !ok {
				errs = append(errs, fmt.Errorf("transition %s/%s to unknown zone %q", from, dir, tr.ToZone))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("page %q: %w", p.name, err)
	}
	return nil
}
