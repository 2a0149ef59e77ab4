package screens

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/user-none/padnav/standalone/elements"
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/style"
	"github.com/user-none/padnav/standalone/types"
)

// PageScreen draws the page tabs and the current page's element tree
type PageScreen struct {
	BaseScreen

	host  PageHost
	pages []*nav.Page
	index int
	dirty bool
}

// NewPageScreen creates a screen over pages, showing the first one
func NewPageScreen(host PageHost, pages []*nav.Page) *PageScreen {
	s := &PageScreen{host: host, pages: pages}
	s.InitBase()
	return s
}

// SetPage selects the page drawn by the next Build
func (s *PageScreen) SetPage(index int) {
	if index < 0 || index >= len(s.pages) {
		return
	}
	if index != s.index {
		s.ResetScroll()
	}
	s.index = index
}

// PageIndex returns the selected page
func (s *PageScreen) PageIndex() int {
	return s.index
}

// Page returns the selected page, or nil when there are none
func (s *PageScreen) Page() *nav.Page {
	if len(s.pages) == 0 {
		return nil
	}
	return s.pages[s.index]
}

// Invalidate schedules a widget refresh on the next Update
func (s *PageScreen) Invalidate() {
	s.dirty = true
}

// Update refreshes the widgets when element state changed
func (s *PageScreen) Update() {
	if s.dirty {
		s.dirty = false
		s.Sync()
	}
}

// Build creates the screen UI
func (s *PageScreen) Build() *widget.Container {
	s.SaveScrollPosition()
	s.ClearNodes()

	root := style.ScreenContainer()
	content := style.ScreenContentContainer([]bool{false, true})

	content.AddChild(s.buildTabs())

	body := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
	)
	if p := s.Page(); p != nil {
		s.buildChildren(body, p.Root(), p.Zones())
	}

	scrollContainer, vSlider, wrapper := style.ScrollableContainer(body)
	s.SetScrollWidgets(scrollContainer, vSlider)
	s.RestoreScrollPosition()
	content.AddChild(wrapper)

	root.AddChild(content)
	s.Sync()
	return root
}

// buildTabs creates the pointer-clickable page header
func (s *PageScreen) buildTabs() *widget.Container {
	tabs := style.ButtonRow()
	for i, p := range s.pages {
		i := i
		tab := style.ToggleButton(p.Name(), i == s.index, func(*widget.ButtonClickedEventArgs) {
			s.host.SelectPage(i)
		})
		tab.GetWidget().MinHeight = style.TabHeight
		tabs.AddChild(tab)
	}
	return tabs
}

// buildChildren adds a widget for every visible child of n. Nodes
// without an element become layout groups shaped by their zone.
func (s *PageScreen) buildChildren(parent *widget.Container, n *nav.Node, zones []nav.ZoneInfo) {
	for _, c := range n.Children() {
		if !c.Visible() {
			continue
		}
		if c.Element() != nil {
			parent.AddChild(s.elementWidget(c, zoneType(c.Parent(), zones)))
			continue
		}

		z, ok := zoneOf(c, zones)
		if ok && len(c.Children()) == 0 {
			parent.AddChild(style.EmptyState(fmt.Sprintf("No %s yet", c.Name())))
			continue
		}
		group := groupContainer(z, ok)
		s.buildChildren(group, c, zones)
		parent.AddChild(group)
	}
}

// elementWidget picks the widget for an element
func (s *PageScreen) elementWidget(n *nav.Node, zone string) widget.PreferredSizeLocateableWidget {
	if ch, ok := n.Element().(interface{ SetChangeHandler(func()) }); ok {
		ch.SetChangeHandler(s.Invalidate)
	}

	switch el := n.Element().(type) {
	case *elements.Slider:
		return s.sliderRow(n, el)
	case *elements.Toggle:
		return s.toggleRow(n, el)
	case *elements.ListSelector:
		return s.listRow(n, el)
	case *elements.CompositeRow:
		return s.compositeRow(n, el)
	case *elements.Button:
		return s.buttonWidget(n, el, zone == types.NavZoneGrid)
	case elements.Describer:
		return s.textRow(n, el)
	}
	return s.textRow(n, namedOnly{n.Name()})
}

// namedOnly describes an element that has no description of its own
type namedOnly struct{ name string }

func (d namedOnly) Label() string { return d.name }
func (d namedOnly) Value() string { return "" }

// zoneOf finds the zone drawn by a group node: the zone named like the
// node, or the zone holding its children.
func zoneOf(n *nav.Node, zones []nav.ZoneInfo) (nav.ZoneInfo, bool) {
	for _, z := range zones {
		if z.Name == n.Name() {
			return z, true
		}
	}
	for _, c := range n.Children() {
		for _, z := range zones {
			for _, k := range z.Keys {
				if k == c.Name() {
					return z, true
				}
			}
		}
	}
	return nav.ZoneInfo{}, false
}

// zoneType returns the type of the zone drawn by group, or ""
func zoneType(group *nav.Node, zones []nav.ZoneInfo) string {
	if group == nil {
		return ""
	}
	if z, ok := zoneOf(group, zones); ok {
		return z.Type
	}
	return ""
}

// groupContainer lays out a group the way its zone navigates
func groupContainer(z nav.ZoneInfo, ok bool) *widget.Container {
	stretch := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})
	if !ok {
		z.Type = types.NavZoneVertical
	}

	switch z.Type {
	case types.NavZoneHorizontal:
		return widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(style.SmallSpacing),
			)),
			widget.ContainerOpts.WidgetOpts(stretch),
		)
	case types.NavZoneGrid:
		cols := max(z.Columns, 1)
		colStretch := make([]bool, cols)
		for i := range colStretch {
			colStretch[i] = true
		}
		return widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(cols),
				widget.GridLayoutOpts.Stretch(colStretch, nil),
				widget.GridLayoutOpts.Spacing(style.SmallSpacing, style.SmallSpacing),
			)),
			widget.ContainerOpts.WidgetOpts(stretch),
		)
	}
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
		widget.ContainerOpts.WidgetOpts(stretch),
	)
}
