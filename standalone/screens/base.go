package screens

import (
	"image"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/user-none/padnav/standalone/nav"
)

// BaseScreen provides scroll preservation and node-to-widget lookup.
// Embed this in screen structs; it implements nav.Scroller.
type BaseScreen struct {
	// Scroll container and slider for scroll position preservation
	scrollContainer *widget.ScrollContainer
	vSlider         *widget.Slider
	scrollTop       float64

	// Widgets drawn for each navigable node, for highlight and scrolling
	nodeWidgets map[*nav.Node]widget.HasWidget
	// Refreshers copy element state into widgets without a rebuild
	syncs []func()
}

// InitBase initializes the base screen state.
// Call this in the screen's constructor.
func (b *BaseScreen) InitBase() {
	b.nodeWidgets = make(map[*nav.Node]widget.HasWidget)
}

// SetScrollWidgets stores references to the scroll widgets for position preservation.
// Call this during Build() after creating the scroll container.
func (b *BaseScreen) SetScrollWidgets(scrollContainer *widget.ScrollContainer, vSlider *widget.Slider) {
	b.scrollContainer = scrollContainer
	b.vSlider = vSlider
}

// SaveScrollPosition saves the current scroll position.
// Call this before rebuilding the screen.
func (b *BaseScreen) SaveScrollPosition() {
	if b.scrollContainer != nil {
		b.scrollTop = b.scrollContainer.ScrollTop
	}
}

// RestoreScrollPosition restores the saved scroll position.
// Call this after rebuilding the screen, once the scroll container is set.
func (b *BaseScreen) RestoreScrollPosition() {
	if b.scrollContainer != nil && b.scrollTop > 0 {
		b.setScrollTop(b.scrollTop)
	}
}

// ResetScroll forgets the saved position, for entering a different page
func (b *BaseScreen) ResetScroll() {
	b.scrollTop = 0
	if b.scrollContainer != nil {
		b.setScrollTop(0)
	}
}

func (b *BaseScreen) setScrollTop(top float64) {
	b.scrollContainer.ScrollTop = top
	if b.vSlider != nil {
		b.vSlider.Current = int(top * 1000)
	}
}

// RegisterNode records the widget drawn for a node. Node widgets live
// inside the scroll container. Call this during Build() for each navigable node.
func (b *BaseScreen) RegisterNode(n *nav.Node, w widget.HasWidget) {
	if b.nodeWidgets == nil {
		b.nodeWidgets = make(map[*nav.Node]widget.HasWidget)
	}
	b.nodeWidgets[n] = w
}

// AddSync registers a refresher run by Sync
func (b *BaseScreen) AddSync(fn func()) {
	b.syncs = append(b.syncs, fn)
}

// ClearNodes drops all registered widgets and refreshers.
// Call this at the start of Build().
func (b *BaseScreen) ClearNodes() {
	b.nodeWidgets = make(map[*nav.Node]widget.HasWidget)
	b.syncs = nil
}

// Sync copies element state into the widgets
func (b *BaseScreen) Sync() {
	for _, fn := range b.syncs {
		fn()
	}
}

// WidgetFor returns the widget drawn for n, or nil
func (b *BaseScreen) WidgetFor(n *nav.Node) widget.HasWidget {
	return b.nodeWidgets[n]
}

// RectOf returns the on-screen rectangle of n. It is empty when the node
// has no widget or the widget is scrolled out of view.
func (b *BaseScreen) RectOf(n *nav.Node) image.Rectangle {
	w := b.nodeWidgets[n]
	if w == nil {
		return image.Rectangle{}
	}
	r := w.GetWidget().Rect
	if b.scrollContainer != nil {
		r = r.Intersect(b.scrollContainer.ViewRect())
	}
	return r
}

// ScrollIntoView implements nav.Scroller. It scrolls the minimum amount
// that shows the node's widget and is a no-op when it is already visible.
func (b *BaseScreen) ScrollIntoView(n *nav.Node) {
	w := b.nodeWidgets[n]
	if w == nil || b.scrollContainer == nil {
		return
	}
	top, ok := scrollTopFor(
		b.scrollContainer.ViewRect(),
		b.scrollContainer.ContentRect(),
		b.scrollContainer.ScrollTop,
		w.GetWidget().Rect,
	)
	if ok {
		b.setScrollTop(top)
	}
}

// scrollTopFor computes the scroll fraction that brings target into view.
// Returns false when no scrolling is needed.
func scrollTopFor(view, content image.Rectangle, scrollTop float64, target image.Rectangle) (float64, bool) {
	// If content fits in view, no scrolling needed
	if content.Dy() <= view.Dy() {
		return 0, false
	}

	maxScroll := content.Dy() - view.Dy()
	offset := int(scrollTop * float64(maxScroll))

	top := target.Min.Y - view.Min.Y
	bottom := target.Max.Y - view.Min.Y

	switch {
	case top < 0:
		// Align widget top with view top
		next := max(offset+top, 0)
		return float64(next) / float64(maxScroll), true
	case bottom > view.Dy():
		// Align widget bottom with view bottom
		next := min(offset+(bottom-view.Dy()), maxScroll)
		return float64(next) / float64(maxScroll), true
	}
	return 0, false
}
