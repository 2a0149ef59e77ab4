package nav

import (
	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/types"
)

// maxHistory bounds the back stack
const maxHistory = 16

// Scroller brings a node into view. Calls must be idempotent.
type Scroller interface {
	ScrollIntoView(n *Node)
}

// NativeFocus is the platform's pointer/keyboard focus
type NativeFocus interface {
	// HasFocus reports whether some native control holds focus
	HasFocus() bool
	// ClearFocus moves native focus to a neutral container that draws no indicator
	ClearFocus()
}

// State is the controller's coarse state
type State int

const (
	StateNoFocus State = iota
	StateFocused
	StateDialogCaptured
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateFocused:
		return "Focused"
	case StateDialogCaptured:
		return "DialogCaptured"
	default:
		return "NoFocus"
	}
}

// Hooks observe controller activity. All fields are optional.
type Hooks struct {
	OnIntent      func(in types.Intent)
	OnMove        func(from, to *Node)
	OnAbsorbed    func(in types.Intent)
	OnCapture     func()
	OnPanic       func(callback string)
	OnPageChanged func(p *Page)
}

// Controller owns device focus for a set of pages. All methods must be
// called from the UI goroutine.
type Controller struct {
	pages   []*Page
	page    *Page
	history []*Page

	deviceModality    bool
	suppressAutoFocus bool
	capture           *capture

	scroller Scroller
	native   NativeFocus
	modals   ModalSource
	hooks    Hooks
	logger   *zap.Logger
}

// NewController creates a controller cycling through pages in order.
// No page is current until InitializePageNavigation is called.
func NewController(pages []*Page, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		pages:  pages,
		logger: logger,
	}
}

// SetScroller installs the scroll collaborator
func (c *Controller) SetScroller(s Scroller) {
	c.scroller = s
}

// SetNativeFocus installs the native focus collaborator
func (c *Controller) SetNativeFocus(n NativeFocus) {
	c.native = n
}

// SetModalSource installs the "current modal, if any" accessor
func (c *Controller) SetModalSource(m ModalSource) {
	c.modals = m
}

// SetHooks installs activity observers
func (c *Controller) SetHooks(h Hooks) {
	c.hooks = h
}

// Pages returns the page cycle
func (c *Controller) Pages() []*Page {
	return c.pages
}

// Page returns the current page
func (c *Controller) Page() *Page {
	return c.page
}

// PageIndex returns the current page's position in the cycle, or -1
func (c *Controller) PageIndex() int {
	for i, p := range c.pages {
		if p == c.page {
			return i
		}
	}
	return -1
}

// DeviceModality reports whether the directional device is the active input method
func (c *Controller) DeviceModality() bool {
	return c.deviceModality
}

// State returns the coarse controller state
func (c *Controller) State() State {
	if c.currentModal() != nil {
		return StateDialogCaptured
	}
	if c.Focused() != nil {
		return StateFocused
	}
	return StateNoFocus
}

// Mode returns the sub-mode of the focused element
func (c *Controller) Mode() SubMode {
	n := c.Focused()
	if n == nil {
		return SubMode{}
	}
	return ModeOf(n.element)
}

// Focused returns the device-focused node of the current page. A node
// that was detached, hidden, or disabled since it was focused is dropped
// and nil is returned.
func (c *Controller) Focused() *Node {
	p := c.page
	if p == nil || p.focused == nil {
		return nil
	}
	n := p.focused
	if !c.isLive(p, n) {
		c.logger.Debug("Dropping stale focus", zap.String("page", p.name), zap.Stringer("node", n))
		c.leavePage(p)
		return nil
	}
	return n
}

// isLive reports whether n can hold focus on p right now
func (c *Controller) isLive(p *Page, n *Node) bool {
	return n.element != nil &&
		n.navigable &&
		matchesGroup(n, p.group) &&
		p.root.IsAncestorOf(n) &&
		n.Eligible()
}

// SuppressNextAutoFocus skips the lazy focus acquisition on the first
// device input after a pointer-driven page switch. A device-driven page
// entry clears it.
func (c *Controller) SuppressNextAutoFocus() {
	c.suppressAutoFocus = true
}

// InitializePageNavigation makes page current. Entering through a
// device-driven page switch focuses the first registry element; any
// other entry leaves the page without focus.
func (c *Controller) InitializePageNavigation(page *Page, fromDeviceSwitch bool) {
	c.enterPage(page, fromDeviceSwitch, true)
}

func (c *Controller) enterPage(page *Page, fromDeviceSwitch, record bool) {
	if page == nil {
		return
	}
	if c.page != nil && c.page != page {
		c.leavePage(c.page)
		if record {
			c.history = append(c.history, c.page)
			if len(c.history) > maxHistory {
				c.history = c.history[len(c.history)-maxHistory:]
			}
		}
	}
	c.page = page

	if fromDeviceSwitch {
		c.suppressAutoFocus = false
		if els := page.Elements(); len(els) > 0 {
			c.SetFocus(els[0])
		}
	}

	c.logger.Debug("Page entered",
		zap.String("page", page.name),
		zap.Bool("fromDevice", fromDeviceSwitch))
	c.pageChanged(page)
}

func (c *Controller) pageChanged(page *Page) {
	if c.hooks.OnPageChanged != nil {
		c.hooks.OnPageChanged(page)
	}
}

// leavePage clears the page-scoped focus
func (c *Controller) leavePage(p *Page) {
	old := p.focused
	if old == nil {
		return
	}
	p.focused = nil
	old.deviceFocused = false
	c.notify(old, false)
	if old.element != nil {
		c.safeCall("OnFocusLost", old.element.OnFocusLost)
	}
}

// SetFocus moves device focus to n. Focus state is updated before any
// element callback runs so a failing callback cannot leave two nodes
// focused. Native UI focus is never requested.
func (c *Controller) SetFocus(n *Node) {
	p := c.page
	if p == nil {
		return
	}
	if n == nil {
		c.leavePage(p)
		return
	}
	if !c.isLive(p, n) {
		c.logger.Debug("Ignoring focus on ineligible node", zap.Stringer("node", n))
		return
	}

	old := c.Focused()
	if old == n {
		c.scrollIntoView(n)
		return
	}

	p.focused = n
	if old != nil {
		old.deviceFocused = false
		c.notify(old, false)
	}
	n.deviceFocused = true
	c.notify(n, c.deviceModality)

	if old != nil {
		c.safeCall("OnFocusLost", old.element.OnFocusLost)
	}
	c.safeCall("OnFocusGained", n.element.OnFocusGained)
	c.scrollIntoView(n)

	if c.hooks.OnMove != nil {
		c.hooks.OnMove(old, n)
	}
}

// Refresh re-resolves focus after the tree changed
func (c *Controller) Refresh() {
	if n := c.Focused(); n != nil {
		c.notify(n, c.deviceModality)
	}
}

// HandleIntent dispatches one intent from the input sampler
func (c *Controller) HandleIntent(in types.Intent) {
	if in == types.IntentNone {
		return
	}
	if c.hooks.OnIntent != nil {
		c.hooks.OnIntent(in)
	}

	c.ActivateDeviceModality()

	if c.routeModal(in) {
		return
	}
	if c.page == nil {
		c.absorbed(in)
		return
	}

	switch in {
	case types.IntentPageNext:
		c.cyclePage(1)
	case types.IntentPagePrevious:
		c.cyclePage(-1)
	case types.IntentActivate:
		n := c.Focused()
		if n == nil {
			c.acquire(in)
			return
		}
		c.safeCall("Activate", n.element.Activate)
	case types.IntentCancel:
		handled := false
		if n := c.Focused(); n != nil {
			handled = c.safeBool("Cancel", n.element.Cancel)
		}
		if !handled {
			c.back(in)
		}
	default:
		c.move(in)
	}
}

// move handles a directional intent
func (c *Controller) move(in types.Intent) {
	n := c.Focused()
	if n == nil {
		c.acquire(in)
		return
	}

	dir := in.Direction()
	if c.safeBool("CanMove", func() bool { return n.element.CanMove(dir) }) {
		c.safeCall("HandleMove", func() { n.element.HandleMove(dir) })
		return
	}

	next := c.page.neighbor(n, dir, c.page.Elements())
	if next == nil || next == n {
		c.absorbed(in)
		return
	}
	c.SetFocus(next)
}

// acquire lazily focuses the first element on device input while the
// page has no focus. The intent itself is consumed.
func (c *Controller) acquire(in types.Intent) {
	if c.suppressAutoFocus {
		c.suppressAutoFocus = false
		c.absorbed(in)
		return
	}
	els := c.page.Elements()
	if len(els) == 0 {
		c.absorbed(in)
		return
	}
	c.SetFocus(els[0])
}

// cyclePage moves through the page list with wraparound
func (c *Controller) cyclePage(delta int) {
	n := len(c.pages)
	if n == 0 {
		return
	}
	idx := c.PageIndex()
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+delta)%n + n) % n
	}
	c.InitializePageNavigation(c.pages[idx], true)
}

// back runs the page back handler, then falls back to the previous page
func (c *Controller) back(in types.Intent) {
	if c.page.onBack != nil && c.safeBool("page back", c.page.onBack) {
		return
	}
	if len(c.history) == 0 {
		c.absorbed(in)
		return
	}
	prev := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.enterPage(prev, true, false)
}

func (c *Controller) absorbed(in types.Intent) {
	if c.hooks.OnAbsorbed != nil {
		c.hooks.OnAbsorbed(in)
	}
}

// ActivateDeviceModality marks the directional device as the active
// input method. Lingering native focus is cleared so only the device
// highlight is drawn. No element action runs.
func (c *Controller) ActivateDeviceModality() {
	if c.deviceModality {
		return
	}
	c.deviceModality = true
	if c.native != nil && c.native.HasFocus() {
		c.safeCall("ClearFocus", c.native.ClearFocus)
	}
	if n := c.Focused(); n != nil {
		c.notify(n, true)
	}
}

// ReconcileNativeFocus clears native focus that a control took while
// device modality was active, such as a click handled in the same frame
// as device input.
func (c *Controller) ReconcileNativeFocus() {
	if !c.deviceModality || c.native == nil {
		return
	}
	if c.safeBool("HasFocus", c.native.HasFocus) {
		c.safeCall("ClearFocus", c.native.ClearFocus)
	}
}

// PointerOrKeyboardInput hands input back to pointer and keyboard and
// hides the device highlight. Device focus is remembered.
func (c *Controller) PointerOrKeyboardInput() {
	if !c.deviceModality {
		return
	}
	c.deviceModality = false
	if n := c.Focused(); n != nil {
		c.notify(n, false)
	}
}

func (c *Controller) scrollIntoView(n *Node) {
	if c.scroller == nil {
		return
	}
	c.safeCall("ScrollIntoView", func() { c.scroller.ScrollIntoView(n) })
}

// notify updates a node's highlight and runs its listeners
func (c *Controller) notify(n *Node, v bool) {
	for _, fn := range n.setHighlighted(v) {
		fn := fn
		c.safeCall("highlight listener", func() { fn(v) })
	}
}

// safeCall runs fn, recovering and logging a panic. Returns true if fn panicked.
func (c *Controller) safeCall(name string, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			c.logger.Error("Recovered panic in navigation callback",
				zap.String("callback", name),
				zap.Any("panic", r),
				zap.Stack("stack"))
			if c.hooks.OnPanic != nil {
				c.hooks.OnPanic(name)
			}
		}
	}()
	fn()
	return false
}

// safeBool is safeCall for predicates; a panic yields false
func (c *Controller) safeBool(name string, fn func() bool) bool {
	var v bool
	c.safeCall(name, func() { v = fn() })
	return v
}
