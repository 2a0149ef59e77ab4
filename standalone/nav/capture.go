package nav

import (
	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/types"
)

// Modal is an open dialog that takes over device input
type Modal interface {
	// Accept runs the primary action
	Accept()
	// Dismiss runs the secondary action
	Dismiss()
}

// ModalSource reports the dialog currently open, if any
type ModalSource interface {
	CurrentModal() Modal
}

// capture remembers the state a modal interrupted
type capture struct {
	modal    Modal
	page     *Page
	focused  *Node
	prev     *capture
	released bool
}

// BeginCapture routes device input exclusively to m until the returned
// release function is called. Release restores the page and focus that
// were current when the capture began. Release is idempotent, so callers
// can both defer it and call it from the modal's close path.
func (c *Controller) BeginCapture(m Modal) (release func()) {
	cp := &capture{
		modal:   m,
		page:    c.page,
		focused: c.Focused(),
		prev:    c.capture,
	}
	c.capture = cp

	c.logger.Debug("Dialog capture acquired", zap.Stringer("focused", cp.focused))
	if c.hooks.OnCapture != nil {
		c.hooks.OnCapture()
	}
	return func() { c.releaseCapture(cp) }
}

// Captured reports whether a modal currently owns device input
func (c *Controller) Captured() bool {
	return c.currentModal() != nil
}

func (c *Controller) currentModal() Modal {
	if c.capture != nil {
		return c.capture.modal
	}
	if c.modals != nil {
		return c.modals.CurrentModal()
	}
	return nil
}

// releaseCapture unlinks cp and restores the state it saved
func (c *Controller) releaseCapture(cp *capture) {
	if cp.released {
		return
	}
	cp.released = true

	if c.capture == cp {
		c.capture = cp.prev
	} else {
		for cur := c.capture; cur != nil; cur = cur.prev {
			if cur.prev == cp {
				cur.prev = cp.prev
				break
			}
		}
	}

	pageRestored := false
	if cp.page != nil && c.page != cp.page {
		if c.page != nil {
			c.leavePage(c.page)
		}
		c.page = cp.page
		pageRestored = true
	}

	switch {
	case cp.focused != nil && c.page != nil && c.isLive(c.page, cp.focused):
		c.SetFocus(cp.focused)
	case cp.focused == nil && c.page != nil:
		c.leavePage(c.page)
	}
	c.Refresh()

	c.logger.Debug("Dialog capture released", zap.Stringer("focused", c.Focused()))
	if pageRestored {
		c.pageChanged(c.page)
	}
}

// routeModal delivers an intent to the open modal. Returns false when
// no modal is open. Directional and page intents are discarded.
func (c *Controller) routeModal(in types.Intent) bool {
	m := c.currentModal()
	if m == nil {
		return false
	}

	switch in {
	case types.IntentActivate:
		c.invokeModal(m, "modal accept", m.Accept)
	case types.IntentCancel:
		c.invokeModal(m, "modal dismiss", m.Dismiss)
	default:
		c.logger.Debug("Discarding intent while dialog is open", zap.Stringer("intent", in))
	}
	return true
}

// invokeModal runs a modal action inside a capture scope. A modal found
// through the ModalSource without an explicit capture gets one for the
// duration of the call. A panicking action always releases its capture.
func (c *Controller) invokeModal(m Modal, name string, fn func()) {
	cp := c.capture
	if cp == nil || cp.modal != m {
		release := c.BeginCapture(m)
		defer release()
		cp = c.capture
	}

	if c.safeCall(name, fn) {
		c.releaseCapture(cp)
	}
}
