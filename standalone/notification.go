package standalone

import (
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/user-none/padnav/standalone/style"
)

// NotificationType determines the visual style of the notification
type NotificationType int

const (
	NotificationTypeInfo  NotificationType = iota // Neutral result, e.g. "Profile applied"
	NotificationTypeError                         // Failed apply, drawn with an accent border
)

// Default toast durations
const (
	notifyDefaultDuration = 3 * time.Second
	notifyErrorDuration   = 5 * time.Second
)

// Notification displays temporary messages in the bottom-right corner
type Notification struct {
	mu         sync.Mutex
	message    string
	startTime  time.Time
	duration   time.Duration
	notifyType NotificationType
	now        func() time.Time

	// Pre-allocated background, regrown only when a longer message needs it
	bg *ebiten.Image
}

// NewNotification creates a new notification system
func NewNotification() *Notification {
	return &Notification{now: time.Now}
}

// Show displays a notification message
func (n *Notification) Show(message string, duration time.Duration, kind NotificationType) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = message
	n.startTime = n.now()
	n.duration = duration
	n.notifyType = kind
}

// ShowDefault displays an informational message for 3 seconds
func (n *Notification) ShowDefault(message string) {
	n.Show(message, notifyDefaultDuration, NotificationTypeInfo)
}

// ShowError displays a failure for 5 seconds
func (n *Notification) ShowError(message string) {
	n.Show(message, notifyErrorDuration, NotificationTypeError)
}

// IsVisible returns whether the notification is currently visible
func (n *Notification) IsVisible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visibleLocked()
}

func (n *Notification) visibleLocked() bool {
	return n.message != "" && n.now().Sub(n.startTime) < n.duration
}

// Message returns the visible message, or ""
func (n *Notification) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.visibleLocked() {
		return ""
	}
	return n.message
}

// Clear removes the current notification
func (n *Notification) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = ""
}

// Draw renders the notification
func (n *Notification) Draw(screen *ebiten.Image) {
	n.mu.Lock()
	if !n.visibleLocked() {
		n.mu.Unlock()
		return
	}
	message := n.message
	kind := n.notifyType
	n.mu.Unlock()

	bounds := screen.Bounds()
	padding := style.OverlayPadding
	margin := style.OverlayMargin

	// Keep long apply errors on screen
	maxText := float64(bounds.Dx() - margin*2 - padding*2)
	if maxText > 0 {
		message, _ = style.TruncateToWidth(message, *style.FontFace(), maxText)
	}

	textWidth, textHeight := text.Measure(message, *style.FontFace(), 0)
	bgWidth := int(textWidth) + padding*2
	bgHeight := int(textHeight) + padding*2
	bgX := bounds.Dx() - bgWidth - margin
	bgY := bounds.Dy() - bgHeight - margin

	if n.bg == nil || n.bg.Bounds().Dx() < bgWidth || n.bg.Bounds().Dy() < bgHeight {
		n.bg = ebiten.NewImage(bgWidth, bgHeight)
	}
	n.bg.Clear()
	overlayBg := style.OverlayBackground
	overlayBg.A = 200
	n.bg.Fill(overlayBg)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(bgX), float64(bgY))
	screen.DrawImage(n.bg.SubImage(image.Rect(0, 0, bgWidth, bgHeight)).(*ebiten.Image), opts)

	if kind == NotificationTypeError {
		style.DrawHighlight(screen, image.Rect(bgX, bgY, bgX+bgWidth, bgY+bgHeight))
	}

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX+padding), float64(bgY+padding))
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, message, *style.FontFace(), textOpts)
}
