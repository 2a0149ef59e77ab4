package standalone

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/style"
)

// DialogOption identifies a dialog button
type DialogOption int

const (
	DialogConfirm DialogOption = iota
	DialogCancel
	DialogOptionCount
)

var dialogLabels = [DialogOptionCount]string{"Confirm", "Cancel"}

// dialogLayout is the geometry of an open dialog
type dialogLayout struct {
	panel    image.Rectangle
	titleY   int
	messageY int
	buttons  [DialogOptionCount]image.Rectangle
}

// computeDialogLayout centers a panel holding a title line, a message
// line and the button row
func computeDialogLayout(screenW, screenH, lineH int) dialogLayout {
	panelW := screenW * 40 / 100
	if panelW < style.DialogMinWidth {
		panelW = style.DialogMinWidth
	}
	if panelW > style.DialogMaxWidth {
		panelW = style.DialogMaxWidth
	}

	padding := style.OverlayPadding * 2
	spacing := style.DefaultSpacing
	buttonH := lineH + style.ButtonPaddingMedium*2
	panelH := padding*2 + lineH*2 + spacing*2 + buttonH

	x := (screenW - panelW) / 2
	y := (screenH - panelH) / 2

	var l dialogLayout
	l.panel = image.Rect(x, y, x+panelW, y+panelH)
	l.titleY = y + padding
	l.messageY = l.titleY + lineH + spacing

	buttonY := l.messageY + lineH + spacing
	buttonW := (panelW - padding*2 - spacing) / 2
	for i := range l.buttons {
		bx := x + padding + i*(buttonW+spacing)
		l.buttons[i] = image.Rect(bx, buttonY, bx+buttonW, buttonY+buttonH)
	}
	return l
}

// ConfirmDialog asks the user to confirm a destructive action. While it
// is open it owns device input through the controller's capture; Activate
// confirms and Cancel dismisses. Pointer and keyboard work as usual.
type ConfirmDialog struct {
	visible  bool
	title    string
	message  string
	onAccept func()
	hovered  DialogOption

	capture func(nav.Modal) (release func())
	release func()

	layout dialogLayout

	// Cached images to avoid per-frame allocations
	cache struct {
		screenW, screenH int
		lineH            int
		themeName        string
		panelBg          *ebiten.Image
		buttonBg         *ebiten.Image
		buttonBgHovered  *ebiten.Image
	}

	drawOpts ebiten.DrawImageOptions
	textOpts text.DrawOptions
}

// NewConfirmDialog creates a dialog. capture is called each time the
// dialog opens and its release when it closes; nil disables capture.
func NewConfirmDialog(capture func(nav.Modal) (release func())) *ConfirmDialog {
	return &ConfirmDialog{
		capture: capture,
		hovered: DialogOptionCount,
	}
}

// Show opens the dialog, replacing any dialog already open
func (d *ConfirmDialog) Show(title, message string, onAccept func()) {
	if d.visible {
		d.close()
	}
	d.visible = true
	d.title = title
	d.message = message
	d.onAccept = onAccept
	d.hovered = DialogOptionCount
	if d.capture != nil {
		d.release = d.capture(d)
	}
}

// IsVisible returns whether the dialog is open
func (d *ConfirmDialog) IsVisible() bool {
	return d.visible
}

// Title returns the open dialog's title
func (d *ConfirmDialog) Title() string {
	return d.title
}

// CurrentModal implements nav.ModalSource
func (d *ConfirmDialog) CurrentModal() nav.Modal {
	if !d.visible {
		return nil
	}
	return d
}

// Accept implements nav.Modal. The dialog closes before the action runs.
func (d *ConfirmDialog) Accept() {
	if !d.visible {
		return
	}
	fn := d.onAccept
	d.close()
	if fn != nil {
		fn()
	}
}

// Dismiss implements nav.Modal
func (d *ConfirmDialog) Dismiss() {
	if !d.visible {
		return
	}
	d.close()
}

func (d *ConfirmDialog) close() {
	d.visible = false
	d.onAccept = nil
	if d.release != nil {
		release := d.release
		d.release = nil
		release()
	}
}

// Update handles pointer and keyboard input for the dialog
func (d *ConfirmDialog) Update() {
	if !d.visible {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.Dismiss()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d.Accept()
		return
	}

	pt := image.Pt(ebiten.CursorPosition())
	d.hovered = d.hitTest(pt)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		d.click(pt)
	}
}

// hitTest returns the button under pt, or DialogOptionCount
func (d *ConfirmDialog) hitTest(pt image.Point) DialogOption {
	for i, r := range d.layout.buttons {
		if pt.In(r) {
			return DialogOption(i)
		}
	}
	return DialogOptionCount
}

// click activates the button under pt. Clicks outside the buttons are ignored.
func (d *ConfirmDialog) click(pt image.Point) {
	switch d.hitTest(pt) {
	case DialogConfirm:
		d.Accept()
	case DialogCancel:
		d.Dismiss()
	}
}

// rebuildCache recreates cached images when the layout or theme changed
func (d *ConfirmDialog) rebuildCache(screenW, screenH, lineH int) {
	for _, img := range []*ebiten.Image{d.cache.panelBg, d.cache.buttonBg, d.cache.buttonBgHovered} {
		if img != nil {
			img.Deallocate()
		}
	}

	d.cache.screenW = screenW
	d.cache.screenH = screenH
	d.cache.lineH = lineH
	d.cache.themeName = style.CurrentThemeName
	d.layout = computeDialogLayout(screenW, screenH, lineH)

	d.cache.panelBg = borderedImage(d.layout.panel.Dx(), d.layout.panel.Dy(), style.Surface)
	b := d.layout.buttons[0]
	d.cache.buttonBg = borderedImage(b.Dx(), b.Dy(), style.Surface)
	d.cache.buttonBgHovered = ebiten.NewImage(b.Dx(), b.Dy())
	d.cache.buttonBgHovered.Fill(style.Primary)
}

// borderedImage fills a w x h image and strokes a 1px border
func borderedImage(w, h int, fill color.NRGBA) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(fill)
	for x := 0; x < w; x++ {
		img.Set(x, 0, style.Border)
		img.Set(x, h-1, style.Border)
	}
	for y := 0; y < h; y++ {
		img.Set(0, y, style.Border)
		img.Set(w-1, y, style.Border)
	}
	return img
}

// Draw renders the dialog over a dimmed screen
func (d *ConfirmDialog) Draw(screen *ebiten.Image) {
	if !d.visible {
		return
	}

	bounds := screen.Bounds()
	_, lh := text.Measure("Ag", *style.FontFace(), 0)
	lineH := int(lh)
	if d.cache.screenW != bounds.Dx() || d.cache.screenH != bounds.Dy() ||
		d.cache.lineH != lineH || d.cache.themeName != style.CurrentThemeName {
		d.rebuildCache(bounds.Dx(), bounds.Dy(), lineH)
	}

	style.DimScreen(screen, 128)

	l := d.layout
	d.drawOpts.GeoM.Reset()
	d.drawOpts.GeoM.Translate(float64(l.panel.Min.X), float64(l.panel.Min.Y))
	screen.DrawImage(d.cache.panelBg, &d.drawOpts)

	maxText := float64(l.panel.Dx() - style.OverlayPadding*4)
	title, _ := style.TruncateToWidth(d.title, *style.FontFace(), maxText)
	message, _ := style.TruncateToWidth(d.message, *style.FontFace(), maxText)
	centerX := float64(l.panel.Min.X + l.panel.Dx()/2)
	d.drawText(screen, title, centerX, float64(l.titleY), style.Text, text.AlignStart)
	d.drawText(screen, message, centerX, float64(l.messageY), style.TextSecondary, text.AlignStart)

	for i, r := range l.buttons {
		img := d.cache.buttonBg
		if DialogOption(i) == d.hovered {
			img = d.cache.buttonBgHovered
		}
		d.drawOpts.GeoM.Reset()
		d.drawOpts.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		screen.DrawImage(img, &d.drawOpts)

		cx := float64(r.Min.X + r.Dx()/2)
		cy := float64(r.Min.Y + r.Dy()/2)
		d.drawText(screen, dialogLabels[i], cx, cy, style.Text, text.AlignCenter)
	}
}

// drawText draws s horizontally centered on x; secondary aligns y
func (d *ConfirmDialog) drawText(screen *ebiten.Image, s string, x, y float64, clr color.NRGBA, secondary text.Align) {
	d.textOpts = text.DrawOptions{}
	d.textOpts.GeoM.Translate(x, y)
	d.textOpts.PrimaryAlign = text.AlignCenter
	d.textOpts.SecondaryAlign = secondary
	d.textOpts.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, *style.FontFace(), &d.textOpts)
}
