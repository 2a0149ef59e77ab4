package style

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TruncateToWidth truncates a string to fit within maxWidth pixels.
// Binary search on rune boundaries keeps proportional fonts cheap.
func TruncateToWidth(s string, face text.Face, maxWidth float64) (string, bool) {
	if s == "" {
		return s, false
	}
	if w, _ := text.Measure(s, face, 0); w <= maxWidth {
		return s, false
	}

	const ellipsis = "..."
	if ew, _ := text.Measure(ellipsis, face, 0); ew > maxWidth {
		return ellipsis, true
	}

	lo, hi := 0, utf8.RuneCountInString(s)
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		cw, _ := text.Measure(truncateRunes(s, mid)+ellipsis, face, 0)
		if cw <= maxWidth {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return truncateRunes(s, best) + ellipsis, true
}

// truncateRunes returns the first n runes of s
func truncateRunes(s string, n int) string {
	i := 0
	for j := 0; j < n; j++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			break
		}
		i += size
	}
	return s[:i]
}

// HighlightRect returns the ring rectangle drawn around a widget
func HighlightRect(r image.Rectangle) image.Rectangle {
	return r.Inset(-HighlightInset)
}

// DrawHighlight strokes the device focus ring around r
func DrawHighlight(screen *ebiten.Image, r image.Rectangle) {
	if r.Empty() {
		return
	}
	hr := HighlightRect(r)
	vector.StrokeRect(screen,
		float32(hr.Min.X), float32(hr.Min.Y),
		float32(hr.Dx()), float32(hr.Dy()),
		float32(HighlightWidth), Highlight, true)
}

// DimScreen draws a translucent overlay over the whole screen
func DimScreen(screen *ebiten.Image, alpha uint8) {
	b := screen.Bounds()
	c := color.NRGBA{DimOverlay.R, DimOverlay.G, DimOverlay.B, alpha}
	vector.DrawFilledRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), c, false)
}
