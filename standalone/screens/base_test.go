package screens

import (
	"image"
	"testing"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/style"
)

func TestInitBase(t *testing.T) {
	b := &BaseScreen{}
	b.InitBase()

	if b.nodeWidgets == nil {
		t.Error("nodeWidgets should be initialized")
	}
	if len(b.syncs) != 0 {
		t.Error("syncs should be empty")
	}
}

func TestRegisterNodeWithoutInit(t *testing.T) {
	b := &BaseScreen{}
	n := nav.NewNode("a", nil)
	btn := style.TextButton("A", style.ButtonPaddingSmall, nil)

	b.RegisterNode(n, btn)
	if b.WidgetFor(n) != btn {
		t.Error("WidgetFor should return the registered widget")
	}
}

func TestRectOf(t *testing.T) {
	b := &BaseScreen{}
	b.InitBase()

	n := nav.NewNode("a", nil)
	if !b.RectOf(n).Empty() {
		t.Error("unregistered node should have an empty rect")
	}

	btn := style.TextButton("A", style.ButtonPaddingSmall, nil)
	btn.GetWidget().Rect = image.Rect(10, 20, 110, 60)
	b.RegisterNode(n, btn)
	if got := b.RectOf(n); got != image.Rect(10, 20, 110, 60) {
		t.Errorf("RectOf = %v", got)
	}
}

func TestSyncAndClearNodes(t *testing.T) {
	b := &BaseScreen{}
	b.InitBase()

	calls := 0
	b.AddSync(func() { calls++ })
	b.AddSync(func() { calls++ })
	b.Sync()
	if calls != 2 {
		t.Errorf("Sync ran %d refreshers, want 2", calls)
	}

	n := nav.NewNode("a", nil)
	b.RegisterNode(n, style.TextButton("A", 0, nil))
	b.ClearNodes()
	b.Sync()
	if calls != 2 {
		t.Error("ClearNodes should drop refreshers")
	}
	if b.WidgetFor(n) != nil {
		t.Error("ClearNodes should drop widgets")
	}
}

func TestScrollPositionWithoutContainer(t *testing.T) {
	b := &BaseScreen{}
	b.InitBase()

	// None of these may panic before a scroll container exists
	b.SaveScrollPosition()
	b.RestoreScrollPosition()
	b.ResetScroll()
	b.ScrollIntoView(nav.NewNode("a", nil))
}

func TestScrollPositionRoundTrip(t *testing.T) {
	b := &BaseScreen{}
	b.InitBase()

	content := widget.NewContainer()
	sc, slider, _ := style.ScrollableContainer(content)
	b.SetScrollWidgets(sc, slider)

	sc.ScrollTop = 0.4
	b.SaveScrollPosition()
	sc.ScrollTop = 0
	b.RestoreScrollPosition()
	if sc.ScrollTop != 0.4 {
		t.Errorf("ScrollTop = %v, want 0.4", sc.ScrollTop)
	}
	if slider.Current != 400 {
		t.Errorf("slider = %d, want 400", slider.Current)
	}

	b.ResetScroll()
	if sc.ScrollTop != 0 || b.scrollTop != 0 {
		t.Errorf("ResetScroll left %v / %v", sc.ScrollTop, b.scrollTop)
	}
}

func TestScrollTopFor(t *testing.T) {
	view := image.Rect(0, 100, 400, 500)    // 400 tall
	content := image.Rect(0, 0, 400, 1400) // 1000 of scroll range

	tests := []struct {
		name   string
		top    float64
		target image.Rectangle
		want   float64
		moved  bool
	}{
		{"visible", 0, image.Rect(0, 150, 100, 200), 0, false},
		{"exactly at bottom edge", 0, image.Rect(0, 450, 100, 500), 0, false},
		{"below view", 0, image.Rect(0, 550, 100, 600), 0.1, true},
		{"above view", 0.5, image.Rect(0, 50, 100, 90), 0.45, true},
		{"clamped at top", 0.01, image.Rect(0, 0, 100, 40), 0, true},
		{"clamped at bottom", 0.99, image.Rect(0, 2000, 100, 2100), 1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, moved := scrollTopFor(view, content, tc.top, tc.target)
			if moved != tc.moved {
				t.Fatalf("moved = %v, want %v", moved, tc.moved)
			}
			if moved && (got < tc.want-1e-9 || got > tc.want+1e-9) {
				t.Errorf("scrollTop = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScrollTopForContentFits(t *testing.T) {
	view := image.Rect(0, 0, 400, 500)
	content := image.Rect(0, 0, 400, 300)
	if _, moved := scrollTopFor(view, content, 0, image.Rect(0, 600, 10, 700)); moved {
		t.Error("content that fits should never scroll")
	}
}
