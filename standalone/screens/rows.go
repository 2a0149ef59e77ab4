package screens

import (
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"

	"github.com/user-none/padnav/standalone/elements"
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/style"
)

// ButtonText returns the text drawn on a button element. Cards stack the
// label over the value; inline buttons show the value in place of the
// label when one is set.
func ButtonText(d elements.Describer, card bool) string {
	v := d.Value()
	switch {
	case v == "":
		return d.Label()
	case card:
		return d.Label() + "\n" + v
	}
	return v
}

// SliderText formats a slider value, bracketed while it is being adjusted
func SliderText(s *elements.Slider) string {
	if s.Adjusting() {
		return "< " + s.Value() + " >"
	}
	return s.Value()
}

// ListText formats a list selector value, marked while previewing
func ListText(l *elements.ListSelector) string {
	if l.Previewing() {
		return "< " + l.Value() + " >"
	}
	return l.Value()
}

// PartText formats one composite row part. Selected parts carry a bullet;
// the current child of a focused row is bracketed.
func PartText(c *elements.CompositeRow, i int) string {
	p := c.Parts()[i]
	t := p.Label
	if p.Selected != nil && p.Selected() {
		t = "• " + t
	}
	if c.Focused() && c.Index() == i {
		t = "[" + t + "]"
	}
	return t
}

// settingsRow creates the label-left, controls-right row used by every
// setting element
func settingsRow(label string) (*widget.Container, *widget.Container) {
	row := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Surface)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			widget.WidgetOpts.MinSize(0, style.SettingsRowHeight),
		),
	)

	row.AddChild(widget.NewText(
		widget.TextOpts.Text(label, style.FontFace(), style.Text),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{
				VerticalPosition: widget.GridLayoutPositionCenter,
			}),
			widget.WidgetOpts.MinSize(style.SettingsLabelWidth, 0),
		),
	))

	controls := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{
				VerticalPosition: widget.GridLayoutPositionCenter,
			}),
		),
	)
	row.AddChild(controls)
	return row, controls
}

// valueText creates the live-updated value label
func valueText(s string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, style.FontFace(), style.Text),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
			widget.WidgetOpts.MinSize(style.Px(110), 0),
		),
	)
}

// stepButton creates a small [-]/[+] style button
func stepButton(label string, fn func()) *widget.Button {
	return style.StepButton(label, func(*widget.ButtonClickedEventArgs) { fn() })
}

// setDisabled disables buttons of a node that lost eligibility
func setDisabled(n *nav.Node, buttons ...*widget.Button) {
	for _, b := range buttons {
		b.GetWidget().Disabled = !n.Enabled()
	}
}

// sliderRow creates the [-] value [+] row for a slider
func (s *PageScreen) sliderRow(n *nav.Node, sl *elements.Slider) widget.PreferredSizeLocateableWidget {
	row, controls := settingsRow(sl.Label())
	_, _, step := sl.Range()

	value := valueText(SliderText(sl))
	dec := stepButton("-", func() { sl.SetFromPointer(sl.Current() - step) })
	inc := stepButton("+", func() { sl.SetFromPointer(sl.Current() + step) })
	controls.AddChild(dec)
	controls.AddChild(value)
	controls.AddChild(inc)

	s.RegisterNode(n, row)
	s.AddSync(func() {
		value.Label = SliderText(sl)
		setDisabled(n, dec, inc)
	})
	return row
}

// toggleRow creates a row with a single On/Off button
func (s *PageScreen) toggleRow(n *nav.Node, t *elements.Toggle) widget.PreferredSizeLocateableWidget {
	row, controls := settingsRow(t.Label())

	value := valueText(t.Value())
	btn := stepButton("Switch", t.Activate)
	controls.AddChild(value)
	controls.AddChild(btn)

	s.RegisterNode(n, row)
	s.AddSync(func() {
		value.Label = t.Value()
		setDisabled(n, btn)
	})
	return row
}

// listRow creates a < value > row for a list selector
func (s *PageScreen) listRow(n *nav.Node, l *elements.ListSelector) widget.PreferredSizeLocateableWidget {
	row, controls := settingsRow(l.Label())

	value := valueText(ListText(l))
	prev := stepButton("<", func() { l.Select(l.Selected() - 1) })
	next := stepButton(">", func() { l.Select(l.Selected() + 1) })
	controls.AddChild(prev)
	controls.AddChild(value)
	controls.AddChild(next)

	s.RegisterNode(n, row)
	s.AddSync(func() {
		value.Label = ListText(l)
		setDisabled(n, prev, next)
	})
	return row
}

// compositeRow creates one button per part
func (s *PageScreen) compositeRow(n *nav.Node, c *elements.CompositeRow) widget.PreferredSizeLocateableWidget {
	row, controls := settingsRow(c.Label())

	parts := c.Parts()
	buttons := make([]*widget.Button, len(parts))
	for i := range parts {
		i := i
		buttons[i] = stepButton(PartText(c, i), func() { c.Click(i) })
		controls.AddChild(buttons[i])
	}

	s.RegisterNode(n, row)
	s.AddSync(func() {
		for i, b := range buttons {
			b.Text().Label = PartText(c, i)
			enabled := n.Enabled() && (parts[i].Enabled == nil || parts[i].Enabled())
			b.GetWidget().Disabled = !enabled
		}
	})
	return row
}

// buttonWidget creates a button element. Cards are the fixed-size grid
// cells; other buttons stretch across their row.
func (s *PageScreen) buttonWidget(n *nav.Node, b *elements.Button, card bool) widget.PreferredSizeLocateableWidget {
	opts := []widget.ButtonOpt{
		widget.ButtonOpts.Image(style.ButtonImage()),
		widget.ButtonOpts.Text(ButtonText(b, card), style.FontFace(), style.ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(style.ButtonPaddingMedium)),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { b.Activate() }),
	}
	if card {
		opts = append(opts, widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(style.ProfileCardMinWidth, style.ProfileCardHeight),
		))
	} else {
		opts = append(opts, widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		))
	}
	btn := widget.NewButton(opts...)

	s.RegisterNode(n, btn)
	s.AddSync(func() {
		btn.Text().Label = ButtonText(b, card)
		setDisabled(n, btn)
	})
	return btn
}

// textRow shows a read-only element
func (s *PageScreen) textRow(n *nav.Node, d elements.Describer) widget.PreferredSizeLocateableWidget {
	row, controls := settingsRow(d.Label())
	value := valueText(d.Value())
	controls.AddChild(value)

	s.RegisterNode(n, row)
	s.AddSync(func() { value.Label = d.Value() })
	return row
}
