package style

import (
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// scrollSteps is the slider resolution for a full scroll range
const scrollSteps = 1000

// TextButton creates a standard text button
func TextButton(text string, padding int, handler func(*widget.ButtonClickedEventArgs)) *widget.Button {
	return textButton(ButtonImage(), text, padding, handler)
}

// ToggleButton creates a button that shows an active/inactive state.
// Used for page tabs and composite row parts.
func ToggleButton(text string, active bool, handler func(*widget.ButtonClickedEventArgs)) *widget.Button {
	return textButton(ActiveButtonImage(active), text, ButtonPaddingSmall, handler)
}

func textButton(img *widget.ButtonImage, text string, padding int, handler func(*widget.ButtonClickedEventArgs), opts ...widget.ButtonOpt) *widget.Button {
	return widget.NewButton(append([]widget.ButtonOpt{
		widget.ButtonOpts.Image(img),
		widget.ButtonOpts.Text(text, FontFace(), ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(padding)),
		widget.ButtonOpts.ClickedHandler(handler),
	}, opts...)...)
}

// StepButton creates a small centered button for [-]/[+] style controls
func StepButton(text string, handler func(*widget.ButtonClickedEventArgs)) *widget.Button {
	return textButton(ButtonImage(), text, ButtonPaddingSmall, handler,
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	)
}

// ScrollableContainer wraps content in a scroll area with a vertical
// slider and mouse wheel support. The scroll container and slider are
// returned so callers can save and restore the scroll position.
func ScrollableContainer(content *widget.Container) (*widget.ScrollContainer, *widget.Slider, widget.PreferredSizeLocateableWidget) {
	sc := widget.NewScrollContainer(
		widget.ScrollContainerOpts.Content(content),
		widget.ScrollContainerOpts.StretchContentWidth(),
		widget.ScrollContainerOpts.Image(&widget.ScrollContainerImage{
			Idle: image.NewNineSliceColor(Background),
			Mask: image.NewNineSliceColor(Background),
		}),
	)

	overflows := func() bool {
		content, view := sc.ContentRect().Dy(), sc.ViewRect().Dy()
		return content > 0 && view > 0 && content > view
	}

	slider := widget.NewSlider(
		// The slider never takes native focus; device navigation scrolls instead
		widget.SliderOpts.TabOrder(-1),
		widget.SliderOpts.Direction(widget.DirectionVertical),
		widget.SliderOpts.MinMax(0, scrollSteps),
		widget.SliderOpts.Images(
			&widget.SliderTrackImage{
				Idle:  image.NewNineSliceColor(Border),
				Hover: image.NewNineSliceColor(Border),
			},
			SliderButtonImage(),
		),
		widget.SliderOpts.FixedHandleSize(Px(40)),
		widget.SliderOpts.PageSizeFunc(func() int {
			if !overflows() {
				return scrollSteps
			}
			return int(float64(sc.ViewRect().Dy()) / float64(sc.ContentRect().Dy()) * scrollSteps)
		}),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			if !overflows() {
				sc.ScrollTop = 0
				return
			}
			sc.ScrollTop = float64(args.Current) / scrollSteps
		}),
	)

	sc.GetWidget().ScrolledEvent.AddHandler(func(args interface{}) {
		if !overflows() {
			sc.ScrollTop = 0
			return
		}
		a := args.(*widget.WidgetScrolledEventArgs)
		top := min(max(sc.ScrollTop+a.Y*ScrollWheelSensitivity, 0), 1)
		sc.ScrollTop = top
		slider.Current = int(top * scrollSteps)
	})

	wrapper := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(SmallSpacing, 0),
		)),
	)
	wrapper.AddChild(sc)
	wrapper.AddChild(slider)
	return sc, slider, wrapper
}

// EmptyState creates a centered placeholder shown in place of an empty group
func EmptyState(title string) *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
	)
	container.AddChild(widget.NewText(
		widget.TextOpts.Text(title, FontFace(), TextSecondary),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	))
	return container
}

// ScreenContainer creates a full-screen root container with background.
// The container uses AnchorLayout so children can stretch to fill.
func ScreenContainer() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(Background)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
}

// ScreenContentContainer creates the padded single-column body of a
// screen. rowStretch selects the rows that grow vertically.
func ScreenContentContainer(rowStretch []bool) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(DefaultPadding)),
			widget.GridLayoutOpts.Spacing(DefaultSpacing, DefaultSpacing),
			widget.GridLayoutOpts.Stretch([]bool{true}, rowStretch),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				StretchHorizontal: true,
				StretchVertical:   true,
			}),
		),
	)
}

// ButtonRow creates a horizontal container for tabs and buttons
func ButtonRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(SmallSpacing),
		)),
	)
}
