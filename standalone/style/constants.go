package style

// Base constants (unexported) are the logical-pixel reference values.
// The exported vars are recalculated by SetDPIScale.
const (
	baseDefaultPadding      = 16
	baseDefaultSpacing      = 16
	baseSmallSpacing        = 8
	baseTinySpacing         = 4
	baseLargeSpacing        = 24
	baseScrollbarWidth      = 20
	baseButtonPaddingSmall  = 8
	baseButtonPaddingMedium = 12

	// Focus highlight drawn around the device-focused element
	baseHighlightWidth = 3
	baseHighlightInset = 2

	// Overlays (toasts and dialogs)
	baseOverlayPadding = 12
	baseOverlayMargin  = 8
	baseDialogMinWidth = 280
	baseDialogMaxWidth = 480

	// Library grid
	baseProfileCardMinWidth = 220

	// Font-dependent base values (at 14pt, scale = 1.0)
	baseTabHeight           = 40
	baseSettingsRowHeight   = 44
	baseSettingsLabelWidth  = 240
	baseProfileCardHeight   = 64
	baseEstimatedViewHeight = 400
)

// Layout vars, DPI-scaled at runtime via SetDPIScale
var (
	DefaultPadding = baseDefaultPadding
	DefaultSpacing = baseDefaultSpacing
	SmallSpacing   = baseSmallSpacing
	TinySpacing    = baseTinySpacing
	LargeSpacing   = baseLargeSpacing

	ScrollbarWidth = baseScrollbarWidth

	ButtonPaddingSmall  = baseButtonPaddingSmall
	ButtonPaddingMedium = baseButtonPaddingMedium

	HighlightWidth = baseHighlightWidth
	HighlightInset = baseHighlightInset

	OverlayPadding = baseOverlayPadding
	OverlayMargin  = baseOverlayMargin
	DialogMinWidth = baseDialogMinWidth
	DialogMaxWidth = baseDialogMaxWidth

	ProfileCardMinWidth = baseProfileCardMinWidth
)

// Font-dependent layout values (updated by ApplyFontSize)
var (
	TabHeight               = baseTabHeight
	SettingsRowHeight       = baseSettingsRowHeight
	SettingsLabelWidth      = baseSettingsLabelWidth
	ProfileCardHeight       = baseProfileCardHeight
	EstimatedViewportHeight = baseEstimatedViewHeight
)

// ScrollWheelSensitivity is the scroll fraction per wheel notch
const ScrollWheelSensitivity = 0.05
