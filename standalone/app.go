package standalone

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ebitenui/ebitenui"
	ebitenuiInput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user-none/padnav/standalone/config"
	"github.com/user-none/padnav/standalone/gamepad"
	"github.com/user-none/padnav/standalone/graphics"
	"github.com/user-none/padnav/standalone/input"
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/pages"
	"github.com/user-none/padnav/standalone/screens"
	"github.com/user-none/padnav/standalone/storage"
	"github.com/user-none/padnav/standalone/style"
	"github.com/user-none/padnav/standalone/types"
)

// Minimum window size in logical pixels
const (
	minWindowWidth  = 900
	minWindowHeight = 650
)

// Options configures Run. Only Runtime is required.
type Options struct {
	Runtime *config.Options
	// Loader enables hot reload of Runtime when set
	Loader *config.Loader
	// Graphics is the driver settings backend; nil uses an in-memory one
	Graphics graphics.Service
	// Prompt asks before resetting broken settings; nil uses a native dialog
	Prompt ResetPrompt
	Logger *zap.Logger
}

// App is the main application struct that implements ebiten.Game
type App struct {
	ui     *ebitenui.UI
	logger *zap.Logger

	// Data
	config  *storage.Config
	library *storage.Library

	// Navigation
	set        *pages.Set
	controller *nav.Controller
	screen     *screens.PageScreen
	sampler    *input.Sampler
	pump       *input.Pump

	// UI managers
	inputManager *InputManager
	dialog       *ConfirmDialog
	notification *Notification
	feedback     *Feedback
	metrics      *Metrics

	// done stops the game loop when a background worker fails
	done <-chan struct{}

	rebuildPending bool
	scrollPending  bool

	// Window tracking for persistence and responsive layouts
	windowX, windowY   int
	windowWidth        int
	windowHeight       int
	lastWindowedWidth  int // Last non-fullscreen width (physical pixels)
	lastWindowedHeight int // Last non-fullscreen height (physical pixels)
	lastBuildWidth     int

	currentDPIScale     float64
	lastFullscreenState bool
}

// appDeps are the collaborators newApp wires together
type appDeps struct {
	Config   *storage.Config
	Library  *storage.Library
	Graphics graphics.Service
	Runtime  *config.Options
	Device   input.Device
	Feedback *Feedback
	Metrics  *Metrics
	Logger   *zap.Logger
}

// Run initializes storage, configures the window and runs the UI until
// the window closes or ctx is cancelled.
func Run(ctx context.Context, o Options) error {
	logger := o.Logger
	if logger == nil {
		logger = zap.L()
	}
	opts := o.Runtime
	if opts == nil {
		opts = config.DefaultOptions()
	}
	prompt := o.Prompt
	if prompt == nil {
		prompt = NativeResetPrompt
	}
	gfx := o.Graphics

	storage.Init("padnav")
	storage.SetBaseDir(opts.DataDir)

	ebiten.SetWindowTitle("padnav")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowWidth, minWindowHeight, -1, -1)

	cfg, lib, err := loadSettings(prompt, logger)
	if err != nil {
		return err
	}
	if gfx == nil {
		gfx = graphics.NewSimulated(graphicsFromConfig(cfg))
	}

	pad, err := gamepad.New(opts.Bindings)
	if err != nil {
		return fmt.Errorf("gamepad bindings: %w", err)
	}

	feedback := NewFeedback(opts, logger)
	defer feedback.Close()

	app, err := newApp(appDeps{
		Config:   cfg,
		Library:  lib,
		Graphics: gfx,
		Runtime:  opts,
		Device:   pad,
		Feedback: feedback,
		Metrics:  NewMetrics(),
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	app.restoreWindow()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	app.done = gctx.Done()

	g.Go(func() error { return app.pump.Run(gctx) })
	if opts.MetricsAddr != "" {
		g.Go(func() error { return app.metrics.Serve(gctx, opts.MetricsAddr, logger) })
	}

	if o.Loader != nil && o.Loader.Watch(func(next *config.Options) {
		app.applyRuntime(next, pad)
	}) {
		logger.Info("Watching config", zap.String("file", o.Loader.ConfigFile()))
	}

	runErr := ebiten.RunGame(app)
	cancel()
	waitErr := g.Wait()
	app.SaveAndClose()
	return errors.Join(runErr, waitErr)
}

// newApp builds the pages, the controller and the UI managers
func newApp(d appDeps) (*App, error) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := d.Runtime
	if opts == nil {
		opts = config.DefaultOptions()
	}

	a := &App{
		logger:          logger,
		config:          d.Config,
		library:         d.Library,
		inputManager:    NewInputManager(),
		notification:    NewNotification(),
		feedback:        d.Feedback,
		metrics:         d.Metrics,
		currentDPIScale: 1.0,
	}
	if a.metrics == nil {
		a.metrics = NewMetrics()
	}

	style.ApplyThemeByName(d.Config.Theme)
	style.ApplyFontSize(d.Config.FontSize)

	set, err := pages.Build(&pages.Deps{
		Config:   d.Config,
		Library:  d.Library,
		Graphics: d.Graphics,
		Confirm: func(title, message string, onAccept func()) {
			a.dialog.Show(title, message, onAccept)
		},
		Notify:  a.notification.ShowDefault,
		Changed: func(*nav.Page) { a.RequestRebuild() },
	})
	if err != nil {
		return nil, err
	}
	a.set = set

	a.controller = nav.NewController(set.Pages, logger)
	a.dialog = NewConfirmDialog(a.controller.BeginCapture)
	a.screen = screens.NewPageScreen(a, set.Pages)

	a.controller.SetScroller(a.screen)
	a.controller.SetNativeFocus(uiFocus{a})
	a.controller.SetModalSource(a.dialog)
	a.controller.SetHooks(a.metrics.Hooks(nav.Hooks{
		OnMove: func(_, _ *nav.Node) {
			if a.feedback != nil {
				a.feedback.Moved()
			}
		},
		OnAbsorbed: func(types.Intent) {
			if a.feedback != nil {
				a.feedback.Absorbed()
			}
		},
		OnPanic: func(callback string) {
			a.notification.ShowError(fmt.Sprintf("%s failed", callback))
		},
		OnPageChanged: func(*nav.Page) {
			a.RequestRebuild()
		},
	}))

	a.sampler = input.NewSampler(d.Device, opts.SamplerOptions(), logger)
	a.pump = input.NewPump(a.sampler, opts.PollRate, logger)

	a.controller.InitializePageNavigation(set.Pages[0], false)
	a.rebuild()
	return a, nil
}

// graphicsFromConfig seeds the in-memory driver from the saved settings
func graphicsFromConfig(cfg *storage.Config) graphics.Settings {
	return graphics.Settings{
		RSR:       cfg.Graphics.RSR,
		Sharpness: cfg.Graphics.Sharpness,
		AFMF:      cfg.Graphics.AFMF,
		AntiLag:   cfg.Graphics.AntiLag,
	}
}

// applyRuntime takes reloaded options. Called from the config watcher.
func (a *App) applyRuntime(opts *config.Options, pad *gamepad.Pad) {
	if err := pad.SetBindings(opts.Bindings); err != nil {
		a.logger.Warn("Keeping previous bindings", zap.Error(err))
	}
	a.sampler.SetOptions(opts.SamplerOptions())
	if a.feedback != nil {
		a.feedback.Apply(opts)
	}
	if a.pump.Interval() != time.Second/time.Duration(opts.PollRate) {
		a.logger.Info("poll_rate change takes effect after restart", zap.Int("poll_rate", opts.PollRate))
	}
}

// uiFocus adapts ebitenui focus to nav.NativeFocus
type uiFocus struct{ a *App }

func (f uiFocus) HasFocus() bool {
	return f.a.ui != nil && f.a.ui.GetFocusedWidget() != nil
}

func (f uiFocus) ClearFocus() {
	if f.a.ui == nil {
		return
	}
	if w := f.a.ui.GetFocusedWidget(); w != nil {
		w.Focus(false)
	}
}

// restoreWindow applies the saved size, position and fullscreen state
func (a *App) restoreWindow() {
	w := a.config.Window
	width, height := max(w.Width, minWindowWidth), max(w.Height, minWindowHeight)
	ebiten.SetWindowSize(width, height)
	if w.X != nil && w.Y != nil {
		ebiten.SetWindowPosition(*w.X, *w.Y)
	}
	if w.Fullscreen {
		ebiten.SetFullscreen(true)
	}
}

// saveWindowState saves current window position and size to config
func (a *App) saveWindowState() {
	// Never got windowed dimensions; the app was fullscreen the whole time
	if a.lastWindowedWidth == 0 || a.lastWindowedHeight == 0 {
		return
	}

	s := style.DPIScale()
	a.config.Window.Width = int(float64(a.lastWindowedWidth) / s)
	a.config.Window.Height = int(float64(a.lastWindowedHeight) / s)
	x, y := a.windowX, a.windowY
	a.config.Window.X = &x
	a.config.Window.Y = &y
	a.config.Window.Fullscreen = a.lastFullscreenState
}

// toggleFullscreen toggles between fullscreen and windowed mode
func (a *App) toggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
	a.lastFullscreenState = ebiten.IsFullscreen()
	a.config.Window.Fullscreen = a.lastFullscreenState
	if err := storage.SaveConfig(a.config); err != nil {
		a.logger.Error("Failed to save config", zap.Error(err))
	}
}

// rebuild recreates the widget tree for the controller's page
func (a *App) rebuild() {
	a.rebuildPending = false
	if i := a.controller.PageIndex(); i >= 0 {
		a.screen.SetPage(i)
	}
	a.controller.Refresh()
	a.ui = &ebitenui.UI{Container: a.screen.Build()}
	a.lastBuildWidth = a.windowWidth
	// Widgets have no layout until the next ui.Update
	a.scrollPending = true
}

// dispatch feeds queued intents to the controller
func (a *App) dispatch(intents []types.Intent) {
	for _, in := range intents {
		a.controller.HandleIntent(in)
	}
	if len(intents) > 0 {
		a.screen.Invalidate()
	}
	if a.rebuildPending {
		a.rebuild()
	}
}

// Update implements ebiten.Game
func (a *App) Update() error {
	select {
	case <-a.done:
		return ebiten.Termination
	default:
	}

	if !ebiten.IsFullscreen() {
		a.windowX, a.windowY = ebiten.WindowPosition()
	}
	a.lastFullscreenState = ebiten.IsFullscreen()

	activity := a.inputManager.Update()
	if activity.FullscreenToggle {
		a.toggleFullscreen()
	}
	if activity.PointerOrKeyboard {
		a.controller.PointerOrKeyboardInput()
	}

	if a.rebuildPending || (a.windowWidth > 0 && a.windowWidth != a.lastBuildWidth) {
		a.rebuild()
	}

	a.dispatch(a.pump.Drain())

	if a.dialog.IsVisible() {
		a.dialog.Update()
		// ebitenui is skipped while the dialog is open; keep its input
		// edge state current so held keys do not click on close
		ebitenuiInput.Update()
		ebitenuiInput.AfterUpdate()
	} else {
		a.ui.Update()
		a.controller.ReconcileNativeFocus()
	}
	a.screen.Update()

	if a.scrollPending {
		a.scrollPending = false
		if n := a.controller.Focused(); n != nil {
			a.screen.ScrollIntoView(n)
		}
	}
	return nil
}

// State reports what the app is showing
func (a *App) State() AppState {
	if a.dialog.IsVisible() {
		return StateDialog
	}
	return StatePages
}

// Draw implements ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	a.ui.Draw(screen)

	if n := a.controller.Focused(); n != nil && n.Highlighted() && !a.dialog.IsVisible() {
		style.DrawHighlight(screen, a.screen.RectOf(n))
	}

	a.dialog.Draw(screen)
	a.notification.Draw(screen)
}

// Layout implements ebiten.Game
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	if s != a.currentDPIScale {
		a.currentDPIScale = s
		style.SetDPIScale(s)
		a.rebuildPending = true
	}

	// Physical pixels so the UI renders at full resolution
	w := int(float64(outsideWidth) * s)
	h := int(float64(outsideHeight) * s)
	a.windowWidth = w
	a.windowHeight = h
	if !ebiten.IsFullscreen() {
		a.lastWindowedWidth = w
		a.lastWindowedHeight = h
	}
	return w, h
}

// PageHost implementations

// SelectPage switches pages from a tab click. The page opens without a
// focused element until the next device input.
func (a *App) SelectPage(index int) {
	ps := a.controller.Pages()
	if index < 0 || index >= len(ps) {
		return
	}
	a.controller.SuppressNextAutoFocus()
	a.controller.InitializePageNavigation(ps[index], false)
}

// GetWindowWidth returns the current window width for responsive layouts
func (a *App) GetWindowWidth() int {
	return a.windowWidth
}

// RequestRebuild schedules a UI rebuild on the next frame
func (a *App) RequestRebuild() {
	a.rebuildPending = true
}

// SaveAndClose persists the window state, config and library
func (a *App) SaveAndClose() {
	a.saveWindowState()

	if err := storage.SaveConfig(a.config); err != nil {
		a.logger.Error("Failed to save config", zap.Error(err))
	}
	if err := storage.SaveLibrary(a.library); err != nil {
		a.logger.Error("Failed to save library", zap.Error(err))
	}
}
