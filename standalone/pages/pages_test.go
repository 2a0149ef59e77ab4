package pages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/graphics"
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/storage"
	"github.com/user-none/padnav/standalone/types"
)

// harness records every side effect the pages produce
type harness struct {
	deps        *Deps
	gfx         *graphics.Simulated
	configSaves int
	libSaves    int
	notes       []string
	confirms    []string
	pending     func()
	saveErr     error
}

func newHarness(t *testing.T, features ...graphics.Feature) *harness {
	t.Helper()
	h := &harness{gfx: graphics.NewSimulated(graphics.DefaultSettings(), features...)}
	h.deps = &Deps{
		Config:   storage.DefaultConfig(),
		Library:  storage.DefaultLibrary(),
		Graphics: h.gfx,
		SaveConfig: func() error {
			h.configSaves++
			return h.saveErr
		},
		SaveLibrary: func() error {
			h.libSaves++
			return nil
		},
		Confirm: func(title, message string, onAccept func()) {
			h.confirms = append(h.confirms, title)
			h.pending = onAccept
		},
		Notify: func(msg string) { h.notes = append(h.notes, msg) },
	}
	return h
}

func (h *harness) build(t *testing.T) *Set {
	t.Helper()
	s, err := Build(h.deps)
	require.NoError(t, err)
	return s
}

func (h *harness) accept(t *testing.T) {
	t.Helper()
	require.NotNil(t, h.pending, "no confirmation pending")
	fn := h.pending
	h.pending = nil
	fn()
}

func (h *harness) addProfiles(names ...string) {
	for _, name := range names {
		h.deps.Library.AddProfile(storage.NewProfile(name, h.deps.Config.Performance))
	}
}

func controllerOn(p *nav.Page, pages ...*nav.Page) *nav.Controller {
	c := nav.NewController(pages, zap.NewNop())
	c.InitializePageNavigation(p, true)
	return c
}

func registryNames(p *nav.Page) []string {
	var out []string
	for _, n := range p.Elements() {
		out = append(out, n.Name())
	}
	return out
}

func TestBuildAllPagesValidate(t *testing.T) {
	h := newHarness(t)
	h.addProfiles("Alpha", "Bravo", "Charlie")
	s := h.build(t)

	var titles []string
	for _, p := range s.Pages {
		require.NoError(t, p.Validate())
		titles = append(titles, p.Name())
	}
	assert.Equal(t, []string{PerformanceTitle, DisplayTitle, GraphicsTitle, LibraryTitle}, titles)
	assert.Same(t, s.Library.Page(), s.Find(LibraryTitle))
	assert.Nil(t, s.Find("Audio"))
}

func TestBuildRequiresCollaborators(t *testing.T) {
	_, err := Build(&Deps{Config: storage.DefaultConfig()})
	assert.Error(t, err)
}

func TestUnsupportedFeaturesAreHidden(t *testing.T) {
	h := newHarness(t, graphics.FeatureAFMF)
	s := h.build(t)

	assert.Equal(t, []string{"brightness", "resolution"}, registryNames(s.Display.Page()))
	assert.Equal(t, []string{"afmf", "reset"}, registryNames(s.Graphics.Page()))
}

func TestPerformancePowerSlider(t *testing.T) {
	h := newHarness(t)
	s := h.build(t)
	c := controllerOn(s.Performance.Page(), s.Pages...)
	require.Equal(t, "power", c.Focused().Name())

	c.HandleIntent(types.IntentActivate)
	assert.Equal(t, nav.ModeValueAdjust, c.Mode().Kind)
	c.HandleIntent(types.IntentRight)
	c.HandleIntent(types.IntentRight)

	assert.Equal(t, 17, h.deps.Config.Performance.PowerLimitW)
	assert.Equal(t, 2, h.configSaves)

	c.HandleIntent(types.IntentCancel)
	c.HandleIntent(types.IntentDown)
	assert.Equal(t, "fan", c.Focused().Name())
}

func TestPerformanceFanRow(t *testing.T) {
	h := newHarness(t)
	s := h.build(t)
	perf := &h.deps.Config.Performance
	require.True(t, perf.FanAuto)

	c := controllerOn(s.Performance.Page(), s.Pages...)
	c.SetFocus(s.Performance.Page().Elements()[1])
	assert.Equal(t, "Auto", s.Performance.Fan.Value())

	// Presets are disabled while the fan is automatic
	c.HandleIntent(types.IntentRight)
	assert.Equal(t, 0, s.Performance.Fan.Index())

	c.HandleIntent(types.IntentActivate)
	assert.False(t, perf.FanAuto)

	c.HandleIntent(types.IntentRight)
	c.HandleIntent(types.IntentRight)
	c.HandleIntent(types.IntentActivate)
	assert.Equal(t, "balanced", perf.FanPreset)
	assert.Equal(t, "Balanced", s.Performance.Fan.Value())
	assert.Equal(t, 2, h.configSaves)
}

func TestSaveErrorsAreNotified(t *testing.T) {
	h := newHarness(t)
	h.saveErr = errors.New("disk full")
	s := h.build(t)

	s.Performance.Boost.Activate()
	require.Len(t, h.notes, 1)
	assert.Equal(t, "CPU boost: disk full", h.notes[0])
	assert.False(t, s.Performance.Boost.On(), "unsaved toggle flips back")
	assert.False(t, h.deps.Config.Performance.CPUBoost)

	s.Performance.Fan.Click(0)
	require.Len(t, h.notes, 2)
	assert.Equal(t, "Fan: disk full", h.notes[1])
}

func TestRejectedToggleFlipsBack(t *testing.T) {
	h := newHarness(t, graphics.FeatureAFMF)
	s := h.build(t)

	s.Display.RSR.Activate()
	assert.False(t, s.Display.RSR.On())
	assert.False(t, h.deps.Config.Graphics.RSR)
	assert.False(t, s.Display.SharpnessNode().Enabled())
	require.Len(t, h.notes, 1)
	assert.Contains(t, h.notes[0], "Radeon Super Resolution: ")
	assert.Zero(t, h.configSaves)
}

func TestDriverChangeSurvivesSaveFailure(t *testing.T) {
	h := newHarness(t)
	h.saveErr = errors.New("disk full")
	s := h.build(t)

	s.Graphics.AntiLag.Activate()
	assert.True(t, s.Graphics.AntiLag.On(), "driver already took the change")
	assert.True(t, h.gfx.Snapshot().AntiLag)
	assert.Equal(t, []string{"Anti-Lag: disk full"}, h.notes)
}

func TestSharpnessFollowsRSR(t *testing.T) {
	h := newHarness(t)
	s := h.build(t)
	d := s.Display

	assert.False(t, d.SharpnessNode().Enabled())
	assert.NotContains(t, registryNames(d.Page()), "sharpness")

	var changed []*nav.Page
	h.deps.Changed = func(p *nav.Page) { changed = append(changed, p) }

	d.RSR.Activate()
	assert.True(t, h.gfx.Snapshot().RSR)
	assert.True(t, h.deps.Config.Graphics.RSR)
	assert.True(t, d.SharpnessNode().Enabled())
	assert.Contains(t, registryNames(d.Page()), "sharpness")
	assert.Equal(t, []*nav.Page{d.Page()}, changed)

	d.Sharpness.SetFromPointer(40)
	assert.Equal(t, 40, h.gfx.Snapshot().Sharpness)
	assert.Equal(t, 40, h.deps.Config.Graphics.Sharpness)
}

func TestResolutionPreviewCommits(t *testing.T) {
	h := newHarness(t)
	s := h.build(t)
	c := controllerOn(s.Display.Page(), s.Pages...)
	c.HandleIntent(types.IntentDown)
	require.Equal(t, "resolution", c.Focused().Name())

	c.HandleIntent(types.IntentActivate)
	c.HandleIntent(types.IntentDown)
	assert.Equal(t, "1280x800", h.deps.Config.Display.Resolution, "preview does not write")

	c.HandleIntent(types.IntentActivate)
	assert.Equal(t, "1600x900", h.deps.Config.Display.Resolution)
}

func TestGraphicsResetConfirms(t *testing.T) {
	h := newHarness(t)
	s := h.build(t)

	s.Graphics.AFMF.Activate()
	s.Display.RSR.Activate()
	s.Display.Sharpness.SetFromPointer(10)
	require.True(t, h.gfx.Snapshot().AFMF)

	s.Graphics.Reset.Activate()
	require.Equal(t, []string{"Reset graphics?"}, h.confirms)
	assert.True(t, h.gfx.Snapshot().AFMF, "nothing changes before the confirmation")

	h.accept(t)
	assert.Equal(t, graphics.DefaultSettings(), h.gfx.Snapshot())
	assert.False(t, s.Graphics.AFMF.On())
	assert.False(t, s.Display.RSR.On())
	assert.Equal(t, 75, s.Display.Sharpness.Current())
	assert.False(t, s.Display.SharpnessNode().Enabled())
	assert.Equal(t, graphics.DefaultSettings().Sharpness, h.deps.Config.Graphics.Sharpness)
	assert.Contains(t, h.notes, "Graphics settings reset")
}

func TestLibraryEmpty(t *testing.T) {
	h := newHarness(t)
	s := h.build(t)
	lib := s.Library

	assert.Empty(t, lib.ProfileNodes())
	assert.Equal(t, []string{"new"}, registryNames(lib.Page()))

	c := controllerOn(lib.Page(), s.Pages...)
	c.HandleIntent(types.IntentDown)
	assert.Equal(t, "new", c.Focused().Name(), "move into an empty grid is absorbed")
}

func TestLibraryNewProfile(t *testing.T) {
	h := newHarness(t)
	h.deps.Config.Performance.PowerLimitW = 22
	s := h.build(t)
	lib := s.Library

	lib.New.Activate()
	require.Len(t, lib.ProfileNodes(), 1)
	prof := h.deps.Library.GetProfile(lib.Selected())
	require.NotNil(t, prof)
	assert.Equal(t, "Profile 1", prof.Name)
	assert.Equal(t, 22, prof.PowerLimitW)
	assert.Equal(t, 1, h.libSaves)
	assert.Equal(t, []string{"new", "apply", "favorite", "delete", "profile-" + prof.ID}, registryNames(lib.Page()))
	require.NoError(t, lib.Page().Validate())
}

func TestLibraryNavigation(t *testing.T) {
	h := newHarness(t)
	h.addProfiles("Charlie", "Alpha", "Bravo")
	s := h.build(t)
	lib := s.Library
	c := controllerOn(lib.Page(), s.Pages...)
	require.Equal(t, "new", c.Focused().Name())

	grid := lib.ProfileNodes()
	c.HandleIntent(types.IntentDown)
	require.Same(t, grid[0], c.Focused())

	// Selecting enables the action row
	c.HandleIntent(types.IntentActivate)
	assert.Equal(t, grid[0].Element().(*profileItem).profile.ID, lib.Selected())
	assert.Contains(t, grid[0].Element().(*profileItem).Value(), "(selected)")

	c.HandleIntent(types.IntentRight)
	require.Same(t, grid[1], c.Focused())
	c.HandleIntent(types.IntentUp)
	assert.Equal(t, "delete", c.Focused().Name(), "right column maps to the end of the row")

	c.HandleIntent(types.IntentLeft)
	require.Equal(t, "favorite", c.Focused().Name())
	c.HandleIntent(types.IntentDown)
	assert.Same(t, grid[1], c.Focused())

	c.HandleIntent(types.IntentDown)
	assert.Same(t, grid[1], c.Focused(), "empty cell below absorbs")

	c.HandleIntent(types.IntentLeft)
	c.HandleIntent(types.IntentDown)
	assert.Same(t, grid[2], c.Focused())
	c.HandleIntent(types.IntentDown)
	assert.Same(t, grid[2], c.Focused(), "bottom edge absorbs")
}

func TestLibraryApplyProfile(t *testing.T) {
	h := newHarness(t)
	h.deps.Library.AddProfile(&storage.GameProfile{ID: "p1", Name: "Racer", PowerLimitW: 28, FanPreset: "turbo"})
	s := h.build(t)
	lib := s.Library

	lib.ProfileNodes()[0].Element().Activate()
	lib.Apply.Activate()

	perf := h.deps.Config.Performance
	assert.Equal(t, 28, perf.PowerLimitW)
	assert.Equal(t, "turbo", perf.FanPreset)
	assert.False(t, perf.FanAuto)
	assert.Equal(t, 28, s.Performance.Power.Current(), "performance page is synced")
	assert.NotZero(t, h.deps.Library.GetProfile("p1").LastApplied)
	assert.Contains(t, h.notes, "Applied Racer")
}

func TestLibraryFavoriteReorders(t *testing.T) {
	h := newHarness(t)
	h.deps.Library.AddProfile(&storage.GameProfile{ID: "a", Name: "Alpha", PowerLimitW: 10, FanPreset: "quiet"})
	h.deps.Library.AddProfile(&storage.GameProfile{ID: "z", Name: "Zulu", PowerLimitW: 10, FanPreset: "quiet"})
	s := h.build(t)
	lib := s.Library

	var rebuilt int
	h.deps.Changed = func(*nav.Page) { rebuilt++ }

	lib.ProfileNodes()[1].Element().Activate()
	require.Equal(t, "z", lib.Selected())
	lib.Favorite.Activate()

	nodes := lib.ProfileNodes()
	assert.Equal(t, "profile-z", nodes[0].Name(), "favorites sort first")
	assert.Equal(t, "Unfavorite", lib.Favorite.Value())
	assert.Contains(t, nodes[0].Element().(*profileItem).Value(), "★")
	assert.Equal(t, 2, rebuilt)
	require.NoError(t, lib.Page().Validate())
}

func TestLibraryDeleteSelectsNeighbor(t *testing.T) {
	h := newHarness(t)
	for _, id := range []string{"a", "b", "c"} {
		h.deps.Library.AddProfile(&storage.GameProfile{ID: id, Name: id, PowerLimitW: 15, FanPreset: "balanced"})
	}
	s := h.build(t)
	lib := s.Library

	lib.ProfileNodes()[1].Element().Activate()
	lib.Delete.Activate()
	require.Equal(t, []string{"Delete profile?"}, h.confirms)
	assert.Equal(t, 3, h.deps.Library.ProfileCount(), "nothing is removed before the confirmation")

	h.accept(t)
	assert.Nil(t, h.deps.Library.GetProfile("b"))
	assert.Equal(t, "c", lib.Selected())

	lib.Delete.Activate()
	h.accept(t)
	assert.Equal(t, "a", lib.Selected(), "deleting the last entry selects the new last")

	lib.Delete.Activate()
	h.accept(t)
	assert.Equal(t, "", lib.Selected())
	assert.Equal(t, []string{"new"}, registryNames(lib.Page()))
	require.NoError(t, lib.Page().Validate())
}

func TestLibraryBackClearsSelection(t *testing.T) {
	h := newHarness(t)
	h.addProfiles("Alpha")
	s := h.build(t)
	lib := s.Library
	c := controllerOn(s.Performance.Page(), s.Pages...)
	c.InitializePageNavigation(lib.Page(), true)

	lib.ProfileNodes()[0].Element().Activate()
	require.NotEmpty(t, lib.Selected())

	c.HandleIntent(types.IntentCancel)
	assert.Empty(t, lib.Selected())
	assert.Same(t, lib.Page(), c.Page(), "first back only clears the selection")

	c.HandleIntent(types.IntentCancel)
	assert.Same(t, s.Performance.Page(), c.Page())
}
