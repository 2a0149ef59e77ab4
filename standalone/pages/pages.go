// Package pages builds the navigation trees for every top-level page.
// It has no rendering dependency so layouts can be validated headless.
package pages

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/elements"
	"github.com/user-none/padnav/standalone/graphics"
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/storage"
)

// Page titles in tab order
const (
	PerformanceTitle = "Performance"
	DisplayTitle     = "Display"
	GraphicsTitle    = "Graphics"
	LibraryTitle     = "Library"
)

// Deps are the collaborators the pages write through. Config, Library
// and Graphics are required; the rest are optional.
type Deps struct {
	Config   *storage.Config
	Library  *storage.Library
	Graphics graphics.Service

	// SaveConfig persists Config; nil uses storage.SaveConfig
	SaveConfig func() error
	// SaveLibrary persists Library; nil uses storage.SaveLibrary
	SaveLibrary func() error
	// Confirm asks before a destructive action; nil accepts immediately
	Confirm func(title, message string, onAccept func())
	// Notify shows a short message to the user
	Notify func(msg string)
	// Changed is called after a page's tree was rebuilt
	Changed func(p *nav.Page)
}

func (d *Deps) saveConfig() error {
	if d.SaveConfig != nil {
		return d.SaveConfig()
	}
	return storage.SaveConfig(d.Config)
}

func (d *Deps) saveLibrary() error {
	if d.SaveLibrary != nil {
		return d.SaveLibrary()
	}
	return storage.SaveLibrary(d.Library)
}

// persistConfig saves a change the hardware already took. A failed save
// is reported without undoing the change.
func (d *Deps) persistConfig(label string) {
	if err := d.saveConfig(); err != nil {
		zap.L().Warn("Config save failed", zap.String("element", label), zap.Error(err))
		d.notify("%s: %v", label, err)
	}
}

func (d *Deps) confirm(title, message string, onAccept func()) {
	if d.Confirm == nil {
		onAccept()
		return
	}
	d.Confirm(title, message, onAccept)
}

func (d *Deps) notify(format string, args ...any) {
	if d.Notify != nil {
		d.Notify(fmt.Sprintf(format, args...))
	}
}

func (d *Deps) changed(p *nav.Page) {
	if d.Changed != nil {
		d.Changed(p)
	}
}

// reportErrors routes element apply failures to the notification area
func (d *Deps) reportErrors(el interface{ SetErrorHandler(elements.ErrorHandler) }) {
	el.SetErrorHandler(func(label string, err error) {
		d.notify("%s: %v", label, err)
	})
}

// Set is the built page cycle
type Set struct {
	Pages []*nav.Page

	Performance *PerformancePage
	Display     *DisplayPage
	Graphics    *GraphicsPage
	Library     *LibraryPage
}

// Build creates every page and validates its layout
func Build(d *Deps) (*Set, error) {
	if d.Config == nil || d.Library == nil || d.Graphics == nil {
		return nil, fmt.Errorf("pages: config, library and graphics are required")
	}

	s := &Set{}
	s.Performance = newPerformancePage(d)
	s.Display = newDisplayPage(d)
	s.Graphics = newGraphicsPage(d, s.Display)
	s.Library = newLibraryPage(d, s.Performance)
	s.Pages = []*nav.Page{s.Performance.page, s.Display.page, s.Graphics.page, s.Library.page}

	for _, p := range s.Pages {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	zap.L().Debug("Pages built", zap.Int("count", len(s.Pages)))
	return s, nil
}

// Find returns the page with the given title
func (s *Set) Find(title string) *nav.Page {
	for _, p := range s.Pages {
		if p.Name() == title {
			return p
		}
	}
	return nil
}

// item creates a navigable node for el in registration order
func item(name string, el nav.Element, order int) *nav.Node {
	return nav.NewNode(name, el).MarkNavigable("", order)
}
