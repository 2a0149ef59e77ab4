package pages

import (
	"github.com/user-none/padnav/standalone/elements"
	"github.com/user-none/padnav/standalone/graphics"
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/storage"
)

// DisplayPage edits the panel and the upscaler
type DisplayPage struct {
	d    *Deps
	page *nav.Page

	Brightness *elements.Slider
	Resolution *elements.ListSelector
	RSR        *elements.Toggle
	Sharpness  *elements.Slider

	rsrNode       *nav.Node
	sharpnessNode *nav.Node
}

func newDisplayPage(d *Deps) *DisplayPage {
	p := &DisplayPage{d: d}
	disp := &d.Config.Display
	gfx := &d.Config.Graphics

	p.Brightness = elements.NewSlider("Brightness", 0, 100, storage.BrightnessStep, disp.Brightness,
		func(v int) error {
			disp.Brightness = v
			return d.saveConfig()
		}).WithUnit("%")

	selected := 0
	for i, r := range storage.Resolutions {
		if r == disp.Resolution {
			selected = i
		}
	}
	p.Resolution = elements.NewListSelector("Resolution", storage.Resolutions, selected, func(i int) error {
		disp.Resolution = storage.Resolutions[i]
		return d.saveConfig()
	})

	rsrOn := readEnabled(d.Graphics, graphics.FeatureRSR, gfx.RSR)
	p.RSR = elements.NewToggle("Radeon Super Resolution", rsrOn, func(on bool) error {
		if err := d.Graphics.SetEnabled(graphics.FeatureRSR, on); err != nil {
			return err
		}
		gfx.RSR = on
		p.sharpnessNode.SetEnabled(on)
		d.changed(p.page)
		d.persistConfig("Radeon Super Resolution")
		return nil
	})

	sharp := gfx.Sharpness
	if v, err := d.Graphics.Sharpness(); err == nil {
		sharp = v
	}
	p.Sharpness = elements.NewSlider("Sharpness", graphics.SharpnessMin, graphics.SharpnessMax, 5, sharp,
		func(v int) error {
			if err := d.Graphics.SetSharpness(v); err != nil {
				return err
			}
			gfx.Sharpness = v
			return d.saveConfig()
		}).WithUnit("%")

	for _, el := range []interface{ SetErrorHandler(elements.ErrorHandler) }{p.Brightness, p.Resolution, p.RSR, p.Sharpness} {
		d.reportErrors(el)
	}

	p.rsrNode = item("rsr", p.RSR, 2)
	p.sharpnessNode = item("sharpness", p.Sharpness, 3)

	supported := d.Graphics.Supported(graphics.FeatureRSR)
	p.rsrNode.SetVisible(supported)
	p.sharpnessNode.SetVisible(supported)
	p.sharpnessNode.SetEnabled(rsrOn)

	root := nav.NewNode("display", nil)
	root.MustAdd(
		item("brightness", p.Brightness, 0),
		item("resolution", p.Resolution, 1),
		p.rsrNode,
		p.sharpnessNode,
	)
	p.page = nav.NewPage(DisplayTitle, root)
	return p
}

// Page returns the navigation page
func (p *DisplayPage) Page() *nav.Page {
	return p.page
}

// SharpnessNode returns the node that is disabled while RSR is off
func (p *DisplayPage) SharpnessNode() *nav.Node {
	return p.sharpnessNode
}

// Sync re-reads the upscaler state from the service
func (p *DisplayPage) Sync() {
	gfx := p.d.Config.Graphics
	on := readEnabled(p.d.Graphics, graphics.FeatureRSR, gfx.RSR)
	p.RSR.Set(on)
	p.sharpnessNode.SetEnabled(on)
	if v, err := p.d.Graphics.Sharpness(); err == nil {
		p.Sharpness.Sync(v)
	} else {
		p.Sharpness.Sync(gfx.Sharpness)
	}
}

// readEnabled asks the service, falling back to the persisted value
func readEnabled(svc graphics.Service, f graphics.Feature, fallback bool) bool {
	on, err := svc.Enabled(f)
	if err != nil {
		return fallback
	}
	return on
}
