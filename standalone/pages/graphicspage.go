package pages

import (
	"github.com/user-none/padnav/standalone/elements"
	"github.com/user-none/padnav/standalone/graphics"
	"github.com/user-none/padnav/standalone/nav"
)

// GraphicsPage edits frame generation and latency features
type GraphicsPage struct {
	d       *Deps
	page    *nav.Page
	display *DisplayPage

	AFMF    *elements.Toggle
	AntiLag *elements.Toggle
	Reset   *elements.Button
}

func newGraphicsPage(d *Deps, display *DisplayPage) *GraphicsPage {
	p := &GraphicsPage{d: d, display: display}
	gfx := &d.Config.Graphics

	p.AFMF = elements.NewToggle("Fluid Motion Frames", readEnabled(d.Graphics, graphics.FeatureAFMF, gfx.AFMF),
		func(on bool) error {
			if err := d.Graphics.SetEnabled(graphics.FeatureAFMF, on); err != nil {
				return err
			}
			gfx.AFMF = on
			d.persistConfig("Fluid Motion Frames")
			return nil
		})
	p.AntiLag = elements.NewToggle("Anti-Lag", readEnabled(d.Graphics, graphics.FeatureAntiLag, gfx.AntiLag),
		func(on bool) error {
			if err := d.Graphics.SetEnabled(graphics.FeatureAntiLag, on); err != nil {
				return err
			}
			gfx.AntiLag = on
			d.persistConfig("Anti-Lag")
			return nil
		})
	p.Reset = elements.NewButton("Reset to defaults", func() {
		d.confirm("Reset graphics?", "Restore the driver defaults for every graphics setting.", p.reset)
	})

	d.reportErrors(p.AFMF)
	d.reportErrors(p.AntiLag)

	afmf := item("afmf", p.AFMF, 0)
	afmf.SetVisible(d.Graphics.Supported(graphics.FeatureAFMF))
	antiLag := item("anti_lag", p.AntiLag, 1)
	antiLag.SetVisible(d.Graphics.Supported(graphics.FeatureAntiLag))

	root := nav.NewNode("graphics", nil)
	root.MustAdd(afmf, antiLag, item("reset", p.Reset, 2))
	p.page = nav.NewPage(GraphicsTitle, root)
	return p
}

// Page returns the navigation page
func (p *GraphicsPage) Page() *nav.Page {
	return p.page
}

func (p *GraphicsPage) reset() {
	err := graphics.Reset(p.d.Graphics)
	if err != nil {
		p.d.notify("Reset: %v", err)
	}

	def := graphics.DefaultSettings()
	gfx := &p.d.Config.Graphics
	gfx.RSR, gfx.Sharpness, gfx.AFMF, gfx.AntiLag = def.RSR, def.Sharpness, def.AFMF, def.AntiLag

	p.AFMF.Set(readEnabled(p.d.Graphics, graphics.FeatureAFMF, gfx.AFMF))
	p.AntiLag.Set(readEnabled(p.d.Graphics, graphics.FeatureAntiLag, gfx.AntiLag))
	p.display.Sync()
	p.d.changed(p.display.page)

	if saveErr := p.d.saveConfig(); saveErr != nil {
		p.d.notify("Reset: %v", saveErr)
		return
	}
	if err == nil {
		p.d.notify("Graphics settings reset")
	}
}
