package pages

import (
	"strings"

	"github.com/user-none/padnav/standalone/elements"
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/storage"
)

// PerformancePage edits power, fan and CPU boost
type PerformancePage struct {
	d    *Deps
	page *nav.Page

	Power *elements.Slider
	Fan   *elements.CompositeRow
	Boost *elements.Toggle
}

func newPerformancePage(d *Deps) *PerformancePage {
	p := &PerformancePage{d: d}
	perf := &d.Config.Performance

	p.Power = elements.NewSlider("Power limit", storage.PowerLimitMin, storage.PowerLimitMax, 1, perf.PowerLimitW,
		func(w int) error {
			perf.PowerLimitW = w
			return d.saveConfig()
		}).WithUnit(" W")

	parts := []elements.Part{{
		Label: "Auto",
		Action: func() error {
			perf.FanAuto = !perf.FanAuto
			return d.saveConfig()
		},
		Selected: func() bool { return perf.FanAuto },
	}}
	for _, preset := range storage.FanPresets {
		parts = append(parts, elements.Part{
			Label: titleCase(preset),
			Action: func() error {
				perf.FanPreset = preset
				return d.saveConfig()
			},
			Enabled:  func() bool { return !perf.FanAuto },
			Selected: func() bool { return !perf.FanAuto && perf.FanPreset == preset },
		})
	}
	p.Fan = elements.NewCompositeRow("Fan", parts...)

	p.Boost = elements.NewToggle("CPU boost", perf.CPUBoost, func(on bool) error {
		perf.CPUBoost = on
		if err := d.saveConfig(); err != nil {
			perf.CPUBoost = !on
			return err
		}
		return nil
	})

	d.reportErrors(p.Power)
	d.reportErrors(p.Fan)
	d.reportErrors(p.Boost)

	root := nav.NewNode("performance", nil)
	root.MustAdd(
		item("power", p.Power, 0),
		item("fan", p.Fan, 1),
		item("boost", p.Boost, 2),
	)
	p.page = nav.NewPage(PerformanceTitle, root)
	return p
}

// Page returns the navigation page
func (p *PerformancePage) Page() *nav.Page {
	return p.page
}

// Sync refreshes the elements after the config changed elsewhere
func (p *PerformancePage) Sync() {
	perf := p.d.Config.Performance
	p.Power.Sync(perf.PowerLimitW)
	p.Boost.Set(perf.CPUBoost)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
