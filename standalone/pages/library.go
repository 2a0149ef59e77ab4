package pages

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/elements"
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/storage"
	"github.com/user-none/padnav/standalone/types"
)

// Library zone names
const (
	ZoneActions  = "actions"
	ZoneProfiles = "profiles"
)

// ProfileColumns is the width of the profile grid
const ProfileColumns = 2

// LibraryPage manages saved game profiles: an action row above a grid of
// profiles. Activating a profile selects it; the actions work on the
// selection.
type LibraryPage struct {
	d    *Deps
	page *nav.Page
	perf *PerformancePage

	New      *elements.Button
	Apply    *elements.Button
	Favorite *elements.Button
	Delete   *elements.Button

	actions  []*nav.Node
	grid     *nav.Node
	profiles []*profileItem
	selected string
}

// profileItem is one grid cell
type profileItem struct {
	*elements.Button
	profile *storage.GameProfile
	node    *nav.Node
}

func newLibraryPage(d *Deps, perf *PerformancePage) *LibraryPage {
	p := &LibraryPage{d: d, perf: perf}

	p.New = elements.NewButton("New", p.newProfile)
	p.Apply = elements.NewButton("Apply", p.applySelected)
	p.Favorite = elements.NewButton("Favorite", p.toggleFavorite)
	p.Delete = elements.NewButton("Delete", p.confirmDelete)

	row := nav.NewNode("actions", nil)
	keys := make([]string, 0, 4)
	for i, b := range []*elements.Button{p.New, p.Apply, p.Favorite, p.Delete} {
		name := actionName(b)
		n := item(name, b, i)
		p.actions = append(p.actions, n)
		row.MustAdd(n)
		keys = append(keys, name)
	}

	p.grid = nav.NewNode("profiles", nil)

	root := nav.NewNode("library", nil)
	root.MustAdd(row, p.grid)

	p.page = nav.NewPage(LibraryTitle, root)
	p.page.RegisterZone(ZoneActions, types.NavZoneHorizontal, keys, 0)
	p.page.RegisterZone(ZoneProfiles, types.NavZoneGrid, nil, ProfileColumns)
	p.page.SetTransition(ZoneActions, types.DirDown, ZoneProfiles, types.NavIndexPreserve)
	p.page.SetTransition(ZoneProfiles, types.DirUp, ZoneActions, types.NavIndexPreserve)
	p.page.SetBackHandler(p.back)

	p.rebuild()
	return p
}

func actionName(b *elements.Button) string {
	switch b.Label() {
	case "New":
		return "new"
	case "Apply":
		return "apply"
	case "Favorite":
		return "favorite"
	}
	return "delete"
}

// Page returns the navigation page
func (p *LibraryPage) Page() *nav.Page {
	return p.page
}

// Selected returns the selected profile ID, or ""
func (p *LibraryPage) Selected() string {
	return p.selected
}

// ProfileNodes returns the grid nodes in display order
func (p *LibraryPage) ProfileNodes() []*nav.Node {
	out := make([]*nav.Node, len(p.profiles))
	for i, it := range p.profiles {
		out[i] = it.node
	}
	return out
}

// ActionNode returns the action button node with the given name
func (p *LibraryPage) ActionNode(name string) *nav.Node {
	for _, n := range p.actions {
		if n.Name() == name {
			return n
		}
	}
	return nil
}

// rebuild replaces the grid with the current library contents
func (p *LibraryPage) rebuild() {
	for _, c := range p.grid.Children() {
		c.Detach()
	}

	sorted := p.d.Library.GetProfilesSorted("name")
	p.profiles = p.profiles[:0]
	keys := make([]string, 0, len(sorted))
	for i, prof := range sorted {
		it := &profileItem{profile: prof}
		id := prof.ID
		it.Button = elements.NewButton(prof.Name, func() { p.selectProfile(id) })
		it.node = item("profile-"+id, it, 100+i)
		p.grid.MustAdd(it.node)
		p.profiles = append(p.profiles, it)
		keys = append(keys, it.node.Name())
	}
	p.page.SetZoneKeys(ZoneProfiles, keys)

	if p.d.Library.GetProfile(p.selected) == nil {
		p.selected = ""
	}
	p.refresh()
	p.d.changed(p.page)
}

// refresh updates the grid values and action availability
func (p *LibraryPage) refresh() {
	for _, it := range p.profiles {
		v := fmt.Sprintf("%d W, %s", it.profile.PowerLimitW, titleCase(it.profile.FanPreset))
		if it.profile.Favorite {
			v = "★ " + v
		}
		if it.profile.LastApplied != 0 {
			v += ", applied " + storage.FormatLastApplied(it.profile.LastApplied, time.Now())
		}
		if it.profile.ID == p.selected {
			v += " (selected)"
		}
		it.SetValue(v)
	}

	has := p.selected != ""
	for _, n := range p.actions {
		if n.Name() != "new" {
			n.SetEnabled(has)
		}
	}
	if prof := p.d.Library.GetProfile(p.selected); prof != nil && prof.Favorite {
		p.Favorite.SetValue("Unfavorite")
	} else {
		p.Favorite.SetValue("")
	}
}

func (p *LibraryPage) selectProfile(id string) {
	if p.selected == id {
		p.selected = ""
	} else {
		p.selected = id
	}
	p.refresh()
	p.d.changed(p.page)
}

func (p *LibraryPage) back() bool {
	if p.selected == "" {
		return false
	}
	p.selected = ""
	p.refresh()
	p.d.changed(p.page)
	return true
}

func (p *LibraryPage) newProfile() {
	prof := storage.NewProfile(fmt.Sprintf("Profile %d", p.d.Library.ProfileCount()+1), p.d.Config.Performance)
	p.d.Library.AddProfile(prof)
	p.selected = prof.ID
	p.saveLibrary()
	p.rebuild()
	p.d.notify("Saved %s", prof.Name)
}

func (p *LibraryPage) applySelected() {
	prof := p.d.Library.GetProfile(p.selected)
	if prof == nil {
		return
	}

	perf := &p.d.Config.Performance
	perf.PowerLimitW = prof.PowerLimitW
	perf.FanPreset = prof.FanPreset
	perf.FanAuto = false
	if err := p.d.saveConfig(); err != nil {
		p.d.notify("Apply: %v", err)
		return
	}
	p.perf.Sync()

	p.d.Library.MarkApplied(prof.ID)
	p.saveLibrary()
	zap.L().Info("Profile applied", zap.String("profile", prof.Name), zap.Int("powerLimitW", prof.PowerLimitW))
	p.d.notify("Applied %s", prof.Name)
}

func (p *LibraryPage) toggleFavorite() {
	if !p.d.Library.ToggleFavorite(p.selected) {
		return
	}
	p.saveLibrary()
	p.rebuild()
}

func (p *LibraryPage) confirmDelete() {
	prof := p.d.Library.GetProfile(p.selected)
	if prof == nil {
		return
	}
	p.d.confirm("Delete profile?", fmt.Sprintf("%q will be removed.", prof.Name), func() {
		p.deleteProfile(prof.ID)
	})
}

// deleteProfile removes a profile and selects its neighbor so the
// action row stays usable
func (p *LibraryPage) deleteProfile(id string) {
	index := -1
	for i, it := range p.profiles {
		if it.profile.ID == id {
			index = i
		}
	}
	if index < 0 {
		return
	}

	p.d.Library.RemoveProfile(id)
	p.saveLibrary()

	p.selected = ""
	remaining := p.d.Library.GetProfilesSorted("name")
	if len(remaining) > 0 {
		if index >= len(remaining) {
			index = len(remaining) - 1
		}
		p.selected = remaining[index].ID
	}
	p.rebuild()
}

func (p *LibraryPage) saveLibrary() {
	if err := p.d.saveLibrary(); err != nil {
		p.d.notify("Library: %v", err)
	}
}
