// Package layout inspects page layouts without a window: it validates
// every page and describes registries and zones as YAML or a styled
// terminal listing.
package layout

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/user-none/padnav/standalone/elements"
	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/types"
)

// Report describes a set of pages
type Report struct {
	Pages []PageReport `yaml:"pages"`
}

// PageReport describes one page
type PageReport struct {
	Name     string          `yaml:"name"`
	Columns  int             `yaml:"columns,omitempty"`
	Elements []ElementReport `yaml:"elements"`
	Zones    []ZoneReport    `yaml:"zones,omitempty"`
	Error    string          `yaml:"error,omitempty"`
}

// ElementReport describes one registry entry
type ElementReport struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label,omitempty"`
	Value string `yaml:"value,omitempty"`
	Mode  string `yaml:"mode,omitempty"`
}

// ZoneReport describes one declared zone
type ZoneReport struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Columns     int               `yaml:"columns,omitempty"`
	Keys        []string          `yaml:"keys"`
	Transitions map[string]string `yaml:"transitions,omitempty"`
}

// Check validates every page and returns all failures together
func Check(pages []*nav.Page) error {
	var errs []error
	for _, p := range pages {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Describe builds a report of the current registries
func Describe(pages []*nav.Page) Report {
	r := Report{Pages: make([]PageReport, 0, len(pages))}
	for _, p := range pages {
		pr := PageReport{Name: p.Name()}

		zones := p.Zones()
		if len(zones) == 0 {
			pr.Columns = p.Columns()
		}

		for _, n := range p.Elements() {
			er := ElementReport{Name: n.Name()}
			if d, ok := n.Element().(elements.Describer); ok {
				er.Label = d.Label()
				er.Value = d.Value()
			}
			if n.Element() != nil {
				if m := nav.ModeOf(n.Element()); m.Kind != nav.ModeNone {
					er.Mode = m.Kind.String()
				}
			}
			pr.Elements = append(pr.Elements, er)
		}

		for _, z := range zones {
			zr := ZoneReport{Name: z.Name, Type: z.Type, Columns: z.Columns, Keys: z.Keys}
			if zr.Keys == nil {
				zr.Keys = []string{}
			}
			if len(z.Transitions) > 0 {
				zr.Transitions = make(map[string]string, len(z.Transitions))
				for dir, tr := range z.Transitions {
					zr.Transitions[dir] = fmt.Sprintf("%s[%s]", tr.ToZone, indexName(tr.ToIndex))
				}
			}
			pr.Zones = append(pr.Zones, zr)
		}

		if err := p.Validate(); err != nil {
			pr.Error = err.Error()
		}
		r.Pages = append(r.Pages, pr)
	}
	return r
}

func indexName(i int) string {
	switch i {
	case types.NavIndexPreserve:
		return "preserve"
	case types.NavIndexFirst:
		return "first"
	case types.NavIndexLast:
		return "last"
	}
	return fmt.Sprint(i)
}

// WriteYAML encodes the report
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	return enc.Close()
}

var (
	pageStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"})
	nameStyle  = lipgloss.NewStyle().Width(24)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).Bold(true)
	zoneStyle  = lipgloss.NewStyle().PaddingLeft(2)
)

// Render formats the report for a terminal
func Render(r Report) string {
	var b strings.Builder
	for i, p := range r.Pages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pageStyle.Render(p.Name))
		if p.Columns > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  (grid, %d column)", p.Columns)))
		}
		b.WriteString("\n")

		if len(p.Elements) == 0 {
			b.WriteString(dimStyle.Render("  no navigable elements") + "\n")
		}
		for _, e := range p.Elements {
			value := e.Label
			if e.Value != "" {
				value += ": " + e.Value
			}
			row := lipgloss.JoinHorizontal(lipgloss.Top, "  ", nameStyle.Render(e.Name), dimStyle.Render(value))
			b.WriteString(row + "\n")
		}

		for _, z := range p.Zones {
			line := fmt.Sprintf("zone %s %s", z.Name, z.Type)
			if z.Columns > 0 {
				line += fmt.Sprintf("/%d", z.Columns)
			}
			line += " [" + strings.Join(z.Keys, " ") + "]"
			dirs := make([]string, 0, len(z.Transitions))
			for dir := range z.Transitions {
				dirs = append(dirs, dir)
			}
			sort.Strings(dirs)
			for _, dir := range dirs {
				line += fmt.Sprintf(" %s->%s", dir, z.Transitions[dir])
			}
			b.WriteString(zoneStyle.Render(line) + "\n")
		}

		if p.Error != "" {
			b.WriteString(errorStyle.Render("  "+p.Error) + "\n")
		}
	}
	return b.String()
}
