package nav

import (
	"errors"
	"fmt"
	"sort"
)

// GetNavigableElements returns the focus candidates under root in
// ascending order key. The root itself is a candidate when it is
// navigable, so a composite used as a page's only focus target is still
// found. Disabled or invisible subtrees are skipped without descending.
// An empty group matches every node.
func GetNavigableElements(root *Node, group string) []*Node {
	if root == nil || !root.Eligible() {
		return nil
	}

	var out []*Node
	if root.navigable && matchesGroup(root, group) {
		out = append(out, root)
	}
	out = collect(root, group, out)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].order < out[j].order
	})
	return out
}

// collect walks children depth first, pruning ineligible subtrees
func collect(n *Node, group string, out []*Node) []*Node {
	for _, c := range n.children {
		if !c.enabled || !c.visible {
			continue
		}
		if c.navigable && matchesGroup(c, group) {
			out = append(out, c)
		}
		out = collect(c, group, out)
	}
	return out
}

func matchesGroup(n *Node, group string) bool {
	return group == "" || n.group == group
}

// Validate checks a page tree for registration mistakes: navigable nodes
// without an element and navigable nodes sharing a name. Visibility is
// ignored so hidden elements are checked too.
func Validate(root *Node) error {
	if root == nil {
		return errors.New("nil root")
	}

	var errs []error
	seen := make(map[string]bool)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.navigable {
			if n.element == nil {
				errs = append(errs, fmt.Errorf("%q: %w", n.name, ErrNotNavigable))
			}
			if n.name == "" {
				errs = append(errs, errors.New("navigable node without a name"))
			} else if seen[n.name] {
				errs = append(errs, fmt.Errorf("duplicate navigable node %q", n.name))
			}
			seen[n.name] = true
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)

	return errors.Join(errs...)
}
