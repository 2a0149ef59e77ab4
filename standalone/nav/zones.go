package nav

import "github.com/user-none/padnav/standalone/types"

// Zone is a group of nodes laid out in one row, one column, or a grid
type Zone struct {
	Type    string   // types.NavZoneHorizontal, types.NavZoneVertical, or types.NavZoneGrid
	Keys    []string // Node names in order (row-major for grids)
	Columns int      // Number of columns for grid zones (ignored for other types)
}

// Transition defines where focus goes when leaving a zone
type Transition struct {
	ToZone  string // Target zone name
	ToIndex int    // Index in target zone, or one of the types.NavIndex constants
}

// liveZone is a zone reduced to the nodes currently in the registry
type liveZone struct {
	name  string
	zone  *Zone
	nodes []*Node
}

// implicitZone is the layout used by pages that declare no zones
const implicitZone = ""

// neighbor finds the node that receives focus when moving from current
// in dir. eligible is the page registry. Returns nil when the move is
// absorbed.
func (p *Page) neighbor(current *Node, dir types.Direction, eligible []*Node) *Node {
	zones := p.liveZones(eligible)

	from, index := findInZones(zones, current)
	if from == nil {
		return nil
	}

	var target int
	var transition bool
	switch from.zone.Type {
	case types.NavZoneHorizontal:
		target, transition = navigateHorizontal(index, len(from.nodes), dir)
	case types.NavZoneVertical:
		target, transition = navigateVertical(index, len(from.nodes), dir)
	case types.NavZoneGrid:
		target, transition = navigateGrid(index, len(from.nodes), from.zone.Columns, dir)
	default:
		return nil
	}

	if transition {
		return p.zoneTransition(zones, from, index, dir)
	}
	if target >= 0 && target < len(from.nodes) {
		return from.nodes[target]
	}
	return nil
}

// liveZones resolves declared zones against the registry. Keys that are
// hidden, disabled, or missing are dropped so navigation skips them.
func (p *Page) liveZones(eligible []*Node) map[string]*liveZone {
	zones := make(map[string]*liveZone)

	if len(p.zones) == 0 {
		zones[implicitZone] = &liveZone{
			name:  implicitZone,
			zone:  &Zone{Type: types.NavZoneGrid, Columns: p.columns},
			nodes: eligible,
		}
		return zones
	}

	byName := make(map[string]*Node, len(eligible))
	for _, n := range eligible {
		byName[n.name] = n
	}
	for name, z := range p.zones {
		lz := &liveZone{name: name, zone: z}
		for _, key := range z.Keys {
			if n, ok := byName[key]; ok {
				lz.nodes = append(lz.nodes, n)
			}
		}
		zones[name] = lz
	}
	return zones
}

func findInZones(zones map[string]*liveZone, n *Node) (*liveZone, int) {
	for _, z := range zones {
		for i, m := range z.nodes {
			if m == n {
				return z, i
			}
		}
	}
	return nil, -1
}

// navigateHorizontal handles navigation in a horizontal zone
// Returns (targetIndex, shouldTransition)
func navigateHorizontal(currentIndex, total int, dir types.Direction) (int, bool) {
	switch dir {
	case types.DirLeft:
		if currentIndex > 0 {
			return currentIndex - 1, false
		}
		return -1, true
	case types.DirRight:
		if currentIndex < total-1 {
			return currentIndex + 1, false
		}
		return -1, true
	case types.DirUp, types.DirDown:
		return -1, true
	}
	return -1, false
}

// navigateVertical handles navigation in a vertical zone
// Returns (targetIndex, shouldTransition)
func navigateVertical(currentIndex, total int, dir types.Direction) (int, bool) {
	switch dir {
	case types.DirUp:
		if currentIndex > 0 {
			return currentIndex - 1, false
		}
		return -1, true
	case types.DirDown:
		if currentIndex < total-1 {
			return currentIndex + 1, false
		}
		return -1, true
	case types.DirLeft, types.DirRight:
		return -1, true
	}
	return -1, false
}

// navigateGrid handles navigation in a grid zone. Rows have a fixed
// width; Up/Down move by a row and Left/Right stop at the row edges.
// Moving down from a row whose column is empty in the next row leaves
// the zone rather than snapping to another column.
// Returns (targetIndex, shouldTransition)
func navigateGrid(currentIndex, total, columns int, dir types.Direction) (int, bool) {
	if columns <= 0 {
		columns = 1
	}

	row := currentIndex / columns
	col := currentIndex % columns
	totalRows := (total + columns - 1) / columns

	switch dir {
	case types.DirLeft:
		if col > 0 {
			return currentIndex - 1, false
		}
		return -1, true
	case types.DirRight:
		if col < columns-1 && currentIndex+1 < total {
			return currentIndex + 1, false
		}
		return -1, true
	case types.DirUp:
		if row > 0 {
			return currentIndex - columns, false
		}
		return -1, true
	case types.DirDown:
		next := currentIndex + columns
		if row < totalRows-1 && next < total {
			return next, false
		}
		return -1, true
	}
	return -1, false
}

// zoneTransition follows the declared transition out of a zone.
// Undeclared edges absorb the move.
func (p *Page) zoneTransition(zones map[string]*liveZone, from *liveZone, fromIndex int, dir types.Direction) *Node {
	tr, ok := p.transitions[from.name][dir]
	if !ok {
		return nil
	}
	to := zones[tr.ToZone]
	if to == nil || len(to.nodes) == 0 {
		return nil
	}

	target := 0
	switch tr.ToIndex {
	case types.NavIndexFirst:
		target = 0
	case types.NavIndexLast:
		target = len(to.nodes) - 1
	case types.NavIndexPreserve:
		target = preservedIndex(fromIndex, from, to, dir)
	default:
		if tr.ToIndex >= 0 && tr.ToIndex < len(to.nodes) {
			target = tr.ToIndex
		}
	}

	if target >= 0 && target < len(to.nodes) {
		return to.nodes[target]
	}
	return nil
}

// preservedIndex picks the index in the target zone that keeps the
// user's column when moving between a grid and a row or another grid
func preservedIndex(fromIndex int, from, to *liveZone, dir types.Direction) int {
	total := len(to.nodes)
	fromCols := from.zone.Columns

	switch {
	case from.zone.Type == types.NavZoneGrid && fromCols > 0:
		col := fromIndex % fromCols
		switch {
		case to.zone.Type == types.NavZoneHorizontal:
			if fromCols == 1 {
				return 0
			}
			ratio := float64(col) / float64(fromCols-1)
			return int(ratio*float64(total-1) + 0.5)
		case to.zone.Type == types.NavZoneGrid && to.zone.Columns > 0 && col < to.zone.Columns:
			if dir == types.DirUp {
				lastRowStart := ((total - 1) / to.zone.Columns) * to.zone.Columns
				return min(lastRowStart+col, total-1)
			}
			return min(col, total-1)
		}
	case from.zone.Type == types.NavZoneHorizontal && to.zone.Type == types.NavZoneGrid && to.zone.Columns > 0:
		// Row above or below a grid: land in the matching column
		col := fromIndex
		if len(from.nodes) > 1 && to.zone.Columns > 1 {
			ratio := float64(fromIndex) / float64(len(from.nodes)-1)
			col = int(ratio*float64(to.zone.Columns-1) + 0.5)
		}
		if col >= to.zone.Columns {
			col = to.zone.Columns - 1
		}
		if dir == types.DirUp {
			lastRowStart := ((total - 1) / to.zone.Columns) * to.zone.Columns
			return min(lastRowStart+col, total-1)
		}
		return min(col, total-1)
	}

	if dir == types.DirUp || dir == types.DirLeft {
		return total - 1
	}
	return 0
}
