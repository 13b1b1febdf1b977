package lanes

import (
	"github.com/gitlanes/gitlanes/pkg/commit"
)

// maxLanes caps the number of concurrently active lanes. The layout
// targets a two-column view; when a third lineage becomes active the
// engine reuses lane 0 instead of growing the table.
const maxLanes = 2

// Assignment describes the placement of a single commit: the lane it
// occupies, the lanes of parents that were already active when it was
// processed (merge-in edges), the lane it hands off to its mainline
// parent, and its color.
type Assignment struct {
	CommitHash string
	Lane       int
	InLanes    []int
	OutLanes   []int
	Color      string
}

// Graph is the computed layout for one commit list. Lanes holds one
// Assignment per input commit, in input order.
//
// ColorMap always reports the default color for each of the two lane
// indices regardless of the colors actually assigned per row; consumers
// should read Assignment.Color instead. It is kept for compatibility with
// existing renderers.
type Graph struct {
	Lanes    []Assignment
	MaxLane  int
	ColorMap map[int]string
}

// allocator is the per-call traversal state: the active-lane table and the
// color table. It never outlives one Calculate invocation.
type allocator struct {
	// active maps lane index to the commit hash that lane expects to
	// render next. An empty string marks a freed lane available for reuse.
	active []string

	// colors records the color decided for a commit hash, so a parent's
	// color can be looked up when it is later processed itself.
	colors map[string]string
}

// Calculate lays out commits in arrival order and returns the resulting
// graph. It is a pure function of its input: no state is retained across
// calls and the palette is a fixed constant.
//
// An empty input yields an empty Lanes slice, MaxLane 0, and the default
// two-entry ColorMap.
func Calculate(commits []commit.Commit) Graph {
	a := allocator{
		active: make([]string, 0, maxLanes),
		colors: make(map[string]string, len(commits)),
	}

	out := Graph{
		Lanes: make([]Assignment, 0, len(commits)),
		ColorMap: map[int]string{
			0: Palette[0],
			1: Palette[1],
		},
	}

	maxUsed := 0
	for _, c := range commits {
		lane := a.resolveLane(c.Hash)
		in := a.incoming(c.Parents)
		color := a.resolveColor(c, lane)
		a.advance(c, lane, color)

		if lane > maxUsed {
			maxUsed = lane
		}
		out.Lanes = append(out.Lanes, Assignment{
			CommitHash: c.Hash,
			Lane:       lane,
			InLanes:    in,
			OutLanes:   []int{lane},
			Color:      color,
		})
	}

	if maxUsed > maxLanes-1 {
		maxUsed = maxLanes - 1
	}
	out.MaxLane = maxUsed
	return out
}

// resolveLane picks the lane for a commit: the lane already expecting its
// hash, else the first freed lane, else a new lane while the table has
// room, else lane 0 (accepted collision).
func (a *allocator) resolveLane(hash string) int {
	for i, expected := range a.active {
		if expected != "" && expected == hash {
			return i
		}
	}
	for i, expected := range a.active {
		if expected == "" {
			return i
		}
	}
	if len(a.active) < maxLanes {
		a.active = append(a.active, "")
		return len(a.active) - 1
	}
	return 0
}

// incoming collects the lane indices of parents that are already expected
// by an active lane. A parent with no active match is not an incoming edge
// here; it gets its own lane when the traversal reaches it.
func (a *allocator) incoming(parents []string) []int {
	var in []int
	for _, p := range parents {
		for i, expected := range a.active {
			if expected != "" && expected == p {
				in = append(in, i)
			}
		}
	}
	return in
}

// resolveColor decides the commit's color: a previously recorded color
// wins, then a color derived from the first ref name, then the mainline
// parent's recorded color, then the positional lane default.
func (a *allocator) resolveColor(c commit.Commit, lane int) string {
	if color, ok := a.colors[c.Hash]; ok {
		return color
	}

	var color string
	switch {
	case len(c.Refs) > 0:
		color = RefColor(c.Refs[0])
	case len(c.Parents) > 0 && a.colors[c.Parents[0]] != "":
		color = a.colors[c.Parents[0]]
	default:
		color = laneColor(lane)
	}
	a.colors[c.Hash] = color
	return color
}

// advance updates the active-lane table after a commit is placed. The
// commit's lane rebinds to its mainline parent, merge-source parents are
// parked on the other lane, and a root commit frees its lane for reuse.
func (a *allocator) advance(c commit.Commit, lane int, color string) {
	if len(c.Parents) == 0 {
		a.active[lane] = ""
		return
	}

	// Mainline continuation: the lane now expects the first parent, which
	// inherits the commit's color unless one was already decided for it.
	a.active[lane] = c.Parents[0]
	a.propagate(c.Parents[0], color)

	for p := 1; p < len(c.Parents); p++ {
		// The second parent takes lane 1; any further parent reuses
		// whichever lane the commit is not on.
		mergeLane := 1
		if p > 1 && lane == 1 {
			mergeLane = 0
		}
		a.ensureLane(mergeLane)
		a.active[mergeLane] = c.Parents[p]
		a.propagate(c.Parents[p], laneColor(lane+p))
	}
}

// propagate records a color for a hash unless one is already known.
func (a *allocator) propagate(hash, color string) {
	if _, ok := a.colors[hash]; !ok {
		a.colors[hash] = color
	}
}

// ensureLane grows the active table so the given index is addressable.
func (a *allocator) ensureLane(i int) {
	for len(a.active) <= i {
		a.active = append(a.active, "")
	}
}
