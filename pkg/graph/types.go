package graph

import (
	"time"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/lanes"
)

// Layout is the canonical serialization format for a computed commit
// graph. Used for API responses, file output, and caching.
//
// The format is designed for round-trip fidelity: compute → export →
// re-import produces identical rendering input.
type Layout struct {
	// Repo identifies the repository the layout was computed from.
	Repo string `json:"repo,omitempty"`

	// MaxLane is the highest lane index used, at most 1.
	MaxLane int `json:"max_lane"`

	// LaneColors reports the default color per lane index. It is a fixed
	// legacy field; renderers should use the per-row Color instead.
	LaneColors map[int]string `json:"lane_colors"`

	// Rows holds one entry per commit, in layout order (newest first).
	Rows []Row `json:"rows"`
}

// Row is one rendered row of the graph: the lane placement produced by
// the engine joined with the commit metadata a renderer displays.
type Row struct {
	Commit    string    `json:"commit"`
	ShortHash string    `json:"short_hash,omitempty"`
	Message   string    `json:"message,omitempty"`
	Author    string    `json:"author,omitempty"`
	Time      time.Time `json:"time"`
	Refs      []string  `json:"refs,omitempty"`
	Parents   []string  `json:"parents,omitempty"`

	Lane     int    `json:"lane"`
	InLanes  []int  `json:"in_lanes,omitempty"`
	OutLanes []int  `json:"out_lanes"`
	Color    string `json:"color"`
}

// IsMerge reports whether the row describes a merge commit.
func (r Row) IsMerge() bool { return len(r.Parents) > 1 }

// FromLanes joins a computed lane graph with its source commits into the
// serialization format. The two slices are parallel: lanes.Calculate
// emits exactly one assignment per input commit, in input order.
func FromLanes(repo string, commits []commit.Commit, g lanes.Graph) Layout {
	out := Layout{
		Repo:       repo,
		MaxLane:    g.MaxLane,
		LaneColors: g.ColorMap,
		Rows:       make([]Row, len(g.Lanes)),
	}

	for i, a := range g.Lanes {
		row := Row{
			Commit:   a.CommitHash,
			Lane:     a.Lane,
			InLanes:  a.InLanes,
			OutLanes: a.OutLanes,
			Color:    a.Color,
		}
		if i < len(commits) {
			c := commits[i]
			row.ShortHash = c.ShortHash()
			row.Message = c.Subject()
			row.Author = c.Author
			row.Time = c.When
			row.Refs = c.Refs
			row.Parents = c.Parents
		}
		out.Rows[i] = row
	}

	return out
}
