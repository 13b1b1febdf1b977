// Package lanes computes a renderable two-dimensional layout for a linear
// commit history: a horizontal lane index per commit, the incoming and
// outgoing lane connections between consecutive rows, and a stable color
// per branch lineage.
//
// The engine consumes a flat, chronologically ordered list of commit
// records (typically reverse-chronological, so a commit precedes its
// parents) and reconstructs branch topology in a single forward pass,
// without a full topological index. All state is local to one call:
// [Calculate] is a pure function and concurrent invocations need no
// coordination.
//
// The layout targets a narrow two-column graph view. At most two lanes are
// ever reported; when more than two lineages are simultaneously active the
// engine accepts a visual lane collision on lane 0 rather than widening
// the graph.
package lanes
