// Package render provides output rendering for computed commit graphs.
//
// # Overview
//
// This package contains the renderers that turn a serialized layout
// (see [github.com/gitlanes/gitlanes/pkg/graph]) into consumable output:
//
//   - [dot] renders the commit DAG as Graphviz DOT text and in-process SVG
//   - [term] renders the two-lane graph as colored terminal text
//
// Renderers consume graph.Layout only; they never reach back into a
// repository or the layout engine.
package render
