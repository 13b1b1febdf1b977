// Package dot renders commit graphs as Graphviz DOT and SVG.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no graphviz installation is required.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-graphviz"

	"github.com/gitlanes/gitlanes/pkg/graph"
)

// ToDOT converts a layout to Graphviz DOT format. Each commit becomes a
// node colored with its lane color; edges run from commit to parent.
// Parents outside the layout (history boundary) are skipped rather than
// drawn as dangling nodes.
func ToDOT(l graph.Layout) string {
	present := make(map[string]bool, len(l.Rows))
	for _, r := range l.Rows {
		present[r.Commit] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph commits {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, r := range l.Rows {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, fontcolor=white];\n",
			r.Commit, fmtLabel(r), r.Color)
	}

	buf.WriteString("\n")
	for _, r := range l.Rows {
		for _, p := range r.Parents {
			if present[p] {
				fmt.Fprintf(&buf, "  %q -> %q;\n", r.Commit, p)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(r graph.Row) string {
	label := r.ShortHash
	if label == "" {
		label = r.Commit
	}
	if len(r.Refs) > 0 {
		label += "\n(" + strings.Join(r.Refs, ", ") + ")"
	}
	if r.Message != "" {
		label += "\n" + truncate(r.Message, 40)
	}
	return label
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

// RenderSVG renders a layout to SVG via Graphviz.
func RenderSVG(l graph.Layout) ([]byte, error) {
	return renderDOT(ToDOT(l))
}

func renderDOT(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
