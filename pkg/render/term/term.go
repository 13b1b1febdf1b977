// Package term renders commit graphs as colored text for terminals.
//
// Each layout row becomes one output line: lane glyphs on the left
// (a node marker in the commit's lane, continuation bars in the
// others), followed by the short hash, ref decorations, and the
// commit subject. Colors come from the layout's lane assignment and
// are applied with [github.com/charmbracelet/lipgloss], which degrades
// gracefully on non-color terminals.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitlanes/gitlanes/pkg/graph"
)

const (
	glyphCommit = "●"
	glyphMerge  = "◉"
	glyphBar    = "│"
	glyphBlank  = " "
)

// Options controls terminal rendering.
type Options struct {
	// ShowAuthor appends the author name to each line.
	ShowAuthor bool

	// ShowTime appends the commit time to each line.
	ShowTime bool

	// NoColor disables all styling, producing plain text.
	NoColor bool
}

var (
	styleHash = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleRefs = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	styleMeta = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render writes the layout to w, one line per commit.
func Render(w io.Writer, l graph.Layout, opts Options) error {
	active := make([]bool, l.MaxLane+1)
	for _, r := range l.Rows {
		line := renderRow(l, r, active, opts)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		advance(active, r)
	}
	return nil
}

// RenderString renders the layout to a string.
func RenderString(l graph.Layout, opts Options) string {
	var b strings.Builder
	_ = Render(&b, l, opts)
	return b.String()
}

func renderRow(l graph.Layout, r graph.Row, active []bool, opts Options) string {
	var b strings.Builder

	for i := 0; i <= l.MaxLane; i++ {
		switch {
		case i == r.Lane:
			g := glyphCommit
			if r.IsMerge() {
				g = glyphMerge
			}
			b.WriteString(colorize(g, r.Color, opts))
		case active[i]:
			b.WriteString(colorize(glyphBar, l.LaneColors[i], opts))
		default:
			b.WriteString(glyphBlank)
		}
		b.WriteString(" ")
	}

	b.WriteString(style(styleHash, r.ShortHash, opts))
	if len(r.Refs) > 0 {
		b.WriteString(" ")
		b.WriteString(style(styleRefs, "("+strings.Join(r.Refs, ", ")+")", opts))
	}
	if r.Message != "" {
		b.WriteString(" ")
		b.WriteString(subject(r.Message))
	}
	if opts.ShowAuthor && r.Author != "" {
		b.WriteString(" ")
		b.WriteString(style(styleMeta, "<"+r.Author+">", opts))
	}
	if opts.ShowTime && !r.Time.IsZero() {
		b.WriteString(" ")
		b.WriteString(style(styleMeta, r.Time.Format("2006-01-02 15:04"), opts))
	}
	return strings.TrimRight(b.String(), " ")
}

// advance updates lane occupancy after a row: the commit's lane stays
// occupied while its first parent continues there, and a merge keeps
// the second column busy until its extra parent shows up.
func advance(active []bool, r graph.Row) {
	if r.Lane < len(active) {
		active[r.Lane] = len(r.Parents) > 0
	}
	if r.IsMerge() && len(active) > 1 {
		active[1] = true
	}
}

func subject(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

func colorize(s, hex string, opts Options) string {
	if opts.NoColor || hex == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}

func style(st lipgloss.Style, s string, opts Options) string {
	if opts.NoColor {
		return s
	}
	return st.Render(s)
}
