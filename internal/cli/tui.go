package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/pkg/graph"
	"github.com/gitlanes/gitlanes/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for interactive graph browsing.
func (c *CLI) tuiCommand() *cobra.Command {
	var noCache bool
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "tui [repo]",
		Short: "Browse the commit graph interactively",
		Long: `Browse the commit graph interactively.

Opens a scrollable view of the commit graph. Use the arrow keys or j/k
to move, enter to toggle commit details, and q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.RepoPath = args[0]
			}
			return c.runTUI(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Ref, "ref", "r", opts.Ref, "branch, tag, or revision to start from (default: HEAD)")
	cmd.Flags().BoolVar(&opts.All, "all", opts.All, "walk all refs instead of a single head")
	cmd.Flags().IntVarP(&opts.MaxCommits, "max-commits", "n", opts.MaxCommits, "maximum number of commits")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runTUI computes the layout and hands it to the bubbletea program.
func (c *CLI) runTUI(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	p := newProgress(c.Logger)
	commits, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	layout, err := runner.ComputeLayout(ctx, commits, opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Loaded %d commits", len(commits)))
	if len(layout.Rows) == 0 {
		printInfo("No commits to show")
		return nil
	}

	model := newGraphModel(layout)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// GraphModel - Interactive commit browsing
// =============================================================================

// GraphModel is the bubbletea model for browsing the commit graph.
type GraphModel struct {
	Layout      graph.Layout
	Cursor      int
	Offset      int
	Height      int
	ShowDetails bool
}

// newGraphModel creates a graph browser over the given layout.
func newGraphModel(l graph.Layout) GraphModel {
	return GraphModel{
		Layout: l,
		Height: 20,
	}
}

func (m GraphModel) Init() tea.Cmd {
	return nil
}

func (m GraphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layout.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor, m.Offset = 0, 0
		case "G", "end":
			m.Cursor = len(m.Layout.Rows) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		case "enter":
			m.ShowDetails = !m.ShowDetails
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.ShowDetails {
			m.Height -= 6
		}
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m GraphModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Commit Graph"))
	if m.Layout.Repo != "" {
		b.WriteString(listDimStyle.Render("  " + m.Layout.Repo))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Layout.Rows) {
		end = len(m.Layout.Rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.Layout.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + laneGlyphs(m.Layout, row) + " " + row.ShortHash
		if len(row.Refs) > 0 {
			line += " (" + strings.Join(row.Refs, ", ") + ")"
		}
		line += " " + row.Message

		style := listNormalStyle
		if i == m.Cursor {
			style = listSelectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.ShowDetails {
		b.WriteString("\n")
		b.WriteString(m.detailView())
	}

	return b.String()
}

// laneGlyphs renders the lane columns for one row, colored per lane.
func laneGlyphs(l graph.Layout, row graph.Row) string {
	var b strings.Builder
	for i := 0; i <= l.MaxLane; i++ {
		if i == row.Lane {
			glyph := "●"
			if row.IsMerge() {
				glyph = "◉"
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render(glyph))
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// detailView renders the selected commit's metadata.
func (m GraphModel) detailView() string {
	row := m.Layout.Rows[m.Cursor]

	var b strings.Builder
	b.WriteString(listDimStyle.Render("commit  ") + StyleValue.Render(row.Commit) + "\n")
	if row.Author != "" {
		b.WriteString(listDimStyle.Render("author  ") + StyleValue.Render(row.Author) + "\n")
	}
	if !row.Time.IsZero() {
		b.WriteString(listDimStyle.Render("date    ") + StyleValue.Render(row.Time.Format("2006-01-02 15:04:05")) + "\n")
	}
	if len(row.Parents) > 0 {
		b.WriteString(listDimStyle.Render("parents ") + StyleValue.Render(strings.Join(row.Parents, " ")) + "\n")
	}
	b.WriteString(listDimStyle.Render("lane    ") + StyleValue.Render(fmt.Sprintf("%d", row.Lane)) + "\n")
	b.WriteString(StyleValue.Render(row.Message))
	return b.String()
}
