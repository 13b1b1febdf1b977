package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := map[string]bool{
		"log":        false,
		"layout":     false,
		"render":     false,
		"serve":      false,
		"tui":        false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"dot", []string{"dot"}},
		{"svg,dot,json", []string{"svg", "dot", "json"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("graph", "svg"); got != "graph.svg" {
		t.Errorf("outputPath = %q, want graph.svg", got)
	}
	if got := outputPath("out.dot", "dot"); got != "out.dot" {
		t.Errorf("outputPath should not double the extension: %q", got)
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.Config.Log.MaxCommits = 42
	c.Config.Log.All = true
	c.Config.Render.ShowAuthor = true

	opts := c.pipelineOptions()
	if opts.MaxCommits != 42 {
		t.Errorf("MaxCommits = %d, want 42", opts.MaxCommits)
	}
	if !opts.All || !opts.ShowAuthor {
		t.Errorf("config flags not carried: %+v", opts)
	}
	if opts.RepoPath != "." {
		t.Errorf("RepoPath should default to %q", ".")
	}
}
