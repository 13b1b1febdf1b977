package dot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/graph"
	"github.com/gitlanes/gitlanes/pkg/lanes"
)

func sampleLayout() graph.Layout {
	commits := []commit.Commit{
		{Hash: "aaa1111", Parents: []string{"bbb2222"}, Refs: []string{"main"}, Message: "second"},
		{Hash: "bbb2222", Parents: []string{"ccc3333"}, Message: "first"},
	}
	return graph.FromLanes("demo", commits, lanes.Calculate(commits))
}

func TestToDOTStructure(t *testing.T) {
	dot := ToDOT(sampleLayout())

	if !strings.HasPrefix(dot, "digraph commits {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, `"aaa1111"`) || !strings.Contains(dot, `"bbb2222"`) {
		t.Error("nodes missing from DOT output")
	}
	if !strings.Contains(dot, `"aaa1111" -> "bbb2222"`) {
		t.Error("edge aaa1111 -> bbb2222 missing")
	}
	// ccc3333 is outside the layout: no dangling node or edge.
	if strings.Contains(dot, "ccc3333") {
		t.Error("boundary parent should not appear in DOT output")
	}
}

func TestToDOTCarriesColorsAndRefs(t *testing.T) {
	l := sampleLayout()
	dot := ToDOT(l)

	if !strings.Contains(dot, "fillcolor=") {
		t.Error("nodes should carry fillcolor attributes")
	}
	if !strings.Contains(dot, l.Rows[0].Color) {
		t.Errorf("lane color %q missing from DOT output", l.Rows[0].Color)
	}
	if !strings.Contains(dot, "(main)") {
		t.Error("ref decoration missing from node label")
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate should not touch short strings, got %q", got)
	}

	long := strings.Repeat("ü", 50)
	got := truncate(long, 40)
	if !utf8.ValidString(got) {
		t.Errorf("truncated string is not valid UTF-8: %q", got)
	}
	if want := strings.Repeat("ü", 39) + "…"; got != want {
		t.Errorf("truncate(%q, 40) = %q, want %q", long, got, want)
	}

	// A non-ASCII commit message must survive label formatting intact.
	commits := []commit.Commit{
		{Hash: "aaa1111", Message: strings.Repeat("日", 60)},
	}
	l := graph.FromLanes("demo", commits, lanes.Calculate(commits))
	if dot := ToDOT(l); !utf8.ValidString(dot) {
		t.Error("DOT output contains invalid UTF-8")
	}
}

func TestToDOTDeterminism(t *testing.T) {
	l := sampleLayout()
	if ToDOT(l) != ToDOT(l) {
		t.Error("ToDOT should be deterministic")
	}
}
