package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/graph"
	"github.com/gitlanes/gitlanes/pkg/lanes"
)

func testLayout() graph.Layout {
	commits := []commit.Commit{
		{Hash: "aaa1111", Parents: []string{"bbb2222"}, Refs: []string{"main"}, Author: "Ada", Message: "second"},
		{Hash: "bbb2222", Message: "first"},
	}
	return graph.FromLanes("demo", commits, lanes.Calculate(commits))
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGraphModelNavigation(t *testing.T) {
	m := newGraphModel(testLayout())

	next, _ := m.Update(key("j"))
	m = next.(GraphModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	// Bottom of the list: cursor stays put.
	next, _ = m.Update(key("j"))
	m = next.(GraphModel)
	if m.Cursor != 1 {
		t.Errorf("cursor moved past last row: %d", m.Cursor)
	}

	next, _ = m.Update(key("k"))
	m = next.(GraphModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
}

func TestGraphModelQuit(t *testing.T) {
	m := newGraphModel(testLayout())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestGraphModelView(t *testing.T) {
	m := newGraphModel(testLayout())
	view := m.View()

	for _, want := range []string{"aaa1111", "bbb2222", "(main)", "second", "first"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestGraphModelDetails(t *testing.T) {
	m := newGraphModel(testLayout())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(GraphModel)
	if !m.ShowDetails {
		t.Fatal("enter should toggle details")
	}

	view := m.View()
	if !strings.Contains(view, "Ada") {
		t.Errorf("details should show the author:\n%s", view)
	}
	if !strings.Contains(view, "bbb2222") {
		t.Errorf("details should show the parent hash:\n%s", view)
	}
}
