package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/gitlanes/gitlanes/pkg/cache"
	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/gitrepo"
	"github.com/gitlanes/gitlanes/pkg/graph"
)

// testRepo builds a small in-memory history: a merge of a feature branch
// into master, three commits plus the merge.
func testRepo(t *testing.T) *gitrepo.Repository {
	t.Helper()

	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	sig := func(offset int) *object.Signature {
		return &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  base.Add(time.Duration(offset) * time.Minute),
		}
	}
	write := func(name, content string) {
		if err := util.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	write("a.txt", "one")
	if _, err := wt.Commit("initial commit", &git.CommitOptions{Author: sig(0), Committer: sig(0)}); err != nil {
		t.Fatalf("commit c1: %v", err)
	}

	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
	}); err != nil {
		t.Fatalf("checkout feature: %v", err)
	}
	write("b.txt", "two")
	f1, err := wt.Commit("feature work", &git.CommitOptions{Author: sig(1), Committer: sig(1)})
	if err != nil {
		t.Fatalf("commit f1: %v", err)
	}

	if err := wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("master"),
	}); err != nil {
		t.Fatalf("checkout master: %v", err)
	}
	write("a.txt", "one more")
	c2, err := wt.Commit("master work", &git.CommitOptions{Author: sig(2), Committer: sig(2)})
	if err != nil {
		t.Fatalf("commit c2: %v", err)
	}

	if _, err := wt.Commit("merge feature", &git.CommitOptions{
		Author:            sig(3),
		Committer:         sig(3),
		Parents:           []plumbing.Hash{c2, f1},
		AllowEmptyCommits: true,
	}); err != nil {
		t.Fatalf("commit merge: %v", err)
	}

	return gitrepo.New(repo, "mem://test")
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("file cache: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestExecutePipeline(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Repo:    testRepo(t),
		Formats: []string{FormatJSON, FormatDOT, FormatTerm},
		NoColor: true,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.CommitCount != 4 {
		t.Errorf("commit count = %d, want 4", result.Stats.CommitCount)
	}
	if result.Stats.MergeCount != 1 {
		t.Errorf("merge count = %d, want 1", result.Stats.MergeCount)
	}
	if len(result.Layout.Rows) != 4 {
		t.Errorf("layout rows = %d, want 4", len(result.Layout.Rows))
	}
	if result.LogHash == "" {
		t.Error("LogHash should be set")
	}
	for _, format := range []string{FormatJSON, FormatDOT, FormatTerm} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("artifact %q is empty", format)
		}
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact should start with digraph")
	}
	if result.CacheInfo.LogHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("first run should miss all caches: %+v", result.CacheInfo)
	}
}

func TestExecuteCacheHits(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	opts := Options{Repo: testRepo(t), Formats: []string{FormatJSON}}
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("first run: %v", err)
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !result.CacheInfo.LogHit {
		t.Error("second run should hit the log cache")
	}
	if !result.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !result.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	opts := Options{Repo: testRepo(t), Formats: []string{FormatJSON}}
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("first run: %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh run: %v", err)
	}
	if result.CacheInfo.LogHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh run should bypass caches: %+v", result.CacheInfo)
	}
}

func TestComputeLayoutStandalone(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	commits := []commit.Commit{
		{Hash: "aaa1111", Parents: []string{"bbb2222"}, Message: "second"},
		{Hash: "bbb2222", Message: "first"},
	}
	layout, err := r.ComputeLayout(context.Background(), commits, Options{})
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}
	if len(layout.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(layout.Rows))
	}
	if layout.Rows[0].Lane != 0 || layout.Rows[1].Lane != 0 {
		t.Errorf("linear history should stay on lane 0: %+v", layout.Rows)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	_, err := r.Render(context.Background(), graph.Layout{}, Options{Formats: []string{"png"}})
	if err == nil {
		t.Error("unknown format should fail")
	}
}
