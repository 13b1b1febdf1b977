// Package pkg provides the core libraries for gitlanes commit-graph layout.
//
// # Overview
//
// Gitlanes reads a repository's commit history and turns it into a compact
// two-column graph: every commit gets a lane and a color, and the result
// renders to terminals, DOT/SVG, or JSON. The pkg directory is organized
// into these areas:
//
//  1. [lanes] - The layout engine (lane allocation + color assignment)
//  2. [gitrepo] - Repository access via go-git (log walking, decorations)
//  3. [render] - Output generators (terminal text, Graphviz DOT/SVG)
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [graph] - Serialization types for layouts
//
// # Architecture
//
// The typical data flow through gitlanes:
//
//	Repository (.git)
//	         ↓
//	    [gitrepo] package (read log + ref decorations)
//	         ↓
//	    [lanes] package (assign lanes and colors)
//	         ↓
//	    [graph] package (join into serializable rows)
//	         ↓
//	    [render] package (terminal / DOT / SVG output)
//
// # Quick Start
//
// Compute and print a commit graph:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/gitlanes/gitlanes/pkg/gitrepo"
//	    "github.com/gitlanes/gitlanes/pkg/graph"
//	    "github.com/gitlanes/gitlanes/pkg/lanes"
//	    "github.com/gitlanes/gitlanes/pkg/render/term"
//	)
//
//	// 1. Read the history
//	repo, _ := gitrepo.Open(".")
//	commits, _ := repo.ReadLog(context.Background(), gitrepo.LogOptions{})
//
//	// 2. Assign lanes and colors
//	g := lanes.Calculate(commits)
//
//	// 3. Join with commit metadata
//	l := graph.FromLanes(".", commits, g)
//
//	// 4. Render
//	term.Render(os.Stdout, l, term.Options{})
//
// # Main Packages
//
// [commit] - The commit record shared by every stage: hash, parents, refs,
// author, and message.
//
// [lanes] - The layout engine. A single pass over the commit list assigns
// each commit a lane (at most two columns) and a stable color derived from
// branch names, with colors propagated along first-parent chains.
//
// [gitrepo] - Repository access built on go-git. Walks the log in
// committer-time order and collects branch/tag decorations per commit.
//
// [graph] - Serialization types for layouts (JSON), shared by the CLI, the
// HTTP API, and the cache.
//
// [render/term] - Colored terminal output, one line per commit.
//
// [render/dot] - Graphviz DOT output and in-process SVG rendering.
//
// [pipeline] - Complete layout pipeline (load → layout → render) used by
// CLI and API. Ensures consistent behavior across all entry points, with
// per-stage caching keyed by content hashes.
//
// [cache] - Cache backends: file-based for the CLI, Redis for the server,
// and a null cache to disable caching.
//
// [errors] - Structured errors with machine-readable codes, used to map
// failures to exit codes and HTTP statuses.
//
// [observability] - Hook points for metrics collection with no-op defaults.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/lanes/...    # Specific package
//
// [commit]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/commit
// [lanes]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/lanes
// [gitrepo]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/gitrepo
// [graph]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/graph
// [render/term]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/render/term
// [render/dot]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/cache
// [errors]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/errors
// [observability]: https://pkg.go.dev/github.com/gitlanes/gitlanes/pkg/observability
package pkg
