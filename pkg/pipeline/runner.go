package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gitlanes/gitlanes/pkg/cache"
	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/errors"
	"github.com/gitlanes/gitlanes/pkg/gitrepo"
	"github.com/gitlanes/gitlanes/pkg/graph"
	"github.com/gitlanes/gitlanes/pkg/lanes"
	"github.com/gitlanes/gitlanes/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	commits, logHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Commits = commits
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.CommitCount = len(commits)
	result.Stats.MergeCount = countMerges(commits)
	result.CacheInfo.LogHit = logHit

	// Content hash of the log feeds layout cache keys and API responses.
	if logData, err := marshalLog(commits); err == nil {
		result.LogHash = cache.Hash(logData)
	}

	r.Logger.Info("loaded commit log",
		"commits", len(commits),
		"merges", result.Stats.MergeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, commits, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"rows", len(layout.Rows),
		"max_lane", layout.MaxLane,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads the commit log with caching and returns cache
// hit info. The cache key embeds the repository HEAD, so any new commit
// invalidates the entry.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]commit.Commit, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	repo := opts.Repo
	if repo == nil {
		var err error
		repo, err = gitrepo.Open(opts.RepoPath)
		if err != nil {
			return nil, false, err
		}
	}

	observability.Pipeline().OnLoadStart(ctx, repo.Path(), opts.Ref)
	start := time.Now()

	head, err := repo.Head()
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, repo.Path(), opts.Ref, 0, time.Since(start), err)
		return nil, false, err
	}
	cacheKey := r.Keyer.LogKey(head, opts.LogKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if commits, err := unmarshalLog(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "log")
				observability.Pipeline().OnLoadComplete(ctx, repo.Path(), opts.Ref, len(commits), time.Since(start), nil)
				return commits, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "log")
	}

	commits, err := repo.ReadLog(ctx, opts.LogOptions())
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, repo.Path(), opts.Ref, 0, time.Since(start), err)
		return nil, false, err
	}

	if data, err := marshalLog(commits); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLog); err == nil {
			observability.Cache().OnCacheSet(ctx, "log", len(data))
		}
	}

	observability.Pipeline().OnLoadComplete(ctx, repo.Path(), opts.Ref, len(commits), time.Since(start), nil)
	return commits, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]commit.Commit, error) {
	commits, _, err := r.LoadWithCacheInfo(ctx, opts)
	return commits, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. The cache key is derived from the log content hash, so
// identical histories share layouts regardless of repository path.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, commits []commit.Commit, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)

	observability.Pipeline().OnLayoutStart(ctx, len(commits))
	start := time.Now()

	logData, err := marshalLog(commits)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, len(commits), time.Since(start), err)
		return graph.Layout{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize log for cache key")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(logData), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				observability.Pipeline().OnLayoutComplete(ctx, len(commits), time.Since(start), nil)
				return cached, true, nil
			}
			// Corrupt entry, fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	layout := graph.FromLanes(repoName(&opts), commits, lanes.Calculate(commits))

	if data, err := graph.MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	observability.Pipeline().OnLayoutComplete(ctx, len(commits), time.Since(start), nil)
	return layout, false, nil
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, commits []commit.Commit, opts Options) (graph.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, commits, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	layoutData, err := graph.MarshalLayout(layout)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to serve every requested format from cache.
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)
	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}

	rendered, err := renderFormats(layout, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func repoName(opts *Options) string {
	if opts.Repo != nil {
		return opts.Repo.Path()
	}
	return opts.RepoPath
}

func countMerges(commits []commit.Commit) int {
	n := 0
	for _, c := range commits {
		if c.IsMerge() {
			n++
		}
	}
	return n
}

// marshalLog serializes a commit log for caching and content hashing.
func marshalLog(commits []commit.Commit) ([]byte, error) {
	return json.Marshal(commits)
}

func unmarshalLog(data []byte) ([]commit.Commit, error) {
	var commits []commit.Commit
	if err := json.Unmarshal(data, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}
