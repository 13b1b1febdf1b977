// Package pipeline provides the core layout pipeline for gitlanes.
//
// This package implements the complete load → layout → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the commit log and ref decorations from a repository
//  2. Layout: Assign lanes and colors to every commit
//  3. Render: Generate output in various formats (JSON, DOT, SVG, text)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    RepoPath: ".",
//	    Formats:  []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Load only
//	commits, err := runner.Load(ctx, opts)
//
//	// Layout with existing commits
//	layout, err := runner.ComputeLayout(ctx, commits, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gitlanes/gitlanes/pkg/cache"
	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/errors"
	"github.com/gitlanes/gitlanes/pkg/gitrepo"
	"github.com/gitlanes/gitlanes/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultMaxCommits is the maximum number of commits the pipeline loads.
const DefaultMaxCommits = gitrepo.DefaultMaxCommits

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatTerm = "term"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatTerm: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	RepoPath   string `json:"repo_path,omitempty"`
	Ref        string `json:"ref,omitempty"`
	All        bool   `json:"all,omitempty"`
	MaxCommits int    `json:"max_commits,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	NoColor    bool     `json:"no_color,omitempty"`
	ShowAuthor bool     `json:"show_author,omitempty"`
	ShowTime   bool     `json:"show_time,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger         `json:"-"`
	Repo   *gitrepo.Repository `json:"-"` // pre-opened repository, overrides RepoPath

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Commits is the loaded commit log, newest first.
	Commits []commit.Commit

	// LogHash is the content hash of the serialized commit log.
	LogHash string

	// Layout is the computed lane layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CommitCount int
	MergeCount  int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LogHit    bool // Whether the commit log came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, term)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading the commit log.
func (o *Options) ValidateForLoad() error {
	if o.Repo == nil && o.RepoPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "repository path is required")
	}
	if o.MaxCommits < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_commits must be non-negative")
	}
	if o.MaxCommits == 0 {
		o.MaxCommits = DefaultMaxCommits
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LogKeyOpts returns cache key options for the commit log.
func (o *Options) LogKeyOpts() cache.LogKeyOpts {
	return cache.LogKeyOpts{
		Ref:        o.Ref,
		All:        o.All,
		MaxCommits: o.MaxCommits,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Ref:        o.Ref,
		All:        o.All,
		MaxCommits: o.MaxCommits,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}

// LogOptions converts the pipeline options to repository log options.
func (o *Options) LogOptions() gitrepo.LogOptions {
	return gitrepo.LogOptions{
		Ref:        o.Ref,
		All:        o.All,
		MaxCommits: o.MaxCommits,
	}
}
