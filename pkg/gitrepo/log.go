package gitrepo

import (
	"context"
	stderrors "errors"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/errors"
)

// DefaultMaxCommits bounds how much history one log read returns when the
// caller does not say otherwise. Long histories are paged by the caller,
// not streamed.
const DefaultMaxCommits = 500

// LogOptions configures a commit log read.
type LogOptions struct {
	// Ref is the starting point: a branch name, tag, or commit hash.
	// Empty means HEAD.
	Ref string

	// All walks from all references instead of a single starting point,
	// so side branches appear in the log.
	All bool

	// MaxCommits bounds the number of commits returned.
	// Zero means DefaultMaxCommits.
	MaxCommits int
}

// ReadLog returns commits in reverse-chronological committer-time order,
// decorated with the branch and tag names pointing at them. The returned
// order is the layout order: a commit precedes its parents.
func (r *Repository) ReadLog(ctx context.Context, opts LogOptions) ([]commit.Commit, error) {
	if opts.MaxCommits <= 0 {
		opts.MaxCommits = DefaultMaxCommits
	}

	logOpts := &git.LogOptions{Order: git.LogOrderCommitterTime}
	if opts.All {
		logOpts.All = true
	} else {
		ref := opts.Ref
		if ref == "" {
			head, err := r.repo.Head()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolve HEAD")
			}
			logOpts.From = head.Hash()
		} else {
			hash, err := r.resolve(ref)
			if err != nil {
				return nil, err
			}
			logOpts.From = hash
		}
	}

	decorations, err := r.decorations()
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(logOpts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read log")
	}
	defer iter.Close()

	var commits []commit.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(commits) >= opts.MaxCommits {
			return storer.ErrStop
		}

		parents := make([]string, len(c.ParentHashes))
		for i, p := range c.ParentHashes {
			parents[i] = p.String()
		}

		commits = append(commits, commit.Commit{
			Hash:    c.Hash.String(),
			Parents: parents,
			Refs:    decorations[c.Hash],
			Author:  c.Author.Name,
			Email:   c.Author.Email,
			Message: c.Message,
			When:    c.Committer.When,
		})
		return nil
	})
	if err != nil && !stderrors.Is(err, storer.ErrStop) {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "walk commits")
	}

	return commits, nil
}
