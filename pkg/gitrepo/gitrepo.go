// Package gitrepo reads commit logs from Git repositories using go-git.
//
// It is the log source feeding the layout engine: it opens a repository,
// decorates commits with the branch and tag names pointing at them, and
// produces the ordered commit list that
// [github.com/gitlanes/gitlanes/pkg/lanes.Calculate] consumes.
package gitrepo

import (
	stderrors "errors"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gitlanes/gitlanes/pkg/errors"
)

// Repository wraps a go-git repository.
type Repository struct {
	repo *git.Repository
	path string
}

// Open opens an existing Git repository at the given path.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.New(errors.ErrCodeRepoNotFound, "no git repository at %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open repository %s", path)
	}
	return &Repository{repo: repo, path: path}, nil
}

// New wraps an already-opened go-git repository. This is how in-memory
// repositories (tests, the API server's fixtures) enter the pipeline.
func New(repo *git.Repository, path string) *Repository {
	return &Repository{repo: repo, path: path}
}

// Path returns the path the repository was opened from.
func (r *Repository) Path() string { return r.path }

// Head returns the hash of the current HEAD commit.
func (r *Repository) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "resolve HEAD")
	}
	return ref.Hash().String(), nil
}

// resolve turns a ref string (branch name, tag, or hash) into a commit hash.
func (r *Repository) resolve(ref string) (plumbing.Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, errors.New(errors.ErrCodeInvalidRef, "cannot resolve ref %q", ref)
	}
	return *h, nil
}

// refEntry orders decorations: branches before tags, then by name, so the
// first ref name on a commit is stable across runs.
type refEntry struct {
	name  string
	isTag bool
}

// decorations maps each commit hash to the ref names pointing at it.
// Annotated tags are peeled to the commit they target.
func (r *Repository) decorations() (map[plumbing.Hash][]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list references")
	}

	entries := make(map[plumbing.Hash][]refEntry)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		switch {
		case name.IsBranch() || name.IsRemote():
			entries[ref.Hash()] = append(entries[ref.Hash()], refEntry{name: name.Short()})
		case name.IsTag():
			hash := ref.Hash()
			if tag, err := r.repo.TagObject(hash); err == nil {
				hash = tag.Target
			}
			entries[hash] = append(entries[hash], refEntry{name: name.Short(), isTag: true})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "walk references")
	}

	out := make(map[plumbing.Hash][]string, len(entries))
	for hash, list := range entries {
		sort.Slice(list, func(i, j int) bool {
			if list[i].isTag != list[j].isTag {
				return !list[i].isTag
			}
			return list[i].name < list[j].name
		})
		names := make([]string, len(list))
		for i, e := range list {
			names[i] = e.name
		}
		out[hash] = names
	}
	return out, nil
}
