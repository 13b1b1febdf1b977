// Package commit defines the commit record consumed by the layout engine.
//
// Records are produced by a log source (see [github.com/gitlanes/gitlanes/pkg/gitrepo])
// in the order they should be laid out, typically reverse-chronological so a
// commit precedes its parents. The engine trusts this ordering and never
// re-sorts the input.
package commit

import "time"

// Commit is one recorded change in a version-control history.
//
// Hash values are unique within one input sequence. A Parents entry refers
// to a commit that either appears later in the same sequence or is absent
// from it entirely (history boundary).
type Commit struct {
	// Hash is the unique identifier of the commit.
	Hash string

	// Parents holds the parent hashes in order. Empty for a root commit.
	// The first entry is the mainline parent; any further entries are
	// merge-source parents.
	Parents []string

	// Refs holds the branch and tag names attached to this commit, in
	// decoration order. May be empty.
	Refs []string

	// Descriptive fields carried for display. The layout engine ignores them.
	Author  string
	Email   string
	Message string
	When    time.Time
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool { return len(c.Parents) > 1 }

// IsRoot reports whether the commit has no parents.
func (c Commit) IsRoot() bool { return len(c.Parents) == 0 }

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	for i := 0; i < len(c.Message); i++ {
		if c.Message[i] == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}

// ShortHash returns the abbreviated hash used for display (first 7 chars).
func (c Commit) ShortHash() string {
	if len(c.Hash) <= 7 {
		return c.Hash
	}
	return c.Hash[:7]
}
