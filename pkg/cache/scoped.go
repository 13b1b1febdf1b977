package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server uses this to keep per-repository cache entries apart when
// several repositories share one Redis instance.
//
// Example usage:
//
//	repoKeyer := NewScopedKeyer(NewDefaultKeyer(), "repo:demo:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LogKey generates a prefixed key for commit-log caching.
func (k *ScopedKeyer) LogKey(head string, opts LogKeyOpts) string {
	return k.prefix + k.inner.LogKey(head, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(logHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(logHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
