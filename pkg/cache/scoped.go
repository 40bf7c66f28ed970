package cache

// ScopedKeyer prefixes every key of an inner Keyer with a namespace, so
// several deployments can share one Redis database:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer;
// an empty prefix returns inner unchanged.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix == "" {
		return inner
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// AnalysisKey implements Keyer.
func (k *ScopedKeyer) AnalysisKey(provider, model, script string) string {
	return k.prefix + k.inner.AnalysisKey(provider, model, script)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(configHash, opts)
}
