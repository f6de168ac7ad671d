package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments (or tenants) can share one Redis instance.
//
//	keyer := cache.NewScopedKeyer(nil, "cabinetry:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with a prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(inputHash string) string {
	return k.prefix + k.inner.LayoutKey(inputHash)
}

// EvaluationKey implements Keyer.
func (k *ScopedKeyer) EvaluationKey(inputHash string, opts EvaluationKeyOpts) string {
	return k.prefix + k.inner.EvaluationKey(inputHash, opts)
}
