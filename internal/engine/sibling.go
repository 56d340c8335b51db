package engine

// Sibling returns the component of type tag on owner's entity, caching a
// weak handle in cache. Until the sibling exists it returns false and the
// next call looks again; once bound, only liveness is rechecked.
func Sibling[T Component](owner Component, tag TypeTag, cache *Weak[T]) (T, bool) {
	if c, ok := cache.Get(); ok {
		return c, true
	}
	var zero T
	if owner == nil {
		return zero, false
	}
	e := owner.Entity()
	if e == nil {
		return zero, false
	}
	typed, ok := e.ComponentOfType(tag).(T)
	if !ok {
		return zero, false
	}
	*cache = WeakOf(typed)
	return typed, true
}
