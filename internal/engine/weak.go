package engine

// Lifetime is implemented by objects that can be released by their owner.
// Once released, Alive reports false forever.
type Lifetime interface {
	Alive() bool
}

type lifetime struct {
	released bool
}

func (l *lifetime) Alive() bool { return !l.released }

func (l *lifetime) release() { l.released = true }

// Weak is a non-owning handle. Get reports false once the target has been
// released by its owner, so every cross reference that is not an
// ownership edge goes through one of these.
//
// Example:
//
//	type Follower struct {
//	    engine.BaseComponent
//	    target engine.Weak[*engine.Entity]
//	}
//
//	func (f *Follower) Update(dt float32) {
//	    if e, ok := f.target.Get(); ok {
//	        // e is still owned by its layer
//	    }
//	}
type Weak[T Lifetime] struct {
	target T
	set    bool
}

// WeakOf returns a handle to target. target must not be nil.
func WeakOf[T Lifetime](target T) Weak[T] {
	return Weak[T]{target: target, set: true}
}

// Get returns the target while it is alive.
func (w Weak[T]) Get() (T, bool) {
	if !w.set || !w.target.Alive() {
		var zero T
		return zero, false
	}
	return w.target, true
}

// Valid reports whether Get would succeed.
func (w Weak[T]) Valid() bool {
	return w.set && w.target.Alive()
}

// Reset empties the handle.
func (w *Weak[T]) Reset() {
	var zero T
	w.target = zero
	w.set = false
}
