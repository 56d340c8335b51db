package physics

import (
	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var CollisionLayerType = engine.Tag("CollisionLayer")

// DefaultLayerID is the id colliders look for first.
const DefaultLayerID engine.ID = "collision"

// Stats describes the last collision pass.
type Stats struct {
	Bodies int // live registered colliders
	Tested int // pairs tested
	Hits   int // pairs that collided
	Purged int // expired registrations dropped
}

// CollisionLayer keeps weak handles to the active colliders of its scene
// and tests every pair once per update. It owns no entities.
type CollisionLayer struct {
	engine.BaseLayer
	Debug bool // draw collider bounds

	bodies []engine.Weak[CollisionBody]
	stats  Stats
}

// NewCollisionLayer returns an empty registry. A zero id becomes
// DefaultLayerID.
func NewCollisionLayer(id engine.ID) *CollisionLayer {
	if id.IsZero() {
		id = DefaultLayerID
	}
	return &CollisionLayer{
		BaseLayer: engine.NewBaseLayer(id, CollisionLayerType),
		bodies:    make([]engine.Weak[CollisionBody], 0),
	}
}

// Register adds b. Returns false if b is already registered or dead.
func (l *CollisionLayer) Register(b CollisionBody) bool {
	if b == nil || !b.Alive() || l.Contains(b) {
		return false
	}
	l.bodies = append(l.bodies, engine.WeakOf(b))
	return true
}

// Deregister removes b. The registry slice is replaced, never edited, so
// a pass in progress keeps iterating its own copy.
func (l *CollisionLayer) Deregister(b CollisionBody) bool {
	for i, w := range l.bodies {
		if got, ok := w.Get(); !ok || got != b {
			continue
		}
		next := make([]engine.Weak[CollisionBody], 0, len(l.bodies)-1)
		next = append(next, l.bodies[:i]...)
		next = append(next, l.bodies[i+1:]...)
		l.bodies = next
		return true
	}
	return false
}

// Contains reports whether b is registered.
func (l *CollisionLayer) Contains(b CollisionBody) bool {
	for _, w := range l.bodies {
		if got, ok := w.Get(); ok && got == b {
			return true
		}
	}
	return false
}

// Registered returns the live colliders in registration order.
func (l *CollisionLayer) Registered() []CollisionBody {
	live := make([]CollisionBody, 0, len(l.bodies))
	for _, w := range l.bodies {
		if b, ok := w.Get(); ok {
			live = append(live, b)
		}
	}
	return live
}

func (l *CollisionLayer) Stats() Stats { return l.stats }

// purge drops handles whose collider has been released.
func (l *CollisionLayer) purge() int {
	live := 0
	for _, w := range l.bodies {
		if w.Valid() {
			live++
		}
	}
	purged := len(l.bodies) - live
	if purged == 0 {
		return 0
	}
	next := make([]engine.Weak[CollisionBody], 0, live)
	for _, w := range l.bodies {
		if w.Valid() {
			next = append(next, w)
		}
	}
	l.bodies = next
	return purged
}

// Update tests each unordered pair of registered colliders once, in
// registration order, and calls Collision on both members of every pair
// that overlaps. Pairs are skipped when either side is inactive, dead or
// on a zombie entity, and when both sides share an entity.
func (l *CollisionLayer) Update(deltaTime float32) {
	stats := Stats{Purged: l.purge()}
	if stats.Purged > 0 {
		l.Logger().Debug("purged expired colliders",
			zap.String("layer", l.ID().String()),
			zap.Int("count", stats.Purged))
	}

	bodies := l.bodies
	stats.Bodies = len(bodies)
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, ok := bodies[i].Get()
			if !ok || !participates(a) {
				break
			}
			b, ok := bodies[j].Get()
			if !ok || !participates(b) || a.Entity() == b.Entity() {
				continue
			}

			stats.Tested++
			dataA, dataB, hit := collide(a.Base(), b.Base(), deltaTime)
			if !hit {
				continue
			}
			stats.Hits++
			a.Collision(b, deltaTime, dataA)
			b.Collision(a, deltaTime, dataB)
		}
	}
	l.stats = stats
}

func participates(b CollisionBody) bool {
	if !b.Base().Active {
		return false
	}
	e := b.Entity()
	return e != nil && !e.IsZombie()
}

// Render outlines registered colliders when Debug is set.
func (l *CollisionLayer) Render(s render.Surface) {
	if !l.Debug {
		return
	}
	s.BeginWorld()
	for _, b := range l.Registered() {
		if box, ok := b.Base().Bounds(); ok {
			s.DrawRectLines(box.Rect(), 1, rl.Lime)
		}
	}
	s.EndWorld()
}

// Release forgets every registration. Colliders find the layer gone
// through their weak handles.
func (l *CollisionLayer) Release() {
	l.bodies = nil
	l.BaseLayer.Release()
}

func (l *CollisionLayer) Serialize(el *doc.Element) bool {
	l.BaseLayer.Serialize(el)
	if l.Debug {
		el.SetBool("debug", true)
	}
	return true
}

// Deserialize restores settings only; colliders register themselves when
// they next update.
func (l *CollisionLayer) Deserialize(el *doc.Element) bool {
	l.Debug, _ = el.Bool("debug")
	return true
}

// Register adds the collision layer and collider types to f.
func Register(f *engine.Factory) {
	f.RegisterLayer(CollisionLayerType, func(id engine.ID) engine.Layer {
		return NewCollisionLayer(id)
	})
	f.RegisterComponent(ColliderType, func(id engine.ID) engine.Component {
		return NewCollider(id, "")
	})
}
