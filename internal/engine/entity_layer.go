package engine

import (
	"fmt"

	"engine2d/internal/doc"
	"engine2d/internal/render"

	"go.uber.org/zap"
)

var EntityLayerType = Tag("EntityLayer")

// EntityLayer owns an ordered set of entities. Zombies are swept at the
// start of Update, before any entity runs.
type EntityLayer struct {
	BaseLayer
	entities []*Entity
	index    map[ID]*Entity
}

// NewEntityLayer returns an empty entity layer.
func NewEntityLayer(id ID) *EntityLayer {
	return &EntityLayer{
		BaseLayer: NewBaseLayer(id, EntityLayerType),
		entities:  make([]*Entity, 0),
		index:     make(map[ID]*Entity),
	}
}

// PushEntity appends e. Ids are unique per layer, zombies included until
// they are swept.
func (l *EntityLayer) PushEntity(e *Entity) error {
	if e == nil {
		return nil
	}
	if _, exists := l.index[e.ID()]; exists {
		return fmt.Errorf("%w: entity %q in layer %q", ErrDuplicateID, e.ID(), l.ID())
	}
	e.layer = WeakOf(l)
	l.entities = append(l.entities, e)
	l.index[e.ID()] = e
	return nil
}

// Entity looks an entity up by id. Zombies are returned until swept.
func (l *EntityLayer) Entity(id ID) *Entity {
	return l.index[id]
}

// RemoveEntity kills the entity; it leaves the layer at the next sweep.
func (l *EntityLayer) RemoveEntity(id ID) bool {
	e, ok := l.index[id]
	if !ok {
		return false
	}
	e.Kill()
	return true
}

// Entities returns the entities in push order, zombies included until
// swept. The slice must not be modified.
func (l *EntityLayer) Entities() []*Entity {
	return l.entities
}

// Len counts entities, including zombies not yet swept.
func (l *EntityLayer) Len() int { return len(l.entities) }

// Update destroys the zombies left by the previous frame, then updates
// the survivors in push order.
func (l *EntityLayer) Update(deltaTime float32) {
	l.sweep()
	for _, e := range l.entities {
		if !e.IsZombie() {
			e.Update(deltaTime)
		}
	}
}

// sweep drops zombies. It runs only at the top of Update, never while the
// entity slice is being ranged over.
func (l *EntityLayer) sweep() {
	zombies := 0
	for _, e := range l.entities {
		if e.IsZombie() {
			zombies++
		}
	}
	if zombies == 0 {
		return
	}

	live := make([]*Entity, 0, len(l.entities)-zombies)
	for _, e := range l.entities {
		if !e.IsZombie() {
			live = append(live, e)
			continue
		}
		delete(l.index, e.ID())
		e.destroy()
	}
	l.entities = live
	l.Logger().Debug("swept zombie entities",
		zap.String("layer", l.ID().String()),
		zap.Int("count", zombies))
}

// Render draws live entities in push order.
func (l *EntityLayer) Render(s render.Surface) {
	s.BeginWorld()
	for _, e := range l.entities {
		if !e.IsZombie() {
			e.Render(s)
		}
	}
	s.EndWorld()
}

// Release destroys every entity, then the layer.
func (l *EntityLayer) Release() {
	for _, e := range l.entities {
		e.destroy()
	}
	l.entities = nil
	l.index = make(map[ID]*Entity)
	l.BaseLayer.Release()
}

func (l *EntityLayer) Serialize(el *doc.Element) bool {
	l.BaseLayer.Serialize(el)
	for _, e := range l.entities {
		if e.IsZombie() {
			continue
		}
		child := el.Add("entity")
		if !e.Serialize(child) {
			el.Remove(child)
		}
	}
	return true
}

// Deserialize creates one entity per "entity" child. An entity that fails
// is destroyed and the whole layer reports failure.
func (l *EntityLayer) Deserialize(el *doc.Element) bool {
	rt := l.Runtime()
	if rt == nil || rt.Factory == nil {
		return false
	}
	log := rt.Logger()

	for _, child := range el.ChildrenNamed("entity") {
		tag := Tag(child.String("type", EntityType.String()))
		id := ID(child.String("id", ""))

		e, err := rt.Factory.CreateEntity(tag, id)
		if err != nil {
			log.Warn("cannot create entity", zap.String("layer", l.ID().String()), zap.Error(err))
			return false
		}
		e.layer = WeakOf(l)
		if !e.Deserialize(child) {
			e.destroy()
			return false
		}
		if err := l.PushEntity(e); err != nil {
			log.Warn("cannot add entity", zap.Error(err))
			e.destroy()
			return false
		}
	}
	return true
}
