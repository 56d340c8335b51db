package engine

import (
	"engine2d/internal/doc"
	"engine2d/internal/render"

	"go.uber.org/zap"
)

// EntityType tags plain entities.
var EntityType = Tag("Entity")

// Entity is a named container of components. It belongs to one
// EntityLayer, which is the only place it is ever destroyed.
//
// Kill marks the entity as a zombie; the owning layer removes it at the
// start of its next Update, so callbacks running over the same collection
// never see it vanish underneath them.
type Entity struct {
	lifetime
	id         ID
	tag        TypeTag
	layer      Weak[*EntityLayer]
	components []Component
	zombie     bool
}

// NewEntity returns an entity with no components.
func NewEntity(id ID, tag TypeTag) *Entity {
	if id.IsZero() {
		id = NewID()
	}
	if tag.IsZero() {
		tag = EntityType
	}
	return &Entity{
		id:         id,
		tag:        tag,
		components: make([]Component, 0),
	}
}

func (e *Entity) ID() ID        { return e.id }
func (e *Entity) Type() TypeTag { return e.tag }

// Layer returns the owning layer, nil when detached or released.
func (e *Entity) Layer() *EntityLayer {
	l, _ := e.layer.Get()
	return l
}

// Scene returns the scene of the owning layer, or nil.
func (e *Entity) Scene() *Scene {
	l := e.Layer()
	if l == nil {
		return nil
	}
	return l.Scene()
}

func (e *Entity) Runtime() *Runtime {
	s := e.Scene()
	if s == nil {
		return nil
	}
	return s.Runtime()
}

// PushComponent appends c; the last pushed component is the one
// PopComponent removes. Duplicate ids are a caller error and are not
// checked here.
func (e *Entity) PushComponent(c Component) {
	if c == nil || !c.Alive() {
		return
	}
	c.Attach(e, c)
	e.components = append(e.components, c)
}

// PopComponent removes and destroys the most recently pushed component.
func (e *Entity) PopComponent() Component {
	if len(e.components) == 0 {
		return nil
	}
	i := len(e.components) - 1
	c := e.components[i]
	e.removeAt(i)
	return c
}

// RemoveComponent removes the component with the given id. Returns false
// if there is none.
func (e *Entity) RemoveComponent(id ID) bool {
	for i, c := range e.components {
		if c.ID() == id {
			e.removeAt(i)
			return true
		}
	}
	return false
}

// RemoveComponentRef removes c by identity.
func (e *Entity) RemoveComponentRef(c Component) bool {
	for i, existing := range e.components {
		if existing == c {
			e.removeAt(i)
			return true
		}
	}
	return false
}

// removeAt builds a new slice so a range over the old one, such as an
// Update in progress, stays valid.
func (e *Entity) removeAt(i int) {
	c := e.components[i]
	next := make([]Component, 0, len(e.components)-1)
	next = append(next, e.components[:i]...)
	next = append(next, e.components[i+1:]...)
	e.components = next
	destroyComponent(c)
}

func destroyComponent(c Component) {
	if !c.Alive() {
		return
	}
	if d, ok := c.(Destroyer); ok {
		d.OnDestroy()
	}
	c.Release()
}

// Component looks a component up by id.
func (e *Entity) Component(id ID) Component {
	for _, c := range e.components {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// ComponentOfType returns the first component in push order whose tag is
// tag, or nil. Components use it to find siblings that may not have been
// pushed yet, so a nil result is expected and retried on a later update.
func (e *Entity) ComponentOfType(tag TypeTag) Component {
	for _, c := range e.components {
		if c.Type().Is(tag) {
			return c
		}
	}
	return nil
}

// Components returns the components in push order. The slice must not be
// modified.
func (e *Entity) Components() []Component {
	return e.components
}

// Update updates each component in push order.
func (e *Entity) Update(deltaTime float32) {
	if !e.Alive() {
		return
	}
	for _, c := range e.components {
		if c.Alive() {
			c.Update(deltaTime)
		}
	}
}

// Render draws every Renderable component in push order.
func (e *Entity) Render(s render.Surface) {
	if !e.Alive() {
		return
	}
	for _, c := range e.components {
		if !c.Alive() {
			continue
		}
		if r, ok := c.(Renderable); ok {
			r.Render(s)
		}
	}
}

// Kill marks the entity for removal at the owning layer's next sweep.
// Idempotent.
func (e *Entity) Kill() {
	e.zombie = true
}

// IsZombie reports whether Kill has been called.
func (e *Entity) IsZombie() bool { return e.zombie }

// destroy releases every component, last pushed first, then the entity.
func (e *Entity) destroy() {
	if !e.Alive() {
		return
	}
	for i := len(e.components) - 1; i >= 0; i-- {
		destroyComponent(e.components[i])
	}
	e.components = nil
	e.release()
	e.layer.Reset()
}

// Serialize writes one "component" child per component. Components whose
// Serialize returns false are left out.
func (e *Entity) Serialize(el *doc.Element) bool {
	el.Set("id", e.id.String())
	el.Set("type", e.tag.String())
	for _, c := range e.components {
		if !c.Alive() {
			continue
		}
		child := el.Add("component")
		if !c.Serialize(child) {
			el.Remove(child)
		}
	}
	return true
}

// Deserialize creates a component per "component" child through the
// runtime's factory. Returns false on the first component that cannot be
// created or rejects its element; that component is discarded.
func (e *Entity) Deserialize(el *doc.Element) bool {
	rt := e.Runtime()
	if rt == nil || rt.Factory == nil {
		return false
	}
	log := rt.Logger()

	for _, child := range el.ChildrenNamed("component") {
		tag := Tag(child.String("type", ""))
		id := ID(child.String("id", ""))

		c, err := rt.Factory.CreateComponent(tag, id)
		if err != nil {
			log.Warn("cannot create component",
				zap.String("entity", e.id.String()),
				zap.String("component", id.String()),
				zap.Error(err))
			return false
		}
		c.Attach(e, c)
		if !c.Deserialize(child) {
			log.Warn("component rejected its document",
				zap.String("entity", e.id.String()),
				zap.String("component", id.String()),
				zap.String("type", tag.String()))
			c.Release()
			return false
		}
		e.PushComponent(c)
	}
	return true
}
