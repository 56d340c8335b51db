package engine

import (
	"engine2d/internal/doc"
	"engine2d/internal/render"

	"go.uber.org/zap"
)

// Component is a unit of behaviour owned by exactly one Entity.
type Component interface {
	ID() ID
	Type() TypeTag
	Update(deltaTime float32)
	Serialize(el *doc.Element) bool
	Deserialize(el *doc.Element) bool

	// Attach binds the component to its entity. self is the outermost
	// value the entity stores, so embedded bases can hand it to others.
	Attach(e *Entity, self Component)
	Entity() *Entity
	Self() Component
	Alive() bool
	Release()
}

// Renderable is implemented by components that draw.
type Renderable interface {
	Render(s render.Surface)
}

// Destroyer is implemented by components that need to clean up when they
// are removed from their entity or the entity is destroyed.
type Destroyer interface {
	OnDestroy()
}

// BaseComponent provides the default Component implementation. Concrete
// components embed it and override what they need.
type BaseComponent struct {
	lifetime
	id     ID
	tag    TypeTag
	entity Weak[*Entity]
	self   Component
}

// NewBaseComponent returns the embedded state for a component of type tag.
func NewBaseComponent(id ID, tag TypeTag) BaseComponent {
	if id.IsZero() {
		id = NewID()
	}
	return BaseComponent{id: id, tag: tag}
}

func (b *BaseComponent) ID() ID        { return b.id }
func (b *BaseComponent) Type() TypeTag { return b.tag }

func (b *BaseComponent) Update(deltaTime float32) {}

// Serialize writes the id and type. Overrides call it first.
func (b *BaseComponent) Serialize(el *doc.Element) bool {
	el.Set("id", b.id.String())
	el.Set("type", b.tag.String())
	return true
}

// Deserialize adopts the id from el when present and always succeeds.
func (b *BaseComponent) Deserialize(el *doc.Element) bool {
	if id, ok := el.Get("id"); ok && id != "" {
		b.id = ID(id)
	}
	return true
}

// Attach binds the component to its entity. self is the outermost value
// so embedded bases can find the concrete component.
func (b *BaseComponent) Attach(e *Entity, self Component) {
	b.entity = WeakOf(e)
	b.self = self
}

// Entity returns the owning entity, or nil once either side is released.
func (b *BaseComponent) Entity() *Entity {
	if !b.Alive() {
		return nil
	}
	e, _ := b.entity.Get()
	return e
}

// Self returns the concrete component this base is embedded in.
func (b *BaseComponent) Self() Component { return b.self }

// Release marks the component dead and drops its entity.
func (b *BaseComponent) Release() {
	b.release()
	b.entity.Reset()
	b.self = nil
}

// Runtime walks component → entity → layer → scene. nil while any link is
// missing.
func (b *BaseComponent) Runtime() *Runtime {
	e := b.Entity()
	if e == nil {
		return nil
	}
	s := e.Scene()
	if s == nil {
		return nil
	}
	return s.Runtime()
}

// Logger never returns nil.
func (b *BaseComponent) Logger() *zap.Logger {
	return b.Runtime().Logger()
}

// GetComponent returns the first component of e (in push order) that is a T.
func GetComponent[T Component](e *Entity) T {
	var zero T
	if e == nil {
		return zero
	}
	for _, c := range e.components {
		if !c.Alive() {
			continue
		}
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}
