package engine

import (
	"engine2d/internal/doc"
	"engine2d/internal/render"

	"go.uber.org/zap"
)

// Layer is an ordered subdivision of a scene.
type Layer interface {
	ID() ID
	Type() TypeTag
	Scene() *Scene
	Attach(s *Scene)
	Update(deltaTime float32)
	Render(s render.Surface)
	Serialize(el *doc.Element) bool
	Deserialize(el *doc.Element) bool
	Alive() bool
	Release()
}

// UpdateBlocker is implemented by overlay layers that freeze the layers
// beneath them while present.
type UpdateBlocker interface {
	BlocksUpdate() bool
}

// BaseLayer holds the state every layer shares and is meant to be
// embedded.
type BaseLayer struct {
	lifetime
	id    ID
	tag   TypeTag
	scene Weak[*Scene]
}

// NewBaseLayer returns the embedded state for a layer of type tag.
func NewBaseLayer(id ID, tag TypeTag) BaseLayer {
	if id.IsZero() {
		id = NewID()
	}
	return BaseLayer{id: id, tag: tag}
}

func (b *BaseLayer) ID() ID        { return b.id }
func (b *BaseLayer) Type() TypeTag { return b.tag }

func (b *BaseLayer) Scene() *Scene {
	s, _ := b.scene.Get()
	return s
}

func (b *BaseLayer) Attach(s *Scene) {
	b.scene = WeakOf(s)
}

func (b *BaseLayer) Update(deltaTime float32) {}
func (b *BaseLayer) Render(s render.Surface)  {}

func (b *BaseLayer) Serialize(el *doc.Element) bool {
	el.Set("id", b.id.String())
	el.Set("type", b.tag.String())
	return true
}

func (b *BaseLayer) Deserialize(el *doc.Element) bool { return true }

func (b *BaseLayer) Release() {
	b.release()
	b.scene.Reset()
}

// Runtime returns the owning scene's runtime, or nil when detached.
func (b *BaseLayer) Runtime() *Runtime {
	s := b.Scene()
	if s == nil {
		return nil
	}
	return s.Runtime()
}

func (b *BaseLayer) Logger() *zap.Logger {
	return b.Runtime().Logger()
}
