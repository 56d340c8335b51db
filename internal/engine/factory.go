package engine

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownType = errors.New("unknown type")
	ErrDuplicateID = errors.New("duplicate id")
)

type (
	SceneConstructor     func(id ID, rt *Runtime) *Scene
	LayerConstructor     func(id ID) Layer
	EntityConstructor    func(id ID) *Entity
	ComponentConstructor func(id ID) Component
)

type registration[C any] struct {
	tag  TypeTag
	ctor C
}

// registry keys constructors by tag hash. The stored tag catches two names
// that hash alike.
type registry[C any] map[uint64]registration[C]

func (r registry[C]) add(kind string, tag TypeTag, ctor C) {
	if prev, exists := r[tag.Hash()]; exists {
		if prev.tag.Is(tag) {
			panic(fmt.Sprintf("%s type %q already registered", kind, tag))
		}
		panic(fmt.Sprintf("%s type %q collides with %q", kind, tag, prev.tag))
	}
	r[tag.Hash()] = registration[C]{tag: tag, ctor: ctor}
}

func (r registry[C]) get(tag TypeTag) (C, bool) {
	reg, ok := r[tag.Hash()]
	if !ok || !reg.tag.Is(tag) {
		var zero C
		return zero, false
	}
	return reg.ctor, true
}

// Factory maps type tags to constructors so documents can name concrete
// types without the engine knowing about them. Each package that defines
// layers or components exposes a Register(*Factory) function.
type Factory struct {
	scenes     registry[SceneConstructor]
	layers     registry[LayerConstructor]
	entities   registry[EntityConstructor]
	components registry[ComponentConstructor]
}

// NewFactory returns a factory that already knows the plain Scene,
// EntityLayer and Entity types.
func NewFactory() *Factory {
	f := &Factory{
		scenes:     make(registry[SceneConstructor]),
		layers:     make(registry[LayerConstructor]),
		entities:   make(registry[EntityConstructor]),
		components: make(registry[ComponentConstructor]),
	}
	f.RegisterScene(SceneType, func(id ID, rt *Runtime) *Scene {
		return NewScene(id, SceneType, rt)
	})
	f.RegisterLayer(EntityLayerType, func(id ID) Layer {
		return NewEntityLayer(id)
	})
	f.RegisterEntity(EntityType, func(id ID) *Entity {
		return NewEntity(id, EntityType)
	})
	return f
}

// RegisterScene adds a scene constructor. Registering a tag twice panics.
func (f *Factory) RegisterScene(tag TypeTag, ctor SceneConstructor) {
	f.scenes.add("scene", tag, ctor)
}

// RegisterLayer adds a layer constructor. Registering a tag twice panics.
func (f *Factory) RegisterLayer(tag TypeTag, ctor LayerConstructor) {
	f.layers.add("layer", tag, ctor)
}

// RegisterEntity adds an entity constructor. Registering a tag twice panics.
func (f *Factory) RegisterEntity(tag TypeTag, ctor EntityConstructor) {
	f.entities.add("entity", tag, ctor)
}

// RegisterComponent adds a component constructor. Registering a tag twice
// panics.
func (f *Factory) RegisterComponent(tag TypeTag, ctor ComponentConstructor) {
	f.components.add("component", tag, ctor)
}

// CreateScene builds a scene of the given type bound to rt.
func (f *Factory) CreateScene(tag TypeTag, id ID, rt *Runtime) (*Scene, error) {
	ctor, ok := f.scenes.get(tag)
	if !ok {
		return nil, fmt.Errorf("%w: scene %q", ErrUnknownType, tag)
	}
	return ctor(id, rt), nil
}

// CreateLayer builds an empty layer of the given type.
func (f *Factory) CreateLayer(tag TypeTag, id ID) (Layer, error) {
	ctor, ok := f.layers.get(tag)
	if !ok {
		return nil, fmt.Errorf("%w: layer %q", ErrUnknownType, tag)
	}
	return ctor(id), nil
}

// CreateEntity builds an entity with no components.
func (f *Factory) CreateEntity(tag TypeTag, id ID) (*Entity, error) {
	ctor, ok := f.entities.get(tag)
	if !ok {
		return nil, fmt.Errorf("%w: entity %q", ErrUnknownType, tag)
	}
	return ctor(id), nil
}

// CreateComponent builds an unattached component.
func (f *Factory) CreateComponent(tag TypeTag, id ID) (Component, error) {
	ctor, ok := f.components.get(tag)
	if !ok {
		return nil, fmt.Errorf("%w: component %q", ErrUnknownType, tag)
	}
	return ctor(id), nil
}

// RegisteredComponents returns the registered component tags sorted by
// name.
func (f *Factory) RegisteredComponents() []TypeTag {
	tags := make([]TypeTag, 0, len(f.components))
	for _, reg := range f.components {
		tags = append(tags, reg.tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].String() < tags[j].String()
	})
	return tags
}
