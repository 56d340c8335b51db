package engine

import (
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// ID names an entity, component, layer or scene within its owner.
type ID string

// NewID returns a fresh identifier for objects spawned at runtime.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }
func (id ID) IsZero() bool   { return id == "" }

// TypeTag identifies a concrete scene, layer, entity or component variant
// at runtime. The name is hashed once so lookups compare integers first.
type TypeTag struct {
	name string
	hash uint64
}

// Tag returns the tag for a type name.
func Tag(name string) TypeTag {
	return TypeTag{name: name, hash: xxhash.Sum64String(name)}
}

func (t TypeTag) String() string { return t.name }
func (t TypeTag) Hash() uint64   { return t.hash }
func (t TypeTag) IsZero() bool   { return t.name == "" }

// Is reports whether t and other name the same type. The hashes are
// compared first and the names settle a collision.
func (t TypeTag) Is(other TypeTag) bool {
	return t.hash == other.hash && t.name == other.name
}

// Typed is implemented by everything that carries a TypeTag.
type Typed interface {
	Type() TypeTag
}
