package components

import (
	"engine2d/internal/doc"
	"engine2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var SizeType = engine.Tag("Size")

// Size is the entity extent in world units.
type Size struct {
	engine.BaseComponent
	Size rl.Vector2
}

// NewSize returns a size of w by h.
func NewSize(id engine.ID, w, h float32) *Size {
	return &Size{
		BaseComponent: engine.NewBaseComponent(id, SizeType),
		Size:          rl.Vector2{X: w, Y: h},
	}
}

func (s *Size) Serialize(el *doc.Element) bool {
	s.BaseComponent.Serialize(el)
	el.SetFloat("w", s.Size.X)
	el.SetFloat("h", s.Size.Y)
	return true
}

// Deserialize rejects negative extents.
func (s *Size) Deserialize(el *doc.Element) bool {
	s.BaseComponent.Deserialize(el)
	w, okW := el.Float("w")
	h, okH := el.Float("h")
	if !okW || !okH || w < 0 || h < 0 {
		return false
	}
	s.Size = rl.Vector2{X: w, Y: h}
	return true
}
