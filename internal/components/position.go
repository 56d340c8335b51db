package components

import (
	"engine2d/internal/doc"
	"engine2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var PositionType = engine.Tag("Position")

// Position is the top-left corner of the entity in world units.
type Position struct {
	engine.BaseComponent
	Point rl.Vector2
}

// NewPosition returns a position at (x, y).
func NewPosition(id engine.ID, x, y float32) *Position {
	return &Position{
		BaseComponent: engine.NewBaseComponent(id, PositionType),
		Point:         rl.Vector2{X: x, Y: y},
	}
}

func (p *Position) Serialize(el *doc.Element) bool {
	p.BaseComponent.Serialize(el)
	el.SetFloat("x", p.Point.X)
	el.SetFloat("y", p.Point.Y)
	return true
}

// Deserialize fails unless both coordinates are present.
func (p *Position) Deserialize(el *doc.Element) bool {
	p.BaseComponent.Deserialize(el)
	x, okX := el.Float("x")
	y, okY := el.Float("y")
	if !okX || !okY {
		return false
	}
	p.Point = rl.Vector2{X: x, Y: y}
	return true
}
