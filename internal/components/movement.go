package components

import (
	"engine2d/internal/doc"
	"engine2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MovementType tags Movement components.
var MovementType = engine.Tag("Movement")

// Movement integrates Velocity into the sibling Position every update and
// remembers where the step started.
type Movement struct {
	engine.BaseComponent
	Velocity rl.Vector2

	position engine.Weak[*Position]
	previous rl.Vector2
	stepped  bool
}

// NewMovement returns a movement with the given starting velocity.
func NewMovement(id engine.ID, vx, vy float32) *Movement {
	return &Movement{
		BaseComponent: engine.NewBaseComponent(id, MovementType),
		Velocity:      rl.Vector2{X: vx, Y: vy},
	}
}

// Simulate returns where the entity would be after delta seconds at the
// current velocity. ok is false while there is no Position sibling.
func (m *Movement) Simulate(delta float32) (rl.Vector2, bool) {
	pos, ok := engine.Sibling(m, PositionType, &m.position)
	if !ok {
		return rl.Vector2{}, false
	}
	return rl.Vector2Add(pos.Point, rl.Vector2Scale(m.Velocity, delta)), true
}

// Step returns how far the entity has travelled since the start of the
// last Update, including any correction applied after it. ok is false
// until the first Update with a Position sibling.
func (m *Movement) Step() (rl.Vector2, bool) {
	pos, ok := m.position.Get()
	if !ok || !m.stepped {
		return rl.Vector2{}, false
	}
	return rl.Vector2Subtract(pos.Point, m.previous), true
}

// Update moves the sibling Position by one step of Velocity.
func (m *Movement) Update(deltaTime float32) {
	next, ok := m.Simulate(deltaTime)
	if !ok {
		return
	}
	pos, _ := m.position.Get()
	m.previous = pos.Point
	m.stepped = true
	pos.Point = next
}

func (m *Movement) Serialize(el *doc.Element) bool {
	m.BaseComponent.Serialize(el)
	el.SetFloat("vx", m.Velocity.X)
	el.SetFloat("vy", m.Velocity.Y)
	return true
}

// Deserialize treats a missing velocity as rest.
func (m *Movement) Deserialize(el *doc.Element) bool {
	m.BaseComponent.Deserialize(el)
	m.Velocity.X, _ = el.Float("vx")
	m.Velocity.Y, _ = el.Float("vy")
	return true
}
