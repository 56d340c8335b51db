package components

import (
	"engine2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Register adds the component types of this package to f.
func Register(f *engine.Factory) {
	f.RegisterComponent(PositionType, func(id engine.ID) engine.Component {
		return NewPosition(id, 0, 0)
	})
	f.RegisterComponent(SizeType, func(id engine.ID) engine.Component {
		return NewSize(id, 0, 0)
	})
	f.RegisterComponent(MovementType, func(id engine.ID) engine.Component {
		return NewMovement(id, 0, 0)
	})
	f.RegisterComponent(PropertyType, func(id engine.ID) engine.Component {
		return NewProperty(id)
	})
	f.RegisterComponent(RenderType, func(id engine.ID) engine.Component {
		return NewRender(id, rl.White)
	})
	f.RegisterComponent(RigidbodyType, func(id engine.ID) engine.Component {
		return NewRigidbody(id)
	})
}
