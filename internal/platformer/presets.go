package platformer

import (
	"fmt"

	"engine2d/internal/components"
	"engine2d/internal/engine"
	"engine2d/internal/layers"
	"engine2d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SolidsLayerID is the entity layer SpawnSolids fills from the tilemap.
const SolidsLayerID engine.ID = "solids"

// NewPlayer builds the player entity with its top-left corner at (x, y).
// Component order matters: the controller reads the platform flag before
// the collider clears it, and gravity is applied before movement.
func NewPlayer(id engine.ID, x, y float32) *engine.Entity {
	e := engine.NewEntity(id, engine.EntityType)
	e.PushComponent(components.NewPosition("position", x, y))
	e.PushComponent(components.NewSize("size", 24, 32))
	e.PushComponent(NewPlayerController("controller"))
	e.PushComponent(components.NewRigidbody("rigidbody"))
	e.PushComponent(components.NewMovement("movement", 0, 0))
	e.PushComponent(NewPlayerCollider("collider"))
	e.PushComponent(NewCameraFollow("camera"))
	e.PushComponent(components.NewRender("render", rl.SkyBlue))
	return e
}

// NewBlock builds a static box collider with the given collider tag.
func NewBlock(id engine.ID, box rl.Rectangle, tag string, color rl.Color) *engine.Entity {
	e := newBody(id, box, tag)
	e.PushComponent(components.NewRender("render", color))
	return e
}

func newBody(id engine.ID, box rl.Rectangle, tag string) *engine.Entity {
	e := engine.NewEntity(id, engine.EntityType)
	e.PushComponent(components.NewPosition("position", box.X, box.Y))
	e.PushComponent(components.NewSize("size", box.Width, box.Height))
	e.PushComponent(physics.NewCollider("collider", tag))
	return e
}

// NewPlatform returns a solid block.
func NewPlatform(id engine.ID, box rl.Rectangle) *engine.Entity {
	return NewBlock(id, box, TagPlatform, rl.DarkGray)
}

// NewBouncer returns a block that launches the player upward.
func NewBouncer(id engine.ID, box rl.Rectangle) *engine.Entity {
	return NewBlock(id, box, TagBounce, rl.Lime)
}

// NewDoom returns a block that kills the player.
func NewDoom(id engine.ID, box rl.Rectangle) *engine.Entity {
	return NewBlock(id, box, TagDoom, rl.Maroon)
}

// NewWarp builds a warp to level. An empty level makes a warp that goes
// nowhere.
func NewWarp(id engine.ID, box rl.Rectangle, level string) *engine.Entity {
	e := NewBlock(id, box, TagWarp, rl.Violet)
	if level != "" {
		props := components.NewProperty("properties")
		props.Set(LevelProperty, level)
		e.PushComponent(props)
	}
	return e
}

// SpawnSolids adds an invisible platform for each solid run of every
// tilemap in s. The platforms live in their own entity layer, inserted
// below the first collision layer. A scene that already has that layer,
// such as one restored from a save, is left alone. Returns the number of
// platforms.
func SpawnSolids(s *engine.Scene) (int, error) {
	if s.Layer(SolidsLayerID) != nil {
		return 0, nil
	}

	var solids []rl.Rectangle
	for _, l := range s.Layers() {
		if tm, ok := l.(*layers.TilemapLayer); ok {
			solids = append(solids, tm.Solids()...)
		}
	}
	if len(solids) == 0 {
		return 0, nil
	}

	layer := engine.NewEntityLayer(SolidsLayerID)
	index := len(s.Layers())
	for i, l := range s.Layers() {
		if l.Type() == physics.CollisionLayerType {
			index = i
			break
		}
	}
	if err := s.InsertLayer(index, layer); err != nil {
		return 0, err
	}

	for i, box := range solids {
		e := newBody(engine.ID(fmt.Sprintf("solid-%d", i)), box, TagPlatform)
		if err := layer.PushEntity(e); err != nil {
			return i, err
		}
	}
	return len(solids), nil
}
