package platformer

import "engine2d/internal/engine"

const (
	DeathEventType engine.EventType = "platformer.death"
	WarpEventType  engine.EventType = "platformer.warp"
)

// DeathEvent is queued when the player touches something deadly.
type DeathEvent struct {
	Entity engine.ID
}

func (DeathEvent) EventType() engine.EventType { return DeathEventType }

// WarpEvent asks for the named level to replace the current one.
type WarpEvent struct {
	Entity engine.ID
	Level  string
}

func (WarpEvent) EventType() engine.EventType { return WarpEventType }
