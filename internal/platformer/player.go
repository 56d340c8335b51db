package platformer

import (
	"engine2d/internal/components"
	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/input"
)

var PlayerControllerType = engine.Tag("PlayerController")

// PlayerController turns held actions into horizontal velocity and jumps.
// It listens for key events on the runtime bus from its first update
// until it is destroyed.
type PlayerController struct {
	engine.BaseComponent
	RunSpeed  float32
	JumpSpeed float32

	state     *input.State
	events    *engine.EventManager
	jumpQueue bool

	movement engine.Weak[*components.Movement]
	collider engine.Weak[*PlayerCollider]
}

// NewPlayerController returns a controller with the default speeds.
func NewPlayerController(id engine.ID) *PlayerController {
	return &PlayerController{
		BaseComponent: engine.NewBaseComponent(id, PlayerControllerType),
		RunSpeed:      240,
		JumpSpeed:     620,
		state:         input.NewState(),
	}
}

func (p *PlayerController) connect() {
	if p.events != nil {
		return
	}
	rt := p.Runtime()
	if rt == nil || rt.Events == nil {
		return
	}
	p.events = rt.Events
	p.events.Connect(p, input.KeyEventType)
}

func (p *PlayerController) HandleEvent(ev engine.Event) bool {
	key, ok := ev.(input.KeyEvent)
	if !ok {
		return false
	}
	p.state.Apply(key)
	if key.Action == input.ActionJump && key.Pressed {
		p.jumpQueue = true
	}
	return false
}

// Held reports whether an action is currently held.
func (p *PlayerController) Held(a input.Action) bool { return p.state.Held(a) }

// Update sets the run velocity from the held keys and applies a queued
// jump when the player stands on a platform.
func (p *PlayerController) Update(deltaTime float32) {
	p.connect()

	mv, ok := engine.Sibling(p, components.MovementType, &p.movement)
	if !ok {
		return
	}

	var dir float32
	if p.state.Held(input.ActionLeft) {
		dir--
	}
	if p.state.Held(input.ActionRight) {
		dir++
	}
	mv.Velocity.X = dir * p.RunSpeed

	if p.jumpQueue {
		p.jumpQueue = false
		if body, ok := engine.Sibling(p, PlayerColliderType, &p.collider); ok && body.OnPlatform() {
			mv.Velocity.Y = -p.JumpSpeed
		}
	}
}

func (p *PlayerController) OnDestroy() {
	if p.events != nil {
		p.events.DisconnectAll(p)
		p.events = nil
	}
	p.state.Clear()
}

func (p *PlayerController) Serialize(el *doc.Element) bool {
	p.BaseComponent.Serialize(el)
	el.SetFloat("runSpeed", p.RunSpeed)
	el.SetFloat("jumpSpeed", p.JumpSpeed)
	return true
}

func (p *PlayerController) Deserialize(el *doc.Element) bool {
	p.BaseComponent.Deserialize(el)
	if v, ok := el.Float("runSpeed"); ok {
		p.RunSpeed = v
	}
	if v, ok := el.Float("jumpSpeed"); ok {
		p.JumpSpeed = v
	}
	return true
}
