package components

import (
	"engine2d/internal/doc"
	"engine2d/internal/engine"
)

var RigidbodyType = engine.Tag("Rigidbody")

// Rigidbody accelerates the sibling Movement. Gravity comes from the
// scene runtime and is scaled per body.
type Rigidbody struct {
	engine.BaseComponent
	GravityScale float32
	MaxFallSpeed float32 // 0 = unlimited
	Friction     float32 // horizontal damping per second, 0 = ice
	UseGravity   bool
	IsKinematic  bool // moves but is not accelerated

	movement engine.Weak[*Movement]
}

// NewRigidbody returns a body that falls under the runtime gravity.
func NewRigidbody(id engine.ID) *Rigidbody {
	return &Rigidbody{
		BaseComponent: engine.NewBaseComponent(id, RigidbodyType),
		GravityScale:  1,
		MaxFallSpeed:  900,
		Friction:      0,
		UseGravity:    true,
	}
}

// Gravity is the downward acceleration applied to this body.
func (r *Rigidbody) Gravity() float32 {
	rt := r.Runtime()
	if rt == nil {
		return 0
	}
	return rt.Physics.Gravity * r.GravityScale
}

// Update applies gravity, the fall speed clamp and friction to the
// sibling Movement.
func (r *Rigidbody) Update(deltaTime float32) {
	if r.IsKinematic {
		return
	}
	mv, ok := engine.Sibling(r, MovementType, &r.movement)
	if !ok {
		return
	}

	if r.UseGravity {
		mv.Velocity.Y += r.Gravity() * deltaTime
		if r.MaxFallSpeed > 0 && mv.Velocity.Y > r.MaxFallSpeed {
			mv.Velocity.Y = r.MaxFallSpeed
		}
	}

	if r.Friction > 0 {
		damp := 1 - r.Friction*deltaTime
		if damp < 0 {
			damp = 0
		}
		mv.Velocity.X *= damp
	}
}

func (r *Rigidbody) Serialize(el *doc.Element) bool {
	r.BaseComponent.Serialize(el)
	el.SetFloat("gravityScale", r.GravityScale)
	el.SetFloat("maxFallSpeed", r.MaxFallSpeed)
	el.SetFloat("friction", r.Friction)
	el.SetBool("useGravity", r.UseGravity)
	el.SetBool("isKinematic", r.IsKinematic)
	return true
}

func (r *Rigidbody) Deserialize(el *doc.Element) bool {
	r.BaseComponent.Deserialize(el)
	if g, ok := el.Float("gravityScale"); ok {
		r.GravityScale = g
	}
	if m, ok := el.Float("maxFallSpeed"); ok {
		r.MaxFallSpeed = m
	}
	if f, ok := el.Float("friction"); ok {
		r.Friction = f
	}
	if g, ok := el.Bool("useGravity"); ok {
		r.UseGravity = g
	}
	if k, ok := el.Bool("isKinematic"); ok {
		r.IsKinematic = k
	}
	return true
}
