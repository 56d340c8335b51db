package platformer

import (
	"engine2d/internal/components"
	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var PlayerColliderType = engine.Tag("PlayerCollider")

// Collider tags the player reacts to.
const (
	TagPlayer   = "player"
	TagPlatform = "platform"
	TagBounce   = "bounce"
	TagDoom     = "doom"
	TagWarp     = "warp"
)

// LevelProperty is the Property key a warp reads its destination from.
const LevelProperty = "level"

// PlayerCollider is a bullet collider that resolves contacts by the tag of
// the other collider.
type PlayerCollider struct {
	*physics.Collider
	BounceSpeed float32

	onPlatform bool
	dead       bool
	warped     bool
}

// NewPlayerCollider returns a bullet collider tagged as the player.
func NewPlayerCollider(id engine.ID) *PlayerCollider {
	c := physics.NewColliderOfType(id, PlayerColliderType, TagPlayer)
	c.Bullet = true
	return &PlayerCollider{Collider: c, BounceSpeed: 900}
}

// OnPlatform reports whether the player rested on a platform during the
// last collision pass.
func (p *PlayerCollider) OnPlatform() bool { return p.onPlatform }

// Update clears the platform flag before the next collision pass.
func (p *PlayerCollider) Update(deltaTime float32) {
	p.onPlatform = false
	p.Collider.Update(deltaTime)
}

// Collision applies the contact policy for the other collider's tag.
func (p *PlayerCollider) Collision(other physics.CollisionBody, deltaTime float32, data physics.CollisionData) bool {
	rect, ok := data.(physics.RectData)
	if !ok {
		return true
	}

	switch other.Base().Tag {
	case TagPlatform:
		p.land(other, deltaTime, rect)
	case TagBounce:
		if mv, ok := p.Movement(); ok {
			mv.Velocity.Y = -p.BounceSpeed
		}
	case TagDoom:
		p.die()
	case TagWarp:
		p.warp(other)
	}
	return true
}

// land puts the player flush against the platform edge it hit and stops
// motion into that edge. A player that passed completely through the
// platform this frame is first moved back to where it was before contact.
func (p *PlayerCollider) land(other physics.CollisionBody, deltaTime float32, rect physics.RectData) {
	pos, ok := p.Position()
	if !ok {
		return
	}
	platform, ok := other.Base().Bounds()
	if !ok {
		return
	}

	if box, ok := p.Bounds(); ok && !box.Intersects(platform) {
		if safe, ok := p.SafePosition(other, deltaTime); ok {
			pos.Point = safe
		}
	}
	box, ok := p.Bounds()
	if !ok {
		return
	}

	side := rect.Side()
	pos.Point = rl.Vector2Add(pos.Point, box.Resolve(platform, side))

	mv, ok := p.Movement()
	if !ok {
		if side == physics.SideBottom {
			p.onPlatform = true
		}
		return
	}
	switch side {
	case physics.SideBottom:
		mv.Velocity.Y = min(mv.Velocity.Y, 0)
		p.onPlatform = true
	case physics.SideTop:
		mv.Velocity.Y = max(mv.Velocity.Y, 0)
	case physics.SideLeft:
		mv.Velocity.X = max(mv.Velocity.X, 0)
	case physics.SideRight:
		mv.Velocity.X = min(mv.Velocity.X, 0)
	}
}

func (p *PlayerCollider) die() {
	if p.dead {
		return
	}
	p.dead = true
	p.Logger().Info("player died", zap.String("entity", p.Entity().ID().String()))
	if rt := p.Runtime(); rt != nil && rt.Events != nil {
		rt.Events.Queue(DeathEvent{Entity: p.Entity().ID()})
	}
}

func (p *PlayerCollider) warp(other physics.CollisionBody) {
	if p.warped {
		return
	}
	target := other.Entity()
	level := ""
	if props, ok := target.ComponentOfType(components.PropertyType).(*components.Property); ok {
		level, _ = props.Get(LevelProperty)
	}
	if level == "" {
		p.Logger().Info("collision going nowhere", zap.String("warp", target.ID().String()))
		return
	}

	p.warped = true
	p.Logger().Info("warp", zap.String("level", level))
	if rt := p.Runtime(); rt != nil && rt.Events != nil {
		rt.Events.Queue(WarpEvent{Entity: p.Entity().ID(), Level: level})
	}
}

func (p *PlayerCollider) Serialize(el *doc.Element) bool {
	p.Collider.Serialize(el)
	el.SetFloat("bounceSpeed", p.BounceSpeed)
	return true
}

func (p *PlayerCollider) Deserialize(el *doc.Element) bool {
	if !p.Collider.Deserialize(el) {
		return false
	}
	if b, ok := el.Float("bounceSpeed"); ok {
		p.BounceSpeed = b
	}
	return true
}
