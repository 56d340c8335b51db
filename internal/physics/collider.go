package physics

import (
	"fmt"

	"engine2d/internal/components"
	"engine2d/internal/doc"
	"engine2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// ColliderType tags plain colliders.
var ColliderType = engine.Tag("Collider")

// DefaultBulletResolution is used when neither the collider nor the
// runtime sets a sub-step count.
const DefaultBulletResolution = 32

// Body is the collision shape of a collider.
type Body int

const (
	BodyBox Body = iota
	BodyCapsule
	BodySphere
)

func (b Body) String() string {
	switch b {
	case BodyCapsule:
		return "capsule"
	case BodySphere:
		return "sphere"
	default:
		return "box"
	}
}

// ParseBody reads a body name as written by Body.String. Empty means box.
func ParseBody(s string) (Body, error) {
	switch s {
	case "box", "":
		return BodyBox, nil
	case "capsule":
		return BodyCapsule, nil
	case "sphere":
		return BodySphere, nil
	}
	return BodyBox, fmt.Errorf("unknown collider body %q", s)
}

// CollisionBody is what the collision layer keeps. Game code embeds
// *Collider and overrides Collision to apply its own policy.
type CollisionBody interface {
	engine.Component
	Base() *Collider
	Collision(other CollisionBody, deltaTime float32, data CollisionData) bool
}

// Collider takes part in the collision layer's pairwise test. Sibling
// Position, Size and Movement components and the collision layer itself
// are found lazily and held through weak handles.
type Collider struct {
	engine.BaseComponent
	Body             Body
	Active           bool
	Bullet           bool
	BulletResolution int    // sub-steps per frame, 0 = runtime default
	Tag              string // gameplay role read by the other side, e.g. "platform"

	position engine.Weak[*components.Position]
	size     engine.Weak[*components.Size]
	movement engine.Weak[*components.Movement]
	layer    engine.Weak[*CollisionLayer]
}

// NewCollider returns an active box collider with the given gameplay tag.
func NewCollider(id engine.ID, tag string) *Collider {
	return newCollider(id, ColliderType, tag)
}

// NewColliderOfType is for components that embed Collider under their own
// type tag.
func NewColliderOfType(id engine.ID, typ engine.TypeTag, tag string) *Collider {
	return newCollider(id, typ, tag)
}

func newCollider(id engine.ID, typ engine.TypeTag, tag string) *Collider {
	return &Collider{
		BaseComponent: engine.NewBaseComponent(id, typ),
		Body:          BodyBox,
		Active:        true,
		Tag:           tag,
	}
}

func (c *Collider) Base() *Collider { return c }

// Collision is called once per frame for each overlapping pair. The base
// collider acknowledges the contact and does nothing else.
func (c *Collider) Collision(other CollisionBody, deltaTime float32, data CollisionData) bool {
	return true
}

// body is the value registered with the layer: the outermost component
// when a game type embeds the collider.
func (c *Collider) body() CollisionBody {
	if b, ok := c.Self().(CollisionBody); ok {
		return b
	}
	return c
}

// Position returns the sibling Position once it exists.
func (c *Collider) Position() (*components.Position, bool) {
	return engine.Sibling(c, components.PositionType, &c.position)
}

func (c *Collider) Size() (*components.Size, bool) {
	return engine.Sibling(c, components.SizeType, &c.size)
}

func (c *Collider) Movement() (*components.Movement, bool) {
	return engine.Sibling(c, components.MovementType, &c.movement)
}

// Travel is how far the collider moved during the frame that just ran,
// or zero when it has no Movement sibling or has not moved yet.
func (c *Collider) Travel() rl.Vector2 {
	if mv, ok := c.Movement(); ok {
		if step, ok := mv.Step(); ok {
			return step
		}
	}
	return rl.Vector2{}
}

// Bounds returns the current box. ok is false until Position and Size
// siblings exist.
func (c *Collider) Bounds() (AABB, bool) {
	pos, ok := c.Position()
	if !ok {
		return AABB{}, false
	}
	size, ok := c.Size()
	if !ok {
		return AABB{}, false
	}
	return NewAABB(pos.Point, size.Size), true
}

// boundsBefore returns the box as it was the given fraction of a frame
// ago, walking back along the path of the last frame. Fractions above 1
// extend that path further back.
func (c *Collider) boundsBefore(frac float32) (AABB, bool) {
	b, ok := c.Bounds()
	if !ok {
		return AABB{}, false
	}
	return b.Translate(rl.Vector2Scale(c.Travel(), -frac)), true
}

// Resolution is the number of sub-steps used for bullet tests.
func (c *Collider) Resolution() int {
	if c.BulletResolution > 0 {
		return c.BulletResolution
	}
	if rt := c.Runtime(); rt != nil && rt.Physics.BulletResolution > 0 {
		return rt.Physics.BulletResolution
	}
	return DefaultBulletResolution
}

// Layer returns the scene's collision layer, binding it on first use. The
// layer with id "collision" wins over other collision layers.
func (c *Collider) Layer() (*CollisionLayer, bool) {
	if l, ok := c.layer.Get(); ok {
		return l, true
	}
	e := c.Entity()
	if e == nil {
		return nil, false
	}
	s := e.Scene()
	if s == nil {
		return nil, false
	}
	l, ok := s.Layer(DefaultLayerID).(*CollisionLayer)
	if !ok {
		l, ok = s.LayerOfType(CollisionLayerType).(*CollisionLayer)
	}
	if !ok {
		return nil, false
	}
	c.layer = engine.WeakOf(l)
	return l, true
}

// Registered reports whether the collider is in its layer's registry.
func (c *Collider) Registered() bool {
	l, ok := c.layer.Get()
	return ok && l.Contains(c.body())
}

// Update keeps the registration in step with Active. An active collider
// registers with its scene's collision layer as soon as one is found.
func (c *Collider) Update(deltaTime float32) {
	if !c.Active {
		c.deregister()
		return
	}
	if c.Registered() {
		return
	}
	l, ok := c.Layer()
	if !ok {
		return
	}
	if l.Register(c.body()) {
		c.Logger().Debug("collider registered",
			zap.String("entity", c.Entity().ID().String()),
			zap.String("collider", c.ID().String()))
	}
}

// SetActive switches the collider on or off. Turning it off leaves the
// registry immediately; turning it on registers at the next update.
func (c *Collider) SetActive(active bool) {
	c.Active = active
	if !active {
		c.deregister()
	}
}

func (c *Collider) deregister() {
	if l, ok := c.layer.Get(); ok {
		l.Deregister(c.body())
	}
}

// OnDestroy leaves the registry before the component is released.
func (c *Collider) OnDestroy() {
	c.deregister()
	c.layer.Reset()
}

// IsColliding tests c against other for the frame that just ran. When
// either side is a bullet the frame is replayed in Resolution() sub-steps
// along the path each body took, from its start, and the first
// overlapping sub-step is reported. A body that passed through other
// during the frame still collides.
func (c *Collider) IsColliding(other CollisionBody, deltaTime float32) (CollisionData, bool) {
	mine, _, ok := collide(c, other.Base(), deltaTime)
	return mine, ok
}

// collide returns the contact as seen from a and from b.
func collide(a, b *Collider, deltaTime float32) (CollisionData, CollisionData, bool) {
	if a.Body == BodySphere && b.Body == BodySphere {
		return collideSpheres(a, b)
	}

	if (a.Bullet || b.Bullet) && deltaTime > 0 {
		steps := max(a.Resolution(), b.Resolution())
		for k := 1; k <= steps; k++ {
			frac := float32(steps-k) / float32(steps)
			if da, db, ok := collideBoxesAt(a, b, frac); ok {
				return da, db, true
			}
		}
		return nil, nil, false
	}

	return collideBoxesAt(a, b, 0)
}

func collideBoxesAt(a, b *Collider, frac float32) (CollisionData, CollisionData, bool) {
	boxA, ok := a.boundsBefore(frac)
	if !ok {
		return nil, nil, false
	}
	boxB, ok := b.boundsBefore(frac)
	if !ok {
		return nil, nil, false
	}
	if !boxA.Intersects(boxB) {
		return nil, nil, false
	}
	return boxA.Penetration(boxB), boxB.Penetration(boxA), true
}

// collideSpheres treats each box as the circle inscribed in it.
func collideSpheres(a, b *Collider) (CollisionData, CollisionData, bool) {
	boxA, ok := a.Bounds()
	if !ok {
		return nil, nil, false
	}
	boxB, ok := b.Bounds()
	if !ok {
		return nil, nil, false
	}
	ra := min(boxA.Width(), boxA.Height()) / 2
	rb := min(boxB.Width(), boxB.Height()) / 2
	ca := rl.Vector2{X: boxA.Min.X + boxA.Width()/2, Y: boxA.Min.Y + boxA.Height()/2}
	cb := rl.Vector2{X: boxB.Min.X + boxB.Width()/2, Y: boxB.Min.Y + boxB.Height()/2}

	depth := ra + rb - rl.Vector2Distance(ca, cb)
	if depth < 0 {
		return nil, nil, false
	}
	data := SphereData{Penetration: depth}
	return data, data, true
}

// SafePosition walks backward from the end of the frame, one sub-step at
// a time and for at most two frames, and returns c's position at the
// first sub-step after the pair was last seen overlapping. Both bodies
// retrace the path they actually took. ok is false if the pair never
// separates in that window, no frame ran, or c has no position.
func (c *Collider) SafePosition(other CollisionBody, deltaTime float32) (rl.Vector2, bool) {
	pos, ok := c.Position()
	if !ok || deltaTime <= 0 {
		return rl.Vector2{}, false
	}
	o := other.Base()
	steps := c.Resolution()
	travel := c.Travel()

	seen := false
	for k := 0; k <= 2*steps; k++ {
		frac := float32(k) / float32(steps)
		_, _, overlapping := collideBoxesAt(c, o, frac)
		if overlapping {
			seen = true
			continue
		}
		if seen {
			return rl.Vector2Subtract(pos.Point, rl.Vector2Scale(travel, frac)), true
		}
	}
	return rl.Vector2{}, false
}

func (c *Collider) Serialize(el *doc.Element) bool {
	c.BaseComponent.Serialize(el)
	el.Set("body", c.Body.String())
	el.SetBool("active", c.Active)
	el.SetBool("bullet", c.Bullet)
	if c.BulletResolution > 0 {
		el.SetInt("bulletResolution", c.BulletResolution)
	}
	if c.Tag != "" {
		el.Set("tag", c.Tag)
	}
	return true
}

func (c *Collider) Deserialize(el *doc.Element) bool {
	c.BaseComponent.Deserialize(el)
	body, err := ParseBody(el.String("body", "box"))
	if err != nil {
		c.Logger().Warn("bad collider", zap.Error(err))
		return false
	}
	c.Body = body
	if active, ok := el.Bool("active"); ok {
		c.Active = active
	}
	c.Bullet, _ = el.Bool("bullet")
	if n, ok := el.Int("bulletResolution"); ok && n > 0 {
		c.BulletResolution = n
	}
	c.Tag = el.String("tag", "")
	return true
}
