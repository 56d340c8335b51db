package platformer

import (
	"engine2d/internal/components"
	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var CameraFollowType = engine.Tag("CameraFollow")

// CameraFollow eases the surface camera towards the centre of its entity.
// The camera it sets takes effect from the next BeginWorld.
type CameraFollow struct {
	engine.BaseComponent
	Smoothing float32      // fraction of the remaining distance covered per second; 0 snaps
	Bounds    rl.Rectangle // world area the view is kept inside; empty disables clamping

	target   rl.Vector2
	primed   bool
	position engine.Weak[*components.Position]
	size     engine.Weak[*components.Size]
}

// NewCameraFollow returns a follower with no bounds.
func NewCameraFollow(id engine.ID) *CameraFollow {
	return &CameraFollow{
		BaseComponent: engine.NewBaseComponent(id, CameraFollowType),
		Smoothing:     8,
	}
}

// Target is the world point the camera is centred on.
func (c *CameraFollow) Target() rl.Vector2 { return c.target }

func (c *CameraFollow) focus() (rl.Vector2, bool) {
	pos, ok := engine.Sibling(c, components.PositionType, &c.position)
	if !ok {
		return rl.Vector2{}, false
	}
	centre := pos.Point
	if size, ok := engine.Sibling(c, components.SizeType, &c.size); ok {
		centre = rl.Vector2Add(centre, rl.Vector2Scale(size.Size, 0.5))
	}
	return centre, true
}

// Update eases the target toward the entity centre. The first update
// snaps.
func (c *CameraFollow) Update(deltaTime float32) {
	focus, ok := c.focus()
	if !ok {
		return
	}
	if !c.primed || c.Smoothing <= 0 {
		c.target = focus
		c.primed = true
		return
	}
	t := c.Smoothing * deltaTime
	if t > 1 {
		t = 1
	}
	c.target = rl.Vector2Add(c.target, rl.Vector2Scale(rl.Vector2Subtract(focus, c.target), t))
}

func (c *CameraFollow) Render(s render.Surface) {
	if !c.primed {
		return
	}
	cam := s.Camera()
	cam.Target = c.clamp(c.target, s)
	s.SetCamera(cam)
}

func (c *CameraFollow) clamp(target rl.Vector2, s render.Surface) rl.Vector2 {
	if c.Bounds.Width <= 0 || c.Bounds.Height <= 0 {
		return target
	}
	w, h := s.Size()
	zoom := s.Camera().Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW := float32(w) / zoom / 2
	halfH := float32(h) / zoom / 2
	target.X = clampAxis(target.X, c.Bounds.X+halfW, c.Bounds.X+c.Bounds.Width-halfW)
	target.Y = clampAxis(target.Y, c.Bounds.Y+halfH, c.Bounds.Y+c.Bounds.Height-halfH)
	return target
}

// clampAxis centres the view when the bounds are smaller than it.
func clampAxis(v, lo, hi float32) float32 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *CameraFollow) Serialize(el *doc.Element) bool {
	c.BaseComponent.Serialize(el)
	el.SetFloat("smoothing", c.Smoothing)
	if c.Bounds.Width > 0 && c.Bounds.Height > 0 {
		el.SetFloat("boundsX", c.Bounds.X)
		el.SetFloat("boundsY", c.Bounds.Y)
		el.SetFloat("boundsW", c.Bounds.Width)
		el.SetFloat("boundsH", c.Bounds.Height)
	}
	return true
}

func (c *CameraFollow) Deserialize(el *doc.Element) bool {
	c.BaseComponent.Deserialize(el)
	if v, ok := el.Float("smoothing"); ok {
		c.Smoothing = v
	}
	c.Bounds.X, _ = el.Float("boundsX")
	c.Bounds.Y, _ = el.Float("boundsY")
	c.Bounds.Width, _ = el.Float("boundsW")
	c.Bounds.Height, _ = el.Float("boundsH")
	return true
}
