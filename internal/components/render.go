package components

import (
	"engine2d/internal/assets"
	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var RenderType = engine.Tag("Render")

// Render draws the entity's Position/Size box.
type Render struct {
	engine.BaseComponent
	Color   rl.Color
	Outline bool

	position engine.Weak[*Position]
	size     engine.Weak[*Size]
}

// NewRender returns a render component that fills the entity box with color.
func NewRender(id engine.ID, color rl.Color) *Render {
	return &Render{
		BaseComponent: engine.NewBaseComponent(id, RenderType),
		Color:         color,
	}
}

// Bounds is the rectangle the component draws.
func (r *Render) Bounds() (rl.Rectangle, bool) {
	pos, ok := engine.Sibling(r, PositionType, &r.position)
	if !ok {
		return rl.Rectangle{}, false
	}
	size, ok := engine.Sibling(r, SizeType, &r.size)
	if !ok {
		return rl.Rectangle{}, false
	}
	return rl.Rectangle{X: pos.Point.X, Y: pos.Point.Y, Width: size.Size.X, Height: size.Size.Y}, true
}

// Render draws the entity box in world space.
func (r *Render) Render(s render.Surface) {
	bounds, ok := r.Bounds()
	if !ok {
		return
	}
	if r.Outline {
		s.DrawRectLines(bounds, 2, r.Color)
		return
	}
	s.DrawRect(bounds, r.Color)
}

func (r *Render) Serialize(el *doc.Element) bool {
	r.BaseComponent.Serialize(el)
	if name, ok := assets.ColorName(r.Color); ok {
		el.Set("color", name)
	} else {
		el.SetInt("rgba", int(r.Color.R)<<24|int(r.Color.G)<<16|int(r.Color.B)<<8|int(r.Color.A))
	}
	if r.Outline {
		el.SetBool("outline", true)
	}
	return true
}

func (r *Render) Deserialize(el *doc.Element) bool {
	r.BaseComponent.Deserialize(el)
	if rgba, ok := el.Int("rgba"); ok {
		r.Color = rl.NewColor(uint8(rgba>>24), uint8(rgba>>16), uint8(rgba>>8), uint8(rgba))
	} else {
		r.Color = assets.LookupColor(el.String("color", "White"))
	}
	r.Outline, _ = el.Bool("outline")
	return true
}
