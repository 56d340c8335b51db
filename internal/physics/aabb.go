package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// minExtent keeps penetration fractions finite for zero-sized boxes.
const minExtent = 1e-6

// AABB is an axis-aligned box. Y grows downward.
type AABB struct {
	Min rl.Vector2
	Max rl.Vector2
}

// NewAABB creates an AABB from its top-left corner and size.
func NewAABB(pos, size rl.Vector2) AABB {
	return AABB{Min: pos, Max: rl.Vector2Add(pos, size)}
}

// AABBFromRect converts a raylib rectangle.
func AABBFromRect(r rl.Rectangle) AABB {
	return NewAABB(rl.Vector2{X: r.X, Y: r.Y}, rl.Vector2{X: r.Width, Y: r.Height})
}

func (a AABB) Width() float32  { return a.Max.X - a.Min.X }
func (a AABB) Height() float32 { return a.Max.Y - a.Min.Y }

func (a AABB) Rect() rl.Rectangle {
	return rl.Rectangle{X: a.Min.X, Y: a.Min.Y, Width: a.Width(), Height: a.Height()}
}

// Translate returns a moved by d.
func (a AABB) Translate(d rl.Vector2) AABB {
	return AABB{Min: rl.Vector2Add(a.Min, d), Max: rl.Vector2Add(a.Max, d)}
}

// Intersects reports overlap on both axes. Touching edges count.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}

// Penetration returns how far b reaches into each side of a, as a
// fraction of a's extent on that axis. A side b crosses is measured from
// that edge, so it lands in [0,1) when b covers part of that side. A side
// b does not cross gets 1 plus b's distance in from that edge, which is
// never below 1. Every field is non-negative iff the boxes intersect.
func (a AABB) Penetration(b AABB) RectData {
	w := max(a.Width(), minExtent)
	h := max(a.Height(), minExtent)
	return RectData{
		Left:   edgeDepth(b.Min.X <= a.Min.X, b.Max.X-a.Min.X, b.Min.X-a.Min.X, w),
		Right:  edgeDepth(b.Max.X >= a.Max.X, a.Max.X-b.Min.X, a.Max.X-b.Max.X, w),
		Top:    edgeDepth(b.Min.Y <= a.Min.Y, b.Max.Y-a.Min.Y, b.Min.Y-a.Min.Y, h),
		Bottom: edgeDepth(b.Max.Y >= a.Max.Y, a.Max.Y-b.Min.Y, a.Max.Y-b.Max.Y, h),
	}
}

func edgeDepth(crosses bool, depth, inset, extent float32) float32 {
	if crosses {
		return depth / extent
	}
	return 1 + inset/extent
}

// RectPenetration is Penetration for raylib rectangles.
func RectPenetration(a, b rl.Rectangle) RectData {
	return AABBFromRect(a).Penetration(AABBFromRect(b))
}

// Resolve returns the translation that puts a flush against b across the
// given side of a: for SideBottom, a's bottom edge onto b's top edge.
func (a AABB) Resolve(b AABB, side Side) rl.Vector2 {
	switch side {
	case SideTop:
		return rl.Vector2{Y: b.Max.Y - a.Min.Y}
	case SideLeft:
		return rl.Vector2{X: b.Max.X - a.Min.X}
	case SideRight:
		return rl.Vector2{X: b.Min.X - a.Max.X}
	default:
		return rl.Vector2{Y: b.Min.Y - a.Max.Y}
	}
}
