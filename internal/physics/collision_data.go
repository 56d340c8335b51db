package physics

// CollisionData describes a contact. It is either RectData or SphereData.
type CollisionData interface {
	collisionData()
}

// RectData holds the per-side penetration fractions of a box contact,
// relative to the receiving collider. The smallest value names the side
// that was hit.
type RectData struct {
	Left, Right, Top, Bottom float32
}

func (RectData) collisionData() {}

// Side is the edge of the receiving collider that touches the other one.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	default:
		return "bottom"
	}
}

// Side returns the side with the least penetration. Ties go to the
// vertical axis, bottom first, so a body sliding along a floor keeps
// landing rather than hitting a wall.
func (d RectData) Side() Side {
	side, smallest := SideBottom, d.Bottom
	if d.Top < smallest {
		side, smallest = SideTop, d.Top
	}
	if d.Left < smallest {
		side, smallest = SideLeft, d.Left
	}
	if d.Right < smallest {
		side = SideRight
	}
	return side
}

// SphereData is produced for sphere-sphere pairs. No resolution policy
// consumes it yet.
type SphereData struct {
	Penetration float32
}

func (SphereData) collisionData() {}
