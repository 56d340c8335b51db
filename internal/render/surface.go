// Package render defines the drawing contract the engine renders through.
// Backends own every GPU resource; scene objects only issue draw calls.
package render

import rl "github.com/gen2brain/raylib-go/raylib"

// Surface is a frame being drawn. World-space calls made between
// BeginWorld and EndWorld are transformed by the current camera; calls
// outside that bracket are in screen space.
type Surface interface {
	Size() (width, height int32)
	Camera() rl.Camera2D
	SetCamera(cam rl.Camera2D)
	BeginWorld()
	EndWorld()

	DrawRect(rect rl.Rectangle, color rl.Color)
	DrawRectLines(rect rl.Rectangle, thickness float32, color rl.Color)
	// DrawTile draws tile gid (1-based, 0 is empty) of the given tileset
	// into dst.
	DrawTile(tileset string, tileWidth, tileHeight int32, gid uint32, dst rl.Rectangle)
	DrawText(text string, x, y, size int32, color rl.Color)
	DrawPanel(bounds rl.Rectangle, title string)
}

// DefaultCamera centres the origin of world space on a surface of the
// given size.
func DefaultCamera(width, height int32) rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: float32(width) / 2, Y: float32(height) / 2},
		Zoom:   1,
	}
}

// VisibleWorld returns the world-space rectangle s shows through its
// camera. Camera rotation is ignored.
func VisibleWorld(s Surface) rl.Rectangle {
	w, h := s.Size()
	cam := s.Camera()
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return rl.Rectangle{
		X:      cam.Target.X - cam.Offset.X/zoom,
		Y:      cam.Target.Y - cam.Offset.Y/zoom,
		Width:  float32(w) / zoom,
		Height: float32(h) / zoom,
	}
}
