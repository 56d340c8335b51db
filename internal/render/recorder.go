package render

import rl "github.com/gen2brain/raylib-go/raylib"

// Op names a recorded draw call.
type Op string

const (
	OpBeginWorld Op = "begin_world"
	OpEndWorld   Op = "end_world"
	OpRect       Op = "rect"
	OpRectLines  Op = "rect_lines"
	OpTile       Op = "tile"
	OpText       Op = "text"
	OpPanel      Op = "panel"
)

// Call is one recorded draw call. Fields not used by Op are zero.
type Call struct {
	Op      Op
	Rect    rl.Rectangle
	Color   rl.Color
	Text    string
	Tileset string
	GID     uint32
}

// Recorder is a headless Surface that records draw calls instead of
// drawing them.
type Recorder struct {
	Width, Height int32
	Calls         []Call
	camera        rl.Camera2D
	worldDepth    int
}

// NewRecorder returns a recorder reporting a width by height surface.
func NewRecorder(width, height int32) *Recorder {
	return &Recorder{
		Width:  width,
		Height: height,
		camera: DefaultCamera(width, height),
	}
}

func (r *Recorder) Size() (int32, int32)      { return r.Width, r.Height }
func (r *Recorder) Camera() rl.Camera2D       { return r.camera }
func (r *Recorder) SetCamera(cam rl.Camera2D) { r.camera = cam }

func (r *Recorder) BeginWorld() {
	r.worldDepth++
	r.Calls = append(r.Calls, Call{Op: OpBeginWorld})
}

func (r *Recorder) EndWorld() {
	if r.worldDepth > 0 {
		r.worldDepth--
	}
	r.Calls = append(r.Calls, Call{Op: OpEndWorld})
}

// InWorld reports whether a BeginWorld is currently open.
func (r *Recorder) InWorld() bool { return r.worldDepth > 0 }

func (r *Recorder) DrawRect(rect rl.Rectangle, color rl.Color) {
	r.Calls = append(r.Calls, Call{Op: OpRect, Rect: rect, Color: color})
}

func (r *Recorder) DrawRectLines(rect rl.Rectangle, _ float32, color rl.Color) {
	r.Calls = append(r.Calls, Call{Op: OpRectLines, Rect: rect, Color: color})
}

func (r *Recorder) DrawTile(tileset string, _, _ int32, gid uint32, dst rl.Rectangle) {
	r.Calls = append(r.Calls, Call{Op: OpTile, Rect: dst, Tileset: tileset, GID: gid})
}

func (r *Recorder) DrawText(text string, x, y, size int32, color rl.Color) {
	r.Calls = append(r.Calls, Call{
		Op:    OpText,
		Text:  text,
		Rect:  rl.Rectangle{X: float32(x), Y: float32(y), Height: float32(size)},
		Color: color,
	})
}

func (r *Recorder) DrawPanel(bounds rl.Rectangle, title string) {
	r.Calls = append(r.Calls, Call{Op: OpPanel, Rect: bounds, Text: title})
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops recorded calls, keeping size and camera.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.worldDepth = 0
}
