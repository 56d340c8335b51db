package layers

import (
	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/input"
	"engine2d/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var PauseLayerType = engine.Tag("PauseLayer")

const PauseLayerID engine.ID = "pause"

// PauseLayer freezes the layers beneath it and swallows key presses. The
// pause and quit actions pass through, as do key releases so that held
// keys are not left stuck.
type PauseLayer struct {
	engine.BaseLayer
	Title string
}

// NewPauseLayer returns a pause overlay.
func NewPauseLayer(id engine.ID) *PauseLayer {
	if id.IsZero() {
		id = PauseLayerID
	}
	return &PauseLayer{
		BaseLayer: engine.NewBaseLayer(id, PauseLayerType),
		Title:     "Paused",
	}
}

func (p *PauseLayer) BlocksUpdate() bool { return true }

// HandleEvent swallows presses while paused so the game underneath does
// not react. Pause and quit still get through, as do releases.
func (p *PauseLayer) HandleEvent(ev engine.Event) bool {
	key, ok := ev.(input.KeyEvent)
	if !ok {
		return false
	}
	switch {
	case !key.Pressed:
		return false
	case key.Action == input.ActionPause, key.Action == input.ActionQuit:
		return false
	}
	return true
}

func (p *PauseLayer) Render(s render.Surface) {
	w, h := s.Size()
	s.DrawRect(rl.Rectangle{Width: float32(w), Height: float32(h)}, rl.Fade(rl.Black, 0.5))

	panel := rl.Rectangle{
		X:      float32(w)/2 - 120,
		Y:      float32(h)/2 - 50,
		Width:  240,
		Height: 100,
	}
	s.DrawPanel(panel, p.Title)
	s.DrawText("press P to resume", int32(panel.X)+24, int32(panel.Y)+48, 20, rl.DarkGray)
}

func (p *PauseLayer) Serialize(el *doc.Element) bool {
	p.BaseLayer.Serialize(el)
	el.Set("title", p.Title)
	return true
}

func (p *PauseLayer) Deserialize(el *doc.Element) bool {
	p.Title = el.String("title", p.Title)
	return true
}

// TogglePause pushes a pause layer onto s, or removes it if one is there.
// Returns true when s is paused afterwards.
func TogglePause(s *engine.Scene) bool {
	if s.RemoveLayer(PauseLayerID) {
		return false
	}
	if err := s.PushLayer(NewPauseLayer(PauseLayerID)); err != nil {
		return false
	}
	return true
}

// Paused reports whether s has a pause layer.
func Paused(s *engine.Scene) bool {
	return s.Layer(PauseLayerID) != nil
}
