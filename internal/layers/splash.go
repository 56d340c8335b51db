package layers

import (
	"engine2d/internal/doc"
	"engine2d/internal/engine"
	"engine2d/internal/input"
	"engine2d/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

var SplashLayerType = engine.Tag("SplashLayer")

const SplashLayerID engine.ID = "splash"

// SplashLayer is a timed title card. It fades in, holds, fades out and
// removes itself from its scene; any key press dismisses it early. The
// layers beneath it do not update while it is shown.
type SplashLayer struct {
	engine.BaseLayer
	Title    string
	Subtitle string
	Duration float32 // seconds, fades included
	Fade     float32 // seconds per fade

	elapsed float32
	alpha   float32
	fadeIn  *gween.Tween
	fadeOut *gween.Tween
}

// NewSplashLayer returns a title card shown for duration seconds.
func NewSplashLayer(id engine.ID, title string, duration float32) *SplashLayer {
	s := &SplashLayer{
		BaseLayer: engine.NewBaseLayer(id, SplashLayerType),
		Title:     title,
		Duration:  duration,
		Fade:      0.5,
	}
	s.reset()
	return s
}

func (s *SplashLayer) reset() {
	fade := min(s.Fade, s.Duration/2)
	s.elapsed = 0
	s.alpha = 0
	s.fadeIn = gween.New(0, 1, fade, ease.OutQuad)
	s.fadeOut = gween.New(1, 0, fade, ease.InQuad)
}

func (s *SplashLayer) BlocksUpdate() bool { return true }

// Alpha is the current opacity in [0,1].
func (s *SplashLayer) Alpha() float32 { return s.alpha }

// Update advances the fade and removes the layer once it has run out.
func (s *SplashLayer) Update(deltaTime float32) {
	s.elapsed += deltaTime
	if s.elapsed >= s.Duration {
		s.Dismiss()
		return
	}

	fade := min(s.Fade, s.Duration/2)
	if s.elapsed < s.Duration-fade {
		s.alpha, _ = s.fadeIn.Update(deltaTime)
		return
	}
	s.alpha, _ = s.fadeOut.Update(deltaTime)
}

// Dismiss removes the splash from its scene.
func (s *SplashLayer) Dismiss() {
	scene := s.Scene()
	if scene == nil {
		return
	}
	s.Logger().Debug("splash dismissed", zap.String("layer", s.ID().String()), zap.Float32("after", s.elapsed))
	scene.RemoveLayer(s.ID())
}

func (s *SplashLayer) HandleEvent(ev engine.Event) bool {
	key, ok := ev.(input.KeyEvent)
	if !ok || !key.Pressed {
		return false
	}
	s.Dismiss()
	return true
}

func (s *SplashLayer) Render(surface render.Surface) {
	w, h := surface.Size()
	surface.DrawRect(rl.Rectangle{Width: float32(w), Height: float32(h)}, rl.Fade(rl.Black, s.alpha))

	text := rl.Fade(rl.RayWhite, s.alpha)
	surface.DrawText(s.Title, w/2-int32(len(s.Title))*10, h/2-30, 40, text)
	if s.Subtitle != "" {
		surface.DrawText(s.Subtitle, w/2-int32(len(s.Subtitle))*5, h/2+20, 20, text)
	}
}

func (s *SplashLayer) Serialize(el *doc.Element) bool {
	s.BaseLayer.Serialize(el)
	el.Set("title", s.Title)
	if s.Subtitle != "" {
		el.Set("subtitle", s.Subtitle)
	}
	el.SetFloat("duration", s.Duration)
	el.SetFloat("fade", s.Fade)
	return true
}

func (s *SplashLayer) Deserialize(el *doc.Element) bool {
	s.Title = el.String("title", s.Title)
	s.Subtitle = el.String("subtitle", "")
	if d, ok := el.Float("duration"); ok {
		s.Duration = d
	}
	if f, ok := el.Float("fade"); ok {
		s.Fade = f
	}
	if s.Duration <= 0 {
		return false
	}
	s.reset()
	return true
}
