package platformer

import (
	"engine2d/internal/engine"
	"engine2d/internal/input"
	"engine2d/internal/layers"

	"go.uber.org/zap"
)

// Levels builds a fresh scene for a named level.
type Levels interface {
	Build(name string) (*engine.Scene, error)
}

// Director owns level flow: it loads the first level, reloads it when the
// player dies, follows warps and toggles pause. Level changes happen while
// the bus dispatches, never inside a scene update.
type Director struct {
	SplashTitle    string
	SplashSubtitle string
	SplashTime     float32

	scenes  *engine.SceneManager
	levels  Levels
	log     *zap.Logger
	current string
	quit    bool
}

// NewDirector returns a director that builds levels from levels.
func NewDirector(scenes *engine.SceneManager, levels Levels, log *zap.Logger) *Director {
	if log == nil {
		log = zap.NewNop()
	}
	return &Director{
		scenes: scenes,
		levels: levels,
		log:    log.Named("director"),
	}
}

// Connect subscribes the director to the events it acts on.
func (d *Director) Connect(events *engine.EventManager) {
	events.Connect(d, input.KeyEventType)
	events.Connect(d, DeathEventType)
	events.Connect(d, WarpEventType)
}

// Start loads level and, when a splash title is set, covers it with a
// splash screen.
func (d *Director) Start(level string) error {
	if err := d.Load(level); err != nil {
		return err
	}
	if d.SplashTitle == "" {
		return nil
	}
	splash := layers.NewSplashLayer(layers.SplashLayerID, d.SplashTitle, d.SplashTime)
	splash.Subtitle = d.SplashSubtitle
	return d.scenes.ActiveScene().PushLayer(splash)
}

// Load replaces the active scene with a fresh copy of level. On error the
// current scene stays.
func (d *Director) Load(level string) error {
	scene, err := d.levels.Build(level)
	if err != nil {
		return err
	}
	n, err := SpawnSolids(scene)
	if err != nil {
		scene.Release()
		return err
	}
	d.scenes.ReplaceScene(scene)
	d.current = level
	d.log.Info("level loaded", zap.String("level", level), zap.Int("solids", n))
	return nil
}

// Current is the name of the level last loaded.
func (d *Director) Current() string { return d.current }

// Resume records level as current without loading it, for a scene stack
// restored from a save state.
func (d *Director) Resume(level string) {
	d.current = level
	d.log.Info("level resumed", zap.String("level", level))
}

// QuitRequested reports whether the quit action was pressed.
func (d *Director) QuitRequested() bool { return d.quit }

// HandleEvent reloads on death, follows warps and handles the pause and
// quit keys.
func (d *Director) HandleEvent(ev engine.Event) bool {
	switch e := ev.(type) {
	case DeathEvent:
		d.log.Info("restarting level", zap.String("level", d.current))
		if err := d.Load(d.current); err != nil {
			d.log.Error("reload failed", zap.String("level", d.current), zap.Error(err))
		}
		return true
	case WarpEvent:
		if err := d.Load(e.Level); err != nil {
			d.log.Warn("warp failed", zap.String("level", e.Level), zap.Error(err))
		}
		return true
	case input.KeyEvent:
		return d.handleKey(e)
	}
	return false
}

func (d *Director) handleKey(key input.KeyEvent) bool {
	if !key.Pressed {
		return false
	}
	switch key.Action {
	case input.ActionPause:
		scene := d.scenes.ActiveScene()
		if scene == nil {
			return false
		}
		paused := layers.TogglePause(scene)
		d.log.Debug("pause toggled", zap.Bool("paused", paused))
		return true
	case input.ActionQuit:
		d.quit = true
		return true
	}
	return false
}
