package game

import (
	"context"
	"time"

	"engine2d/internal/config"
	"engine2d/internal/engine"
	"engine2d/internal/input"
	"engine2d/internal/render"

	"go.uber.org/zap"
)

// Window is the platform backend the loop draws into.
type Window interface {
	render.Surface
	ShouldClose() bool
	BeginFrame()
	EndFrame()
}

// Paced is implemented by windows that already wait for vsync or a
// target frame rate. The loop sleeps between frames for those that
// do not.
type Paced interface {
	Paced() bool
}

// Flow decides which level runs and when the game ends.
type Flow interface {
	engine.Listener
	Connect(events *engine.EventManager)
	Start(level string) error
	Current() string
	Resume(level string)
	QuitRequested() bool
}

// Game runs the scene stack at a fixed tick rate and renders once per
// frame.
type Game struct {
	scenes *engine.SceneManager
	events *engine.EventManager
	pump   *input.Pump
	window Window
	flow   Flow
	loop   config.LoopConfig
	log    *zap.Logger

	SaveFile string

	acc   time.Duration
	ticks uint64
	now   func() time.Time
}

// New wires the game. Key events reach the scene stack first, so
// overlays such as the pause layer can consume them before the flow and
// the entities see them.
func New(rt *engine.Runtime, scenes *engine.SceneManager, pump *input.Pump, window Window, flow Flow, loop config.LoopConfig) *Game {
	g := &Game{
		scenes: scenes,
		events: rt.Events,
		pump:   pump,
		window: window,
		flow:   flow,
		loop:   loop,
		log:    rt.Logger().Named("game"),
		now:    time.Now,
	}
	g.events.Connect(g, input.KeyEventType)
	if flow != nil {
		flow.Connect(g.events)
	}
	return g
}

func (g *Game) Scenes() *engine.SceneManager { return g.scenes }
func (g *Game) Ticks() uint64                { return g.ticks }

// Start hands the first level to the flow.
func (g *Game) Start(level string) error {
	if g.flow == nil {
		return nil
	}
	return g.flow.Start(level)
}

// Step runs one fixed update: input is polled, queued events are
// delivered, the active scene updates, and events it raised are
// delivered before the next step.
func (g *Game) Step(deltaTime float32) {
	if g.pump != nil {
		g.pump.Poll()
	}
	g.events.Dispatch()
	g.scenes.Update(deltaTime)
	g.events.Dispatch()
	g.ticks++
}

// Advance feeds elapsed wall time into the accumulator and runs as many
// fixed steps as it covers, up to the per-frame cap. Time beyond the cap
// is dropped. Returns the number of steps run.
func (g *Game) Advance(elapsed time.Duration) int {
	if g.loop.MaxFrameTime > 0 && elapsed > g.loop.MaxFrameTime {
		elapsed = g.loop.MaxFrameTime
	}
	g.acc += elapsed

	tick := g.loop.TickDuration()
	dt := float32(tick.Seconds())
	steps := 0
	for g.acc >= tick {
		if g.loop.MaxTicksPerFrame > 0 && steps >= g.loop.MaxTicksPerFrame {
			g.log.Debug("dropping ticks", zap.Duration("behind", g.acc))
			g.acc %= tick
			break
		}
		g.Step(dt)
		g.acc -= tick
		steps++
	}
	return steps
}

// Render draws the scene stack into the window.
func (g *Game) Render() {
	if g.window == nil {
		return
	}
	g.window.BeginFrame()
	g.scenes.Render(g.window)
	g.window.EndFrame()
}

func (g *Game) done() bool {
	if g.window != nil && g.window.ShouldClose() {
		return true
	}
	return g.flow != nil && g.flow.QuitRequested()
}

func (g *Game) paced() bool {
	p, ok := g.window.(Paced)
	return ok && p.Paced()
}

// Run loops until the window closes, the flow asks to quit or ctx is
// cancelled. It returns ctx.Err() on cancellation and nil otherwise.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("loop started",
		zap.Int("tick_rate", g.loop.TickRate),
		zap.Duration("max_frame_time", g.loop.MaxFrameTime))

	last := g.now()
	for !g.done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		current := g.now()
		g.Advance(current.Sub(last))
		last = current
		g.Render()

		if !g.paced() {
			if wait := g.loop.TickDuration() - g.acc; wait > 0 {
				time.Sleep(wait)
			}
		}
	}
	g.log.Info("loop stopped", zap.Uint64("ticks", g.ticks))
	return nil
}

// HandleEvent routes key events to the scene stack and handles the save
// state keys when no scene consumed them.
func (g *Game) HandleEvent(ev engine.Event) bool {
	if g.scenes.HandleEvent(ev) {
		return true
	}
	key, ok := ev.(input.KeyEvent)
	if !ok || !key.Pressed || g.SaveFile == "" {
		return false
	}
	switch key.Action {
	case input.ActionSave:
		if err := g.SaveState(g.SaveFile); err != nil {
			g.log.Error("save failed", zap.Error(err))
		}
		return true
	case input.ActionLoad:
		if err := g.LoadState(g.SaveFile); err != nil {
			g.log.Error("load failed", zap.Error(err))
		}
		return true
	}
	return false
}
