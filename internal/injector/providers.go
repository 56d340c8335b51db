package injector

import (
	"context"

	"engine2d/internal/assets"
	"engine2d/internal/components"
	"engine2d/internal/config"
	"engine2d/internal/engine"
	"engine2d/internal/game"
	"engine2d/internal/input"
	"engine2d/internal/layers"
	"engine2d/internal/logging"
	"engine2d/internal/physics"
	"engine2d/internal/platform"
	"engine2d/internal/platformer"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// EngineSet is everything a scene graph needs, without a window.
var EngineSet = wire.NewSet(
	ProvideLogger,
	ProvideEvents,
	ProvideFactory,
	ProvideRuntime,
	ProvideSceneManager,
)

// DesktopSet adds the raylib window, input and the platformer flow.
var DesktopSet = wire.NewSet(
	EngineSet,
	ProvideAssets,
	ProvideWindow,
	ProvidePump,
	ProvideCatalog,
	ProvideDirector,
	ProvideGame,
	wire.Bind(new(input.Keyboard), new(*platform.Window)),
	wire.Bind(new(game.Window), new(*platform.Window)),
	wire.Bind(new(game.Flow), new(*platformer.Director)),
	wire.Bind(new(platformer.Levels), new(*game.LevelCatalog)),
)

// ProvideLogger builds the process logger and flushes it on cleanup.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

func ProvideEvents(log *zap.Logger) *engine.EventManager {
	return engine.NewEventManager(log.Named("events"))
}

// ProvideFactory registers every scene object type the game can load.
func ProvideFactory() *engine.Factory {
	f := engine.NewFactory()
	components.Register(f)
	physics.Register(f)
	layers.Register(f)
	platformer.Register(f)
	return f
}

// ProvideRuntime bundles the engine services with the physics settings.
func ProvideRuntime(cfg *config.Config, log *zap.Logger, events *engine.EventManager, factory *engine.Factory) *engine.Runtime {
	return engine.NewRuntime(log, events, factory, engine.PhysicsSettings{
		BulletResolution: cfg.Physics.BulletResolution,
		Gravity:          cfg.Physics.Gravity,
	})
}

func ProvideSceneManager(rt *engine.Runtime) *engine.SceneManager {
	return engine.NewSceneManager(rt)
}

func ProvideAssets(cfg *config.Config, log *zap.Logger) *assets.Manager {
	return assets.NewManager(cfg.Game.AssetsDir, log.Named("assets"))
}

// ProvideWindow opens the raylib window and closes it on cleanup.
func ProvideWindow(cfg *config.Config, textures *assets.Manager, log *zap.Logger) (*platform.Window, func()) {
	w := platform.Open(cfg.Window, textures, log.Named("window"))
	return w, w.Close
}

func ProvidePump(keys input.Keyboard, events *engine.EventManager) *input.Pump {
	return input.NewPump(keys, input.DefaultBindings(), events)
}

// ProvideCatalog reads every level document up front.
func ProvideCatalog(ctx context.Context, cfg *config.Config, rt *engine.Runtime) (*game.LevelCatalog, error) {
	c := game.NewLevelCatalog(cfg.Game.LevelsDir, rt)
	if err := c.Preload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func ProvideDirector(cfg *config.Config, scenes *engine.SceneManager, levels platformer.Levels, log *zap.Logger) *platformer.Director {
	d := platformer.NewDirector(scenes, levels, log)
	d.SplashTitle = cfg.Game.SplashTitle
	d.SplashSubtitle = "press any key"
	d.SplashTime = cfg.Game.SplashTime
	return d
}

func ProvideGame(cfg *config.Config, rt *engine.Runtime, scenes *engine.SceneManager, pump *input.Pump, window game.Window, flow game.Flow) *game.Game {
	g := game.New(rt, scenes, pump, window, flow, cfg.Loop)
	g.SaveFile = cfg.Game.SaveFile
	return g
}
