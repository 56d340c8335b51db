//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"context"

	"engine2d/internal/config"
	"engine2d/internal/engine"
	"engine2d/internal/game"

	"github.com/google/wire"
)

// InitializeGame builds the desktop game. The cleanup closes the window
// and flushes the logger.
func InitializeGame(ctx context.Context, cfg *config.Config) (*game.Game, func(), error) {
	wire.Build(DesktopSet)
	return nil, nil, nil
}

// InitializeRuntime builds a headless runtime with every type registered.
func InitializeRuntime(cfg *config.Config) (*engine.Runtime, func(), error) {
	wire.Build(EngineSet)
	return nil, nil, nil
}
