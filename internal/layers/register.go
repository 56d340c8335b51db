package layers

import "engine2d/internal/engine"

// Register adds the tilemap, pause and splash layer types to f.
func Register(f *engine.Factory) {
	f.RegisterLayer(TilemapLayerType, func(id engine.ID) engine.Layer {
		return NewTilemapLayer(id)
	})
	f.RegisterLayer(PauseLayerType, func(id engine.ID) engine.Layer {
		return NewPauseLayer(id)
	})
	f.RegisterLayer(SplashLayerType, func(id engine.ID) engine.Layer {
		return NewSplashLayer(id, "", 2)
	})
}
