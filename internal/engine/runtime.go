package engine

import "go.uber.org/zap"

// PhysicsSettings are the tunables colliders and bodies read from their
// scene's runtime.
type PhysicsSettings struct {
	BulletResolution int
	Gravity          float32
}

// Runtime bundles the services a scene graph needs. It is handed to each
// scene at construction; nothing in the engine reaches for a global.
type Runtime struct {
	Log     *zap.Logger
	Events  *EventManager
	Factory *Factory
	Physics PhysicsSettings
}

// NewRuntime bundles the given services. A nil logger becomes a no-op one.
func NewRuntime(log *zap.Logger, events *EventManager, factory *Factory, physics PhysicsSettings) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runtime{
		Log:     log,
		Events:  events,
		Factory: factory,
		Physics: physics,
	}
}

// Logger is nil-safe and never returns nil.
func (r *Runtime) Logger() *zap.Logger {
	if r == nil || r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}
