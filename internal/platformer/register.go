package platformer

import "engine2d/internal/engine"

// Register adds the player components to f.
func Register(f *engine.Factory) {
	f.RegisterComponent(PlayerColliderType, func(id engine.ID) engine.Component {
		return NewPlayerCollider(id)
	})
	f.RegisterComponent(PlayerControllerType, func(id engine.ID) engine.Component {
		return NewPlayerController(id)
	})
	f.RegisterComponent(CameraFollowType, func(id engine.ID) engine.Component {
		return NewCameraFollow(id)
	})
}
