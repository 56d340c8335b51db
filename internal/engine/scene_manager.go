package engine

import (
	"engine2d/internal/doc"
	"engine2d/internal/render"

	"go.uber.org/zap"
)

// SceneManager owns a stack of scenes. Only the top scene is updated,
// rendered and offered events; scenes beneath it keep their state.
type SceneManager struct {
	rt     *Runtime
	scenes []*Scene
}

// NewSceneManager returns an empty scene stack.
func NewSceneManager(rt *Runtime) *SceneManager {
	return &SceneManager{rt: rt, scenes: make([]*Scene, 0)}
}

func (m *SceneManager) Runtime() *Runtime { return m.rt }

// PushScene makes s the active scene.
func (m *SceneManager) PushScene(s *Scene) {
	if s == nil {
		return
	}
	m.scenes = append(m.scenes, s)
	m.rt.Logger().Debug("scene pushed", zap.String("scene", s.ID().String()), zap.Int("depth", len(m.scenes)))
}

// PopScene releases the active scene and resumes the one beneath it.
// Returns false when the stack is empty.
func (m *SceneManager) PopScene() bool {
	if len(m.scenes) == 0 {
		return false
	}
	top := m.scenes[len(m.scenes)-1]
	m.scenes[len(m.scenes)-1] = nil
	m.scenes = m.scenes[:len(m.scenes)-1]
	top.Release()
	m.rt.Logger().Debug("scene popped", zap.String("scene", top.ID().String()), zap.Int("depth", len(m.scenes)))
	return true
}

// ReplaceScene pops the active scene, if any, and pushes s.
func (m *SceneManager) ReplaceScene(s *Scene) {
	m.PopScene()
	m.PushScene(s)
}

// ActiveScene returns the top of the stack, nil when empty.
func (m *SceneManager) ActiveScene() *Scene {
	if len(m.scenes) == 0 {
		return nil
	}
	return m.scenes[len(m.scenes)-1]
}

// Len returns the stack depth.
func (m *SceneManager) Len() int { return len(m.scenes) }

// Update updates the active scene only.
func (m *SceneManager) Update(deltaTime float32) {
	if s := m.ActiveScene(); s != nil {
		s.Update(deltaTime)
	}
}

func (m *SceneManager) Render(surface render.Surface) {
	if s := m.ActiveScene(); s != nil {
		s.Render(surface)
	}
}

// HandleEvent forwards ev to the active scene.
func (m *SceneManager) HandleEvent(ev Event) bool {
	if s := m.ActiveScene(); s != nil {
		return s.HandleEvent(ev)
	}
	return false
}

// Clear releases every scene, top first.
func (m *SceneManager) Clear() {
	for m.PopScene() {
	}
}

// Serialize writes the whole stack, bottom first.
func (m *SceneManager) Serialize(el *doc.Element) bool {
	for _, s := range m.scenes {
		child := el.Add("scene")
		if !s.Serialize(child) {
			el.Remove(child)
		}
	}
	return true
}

// Deserialize rebuilds the stack from el. The current stack is released
// and replaced only when every scene loads; otherwise it is left as it was.
func (m *SceneManager) Deserialize(el *doc.Element) bool {
	if m.rt == nil || m.rt.Factory == nil {
		return false
	}
	log := m.rt.Logger()

	loaded := make([]*Scene, 0)
	discard := func() {
		for i := len(loaded) - 1; i >= 0; i-- {
			loaded[i].Release()
		}
	}

	for _, child := range el.ChildrenNamed("scene") {
		tag := Tag(child.String("type", SceneType.String()))
		id := ID(child.String("id", ""))

		s, err := m.rt.Factory.CreateScene(tag, id, m.rt)
		if err != nil {
			log.Warn("cannot create scene", zap.Error(err))
			discard()
			return false
		}
		loaded = append(loaded, s)
		if !s.Deserialize(child) {
			log.Warn("scene failed to deserialize", zap.String("scene", id.String()))
			discard()
			return false
		}
	}

	m.Clear()
	m.scenes = loaded
	return true
}
