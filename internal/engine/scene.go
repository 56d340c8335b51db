package engine

import (
	"fmt"

	"engine2d/internal/doc"
	"engine2d/internal/render"

	"go.uber.org/zap"
)

// SceneType tags plain scenes.
var SceneType = Tag("Scene")

// Scene is an ordered stack of layers. Update and Render walk the layers
// bottom to top; HandleEvent walks them top to bottom so overlays see
// input first.
type Scene struct {
	lifetime
	id     ID
	tag    TypeTag
	rt     *Runtime
	layers []Layer
}

// NewScene returns an empty scene bound to rt.
func NewScene(id ID, tag TypeTag, rt *Runtime) *Scene {
	if id.IsZero() {
		id = NewID()
	}
	if tag.IsZero() {
		tag = SceneType
	}
	return &Scene{
		id:     id,
		tag:    tag,
		rt:     rt,
		layers: make([]Layer, 0),
	}
}

func (s *Scene) ID() ID               { return s.id }
func (s *Scene) Type() TypeTag        { return s.tag }
func (s *Scene) Runtime() *Runtime    { return s.rt }
func (s *Scene) Logger() *zap.Logger { return s.rt.Logger() }

// PushLayer puts l on top of the scene.
func (s *Scene) PushLayer(l Layer) error {
	return s.InsertLayer(len(s.layers), l)
}

// InsertLayer puts l at index, clamped to the layer range.
func (s *Scene) InsertLayer(index int, l Layer) error {
	if l == nil {
		return nil
	}
	if s.Layer(l.ID()) != nil {
		return fmt.Errorf("%w: layer %q in scene %q", ErrDuplicateID, l.ID(), s.id)
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.layers) {
		index = len(s.layers)
	}

	next := make([]Layer, 0, len(s.layers)+1)
	next = append(next, s.layers[:index]...)
	next = append(next, l)
	next = append(next, s.layers[index:]...)
	s.layers = next

	l.Attach(s)
	return nil
}

// Layer returns the layer with the given id, or nil.
func (s *Scene) Layer(id ID) Layer {
	for _, l := range s.layers {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

// LayerOfType returns the lowest layer with the given tag.
func (s *Scene) LayerOfType(tag TypeTag) Layer {
	for _, l := range s.layers {
		if l.Type().Is(tag) {
			return l
		}
	}
	return nil
}

// RemoveLayer releases the layer with the given id. The slice is replaced
// rather than edited so an Update in progress keeps its own view.
func (s *Scene) RemoveLayer(id ID) bool {
	for i, l := range s.layers {
		if l.ID() != id {
			continue
		}
		next := make([]Layer, 0, len(s.layers)-1)
		next = append(next, s.layers[:i]...)
		next = append(next, s.layers[i+1:]...)
		s.layers = next
		l.Release()
		return true
	}
	return false
}

// Layers returns the layers bottom to top. The slice must not be modified.
func (s *Scene) Layers() []Layer {
	return s.layers
}

// Update runs every layer from the topmost update blocker upward. With no
// blocker present every layer runs.
func (s *Scene) Update(deltaTime float32) {
	layers := s.layers
	start := 0
	for i := len(layers) - 1; i >= 0; i-- {
		if b, ok := layers[i].(UpdateBlocker); ok && layers[i].Alive() && b.BlocksUpdate() {
			start = i
			break
		}
	}
	for _, l := range layers[start:] {
		if l.Alive() {
			l.Update(deltaTime)
		}
	}
}

// Render draws every layer bottom to top.
func (s *Scene) Render(surface render.Surface) {
	for _, l := range s.layers {
		if l.Alive() {
			l.Render(surface)
		}
	}
}

// HandleEvent offers ev to each listening layer, top first, and stops at
// the first one that consumes it.
func (s *Scene) HandleEvent(ev Event) bool {
	layers := s.layers
	for i := len(layers) - 1; i >= 0; i-- {
		l, ok := layers[i].(Listener)
		if !ok || !layers[i].Alive() {
			continue
		}
		if l.HandleEvent(ev) {
			return true
		}
	}
	return false
}

func (s *Scene) Serialize(el *doc.Element) bool {
	el.Set("id", s.id.String())
	el.Set("type", s.tag.String())
	for _, l := range s.layers {
		child := el.Add("layer")
		if !l.Serialize(child) {
			el.Remove(child)
		}
	}
	return true
}

// Deserialize appends one layer per "layer" child. On failure the layers
// added so far stay in the scene; callers discard the scene.
func (s *Scene) Deserialize(el *doc.Element) bool {
	if s.rt == nil || s.rt.Factory == nil {
		return false
	}
	log := s.Logger()

	for _, child := range el.ChildrenNamed("layer") {
		tag := Tag(child.String("type", ""))
		id := ID(child.String("id", ""))

		l, err := s.rt.Factory.CreateLayer(tag, id)
		if err != nil {
			log.Warn("cannot create layer", zap.String("scene", s.id.String()), zap.Error(err))
			return false
		}
		if err := s.PushLayer(l); err != nil {
			log.Warn("cannot add layer", zap.Error(err))
			l.Release()
			return false
		}
		if !l.Deserialize(child) {
			log.Warn("layer failed to deserialize",
				zap.String("scene", s.id.String()),
				zap.String("layer", l.ID().String()),
				zap.String("type", tag.String()))
			return false
		}
	}
	return true
}

// Release releases the layers top to bottom, then the scene.
func (s *Scene) Release() {
	for i := len(s.layers) - 1; i >= 0; i-- {
		s.layers[i].Release()
	}
	s.layers = nil
	s.release()
}
