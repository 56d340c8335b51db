package engine

import "engine2d/internal/doc"

var (
	counterType = Tag("test.Counter")
	labelType   = Tag("test.Label")
)

// counter counts its updates and can run a hook from inside Update.
type counter struct {
	BaseComponent
	Count     int
	onUpdate  func()
	destroyed bool
}

func newCounter(id ID) *counter {
	return &counter{BaseComponent: NewBaseComponent(id, counterType)}
}

func (c *counter) Update(deltaTime float32) {
	c.Count++
	if c.onUpdate != nil {
		c.onUpdate()
	}
}

func (c *counter) OnDestroy() { c.destroyed = true }

func (c *counter) Serialize(el *doc.Element) bool {
	c.BaseComponent.Serialize(el)
	el.SetInt("count", c.Count)
	return true
}

func (c *counter) Deserialize(el *doc.Element) bool {
	c.BaseComponent.Deserialize(el)
	n, ok := el.Int("count")
	if !ok {
		return false
	}
	c.Count = n
	return true
}

type label struct {
	BaseComponent
	Text string
}

func newLabel(id ID) *label {
	return &label{BaseComponent: NewBaseComponent(id, labelType)}
}

func (l *label) Serialize(el *doc.Element) bool {
	l.BaseComponent.Serialize(el)
	el.Set("text", l.Text)
	return true
}

func (l *label) Deserialize(el *doc.Element) bool {
	l.BaseComponent.Deserialize(el)
	l.Text = el.String("text", "")
	return true
}

func newTestRuntime() *Runtime {
	f := NewFactory()
	f.RegisterComponent(counterType, func(id ID) Component { return newCounter(id) })
	f.RegisterComponent(labelType, func(id ID) Component { return newLabel(id) })
	return NewRuntime(nil, NewEventManager(nil), f, PhysicsSettings{BulletResolution: 32})
}

// newTestLayer returns an entity layer already attached to a scene.
func newTestLayer(rt *Runtime) (*Scene, *EntityLayer) {
	s := NewScene("scene", SceneType, rt)
	l := NewEntityLayer("entities")
	s.PushLayer(l)
	return s, l
}
