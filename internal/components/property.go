package components

import (
	"sort"

	"engine2d/internal/doc"
	"engine2d/internal/engine"
)

var PropertyType = engine.Tag("Property")

// Property holds free-form designer metadata, such as a warp's
// destination level.
type Property struct {
	engine.BaseComponent
	values map[string]string
}

// NewProperty returns an empty property map.
func NewProperty(id engine.ID) *Property {
	return &Property{
		BaseComponent: engine.NewBaseComponent(id, PropertyType),
		values:        make(map[string]string),
	}
}

func (p *Property) Set(key, value string) { p.values[key] = value }

// Get returns the value stored under key.
func (p *Property) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Property) Delete(key string) { delete(p.values, key) }

// Keys returns the keys in sorted order.
func (p *Property) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p *Property) Serialize(el *doc.Element) bool {
	p.BaseComponent.Serialize(el)
	for _, k := range p.Keys() {
		child := el.Add("property")
		child.Set("name", k)
		child.Text = p.values[k]
	}
	return true
}

func (p *Property) Deserialize(el *doc.Element) bool {
	p.BaseComponent.Deserialize(el)
	for _, child := range el.ChildrenNamed("property") {
		name, ok := child.Get("name")
		if !ok || name == "" {
			return false
		}
		p.values[name] = child.Text
	}
	return true
}
