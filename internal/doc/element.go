// Package doc holds the tree-structured document that scenes, layers,
// entities and components serialize into. Each element carries a name,
// string attributes, optional text and ordered children.
package doc

import (
	"strconv"
)

// Element is one node of a document.
type Element struct {
	Name     string            `yaml:"name" json:"name"`
	Attrs    map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Text     string            `yaml:"text,omitempty" json:"text,omitempty"`
	Children []*Element        `yaml:"children,omitempty" json:"children,omitempty"`
}

// New returns an element with no attributes or children.
func New(name string) *Element {
	return &Element{Name: name}
}

// Add appends a new child element and returns it.
func (e *Element) Add(name string) *Element {
	child := New(name)
	e.Children = append(e.Children, child)
	return child
}

// Remove drops child from e. No-op if child is not a direct child.
func (e *Element) Remove(child *Element) {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}

// Child returns the first direct child with the given name.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given name, in order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var result []*Element
	for _, c := range e.Children {
		if c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

// Set stores a string attribute.
func (e *Element) Set(key, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[key] = value
}

// Get returns a string attribute.
func (e *Element) Get(key string) (string, bool) {
	v, ok := e.Attrs[key]
	return v, ok
}

// String returns the attribute or fallback when absent.
func (e *Element) String(key, fallback string) string {
	if v, ok := e.Attrs[key]; ok {
		return v
	}
	return fallback
}

func (e *Element) SetFloat(key string, v float32) {
	e.Set(key, strconv.FormatFloat(float64(v), 'g', -1, 32))
}

// Float parses a float attribute. ok is false when the attribute is
// missing or malformed.
func (e *Element) Float(key string) (float32, bool) {
	raw, ok := e.Attrs[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

func (e *Element) SetInt(key string, v int) {
	e.Set(key, strconv.Itoa(v))
}

func (e *Element) Int(key string) (int, bool) {
	raw, ok := e.Attrs[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (e *Element) SetBool(key string, v bool) {
	e.Set(key, strconv.FormatBool(v))
}

func (e *Element) Bool(key string) (bool, bool) {
	raw, ok := e.Attrs[key]
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
