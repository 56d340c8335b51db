package engine

import (
	"testing"

	"engine2d/internal/render"
)

func TestNewEntityDefaults(t *testing.T) {
	e := NewEntity("", TypeTag{})

	if e.ID().IsZero() {
		t.Error("entity should get a generated id")
	}
	if e.Type() != EntityType {
		t.Errorf("Expected type %q, got %q", EntityType, e.Type())
	}
	if e.IsZombie() {
		t.Error("new entity should not be a zombie")
	}
}

func TestEntityPushAndPopComponent(t *testing.T) {
	e := NewEntity("e", EntityType)
	first := newCounter("a")
	second := newCounter("b")

	e.PushComponent(first)
	e.PushComponent(second)

	if len(e.Components()) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(e.Components()))
	}
	if first.Entity() != e {
		t.Error("component should point back to its entity")
	}

	popped := e.PopComponent()
	if popped != second {
		t.Error("PopComponent should remove the last pushed component")
	}
	if second.Alive() {
		t.Error("popped component should be released")
	}
	if !second.destroyed {
		t.Error("popped component should see OnDestroy")
	}
	if second.Entity() != nil {
		t.Error("released component should not reach its entity")
	}
	if e.PopComponent() != first || e.PopComponent() != nil {
		t.Error("PopComponent should drain in reverse push order")
	}
}

func TestEntityRemoveComponent(t *testing.T) {
	e := NewEntity("e", EntityType)
	a := newCounter("a")
	b := newLabel("b")
	e.PushComponent(a)
	e.PushComponent(b)

	if e.RemoveComponent("missing") {
		t.Error("removing an absent id should report false")
	}
	if !e.RemoveComponent("a") {
		t.Error("RemoveComponent should find a")
	}
	if e.Component("a") != nil {
		t.Error("a should be gone")
	}
	if !e.RemoveComponentRef(b) {
		t.Error("RemoveComponentRef should find b")
	}
	if e.RemoveComponentRef(b) {
		t.Error("second removal should be a no-op")
	}
	if len(e.Components()) != 0 {
		t.Errorf("Expected no components, got %d", len(e.Components()))
	}
}

func TestEntityComponentOfTypeReturnsFirstPushed(t *testing.T) {
	e := NewEntity("e", EntityType)

	if e.ComponentOfType(counterType) != nil {
		t.Error("lookup before push should return nil")
	}

	first := newCounter("first")
	second := newCounter("second")
	other := newLabel("label")
	e.PushComponent(other)
	e.PushComponent(first)
	e.PushComponent(second)

	for _, c := range e.Components() {
		got := e.ComponentOfType(c.Type())
		want := Component(first)
		if c.Type() == labelType {
			want = other
		}
		if got != want {
			t.Errorf("ComponentOfType(%q) returned %v, want %v", c.Type(), got.ID(), want.ID())
		}
	}

	e.RemoveComponentRef(first)
	if e.ComponentOfType(counterType) != second {
		t.Error("after removing the first counter the second should be found")
	}
}

func TestGetComponentGeneric(t *testing.T) {
	e := NewEntity("e", EntityType)
	l := newLabel("l")
	e.PushComponent(newCounter("c"))
	e.PushComponent(l)

	if got := GetComponent[*label](e); got != l {
		t.Error("GetComponent should find the label")
	}
	if got := GetComponent[*label](nil); got != nil {
		t.Error("GetComponent on nil entity should return nil")
	}
}

func TestEntityUpdateInPushOrder(t *testing.T) {
	e := NewEntity("e", EntityType)
	var order []ID
	for _, id := range []ID{"a", "b", "c"} {
		c := newCounter(id)
		c.onUpdate = func() { order = append(order, id) }
		e.PushComponent(c)
	}

	e.Update(0.016)

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("Expected update order [a b c], got %v", order)
	}
}

func TestEntityRemoveSiblingDuringUpdate(t *testing.T) {
	e := NewEntity("e", EntityType)
	a := newCounter("a")
	b := newCounter("b")
	a.onUpdate = func() { e.RemoveComponentRef(b) }
	e.PushComponent(a)
	e.PushComponent(b)

	e.Update(0.016)

	if b.Count != 0 {
		t.Error("a component removed earlier in the same update should not run")
	}
	if len(e.Components()) != 1 {
		t.Errorf("Expected 1 component, got %d", len(e.Components()))
	}
}

func TestEntityKillIsDeferredToSweep(t *testing.T) {
	rt := newTestRuntime()
	_, layer := newTestLayer(rt)

	victim := NewEntity("victim", EntityType)
	c := newCounter("c")
	victim.PushComponent(c)
	layer.PushEntity(victim)

	killer := NewEntity("killer", EntityType)
	k := newCounter("k")
	k.onUpdate = func() { victim.Kill(); victim.Kill() }
	layer.PushEntity(killer)
	killer.PushComponent(k)

	layer.Update(0.016)

	if !victim.IsZombie() {
		t.Fatal("victim should be a zombie")
	}
	if layer.Entity("victim") == nil {
		t.Error("zombie should stay in the layer until the next sweep")
	}
	if !c.Alive() {
		t.Error("zombie components should not be destroyed before the sweep")
	}

	rec := render.NewRecorder(320, 240)
	layer.Render(rec)
	layer.Render(rec)

	layer.Update(0.016)

	if layer.Entity("victim") != nil {
		t.Error("victim should be swept on the next update")
	}
	if layer.Len() != 1 {
		t.Errorf("Expected 1 entity, got %d", layer.Len())
	}
	if c.Alive() || !c.destroyed {
		t.Error("swept entity should destroy its components")
	}
	if victim.Alive() {
		t.Error("swept entity should be released")
	}
	if c.Count != 1 {
		t.Errorf("victim should have updated once before being killed, got %d", c.Count)
	}
}

func TestEntitySelfKillDuringUpdate(t *testing.T) {
	rt := newTestRuntime()
	_, layer := newTestLayer(rt)

	e := NewEntity("self", EntityType)
	layer.PushEntity(e)
	first := newCounter("first")
	second := newCounter("second")
	first.onUpdate = func() { e.Kill() }
	e.PushComponent(first)
	e.PushComponent(second)

	for i := 0; i < 3; i++ {
		layer.Update(0.016)
	}

	if second.Count != 1 {
		t.Errorf("components should finish the tick in which the entity died, got %d", second.Count)
	}
	if layer.Len() != 0 {
		t.Errorf("Expected empty layer, got %d", layer.Len())
	}
}

func TestEntityRuntimeThroughLayer(t *testing.T) {
	rt := newTestRuntime()
	s, layer := newTestLayer(rt)
	e := NewEntity("e", EntityType)
	c := newCounter("c")
	e.PushComponent(c)

	if c.Runtime() != nil {
		t.Error("detached entity should not reach a runtime")
	}

	layer.PushEntity(e)

	if e.Scene() != s {
		t.Error("entity should reach its scene through the layer")
	}
	if c.Runtime() != rt {
		t.Error("component should reach the scene runtime")
	}
	if c.Logger() == nil {
		t.Error("Logger should never be nil")
	}
}

func TestSiblingBindsLazily(t *testing.T) {
	e := NewEntity("e", EntityType)
	owner := newCounter("owner")
	e.PushComponent(owner)

	var cache Weak[*label]
	if _, ok := Sibling(owner, labelType, &cache); ok {
		t.Error("sibling should be missing before it is pushed")
	}

	l := newLabel("l")
	e.PushComponent(l)
	got, ok := Sibling(owner, labelType, &cache)
	if !ok || got != l {
		t.Fatal("sibling should bind once pushed")
	}

	e.RemoveComponentRef(l)
	if _, ok := Sibling(owner, labelType, &cache); ok {
		t.Error("removed sibling should not resolve")
	}
}
