package input

import (
	"testing"

	"engine2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeyboard struct {
	pressed  map[int32]bool
	released map[int32]bool
}

func (k *fakeKeyboard) IsKeyPressed(key int32) bool  { return k.pressed[key] }
func (k *fakeKeyboard) IsKeyReleased(key int32) bool { return k.released[key] }

type collect struct{ got []KeyEvent }

func (c *collect) HandleEvent(ev engine.Event) bool {
	c.got = append(c.got, ev.(KeyEvent))
	return false
}

func TestPumpQueuesEdges(t *testing.T) {
	events := engine.NewEventManager(nil)
	sink := &collect{}
	events.Connect(sink, KeyEventType)

	kb := &fakeKeyboard{
		pressed:  map[int32]bool{rl.KeySpace: true},
		released: map[int32]bool{rl.KeyLeft: true},
	}
	pump := NewPump(kb, nil, events)

	assert.Equal(t, 2, pump.Poll())
	assert.Empty(t, sink.got, "events wait for dispatch")

	events.Dispatch()
	require.Len(t, sink.got, 2)
	assert.Contains(t, sink.got, KeyEvent{Action: ActionJump, Pressed: true})
	assert.Contains(t, sink.got, KeyEvent{Action: ActionLeft, Pressed: false})
}

func TestPumpWithoutKeyboard(t *testing.T) {
	pump := NewPump(nil, nil, engine.NewEventManager(nil))
	assert.Zero(t, pump.Poll())
}

func TestStateCountsKeysPerAction(t *testing.T) {
	s := NewState()
	s.Apply(KeyEvent{Action: ActionLeft, Pressed: true})
	s.Apply(KeyEvent{Action: ActionLeft, Pressed: true})
	s.Apply(KeyEvent{Action: ActionLeft, Pressed: false})
	assert.True(t, s.Held(ActionLeft))

	s.Apply(KeyEvent{Action: ActionLeft, Pressed: false})
	s.Apply(KeyEvent{Action: ActionLeft, Pressed: false})
	assert.False(t, s.Held(ActionLeft))

	s.Apply(KeyEvent{Action: ActionJump, Pressed: true})
	s.Clear()
	assert.False(t, s.Held(ActionJump))
}
