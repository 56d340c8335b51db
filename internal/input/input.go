// Package input turns keyboard state into events on the engine bus.
package input

import (
	"sort"

	"engine2d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a named game input, independent of the key bound to it.
type Action string

const (
	ActionLeft    Action = "left"
	ActionRight   Action = "right"
	ActionJump    Action = "jump"
	ActionPause   Action = "pause"
	ActionConfirm Action = "confirm"
	ActionQuit    Action = "quit"
	ActionSave    Action = "save"
	ActionLoad    Action = "load"
)

// KeyEventType is the event type of KeyEvent.
const KeyEventType engine.EventType = "input.key"

// KeyEvent reports an action edge: Pressed is true on press and false on
// release.
type KeyEvent struct {
	Action  Action
	Pressed bool
}

func (KeyEvent) EventType() engine.EventType { return KeyEventType }

// Bindings maps raylib key codes to actions. Several keys may share an
// action.
type Bindings map[int32]Action

// DefaultBindings maps actions to the keyboard layout the game ships with.
func DefaultBindings() Bindings {
	return Bindings{
		rl.KeyLeft:   ActionLeft,
		rl.KeyA:      ActionLeft,
		rl.KeyRight:  ActionRight,
		rl.KeyD:      ActionRight,
		rl.KeySpace:  ActionJump,
		rl.KeyUp:     ActionJump,
		rl.KeyW:      ActionJump,
		rl.KeyP:      ActionPause,
		rl.KeyEnter:  ActionConfirm,
		rl.KeyEscape: ActionQuit,
		rl.KeyF5:     ActionSave,
		rl.KeyF9:     ActionLoad,
	}
}

// Keyboard is the edge-triggered key state of the platform backend.
type Keyboard interface {
	IsKeyPressed(key int32) bool
	IsKeyReleased(key int32) bool
}

// Pump polls a Keyboard once per tick and queues a KeyEvent per edge.
type Pump struct {
	keys     Keyboard
	bindings Bindings
	events   *engine.EventManager
	order    []int32
}

// NewPump polls keys through bindings and queues on events.
func NewPump(keys Keyboard, bindings Bindings, events *engine.EventManager) *Pump {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	order := make([]int32, 0, len(bindings))
	for key := range bindings {
		order = append(order, key)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return &Pump{keys: keys, bindings: bindings, events: events, order: order}
}

// Poll queues the edges seen since the last poll and returns how many.
func (p *Pump) Poll() int {
	if p.keys == nil {
		return 0
	}
	n := 0
	for _, key := range p.order {
		action := p.bindings[key]
		if p.keys.IsKeyPressed(key) {
			p.events.Queue(KeyEvent{Action: action, Pressed: true})
			n++
		}
		if p.keys.IsKeyReleased(key) {
			p.events.Queue(KeyEvent{Action: action, Pressed: false})
			n++
		}
	}
	return n
}

// State tracks which actions are held, counting each bound key so that
// releasing one of two keys for the same action keeps it held.
type State struct {
	held map[Action]int
}

func NewState() *State {
	return &State{held: make(map[Action]int)}
}

// Apply records a press or release.
func (s *State) Apply(ev KeyEvent) {
	if ev.Pressed {
		s.held[ev.Action]++
		return
	}
	if s.held[ev.Action] > 0 {
		s.held[ev.Action]--
	}
}

func (s *State) Held(a Action) bool { return s.held[a] > 0 }

func (s *State) Clear() {
	s.held = make(map[Action]int)
}
