package engine

import "go.uber.org/zap"

// EventType names a kind of event. Listeners connect by type.
type EventType string

// Event is anything that can travel on the bus.
type Event interface {
	EventType() EventType
}

// Listener receives events. Returning true consumes the event and stops
// propagation to listeners connected after it.
type Listener interface {
	HandleEvent(ev Event) bool
}

// EventManager is a multi-cast event bus. Listeners are compared by
// identity, so they must be pointers (funcs cannot be compared in Go and
// could never be disconnected).
//
// Queued events are double buffered: Dispatch delivers what was queued
// before it was called; events queued while dispatching wait for the next
// Dispatch.
type EventManager struct {
	listeners map[EventType][]Listener
	queue     []Event
	log       *zap.Logger
}

// NewEventManager returns an empty bus. A nil logger is replaced by a
// no-op one.
func NewEventManager(log *zap.Logger) *EventManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventManager{
		listeners: make(map[EventType][]Listener),
		log:       log,
	}
}

// Connect subscribes l to events of type t. Connecting twice is a no-op.
func (m *EventManager) Connect(l Listener, t EventType) {
	if l == nil {
		return
	}
	for _, existing := range m.listeners[t] {
		if existing == l {
			return
		}
	}
	m.listeners[t] = append(m.listeners[t], l)
}

// Disconnect removes l from t. Safe to call from inside HandleEvent.
func (m *EventManager) Disconnect(l Listener, t EventType) {
	current := m.listeners[t]
	for i, existing := range current {
		if existing != l {
			continue
		}
		next := make([]Listener, 0, len(current)-1)
		next = append(next, current[:i]...)
		next = append(next, current[i+1:]...)
		if len(next) == 0 {
			delete(m.listeners, t)
		} else {
			m.listeners[t] = next
		}
		return
	}
}

// DisconnectAll removes l from every event type.
func (m *EventManager) DisconnectAll(l Listener) {
	for t := range m.listeners {
		m.Disconnect(l, t)
	}
}

// ListenerCount returns the number of listeners connected to t.
func (m *EventManager) ListenerCount(t EventType) int {
	return len(m.listeners[t])
}

// Queue defers ev to the next Dispatch.
func (m *EventManager) Queue(ev Event) {
	if ev == nil {
		return
	}
	m.queue = append(m.queue, ev)
}

// Pending returns the number of queued, undelivered events.
func (m *EventManager) Pending() int {
	return len(m.queue)
}

// Trigger delivers ev immediately and reports whether a listener consumed
// it.
func (m *EventManager) Trigger(ev Event) bool {
	listeners := m.listeners[ev.EventType()]
	for _, l := range listeners {
		if l.HandleEvent(ev) {
			return true
		}
	}
	return false
}

// Dispatch delivers every event queued before the call and returns how
// many were delivered.
func (m *EventManager) Dispatch() int {
	if len(m.queue) == 0 {
		return 0
	}
	batch := m.queue
	m.queue = nil
	for _, ev := range batch {
		if !m.Trigger(ev) {
			m.log.Debug("event not consumed", zap.String("type", string(ev.EventType())))
		}
	}
	return len(batch)
}
