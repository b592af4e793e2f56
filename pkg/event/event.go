// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Vehicle event types
const (
	// Collision is published by the host when the vehicle hits something.
	Collision Type = "collision"

	SurfaceChanged    Type = "surface_changed"
	FuelExhausted     Type = "fuel_exhausted"
	Refueled          Type = "refueled"
	CollisionRecorded Type = "collision_recorded"
	VehicleDestroyed  Type = "vehicle_destroyed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies one registered handler
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type entry struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]entry
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]entry),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], entry{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(id) },
	}
}

// Unsubscribe removes the handler registered under id. Unknown IDs are ignored.
func (b *Bus) Unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, entries := range b.handlers {
		for i, e := range entries {
			if e.id != id {
				continue
			}
			remaining := make([]entry, 0, len(entries)-1)
			remaining = append(remaining, entries[:i]...)
			remaining = append(remaining, entries[i+1:]...)
			if len(remaining) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = remaining
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine and may subscribe or unsubscribe.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	entries := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, e := range entries {
		e.handler(event)
	}
}

// Specific event implementations

// CollisionEvent carries the impact speed of a collision
type CollisionEvent struct {
	BaseEvent
	Speed float64
}

// NewCollisionEvent creates a collision report for the vehicle
func NewCollisionEvent(source interface{}, speed float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{EventType: Collision, Source: source},
		Speed:     speed,
	}
}

// SurfaceEvent reports a change of surface classification
type SurfaceEvent struct {
	BaseEvent
	From string
	To   string
}

// NewSurfaceEvent creates a surface transition event
func NewSurfaceEvent(source interface{}, from, to string) *SurfaceEvent {
	return &SurfaceEvent{
		BaseEvent: BaseEvent{EventType: SurfaceChanged, Source: source},
		From:      from,
		To:        to,
	}
}

// ResourceEvent reports fuel and durability after a resource change
type ResourceEvent struct {
	BaseEvent
	Fuel       float64
	Durability float64
	// Amount is the change that triggered the event, if any.
	Amount float64
}

// NewResourceEvent creates a resource event of the given type
func NewResourceEvent(eventType Type, source interface{}, fuel, durability, amount float64) *ResourceEvent {
	return &ResourceEvent{
		BaseEvent:  BaseEvent{EventType: eventType, Source: source},
		Fuel:       fuel,
		Durability: durability,
		Amount:     amount,
	}
}
