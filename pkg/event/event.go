// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	RingSpawned        Type = "ring_spawned"
	RingDestroyed      Type = "ring_destroyed"
	RingExpired        Type = "ring_expired"
	IncompatibleBounce Type = "incompatible_bounce"
	BodyCollision      Type = "body_collision"
	ArenaHit           Type = "arena_hit"
	ScoreChanged       Type = "score_changed"
	MatchEnded         Type = "match_ended"
	SimulationStarted  Type = "simulation_started"
	SimulationStopped  Type = "simulation_stopped"
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

// Subscription is returned by Subscribe. Cancel removes the handler and
// may be called more than once.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// copy so a Publish iterating the old slice is unaffected
			kept := make([]subscriber, 0, len(subs)-1)
			kept = append(kept, subs[:i]...)
			kept = append(kept, subs[i+1:]...)
			if len(kept) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = kept
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// RingEvent describes a ring being spawned, destroyed or expiring
type RingEvent struct {
	BaseEvent
	Tick     uint64
	RingID   entity.ID
	Category entity.Category
	Radius   float64
}

// NewRingEvent creates a new ring event
func NewRingEvent(eventType Type, source interface{}, tick uint64, ring *entity.Ring) *RingEvent {
	return &RingEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick:     tick,
		RingID:   ring.GetID(),
		Category: ring.Category(),
		Radius:   ring.Radius(),
	}
}

// BounceEvent records a body bouncing off a ring it may not destroy
type BounceEvent struct {
	BaseEvent
	Tick         uint64
	BodyID       entity.ID
	RingID       entity.ID
	BodyCategory entity.Category
	RingCategory entity.Category
}

// NewIncompatibleBounceEvent creates a new incompatible bounce event
func NewIncompatibleBounceEvent(source interface{}, tick uint64, body *entity.Body, ring *entity.Ring) *BounceEvent {
	return &BounceEvent{
		BaseEvent: BaseEvent{
			EventType: IncompatibleBounce,
			Source:    source,
		},
		Tick:         tick,
		BodyID:       body.GetID(),
		RingID:       ring.GetID(),
		BodyCategory: body.Category(),
		RingCategory: ring.Category(),
	}
}

// CollisionEvent contains information about body-body collisions
type CollisionEvent struct {
	BaseEvent
	Tick    uint64
	EntityA entity.ID
	EntityB entity.ID
	Impulse float64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, tick uint64, entityA, entityB entity.ID, impulse float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: BodyCollision,
			Source:    source,
		},
		Tick:    tick,
		EntityA: entityA,
		EntityB: entityB,
		Impulse: impulse,
	}
}

// ArenaHitEvent records a body striking the arena wall. BodyIndex is the
// body's position in the world's body list.
type ArenaHitEvent struct {
	BaseEvent
	Tick      uint64
	BodyID    entity.ID
	BodyIndex int
}

// NewArenaHitEvent creates a new arena hit event
func NewArenaHitEvent(source interface{}, tick uint64, bodyID entity.ID, bodyIndex int) *ArenaHitEvent {
	return &ArenaHitEvent{
		BaseEvent: BaseEvent{
			EventType: ArenaHit,
			Source:    source,
		},
		Tick:      tick,
		BodyID:    bodyID,
		BodyIndex: bodyIndex,
	}
}

// ScoreEvent reports a side's new score
type ScoreEvent struct {
	BaseEvent
	Side  int
	Score int
}

// NewScoreEvent creates a new score event
func NewScoreEvent(source interface{}, side, score int) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{
			EventType: ScoreChanged,
			Source:    source,
		},
		Side:  side,
		Score: score,
	}
}

// MatchEvent reports the end of a timed run. Winner is -1 when there is no
// winner and Decision names how the result was reached.
type MatchEvent struct {
	BaseEvent
	Scores   []int
	Winner   int
	Decision string
}

// NewMatchEvent creates a new match ended event
func NewMatchEvent(source interface{}, scores []int, winner int, decision string) *MatchEvent {
	return &MatchEvent{
		BaseEvent: BaseEvent{
			EventType: MatchEnded,
			Source:    source,
		},
		Scores:   append([]int(nil), scores...),
		Winner:   winner,
		Decision: decision,
	}
}

// LifecycleEvent marks a simulation run starting or stopping
type LifecycleEvent struct {
	BaseEvent
	Tick   uint64
	Reason string
}

// NewLifecycleEvent creates a new lifecycle event
func NewLifecycleEvent(eventType Type, source interface{}, tick uint64, reason string) *LifecycleEvent {
	return &LifecycleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick:   tick,
		Reason: reason,
	}
}
