// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// TestNewEventBus tests the creation of a new event bus
func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{name: "ring_spawned", eventType: RingSpawned, source: "spawner"},
		{name: "arena_hit", eventType: ArenaHit, source: 123},
		{name: "empty_source", eventType: SimulationStarted, source: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{EventType: tt.eventType, Source: tt.source}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}
			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_SingleHandler_ReturnsValidSubscription(t *testing.T) {
	bus := NewEventBus()

	sub := bus.Subscribe(RingSpawned, func(e Event) {})

	if sub == nil {
		t.Fatal("Subscribe() returned nil subscription")
	}
	if sub.ID == 0 {
		t.Error("subscription ID should not be 0")
	}
	if sub.Cancel == nil {
		t.Error("subscription Cancel function should not be nil")
	}

	bus.mu.RLock()
	handlers := bus.handlers[RingSpawned]
	bus.mu.RUnlock()

	if len(handlers) != 1 {
		t.Errorf("expected 1 handler, got %d", len(handlers))
	}
}

func TestBusSubscribe_MultipleHandlers_AllRegistered(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(RingDestroyed, func(e Event) {})
	sub2 := bus.Subscribe(RingDestroyed, func(e Event) {})
	_ = bus.Subscribe(ArenaHit, func(e Event) {})

	if sub1.ID == sub2.ID {
		t.Error("subscriptions should have unique IDs")
	}

	bus.mu.RLock()
	ringHandlers := bus.handlers[RingDestroyed]
	arenaHandlers := bus.handlers[ArenaHit]
	bus.mu.RUnlock()

	if len(ringHandlers) != 2 {
		t.Errorf("expected 2 handlers for RingDestroyed, got %d", len(ringHandlers))
	}
	if len(arenaHandlers) != 1 {
		t.Errorf("expected 1 handler for ArenaHit, got %d", len(arenaHandlers))
	}
}

func TestBusPublish_WithSubscribers_CallsAllHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(RingExpired, func(e Event) { order = append(order, 1) })
	bus.Subscribe(RingExpired, func(e Event) { order = append(order, 2) })

	bus.Publish(&BaseEvent{EventType: RingExpired, Source: "test"})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("handlers called as %v, want [1 2]", order)
	}
}

func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(&BaseEvent{EventType: RingSpawned, Source: "test"})
}

func TestBusPublish_WrongEventType_HandlersNotCalled(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	bus.Subscribe(RingSpawned, func(e Event) { handlerCalled = true })
	bus.Publish(&BaseEvent{EventType: MatchEnded, Source: "test"})

	if handlerCalled {
		t.Error("handler should not have been called for different event type")
	}
}

func TestSubscriptionCancel_ValidSubscription_RemovesHandler(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	sub := bus.Subscribe(BodyCollision, func(e Event) { handlerCalled = true })
	sub.Cancel()
	sub.Cancel()

	bus.mu.RLock()
	handlersAfter := len(bus.handlers[BodyCollision])
	bus.mu.RUnlock()

	if handlersAfter != 0 {
		t.Errorf("expected 0 handlers after cancel, got %d", handlersAfter)
	}

	bus.Publish(&BaseEvent{EventType: BodyCollision, Source: "test"})
	if handlerCalled {
		t.Error("handler should not be called after cancellation")
	}
}

func TestSubscriptionCancel_DuringPublish_FinishesCurrentDispatch(t *testing.T) {
	bus := NewEventBus()
	var sub *Subscription
	secondCalled := false

	sub = bus.Subscribe(ArenaHit, func(e Event) { sub.Cancel() })
	bus.Subscribe(ArenaHit, func(e Event) { secondCalled = true })

	bus.Publish(&BaseEvent{EventType: ArenaHit})

	if !secondCalled {
		t.Error("cancelling inside a handler should not skip later handlers")
	}
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	handlerCount := 0
	var mu sync.Mutex

	handler := func(e Event) {
		mu.Lock()
		handlerCount++
		mu.Unlock()
	}

	numGoroutines := 10
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			bus.Subscribe(RingSpawned, handler)
		}()
	}
	wg.Wait()

	bus.mu.RLock()
	handlers := bus.handlers[RingSpawned]
	bus.mu.RUnlock()

	if len(handlers) != numGoroutines {
		t.Errorf("expected %d handlers, got %d", numGoroutines, len(handlers))
	}

	event := &BaseEvent{EventType: RingSpawned, Source: "test"}
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(event)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if expected := numGoroutines * 3; handlerCount != expected {
		t.Errorf("expected %d handler calls, got %d", expected, handlerCount)
	}
}

func TestNewRingEvent_CopiesRingState(t *testing.T) {
	ring := entity.NewRing(9, physics.Vector2D{X: 240, Y: 555}, 300, entity.Blue, 10)

	event := NewRingEvent(RingSpawned, "spawner", 15, ring)

	if event.GetType() != RingSpawned {
		t.Errorf("GetType() = %v, want %v", event.GetType(), RingSpawned)
	}
	if event.RingID != 9 || event.Category != entity.Blue || event.Radius != 300 {
		t.Errorf("event = %+v, want ring 9, blue, radius 300", event)
	}
	if event.Tick != 15 {
		t.Errorf("Tick = %d, want 15", event.Tick)
	}
}

func TestNewIncompatibleBounceEvent(t *testing.T) {
	body := entity.NewBody(1, physics.Vector2D{}, 15, entity.Red)
	ring := entity.NewRing(2, physics.Vector2D{}, 100, entity.Blue, 0)

	event := NewIncompatibleBounceEvent("world", 3, body, ring)

	if event.GetType() != IncompatibleBounce {
		t.Errorf("GetType() = %v, want %v", event.GetType(), IncompatibleBounce)
	}
	if event.BodyID != 1 || event.RingID != 2 {
		t.Errorf("ids = %d/%d, want 1/2", event.BodyID, event.RingID)
	}
	if event.BodyCategory != entity.Red || event.RingCategory != entity.Blue {
		t.Errorf("categories = %v/%v, want red/blue", event.BodyCategory, event.RingCategory)
	}
}

func TestNewCollisionEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	event := NewCollisionEvent("world", 4, 100, 200, 2.5)

	if event.GetType() != BodyCollision {
		t.Errorf("GetType() = %v, want %v", event.GetType(), BodyCollision)
	}
	if event.EntityA != 100 || event.EntityB != 200 {
		t.Errorf("entities = %d/%d, want 100/200", event.EntityA, event.EntityB)
	}
	if event.Impulse != 2.5 {
		t.Errorf("Impulse = %g, want 2.5", event.Impulse)
	}
}

func TestNewMatchEvent_CopiesScores(t *testing.T) {
	scores := []int{3, 2}
	event := NewMatchEvent("clock", scores, 0, "regulation")
	scores[0] = 99

	if event.Scores[0] != 3 {
		t.Error("match event shares the caller's score slice")
	}
	if event.Winner != 0 || event.Decision != "regulation" {
		t.Errorf("event = %+v", event)
	}
}

func TestSmallEventConstructors(t *testing.T) {
	hit := NewArenaHitEvent("world", 8, 42, 1)
	if hit.GetType() != ArenaHit || hit.BodyIndex != 1 || hit.BodyID != 42 {
		t.Errorf("arena hit = %+v", hit)
	}

	score := NewScoreEvent("scoreboard", 1, 4)
	if score.GetType() != ScoreChanged || score.Side != 1 || score.Score != 4 {
		t.Errorf("score = %+v", score)
	}

	stop := NewLifecycleEvent(SimulationStopped, "driver", 600, "tick budget reached")
	if stop.GetType() != SimulationStopped || stop.Tick != 600 || stop.Reason == "" {
		t.Errorf("lifecycle = %+v", stop)
	}
}

func TestCancelMultipleSubscriptions_DifferentTypes_OnlyTargetRemoved(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false
	handler3Called := false

	sub1 := bus.Subscribe(RingDestroyed, func(e Event) { handler1Called = true })
	_ = bus.Subscribe(RingDestroyed, func(e Event) { handler2Called = true })
	_ = bus.Subscribe(ArenaHit, func(e Event) { handler3Called = true })

	sub1.Cancel()

	bus.Publish(&BaseEvent{EventType: RingDestroyed, Source: "test"})
	bus.Publish(&BaseEvent{EventType: ArenaHit, Source: "test"})

	if handler1Called {
		t.Error("handler1 should not be called after cancellation")
	}
	if !handler2Called {
		t.Error("handler2 should be called")
	}
	if !handler3Called {
		t.Error("handler3 should be called")
	}
}
