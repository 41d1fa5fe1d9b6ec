// pkg/entity/entity_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// MockRenderer records which entities were drawn
type MockRenderer struct {
	Bodies           []*Body
	Rings            []*Ring
	Arenas           []*ArenaRing
	ClearCallCount   int
	PresentCallCount int
}

func (m *MockRenderer) RenderBody(body *Body)        { m.Bodies = append(m.Bodies, body) }
func (m *MockRenderer) RenderRing(ring *Ring)        { m.Rings = append(m.Rings, ring) }
func (m *MockRenderer) RenderArena(arena *ArenaRing) { m.Arenas = append(m.Arenas, arena) }
func (m *MockRenderer) Clear()                       { m.ClearCallCount++ }
func (m *MockRenderer) Present()                     { m.PresentCallCount++ }

func TestGenerateID_Monotonic(t *testing.T) {
	first := GenerateID()
	second := GenerateID()
	if second <= first {
		t.Errorf("GenerateID() not increasing: %d then %d", first, second)
	}
}

func TestBaseEntity_Accessors(t *testing.T) {
	tests := []struct {
		name     string
		entityID ID
		position physics.Vector2D
	}{
		{name: "zero_values", entityID: 0, position: physics.Vector2D{}},
		{name: "positive_coordinates", entityID: 42, position: physics.Vector2D{X: 100, Y: 200}},
		{name: "max_id", entityID: 18446744073709551615, position: physics.Vector2D{X: -50, Y: 75.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &BaseEntity{ID: tt.entityID, Position: tt.position}
			if e.GetID() != tt.entityID {
				t.Errorf("GetID() = %v, want %v", e.GetID(), tt.entityID)
			}
			if e.GetPosition() != tt.position {
				t.Errorf("GetPosition() = %v, want %v", e.GetPosition(), tt.position)
			}
		})
	}
}

func TestEntity_RenderDispatch(t *testing.T) {
	body := NewBody(1, physics.Vector2D{X: 10, Y: 10}, 15, Red)
	ring := NewRing(2, physics.Vector2D{X: 50, Y: 50}, 100, Blue, 0)
	arena := NewArenaRing(3, physics.Vector2D{X: 50, Y: 50}, 200)

	renderer := &MockRenderer{}
	for _, e := range []Entity{body, ring, arena} {
		e.Render(renderer)
	}

	if len(renderer.Bodies) != 1 || renderer.Bodies[0] != body {
		t.Errorf("expected body to be rendered once, got %v", renderer.Bodies)
	}
	if len(renderer.Rings) != 1 || renderer.Rings[0] != ring {
		t.Errorf("expected ring to be rendered once, got %v", renderer.Rings)
	}
	if len(renderer.Arenas) != 1 || renderer.Arenas[0] != arena {
		t.Errorf("expected arena to be rendered once, got %v", renderer.Arenas)
	}
}

func TestEntity_GetCollider(t *testing.T) {
	body := NewBody(1, physics.Vector2D{X: 10, Y: 20}, 15, Red)
	if c := body.GetCollider(); c.Center != body.Position || c.Radius != 15 {
		t.Errorf("body collider = %+v", c)
	}

	ring := NewRing(2, physics.Vector2D{X: 5, Y: 5}, 80, Blue, 0)
	if c := ring.GetCollider(); c.Center != ring.Position || c.Radius != 80 {
		t.Errorf("ring collider = %+v", c)
	}
	if o := ring.Outline(6); o.Radius != 80 || o.Thickness != 6 {
		t.Errorf("ring outline = %+v", o)
	}
}
