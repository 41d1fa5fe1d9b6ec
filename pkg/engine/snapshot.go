// pkg/engine/snapshot.go
package engine

import (
	"github.com/opd-ai/go-ringbounce/pkg/entity"
)

// Snapshot is a copy of the world taken between ticks. Renderers and other
// sinks read it without touching the live world.
type Snapshot struct {
	Tick      uint64
	Width     float64
	Height    float64
	Thickness float64
	Bodies    []entity.Body
	Rings     []entity.Ring
	Arena     *entity.ArenaRing
	Stats     Stats
}

// Snapshot copies the current state of the world
func (w *World) Snapshot() *Snapshot {
	snap := &Snapshot{
		Tick:      w.tick,
		Width:     w.cfg.World.Width,
		Height:    w.cfg.World.Height,
		Thickness: w.rules.Thickness,
		Bodies:    make([]entity.Body, len(w.bodies)),
		Rings:     make([]entity.Ring, len(w.rings)),
		Stats:     w.stats,
	}

	for i, b := range w.bodies {
		snap.Bodies[i] = *b
	}
	for i, r := range w.rings {
		snap.Rings[i] = *r
	}
	if w.arena != nil {
		arena := *w.arena
		snap.Arena = &arena
	}

	return snap
}

// Render draws the snapshot: arena first, then rings, then bodies on top
func (s *Snapshot) Render(r entity.Renderer) {
	r.Clear()

	if s.Arena != nil {
		s.Arena.Render(r)
	}
	for i := range s.Rings {
		s.Rings[i].Render(r)
	}
	for i := range s.Bodies {
		s.Bodies[i].Render(r)
	}

	r.Present()
}
