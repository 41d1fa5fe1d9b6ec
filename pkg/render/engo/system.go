// pkg/render/engo/system.go
package engo

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-ringbounce/pkg/engine"
	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/match"
)

// maxStepsPerFrame bounds catch-up after a stalled frame
const maxStepsPerFrame = 5

// SimulationSystem advances the world at its fixed tick rate from engo's
// variable frame time and redraws it after every frame that ticked.
type SimulationSystem struct {
	world    *engine.World
	match    *match.Match
	renderer entity.Renderer

	step     float32
	pending  float32
	maxTicks uint64
	paused   bool
	done     bool
	onDone   func()
}

// NewSimulationSystem creates a system ticking world, and m when not nil,
// tickRate times per second. onDone runs once when the match ends or
// maxTicks ticks have passed; zero maxTicks runs forever.
func NewSimulationSystem(world *engine.World, m *match.Match, renderer entity.Renderer, tickRate int, maxTicks uint64, onDone func()) *SimulationSystem {
	return &SimulationSystem{
		world:    world,
		match:    m,
		renderer: renderer,
		step:     1 / float32(tickRate),
		maxTicks: maxTicks,
		onDone:   onDone,
	}
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update consumes dt seconds of frame time in whole ticks
func (s *SimulationSystem) Update(dt float32) {
	if s.done || s.paused {
		return
	}

	s.pending += dt
	ticked := false
	for steps := 0; s.pending >= s.step && steps < maxStepsPerFrame; steps++ {
		s.pending -= s.step
		ticked = true
		if s.tick() {
			s.finish()
			break
		}
	}
	if s.pending > s.step {
		s.pending = 0
	}

	if ticked {
		s.world.Snapshot().Render(s.renderer)
	}
}

// tick advances one step and reports whether the run is over
func (s *SimulationSystem) tick() bool {
	s.world.Tick()
	if s.match != nil {
		if _, over := s.match.Update(); over {
			return true
		}
	}
	return s.maxTicks > 0 && s.world.CurrentTick() >= s.maxTicks
}

func (s *SimulationSystem) finish() {
	s.done = true
	if s.onDone != nil {
		s.onDone()
	}
}

// TogglePause stops or resumes ticking
func (s *SimulationSystem) TogglePause() {
	s.paused = !s.paused
	s.pending = 0
}

// Paused reports whether ticking is suspended
func (s *SimulationSystem) Paused() bool { return s.paused }

// Done reports whether the run has ended
func (s *SimulationSystem) Done() bool { return s.done }
