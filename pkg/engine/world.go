// pkg/engine/world.go
package engine

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-ringbounce/pkg/collision"
	"github.com/opd-ai/go-ringbounce/pkg/config"
	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/event"
	"github.com/opd-ai/go-ringbounce/pkg/logging"
	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// Stats are running totals for a world. RingsExpired counts rings that
// shrank away without being destroyed; RingsPruned counts every ring removed
// from the world, destroyed or not.
type Stats struct {
	RingsSpawned        int
	RingsDestroyed      int
	RingsExpired        int
	RingsPruned         int
	IncompatibleBounces int
	BodyCollisions      int
	ArenaHits           int
}

// World owns every body and ring of a simulation and advances them one
// fixed tick at a time. It is not safe for concurrent use; the driver owns
// the only goroutine that calls Tick.
type World struct {
	cfg    *config.Config
	bus    *event.Bus
	logger *logging.Logger
	rng    *rand.Rand
	seed   uint64
	runID  string

	bodies  []*entity.Body
	rings   []*entity.Ring
	arena   *entity.ArenaRing
	spawner *Spawner

	ringParams entity.RingParams
	rules      collision.Rules
	pulse      entity.PulseParams

	tick  uint64
	stats Stats
}

// NewWorld validates cfg and builds a world from it. A nil bus or logger is
// replaced by a private bus or a discarding logger. A zero seed picks a
// random one, reported by Seed.
func NewWorld(cfg *config.Config, bus *event.Bus, logger *logging.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "creating world")
	}
	cfg = cfg.Clone()

	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	seed := cfg.Runtime.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	w := &World{
		cfg:    cfg,
		bus:    bus,
		logger: logger,
		rng:    NewRand(seed),
		seed:   seed,
		runID:  logging.GenerateRunID(),
	}

	w.initRules()
	w.initBodies()
	w.initArena()
	if cfg.Spawner.Enabled {
		w.spawner = NewSpawner(cfg.Spawner, cfg.Rings.Seek.InitialSpeed, w.rng)
	}

	w.logger.Info(w.logContext(), "world created",
		"variant", string(cfg.Variant),
		"seed", seed,
		"bodies", len(w.bodies),
		"decay_rate", w.ringParams.DecayRate,
		"thickness", w.rules.Thickness,
	)

	return w, nil
}

// NewRand returns the deterministic generator used for a given seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (w *World) initRules() {
	rc := w.cfg.Rings
	pc := w.cfg.Physics

	decay := rc.DecayRate
	if rc.RandomizeDecay {
		lo, hi := rc.DecayRange[0], rc.DecayRange[1]
		decay = lo + w.rng.Float64()*(hi-lo)
	}

	thickness := rc.Thickness
	if rc.RandomizeThickness {
		thickness = w.randomWholeNumber(rc.ThicknessRange)
	}

	w.ringParams = entity.RingParams{
		DecayRate: decay,
		MinRadius: rc.MinRadius,
		FadeRate:  rc.FadeRate,
		Seek: entity.SeekParams{
			Enabled:      rc.Seek.Enabled,
			Target:       physics.Vector2D{X: rc.Seek.TargetX, Y: rc.Seek.TargetY},
			InitialSpeed: rc.Seek.InitialSpeed,
			Accel:        rc.Seek.Accel,
			Decel:        rc.Seek.Decel,
			SlowRadius:   rc.Seek.SlowRadius,
		},
	}
	w.rules = collision.Rules{
		Restitution:    pc.Restitution,
		Boost:          entity.BounceBoost{Factor: pc.BoostFactor, Cap: pc.BoostCap},
		Thickness:      thickness,
		CategoryGating: rc.CategoryGating,
	}
	w.pulse = entity.PulseParams{
		Intensity: w.cfg.Arena.PulseIntensity,
		Duration:  w.cfg.Arena.PulseDuration,
	}
}

// randomWholeNumber draws an integer in the inclusive range, falling back to
// the lower bound when the range holds no integer.
func (w *World) randomWholeNumber(r [2]float64) float64 {
	lo := int(math.Ceil(r[0]))
	hi := int(math.Floor(r[1]))
	if hi < lo {
		return r[0]
	}
	return float64(lo + w.rng.IntN(hi-lo+1))
}

func (w *World) initBodies() {
	bc := w.cfg.Bodies
	w.bodies = make([]*entity.Body, bc.Count)
	for i := range w.bodies {
		w.bodies[i] = entity.NewBody(entity.GenerateID(), physics.Vector2D{}, bc.Radius, bc.BodyCategory(i))
	}
	w.ResetBodies()
}

func (w *World) initArena() {
	if !w.cfg.Arena.Enabled {
		return
	}
	cx, cy := w.cfg.World.Center()
	w.arena = entity.NewArenaRing(entity.GenerateID(), physics.Vector2D{X: cx, Y: cy}, w.cfg.Arena.Radius)
}

// ResetBodies puts every body back at its launch position and velocity.
// Bodies are spread horizontally around the center line; a lone body starts
// right of center. Bounce counters are kept.
func (w *World) ResetBodies() {
	bc := w.cfg.Bodies
	cx, cy := w.cfg.World.Center()
	n := len(w.bodies)

	for i, body := range w.bodies {
		slot := float64(2*i - (n - 1))
		if n == 1 {
			slot = 1
		}
		side := math.Copysign(1, slot)

		offset := bc.StartOffset
		if bc.StartJitter > 0 {
			offset += w.rng.Float64() * bc.StartJitter
		}

		position := physics.Vector2D{X: cx + slot*offset, Y: cy}
		velocity := physics.Vector2D{X: side * bc.LaunchSpeed}
		if bc.RandomLaunch > 0 {
			velocity = physics.Vector2D{
				X: (w.rng.Float64()*2 - 1) * bc.RandomLaunch,
				Y: (w.rng.Float64()*2 - 1) * bc.RandomLaunch,
			}
		}

		body.Place(position, velocity)
	}
}

// Tick advances the world by one fixed step: spawn, move bodies, resolve
// body pairs and pull them back on screen, update the arena, then update
// each ring and resolve it against every body before pruning expired rings.
func (w *World) Tick() {
	w.tick++

	w.spawnRings()
	w.moveBodies()
	w.resolveBodyPairs()
	w.containBodies()
	w.updateArena()
	w.updateRings()
	w.pruneRings()
}

func (w *World) spawnRings() {
	if w.spawner == nil {
		return
	}

	before := len(w.rings)
	w.rings = w.spawner.Update(w.rings)
	for _, ring := range w.rings[before:] {
		w.stats.RingsSpawned++
		w.bus.Publish(event.NewRingEvent(event.RingSpawned, w, w.tick, ring))
		w.logger.Debug(w.logContext(), "ring spawned",
			"ring_id", uint64(ring.GetID()),
			"category", ring.Category().String(),
			"radius", ring.Radius(),
		)
	}
}

func (w *World) moveBodies() {
	pc := w.cfg.Physics
	for _, body := range w.bodies {
		body.Integrate(pc.Gravity, pc.MaxSpeed)
		body.ResolveBoundary(w.cfg.World.Width, w.cfg.World.Height, pc.Restitution, w.rules.Boost)
	}
}

func (w *World) resolveBodyPairs() {
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			contact := collision.ResolveBodies(a, b, w.rules)
			if contact.Impulse > 0 {
				w.stats.BodyCollisions++
				w.bus.Publish(event.NewCollisionEvent(w, w.tick, a.GetID(), b.GetID(), contact.Impulse))
			}
		}
	}
}

// containBodies undoes pair separation that pushed a body through a wall.
// Only the position changes; the wall bounce already happened in moveBodies.
func (w *World) containBodies() {
	for _, body := range w.bodies {
		body.ClampToScreen(w.cfg.World.Width, w.cfg.World.Height)
	}
}

func (w *World) updateArena() {
	if w.arena == nil {
		return
	}

	w.arena.Update(w.pulse)
	for i, body := range w.bodies {
		if collision.ResolveBodyArena(body, w.arena, w.rules) {
			w.arena.StartPulse()
			w.stats.ArenaHits++
			w.bus.Publish(event.NewArenaHitEvent(w, w.tick, body.GetID(), i))
		}
	}
}

func (w *World) updateRings() {
	for _, ring := range w.rings {
		ring.Update(w.ringParams)

		for _, body := range w.bodies {
			contact := collision.ResolveBodyRing(body, ring, w.rules)
			switch {
			case contact.DestroyEligible:
				ring.Destroy()
				w.stats.RingsDestroyed++
				w.bus.Publish(event.NewRingEvent(event.RingDestroyed, w, w.tick, ring))
				w.logger.Debug(w.logContext(), "ring destroyed",
					"ring_id", uint64(ring.GetID()),
					"body_id", uint64(body.GetID()),
					"category", ring.Category().String(),
				)
			case contact.Incompatible():
				w.stats.IncompatibleBounces++
				w.bus.Publish(event.NewIncompatibleBounceEvent(w, w.tick, body, ring))
			}
		}
	}
}

func (w *World) pruneRings() {
	kept := w.rings[:0]
	for _, ring := range w.rings {
		if ring.IsActive() {
			kept = append(kept, ring)
			continue
		}
		w.stats.RingsPruned++
		if !ring.IsDestroyed() {
			w.stats.RingsExpired++
		}
		w.bus.Publish(event.NewRingEvent(event.RingExpired, w, w.tick, ring))
	}
	// drop references held past the new length
	for i := len(kept); i < len(w.rings); i++ {
		w.rings[i] = nil
	}
	w.rings = kept
}

func (w *World) logContext() context.Context {
	return logging.WithRunID(context.Background(), w.runID)
}

// Config returns the world's private copy of its configuration
func (w *World) Config() *config.Config { return w.cfg }

// Bus returns the event bus the world publishes on
func (w *World) Bus() *event.Bus { return w.bus }

// Rand returns the world's seeded generator. Collaborators that need
// randomness share it so a seed reproduces a whole run.
func (w *World) Rand() *rand.Rand { return w.rng }

// Seed returns the seed the world's generator was created with
func (w *World) Seed() uint64 { return w.seed }

// RunID identifies this world in log entries
func (w *World) RunID() string { return w.runID }

// CurrentTick returns the number of ticks run so far
func (w *World) CurrentTick() uint64 { return w.tick }

// Stats returns the running totals
func (w *World) Stats() Stats { return w.stats }

// Bodies returns the live bodies in creation order
func (w *World) Bodies() []*entity.Body { return w.bodies }

// Rings returns the rings currently in the world, including fading ones
func (w *World) Rings() []*entity.Ring { return w.rings }

// Arena returns the arena ring, or nil when the arena is disabled
func (w *World) Arena() *entity.ArenaRing { return w.arena }

// Thickness returns the ring outline thickness in use
func (w *World) Thickness() float64 { return w.rules.Thickness }

// DecayRate returns the ring decay rate in use
func (w *World) DecayRate() float64 { return w.ringParams.DecayRate }

// AddRing inserts a ring directly, bypassing the spawner
func (w *World) AddRing(ring *entity.Ring) {
	w.rings = append(w.rings, ring)
}
