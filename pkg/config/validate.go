// pkg/config/validate.go
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Renderers lists the renderer names the runtime understands
var Renderers = []string{"null", "terminal", "engo"}

// Validate checks the configuration for values the simulation cannot run
// with. All problems are reported together.
func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0,
		"world size must be positive, got %gx%g", c.World.Width, c.World.Height)

	b := c.Bodies
	check(b.Count >= 1, "bodies.count must be at least 1, got %d", b.Count)
	check(b.Radius > 0, "bodies.radius must be positive, got %g", b.Radius)
	check(2*b.Radius < c.World.Width && 2*b.Radius < c.World.Height,
		"bodies.radius %g does not fit in the world", b.Radius)
	check(b.StartJitter >= 0, "bodies.startJitter must not be negative")
	check(b.RandomLaunch >= 0, "bodies.randomLaunch must not be negative")

	p := c.Physics
	check(p.Restitution >= 0, "physics.restitution must not be negative, got %g", p.Restitution)
	check(p.BoostFactor >= 0, "physics.boostFactor must not be negative, got %g", p.BoostFactor)
	check(p.BoostCap >= 0, "physics.boostCap must not be negative, got %d", p.BoostCap)
	check(p.MaxSpeed > 0, "physics.maxSpeed must be positive, got %g", p.MaxSpeed)

	r := c.Rings
	check(r.Thickness >= 0, "rings.thickness must not be negative, got %g", r.Thickness)
	if r.RandomizeThickness {
		check(validRange(r.ThicknessRange, 0), "rings.thicknessRange %v is not a valid range", r.ThicknessRange)
	}

	if s := c.Spawner; s.Enabled {
		check(s.Interval > 0, "spawner.interval must be positive, got %d", s.Interval)
		check(s.Cap > 0, "spawner.cap must be positive, got %d", s.Cap)
		check(s.RadiusStart > r.MinRadius,
			"spawner.radiusStart %g must exceed rings.minRadius %g", s.RadiusStart, r.MinRadius)
		check(s.RadiusStep >= 0, "spawner.radiusStep must not be negative")
		check(s.RadiusBand >= 0, "spawner.radiusBand must not be negative")
		check(len(s.Palette) > 0, "spawner.palette must not be empty")
		check(s.PaletteMode == PaletteCycle || s.PaletteMode == PaletteRandom,
			"spawner.paletteMode %q is not one of %q, %q", s.PaletteMode, PaletteCycle, PaletteRandom)

		check(r.MinRadius >= 0, "rings.minRadius must not be negative")
		check(r.FadeRate > 0, "rings.fadeRate must be positive, got %d", r.FadeRate)
		if r.RandomizeDecay {
			check(validRange(r.DecayRange, 0), "rings.decayRange %v is not a valid range", r.DecayRange)
		} else {
			check(r.DecayRate > 0, "rings.decayRate must be positive, got %g", r.DecayRate)
		}

		if seek := r.Seek; seek.Enabled {
			check(seek.InitialSpeed > 0, "rings.seek.initialSpeed must be positive")
			check(seek.Decel > 0 && seek.Decel <= 1, "rings.seek.decel must be in (0, 1], got %g", seek.Decel)
			check(seek.SlowRadius >= 0, "rings.seek.slowRadius must not be negative")
		}
	}

	if a := c.Arena; a.Enabled {
		thickness := r.Thickness
		if r.RandomizeThickness {
			thickness = r.ThicknessRange[1]
		}
		check(a.Radius > b.Radius+thickness,
			"arena.radius %g leaves no room for a body of radius %g and rings up to %g thick", a.Radius, b.Radius, thickness)
		check(a.PulseDuration >= 0, "arena.pulseDuration must not be negative")
	}

	if m := c.Match; m.Enabled {
		check(m.Duration > 0, "match.duration must be positive, got %g", m.Duration)
		check(m.StoppageTime >= 0, "match.stoppageTime must not be negative")
		if m.Scoring {
			check(c.Arena.Enabled, "match.scoring requires the arena")
			check(b.Count == 2, "match.scoring requires exactly 2 bodies, got %d", b.Count)
		}
	}

	rt := c.Runtime
	check(rt.TickRate > 0, "runtime.tickRate must be positive, got %d", rt.TickRate)
	check(rt.MaxTicks >= 0, "runtime.maxTicks must not be negative")
	check(knownRenderer(rt.Renderer), "runtime.renderer %q is not one of %v", rt.Renderer, Renderers)
	check(rt.Breaker.MaxConsecutiveFails > 0, "runtime.breaker.maxConsecutiveFails must be positive")
	check(rt.Breaker.Timeout >= 0, "runtime.breaker.timeout must not be negative")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func validRange(r [2]float64, floor float64) bool {
	return r[0] > floor && r[0] <= r[1]
}

func knownRenderer(name string) bool {
	for _, r := range Renderers {
		if r == name {
			return true
		}
	}
	return false
}
