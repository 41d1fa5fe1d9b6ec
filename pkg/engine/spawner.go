// pkg/engine/spawner.go
package engine

import (
	"math/rand/v2"

	"github.com/opd-ai/go-ringbounce/pkg/config"
	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// Spawner adds rings to the world on a fixed cadence while the number of
// live rings stays under its cap. It owns only its scheduling state.
type Spawner struct {
	cfg          config.SpawnerConfig
	seekSpeed    float64
	rng          *rand.Rand
	counter      int
	nextRadius   float64
	paletteIndex int
}

// NewSpawner creates a spawner whose first ring gets cfg.RadiusStart.
// seekSpeed is handed to every ring it creates.
func NewSpawner(cfg config.SpawnerConfig, seekSpeed float64, rng *rand.Rand) *Spawner {
	return &Spawner{
		cfg:        cfg,
		seekSpeed:  seekSpeed,
		rng:        rng,
		nextRadius: cfg.RadiusStart,
	}
}

// NextRadius returns the radius the next ring will be created with
func (s *Spawner) NextRadius() float64 {
	return s.nextRadius
}

// Update advances the spawn counter by one tick and returns rings, with a
// new ring appended when the interval has elapsed and the cap allows it.
// At capacity the counter keeps running so the next tick checks again.
func (s *Spawner) Update(rings []*entity.Ring) []*entity.Ring {
	s.counter++
	if s.counter < s.cfg.Interval {
		return rings
	}
	if liveRings(rings) >= s.cfg.Cap {
		return rings
	}

	ring := entity.NewRing(
		entity.GenerateID(),
		physics.Vector2D{X: s.cfg.SpawnX, Y: s.cfg.SpawnY},
		s.nextRadius,
		s.nextCategory(),
		s.seekSpeed,
	)
	rings = append(rings, ring)

	s.nextRadius += s.cfg.RadiusStep
	if s.nextRadius > s.cfg.RadiusStart+s.cfg.RadiusBand {
		s.nextRadius = s.cfg.RadiusStart
	}
	s.counter = 0

	return rings
}

func (s *Spawner) nextCategory() entity.Category {
	palette := s.cfg.Palette
	if len(palette) == 0 {
		return entity.Neutral
	}

	if s.cfg.PaletteMode == config.PaletteRandom {
		return palette[s.rng.IntN(len(palette))]
	}

	c := palette[s.paletteIndex%len(palette)]
	s.paletteIndex++
	return c
}

// liveRings counts rings that are active and not destroyed
func liveRings(rings []*entity.Ring) int {
	n := 0
	for _, r := range rings {
		if r.Collidable() {
			n++
		}
	}
	return n
}
