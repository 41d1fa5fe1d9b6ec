// pkg/config/presets.go
package config

import (
	"fmt"
	"time"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
)

const (
	defaultWidth    = 480.0
	defaultHeight   = 854.0
	defaultTickRate = 60
	// rings spawn and seek slightly below the middle of the screen
	spawnHeightFactor = 1.3
)

// Preset returns a fresh configuration for the named variant
func Preset(v Variant) (*Config, error) {
	switch v {
	case VariantTwoBall:
		return twoBall(), nil
	case VariantSingleBall:
		return singleBall(), nil
	case VariantColiseum:
		return coliseum(), nil
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, v)
	}
}

func baseConfig() *Config {
	return &Config{
		World: WorldConfig{Width: defaultWidth, Height: defaultHeight},
		Rings: RingConfig{
			FadeRate: entity.DefaultFadeRate,
		},
		Runtime: RuntimeConfig{
			TickRate: defaultTickRate,
			Renderer: "null",
			Breaker: BreakerConfig{
				MaxRequests:         3,
				Interval:            60 * time.Second,
				Timeout:             30 * time.Second,
				MaxConsecutiveFails: 5,
			},
		},
	}
}

func twoBall() *Config {
	cfg := baseConfig()
	cfg.Variant = VariantTwoBall

	spawnX := cfg.World.Width / 2
	spawnY := cfg.World.Height / 2 * spawnHeightFactor
	const radius = 15.0

	cfg.Bodies = BodyConfig{
		Count:       2,
		Radius:      radius,
		Categories:  []entity.Category{entity.Red, entity.Blue},
		StartOffset: 25,
		LaunchSpeed: 2,
	}
	cfg.Physics = PhysicsConfig{
		Gravity:     0.5,
		Restitution: 1.2,
		BoostFactor: 0.9,
		BoostCap:    entity.DefaultBoostCap,
		MaxSpeed:    18,
	}
	cfg.Rings = RingConfig{
		DecayRate:          3.45,
		RandomizeDecay:     true,
		DecayRange:         [2]float64{2.7, 4.2},
		Thickness:          5,
		RandomizeThickness: true,
		ThicknessRange:     [2]float64{2, 8},
		MinRadius:          radius * 5,
		FadeRate:           entity.DefaultFadeRate,
		CategoryGating:     true,
		Seek: SeekConfig{
			Enabled:      true,
			TargetX:      spawnX,
			TargetY:      spawnY,
			InitialSpeed: 10,
			Accel:        3,
			Decel:        0.12,
			SlowRadius:   100,
		},
	}
	cfg.Spawner = SpawnerConfig{
		Enabled:     true,
		Interval:    15,
		Cap:         8,
		SpawnX:      spawnX,
		SpawnY:      spawnY,
		RadiusStart: 300,
		RadiusStep:  25,
		RadiusBand:  200,
		Palette:     []entity.Category{entity.Red, entity.Blue},
		PaletteMode: PaletteCycle,
	}

	return cfg
}

func singleBall() *Config {
	cfg := baseConfig()
	cfg.Variant = VariantSingleBall

	spawnX := cfg.World.Width / 2
	spawnY := cfg.World.Height / 2 * spawnHeightFactor
	const radius = 15.0

	cfg.Bodies = BodyConfig{
		Count:        1,
		Radius:       radius,
		Categories:   []entity.Category{entity.Neutral},
		StartOffset:  30,
		RandomLaunch: 3,
	}
	cfg.Physics = PhysicsConfig{
		Gravity:     0.7,
		Restitution: 1.6,
		BoostFactor: 1.2,
		BoostCap:    entity.DefaultBoostCap,
		MaxSpeed:    15,
	}
	cfg.Rings = RingConfig{
		DecayRate: 8,
		Thickness: 6,
		MinRadius: radius * 5,
		FadeRate:  entity.DefaultFadeRate,
	}
	cfg.Spawner = SpawnerConfig{
		Enabled:     true,
		Interval:    2,
		Cap:         30,
		SpawnX:      spawnX,
		SpawnY:      spawnY,
		RadiusStart: 300,
		RadiusStep:  40,
		RadiusBand:  400,
		Palette: []entity.Category{
			entity.Red, entity.Blue, entity.Green, entity.Yellow, entity.Magenta,
		},
		PaletteMode: PaletteCycle,
	}
	cfg.Match = MatchConfig{
		Enabled:  true,
		Duration: 30,
	}

	return cfg
}

func coliseum() *Config {
	cfg := baseConfig()
	cfg.Variant = VariantColiseum

	cfg.Bodies = BodyConfig{
		Count:       2,
		Radius:      25,
		Categories:  []entity.Category{entity.Red, entity.Blue},
		StartOffset: 20,
		StartJitter: 5,
		LaunchSpeed: 2,
	}
	cfg.Physics = PhysicsConfig{
		Gravity:     0.3,
		Restitution: 1.0,
		BoostFactor: 5,
		BoostCap:    entity.DefaultBoostCap,
		MaxSpeed:    20,
	}
	cfg.Rings = RingConfig{
		Thickness: 5,
		FadeRate:  entity.DefaultFadeRate,
	}
	cfg.Arena = ArenaConfig{
		Enabled:        true,
		Radius:         200,
		PulseIntensity: 10,
		PulseDuration:  20,
	}
	cfg.Match = MatchConfig{
		Enabled:      true,
		Duration:     20,
		StoppageTime: 10,
		Scoring:      true,
	}

	return cfg
}
