// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
)

// Variant selects one of the built-in game setups
type Variant string

const (
	// VariantTwoBall has two colored balls; rings only break for their own color
	VariantTwoBall Variant = "two-ball"
	// VariantSingleBall has one ball that breaks every ring it bounces off
	VariantSingleBall Variant = "single-ball"
	// VariantColiseum has two balls in a fixed arena, scored over a timed match
	VariantColiseum Variant = "coliseum"
)

// Variants lists the built-in variants
func Variants() []Variant {
	return []Variant{VariantTwoBall, VariantSingleBall, VariantColiseum}
}

// PaletteMode controls how the spawner picks ring categories
type PaletteMode string

const (
	PaletteCycle  PaletteMode = "cycle"
	PaletteRandom PaletteMode = "random"
)

// Config contains the complete description of a simulation run. It is read
// once at startup and is not modified while the simulation runs.
type Config struct {
	Variant Variant       `json:"variant"`
	World   WorldConfig   `json:"world"`
	Bodies  BodyConfig    `json:"bodies"`
	Physics PhysicsConfig `json:"physics"`
	Rings   RingConfig    `json:"rings"`
	Spawner SpawnerConfig `json:"spawner"`
	Arena   ArenaConfig   `json:"arena"`
	Match   MatchConfig   `json:"match"`
	Runtime RuntimeConfig `json:"runtime"`
}

// WorldConfig is the size of the screen bodies bounce inside
type WorldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BodyConfig describes the balls and how they are launched. With two bodies
// the first starts left of center moving left and the second right of center
// moving right. A single body starts right of center.
type BodyConfig struct {
	Count        int               `json:"count"`
	Radius       float64           `json:"radius"`
	Categories   []entity.Category `json:"categories"`
	StartOffset  float64           `json:"startOffset"`
	StartJitter  float64           `json:"startJitter"`
	LaunchSpeed  float64           `json:"launchSpeed"`
	RandomLaunch float64           `json:"randomLaunch"`
}

// PhysicsConfig contains the integration and bounce constants
type PhysicsConfig struct {
	Gravity     float64 `json:"gravity"`
	Restitution float64 `json:"restitution"`
	BoostFactor float64 `json:"boostFactor"`
	BoostCap    int     `json:"boostCap"`
	MaxSpeed    float64 `json:"maxSpeed"`
}

// SeekConfig steers rings towards a target point
type SeekConfig struct {
	Enabled      bool    `json:"enabled"`
	TargetX      float64 `json:"targetX"`
	TargetY      float64 `json:"targetY"`
	InitialSpeed float64 `json:"initialSpeed"`
	Accel        float64 `json:"accel"`
	Decel        float64 `json:"decel"`
	SlowRadius   float64 `json:"slowRadius"`
}

// RingConfig contains the ring lifecycle rules. When a Randomize flag is set
// the matching value is drawn once per run from its range.
type RingConfig struct {
	DecayRate          float64    `json:"decayRate"`
	RandomizeDecay     bool       `json:"randomizeDecay"`
	DecayRange         [2]float64 `json:"decayRange"`
	Thickness          float64    `json:"thickness"`
	RandomizeThickness bool       `json:"randomizeThickness"`
	ThicknessRange     [2]float64 `json:"thicknessRange"`
	MinRadius          float64    `json:"minRadius"`
	FadeRate           int        `json:"fadeRate"`
	CategoryGating     bool       `json:"categoryGating"`
	Seek               SeekConfig `json:"seek"`
}

// SpawnerConfig controls ring creation. Radii start at RadiusStart, grow by
// RadiusStep per ring and wrap back once past RadiusStart+RadiusBand.
type SpawnerConfig struct {
	Enabled     bool              `json:"enabled"`
	Interval    int               `json:"interval"`
	Cap         int               `json:"cap"`
	SpawnX      float64           `json:"spawnX"`
	SpawnY      float64           `json:"spawnY"`
	RadiusStart float64           `json:"radiusStart"`
	RadiusStep  float64           `json:"radiusStep"`
	RadiusBand  float64           `json:"radiusBand"`
	Palette     []entity.Category `json:"palette"`
	PaletteMode PaletteMode       `json:"paletteMode"`
}

// ArenaConfig describes the fixed, pulsing arena ring
type ArenaConfig struct {
	Enabled        bool    `json:"enabled"`
	Radius         float64 `json:"radius"`
	PulseIntensity float64 `json:"pulseIntensity"`
	PulseDuration  int     `json:"pulseDuration"`
}

// MatchConfig bounds a run in time. With Scoring enabled the run is a scored
// match that goes to stoppage time on a tie.
type MatchConfig struct {
	Enabled      bool    `json:"enabled"`
	Duration     float64 `json:"duration"`
	StoppageTime float64 `json:"stoppageTime"`
	Scoring      bool    `json:"scoring"`
}

// BreakerConfig tunes the circuit breaker guarding each frame sink
type BreakerConfig struct {
	MaxRequests         uint32        `json:"maxRequests"`
	Interval            time.Duration `json:"interval"`
	Timeout             time.Duration `json:"timeout"`
	MaxConsecutiveFails uint32        `json:"maxConsecutiveFails"`
}

// RuntimeConfig contains settings for the driving loop rather than the physics
type RuntimeConfig struct {
	TickRate int           `json:"tickRate"`
	MaxTicks int           `json:"maxTicks"`
	Seed     uint64        `json:"seed"`
	Renderer string        `json:"renderer"`
	Breaker  BreakerConfig `json:"breaker"`
}

// Center returns the middle of the world
func (w WorldConfig) Center() (float64, float64) {
	return w.Width / 2, w.Height / 2
}

// BodyCategory returns the category of body i, falling back to Neutral when
// fewer categories than bodies are configured.
func (b BodyConfig) BodyCategory(i int) entity.Category {
	if i >= 0 && i < len(b.Categories) {
		return b.Categories[i]
	}
	return entity.Neutral
}

// TickDuration returns the wall-clock length of one tick
func (r RuntimeConfig) TickDuration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(r.TickRate)
}

// Clone returns a deep copy so callers can adjust a config without aliasing slices
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies.Categories = append([]entity.Category(nil), c.Bodies.Categories...)
	out.Spawner.Palette = append([]entity.Category(nil), c.Spawner.Palette...)
	return &out
}

// LoadConfig loads a configuration from a JSON file. Fields missing from the
// file keep the values of the variant preset the file names.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a JSON configuration on top of its variant's preset
func ParseConfig(data []byte) (*Config, error) {
	var header struct {
		Variant Variant `json:"variant"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	variant := header.Variant
	if variant == "" {
		variant = VariantTwoBall
	}
	cfg, err := Preset(variant)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Variant = variant

	return cfg, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the two-ball preset
func DefaultConfig() *Config {
	return twoBall()
}
