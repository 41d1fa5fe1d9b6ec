// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables that override configuration values
const (
	EnvVariant      = "RINGS_VARIANT"
	EnvTickRate     = "RINGS_TICK_RATE"
	EnvMaxTicks     = "RINGS_MAX_TICKS"
	EnvSeed         = "RINGS_SEED"
	EnvGravity      = "RINGS_GRAVITY"
	EnvMaxSpeed     = "RINGS_MAX_SPEED"
	EnvRenderer     = "RINGS_RENDERER"
	EnvBreakerTimer = "RINGS_BREAKER_TIMEOUT"
)

// VariantFromEnv returns the variant named by RINGS_VARIANT, or fallback
func VariantFromEnv(fallback Variant) Variant {
	if v := os.Getenv(EnvVariant); v != "" {
		return Variant(v)
	}
	return fallback
}

// ApplyEnv overrides configuration values from the environment. Unset
// variables leave the value alone; unparsable ones are reported.
func (c *Config) ApplyEnv() error {
	if err := envInt(EnvTickRate, &c.Runtime.TickRate); err != nil {
		return err
	}
	if err := envInt(EnvMaxTicks, &c.Runtime.MaxTicks); err != nil {
		return err
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSeed, v, err)
		}
		c.Runtime.Seed = seed
	}
	if err := envFloat(EnvGravity, &c.Physics.Gravity); err != nil {
		return err
	}
	if err := envFloat(EnvMaxSpeed, &c.Physics.MaxSpeed); err != nil {
		return err
	}
	if v := os.Getenv(EnvRenderer); v != "" {
		c.Runtime.Renderer = v
	}
	if v := os.Getenv(EnvBreakerTimer); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvBreakerTimer, v, err)
		}
		c.Runtime.Breaker.Timeout = d
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
	}
	*dst = f
	return nil
}
