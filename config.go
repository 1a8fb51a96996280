package kinetic

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// SpringConfig describes a damped second-order spring. Stiffness, Damping
// and Mass use the usual physical meaning; RestDelta is the distance and
// speed below which the spring snaps to its target and stops.
type SpringConfig struct {
	Stiffness float64 `toml:"stiffness"`
	Damping   float64 `toml:"damping"`
	Mass      float64 `toml:"mass"`
	RestDelta float64 `toml:"rest_delta"`
}

// Config holds every tuning constant of the engine. Start from
// DefaultConfig and override fields, or decode overrides with LoadConfig.
type Config struct {
	// DriftFactor is the fraction of the gap between the live orientation
	// reading and the anchor closed per sample.
	DriftFactor float64 `toml:"drift_factor"`
	// MaxTilt is the tilt in degrees that moves the cursor from the
	// viewport center to its edge.
	MaxTilt float64 `toml:"max_tilt"`
	// RootMargin expands the viewport when deciding element visibility so
	// geometry is captured before an element scrolls into view.
	RootMargin float64 `toml:"root_margin"`
	// Quantum is the grid the fused cursor is rounded to. Zero disables it.
	Quantum float64 `toml:"quantum"`

	GyroSpring    SpringConfig `toml:"gyro_spring"`
	SurfaceSpring SpringConfig `toml:"surface_spring"`
	CursorSpring  SpringConfig `toml:"cursor_spring"`
	MagnetSpring  SpringConfig `toml:"magnet_spring"`
	MasterSpring  SpringConfig `toml:"master_spring"`

	// SurfaceStrength is the maximum surface tilt in degrees.
	SurfaceStrength float64 `toml:"surface_strength"`
	// ShineIntensity is the peak alpha of the surface glow.
	ShineIntensity float64 `toml:"shine_intensity"`
	// GlowFade is the glow fade duration in seconds.
	GlowFade float32 `toml:"glow_fade"`
	// LeverageScale converts a layer depth into its parallax leverage.
	LeverageScale float64 `toml:"leverage_scale"`

	RingCount       int `toml:"ring_count"`
	RingCountMobile int `toml:"ring_count_mobile"`
}

// DefaultConfig returns the tuning used by the reference experience.
func DefaultConfig() Config {
	return Config{
		DriftFactor: 0.02,
		MaxTilt:     25,
		RootMargin:  400,
		Quantum:     0.001,

		GyroSpring:    SpringConfig{Stiffness: 100, Damping: 30, Mass: 0.5, RestDelta: 0.01},
		// Damping ratio ≈0.86: surfaces settle with a slight overshoot.
		// Damping 25.7 or more would make them critically damped.
		SurfaceSpring: SpringConfig{Stiffness: 150, Damping: 22, Mass: 1.1, RestDelta: 0.001},
		CursorSpring:  SpringConfig{Stiffness: 450, Damping: 40, Mass: 0.2, RestDelta: 0.01},
		MagnetSpring:  SpringConfig{Stiffness: 200, Damping: 25, Mass: 0.6, RestDelta: 0.01},
		MasterSpring:  SpringConfig{Stiffness: 600, Damping: 65, Mass: 0.1, RestDelta: 0.001},

		SurfaceStrength: 16,
		ShineIntensity:  0.15,
		GlowFade:        0.7,
		LeverageScale:   0.2,

		RingCount:       24,
		RingCountMobile: 12,
	}
}

// LoadConfig decodes TOML overrides on top of DefaultConfig. Keys absent
// from data keep their default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.DriftFactor < 0 || c.DriftFactor > 1 {
		return fmt.Errorf("config: drift_factor %v outside [0, 1]", c.DriftFactor)
	}
	if c.MaxTilt <= 0 {
		return fmt.Errorf("config: max_tilt must be positive, got %v", c.MaxTilt)
	}
	if c.RootMargin < 0 {
		return fmt.Errorf("config: root_margin must not be negative, got %v", c.RootMargin)
	}
	for _, sp := range []struct {
		name string
		cfg  SpringConfig
	}{
		{"gyro_spring", c.GyroSpring},
		{"surface_spring", c.SurfaceSpring},
		{"cursor_spring", c.CursorSpring},
		{"magnet_spring", c.MagnetSpring},
		{"master_spring", c.MasterSpring},
	} {
		s := sp.cfg
		if s.Stiffness <= 0 || s.Mass <= 0 || s.Damping < 0 {
			return fmt.Errorf("config: %s needs positive stiffness and mass and non-negative damping", sp.name)
		}
	}
	if c.RingCount < 1 || c.RingCountMobile < 1 {
		return fmt.Errorf("config: ring counts must be at least 1")
	}
	return nil
}
