// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	MaxDeltaTime = 0.06
	TickRate     = 60

	HitRadius         = 0.5  // projectile to enemy hit distance
	PredictionEpsilon = 1e-3 // intercept closer than this falls back to the live position

	ExperiencePerAttack = 1
	KillExperience      = 2

	StartingMoney = 100
	BaseHealth    = 20

	BeamDuration    = 0.5
	ProjectileSpeed = 10.0
	LevelBonusRate  = 0.1 // attacks per second gained per level

	TurretGainP = 0.2
	TurretGainI = 0.0
	TurretGainD = 0.01
)

// ConfigEnv names the environment variable holding the config path.
const ConfigEnv = "TD_CONFIG"

// Config is the runtime configuration of a simulation run.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Combat     CombatConfig     `yaml:"combat"`
	Player     PlayerConfig     `yaml:"player"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Content    ContentConfig    `yaml:"content"`
}

type SimulationConfig struct {
	MaxDeltaTime    float64 `yaml:"max_delta_time"`
	TickRate        int     `yaml:"tick_rate"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	// MaxDuration bounds a headless run.
	MaxDuration time.Duration `yaml:"max_duration"`
	AutoStart   bool          `yaml:"auto_start_waves"`
}

type CombatConfig struct {
	HitRadius           float64 `yaml:"hit_radius"`
	PredictionEpsilon   float64 `yaml:"prediction_epsilon"`
	ExperiencePerAttack uint64  `yaml:"experience_per_attack"`
	KillExperience      uint64  `yaml:"kill_experience"`
}

type PlayerConfig struct {
	StartingMoney uint64 `yaml:"starting_money"`
	BaseHealth    int    `yaml:"base_health"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type ContentConfig struct {
	// Path to a content YAML file; empty uses the embedded defaults.
	Path string `yaml:"path"`
}

// Default returns the configuration built from the package constants.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			MaxDeltaTime:    MaxDeltaTime,
			TickRate:        TickRate,
			SpeedMultiplier: 1,
			MaxDuration:     10 * time.Minute,
			AutoStart:       true,
		},
		Combat: CombatConfig{
			HitRadius:           HitRadius,
			PredictionEpsilon:   PredictionEpsilon,
			ExperiencePerAttack: ExperiencePerAttack,
			KillExperience:      KillExperience,
		},
		Player: PlayerConfig{
			StartingMoney: StartingMoney,
			BaseHealth:    BaseHealth,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML config on top of the defaults. An empty path falls back
// to $TD_CONFIG; when neither is set the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(ConfigEnv)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Simulation.MaxDeltaTime <= 0:
		return fmt.Errorf("%w: simulation.max_delta_time must be positive", ErrInvalidConfig)
	case c.Simulation.TickRate <= 0:
		return fmt.Errorf("%w: simulation.tick_rate must be positive", ErrInvalidConfig)
	case c.Simulation.SpeedMultiplier <= 0:
		return fmt.Errorf("%w: simulation.speed_multiplier must be positive", ErrInvalidConfig)
	case c.Combat.HitRadius <= 0:
		return fmt.Errorf("%w: combat.hit_radius must be positive", ErrInvalidConfig)
	case c.Combat.PredictionEpsilon < 0:
		return fmt.Errorf("%w: combat.prediction_epsilon must not be negative", ErrInvalidConfig)
	case c.Player.BaseHealth <= 0:
		return fmt.Errorf("%w: player.base_health must be positive", ErrInvalidConfig)
	}
	return nil
}

// FixedStep is the simulated time of one headless tick.
func (c *Config) FixedStep() float64 {
	return 1.0 / float64(c.Simulation.TickRate)
}
