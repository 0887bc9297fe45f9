// internal/defs/towers.go
package defs

import (
	"go-td-core/pkg/pid"
	"go-td-core/pkg/utils"
)

// TargetingPolicy selects which enemy in range a tower locks on to.
type TargetingPolicy string

const (
	TargetFirst   TargetingPolicy = "first"   // furthest along its track
	TargetClosest TargetingPolicy = "closest" // smallest Euclidean distance
)

// AttackKind defines how a tower delivers damage.
type AttackKind string

const (
	AttackBeam       AttackKind = "beam"
	AttackProjectile AttackKind = "projectile"
)

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	Cost      uint64          `yaml:"cost"`
	Range     float64         `yaml:"range"`
	Targeting TargetingPolicy `yaml:"targeting"`
	Attack    AttackKind      `yaml:"attack"`
	Damage    uint32          `yaml:"damage"`
	// Attacks per second at level 0 and the bonus added per level.
	BaseFireRate     float64 `yaml:"base_fire_rate"`
	FireRatePerLevel float64 `yaml:"fire_rate_per_level"`
	ProjectileSpeed  float64 `yaml:"projectile_speed,omitempty"`
	BeamDuration     float64 `yaml:"beam_duration,omitempty"`
	// Turret holds the aiming controller gains.
	Turret pid.Gains `yaml:"turret"`
}

// FireRate is the number of attacks per second at the given level.
func (d TowerDefinition) FireRate(level uint32) float64 {
	return d.BaseFireRate + float64(level)*d.FireRatePerLevel
}

// PlacementDefinition puts a tower on the field at setup.
type PlacementDefinition struct {
	Tower    string    `yaml:"tower"`
	Position []float64 `yaml:"position"`
}

type Placement struct {
	Tower    string
	Position utils.Vec3
}
