// internal/defs/loader.go
package defs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"go-td-core/internal/config"
	"go-td-core/pkg/pid"
	"go-td-core/pkg/track"
	"go-td-core/pkg/utils"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownDefinition = errors.New("unknown definition")
	ErrInvalidDefinition = errors.New("invalid definition")
)

//go:embed default_content.yaml
var defaultContent []byte

// Content is the on-disk layout of a content file.
type Content struct {
	Towers  []TowerDefinition `yaml:"towers"`
	Enemies []EnemyDefinition `yaml:"enemies"`
	Tracks  []TrackDefinition `yaml:"tracks"`
	Waves   []WaveDefinition  `yaml:"waves"`

	// Placements are towers built before the first wave.
	Placements []PlacementDefinition `yaml:"placements"`
}

// Library is validated content, indexed for lookup.
type Library struct {
	Towers  map[string]TowerDefinition
	Enemies map[string]EnemyDefinition
	Waves   []WaveDefinition

	// Placements in content order, positions resolved.
	Placements []Placement

	trackIndex map[string]track.ID
	built      map[track.ID]*track.Track
}

// LoadDefault parses the content shipped with the binary.
func LoadDefault() (*Library, error) {
	return Parse(defaultContent)
}

// LoadFile reads and parses a content file.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return lib, nil
}

// Parse decodes, defaults and validates a content document.
func Parse(data []byte) (*Library, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content: %w", err)
	}
	return NewLibrary(c)
}

// NewLibrary validates content and builds every track.
func NewLibrary(c Content) (*Library, error) {
	lib := &Library{
		Towers:     make(map[string]TowerDefinition, len(c.Towers)),
		Enemies:    make(map[string]EnemyDefinition, len(c.Enemies)),
		Waves:      c.Waves,
		trackIndex: make(map[string]track.ID, len(c.Tracks)),
		built:      make(map[track.ID]*track.Track, len(c.Tracks)),
	}

	for _, def := range c.Towers {
		def = withTowerDefaults(def)
		if err := validateTower(def); err != nil {
			return nil, err
		}
		if _, dup := lib.Towers[def.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate tower %q", ErrInvalidDefinition, def.ID)
		}
		lib.Towers[def.ID] = def
	}
	for _, def := range c.Enemies {
		if def.ID == "" {
			return nil, fmt.Errorf("%w: enemy without id", ErrInvalidDefinition)
		}
		if def.Speed < 0 {
			return nil, fmt.Errorf("%w: enemy %q has negative speed", ErrInvalidDefinition, def.ID)
		}
		if def.Health == 0 {
			return nil, fmt.Errorf("%w: enemy %q needs positive health", ErrInvalidDefinition, def.ID)
		}
		if _, dup := lib.Enemies[def.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate enemy %q", ErrInvalidDefinition, def.ID)
		}
		lib.Enemies[def.ID] = def
	}
	for i, def := range c.Tracks {
		if _, dup := lib.trackIndex[def.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate track %q", ErrInvalidDefinition, def.ID)
		}
		id := track.ID(i + 1)
		t, err := def.Build(id)
		if err != nil {
			return nil, err
		}
		lib.trackIndex[def.ID] = id
		lib.built[id] = t
	}
	for i, w := range c.Waves {
		if w.Count < 0 {
			return nil, fmt.Errorf("%w: wave %d has negative count", ErrInvalidDefinition, i+1)
		}
		if w.SpawnInterval <= 0 {
			return nil, fmt.Errorf("%w: wave %d needs a positive spawn interval", ErrInvalidDefinition, i+1)
		}
		if _, ok := lib.Enemies[w.EnemyID]; !ok {
			return nil, fmt.Errorf("%w: wave %d enemy %q", ErrUnknownDefinition, i+1, w.EnemyID)
		}
		if _, ok := lib.trackIndex[w.TrackID]; !ok {
			return nil, fmt.Errorf("%w: wave %d track %q", ErrUnknownDefinition, i+1, w.TrackID)
		}
	}
	for i, p := range c.Placements {
		if _, ok := lib.Towers[p.Tower]; !ok {
			return nil, fmt.Errorf("%w: placement %d tower %q", ErrUnknownDefinition, i+1, p.Tower)
		}
		if len(p.Position) != 3 {
			return nil, fmt.Errorf("%w: placement %d needs 3 coordinates", ErrInvalidDefinition, i+1)
		}
		lib.Placements = append(lib.Placements, Placement{
			Tower:    p.Tower,
			Position: utils.V3(p.Position[0], p.Position[1], p.Position[2]),
		})
	}
	return lib, nil
}

func withTowerDefaults(def TowerDefinition) TowerDefinition {
	if def.Targeting == "" {
		def.Targeting = TargetFirst
	}
	if def.FireRatePerLevel == 0 {
		def.FireRatePerLevel = config.LevelBonusRate
	}
	if def.Attack == AttackProjectile && def.ProjectileSpeed == 0 {
		def.ProjectileSpeed = config.ProjectileSpeed
	}
	if def.Attack == AttackBeam && def.BeamDuration == 0 {
		def.BeamDuration = config.BeamDuration
	}
	if def.Turret == (pid.Gains{}) {
		def.Turret = pid.Gains{P: config.TurretGainP, I: config.TurretGainI, D: config.TurretGainD}
	}
	return def
}

func validateTower(def TowerDefinition) error {
	switch {
	case def.ID == "":
		return fmt.Errorf("%w: tower without id", ErrInvalidDefinition)
	case def.Range <= 0:
		return fmt.Errorf("%w: tower %q needs a positive range", ErrInvalidDefinition, def.ID)
	case def.BaseFireRate <= 0:
		return fmt.Errorf("%w: tower %q needs a positive base fire rate", ErrInvalidDefinition, def.ID)
	case def.ProjectileSpeed < 0:
		return fmt.Errorf("%w: tower %q has negative projectile speed", ErrInvalidDefinition, def.ID)
	case def.BeamDuration < 0:
		return fmt.Errorf("%w: tower %q has negative beam duration", ErrInvalidDefinition, def.ID)
	}
	switch def.Targeting {
	case TargetFirst, TargetClosest:
	default:
		return fmt.Errorf("%w: tower %q targeting %q", ErrInvalidDefinition, def.ID, def.Targeting)
	}
	switch def.Attack {
	case AttackBeam, AttackProjectile:
	default:
		return fmt.Errorf("%w: tower %q attack %q", ErrInvalidDefinition, def.ID, def.Attack)
	}
	return nil
}

// Tower looks up a tower definition.
func (l *Library) Tower(id string) (TowerDefinition, error) {
	def, ok := l.Towers[id]
	if !ok {
		return TowerDefinition{}, fmt.Errorf("%w: tower %q", ErrUnknownDefinition, id)
	}
	return def, nil
}

// Enemy looks up an enemy definition.
func (l *Library) Enemy(id string) (EnemyDefinition, error) {
	def, ok := l.Enemies[id]
	if !ok {
		return EnemyDefinition{}, fmt.Errorf("%w: enemy %q", ErrUnknownDefinition, id)
	}
	return def, nil
}

// TrackID maps a content track name to its runtime id.
func (l *Library) TrackID(name string) (track.ID, bool) {
	id, ok := l.trackIndex[name]
	return id, ok
}

// Tracks returns every built track keyed by runtime id.
func (l *Library) Tracks() map[track.ID]*track.Track {
	out := make(map[track.ID]*track.Track, len(l.built))
	for id, t := range l.built {
		out[id] = t
	}
	return out
}
