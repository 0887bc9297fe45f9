// internal/entity/ecs.go
package entity

import (
	"sort"

	"go-td-core/internal/component"
	"go-td-core/internal/types"
	"go-td-core/pkg/track"
	"go-td-core/pkg/utils"
)

// Observer is told about entities entering and leaving the world, so that
// renderers can attach and free their own data.
type Observer interface {
	OnSpawn(id types.EntityID, kind types.Kind, position utils.Vec3)
	OnDespawn(id types.EntityID, kind types.Kind)
}

type ECS struct {
	GameTime      float64
	NextID        types.EntityID
	Kinds         map[types.EntityID]types.Kind
	Positions     map[types.EntityID]*component.Position
	Velocities    map[types.EntityID]*component.Velocity
	PathFollowers map[types.EntityID]*component.PathFollower
	Healths       map[types.EntityID]*component.Health
	Enemies       map[types.EntityID]*component.Enemy
	Towers        map[types.EntityID]*component.Tower
	Combats       map[types.EntityID]*component.Combat
	Turrets       map[types.EntityID]*component.Turret
	ExpLevels     map[types.EntityID]*component.ExpLevel
	Projectiles   map[types.EntityID]*component.Projectile
	Beams         map[types.EntityID]*component.Beam
	Tracks        map[track.ID]*track.Track
	Wave          *component.WaveManager
	Player        *component.Player
	Observer      Observer
}

func NewECS() *ECS {
	return &ECS{
		NextID:        1,
		Kinds:         make(map[types.EntityID]types.Kind),
		Positions:     make(map[types.EntityID]*component.Position),
		Velocities:    make(map[types.EntityID]*component.Velocity),
		PathFollowers: make(map[types.EntityID]*component.PathFollower),
		Healths:       make(map[types.EntityID]*component.Health),
		Enemies:       make(map[types.EntityID]*component.Enemy),
		Towers:        make(map[types.EntityID]*component.Tower),
		Combats:       make(map[types.EntityID]*component.Combat),
		Turrets:       make(map[types.EntityID]*component.Turret),
		ExpLevels:     make(map[types.EntityID]*component.ExpLevel),
		Projectiles:   make(map[types.EntityID]*component.Projectile),
		Beams:         make(map[types.EntityID]*component.Beam),
		Tracks:        make(map[track.ID]*track.Track),
		Wave:          component.NewWaveManager(nil),
		Player:        &component.Player{},
	}
}

// NewEntity allocates an id. Ids are never reused.
func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// Spawn allocates an entity of the given kind with a position and reports it
// to the observer.
func (ecs *ECS) Spawn(kind types.Kind, pos utils.Vec3) types.EntityID {
	id := ecs.NewEntity()
	ecs.Kinds[id] = kind
	p := &component.Position{}
	p.Set(pos)
	ecs.Positions[id] = p
	if ecs.Observer != nil {
		ecs.Observer.OnSpawn(id, kind, pos)
	}
	return id
}

// Destroy removes every component of id. Unknown ids are ignored.
func (ecs *ECS) Destroy(id types.EntityID) {
	kind, ok := ecs.Kinds[id]
	if !ok {
		return
	}
	delete(ecs.Kinds, id)
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.PathFollowers, id)
	delete(ecs.Healths, id)
	delete(ecs.Enemies, id)
	delete(ecs.Towers, id)
	delete(ecs.Combats, id)
	delete(ecs.Turrets, id)
	delete(ecs.ExpLevels, id)
	delete(ecs.Projectiles, id)
	delete(ecs.Beams, id)
	if ecs.Observer != nil {
		ecs.Observer.OnDespawn(id, kind)
	}
}

// Exists reports whether id is still in the world.
func (ecs *ECS) Exists(id types.EntityID) bool {
	_, ok := ecs.Kinds[id]
	return ok
}

// PositionOf returns the position of id, if it has one.
func (ecs *ECS) PositionOf(id types.EntityID) (utils.Vec3, bool) {
	p, ok := ecs.Positions[id]
	if !ok {
		return utils.Vec3{}, false
	}
	return p.Vec(), true
}

// LiveEnemyIDs returns enemies with health left, in ascending id order.
func (ecs *ECS) LiveEnemyIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Enemies))
	for id := range ecs.Enemies {
		if h, ok := ecs.Healths[id]; ok && h.Alive() {
			ids = append(ids, id)
		}
	}
	sortIDs(ids)
	return ids
}

// SortedIDs returns the keys of a component map in ascending order.
func SortedIDs[T any](m map[types.EntityID]T) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

func sortIDs(ids []types.EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
