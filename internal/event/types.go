// internal/event/types.go
package event

import (
	"go-td-core/internal/types"
	"go-td-core/pkg/utils"
)

const (
	EnemySpawned      EventType = "EnemySpawned"
	EnemyKilled       EventType = "EnemyKilled" // health reached zero
	EnemyLeaked       EventType = "EnemyLeaked" // reached the end of its track
	WaveStatusChanged EventType = "WaveStatusChanged"
	TowerPlaced       EventType = "TowerPlaced"
	TowerLeveledUp    EventType = "TowerLeveledUp"
	AttackFired       EventType = "AttackFired"
	EntityDespawned   EventType = "EntityDespawned"
)

type EnemySpawnedData struct {
	Enemy    types.EntityID
	DefID    string
	Position utils.Vec3
}

type EnemyKilledData struct {
	Enemy    types.EntityID
	Killer   types.EntityID // zero when nobody hit it
	Bounty   uint64
	Position utils.Vec3
}

type EnemyLeakedData struct {
	Enemy  types.EntityID
	Damage int
}

type WaveStatusChangedData struct {
	Wave int
	From string
	To   string
}

type TowerPlacedData struct {
	Tower types.EntityID
	DefID string
}

type TowerLeveledUpData struct {
	Tower types.EntityID
	Level uint32
}

type AttackFiredData struct {
	Tower  types.EntityID
	Target types.EntityID
	Kind   string
}

type EntityDespawnedData struct {
	Entity types.EntityID
	Kind   types.Kind
}
