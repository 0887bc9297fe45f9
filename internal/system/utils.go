// internal/system/utils.go
package system

import (
	"go-td-core/internal/entity"
	"go-td-core/internal/types"
)

// ApplyDamage hurts entityID and records source as its last attacker.
// It returns the damage actually dealt.
func ApplyDamage(ecs *entity.ECS, entityID, source types.EntityID, damage uint32) uint32 {
	health, ok := ecs.Healths[entityID]
	if !ok || !health.Alive() {
		return 0
	}
	dealt := health.Hurt(damage)
	if source != 0 {
		health.LastAttacker = source
	}
	return dealt
}

// isLiveEnemy reports whether id is an enemy with health left.
func isLiveEnemy(ecs *entity.ECS, id types.EntityID) bool {
	if _, ok := ecs.Enemies[id]; !ok {
		return false
	}
	h, ok := ecs.Healths[id]
	return ok && h.Alive()
}
