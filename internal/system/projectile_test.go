package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-td-core/internal/component"
	"go-td-core/internal/types"
	"go-td-core/pkg/utils"
)

func (w *testWorld) addProjectile(pos utils.Vec3, source, target types.EntityID) types.EntityID {
	id := w.ecs.Spawn(types.KindProjectile, pos)
	w.ecs.Projectiles[id] = &component.Projectile{
		Source:   source,
		TargetID: target,
		Speed:    10,
		Damage:   15,
		LastPos:  pos,
	}
	return id
}

func newProjectileSystem(w *testWorld) *ProjectileSystem {
	return NewProjectileSystem(w.ecs, nil, w.logger, 0.5, 1e-3)
}

func TestProjectileLeadsMovingTarget(t *testing.T) {
	w := newTestWorld(t)
	enemy := w.addEnemy(10, 5, 100)
	proj := w.addProjectile(utils.V3(10, 10, 0), 0, enemy)

	newProjectileSystem(w).Update(0.1)

	pos, ok := w.ecs.PositionOf(proj)
	require.True(t, ok)
	// Aimed ahead of the target, so it drifts along +X while closing in.
	assert.Greater(t, pos.X(), 10.0)
	assert.Less(t, pos.Y(), 10.0)
	assert.InDelta(t, 1.0, pos.Distance(utils.V3(10, 10, 0)), 1e-9)
}

func TestProjectileStationaryTargetFlightIsStraight(t *testing.T) {
	w := newTestWorld(t)
	enemy := w.addEnemy(10, 0, 100)
	proj := w.addProjectile(utils.V3(10, 5, 0), 0, enemy)
	s := newProjectileSystem(w)

	s.Update(0.1)
	pos, _ := w.ecs.PositionOf(proj)
	assert.InDelta(t, 10.0, pos.X(), 1e-9)
	assert.InDelta(t, 4.0, pos.Y(), 1e-9)
	assert.True(t, w.ecs.Projectiles[proj].Moved)
}

func TestProjectileHitAppliesDamage(t *testing.T) {
	w := newTestWorld(t)
	tower := w.ecs.Spawn(types.KindTower, utils.V3(0, 0, 0))
	enemy := w.addEnemy(10, 0, 100)
	proj := w.addProjectile(utils.V3(10, 1, 0), tower, enemy)
	s := newProjectileSystem(w)

	for i := 0; i < 10 && w.ecs.Exists(proj); i++ {
		s.Update(1.0 / 60)
	}
	assert.False(t, w.ecs.Exists(proj))
	assert.Equal(t, uint32(85), w.ecs.Healths[enemy].Value)
	assert.Equal(t, tower, w.ecs.Healths[enemy].LastAttacker)
}

func TestProjectileHitsAnyEnemyInRadius(t *testing.T) {
	w := newTestWorld(t)
	bystander := w.addEnemy(20, 0, 100)
	target := w.addEnemy(60, 0, 100)
	proj := w.addProjectile(utils.V3(20, 0.2, 0), 0, target)

	newProjectileSystem(w).Update(0.01)
	assert.False(t, w.ecs.Exists(proj))
	assert.Equal(t, uint32(85), w.ecs.Healths[bystander].Value)
	assert.Equal(t, uint32(100), w.ecs.Healths[target].Value)
}

func TestProjectileRetargetsToNearest(t *testing.T) {
	w := newTestWorld(t)
	gone := w.addEnemy(50, 0, 100)
	far := w.addEnemy(90, 0, 100)
	near := w.addEnemy(30, 0, 100)
	proj := w.addProjectile(utils.V3(40, 10, 0), 0, gone)
	w.ecs.Destroy(gone)

	newProjectileSystem(w).Update(0.01)
	require.True(t, w.ecs.Exists(proj))
	assert.Equal(t, near, w.ecs.Projectiles[proj].TargetID)
	assert.NotEqual(t, far, w.ecs.Projectiles[proj].TargetID)
}

func TestProjectileWithoutTargetsIsDestroyed(t *testing.T) {
	w := newTestWorld(t)
	gone := w.addEnemy(50, 0, 100)
	proj := w.addProjectile(utils.V3(40, 10, 0), 0, gone)
	w.ecs.Healths[gone].Value = 0

	newProjectileSystem(w).Update(0.01)
	assert.False(t, w.ecs.Exists(proj))
}

func TestPredictionFallsBackToLivePosition(t *testing.T) {
	w := newTestWorld(t)
	// Clamped at the end of the track the prediction is the end point.
	enemy := w.addEnemy(100, 3, 100)
	proj := w.addProjectile(utils.V3(100, 0.75, 0), 0, enemy)
	s := newProjectileSystem(w)

	got := s.objective(w.ecs.Projectiles[proj], utils.V3(100, 0.75, 0))
	assert.Equal(t, utils.V3(100, 0, 0), got)

	// An enemy as fast as the projectile predicts exactly onto a projectile
	// ahead of it on the track, so the live position is used instead.
	w.ecs.PathFollowers[enemy].PathPos = 95
	w.ecs.Positions[enemy].Set(utils.V3(95, 0, 0))
	w.ecs.Velocities[enemy].Speed = 10
	got = s.objective(w.ecs.Projectiles[proj], utils.V3(97, 0, 0))
	assert.Equal(t, utils.V3(95, 0, 0), got)
}
