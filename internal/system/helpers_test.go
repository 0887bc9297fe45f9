package system

import (
	"testing"

	"github.com/charmbracelet/log"

	"go-td-core/internal/component"
	"go-td-core/internal/defs"
	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/logging"
	"go-td-core/internal/types"
	"go-td-core/pkg/pid"
	"go-td-core/pkg/track"
	"go-td-core/pkg/utils"
)

type testWorld struct {
	ecs    *entity.ECS
	events *event.Dispatcher
	bus    *event.ExperienceBus
	logger *log.Logger
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	ecs := entity.NewECS()
	ecs.Tracks[1] = track.New(1, []utils.Vec3{utils.V3(0, 0, 0), utils.V3(100, 0, 0)})
	return &testWorld{
		ecs:    ecs,
		events: event.NewDispatcher(),
		bus:    event.NewExperienceBus(),
		logger: logging.Discard(),
	}
}

// addEnemy places an enemy on track 1 at the given progress.
func (w *testWorld) addEnemy(pathPos, speed float64, health uint32) types.EntityID {
	tr := w.ecs.Tracks[1]
	id := w.ecs.Spawn(types.KindEnemy, tr.PointAtDistance(pathPos))
	w.ecs.Enemies[id] = &component.Enemy{DefID: "E", Bounty: 5, Damage: 1}
	w.ecs.Healths[id] = &component.Health{Value: health, Max: health}
	w.ecs.Velocities[id] = &component.Velocity{Speed: speed}
	w.ecs.PathFollowers[id] = &component.PathFollower{TrackID: 1, PathPos: pathPos}
	return id
}

func (w *testWorld) addTower(pos utils.Vec3, attack defs.AttackKind, targeting defs.TargetingPolicy, rangeRadius float64) types.EntityID {
	id := w.ecs.Spawn(types.KindTower, pos)
	w.ecs.Towers[id] = &component.Tower{DefID: "T"}
	combat := &component.Combat{
		Attack:          attack,
		Targeting:       targeting,
		Range:           rangeRadius,
		Damage:          15,
		BaseRate:        1,
		RateBonus:       0.1,
		ProjectileSpeed: 10,
		BeamDuration:    0.5,
	}
	combat.Rescale(0)
	w.ecs.Combats[id] = combat
	axis := pid.New[utils.Vec3](pid.Gains{P: 0.2, D: 0.01})
	aim := pos.Add(utils.V3(1, 0, 0))
	axis.SetTarget(aim)
	w.ecs.Turrets[id] = &component.Turret{PID: axis, Aim: aim}
	w.ecs.ExpLevels[id] = &component.ExpLevel{}
	return id
}
