package system

import (
	"github.com/charmbracelet/log"

	"go-td-core/internal/component"
	"go-td-core/internal/defs"
	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/metrics"
	"go-td-core/internal/types"
	"go-td-core/pkg/utils"
)

// CombatSystem picks targets for towers, runs their cooldowns and fires.
type CombatSystem struct {
	ecs                 *entity.ECS
	bus                 *event.ExperienceBus
	eventDispatcher     *event.Dispatcher
	metrics             *metrics.Recorder
	logger              *log.Logger
	experiencePerAttack uint64
}

func NewCombatSystem(ecs *entity.ECS, bus *event.ExperienceBus, eventDispatcher *event.Dispatcher, m *metrics.Recorder, logger *log.Logger, experiencePerAttack uint64) *CombatSystem {
	return &CombatSystem{
		ecs:                 ecs,
		bus:                 bus,
		eventDispatcher:     eventDispatcher,
		metrics:             m,
		logger:              logger,
		experiencePerAttack: experiencePerAttack,
	}
}

func (s *CombatSystem) Update(deltaTime float64) {
	live := s.ecs.LiveEnemyIDs()

	for _, id := range entity.SortedIDs(s.ecs.Combats) {
		combat := s.ecs.Combats[id]
		towerPos, ok := s.ecs.PositionOf(id)
		if !ok {
			continue
		}

		target := s.findTarget(towerPos, combat, live)
		combat.TargetID = target
		if target != 0 {
			if turret, ok := s.ecs.Turrets[id]; ok && turret.PID != nil {
				targetPos, _ := s.ecs.PositionOf(target)
				turret.PID.SetTarget(targetPos)
			}
		}

		shots := combat.Cooldown.Tick(deltaTime)
		if target == 0 {
			continue
		}
		for i := 0; i < shots && isLiveEnemy(s.ecs, target); i++ {
			s.fire(id, target, towerPos, combat)
		}
	}
}

// findTarget picks an enemy strictly inside range according to the tower's
// policy. Ties go to the lowest id. Returns 0 when nothing qualifies.
func (s *CombatSystem) findTarget(towerPos utils.Vec3, combat *component.Combat, live []types.EntityID) types.EntityID {
	var best types.EntityID
	bestScore := 0.0

	for _, id := range live {
		if !isLiveEnemy(s.ecs, id) {
			continue
		}
		pos, ok := s.ecs.PositionOf(id)
		if !ok {
			continue
		}
		dist := towerPos.Distance(pos)
		if dist >= combat.Range {
			continue
		}

		switch combat.Targeting {
		case defs.TargetClosest:
			if best == 0 || dist < bestScore {
				best, bestScore = id, dist
			}
		default:
			progress := 0.0
			if f, ok := s.ecs.PathFollowers[id]; ok {
				progress = f.PathPos
			}
			if best == 0 || progress > bestScore {
				best, bestScore = id, progress
			}
		}
	}
	return best
}

func (s *CombatSystem) fire(towerID, targetID types.EntityID, towerPos utils.Vec3, combat *component.Combat) {
	targetPos, _ := s.ecs.PositionOf(targetID)

	switch combat.Attack {
	case defs.AttackBeam:
		ApplyDamage(s.ecs, targetID, towerID, combat.Damage)
		beamID := s.ecs.Spawn(types.KindBeam, towerPos)
		s.ecs.Beams[beamID] = &component.Beam{
			Source:    towerID,
			Target:    targetID,
			Start:     towerPos,
			End:       targetPos,
			Remaining: combat.BeamDuration,
		}
	case defs.AttackProjectile:
		projID := s.ecs.Spawn(types.KindProjectile, towerPos)
		s.ecs.Projectiles[projID] = &component.Projectile{
			Source:   towerID,
			TargetID: targetID,
			Speed:    combat.ProjectileSpeed,
			Damage:   combat.Damage,
			LastPos:  towerPos,
		}
	default:
		s.logger.Warn("unknown attack kind", "tower", towerID, "attack", combat.Attack)
		return
	}

	s.bus.ExperienceGain.Send(event.ExpGain{Entity: towerID, Amount: s.experiencePerAttack})
	s.metrics.Attack(string(combat.Attack))
	s.eventDispatcher.Dispatch(event.Event{
		Type: event.AttackFired,
		Data: event.AttackFiredData{Tower: towerID, Target: targetID, Kind: string(combat.Attack)},
	})
}
