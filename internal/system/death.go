// internal/system/death.go
package system

import (
	"github.com/charmbracelet/log"

	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/metrics"
)

// DeathSystem reports each enemy whose health reached zero exactly once and
// pays kill experience to the tower that landed the last hit.
type DeathSystem struct {
	ecs             *entity.ECS
	bus             *event.ExperienceBus
	eventDispatcher *event.Dispatcher
	metrics         *metrics.Recorder
	logger          *log.Logger
	killExperience  uint64
}

func NewDeathSystem(ecs *entity.ECS, bus *event.ExperienceBus, eventDispatcher *event.Dispatcher, m *metrics.Recorder, logger *log.Logger, killExperience uint64) *DeathSystem {
	return &DeathSystem{
		ecs:             ecs,
		bus:             bus,
		eventDispatcher: eventDispatcher,
		metrics:         m,
		logger:          logger,
		killExperience:  killExperience,
	}
}

func (s *DeathSystem) Update(float64) {
	for _, id := range entity.SortedIDs(s.ecs.Enemies) {
		enemy := s.ecs.Enemies[id]
		health, ok := s.ecs.Healths[id]
		if !ok || health.Alive() || enemy.Dead {
			continue
		}
		enemy.Dead = true
		killer := health.LastAttacker
		pos, _ := s.ecs.PositionOf(id)

		if _, isTower := s.ecs.ExpLevels[killer]; isTower && s.killExperience > 0 {
			s.bus.ExperienceGain.Send(event.ExpGain{Entity: killer, Amount: s.killExperience})
		}
		s.metrics.EnemyKilled()
		s.logger.Debug("enemy killed", "id", id, "killer", killer, "bounty", enemy.Bounty)
		s.eventDispatcher.Dispatch(event.Event{
			Type: event.EnemyKilled,
			Data: event.EnemyKilledData{Enemy: id, Killer: killer, Bounty: enemy.Bounty, Position: pos},
		})
	}
}
