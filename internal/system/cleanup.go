// internal/system/cleanup.go
package system

import (
	"github.com/charmbracelet/log"

	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/metrics"
)

// CleanupSystem removes dead enemies and those that walked off the end of
// their track.
type CleanupSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	metrics         *metrics.Recorder
	logger          *log.Logger
}

func NewCleanupSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, m *metrics.Recorder, logger *log.Logger) *CleanupSystem {
	return &CleanupSystem{ecs: ecs, eventDispatcher: eventDispatcher, metrics: m, logger: logger}
}

func (s *CleanupSystem) Update(float64) {
	for _, id := range entity.SortedIDs(s.ecs.Enemies) {
		enemy := s.ecs.Enemies[id]
		if enemy.Dead {
			s.ecs.Destroy(id)
			continue
		}
		follower, ok := s.ecs.PathFollowers[id]
		if !ok || !follower.ReachedEnd {
			continue
		}
		s.metrics.EnemyLeaked()
		s.logger.Debug("enemy leaked", "id", id, "damage", enemy.Damage)
		s.eventDispatcher.Dispatch(event.Event{
			Type: event.EnemyLeaked,
			Data: event.EnemyLeakedData{Enemy: id, Damage: enemy.Damage},
		})
		s.ecs.Destroy(id)
	}
	s.metrics.Live(len(s.ecs.Enemies))
}
