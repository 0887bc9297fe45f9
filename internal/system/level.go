// internal/system/level.go
package system

import (
	"github.com/charmbracelet/log"

	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/metrics"
)

// LevelSystem rescales tower fire rate when a level-up arrives.
type LevelSystem struct {
	ecs             *entity.ECS
	bus             *event.ExperienceBus
	reader          event.Reader[event.LevelUp]
	eventDispatcher *event.Dispatcher
	metrics         *metrics.Recorder
	logger          *log.Logger
}

func NewLevelSystem(ecs *entity.ECS, bus *event.ExperienceBus, eventDispatcher *event.Dispatcher, m *metrics.Recorder, logger *log.Logger) *LevelSystem {
	return &LevelSystem{ecs: ecs, bus: bus, eventDispatcher: eventDispatcher, metrics: m, logger: logger}
}

func (s *LevelSystem) Update(float64) {
	for _, up := range s.reader.Read(&s.bus.LevelUp) {
		combat, ok := s.ecs.Combats[up.Entity]
		if !ok {
			continue
		}
		combat.Rescale(up.Level)
		s.metrics.LevelUp()
		s.logger.Info("tower leveled up", "tower", up.Entity, "level", up.Level, "cooldown", combat.Cooldown.Duration)
		s.eventDispatcher.Dispatch(event.Event{
			Type: event.TowerLeveledUp,
			Data: event.TowerLeveledUpData{Tower: up.Entity, Level: up.Level},
		})
	}
}
