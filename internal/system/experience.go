// internal/system/experience.go
package system

import (
	"math/bits"

	"github.com/charmbracelet/log"

	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/metrics"
	"go-td-core/internal/types"
)

// LevelFor returns ceil(log2(experience)), with 0 for no experience.
func LevelFor(experience uint64) uint32 {
	if experience == 0 {
		return 0
	}
	return uint32(bits.Len64(experience - 1))
}

// ExperienceSystem drains experience gains, accumulates them and emits a
// level-up whenever the derived level changes.
type ExperienceSystem struct {
	ecs     *entity.ECS
	bus     *event.ExperienceBus
	reader  event.Reader[event.ExpGain]
	metrics *metrics.Recorder
	logger  *log.Logger
}

func NewExperienceSystem(ecs *entity.ECS, bus *event.ExperienceBus, m *metrics.Recorder, logger *log.Logger) *ExperienceSystem {
	return &ExperienceSystem{ecs: ecs, bus: bus, metrics: m, logger: logger}
}

func (s *ExperienceSystem) Update(float64) {
	var touched []types.EntityID
	seen := make(map[types.EntityID]bool)

	for _, gain := range s.reader.Read(&s.bus.ExperienceGain) {
		exp, ok := s.ecs.ExpLevels[gain.Entity]
		if !ok {
			continue
		}
		exp.Experience += gain.Amount
		s.metrics.Experience(gain.Amount)
		if !seen[gain.Entity] {
			seen[gain.Entity] = true
			touched = append(touched, gain.Entity)
		}
	}

	for _, id := range touched {
		exp := s.ecs.ExpLevels[id]
		level := LevelFor(exp.Experience)
		if level == exp.Level {
			continue
		}
		exp.Level = level
		s.bus.LevelUp.Send(event.LevelUp{Entity: id, Level: level})
	}
}
