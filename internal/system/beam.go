// internal/system/beam.go
package system

import (
	"github.com/charmbracelet/log"

	"go-td-core/internal/entity"
)

// BeamSystem keeps beam endpoints locked to their source and target and
// removes beams that expired or lost an endpoint.
type BeamSystem struct {
	ecs    *entity.ECS
	logger *log.Logger
}

func NewBeamSystem(ecs *entity.ECS, logger *log.Logger) *BeamSystem {
	return &BeamSystem{ecs: ecs, logger: logger}
}

func (s *BeamSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Beams) {
		beam := s.ecs.Beams[id]

		start, okSource := s.ecs.PositionOf(beam.Source)
		end, okTarget := s.ecs.PositionOf(beam.Target)
		if okSource && okTarget {
			beam.Start, beam.End = start, end
			if pos, ok := s.ecs.Positions[id]; ok {
				pos.Set(start)
			}
		} else if !beam.Override {
			s.logger.Debug("beam lost an endpoint", "id", id, "source", beam.Source, "target", beam.Target)
			beam.Override = true
		}

		beam.Remaining -= deltaTime
		if beam.Expired() {
			s.ecs.Destroy(id)
		}
	}
}
