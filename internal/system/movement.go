// internal/system/movement.go
package system

import (
	"github.com/charmbracelet/log"

	"go-td-core/internal/entity"
)

// MovementSystem advances enemies along their tracks.
type MovementSystem struct {
	ecs    *entity.ECS
	logger *log.Logger
}

func NewMovementSystem(ecs *entity.ECS, logger *log.Logger) *MovementSystem {
	return &MovementSystem{ecs: ecs, logger: logger}
}

func (s *MovementSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.PathFollowers) {
		follower := s.ecs.PathFollowers[id]
		if follower.ReachedEnd || !isLiveEnemy(s.ecs, id) {
			continue
		}
		pos, hasPos := s.ecs.Positions[id]
		tr, hasTrack := s.ecs.Tracks[follower.TrackID]
		if !hasPos || !hasTrack {
			// Nothing to walk on; let cleanup take it off the field.
			s.logger.Warn("enemy lost its track", "id", id, "track", follower.TrackID)
			follower.ReachedEnd = true
			continue
		}

		speed := 0.0
		if vel, ok := s.ecs.Velocities[id]; ok {
			speed = vel.Speed
		}
		follower.PathPos += speed * deltaTime
		pos.Set(tr.PointAtDistance(follower.PathPos))
		if follower.PathPos >= tr.TotalLength() {
			follower.ReachedEnd = true
		}
	}
}
