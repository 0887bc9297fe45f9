// internal/system/turret.go
package system

import (
	"go-td-core/internal/entity"
	"go-td-core/internal/utils"
)

// TurretSystem integrates the aiming controller output into each turret's
// aim point, so heads swing towards targets instead of snapping.
type TurretSystem struct {
	ecs *entity.ECS
}

func NewTurretSystem(ecs *entity.ECS) *TurretSystem {
	return &TurretSystem{ecs: ecs}
}

func (s *TurretSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Turrets) {
		turret := s.ecs.Turrets[id]
		if turret.PID == nil {
			continue
		}
		turret.Aim = turret.Aim.Add(turret.PID.Compute(deltaTime, turret.Aim))

		if pos, ok := s.ecs.PositionOf(id); ok {
			turret.Yaw = utils.Heading(pos.X(), pos.Y(), turret.Aim.X(), turret.Aim.Y())
		}
	}
}
