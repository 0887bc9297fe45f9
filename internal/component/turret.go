// internal/component/turret.go
package component

import (
	"go-td-core/pkg/pid"
	"go-td-core/pkg/utils"
)

// Turret turns the tower head smoothly towards its target.
type Turret struct {
	// PID target is the target's current position; its output is added to Aim.
	PID *pid.Axis[utils.Vec3]
	// Aim is the point the head currently looks at.
	Aim utils.Vec3
	// Yaw is the heading of Aim around the Z axis, in radians.
	Yaw float64
}
