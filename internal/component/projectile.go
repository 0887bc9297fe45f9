// internal/component/projectile.go
package component

import (
	"go-td-core/internal/types"
	"go-td-core/pkg/utils"
)

// Projectile is a shot in flight.
type Projectile struct {
	Source   types.EntityID
	TargetID types.EntityID
	Speed    float64
	Damage   uint32
	// LastPos is where the projectile was on the previous tick.
	LastPos utils.Vec3
	Moved   bool
}
