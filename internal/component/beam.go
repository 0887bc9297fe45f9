// internal/component/beam.go
package component

import (
	"go-td-core/internal/types"
	"go-td-core/pkg/utils"
)

// Beam is the short-lived link between a firing tower and its target.
type Beam struct {
	Source    types.EntityID
	Target    types.EntityID
	Start     utils.Vec3
	End       utils.Vec3
	Remaining float64 // seconds until expiry
	Override  bool    // an endpoint disappeared
}

// Expired reports whether the beam should be destroyed.
func (b *Beam) Expired() bool {
	return b.Override || b.Remaining <= 0
}
