// component/movement.go
package component

import (
	"go-td-core/pkg/track"
	"go-td-core/pkg/utils"
)

// Position is the world position of an entity.
type Position struct {
	X, Y, Z float64
}

func (p *Position) Vec() utils.Vec3 { return utils.V3(p.X, p.Y, p.Z) }

func (p *Position) Set(v utils.Vec3) {
	p.X, p.Y, p.Z = v.X(), v.Y(), v.Z()
}

// Velocity is movement speed in track distance per second.
type Velocity struct {
	Speed float64
}

// PathFollower tracks progress of an entity along a track.
type PathFollower struct {
	TrackID    track.ID
	PathPos    float64 // distance travelled, not percent
	ReachedEnd bool
}
