// internal/system/projectile.go
package system

import (
	"math"

	"github.com/charmbracelet/log"

	"go-td-core/internal/component"
	"go-td-core/internal/entity"
	"go-td-core/internal/metrics"
	"go-td-core/internal/types"
	"go-td-core/pkg/utils"
)

// ProjectileSystem steers projectiles towards a predicted intercept point and
// resolves hits.
type ProjectileSystem struct {
	ecs               *entity.ECS
	metrics           *metrics.Recorder
	logger            *log.Logger
	hitRadius         float64
	predictionEpsilon float64
}

func NewProjectileSystem(ecs *entity.ECS, m *metrics.Recorder, logger *log.Logger, hitRadius, predictionEpsilon float64) *ProjectileSystem {
	return &ProjectileSystem{
		ecs:               ecs,
		metrics:           m,
		logger:            logger,
		hitRadius:         hitRadius,
		predictionEpsilon: predictionEpsilon,
	}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	live := s.ecs.LiveEnemyIDs()

	for _, id := range entity.SortedIDs(s.ecs.Projectiles) {
		proj := s.ecs.Projectiles[id]
		pos, ok := s.ecs.Positions[id]
		if !ok {
			s.ecs.Destroy(id)
			continue
		}

		if !isLiveEnemy(s.ecs, proj.TargetID) {
			next := s.nearestEnemy(pos.Vec(), live)
			if next == 0 {
				s.logger.Debug("projectile lost its target", "id", id, "target", proj.TargetID)
				s.ecs.Destroy(id)
				continue
			}
			s.logger.Debug("projectile retargeted", "id", id, "from", proj.TargetID, "to", next)
			proj.TargetID = next
			s.metrics.Retarget()
		}

		s.steer(proj, pos, deltaTime)

		if hit := s.firstWithinRadius(pos.Vec(), live); hit != 0 {
			ApplyDamage(s.ecs, hit, proj.Source, proj.Damage)
			s.ecs.Destroy(id)
		}
	}
}

// steer moves the projectile one step towards the objective.
func (s *ProjectileSystem) steer(proj *component.Projectile, pos *component.Position, deltaTime float64) {
	current := pos.Vec()
	objective := s.objective(proj, current)

	desired := objective.Sub(current).Normalize().Scale(proj.Speed)
	var velocity utils.Vec3
	if proj.Moved && deltaTime > 0 {
		velocity = current.Sub(proj.LastPos).Scale(1 / deltaTime)
	}
	velocity = velocity.Add(desired.Sub(velocity))

	proj.LastPos = current
	proj.Moved = true
	pos.Set(current.Add(velocity.Scale(deltaTime)))
}

// objective is the predicted intercept point on the target's track, or its
// live position when no prediction is possible or the prediction coincides
// with the projectile.
func (s *ProjectileSystem) objective(proj *component.Projectile, current utils.Vec3) utils.Vec3 {
	targetPos, _ := s.ecs.PositionOf(proj.TargetID)
	follower, ok := s.ecs.PathFollowers[proj.TargetID]
	if !ok || proj.Speed <= 0 {
		return targetPos
	}
	tr, ok := s.ecs.Tracks[follower.TrackID]
	if !ok {
		return targetPos
	}

	speed := 0.0
	if vel, ok := s.ecs.Velocities[proj.TargetID]; ok {
		speed = vel.Speed
	}
	timeToImpact := current.Distance(targetPos) / proj.Speed
	predicted := tr.PointAtDistance(follower.PathPos + speed*timeToImpact)
	if predicted.Distance(current) <= s.predictionEpsilon {
		return targetPos
	}
	return predicted
}

func (s *ProjectileSystem) nearestEnemy(from utils.Vec3, live []types.EntityID) types.EntityID {
	var best types.EntityID
	bestDist := math.Inf(1)
	for _, id := range live {
		if !isLiveEnemy(s.ecs, id) {
			continue
		}
		pos, ok := s.ecs.PositionOf(id)
		if !ok {
			continue
		}
		if d := from.Distance(pos); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

func (s *ProjectileSystem) firstWithinRadius(from utils.Vec3, live []types.EntityID) types.EntityID {
	for _, id := range live {
		if !isLiveEnemy(s.ecs, id) {
			continue
		}
		pos, ok := s.ecs.PositionOf(id)
		if ok && from.Distance(pos) < s.hitRadius {
			return id
		}
	}
	return 0
}
