// internal/app/tower_management.go
package app

import (
	"fmt"

	"go-td-core/internal/component"
	"go-td-core/internal/event"
	"go-td-core/internal/types"
	"go-td-core/pkg/pid"
	"go-td-core/pkg/utils"
)

// BuildTower charges the definition's cost and places the tower.
func (g *Game) BuildTower(defID string, pos utils.Vec3) (types.EntityID, error) {
	def, err := g.Content.Tower(defID)
	if err != nil {
		return 0, err
	}
	if err := g.PlayerSystem.MakePurchase(def.Cost); err != nil {
		return 0, fmt.Errorf("build %s: %w", defID, err)
	}
	return g.AddTower(defID, pos)
}

// AddTower places a tower without charging for it.
func (g *Game) AddTower(defID string, pos utils.Vec3) (types.EntityID, error) {
	def, err := g.Content.Tower(defID)
	if err != nil {
		return 0, err
	}

	id := g.ECS.Spawn(types.KindTower, pos)
	g.ECS.Towers[id] = &component.Tower{DefID: def.ID}
	combat := &component.Combat{
		Attack:          def.Attack,
		Targeting:       def.Targeting,
		Range:           def.Range,
		Damage:          def.Damage,
		BaseRate:        def.BaseFireRate,
		RateBonus:       def.FireRatePerLevel,
		ProjectileSpeed: def.ProjectileSpeed,
		BeamDuration:    def.BeamDuration,
	}
	combat.Rescale(0)
	g.ECS.Combats[id] = combat
	g.ECS.ExpLevels[id] = &component.ExpLevel{}

	// Rest facing +X with the controller already settled there.
	aim := pos.Add(utils.V3(1, 0, 0))
	axis := pid.New[utils.Vec3](def.Turret)
	axis.SetTarget(aim)
	g.ECS.Turrets[id] = &component.Turret{PID: axis, Aim: aim}

	g.Logger.Info("tower placed", "id", id, "def", def.ID, "pos", pos)
	g.EventDispatcher.Dispatch(event.Event{
		Type: event.TowerPlaced,
		Data: event.TowerPlacedData{Tower: id, DefID: def.ID},
	})
	return id, nil
}

// RemoveTower takes a tower off the field. Beams it owns lose their source and
// are destroyed on the next beam update; its projectiles keep flying.
func (g *Game) RemoveTower(id types.EntityID) bool {
	if _, ok := g.ECS.Towers[id]; !ok {
		return false
	}
	g.ECS.Destroy(id)
	g.Logger.Info("tower removed", "id", id)
	return true
}

// PlaceInitialTowers adds every placement from the content free of charge.
func (g *Game) PlaceInitialTowers() error {
	for _, p := range g.Content.Placements {
		if _, err := g.AddTower(p.Tower, p.Position); err != nil {
			return err
		}
	}
	return nil
}
