package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/pkg/utils"
)

func TestLevelFor(t *testing.T) {
	cases := map[uint64]uint32{0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 1024: 10, 1025: 11}
	for exp, want := range cases {
		assert.Equal(t, want, LevelFor(exp), "experience %d", exp)
	}
}

func TestExperienceAccumulatesAndLevels(t *testing.T) {
	w := newTestWorld(t)
	tower := w.addTower(utils.V3(0, 0, 0), defs.AttackBeam, defs.TargetFirst, 10)
	exp := NewExperienceSystem(w.ecs, w.bus, nil, w.logger)
	var ups event.Reader[event.LevelUp]

	w.bus.ExperienceGain.Send(event.ExpGain{Entity: tower, Amount: 1})
	exp.Update(0)
	assert.Equal(t, uint64(1), w.ecs.ExpLevels[tower].Experience)
	assert.Equal(t, uint32(0), w.ecs.ExpLevels[tower].Level)
	assert.Empty(t, ups.Read(&w.bus.LevelUp))
	w.bus.Swap()

	for i := 0; i < 4; i++ {
		w.bus.ExperienceGain.Send(event.ExpGain{Entity: tower, Amount: 1})
	}
	exp.Update(0)
	assert.Equal(t, uint64(5), w.ecs.ExpLevels[tower].Experience)
	assert.Equal(t, uint32(3), w.ecs.ExpLevels[tower].Level)
	assert.Equal(t, []event.LevelUp{{Entity: tower, Level: 3}}, ups.Read(&w.bus.LevelUp))
}

func TestExperienceNotCountedTwiceAcrossSwap(t *testing.T) {
	w := newTestWorld(t)
	tower := w.addTower(utils.V3(0, 0, 0), defs.AttackBeam, defs.TargetFirst, 10)
	exp := NewExperienceSystem(w.ecs, w.bus, nil, w.logger)

	w.bus.ExperienceGain.Send(event.ExpGain{Entity: tower, Amount: 3})
	exp.Update(0)
	w.bus.Swap()
	exp.Update(0)
	w.bus.Swap()
	exp.Update(0)
	assert.Equal(t, uint64(3), w.ecs.ExpLevels[tower].Experience)
}

func TestExperienceForUnknownEntityIgnored(t *testing.T) {
	w := newTestWorld(t)
	exp := NewExperienceSystem(w.ecs, w.bus, nil, w.logger)
	w.bus.ExperienceGain.Send(event.ExpGain{Entity: 999, Amount: 3})
	assert.NotPanics(t, func() { exp.Update(0) })
	assert.Equal(t, 0, w.bus.LevelUp.Len())
}

func TestLevelUpRescalesCooldown(t *testing.T) {
	w := newTestWorld(t)
	tower := w.addTower(utils.V3(0, 0, 0), defs.AttackBeam, defs.TargetFirst, 10)
	levels := NewLevelSystem(w.ecs, w.bus, w.events, nil, w.logger)
	var announced []event.TowerLeveledUpData
	w.events.Subscribe(event.TowerLeveledUp, event.ListenerFunc(func(e event.Event) {
		announced = append(announced, e.Data.(event.TowerLeveledUpData))
	}))
	w.ecs.Combats[tower].Cooldown.Elapsed = 0.3

	w.bus.LevelUp.Send(event.LevelUp{Entity: tower, Level: 3})
	levels.Update(0)
	assert.InDelta(t, 1/1.3, w.ecs.Combats[tower].Cooldown.Duration, 1e-12)
	assert.Equal(t, 0.3, w.ecs.Combats[tower].Cooldown.Elapsed)
	require.Len(t, announced, 1)
	assert.Equal(t, uint32(3), announced[0].Level)

	levels.Update(0)
	assert.Len(t, announced, 1)
}
