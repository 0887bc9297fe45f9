package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-td-core/internal/component"
	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/internal/logging"
	"go-td-core/internal/metrics"
	"go-td-core/internal/types"
	"go-td-core/pkg/utils"
)

func testContent(t *testing.T, waves ...defs.WaveDefinition) *defs.Library {
	t.Helper()
	lib, err := defs.NewLibrary(defs.Content{
		Towers: []defs.TowerDefinition{
			{ID: "LASER", Cost: 40, Range: 10, Attack: defs.AttackBeam, Damage: 15, BaseFireRate: 1},
			{ID: "CANNON", Cost: 50, Range: 10, Attack: defs.AttackProjectile, Damage: 15, BaseFireRate: 1},
		},
		Enemies: []defs.EnemyDefinition{
			{ID: "DUMMY", Health: 10, Speed: 0, Bounty: 7, Damage: 3},
			{ID: "WALL", Health: 100000, Speed: 0},
			{ID: "RUNNER", Health: 10, Speed: 50, Bounty: 1, Damage: 4},
		},
		Tracks: []defs.TrackDefinition{
			{ID: "line", Points: [][]float64{{0, 0, 0}, {10, 0, 0}, {30, 0, 0}}},
		},
		Waves: waves,
	})
	require.NoError(t, err)
	return lib
}

// slowConfig lets a test advance whole seconds per tick.
func slowConfig() *config.Config {
	cfg := config.Default()
	cfg.Simulation.MaxDeltaTime = 1
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, waves ...defs.WaveDefinition) *Game {
	t.Helper()
	g, err := NewGame(Options{Config: cfg, Content: testContent(t, waves...), Logger: logging.Discard()})
	require.NoError(t, err)
	return g
}

func TestWaveLifecycle(t *testing.T) {
	g := newTestGame(t, slowConfig(),
		defs.WaveDefinition{EnemyID: "DUMMY", TrackID: "line", Count: 2, SpawnInterval: time.Second})

	assert.Equal(t, 1, g.CurrentWaveNumber())
	assert.Equal(t, component.WavePending, g.WaveStatus())

	require.True(t, g.StartActiveWave())
	g.AdvanceTick(1)
	assert.Equal(t, component.WaveInProgress, g.WaveStatus())

	g.AdvanceTick(1)
	assert.Equal(t, 1, g.LiveEnemyCount())
	g.AdvanceTick(1)
	assert.Equal(t, 2, g.LiveEnemyCount())
	assert.Equal(t, component.WaveWaitingForEnemiesClear, g.WaveStatus())

	for _, id := range g.ECS.LiveEnemyIDs() {
		g.ECS.Healths[id].Value = 0
	}
	g.AdvanceTick(1)
	assert.Equal(t, 0, len(g.ECS.Enemies))
	assert.Equal(t, uint64(config.StartingMoney+14), g.Player().Money)

	g.AdvanceTick(1)
	assert.Equal(t, component.WaveFinished, g.WaveStatus())
	assert.True(t, g.Finished())

	for i := 0; i < 5; i++ {
		g.AdvanceTick(1)
	}
	assert.Equal(t, component.WaveFinished, g.WaveStatus())
	assert.Equal(t, 1, g.CurrentWaveNumber())
	assert.Equal(t, 0, g.LiveEnemyCount())
}

func TestLevelingFromAttacks(t *testing.T) {
	cfg := slowConfig()
	cfg.Combat.KillExperience = 0
	g := newTestGame(t, cfg)

	tower, err := g.AddTower("LASER", utils.V3(5, 2, 0))
	require.NoError(t, err)
	_, err = g.SpawnEnemy("WALL", "line")
	require.NoError(t, err)
	g.ECS.PathFollowers[g.ECS.LiveEnemyIDs()[0]].PathPos = 5

	var levels []uint32
	g.EventDispatcher.Subscribe(event.TowerLeveledUp, event.ListenerFunc(func(e event.Event) {
		levels = append(levels, e.Data.(event.TowerLeveledUpData).Level)
	}))

	for i := 0; i < 1000; i++ {
		g.AdvanceTick(0.05)
		exp, _ := g.TowerExperience(tower)
		if exp == 1 {
			level, _ := g.TowerLevel(tower)
			assert.Equal(t, uint32(0), level)
		}
		if exp >= 5 {
			break
		}
	}

	exp, ok := g.TowerExperience(tower)
	require.True(t, ok)
	assert.Equal(t, uint64(5), exp)
	level, _ := g.TowerLevel(tower)
	assert.Equal(t, uint32(3), level)
	assert.Equal(t, []uint32{1, 2, 3}, levels)
	assert.InDelta(t, 1/1.3, g.ECS.Combats[tower].Cooldown.Duration, 1e-12)
}

func TestProjectileKillPaysBountyAndExperience(t *testing.T) {
	g := newTestGame(t, nil)
	tower, err := g.AddTower("CANNON", utils.V3(5, 3, 0))
	require.NoError(t, err)
	enemy, err := g.SpawnEnemy("DUMMY", "line")
	require.NoError(t, err)
	g.ECS.PathFollowers[enemy].PathPos = 5
	g.ECS.Positions[enemy].Set(utils.V3(5, 0, 0))

	var despawned []types.Kind
	g.EventDispatcher.Subscribe(event.EntityDespawned, event.ListenerFunc(func(e event.Event) {
		despawned = append(despawned, e.Data.(event.EntityDespawnedData).Kind)
	}))

	for i := 0; i < 300 && g.ECS.Exists(enemy); i++ {
		g.AdvanceTick(1.0 / 60)
	}
	require.False(t, g.ECS.Exists(enemy))
	_, _, ok := g.EnemyHealth(enemy)
	assert.False(t, ok)

	assert.Equal(t, uint64(config.StartingMoney+7), g.Player().Money)
	exp, _ := g.TowerExperience(tower)
	assert.Equal(t, uint64(config.ExperiencePerAttack+config.KillExperience), exp)
	assert.Contains(t, despawned, types.KindProjectile)
	assert.Contains(t, despawned, types.KindEnemy)
}

func TestLeakDamagesBase(t *testing.T) {
	g := newTestGame(t, nil)
	_, err := g.SpawnEnemy("RUNNER", "line")
	require.NoError(t, err)

	var leaked int
	g.EventDispatcher.Subscribe(event.EnemyLeaked, event.ListenerFunc(func(event.Event) { leaked++ }))
	for i := 0; i < 120; i++ {
		g.AdvanceTick(1.0 / 60)
	}
	assert.Equal(t, 1, leaked)
	assert.Equal(t, config.BaseHealth-4, g.Player().BaseHealth)
	assert.Equal(t, 0, g.LiveEnemyCount())
}

func TestAdvanceTickGuards(t *testing.T) {
	g := newTestGame(t, nil)
	g.AdvanceTick(0)
	g.AdvanceTick(-1)
	assert.Equal(t, uint64(0), g.Ticks())

	g.AdvanceTick(10)
	assert.InDelta(t, config.MaxDeltaTime, g.GameTime(), 1e-12)

	g.SpeedMultiplier = 2
	g.AdvanceTick(0.01)
	assert.InDelta(t, config.MaxDeltaTime+0.02, g.GameTime(), 1e-12)
}

func TestBuildTowerCharges(t *testing.T) {
	g := newTestGame(t, nil)
	for i := 0; i < 2; i++ {
		_, err := g.BuildTower("LASER", utils.V3(float64(i), 0, 0))
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(config.StartingMoney-80), g.Player().Money)

	_, err := g.BuildTower("CANNON", utils.V3(3, 0, 0))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, uint64(config.StartingMoney-80), g.Player().Money)
	assert.Len(t, g.ECS.Towers, 2)

	_, err = g.BuildTower("NOPE", utils.V3(1, 0, 0))
	assert.ErrorIs(t, err, defs.ErrUnknownDefinition)
}

func TestRemoveTowerExpiresItsBeams(t *testing.T) {
	g := newTestGame(t, nil)
	tower, _ := g.AddTower("LASER", utils.V3(5, 2, 0))
	_, err := g.SpawnEnemy("WALL", "line")
	require.NoError(t, err)
	for i := 0; i < 70 && len(g.ECS.Beams) == 0; i++ {
		g.AdvanceTick(1.0 / 60)
	}
	require.Len(t, g.ECS.Beams, 1)

	assert.True(t, g.RemoveTower(tower))
	assert.False(t, g.RemoveTower(tower))
	g.AdvanceTick(1.0 / 60)
	assert.Empty(t, g.ECS.Beams)
}

func TestQueriesOnMissingIDs(t *testing.T) {
	g := newTestGame(t, nil)
	_, _, ok := g.EnemyHealth(99)
	assert.False(t, ok)
	_, ok = g.EnemyPosition(99)
	assert.False(t, ok)
	_, ok = g.TowerLevel(99)
	assert.False(t, ok)
	_, ok = g.TowerExperience(99)
	assert.False(t, ok)
	_, _, ok = g.TowerAim(99)
	assert.False(t, ok)
	_, _, ok = g.BeamEndpoints(99)
	assert.False(t, ok)
	_, ok = g.ProjectilePosition(99)
	assert.False(t, ok)
	assert.Equal(t, 0, g.CurrentWaveNumber())
	assert.True(t, g.Finished())
	assert.False(t, g.StartActiveWave())
}

func TestSpawnEnemyUnknownTrack(t *testing.T) {
	g := newTestGame(t, nil)
	_, err := g.SpawnEnemy("DUMMY", "nowhere")
	assert.ErrorIs(t, err, ErrUnknownTrack)
}

type countingObserver struct {
	spawns, despawns map[types.Kind]int
}

func (c *countingObserver) OnSpawn(_ types.EntityID, kind types.Kind, _ utils.Vec3) { c.spawns[kind]++ }
func (c *countingObserver) OnDespawn(_ types.EntityID, kind types.Kind)           { c.despawns[kind]++ }

func TestObserverAndMetrics(t *testing.T) {
	obs := &countingObserver{spawns: map[types.Kind]int{}, despawns: map[types.Kind]int{}}
	rec, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Writer: &logs})
	require.NoError(t, err)

	g, err := NewGame(Options{
		Config:   slowConfig(),
		Content:  testContent(t, defs.WaveDefinition{EnemyID: "DUMMY", TrackID: "line", Count: 1, SpawnInterval: time.Second}),
		Logger:   logger,
		Metrics:  rec,
		Observer: obs,
	})
	require.NoError(t, err)

	g.StartActiveWave()
	g.AdvanceTick(1)
	g.AdvanceTick(1)
	assert.Equal(t, 1, obs.spawns[types.KindEnemy])
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.EnemiesSpawned))
	assert.Equal(t, float64(component.WaveWaitingForEnemiesClear), testutil.ToFloat64(rec.WaveStatus))

	for _, id := range g.ECS.LiveEnemyIDs() {
		g.ECS.Healths[id].Value = 0
	}
	g.AdvanceTick(1)
	assert.Equal(t, 1, obs.despawns[types.KindEnemy])
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.EnemiesKilled))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.LiveEnemies))

	assert.Contains(t, logs.String(), "wave status changed")
	assert.Contains(t, logs.String(), "run="+g.RunID.String())
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.TickRate = 0
	_, err := NewGame(Options{Config: cfg})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewGameDefaultContent(t *testing.T) {
	g, err := NewGame(Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, g.WaveCount())
	assert.NotEqual(t, "", g.RunID.String())

	require.NoError(t, g.PlaceInitialTowers())
	assert.Len(t, g.ECS.Towers, 2)
	assert.Equal(t, uint64(config.StartingMoney), g.Player().Money, "placements are free")
}

func TestDefaultScenarioRuns(t *testing.T) {
	g, err := NewGame(Options{})
	require.NoError(t, err)
	require.NoError(t, g.PlaceInitialTowers())

	step := g.Config.FixedStep()
	for i := 0; i < 60*60*5 && !g.Finished() && !g.Defeated(); i++ {
		if g.WaveStatus() == component.WavePending {
			g.StartActiveWave()
		}
		g.AdvanceTick(step)
	}
	assert.True(t, g.Finished(), "all waves should be cleared")
	assert.False(t, g.Defeated())
	assert.Equal(t, 0, g.LiveEnemyCount())
	assert.Greater(t, g.Player().BaseHealth, 0)
	for _, h := range g.ECS.Healths {
		assert.LessOrEqual(t, h.Value, h.Max)
	}
	for id := range g.ECS.Beams {
		assert.True(t, g.ECS.Exists(g.ECS.Beams[id].Source))
	}
}
