// internal/app/game.go
package app

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"go-td-core/internal/component"
	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/interfaces"
	"go-td-core/internal/logging"
	"go-td-core/internal/metrics"
	"go-td-core/internal/system"
	"go-td-core/internal/types"
	"go-td-core/pkg/utils"
)

var (
	ErrInsufficientFunds = system.ErrInsufficientFunds
	ErrUnknownTrack      = system.ErrUnknownTrack
)

var _ interfaces.Simulation = (*Game)(nil)

// Options configures a new Game. Zero fields fall back to defaults.
type Options struct {
	Config   *config.Config
	Content  *defs.Library
	Logger   *log.Logger
	Metrics  *metrics.Recorder
	Observer entity.Observer
}

// Game holds the simulation state and runs the per-tick schedule.
type Game struct {
	RunID           uuid.UUID
	Config          config.Config
	Content         *defs.Library
	ECS             *entity.ECS
	EventDispatcher *event.Dispatcher
	Bus             *event.ExperienceBus
	Metrics         *metrics.Recorder
	Logger          *log.Logger
	SpeedMultiplier float64

	WaveSystem       *system.WaveSystem
	MovementSystem   *system.MovementSystem
	CombatSystem     *system.CombatSystem
	TurretSystem     *system.TurretSystem
	ProjectileSystem *system.ProjectileSystem
	BeamSystem       *system.BeamSystem
	DeathSystem      *system.DeathSystem
	ExperienceSystem *system.ExperienceSystem
	LevelSystem      *system.LevelSystem
	CleanupSystem    *system.CleanupSystem
	PlayerSystem     *system.PlayerSystem

	ticks uint64
}

// NewGame initializes a new simulation.
func NewGame(opts Options) (*Game, error) {
	cfg := *config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	content := opts.Content
	if content == nil {
		lib, err := defs.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("default content: %w", err)
		}
		content = lib
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	runID := uuid.New()
	logger = logger.With("run", runID.String())

	ecs := entity.NewECS()
	ecs.Tracks = content.Tracks()
	ecs.Wave = component.NewWaveManager(content.Waves)
	ecs.Player = &component.Player{
		Money:      cfg.Player.StartingMoney,
		BaseHealth: cfg.Player.BaseHealth,
	}

	eventDispatcher := event.NewDispatcher()
	ecs.Observer = &despawnNotifier{dispatcher: eventDispatcher, next: opts.Observer}
	bus := event.NewExperienceBus()
	m := opts.Metrics

	g := &Game{
		RunID:           runID,
		Config:          cfg,
		Content:         content,
		ECS:             ecs,
		EventDispatcher: eventDispatcher,
		Bus:             bus,
		Metrics:         m,
		Logger:          logger,
		SpeedMultiplier: cfg.Simulation.SpeedMultiplier,
	}
	g.WaveSystem = system.NewWaveSystem(ecs, content, eventDispatcher, m, logger)
	g.MovementSystem = system.NewMovementSystem(ecs, logger)
	g.CombatSystem = system.NewCombatSystem(ecs, bus, eventDispatcher, m, logger, cfg.Combat.ExperiencePerAttack)
	g.TurretSystem = system.NewTurretSystem(ecs)
	g.ProjectileSystem = system.NewProjectileSystem(ecs, m, logger, cfg.Combat.HitRadius, cfg.Combat.PredictionEpsilon)
	g.BeamSystem = system.NewBeamSystem(ecs, logger)
	g.DeathSystem = system.NewDeathSystem(ecs, bus, eventDispatcher, m, logger, cfg.Combat.KillExperience)
	g.ExperienceSystem = system.NewExperienceSystem(ecs, bus, m, logger)
	g.LevelSystem = system.NewLevelSystem(ecs, bus, eventDispatcher, m, logger)
	g.CleanupSystem = system.NewCleanupSystem(ecs, eventDispatcher, m, logger)
	g.PlayerSystem = system.NewPlayerSystem(ecs, eventDispatcher, logger)

	m.Wave(ecs.Wave.Number(), int(ecs.Wave.Status))
	logger.Info("simulation created",
		"waves", len(content.Waves), "towers", len(content.Towers), "tracks", len(ecs.Tracks))
	return g, nil
}

// AdvanceTick runs one simulation step. Non-positive deltas are skipped and
// long ones are clamped before the speed multiplier applies.
func (g *Game) AdvanceTick(deltaTime float64) {
	if deltaTime <= 0 || math.IsNaN(deltaTime) {
		return
	}
	if deltaTime > g.Config.Simulation.MaxDeltaTime {
		deltaTime = g.Config.Simulation.MaxDeltaTime
	}
	deltaTime *= g.SpeedMultiplier
	if deltaTime <= 0 {
		return
	}

	g.ticks++
	g.ECS.GameTime += deltaTime

	g.WaveSystem.Update(deltaTime)
	g.MovementSystem.Update(deltaTime)
	g.CombatSystem.Update(deltaTime)
	g.TurretSystem.Update(deltaTime)
	g.ProjectileSystem.Update(deltaTime)
	g.BeamSystem.Update(deltaTime)
	g.DeathSystem.Update(deltaTime)
	g.ExperienceSystem.Update(deltaTime)
	g.LevelSystem.Update(deltaTime)
	g.CleanupSystem.Update(deltaTime)

	g.Bus.Swap()
}

// StartActiveWave signals the pending wave to start on the next tick.
func (g *Game) StartActiveWave() bool {
	return g.WaveSystem.Start()
}

// SpawnEnemy places an enemy of the given definition at the start of a track
// outside of any wave.
func (g *Game) SpawnEnemy(enemyID, trackName string) (types.EntityID, error) {
	return g.WaveSystem.Spawn(enemyID, trackName)
}

func (g *Game) Ticks() uint64 { return g.ticks }

func (g *Game) GameTime() float64 { return g.ECS.GameTime }

// CurrentWaveNumber is 1-based; 0 when there are no waves.
func (g *Game) CurrentWaveNumber() int { return g.ECS.Wave.Number() }

func (g *Game) WaveCount() int { return len(g.ECS.Wave.Waves) }

func (g *Game) WaveStatus() component.WaveStatus { return g.ECS.Wave.Status }

// Finished reports whether every wave is done.
func (g *Game) Finished() bool {
	wm := g.ECS.Wave
	return wm.Status == component.WaveFinished && wm.Index >= len(wm.Waves)-1
}

func (g *Game) Defeated() bool { return g.PlayerSystem.Defeated() }

func (g *Game) Player() component.Player { return *g.ECS.Player }

func (g *Game) LiveEnemyCount() int { return len(g.ECS.LiveEnemyIDs()) }

func (g *Game) EnemyHealth(id types.EntityID) (current, max uint32, ok bool) {
	if _, isEnemy := g.ECS.Enemies[id]; !isEnemy {
		return 0, 0, false
	}
	h, ok := g.ECS.Healths[id]
	if !ok {
		return 0, 0, false
	}
	return h.Value, h.Max, true
}

func (g *Game) EnemyPosition(id types.EntityID) (utils.Vec3, bool) {
	if _, isEnemy := g.ECS.Enemies[id]; !isEnemy {
		return utils.Vec3{}, false
	}
	return g.ECS.PositionOf(id)
}

func (g *Game) TowerLevel(id types.EntityID) (uint32, bool) {
	exp, ok := g.ECS.ExpLevels[id]
	if !ok {
		return 0, false
	}
	return exp.Level, true
}

func (g *Game) TowerExperience(id types.EntityID) (uint64, bool) {
	exp, ok := g.ECS.ExpLevels[id]
	if !ok {
		return 0, false
	}
	return exp.Experience, true
}

// TowerAim returns the point the turret looks at and its yaw.
func (g *Game) TowerAim(id types.EntityID) (aim utils.Vec3, yaw float64, ok bool) {
	t, ok := g.ECS.Turrets[id]
	if !ok {
		return utils.Vec3{}, 0, false
	}
	return t.Aim, t.Yaw, true
}

func (g *Game) BeamEndpoints(id types.EntityID) (start, end utils.Vec3, ok bool) {
	b, ok := g.ECS.Beams[id]
	if !ok {
		return utils.Vec3{}, utils.Vec3{}, false
	}
	return b.Start, b.End, true
}

func (g *Game) ProjectilePosition(id types.EntityID) (utils.Vec3, bool) {
	if _, ok := g.ECS.Projectiles[id]; !ok {
		return utils.Vec3{}, false
	}
	return g.ECS.PositionOf(id)
}

// despawnNotifier turns registry removals into EntityDespawned events and
// forwards spawn/despawn to an outside observer.
type despawnNotifier struct {
	dispatcher *event.Dispatcher
	next       entity.Observer
}

func (n *despawnNotifier) OnSpawn(id types.EntityID, kind types.Kind, pos utils.Vec3) {
	if n.next != nil {
		n.next.OnSpawn(id, kind, pos)
	}
}

func (n *despawnNotifier) OnDespawn(id types.EntityID, kind types.Kind) {
	n.dispatcher.Dispatch(event.Event{
		Type: event.EntityDespawned,
		Data: event.EntityDespawnedData{Entity: id, Kind: kind},
	})
	if n.next != nil {
		n.next.OnDespawn(id, kind)
	}
}
