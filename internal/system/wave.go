// internal/system/wave.go
package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"go-td-core/internal/component"
	"go-td-core/internal/defs"
	"go-td-core/internal/entity"
	"go-td-core/internal/event"
	"go-td-core/internal/metrics"
	"go-td-core/internal/types"
)

// ErrUnknownTrack is returned when a spawn names a track the world does not have.
var ErrUnknownTrack = errors.New("unknown track")

// WaveSystem drives the wave manager state machine and spawns enemies.
type WaveSystem struct {
	ecs             *entity.ECS
	content         *defs.Library
	eventDispatcher *event.Dispatcher
	metrics         *metrics.Recorder
	logger          *log.Logger
}

func NewWaveSystem(ecs *entity.ECS, content *defs.Library, eventDispatcher *event.Dispatcher, m *metrics.Recorder, logger *log.Logger) *WaveSystem {
	return &WaveSystem{
		ecs:             ecs,
		content:         content,
		eventDispatcher: eventDispatcher,
		metrics:         m,
		logger:          logger,
	}
}

// Start latches the start signal. It reports false unless the current wave
// is pending.
func (s *WaveSystem) Start() bool {
	wm := s.ecs.Wave
	if wm == nil || wm.Status != component.WavePending || wm.Index >= len(wm.Waves) {
		return false
	}
	wm.Trigger = true
	return true
}

// Update performs at most one state transition.
func (s *WaveSystem) Update(deltaTime float64) {
	wm := s.ecs.Wave
	if wm == nil || wm.Index >= len(wm.Waves) {
		return
	}
	wave := wm.Waves[wm.Index]

	switch wm.Status {
	case component.WavePending:
		if !wm.Trigger {
			return
		}
		wm.Trigger = false
		wm.Elapsed = 0
		wm.Spawned = 0
		s.transition(component.WaveInProgress)

	case component.WaveInProgress:
		interval := wave.SpawnInterval.Seconds()
		wm.Elapsed += deltaTime
		if wm.Elapsed < interval {
			return
		}
		wm.Elapsed -= interval
		if wm.Spawned < wave.Count {
			s.spawnEnemy(wave)
			wm.Spawned++
		}
		if wm.Spawned >= wave.Count {
			s.transition(component.WaveWaitingForEnemiesClear)
		}

	case component.WaveWaitingForEnemiesClear:
		if len(s.ecs.Enemies) == 0 {
			s.transition(component.WaveFinished)
		}

	case component.WaveFinished:
		wm.Index++
		if wm.Index < len(wm.Waves) {
			wm.Elapsed = 0
			wm.Spawned = 0
			s.transition(component.WavePending)
			return
		}
		s.logger.Info("all waves finished", "waves", len(wm.Waves))
		s.metrics.Wave(wm.Number(), int(wm.Status))
	}
}

func (s *WaveSystem) transition(to component.WaveStatus) {
	wm := s.ecs.Wave
	from := wm.Status
	wm.Status = to
	s.logger.Info("wave status changed", "wave", wm.Number(), "from", from, "to", to)
	s.metrics.Wave(wm.Number(), int(to))
	s.eventDispatcher.Dispatch(event.Event{
		Type: event.WaveStatusChanged,
		Data: event.WaveStatusChangedData{Wave: wm.Number(), From: from.String(), To: to.String()},
	})
}

func (s *WaveSystem) spawnEnemy(wave defs.WaveDefinition) {
	if _, err := s.Spawn(wave.EnemyID, wave.TrackID); err != nil {
		s.logger.Warn("skipping spawn", "wave", s.ecs.Wave.Number(), "err", err)
	}
}

// Spawn places a new enemy at the start of the named track.
func (s *WaveSystem) Spawn(enemyID, trackName string) (types.EntityID, error) {
	def, err := s.content.Enemy(enemyID)
	if err != nil {
		return 0, err
	}
	trackID, ok := s.content.TrackID(trackName)
	tr := s.ecs.Tracks[trackID]
	if !ok || tr == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTrack, trackName)
	}

	start := tr.PointAtDistance(0)
	id := s.ecs.Spawn(types.KindEnemy, start)
	s.ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
	s.ecs.PathFollowers[id] = &component.PathFollower{TrackID: trackID}
	s.ecs.Healths[id] = &component.Health{Value: def.Health, Max: def.Health}
	s.ecs.Enemies[id] = &component.Enemy{
		DefID:  def.ID,
		Bounty: def.Bounty,
		Damage: def.Damage,
	}

	s.metrics.EnemySpawned()
	s.logger.Debug("enemy spawned", "id", id, "def", def.ID, "track", trackName)
	s.eventDispatcher.Dispatch(event.Event{
		Type: event.EnemySpawned,
		Data: event.EnemySpawnedData{Enemy: id, DefID: def.ID, Position: start},
	})
	return id, nil
}
