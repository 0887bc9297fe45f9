// internal/state/game_state.go
package state

import (
	"time"

	"github.com/charmbracelet/log"

	"go-td-core/internal/component"
	"go-td-core/internal/interfaces"
)

// Outcome is how a run ended.
type Outcome string

const (
	Victory  Outcome = "victory"
	Defeat   Outcome = "defeat"
	TimedOut Outcome = "timed_out"
)

// PlayingState drives the simulation until every wave is cleared, the base
// falls or the time limit runs out.
type PlayingState struct {
	sm        *StateMachine
	sim       interfaces.Simulation
	logger    *log.Logger
	autoStart bool
	limit     time.Duration
	elapsed   float64
}

func NewPlayingState(sm *StateMachine, sim interfaces.Simulation, logger *log.Logger, autoStart bool, limit time.Duration) *PlayingState {
	return &PlayingState{sm: sm, sim: sim, logger: logger, autoStart: autoStart, limit: limit}
}

func (s *PlayingState) Enter() {
	s.logger.Info("simulation started", "auto_start", s.autoStart, "limit", s.limit)
}

func (s *PlayingState) Update(deltaTime float64) {
	if s.autoStart && s.sim.WaveStatus() == component.WavePending {
		s.sim.StartActiveWave()
	}
	s.sim.AdvanceTick(deltaTime)
	s.elapsed += deltaTime

	switch {
	case s.sim.Defeated():
		s.sm.SetState(NewOverState(Defeat, s.elapsed, s.logger))
	case s.sim.Finished():
		s.sm.SetState(NewOverState(Victory, s.elapsed, s.logger))
	case s.limit > 0 && s.elapsed >= s.limit.Seconds():
		s.sm.SetState(NewOverState(TimedOut, s.elapsed, s.logger))
	}
}

func (s *PlayingState) Exit() {}

// OverState is terminal; updates are ignored.
type OverState struct {
	Outcome Outcome
	Elapsed float64
	logger  *log.Logger
}

func NewOverState(outcome Outcome, elapsed float64, logger *log.Logger) *OverState {
	return &OverState{Outcome: outcome, Elapsed: elapsed, logger: logger}
}

func (s *OverState) Enter() {
	s.logger.Info("simulation over", "outcome", s.Outcome, "elapsed", s.Elapsed)
}

func (s *OverState) Update(float64) {}

func (s *OverState) Exit() {}

// Over reports whether the machine reached a terminal state.
func Over(sm *StateMachine) (*OverState, bool) {
	over, ok := sm.Current().(*OverState)
	return over, ok
}
