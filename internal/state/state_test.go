package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-td-core/internal/component"
	"go-td-core/internal/logging"
)

type fakeSim struct {
	status   component.WaveStatus
	starts   int
	ticks    int
	finished bool
	defeated bool
}

func (f *fakeSim) AdvanceTick(float64) { f.ticks++ }
func (f *fakeSim) StartActiveWave() bool {
	f.starts++
	f.status = component.WaveInProgress
	return true
}
func (f *fakeSim) WaveStatus() component.WaveStatus { return f.status }
func (f *fakeSim) Finished() bool                  { return f.finished }
func (f *fakeSim) Defeated() bool                  { return f.defeated }

func TestPlayingAutoStartsAndFinishes(t *testing.T) {
	sim := &fakeSim{}
	sm := NewStateMachine()
	sm.SetState(NewPlayingState(sm, sim, logging.Discard(), true, 0))

	sm.Update(0.1)
	assert.Equal(t, 1, sim.starts)
	_, over := Over(sm)
	assert.False(t, over)

	sim.finished = true
	sm.Update(0.1)
	result, over := Over(sm)
	require.True(t, over)
	assert.Equal(t, Victory, result.Outcome)

	sm.Update(0.1)
	assert.Equal(t, 2, sim.ticks, "terminal state does not tick")
}

func TestDefeatWinsOverFinish(t *testing.T) {
	sim := &fakeSim{finished: true, defeated: true}
	sm := NewStateMachine()
	sm.SetState(NewPlayingState(sm, sim, logging.Discard(), false, 0))
	sm.Update(0.1)
	result, _ := Over(sm)
	assert.Equal(t, Defeat, result.Outcome)
	assert.Equal(t, 0, sim.starts)
}

func TestTimeLimit(t *testing.T) {
	sim := &fakeSim{status: component.WaveInProgress}
	sm := NewStateMachine()
	sm.SetState(NewPlayingState(sm, sim, logging.Discard(), true, time.Second))
	for i := 0; i < 4; i++ {
		sm.Update(0.25)
	}
	result, over := Over(sm)
	require.True(t, over)
	assert.Equal(t, TimedOut, result.Outcome)
	assert.Equal(t, 0, sim.starts)
}
