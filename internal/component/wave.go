// internal/component/wave.go
package component

import (
	"go-td-core/internal/defs"
)

// WaveStatus is the state of the spawn scheduler.
type WaveStatus int

const (
	WavePending WaveStatus = iota
	WaveInProgress
	WaveWaitingForEnemiesClear
	WaveFinished
)

func (s WaveStatus) String() string {
	switch s {
	case WavePending:
		return "pending"
	case WaveInProgress:
		return "in_progress"
	case WaveWaitingForEnemiesClear:
		return "waiting_for_enemies_clear"
	case WaveFinished:
		return "finished"
	}
	return "unknown"
}

// WaveManager paces enemy spawning across the configured waves.
type WaveManager struct {
	Waves   []defs.WaveDefinition
	Index   int
	Status  WaveStatus
	Elapsed float64 // seconds since the last spawn interval fired
	Spawned int
	// Trigger is latched by the start signal and consumed by the next update.
	Trigger bool
}

func NewWaveManager(waves []defs.WaveDefinition) *WaveManager {
	wm := &WaveManager{Waves: waves}
	if len(waves) == 0 {
		wm.Status = WaveFinished
	}
	return wm
}

// Active returns the current wave definition.
func (w *WaveManager) Active() (defs.WaveDefinition, bool) {
	if w.Index < 0 || w.Index >= len(w.Waves) {
		return defs.WaveDefinition{}, false
	}
	return w.Waves[w.Index], true
}

// Number is the 1-based number of the current wave, capped at the wave count.
func (w *WaveManager) Number() int {
	n := w.Index + 1
	if n > len(w.Waves) {
		n = len(w.Waves)
	}
	return n
}
