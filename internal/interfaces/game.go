package interfaces

import "go-td-core/internal/component"

// Simulation is what a driver loop needs from a running game.
type Simulation interface {
	AdvanceTick(deltaTime float64)
	StartActiveWave() bool
	WaveStatus() component.WaveStatus
	Finished() bool
	Defeated() bool
}
