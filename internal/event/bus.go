// internal/event/bus.go
package event

import "go-td-core/internal/types"

// ExpGain awards experience to an entity.
type ExpGain struct {
	Entity types.EntityID
	Amount uint64
}

// LevelUp announces that an entity's level changed.
type LevelUp struct {
	Entity types.EntityID
	Level  uint32
}

// ExperienceBus carries the experience channels between systems.
type ExperienceBus struct {
	ExperienceGain Queue[ExpGain]
	LevelUp        Queue[LevelUp]
}

func NewExperienceBus() *ExperienceBus {
	return &ExperienceBus{}
}

// Swap ages every channel; call once at the end of a tick.
func (b *ExperienceBus) Swap() {
	b.ExperienceGain.Swap()
	b.LevelUp.Swap()
}
