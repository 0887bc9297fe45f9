package component

import (
	"go-td-core/internal/defs"
	"go-td-core/internal/types"
)

// Health holds hit points, never below zero.
type Health struct {
	Value        uint32
	Max          uint32
	LastAttacker types.EntityID // tower that dealt the latest damage
}

// Hurt applies damage, clamping at zero. It returns the damage actually dealt.
func (h *Health) Hurt(amount uint32) uint32 {
	if amount > h.Value {
		amount = h.Value
	}
	h.Value -= amount
	return amount
}

func (h *Health) Alive() bool { return h.Value > 0 }

// Cooldown is a repeating timer.
type Cooldown struct {
	Duration float64
	Elapsed  float64
}

// Tick advances the timer and returns how many full periods completed.
func (c *Cooldown) Tick(dt float64) int {
	if c.Duration <= 0 {
		return 0
	}
	c.Elapsed += dt
	n := int(c.Elapsed / c.Duration)
	c.Elapsed -= float64(n) * c.Duration
	return n
}

// Combat is the attack state of a tower.
type Combat struct {
	Attack    defs.AttackKind
	Targeting defs.TargetingPolicy
	Range     float64
	Damage    uint32
	// Fire rate is BaseRate + level*RateBonus attacks per second.
	BaseRate  float64
	RateBonus float64
	Cooldown  Cooldown
	TargetID  types.EntityID // zero when nothing is in range

	ProjectileSpeed float64
	BeamDuration    float64
}

// Rescale recomputes the cooldown period for a level. Progress already
// accumulated is kept.
func (c *Combat) Rescale(level uint32) {
	rate := c.BaseRate + float64(level)*c.RateBonus
	if rate <= 0 {
		c.Cooldown.Duration = 0
		return
	}
	c.Cooldown.Duration = 1 / rate
}
