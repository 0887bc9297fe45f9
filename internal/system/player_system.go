// internal/system/player_system.go
package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"go-td-core/internal/entity"
	"go-td-core/internal/event"
)

// ErrInsufficientFunds is returned when a purchase costs more than the player has.
var ErrInsufficientFunds = errors.New("insufficient funds")

// PlayerSystem owns the player wallet and base health.
type PlayerSystem struct {
	ecs    *entity.ECS
	logger *log.Logger
}

func NewPlayerSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, logger *log.Logger) *PlayerSystem {
	s := &PlayerSystem{ecs: ecs, logger: logger}
	eventDispatcher.Subscribe(event.EnemyKilled, s)
	eventDispatcher.Subscribe(event.EnemyLeaked, s)
	return s
}

// OnEvent handles the events the system subscribes to.
func (s *PlayerSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyKilled:
		if data, ok := e.Data.(event.EnemyKilledData); ok {
			s.AddMoney(data.Bounty)
		}
	case event.EnemyLeaked:
		if data, ok := e.Data.(event.EnemyLeakedData); ok {
			s.damageBase(data.Damage)
		}
	}
}

func (s *PlayerSystem) AddMoney(amount uint64) {
	s.ecs.Player.Money += amount
}

// MakePurchase charges amount, or charges nothing and fails when the player
// cannot afford it.
func (s *PlayerSystem) MakePurchase(amount uint64) error {
	if amount > s.ecs.Player.Money {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, amount, s.ecs.Player.Money)
	}
	s.ecs.Player.Money -= amount
	return nil
}

func (s *PlayerSystem) damageBase(amount int) {
	p := s.ecs.Player
	p.BaseHealth -= amount
	if p.BaseHealth < 0 {
		p.BaseHealth = 0
	}
	s.logger.Info("base damaged", "damage", amount, "health", p.BaseHealth)
}

// Defeated reports whether the base has fallen.
func (s *PlayerSystem) Defeated() bool {
	return s.ecs.Player.BaseHealth <= 0
}
