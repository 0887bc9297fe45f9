// internal/component/player.go
package component

// Player holds the defender's wallet and base health.
type Player struct {
	Money      uint64
	BaseHealth int
}
