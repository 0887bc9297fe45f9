// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Health uint32  `yaml:"health"`
	Speed  float64 `yaml:"speed"`  // track distance per second
	Bounty uint64  `yaml:"bounty"` // money paid on kill
	Damage int     `yaml:"damage"` // base health lost when it leaks
}
