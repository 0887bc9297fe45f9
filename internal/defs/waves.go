// internal/defs/waves.go
package defs

import "time"

// WaveDefinition describes one batch of enemies.
type WaveDefinition struct {
	EnemyID       string        `yaml:"enemy"`
	TrackID       string        `yaml:"track"`
	Count         int           `yaml:"count"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
}
