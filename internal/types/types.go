// internal/types/types.go
package types

// EntityID identifies an entity in the world. Zero is never allocated.
type EntityID uint64

// Kind tells collaborators what an entity represents.
type Kind string

const (
	KindEnemy      Kind = "enemy"
	KindTower      Kind = "tower"
	KindProjectile Kind = "projectile"
	KindBeam       Kind = "beam"
)
