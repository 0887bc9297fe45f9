// component/tower.go
package component

type Tower struct {
	DefID string
}

// ExpLevel holds accumulated experience and the level derived from it.
type ExpLevel struct {
	Experience uint64
	Level      uint32
}
