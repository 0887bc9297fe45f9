// pkg/hexmap/map.go
package hexmap

import (
	"errors"
	"fmt"
)

// ErrNoRoute is returned when the entry cannot reach the exit.
var ErrNoRoute = errors.New("no route")

// HexMap is a hexagon-shaped grid of cells with an entry, an exit and
// optional checkpoints that a route has to visit in order.
type HexMap struct {
	Radius      int
	Tiles       map[Hex]bool // value is passability
	Entry       Hex
	Exit        Hex
	Checkpoints []Hex
}

// NewHexMap creates a map of all hexes within radius of the origin, all passable.
func NewHexMap(radius int) *HexMap {
	hm := &HexMap{
		Radius: radius,
		Tiles:  make(map[Hex]bool),
	}
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			h := Hex{Q: q, R: r}
			if h.Distance(Hex{}) <= radius {
				hm.Tiles[h] = true
			}
		}
	}
	return hm
}

func (hm *HexMap) Contains(hex Hex) bool {
	_, ok := hm.Tiles[hex]
	return ok
}

func (hm *HexMap) IsPassable(hex Hex) bool {
	return hm.Tiles[hex]
}

func (hm *HexMap) SetPassable(hex Hex, passable bool) {
	if hm.Contains(hex) {
		hm.Tiles[hex] = passable
	}
}

// Route stitches the shortest paths entry -> checkpoints... -> exit.
func (hm *HexMap) Route() ([]Hex, error) {
	stops := append([]Hex{hm.Entry}, hm.Checkpoints...)
	stops = append(stops, hm.Exit)

	var full []Hex
	for i := 0; i < len(stops)-1; i++ {
		segment := AStar(stops[i], stops[i+1], hm)
		if segment == nil {
			return nil, fmt.Errorf("%w from %v to %v", ErrNoRoute, stops[i], stops[i+1])
		}
		if len(full) == 0 {
			full = segment
		} else {
			full = append(full, segment[1:]...)
		}
	}
	return full, nil
}
