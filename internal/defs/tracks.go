// internal/defs/tracks.go
package defs

import (
	"fmt"

	"go-td-core/pkg/hexmap"
	"go-td-core/pkg/track"
	"go-td-core/pkg/utils"
)

// TrackDefinition is either an explicit polyline or a route over a hex map.
type TrackDefinition struct {
	ID       string      `yaml:"id"`
	Points   [][]float64 `yaml:"points,omitempty"`
	HexRoute *HexRoute   `yaml:"hex_route,omitempty"`
}

// HexRoute describes a track as the shortest passable walk over a hexagon
// map from Entry through every checkpoint to Exit.
type HexRoute struct {
	Radius      int          `yaml:"radius"`
	HexSize     float64      `yaml:"hex_size"`
	Height      float64      `yaml:"height"`
	Origin      []float64    `yaml:"origin,omitempty"`
	Entry       hexmap.Hex   `yaml:"entry"`
	Exit        hexmap.Hex   `yaml:"exit"`
	Checkpoints []hexmap.Hex `yaml:"checkpoints"`
	Blocked     []hexmap.Hex `yaml:"blocked"`
}

// Waypoints resolves the definition into 3-D points.
func (d TrackDefinition) Waypoints() ([]utils.Vec3, error) {
	if d.HexRoute != nil {
		return d.HexRoute.Waypoints()
	}
	points := make([]utils.Vec3, 0, len(d.Points))
	for i, p := range d.Points {
		if len(p) != 3 {
			return nil, fmt.Errorf("%w: track %q point %d has %d coordinates", ErrInvalidDefinition, d.ID, i, len(p))
		}
		points = append(points, utils.V3(p[0], p[1], p[2]))
	}
	return points, nil
}

// Build creates the immutable track.
func (d TrackDefinition) Build(id track.ID) (*track.Track, error) {
	points, err := d.Waypoints()
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: track %q has no points", ErrInvalidDefinition, d.ID)
	}
	return track.New(id, points), nil
}

func (r *HexRoute) Waypoints() ([]utils.Vec3, error) {
	hm := hexmap.NewHexMap(r.Radius)
	hm.Entry = r.Entry
	hm.Exit = r.Exit
	hm.Checkpoints = r.Checkpoints
	for _, h := range r.Blocked {
		hm.SetPassable(h, false)
	}
	var ox, oy float64
	switch len(r.Origin) {
	case 0:
	case 2:
		ox, oy = r.Origin[0], r.Origin[1]
	default:
		return nil, fmt.Errorf("%w: hex route origin has %d coordinates", ErrInvalidDefinition, len(r.Origin))
	}
	route, err := hm.Route()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	layout := hexmap.Layout(r.HexSize, ox, oy)
	points := make([]utils.Vec3, len(route))
	for i, h := range route {
		x, y := h.Apply(layout)
		points[i] = utils.V3(x, y, r.Height)
	}
	return points, nil
}
