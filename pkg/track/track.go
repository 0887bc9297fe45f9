// pkg/track/track.go
package track

import (
	"sort"

	"go-td-core/pkg/utils"
)

// ID identifies a track inside a world.
type ID uint64

// Node is one vertex of a track together with its arc-length data.
type Node struct {
	Point utils.Vec3
	// Distance travelled from the start of the track to this node.
	Distance float64
	// Percent of the total length at which this node lies, in [0, 1].
	Percent float64
}

// Track is an immutable polyline parameterized by arc length.
type Track struct {
	id    ID
	nodes []Node
}

// New builds a track from an ordered list of points.
func New(id ID, points []utils.Vec3) *Track {
	t := &Track{
		id:    id,
		nodes: make([]Node, len(points)),
	}
	for i, p := range points {
		t.nodes[i].Point = p
	}
	t.updateDistances()
	t.updatePercents()
	return t
}

func (t *Track) updateDistances() {
	for i := 1; i < len(t.nodes); i++ {
		prev := t.nodes[i-1]
		t.nodes[i].Distance = prev.Distance + prev.Point.Distance(t.nodes[i].Point)
	}
}

func (t *Track) updatePercents() {
	if len(t.nodes) == 0 {
		return
	}
	total := t.TotalLength()
	for i := 0; i < len(t.nodes)-1; i++ {
		if total > 0 {
			t.nodes[i].Percent = t.nodes[i].Distance / total
		}
	}
	// forced, whatever the float error
	t.nodes[len(t.nodes)-1].Percent = 1
}

func (t *Track) ID() ID { return t.id }

// TotalLength is the arc length of the whole track.
func (t *Track) TotalLength() float64 {
	if len(t.nodes) == 0 {
		return 0
	}
	return t.nodes[len(t.nodes)-1].Distance
}

// Nodes returns a copy of the track nodes.
func (t *Track) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Points returns the track vertices in traversal order.
func (t *Track) Points() []utils.Vec3 {
	out := make([]utils.Vec3, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = n.Point
	}
	return out
}

// Start returns the first point of the track.
func (t *Track) Start() utils.Vec3 {
	if len(t.nodes) == 0 {
		return utils.Vec3{}
	}
	return t.nodes[0].Point
}

// End returns the terminal point of the track.
func (t *Track) End() utils.Vec3 {
	if len(t.nodes) == 0 {
		return utils.Vec3{}
	}
	return t.nodes[len(t.nodes)-1].Point
}

// PointAtDistance returns the point lying d units along the track. Distances
// outside the track clamp to the nearest endpoint; a zero-length track always
// yields its terminal point.
func (t *Track) PointAtDistance(d float64) utils.Vec3 {
	return t.sample(d, func(n Node) float64 { return n.Distance })
}

// PointAtPercent returns the point at fraction p of the total length.
func (t *Track) PointAtPercent(p float64) utils.Vec3 {
	return t.sample(p, func(n Node) float64 { return n.Percent })
}

func (t *Track) sample(v float64, key func(Node) float64) utils.Vec3 {
	n := len(t.nodes)
	if n == 0 {
		return utils.Vec3{}
	}
	if n == 1 || t.TotalLength() == 0 {
		return t.End()
	}
	if v <= key(t.nodes[0]) {
		return t.nodes[0].Point
	}
	if v >= key(t.nodes[n-1]) {
		return t.nodes[n-1].Point
	}

	// first node whose key is >= v; it is at least 1 here
	i := sort.Search(n, func(i int) bool { return key(t.nodes[i]) >= v })
	p1, p2 := t.nodes[i-1], t.nodes[i]
	span := key(p2) - key(p1)
	if span <= 0 {
		return p2.Point
	}
	return p1.Point.Lerp(p2.Point, (v-key(p1))/span)
}
