// pkg/hexmap/hex.go
package hexmap

import "golang.org/x/image/math/f64"

// Hex is a hex cell in axial coordinates (Q, R).
type Hex struct {
	Q int `yaml:"q"`
	R int `yaml:"r"`
}

// NeighborDirections defines the 6 possible directions from a hex, starting from East and going counter-clockwise.
var NeighborDirections = []Hex{
	{Q: 1, R: 0}, {Q: 0, R: -1}, {Q: -1, R: 0},
	{Q: -1, R: 1}, {Q: 0, R: 1}, {Q: 1, R: -1},
}

// Layout is the affine transform from axial coordinates to the plane for
// pointy top hexes of the given size, with hex (0, 0) centred on the origin.
func Layout(hexSize, originX, originY float64) f64.Aff3 {
	return f64.Aff3{
		hexSize * Sqrt3, hexSize * Sqrt3 / 2, originX,
		0, hexSize * 3.0 / 2.0, originY,
	}
}

// Apply maps the hex centre through m.
func (h Hex) Apply(m f64.Aff3) (x, y float64) {
	q, r := float64(h.Q), float64(h.R)
	return m[0]*q + m[1]*r + m[2], m[3]*q + m[4]*r + m[5]
}

// ToPixel converts a hex to planar coordinates (pointy top orientation).
func (h Hex) ToPixel(hexSize float64) (x, y float64) {
	return h.Apply(Layout(hexSize, 0, 0))
}

// Neighbors returns the neighbours of h that exist on the map.
func (h Hex) Neighbors(hm *HexMap) []Hex {
	valid := make([]Hex, 0, 6)
	for _, d := range NeighborDirections {
		n := h.Add(d)
		if hm.Contains(n) {
			valid = append(valid, n)
		}
	}
	return valid
}

// Add returns the sum of two hexes.
func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R}
}

// Subtract returns the difference of two hexes.
func (h Hex) Subtract(other Hex) Hex {
	return Hex{Q: h.Q - other.Q, R: h.R - other.R}
}

// Distance is the number of steps between two hexes.
func (h Hex) Distance(to Hex) int {
	dq := h.Q - to.Q
	dr := h.R - to.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}
