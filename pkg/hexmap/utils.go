// pkg/hexmap/utils.go
package hexmap

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sqrt3 is √3.
const Sqrt3 = 1.7320508075688772935274463415059
