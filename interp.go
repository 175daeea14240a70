package globe

import (
	"math"

	"github.com/gogpu/globe/rotation"
)

// interpolate steps linearly from the exact sample (prevLng, prevLat) toward
// the exact sample (lng, lat) in n steps and calls fn for the n-1 positions
// in between, j = 1..n-1.
//
// When the two longitudes are more than π apart the short way round crosses
// the antimeridian; the longitude then steps away from lng, in the wrap
// direction, and every position is wrapped into (-π, π].
func interpolate(prevLng, prevLat, lng, lat float64, n int, fn func(j int, lng, lat float64)) {
	if n < 2 {
		return
	}
	inv := 1 / float64(n)
	stepLat := (lat - prevLat) * inv
	stepLng := lng - prevLng

	if math.Abs(stepLng) <= math.Pi {
		stepLng *= inv
		for j := 1; j < n; j++ {
			fn(j, prevLng+float64(j)*stepLng, prevLat+float64(j)*stepLat)
		}
		return
	}

	stepLng = (2*math.Pi - math.Abs(stepLng)) * inv
	if prevLng < lng {
		// east to west across the antimeridian
		stepLng = -stepLng
	}
	for j := 1; j < n; j++ {
		fn(j, rotation.WrapLongitude(prevLng+float64(j)*stepLng), prevLat+float64(j)*stepLat)
	}
}
