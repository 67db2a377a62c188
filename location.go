package skymap

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Any of the location kinds below. Indexers accept the subset that makes sense
// for their pixelization and reject the rest with LocationNotSupportedError.
type Location interface{}

// A position directly in a flat pixel buffer.
type IndexLocation int

type RingLocation int

type NestLocation int

type UniqueLocation int

// An integer pixel in a 2D grid, 0-based. X runs along longitude, Y along latitude.
type GridLocation struct {
	X int
	Y int
}

// A possibly fractional pixel position, 0-based, with the center of pixel
// (i, j) at exactly (i, j).
type PixelLocation struct {
	X float64
	Y float64
}

// A point on the celestial sphere, both angles in radians.
type SphericalLocation struct {
	Lon float64
	Lat float64
}

// A point in 3D space, interpreted as a direction from the origin.
type RectangularLocation struct {
	X float64
	Y float64
	Z float64
}

func (r RectangularLocation) ToSpherical() SphericalLocation {
	ll := s2.LatLngFromPoint(s2.Point{Vector: r3.Vector{X: r.X, Y: r.Y, Z: r.Z}})
	return SphericalLocation{Lon: normalizeLon(ll.Lng.Radians()), Lat: ll.Lat.Radians()}
}

// Wrap a longitude in radians into [0, 2π).
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon, 2*math.Pi)
	if lon < 0 {
		lon += 2 * math.Pi
	}
	if lon >= 2*math.Pi {
		lon -= 2 * math.Pi
	}
	return lon
}
