package skymap

import (
	"math"

	"github.com/owlpinetech/healpix"
)

// Common functionality for converting between various different coordinate systems and
// pixel indices within a flat buffer.
type LocationIndexer interface {
	ToIndex(Location) (int, error)
	Name() string
	Size() int
}

// Simple indexing into a grid, no spherical projection provided by this indexer. Supports
// either row-major or column-major storage of the data for particular access patterns.
type ProjectionlessIndexer struct {
	Width    int
	Height   int
	RowMajor bool
}

func NewProjectionlessIndexer(width int, height int, rowMajor bool) ProjectionlessIndexer {
	return ProjectionlessIndexer{
		Width:    width,
		Height:   height,
		RowMajor: rowMajor,
	}
}

func (p ProjectionlessIndexer) Name() string {
	return "projectionless"
}

func (p ProjectionlessIndexer) Size() int {
	return p.Width * p.Height
}

func (p ProjectionlessIndexer) ToIndex(loc Location) (int, error) {
	switch val := loc.(type) {
	case IndexLocation:
		return int(val), nil
	case GridLocation:
		if p.RowMajor {
			return val.Y*p.Width + val.X, nil
		}
		return val.X*p.Height + val.Y, nil
	default:
		return -1, NewLocationNotSupportedError(p.Name(), loc)
	}
}

// Indexing into the column-major buffer of a CAR map, latitude varying fastest. Sky
// and fractional pixel locations resolve to the pixel whose center is nearest. When
// the map spans the whole circle of longitude, pixel columns wrap around, otherwise
// locations off the edge of the map are out of bounds.
type CarIndexer struct {
	grid  ProjectionlessIndexer
	wcs   WCS
	wraps bool
}

func NewCarIndexer(shape Shape, wcs WCS) CarIndexer {
	return CarIndexer{
		grid:  NewProjectionlessIndexer(shape.Nx, shape.Ny, false),
		wcs:   wcs,
		wraps: math.Abs(float64(shape.Nx)*wcs.Cdelt1()) >= 360-planeSlack,
	}
}

func (c CarIndexer) Name() string {
	return "car"
}

func (c CarIndexer) Size() int {
	return c.grid.Size()
}

func (c CarIndexer) ToIndex(loc Location) (int, error) {
	switch val := loc.(type) {
	case IndexLocation:
		if int(val) < 0 || int(val) >= c.Size() {
			return -1, NewLocationOutOfBoundsError(loc)
		}
		return int(val), nil
	case GridLocation:
		if val.X < 0 || val.X >= c.grid.Width || val.Y < 0 || val.Y >= c.grid.Height {
			return -1, NewLocationOutOfBoundsError(loc)
		}
		return c.grid.ToIndex(val)
	case PixelLocation:
		x := math.Round(val.X)
		y := math.Round(val.Y)
		if !exactPixel(x) || !exactPixel(y) {
			return -1, NewLocationOutOfBoundsError(loc)
		}
		if c.wraps {
			width := float64(c.grid.Width)
			x = math.Mod(x, width)
			if x < 0 {
				x += width
			}
		}
		if x < 0 || x >= float64(c.grid.Width) || y < 0 || y >= float64(c.grid.Height) {
			return -1, NewLocationOutOfBoundsError(loc)
		}
		return c.grid.ToIndex(GridLocation{int(x), int(y)})
	case SphericalLocation:
		x, y, err := c.wcs.Sky2Pix(val.Lon, val.Lat)
		if err != nil {
			return -1, err
		}
		return c.ToIndex(PixelLocation{x, y})
	case RectangularLocation:
		return c.ToIndex(val.ToSpherical())
	default:
		return -1, NewLocationNotSupportedError(c.Name(), loc)
	}
}

// Past 2^53 a float64 no longer tells neighbouring pixels apart.
const maxExactPixel = 1 << 53

func exactPixel(p float64) bool {
	return !math.IsNaN(p) && math.Abs(p) <= maxExactPixel
}

// Pixelizes a sphere using the HEALPix pixelisation method. This indexer promises a
// single resolution pixelization, where every pixel has the same angular area. Provides
// storage options of both ring and nested schemes, for making certain data-access patterns
// more efficient.
type HealpixIndexer struct {
	Scheme healpix.HealpixScheme
	Order  healpix.HealpixOrder
}

func NewHealpixIndexer(order healpix.HealpixOrder, scheme healpix.HealpixScheme) HealpixIndexer {
	return HealpixIndexer{
		Scheme: scheme,
		Order:  order,
	}
}

func (h HealpixIndexer) Name() string {
	return "healpix"
}

func (h HealpixIndexer) Size() int {
	return h.Order.Pixels()
}

func (h HealpixIndexer) ToIndex(loc Location) (int, error) {
	switch val := loc.(type) {
	case IndexLocation:
		return int(val), nil
	case RingLocation:
		return healpix.RingPixel(int(val)).PixelId(h.Order, h.Scheme), nil
	case NestLocation:
		return healpix.NestPixel(int(val)).PixelId(h.Order, h.Scheme), nil
	case UniqueLocation:
		return healpix.UniquePixel(int(val)).PixelId(h.Order, h.Scheme), nil
	case SphericalLocation:
		return healpix.NewLatLonCoordinate(val.Lat, val.Lon).PixelId(h.Order, h.Scheme), nil
	case RectangularLocation:
		return h.ToIndex(val.ToSpherical())
	default:
		return -1, NewLocationNotSupportedError(h.Name(), loc)
	}
}

// The CAR resolution in degrees whose pixels are about as large as the pixels of a
// HEALPix map of the given order.
func HealpixResolution(order healpix.HealpixOrder) float64 {
	return radToDeg(math.Sqrt(4 * math.Pi / float64(order.Pixels())))
}
