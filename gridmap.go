package skymap

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/owlpinetech/healpix"
	"golang.org/x/sync/errgroup"
)

// A 2D grid of pixel values on the sky, paired with the projection that places
// each pixel. Values are stored column-major: all the latitudes of one longitude
// column are contiguous, so pixel (i, j) lives at Data[i*Ny+j].
type GridMap struct {
	Data  []float64
	shape Shape
	wcs   WCS
	index CarIndexer
}

// Create a map of the given shape with every pixel set to zero. Panics if
// either dimension of the shape is negative.
func Zeros(shape Shape, wcs WCS) *GridMap {
	if shape.Nx < 0 || shape.Ny < 0 {
		panic(fmt.Sprintf("skymap: negative map shape %d x %d", shape.Nx, shape.Ny))
	}
	return &GridMap{
		Data:  make([]float64, shape.Size()),
		shape: shape,
		wcs:   wcs,
		index: NewCarIndexer(shape, wcs),
	}
}

func (m *GridMap) Shape() Shape {
	return m.shape
}

func (m *GridMap) WCS() WCS {
	return m.wcs
}

func (m *GridMap) At(i int, j int) float64 {
	return m.Data[i*m.shape.Ny+j]
}

func (m *GridMap) Set(i int, j int, val float64) {
	m.Data[i*m.shape.Ny+j] = val
}

func (m *GridMap) Fill(val float64) {
	for i := range m.Data {
		m.Data[i] = val
	}
}

func (m *GridMap) Sum() float64 {
	sum := 0.0
	for _, v := range m.Data {
		sum += v
	}
	return sum
}

// The position in Data of a grid, pixel, sky or rectangular location, resolved
// to the nearest pixel of the map.
func (m *GridMap) Index(loc Location) (int, error) {
	return m.index.ToIndex(loc)
}

// PosmapOption configures how Posmap spreads its work.
type PosmapOption func(*posmapOptions)

type posmapOptions struct {
	workers int
}

// Convert at most n longitude columns concurrently. Values below 1 mean 1.
func WithWorkers(n int) PosmapOption {
	return func(o *posmapOptions) {
		o.workers = max(n, 1)
	}
}

// The sky position of every pixel center, as two maps of the same shape and
// projection holding longitudes and latitudes in radians. If any pixel cannot
// be projected no maps are returned, and the error is a PosmapError naming the
// first such pixel in storage order.
func (m *GridMap) Posmap(opts ...PosmapOption) (lon *GridMap, lat *GridMap, err error) {
	o := posmapOptions{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	lon = Zeros(m.shape, m.wcs)
	lat = Zeros(m.shape, m.wcs)
	ny := m.shape.Ny

	// failures are kept per column so the pixel reported does not depend on scheduling
	failures := make([]error, m.shape.Nx)
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := 0; i < m.shape.Nx; i++ {
		g.Go(func() error {
			j, err := m.wcs.pix2skyColumn(float64(i), lon.Data[i*ny:(i+1)*ny], lat.Data[i*ny:(i+1)*ny])
			if err != nil {
				failures[i] = NewPosmapError(GridLocation{i, j}, err)
			}
			return nil
		})
	}
	g.Wait()

	for _, failure := range failures {
		if failure != nil {
			Logger().Debug("skymap: posmap aborted", slog.Any("error", failure))
			return nil, nil, failure
		}
	}
	Logger().Debug("skymap: posmap built", slog.Int("nx", m.shape.Nx), slog.Int("ny", ny), slog.Int("workers", o.workers))
	return lon, lat, nil
}

// The HEALPix pixel id containing the center of every pixel of the map, in the
// same column-major order as Data.
func (m *GridMap) HealpixPixels(order healpix.HealpixOrder, scheme healpix.HealpixScheme, opts ...PosmapOption) ([]int, error) {
	lon, lat, err := m.Posmap(opts...)
	if err != nil {
		return nil, err
	}
	indexer := NewHealpixIndexer(order, scheme)
	ids := make([]int, len(m.Data))
	for i := range ids {
		id, err := indexer.ToIndex(SphericalLocation{Lon: lon.Data[i], Lat: lat.Data[i]})
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
