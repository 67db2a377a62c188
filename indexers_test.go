package skymap

import (
	"errors"
	"math"
	"testing"

	"github.com/owlpinetech/healpix"
)

func TestProjectionlessIndexerGrid(t *testing.T) {
	testCases := []struct {
		name     string
		width    int
		height   int
		rowMajor bool
	}{
		{"square row", 50, 50, true},
		{"square column", 53, 53, false},
		{"rect wide row", 50, 25, true},
		{"rect wide column", 53, 24, false},
		{"rect tall row", 25, 50, true},
		{"rect tall column", 24, 53, false},
		{"arcminute sky", 21600, 10801, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			indexer := NewProjectionlessIndexer(tc.width, tc.height, tc.rowMajor)
			checkInd(t, indexer, GridLocation{0, 0}, 0)
			checkInd(t, indexer, GridLocation{tc.width - 1, tc.height - 1}, tc.width*tc.height-1)
			if tc.rowMajor {
				checkInd(t, indexer, GridLocation{1, 0}, 1)
				checkInd(t, indexer, GridLocation{tc.width - 1, 0}, tc.width-1)
				checkInd(t, indexer, GridLocation{0, tc.height - 1}, tc.width*(tc.height-1))
			} else {
				checkInd(t, indexer, GridLocation{0, 1}, 1)
				checkInd(t, indexer, GridLocation{0, tc.height - 1}, tc.height-1)
				checkInd(t, indexer, GridLocation{tc.width - 1, 0}, (tc.width-1)*tc.height)
			}
		})
	}

	indexer := NewProjectionlessIndexer(10, 10, false)
	for i := 0; i < indexer.Size(); i++ {
		x := i / 10
		y := i % 10
		ind, err := indexer.ToIndex(GridLocation{X: x, Y: y})
		if err != nil {
			t.Fatal(err)
		}
		if ind != i {
			t.Errorf("expected to see index %d at %d,%d, but got %d", i, x, y, ind)
		}
	}
}

func TestCarIndexerFullSky(t *testing.T) {
	shape, wcs, err := FullSkyGeometry(1.0)
	if err != nil {
		t.Fatal(err)
	}
	indexer := NewCarIndexer(shape, wcs)
	ny := shape.Ny

	checkInd(t, indexer, SphericalLocation{0, 0}, 180*ny+90)
	checkInd(t, indexer, RectangularLocation{1, 0, 0}, 180*ny+90)
	checkInd(t, indexer, SphericalLocation{degToRad(0.7), degToRad(-89.6)}, 179*ny+0)
	checkInd(t, indexer, SphericalLocation{degToRad(10.3), degToRad(89.7)}, 170*ny+180)
	// either side of the seam at 180.5 degrees
	checkInd(t, indexer, SphericalLocation{degToRad(180.2), 0}, 0*ny+90)
	checkInd(t, indexer, SphericalLocation{degToRad(180.8), 0}, 359*ny+90)
	checkInd(t, indexer, PixelLocation{359.6, 10}, 10)
	checkInd(t, indexer, PixelLocation{-0.6, 10}, 359*ny+10)
	checkInd(t, indexer, PixelLocation{12.4, 7.5}, 12*ny+8)
	checkInd(t, indexer, IndexLocation(42), 42)

	checkOutOfBounds(t, indexer, GridLocation{360, 0})
	checkOutOfBounds(t, indexer, GridLocation{0, -1})
	checkOutOfBounds(t, indexer, PixelLocation{3, 180.6})
	checkOutOfBounds(t, indexer, PixelLocation{math.NaN(), 1})
	checkOutOfBounds(t, indexer, PixelLocation{math.Inf(1), 5})
	checkOutOfBounds(t, indexer, PixelLocation{math.Inf(-1), 5})
	checkOutOfBounds(t, indexer, PixelLocation{1e300, 5})
	checkOutOfBounds(t, indexer, PixelLocation{3, math.Inf(1)})
	// many turns of longitude still wrap while pixels stay distinct
	checkInd(t, indexer, PixelLocation{360*1000 + 12, 5}, 12*ny+5)
	checkInd(t, indexer, PixelLocation{-360*1000 + 12, 5}, 12*ny+5)
	checkOutOfBounds(t, indexer, IndexLocation(shape.Size()))

	_, err = indexer.ToIndex(SphericalLocation{0, 2})
	var upErr *UnprojectablePointError
	if !errors.As(err, &upErr) {
		t.Errorf("expected unprojectable error, got %v", err)
	}
	checkNotSupported(t, indexer, RingLocation(3))
}

func TestCarIndexerBand(t *testing.T) {
	shape, wcs, err := BandGeometry(1.0, 30.0)
	if err != nil {
		t.Fatal(err)
	}
	indexer := NewCarIndexer(shape, wcs)
	if indexer.Size() != 360*60 {
		t.Errorf("expected size %d, got %d", 360*60, indexer.Size())
	}

	checkInd(t, indexer, SphericalLocation{0, 0}, 180*shape.Ny+30)
	checkInd(t, indexer, SphericalLocation{0, degToRad(-30)}, 180*shape.Ny+0)
	checkOutOfBounds(t, indexer, SphericalLocation{0, degToRad(60)})
	checkOutOfBounds(t, indexer, SphericalLocation{0, degToRad(-31)})
}

func TestCarIndexerPartialSky(t *testing.T) {
	wcs := mustWCS(t, 5, 5, -1, 1, 0, 0)
	indexer := NewCarIndexer(Shape{10, 10}, wcs)

	checkInd(t, indexer, SphericalLocation{0, 0}, 4*10+4)
	checkInd(t, indexer, PixelLocation{9.4, 0}, 9*10)
	checkOutOfBounds(t, indexer, PixelLocation{9.6, 0})
	checkOutOfBounds(t, indexer, PixelLocation{-0.6, 0})
	checkOutOfBounds(t, indexer, SphericalLocation{degToRad(90), 0})
}

func TestHealpixIndexer(t *testing.T) {
	indexer := NewHealpixIndexer(2, healpix.NestScheme)
	if indexer.Size() != 192 {
		t.Errorf("expected 192 pixels at order 2, got %d", indexer.Size())
	}

	north, err := indexer.ToIndex(SphericalLocation{0, math.Pi / 2})
	if err != nil {
		t.Fatal(err)
	}
	checkInd(t, indexer, RectangularLocation{0, 0, 1}, north)
	checkInd(t, indexer, IndexLocation(17), 17)
	checkNotSupported(t, indexer, GridLocation{1, 1})

	for _, loc := range []SphericalLocation{{0, 0}, {1, 0.3}, {4, -1.2}, {6.2, 1.5}} {
		ind, err := indexer.ToIndex(loc)
		if err != nil {
			t.Fatal(err)
		}
		if ind < 0 || ind >= indexer.Size() {
			t.Errorf("expected index within [0, %d) for %v, got %d", indexer.Size(), loc, ind)
		}
	}
}

func TestHealpixResolution(t *testing.T) {
	testCases := []struct {
		order  healpix.HealpixOrder
		expect float64
	}{
		{0, 58.6323},
		{1, 29.3162},
		{2, 14.6581},
	}

	for _, tc := range testCases {
		got := HealpixResolution(tc.order)
		if math.Abs(got-tc.expect) > 1e-3 {
			t.Errorf("expected resolution %v at order %d, got %v", tc.expect, tc.order, got)
		}
	}
}

func TestRectangularToSpherical(t *testing.T) {
	testCases := []struct {
		name   string
		rect   RectangularLocation
		expect SphericalLocation
	}{
		{"x axis", RectangularLocation{2, 0, 0}, SphericalLocation{0, 0}},
		{"y axis", RectangularLocation{0, 1, 0}, SphericalLocation{math.Pi / 2, 0}},
		{"negative y", RectangularLocation{0, -1, 0}, SphericalLocation{3 * math.Pi / 2, 0}},
		{"south", RectangularLocation{1, 0, -1}, SphericalLocation{0, -math.Pi / 4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.rect.ToSpherical()
			checkClose(t, "longitude", got.Lon, tc.expect.Lon, 1e-12)
			checkClose(t, "latitude", got.Lat, tc.expect.Lat, 1e-12)
		})
	}
}

func checkOutOfBounds(t *testing.T, indexer LocationIndexer, loc Location) {
	t.Helper()
	_, err := indexer.ToIndex(loc)
	var locErr LocationOutOfBoundsError
	if err == nil || !errors.As(err, &locErr) {
		t.Errorf("expected out of bounds error for %v, got %v", loc, err)
	}
}

func checkNotSupported(t *testing.T, indexer LocationIndexer, loc Location) {
	t.Helper()
	_, err := indexer.ToIndex(loc)
	var nsErr *LocationNotSupportedError
	if !errors.As(err, &nsErr) {
		t.Errorf("expected location not supported error for %v, got %v", loc, err)
	}
}

func checkInd(t *testing.T, indexer LocationIndexer, loc Location, expected int) {
	t.Helper()
	ind, err := indexer.ToIndex(loc)
	if err != nil {
		t.Error(err)
	} else if ind != expected {
		t.Errorf("expected index %d for %v, got %d", expected, loc, ind)
	}
}
