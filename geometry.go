package skymap

import (
	"log/slog"
	"math"
)

// The pixel counts of a map along longitude (Nx) and latitude (Ny).
type Shape struct {
	Nx int
	Ny int
}

// The total number of pixels.
func (s Shape) Size() int {
	return s.Nx * s.Ny
}

// Build the shape and projection of a full-sky CAR map with pixels res degrees
// on a side. Longitude wraps around with Nx pixels, while latitude samples both
// poles on pixel centers, so Ny has one more pixel than 180/res.
func FullSkyGeometry(res float64) (Shape, WCS, error) {
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return Shape{}, WCS{}, NewConfigurationError("res", res, ErrNotFinite)
	}
	if res <= 0 {
		return Shape{}, WCS{}, NewConfigurationError("res", res, ErrBadResolution)
	}

	nx := int(math.Round(360 / res))
	ny := int(math.Round(180/res)) + 1
	if nx < 1 || ny < 2 {
		return Shape{}, WCS{}, NewDegenerateGeometryError(res, 90, Shape{Nx: nx, Ny: ny})
	}

	// half a pixel of longitude keeps pixel centers off the 0/360 seam
	crval1, crval2 := res/2, 0.0
	// longitude decreases to the right, as on the sky seen from inside
	cdelt1 := -360 / float64(nx)
	cdelt2 := 180 / float64(ny-1)
	crpix1 := float64(nx/2) + 0.5
	crpix2 := float64(ny+1) / 2

	wcs, err := NewWCS(crpix1, crpix2, cdelt1, cdelt2, crval1, crval2)
	if err != nil {
		return Shape{}, WCS{}, err
	}
	Logger().Debug("skymap: full-sky geometry", slog.Float64("res", res), slog.Int("nx", nx), slog.Int("ny", ny))
	return Shape{Nx: nx, Ny: ny}, wcs, nil
}

// Build the shape and projection of a CAR map with pixels res degrees on a
// side, covering all longitudes but only the rows of the full-sky geometry
// whose latitude lies within [-decCut, decCut] degrees. The rows form the
// half-open interval between the rows nearest -decCut and +decCut; a cutoff
// of 90 degrees or more keeps every row.
func BandGeometry(res float64, decCut float64) (Shape, WCS, error) {
	if math.IsNaN(decCut) {
		return Shape{}, WCS{}, NewConfigurationError("decCut", decCut, ErrNotFinite)
	}
	if decCut < 0 {
		return Shape{}, WCS{}, NewConfigurationError("decCut", decCut, ErrBadCutoff)
	}

	full, fullWcs, err := FullSkyGeometry(res)
	if err != nil {
		return Shape{}, WCS{}, err
	}

	start, stop := 0, full.Ny
	if decCut < 90 {
		_, yStart, err := fullWcs.Sky2Pix(0, degToRad(-decCut))
		if err != nil {
			return Shape{}, WCS{}, err
		}
		_, yStop, err := fullWcs.Sky2Pix(0, degToRad(decCut))
		if err != nil {
			return Shape{}, WCS{}, err
		}
		start = max(int(math.Round(yStart)), 0)
		stop = min(int(math.Round(yStop)), full.Ny)
	}

	shape := Shape{Nx: full.Nx, Ny: stop - start}
	if shape.Ny <= 0 {
		return Shape{}, WCS{}, NewDegenerateGeometryError(res, decCut, shape)
	}

	// re-anchor the reference row on the first row kept
	wcs, err := NewWCS(fullWcs.Crpix1(), fullWcs.Crpix2()-float64(start),
		fullWcs.Cdelt1(), fullWcs.Cdelt2(), fullWcs.Crval1(), fullWcs.Crval2())
	if err != nil {
		return Shape{}, WCS{}, err
	}
	Logger().Debug("skymap: band geometry", slog.Float64("res", res), slog.Float64("decCut", decCut),
		slog.Int("start", start), slog.Int("stop", stop))
	return shape, wcs, nil
}
