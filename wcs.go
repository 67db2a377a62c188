package skymap

import (
	"log/slog"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/owlpinetech/flatsphere"

	"github.com/owlpinetech/skymap/quat"
)

// How far past the edge of the CAR plane (radians) a point may fall, from
// rounding alone, and still be projected.
const planeSlack = 1e-9

// A cylindrical equal-spacing (CAR) world coordinate system relating pixels of
// a map to positions on the sky.
//
// The reference pixel (crpix) follows the FITS convention of counting pixels
// from 1, the pixel scale (cdelt) is in degrees per pixel and signed, and the
// reference position (crval) is in degrees. All pixel coordinates accepted or
// returned by the methods are 0-based, and sky coordinates are in radians.
//
// A WCS is immutable once built, and safe to share between goroutines.
type WCS struct {
	crpix1 float64
	crpix2 float64
	cdelt1 float64
	cdelt2 float64
	crval1 float64
	crval2 float64

	car        flatsphere.Equirectangular
	toNative   quat.Quat // rotates crval onto the origin of the CAR plane
	fromNative quat.Quat
}

// Create a new CAR projection centered on (crval1, crval2), with the image
// plane anchored at the reference pixel (crpix1, crpix2) and no rotation.
func NewWCS(crpix1, crpix2, cdelt1, cdelt2, crval1, crval2 float64) (WCS, error) {
	params := []struct {
		name  string
		value float64
	}{
		{"crpix1", crpix1}, {"crpix2", crpix2},
		{"cdelt1", cdelt1}, {"cdelt2", cdelt2},
		{"crval1", crval1}, {"crval2", crval2},
	}
	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return WCS{}, NewConfigurationError(p.name, p.value, ErrNotFinite)
		}
	}
	if cdelt1 == 0 {
		return WCS{}, NewConfigurationError("cdelt1", cdelt1, ErrZeroScale)
	}
	if cdelt2 == 0 {
		return WCS{}, NewConfigurationError("cdelt2", cdelt2, ErrZeroScale)
	}
	if math.Abs(crval2) > 90 {
		return WCS{}, NewConfigurationError("crval2", crval2, ErrBadLatitude)
	}

	// first swing the reference longitude onto the prime meridian, then tilt
	// the reference latitude down onto the equator
	spin := quat.FromAxisAngle(r3.Vector{Z: 1}, -degToRad(crval1))
	tilt := quat.FromAxisAngle(r3.Vector{Y: 1}, degToRad(crval2))
	toNative := tilt.Mul(spin)

	w := WCS{
		crpix1:     crpix1,
		crpix2:     crpix2,
		cdelt1:     cdelt1,
		cdelt2:     cdelt2,
		crval1:     crval1,
		crval2:     crval2,
		car:        flatsphere.NewEquirectangular(0),
		toNative:   toNative,
		fromNative: toNative.Conj(),
	}
	Logger().Debug("skymap: built projection", slog.Any("wcs", w))
	return w, nil
}

func (w WCS) Crpix1() float64 { return w.crpix1 }
func (w WCS) Crpix2() float64 { return w.crpix2 }
func (w WCS) Cdelt1() float64 { return w.cdelt1 }
func (w WCS) Cdelt2() float64 { return w.cdelt2 }
func (w WCS) Crval1() float64 { return w.crval1 }
func (w WCS) Crval2() float64 { return w.crval2 }

// Convert a 0-based pixel position into sky longitude and latitude in radians.
// Longitudes are wrapped into [0, 2π). Pixels that land outside the CAR plane,
// e.g. past a pole, fail with an UnprojectablePointError.
func (w WCS) Pix2Sky(x float64, y float64) (lon float64, lat float64, err error) {
	native, err := w.nativePoint(x, y)
	if err != nil {
		return 0, 0, err
	}
	lon, lat = skyLonLat(w.fromNative.Rotate(native))
	return lon, lat, nil
}

// Convert every pixel of column x, rows 0 to len(lon)-1, writing the sky
// positions into lon and lat. On failure the row of the first unprojectable
// pixel is returned with the error and lon and lat are left partly written.
func (w WCS) pix2skyColumn(x float64, lon []float64, lat []float64) (int, error) {
	points := make([]r3.Vector, len(lon))
	for j := range points {
		native, err := w.nativePoint(x, float64(j))
		if err != nil {
			return j, err
		}
		points[j] = native
	}
	for j, p := range quat.Repeat(w.fromNative, len(points)).Rotate(points) {
		lon[j], lat[j] = skyLonLat(p)
	}
	return -1, nil
}

// The unit vector in native coordinates of a 0-based pixel position.
func (w WCS) nativePoint(x float64, y float64) (r3.Vector, error) {
	// the image mapping counts pixels from 1
	u := degToRad(w.cdelt1 * (x + 1 - w.crpix1))
	v := degToRad(w.cdelt2 * (y + 1 - w.crpix2))
	if !w.inPlane(u, v) {
		return r3.Vector{}, NewUnprojectablePointError(PixelLocation{X: x, Y: y})
	}

	nativeLat, nativeLon := w.car.Inverse(u, v)
	// past the pole by rounding only; clamping keeps the longitude of the pixel
	nativeLat = math.Max(-math.Pi/2, math.Min(math.Pi/2, nativeLat))
	return s2.PointFromLatLng(s2.LatLng{Lat: s1.Angle(nativeLat), Lng: s1.Angle(nativeLon)}).Vector, nil
}

func skyLonLat(v r3.Vector) (lon float64, lat float64) {
	sky := s2.LatLngFromPoint(s2.Point{Vector: v})
	return normalizeLon(sky.Lng.Radians()), sky.Lat.Radians()
}

// Convert a sky position in radians into a 0-based pixel position. Latitudes
// beyond the poles and non-finite input fail with an UnprojectablePointError.
func (w WCS) Sky2Pix(lon float64, lat float64) (x float64, y float64, err error) {
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.Abs(lat) > math.Pi/2+planeSlack {
		return 0, 0, NewUnprojectablePointError(SphericalLocation{Lon: lon, Lat: lat})
	}

	sky := s2.PointFromLatLng(s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lon)})
	native := s2.LatLngFromPoint(s2.Point{Vector: w.toNative.Rotate(sky.Vector)})
	u, v := w.car.Project(native.Lat.Radians(), native.Lng.Radians())

	px := w.crpix1 + radToDeg(u)/w.cdelt1
	py := w.crpix2 + radToDeg(v)/w.cdelt2
	// undo the 1-based pixel counting of the image mapping
	return px - 1, py - 1, nil
}

func (w WCS) inPlane(u float64, v float64) bool {
	bounds := w.car.PlanarBounds()
	return u >= bounds.XMin-planeSlack && u <= bounds.XMin+bounds.Width()+planeSlack &&
		v >= bounds.YMin-planeSlack && v <= bounds.YMin+bounds.Height()+planeSlack
}

func (w WCS) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("crpix1", w.crpix1),
		slog.Float64("crpix2", w.crpix2),
		slog.Float64("cdelt1", w.cdelt1),
		slog.Float64("cdelt2", w.cdelt2),
		slog.Float64("crval1", w.crval1),
		slog.Float64("crval2", w.crval2),
	)
}

func degToRad(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

func radToDeg(rad float64) float64 {
	return s1.Angle(rad).Degrees()
}
