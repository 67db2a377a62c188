package skymap

import (
	"errors"
	"fmt"
)

var (
	ErrZeroScale     = errors.New("skymap: pixel scale must be non-zero")
	ErrNotFinite     = errors.New("skymap: parameter must be finite")
	ErrBadLatitude   = errors.New("skymap: reference latitude must lie within [-90, 90] degrees")
	ErrBadResolution = errors.New("skymap: resolution must be positive")
	ErrBadCutoff     = errors.New("skymap: declination cutoff must be non-negative")
)

// A projection or geometry could not be built from the given parameters.
// Wraps one of the sentinel errors above.
type ConfigurationError struct {
	Parameter string
	Value     float64
	Err       error
}

func NewConfigurationError(parameter string, value float64, err error) *ConfigurationError {
	return &ConfigurationError{
		Parameter: parameter,
		Value:     value,
		Err:       err,
	}
}

func (c ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s = %v: %v", c.Parameter, c.Value, c.Err)
}

func (c ConfigurationError) Unwrap() error {
	return c.Err
}

// The location lies outside the domain of the projection, e.g. a pixel past
// one of the poles. The Location is a PixelLocation or a SphericalLocation.
type UnprojectablePointError struct {
	Location Location
}

func NewUnprojectablePointError(location Location) *UnprojectablePointError {
	return &UnprojectablePointError{Location: location}
}

func (u UnprojectablePointError) Error() string {
	return fmt.Sprintf("location %v cannot be projected", u.Location)
}

// The requested geometry would contain no pixels.
type DegenerateGeometryError struct {
	Resolution float64
	DecCut     float64
	Shape      Shape
}

func NewDegenerateGeometryError(res float64, decCut float64, shape Shape) *DegenerateGeometryError {
	return &DegenerateGeometryError{
		Resolution: res,
		DecCut:     decCut,
		Shape:      shape,
	}
}

func (d DegenerateGeometryError) Error() string {
	return fmt.Sprintf("geometry with resolution %v and dec cut %v has shape %dx%d", d.Resolution, d.DecCut, d.Shape.Nx, d.Shape.Ny)
}

// A per-pixel sky position could not be computed while building a posmap.
type PosmapError struct {
	Pixel GridLocation
	Err   error
}

func NewPosmapError(pixel GridLocation, err error) *PosmapError {
	return &PosmapError{
		Pixel: pixel,
		Err:   err,
	}
}

func (p PosmapError) Error() string {
	return fmt.Sprintf("posmap failed at pixel %v: %v", p.Pixel, p.Err)
}

func (p PosmapError) Unwrap() error {
	return p.Err
}

type LocationNotSupportedError struct {
	Indexer  string
	Location Location
}

func NewLocationNotSupportedError(indexer string, location Location) *LocationNotSupportedError {
	return &LocationNotSupportedError{
		Indexer:  indexer,
		Location: location,
	}
}

func (l LocationNotSupportedError) Error() string {
	return fmt.Sprintf("location %v not supported by indexer %s", l.Location, l.Indexer)
}

type LocationOutOfBoundsError struct {
	Location Location
}

func NewLocationOutOfBoundsError(location Location) LocationOutOfBoundsError {
	return LocationOutOfBoundsError{Location: location}
}

func (l LocationOutOfBoundsError) Error() string {
	return fmt.Sprintf("location %v was out of bounds", l.Location)
}
