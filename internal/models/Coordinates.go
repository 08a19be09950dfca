package models

import (
	"errors"
	"fmt"
	"math"
)

// DefaultDriftTolerance is roughly one kilometre.
const DefaultDriftTolerance = 0.01

var ErrInvalidCoordinates = errors.New("invalid coordinates")

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return fmt.Errorf("%w: NaN", ErrInvalidCoordinates)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of [-90, 90]", ErrInvalidCoordinates, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of [-180, 180]", ErrInvalidCoordinates, c.Lng)
	}
	return nil
}

// Near reports whether both axes differ by strictly less than tolerance degrees.
func (c Coordinates) Near(other Coordinates, tolerance float64) bool {
	return math.Abs(c.Lat-other.Lat) < tolerance && math.Abs(c.Lng-other.Lng) < tolerance
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}
