package game

import "math"

// Location is a position in geographic (north/east) coordinates.
type Location struct {
	north float64
	east  float64
}

// NewLocation creates a Location from northern and eastern coordinates.
func NewLocation(north, east float64) Location {
	return Location{north: north, east: east}
}

// LocationFromPixel creates a Location from a pixel position.
func LocationFromPixel(x, y int) Location {
	return Location{north: NorthFromPixelY(y), east: EastFromPixelX(x)}
}

func (l Location) North() float64 { return l.north }
func (l Location) East() float64  { return l.east }

// X returns the pixel x coordinate.
func (l Location) X() int { return PixelXFromEast(l.east) }

// Y returns the pixel y coordinate.
func (l Location) Y() int { return PixelYFromNorth(l.north) }

// InBounds reports whether the location projects inside the map borders.
func (l Location) InBounds() bool {
	return InBounds(l.X(), l.Y())
}

// SetNorthEast overwrites both coordinates.
func (l *Location) SetNorthEast(north, east float64) {
	*l = Location{north: north, east: east}
}

// IsClose reports whether other is within ProximityThreshold.
func (l Location) IsClose(other Location) bool {
	return CalcDistance(l, other) <= ProximityThreshold
}

// CalcDistance calculates the Euclidean distance between two locations in map units.
func CalcDistance(a, b Location) float64 {
	dn := a.north - b.north
	de := a.east - b.east
	return math.Sqrt(dn*dn + de*de)
}
