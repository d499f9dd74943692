package game

import "math"

// PixelXFromEast projects an eastern coordinate onto the map's x axis.
func PixelXFromEast(east float64) int {
	return int(math.Round((east - EasternOrigin) * Scale))
}

// PixelYFromNorth projects a northern coordinate onto the map's y axis.
// The y axis grows northwards; flipping for screen space is the renderer's job.
func PixelYFromNorth(north float64) int {
	return int(math.Round((north - NorthernOrigin) * Scale))
}

// EastFromPixelX is the inverse of PixelXFromEast.
func EastFromPixelX(x int) float64 {
	return float64(x)/Scale + EasternOrigin
}

// NorthFromPixelY is the inverse of PixelYFromNorth.
func NorthFromPixelY(y int) float64 {
	return float64(y)/Scale + NorthernOrigin
}

// InBounds reports whether a pixel position lies within the map borders.
func InBounds(x, y int) bool {
	return BorderLeft <= x && x <= BorderRight && BorderUp <= y && y <= BorderDown
}
