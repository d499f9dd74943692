package game

import "errors"

var (
	// ErrInvalidPlacement is returned when a stop or background cannot be placed on the map.
	ErrInvalidPlacement = errors.New("invalid placement")
	// ErrDuplicateActor is returned when an actor's ID is already used in the city.
	ErrDuplicateActor = errors.New("actor is already in the city")
	// ErrActorNotFound is returned when removing an actor the city does not track.
	ErrActorNotFound = errors.New("actor not found in the city")
	// ErrNoStopAvailable is returned when no stop lies within the map borders.
	ErrNoStopAvailable = errors.New("no stop available")
	// ErrInitIncomplete is returned when starting a game before background and clock are set.
	ErrInitIncomplete = errors.New("city initialization incomplete")
)
