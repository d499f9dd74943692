package game

import "time"

// Map projection (geographic units -> pixels)
const (
	EasternOrigin  = 3326932.0
	NorthernOrigin = 6824973.0
	Scale          = 0.711805 // pixels per map unit
)

// Map borders (pixels, inclusive)
const (
	BorderLeft  = 0
	BorderRight = 1013
	BorderUp    = 0
	BorderDown  = 570
)

// Interaction
const (
	ProximityThreshold = 10.0 // map units
)

// Player
const (
	PlayerStartEast  = 3327703.0
	PlayerStartNorth = 6825409.0
	RotationStep     = 15.0 // degrees per rotate input
)

// Tram line
const (
	TramDepotX  = 0
	TramDepotY  = 468
	TramHeading = 6.0 // degrees, points along the line towards stop 2
	TramStop1ID = StopID(10001)
	TramStop1X  = 44
	TramStop1Y  = 467
	TramStop2ID = StopID(10002)
	TramStop2X  = 811
	TramStop2Y  = 549
)

// Police
const (
	PoliceStartEast  = 3326946.0
	PoliceStartNorth = 6824987.0
	PoliceSpeed      = 2.0 // map units per step
)

// Scoring
const (
	BusDestroyedPoints      = 10
	PassengerCapturedPoints = 20
	PassengerGoal           = 40
)

// Game timing
const (
	MoveInterval  = 100 * time.Millisecond
	ClockInterval = time.Second
	PlayingTime   = 5 * time.Minute
)

// Spawn
const (
	MinStopSpacing = 15.0 // pixels between generated stops
	StopMargin     = 10   // pixels kept clear of the borders
)
