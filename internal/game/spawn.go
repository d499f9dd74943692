package game

import (
	"fmt"
	"math/rand"
)

// Position is a pixel coordinate on the map.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Population controls how a fresh city is filled.
type Population struct {
	Stops             int
	PassengersPerStop int
	Buses             int
	PassengersPerBus  int
	FirstStopID       StopID
}

// Populate fills the city with stops, waiting passengers and buses carrying passengers.
// Stops keep MinStopSpacing from each other; buses are parked next to a random stop.
func Populate(city *City, pop Population) error {
	firstID := pop.FirstStopID
	if firstID == 0 {
		firstID = 1
	}

	positions := GenerateStopPositions(pop.Stops)
	stops := make([]*Stop, 0, len(positions))
	for i, pos := range positions {
		id := firstID + StopID(i)
		stop := NewStop(id, fmt.Sprintf("Stop %d", id), LocationFromPixel(pos.X, pos.Y))
		if err := city.AddStop(stop); err != nil {
			return err
		}
		stops = append(stops, stop)

		for range pop.PassengersPerStop {
			p := city.NewActor(KindPassenger, stop.Location())
			if err := city.AddActor(p); err != nil {
				return err
			}
			p.EnterStop(stop)
		}
	}

	if len(stops) == 0 {
		return nil
	}
	for range pop.Buses {
		stop := stops[rand.Intn(len(stops))]
		bus := city.NewActor(KindBus, jitter(stop.Location()))
		if err := city.AddActor(bus); err != nil {
			return err
		}
		for range pop.PassengersPerBus {
			p := city.NewActor(KindPassenger, bus.Location())
			if err := city.AddActor(p); err != nil {
				return err
			}
			bus.BoardBus(p)
		}
	}
	return nil
}

// GenerateStopPositions picks n in-bounds pixel positions that keep
// MinStopSpacing from each other where possible.
func GenerateStopPositions(n int) []Position {
	placed := make([]Position, 0, n)
	for range n {
		placed = append(placed, generatePosition(placed))
	}
	return placed
}

// generatePosition finds a random position inside the borders that respects
// MinStopSpacing from all existing positions. Falls back to a random position after maxAttempts.
func generatePosition(existing []Position) Position {
	const maxAttempts = 100

	minX, maxX := BorderLeft+StopMargin, BorderRight-StopMargin
	minY, maxY := BorderUp+StopMargin, BorderDown-StopMargin

	for i := 0; i < maxAttempts; i++ {
		pos := Position{
			X: minX + rand.Intn(maxX-minX+1),
			Y: minY + rand.Intn(maxY-minY+1),
		}
		if isFarEnough(pos, existing) {
			return pos
		}
	}

	return Position{
		X: minX + rand.Intn(maxX-minX+1),
		Y: minY + rand.Intn(maxY-minY+1),
	}
}

// isFarEnough checks if pos is at least MinStopSpacing from all existing positions.
func isFarEnough(pos Position, existing []Position) bool {
	for _, p := range existing {
		dx := float64(pos.X - p.X)
		dy := float64(pos.Y - p.Y)
		if dx*dx+dy*dy < MinStopSpacing*MinStopSpacing {
			return false
		}
	}
	return true
}

// jitter offsets loc by up to half the proximity threshold on each axis.
func jitter(loc Location) Location {
	d := ProximityThreshold / 2
	return NewLocation(
		loc.North()+(rand.Float64()*2-1)*d,
		loc.East()+(rand.Float64()*2-1)*d,
	)
}
