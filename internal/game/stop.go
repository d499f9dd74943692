package game

import "slices"

// StopID identifies a stop. Zero means "no stop".
type StopID int

// Stop is a fixed waiting point for passengers.
type Stop struct {
	ID       StopID
	Name     string
	location Location
	removed  bool

	passengers []ActorID
}

// NewStop creates a stop at loc.
func NewStop(id StopID, name string, loc Location) *Stop {
	return &Stop{ID: id, Name: name, location: loc}
}

func (s *Stop) Location() Location { return s.location }
func (s *Stop) IsRemoved() bool    { return s.removed }
func (s *Stop) Remove()            { s.removed = true }

// Passengers returns a copy of the waiting passenger IDs.
func (s *Stop) Passengers() []ActorID {
	return slices.Clone(s.passengers)
}

// AddPassenger registers a waiting passenger. Adding one twice has no effect.
func (s *Stop) AddPassenger(id ActorID) {
	if slices.Contains(s.passengers, id) {
		return
	}
	s.passengers = append(s.passengers, id)
}

// RemovePassenger unregisters a waiting passenger.
func (s *Stop) RemovePassenger(id ActorID) {
	s.passengers = slices.DeleteFunc(s.passengers, func(p ActorID) bool { return p == id })
}
