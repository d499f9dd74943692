package game

import (
	"encoding/json"
	"slices"
)

// Entity is the capability set shared by everything placed on the map.
type Entity interface {
	Location() Location
	IsRemoved() bool
	Remove()
}

// ActorID identifies an actor within a City. Zero is never issued.
type ActorID uint32

type ActorKind int

const (
	KindBus ActorKind = iota
	KindPassenger
)

func (k ActorKind) String() string {
	switch k {
	case KindBus:
		return "bus"
	case KindPassenger:
		return "passenger"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes ActorKind as a string.
func (k ActorKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Actor is a bus or a passenger. Kind-specific fields are only meaningful for that kind.
type Actor struct {
	ID       ActorID
	Kind     ActorKind
	location Location
	removed  bool

	// Bus: passengers currently on board, in boarding order.
	passengers []ActorID

	// Passenger: where the passenger currently is.
	bus       ActorID
	stop      StopID
	onPlayer  bool
	delivered bool
}

func (a *Actor) Location() Location { return a.location }
func (a *Actor) IsRemoved() bool    { return a.removed }
func (a *Actor) Remove()            { a.removed = true }

// Move relocates the actor.
func (a *Actor) Move(loc Location) {
	a.location = loc
}

// Passengers returns a copy of the bus's passenger list.
func (a *Actor) Passengers() []ActorID {
	return slices.Clone(a.passengers)
}

// BoardBus puts passenger p on bus a. Both actors must be of the matching kind.
func (a *Actor) BoardBus(p *Actor) {
	if a.Kind != KindBus || p.Kind != KindPassenger || slices.Contains(a.passengers, p.ID) {
		return
	}
	a.passengers = append(a.passengers, p.ID)
	p.bus = a.ID
	p.stop = 0
	p.onPlayer = false
	p.location = a.location
}

// removePassenger drops id from the bus's passenger list.
func (a *Actor) removePassenger(id ActorID) {
	a.passengers = slices.DeleteFunc(a.passengers, func(p ActorID) bool { return p == id })
}

// IsInVehicle reports whether a passenger is riding a bus or the player.
func (a *Actor) IsInVehicle() bool {
	return a.bus != 0 || a.onPlayer
}

// Bus returns the bus a passenger rides, or 0.
func (a *Actor) Bus() ActorID { return a.bus }

// Stop returns the stop a passenger waits at, or 0.
func (a *Actor) Stop() StopID { return a.stop }

// IsDelivered reports whether the tram already dropped this passenger at stop 2.
// Delivered passengers stay at stop 2 and cannot be moved or captured again.
func (a *Actor) IsDelivered() bool { return a.delivered }

// EnterStop moves a passenger to s and registers it there.
func (a *Actor) EnterStop(s *Stop) {
	a.bus = 0
	a.onPlayer = false
	a.stop = s.ID
	a.location = s.location
	s.AddPassenger(a.ID)
}
