package game

import (
	"fmt"
	"slices"
	"time"
)

// City owns every bus, passenger and stop currently in the game.
// Other components refer to them by ID only.
type City struct {
	state    CityState
	gameOver bool
	observer Observer

	clock         time.Time
	clockSet      bool
	backgroundSet bool

	actors     map[ActorID]*Actor
	actorOrder []ActorID
	nextID     ActorID

	stops     map[StopID]*Stop
	stopOrder []StopID

	tramStop1 *Stop
	tramStop2 *Stop
}

// NewCity creates an empty city in the init state. A nil observer is replaced with NopObserver.
func NewCity(observer Observer) *City {
	if observer == nil {
		observer = NopObserver{}
	}
	return &City{
		state:    StateInit,
		observer: observer,
		actors:   make(map[ActorID]*Actor),
		stops:    make(map[StopID]*Stop),
	}
}

// State returns the current lifecycle state.
func (c *City) State() CityState { return c.state }

// SetBackground validates the background images and hands them to the observer.
func (c *City) SetBackground(basic, large MapImage) error {
	if !basic.Valid() || !large.Valid() {
		return fmt.Errorf("%w: background image missing or empty", ErrInvalidPlacement)
	}
	c.backgroundSet = true
	c.observer.BackgroundReady(basic, large)
	return nil
}

// SetClock sets the in-game time of day.
func (c *City) SetClock(t time.Time) {
	c.clock = t
	c.clockSet = true
}

// Clock returns the in-game time of day.
func (c *City) Clock() time.Time { return c.clock }

// AdvanceClock moves the in-game clock forward by d.
func (c *City) AdvanceClock(d time.Duration) {
	c.clock = c.clock.Add(d)
}

// AddStop registers a stop after the observer has accepted its placement.
func (c *City) AddStop(stop *Stop) error {
	if _, ok := c.stops[stop.ID]; ok {
		return fmt.Errorf("%w: stop %d already placed", ErrInvalidPlacement, stop.ID)
	}
	if err := c.observer.StopPlaced(stop); err != nil {
		return fmt.Errorf("%w: stop %d: %v", ErrInvalidPlacement, stop.ID, err)
	}
	c.stops[stop.ID] = stop
	c.stopOrder = append(c.stopOrder, stop.ID)
	return nil
}

// AddTramStops creates the two tram line stops.
func (c *City) AddTramStops() {
	c.tramStop1 = NewStop(TramStop1ID, "Tram 1", LocationFromPixel(TramStop1X, TramStop1Y))
	c.observer.TramStopPlaced(c.tramStop1)

	c.tramStop2 = NewStop(TramStop2ID, "Tram 2", LocationFromPixel(TramStop2X, TramStop2Y))
	c.observer.TramStopPlaced(c.tramStop2)
}

// TramStop1 returns the boarding stop of the tram line, nil before AddTramStops.
func (c *City) TramStop1() *Stop { return c.tramStop1 }

// TramStop2 returns the alighting stop of the tram line, nil before AddTramStops.
func (c *City) TramStop2() *Stop { return c.tramStop2 }

// Stop looks up a stop by ID, including the tram stops.
func (c *City) Stop(id StopID) *Stop {
	if s, ok := c.stops[id]; ok {
		return s
	}
	if c.tramStop1 != nil && c.tramStop1.ID == id {
		return c.tramStop1
	}
	if c.tramStop2 != nil && c.tramStop2.ID == id {
		return c.tramStop2
	}
	return nil
}

// Stops returns the regular stops in insertion order.
func (c *City) Stops() []*Stop {
	stops := make([]*Stop, 0, len(c.stopOrder))
	for _, id := range c.stopOrder {
		stops = append(stops, c.stops[id])
	}
	return stops
}

// StartGame moves the city into the game state. Calling it again is allowed.
func (c *City) StartGame() error {
	if !c.backgroundSet || !c.clockSet {
		return fmt.Errorf("%w: background and clock must be set", ErrInitIncomplete)
	}
	c.state = StateGame
	return nil
}

// NewActor allocates an actor with a fresh ID. It is not part of the city until AddActor.
func (c *City) NewActor(kind ActorKind, loc Location) *Actor {
	c.nextID++
	return &Actor{ID: c.nextID, Kind: kind, location: loc}
}

// AddActor places an actor in the city.
func (c *City) AddActor(actor *Actor) error {
	if actor.ID == 0 {
		c.nextID++
		actor.ID = c.nextID
	}
	if _, ok := c.actors[actor.ID]; ok {
		return fmt.Errorf("%w: actor %d", ErrDuplicateActor, actor.ID)
	}
	c.actors[actor.ID] = actor
	c.actorOrder = append(c.actorOrder, actor.ID)
	if actor.ID > c.nextID {
		c.nextID = actor.ID
	}
	c.observer.ActorPlaced(actor)
	return nil
}

// RemoveActor marks the actor removed and erases it from the city.
func (c *City) RemoveActor(actor *Actor) error {
	if !c.FindActor(actor) {
		return fmt.Errorf("%w: actor %d", ErrActorNotFound, actor.ID)
	}
	actor.Remove()
	delete(c.actors, actor.ID)
	c.actorOrder = slices.DeleteFunc(c.actorOrder, func(id ActorID) bool { return id == actor.ID })
	c.observer.ActorRemoved(actor)
	return nil
}

// FindActor reports whether this exact actor is in the city.
func (c *City) FindActor(actor *Actor) bool {
	if actor == nil {
		return false
	}
	tracked, ok := c.actors[actor.ID]
	return ok && tracked == actor
}

// Actor looks up an actor by ID.
func (c *City) Actor(id ActorID) *Actor {
	return c.actors[id]
}

// Actors returns every actor in insertion order.
func (c *City) Actors() []*Actor {
	actors := make([]*Actor, 0, len(c.actorOrder))
	for _, id := range c.actorOrder {
		actors = append(actors, c.actors[id])
	}
	return actors
}

// ActorCount returns the number of actors in the city.
func (c *City) ActorCount() int { return len(c.actors) }

// ActorMoved notifies the observer that a tracked actor changed position.
func (c *City) ActorMoved(actor *Actor) {
	if c.FindActor(actor) {
		c.observer.ActorMoved(actor)
	}
}

// NearbyActors returns the actors close to loc, in insertion order.
func (c *City) NearbyActors(loc Location) []*Actor {
	var nearby []*Actor
	for _, id := range c.actorOrder {
		a := c.actors[id]
		if a.location.IsClose(loc) {
			nearby = append(nearby, a)
		}
	}
	return nearby
}

// NearestStop returns the in-bounds stop closest to loc.
// Ties go to the stop added first.
func (c *City) NearestStop(loc Location) (*Stop, error) {
	var nearest *Stop
	shortest := 0.0
	for _, id := range c.stopOrder {
		s := c.stops[id]
		if !s.location.InBounds() {
			continue
		}
		d := CalcDistance(loc, s.location)
		if nearest == nil || d < shortest {
			nearest = s
			shortest = d
		}
	}
	if nearest == nil {
		return nil, ErrNoStopAvailable
	}
	return nearest, nil
}

// MovePassengerToStop detaches a passenger from its current bus, stop or the
// player and registers it at s.
func (c *City) MovePassengerToStop(p *Actor, s *Stop) {
	if p.bus != 0 {
		if bus := c.actors[p.bus]; bus != nil {
			bus.removePassenger(p.ID)
		}
	}
	if p.stop != 0 && p.stop != s.ID {
		if prev := c.Stop(p.stop); prev != nil {
			prev.RemovePassenger(p.ID)
		}
	}
	p.EnterStop(s)
	c.ActorMoved(p)
}

// IsGameOver reports whether the game has ended.
func (c *City) IsGameOver() bool { return c.gameOver }

// GameIsOver ends the game. It cannot be undone.
func (c *City) GameIsOver() { c.gameOver = true }

// Close releases every actor and stop held by the city.
func (c *City) Close() {
	for _, id := range c.actorOrder {
		c.actors[id].Remove()
	}
	for _, id := range c.stopOrder {
		c.stops[id].Remove()
	}
	clear(c.actors)
	clear(c.stops)
	c.actorOrder = nil
	c.stopOrder = nil
}
