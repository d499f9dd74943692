package game

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

type PlayerType int

const (
	TypeWalker PlayerType = iota
	TypeBiker
	TypeTram
)

// speeds in map units per step, indexed by PlayerType.
var speeds = [...]float64{
	TypeWalker: 1.420,
	TypeBiker:  5.195,
	TypeTram:   9.933,
}

func (t PlayerType) String() string {
	switch t {
	case TypeWalker:
		return "walker"
	case TypeBiker:
		return "biker"
	case TypeTram:
		return "tram"
	default:
		return "unknown"
	}
}

// Speed returns how far this type moves per step.
func (t PlayerType) Speed() float64 {
	if t < 0 || int(t) >= len(speeds) {
		return 0
	}
	return speeds[t]
}

// MarshalJSON serializes PlayerType as a string.
func (t PlayerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON deserializes PlayerType from a string.
func (t *PlayerType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	typ, ok := ParsePlayerType(s)
	if !ok {
		return fmt.Errorf("unknown player type %q", s)
	}
	*t = typ
	return nil
}

// ParsePlayerType maps a type name to a PlayerType.
func ParsePlayerType(s string) (PlayerType, bool) {
	switch s {
	case "walker":
		return TypeWalker, true
	case "biker":
		return TypeBiker, true
	case "tram":
		return TypeTram, true
	}
	return TypeWalker, false
}

// Player is the user-controlled actor.
type Player struct {
	north    float64
	east     float64
	rotation float64
	typ      PlayerType

	passengers []ActorID
}

// NewPlayer creates a walker at the start position facing east.
func NewPlayer() *Player {
	return &Player{
		north: PlayerStartNorth,
		east:  PlayerStartEast,
		typ:   TypeWalker,
	}
}

func (p *Player) Location() Location { return NewLocation(p.north, p.east) }
func (p *Player) IsRemoved() bool    { return false }
func (p *Player) Remove()            {}

func (p *Player) X() int                { return PixelXFromEast(p.east) }
func (p *Player) Y() int                { return PixelYFromNorth(p.north) }
func (p *Player) Rotation() float64     { return p.rotation }
func (p *Player) Type() PlayerType      { return p.typ }
func (p *Player) Passengers() []ActorID { return slices.Clone(p.passengers) }

// SetXY places the player at a pixel position.
func (p *Player) SetXY(x, y int) {
	p.north = NorthFromPixelY(y)
	p.east = EastFromPixelX(x)
}

// SetType switches the player type. Walkers and bikers face east again;
// the tram is put on its depot facing along the line.
func (p *Player) SetType(t PlayerType) {
	if t == TypeTram && p.typ == TypeTram {
		return
	}
	p.typ = t
	if t == TypeTram {
		p.SetXY(TramDepotX, TramDepotY)
		p.ChangeRotation(TramHeading, false)
		return
	}
	p.ChangeRotation(0, false)
}

// ChangeRotation turns the player by deg, or sets the heading to deg when not incremental.
// The result is always in [0, 360).
func (p *Player) ChangeRotation(deg float64, incremental bool) {
	if !incremental {
		p.rotation = 0
	}
	p.rotation = normalizeDegrees(p.rotation + deg)
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Move steps forward (dir 1) or backward (dir -1) along the current heading.
// A step that would leave the map is dropped. Returns whether the player moved.
func (p *Player) Move(dir int) bool {
	north, east, ok := step(p.north, p.east, p.rotation, float64(dir)*p.typ.Speed())
	if !ok {
		return false
	}
	p.north, p.east = north, east
	return true
}

// step advances a position by dist along rotation degrees and reports
// whether the result stays within the map borders.
func step(north, east, rotation, dist float64) (float64, float64, bool) {
	rad := rotation * math.Pi / 180
	newEast := east + dist*math.Cos(rad)
	newNorth := north + dist*math.Sin(rad)
	if !InBounds(PixelXFromEast(newEast), PixelYFromNorth(newNorth)) {
		return north, east, false
	}
	return newNorth, newEast, true
}

// AddPassenger takes a passenger on board.
func (p *Player) AddPassenger(id ActorID) {
	if slices.Contains(p.passengers, id) {
		return
	}
	p.passengers = append(p.passengers, id)
}

// RemovePassenger drops a passenger from the board list.
func (p *Player) RemovePassenger(id ActorID) {
	p.passengers = slices.DeleteFunc(p.passengers, func(a ActorID) bool { return a == id })
}

// DestroyBus removes every bus near the player. Passengers of a destroyed bus
// are first moved to the stop nearest to the bus. Returns the number of
// buses destroyed; a bus whose passengers have nowhere to go is left alone.
func (p *Player) DestroyBus(city *City) (int, error) {
	destroyed := 0
	for _, actor := range city.NearbyActors(p.Location()) {
		if actor.Kind != KindBus {
			continue
		}
		stop, err := city.NearestStop(actor.Location())
		if err != nil {
			return destroyed, err
		}
		for _, id := range actor.Passengers() {
			passenger := city.Actor(id)
			if passenger == nil {
				actor.removePassenger(id)
				continue
			}
			city.MovePassengerToStop(passenger, stop)
		}
		if err := city.RemoveActor(actor); err != nil {
			return destroyed, err
		}
		destroyed++
	}
	return destroyed, nil
}

// PersuadePassengers sends nearby passengers who are not riding anything to
// the first tram stop. Returns how many passengers were moved.
func (p *Player) PersuadePassengers(city *City) int {
	stop := city.TramStop1()
	if stop == nil {
		return 0
	}
	moved := 0
	for _, actor := range city.NearbyActors(p.Location()) {
		if actor.Kind != KindPassenger || actor.IsInVehicle() || actor.IsDelivered() || actor.Stop() == stop.ID {
			continue
		}
		city.MovePassengerToStop(actor, stop)
		moved++
	}
	return moved
}

// CanEnterOrExit reports whether the tram may board at stop 1 (when empty)
// or unload at stop 2 (when carrying passengers).
func (p *Player) CanEnterOrExit(city *City) bool {
	stop1, stop2 := city.TramStop1(), city.TramStop2()
	if p.typ != TypeTram || stop1 == nil || stop2 == nil {
		return false
	}
	loc := p.Location()
	if loc.IsClose(stop1.Location()) {
		return len(p.passengers) == 0
	}
	if loc.IsClose(stop2.Location()) {
		return len(p.passengers) > 0
	}
	return false
}

// EnterOrExitPassengers boards everyone waiting at stop 1, or unloads every
// carried passenger at stop 2 and counts each one as captured. A nil stats
// skips the counting.
func (p *Player) EnterOrExitPassengers(city *City, stats *Statistics) (boarded, alighted int) {
	if !p.CanEnterOrExit(city) {
		return 0, 0
	}

	if len(p.passengers) == 0 {
		stop := city.TramStop1()
		for _, id := range stop.Passengers() {
			passenger := city.Actor(id)
			if passenger != nil && passenger.delivered {
				continue
			}
			stop.RemovePassenger(id)
			if passenger == nil {
				continue
			}
			passenger.stop = 0
			passenger.onPlayer = true
			passenger.Move(p.Location())
			p.AddPassenger(id)
			city.ActorMoved(passenger)
			boarded++
		}
		return boarded, 0
	}

	stop := city.TramStop2()
	for _, id := range p.passengers {
		passenger := city.Actor(id)
		if passenger == nil || passenger.delivered {
			continue
		}
		city.MovePassengerToStop(passenger, stop)
		passenger.delivered = true
		if stats != nil {
			stats.PassengerCaptured()
		}
		alighted++
	}
	p.passengers = nil
	return 0, alighted
}

// SyncPassengers moves carried passengers along with the player.
func (p *Player) SyncPassengers(city *City) {
	loc := p.Location()
	for _, id := range p.passengers {
		if passenger := city.Actor(id); passenger != nil {
			passenger.Move(loc)
			city.ActorMoved(passenger)
		}
	}
}
