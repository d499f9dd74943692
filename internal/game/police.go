package game

import "math"

// Police chases the player by heading straight at it every step.
type Police struct {
	north    float64
	east     float64
	rotation float64
	speed    float64
}

// NewPolice creates a police actor at the station.
func NewPolice() *Police {
	return &Police{
		north: PoliceStartNorth,
		east:  PoliceStartEast,
		speed: PoliceSpeed,
	}
}

func (p *Police) Location() Location { return NewLocation(p.north, p.east) }
func (p *Police) IsRemoved() bool    { return false }
func (p *Police) Remove()            {}

func (p *Police) X() int            { return PixelXFromEast(p.east) }
func (p *Police) Y() int            { return PixelYFromNorth(p.north) }
func (p *Police) Rotation() float64 { return p.rotation }
func (p *Police) Speed() float64    { return p.speed }

// SetLocation places the police at loc.
func (p *Police) SetLocation(loc Location) {
	p.north, p.east = loc.North(), loc.East()
}

// UpdateRotation turns the police towards the player's pixel position.
// It returns true when both share the same pixel, meaning the player is caught;
// the rotation is left unchanged in that case.
func (p *Police) UpdateRotation(playerX, playerY int) bool {
	dx := float64(playerX - p.X())
	dy := float64(playerY - p.Y())

	switch {
	case dx == 0 && dy == 0:
		return true
	case dx == 0 && dy > 0:
		p.rotation = 90
	case dx == 0:
		p.rotation = -90
	case dx < 0:
		p.rotation = math.Atan(dy/dx)*180/math.Pi + 180
	default:
		p.rotation = math.Atan(dy/dx) * 180 / math.Pi
	}
	return false
}

// Approach moves the police one step along its heading. A step that would
// leave the map is dropped. Returns whether the police moved.
func (p *Police) Approach() bool {
	north, east, ok := step(p.north, p.east, p.rotation, p.speed)
	if !ok {
		return false
	}
	p.north, p.east = north, east
	return true
}
