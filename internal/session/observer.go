package session

import (
	"github.com/ugaemi/tramchase/internal/game"
	"github.com/ugaemi/tramchase/internal/ws"
)

type backgroundMessage struct {
	Basic game.MapImage `json:"basic"`
	Large game.MapImage `json:"large"`
}

type stopMessage struct {
	ID         game.StopID    `json:"id"`
	Name       string         `json:"name"`
	X          int            `json:"x"`
	Y          int            `json:"y"`
	Tram       bool           `json:"tram"`
	Passengers []game.ActorID `json:"passengers"`
}

type actorMessage struct {
	ID   game.ActorID   `json:"id"`
	Kind game.ActorKind `json:"kind"`
	X    int            `json:"x"`
	Y    int            `json:"y"`
}

func newStopMessage(stop *game.Stop, tram bool) ws.Message {
	loc := stop.Location()
	msg, _ := ws.NewMessage(ws.TypeStopPlaced, stopMessage{
		ID:         stop.ID,
		Name:       stop.Name,
		X:          loc.X(),
		Y:          loc.Y(),
		Tram:       tram,
		Passengers: stop.Passengers(),
	})
	return msg
}

func newActorMessage(msgType string, actor *game.Actor) ws.Message {
	loc := actor.Location()
	msg, _ := ws.NewMessage(msgType, actorMessage{
		ID:   actor.ID,
		Kind: actor.Kind,
		X:    loc.X(),
		Y:    loc.Y(),
	})
	return msg
}

// broadcaster forwards city notifications to every client of a session.
// The city calls it while the session mutex is held.
type broadcaster struct {
	s *Session
}

var _ game.Observer = (*broadcaster)(nil)

func (b *broadcaster) BackgroundReady(basic, large game.MapImage) {
	msg, _ := ws.NewMessage(ws.TypeBackgroundReady, backgroundMessage{Basic: basic, Large: large})
	b.s.broadcastLocked(msg)
}

// StopPlaced rejects stops that would be drawn outside the scene.
func (b *broadcaster) StopPlaced(stop *game.Stop) error {
	if !stop.Location().InBounds() {
		return errOutsideScene
	}
	b.s.broadcastLocked(newStopMessage(stop, false))
	return nil
}

func (b *broadcaster) TramStopPlaced(stop *game.Stop) {
	b.s.broadcastLocked(newStopMessage(stop, true))
}

func (b *broadcaster) ActorPlaced(actor *game.Actor) {
	b.s.broadcastLocked(newActorMessage(ws.TypeActorPlaced, actor))
}

func (b *broadcaster) ActorMoved(actor *game.Actor) {
	b.s.broadcastLocked(newActorMessage(ws.TypeActorMoved, actor))
}

func (b *broadcaster) ActorRemoved(actor *game.Actor) {
	b.s.broadcastLocked(newActorMessage(ws.TypeActorRemoved, actor))
}
