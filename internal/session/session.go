package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/tramchase/internal/game"
	"github.com/ugaemi/tramchase/internal/ws"
)

// Key is a steering key held down by the controlling client.
type Key string

const (
	KeyForward  Key = "w"
	KeyBackward Key = "s"
	KeyLeft     Key = "a"
	KeyRight    Key = "d"
)

// keyOrder is the order held keys are replayed in on every movement tick.
var keyOrder = []Key{KeyForward, KeyBackward, KeyLeft, KeyRight}

// ParseKey accepts upper or lower case WASD.
func ParseKey(s string) (Key, error) {
	switch s {
	case "w", "W":
		return KeyForward, nil
	case "s", "S":
		return KeyBackward, nil
	case "a", "A":
		return KeyLeft, nil
	case "d", "D":
		return KeyRight, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// Settings fixes everything a session needs before its city is built.
type Settings struct {
	Mode        game.GameMode
	PlayingTime time.Duration
	StartClock  time.Time
	Basic       game.MapImage
	Large       game.MapImage
	Population  game.Population
}

// Session is one running game: a city, the player, the police chasing it and
// the clients watching. One client steers; the rest only receive updates.
type Session struct {
	ID        string
	Code      string
	Mode      game.GameMode
	CreatedAt time.Time

	settings Settings
	state    game.SessionState
	reason   game.EndReason

	city   *game.City
	player *game.Player
	police *game.Police
	stats  game.Statistics
	held   map[Key]bool

	// remaining counts down in the time mode, elapsed counts up in the passenger mode.
	remaining time.Duration
	elapsed   time.Duration

	controller *ws.Client
	spectators map[string]*ws.Client

	stopCh chan struct{}
	mu     sync.Mutex
}

// New creates a session in the waiting state. Its city is empty until Prepare.
func New(code string, settings Settings) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		Code:       code,
		Mode:       settings.Mode,
		CreatedAt:  time.Now(),
		settings:   settings,
		state:      game.SessionWaiting,
		player:     game.NewPlayer(),
		police:     game.NewPolice(),
		held:       make(map[Key]bool),
		spectators: make(map[string]*ws.Client),
	}
	s.city = game.NewCity(&broadcaster{s: s})
	return s
}

// State returns the session lifecycle state.
func (s *Session) State() game.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetController makes client the steering client, replacing any previous one.
func (s *Session) SetController(client *ws.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller = client
	delete(s.spectators, client.ID)
	s.broadcastLocked(s.infoMessageLocked())
}

// AddSpectator attaches a read-only client and replays the current world to it.
func (s *Session) AddSpectator(client *ws.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spectators[client.ID] = client
	if s.state != game.SessionWaiting {
		s.replayWorldLocked(client)
	}
	s.broadcastLocked(s.infoMessageLocked())
}

// RemoveClient detaches a client. When the controlling client leaves a game in
// progress, the game ends as quit. Returns whether any client is left.
func (s *Session) RemoveClient(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller != nil && s.controller.ID == clientID {
		s.controller = nil
		s.endLocked(game.EndQuit)
	}
	delete(s.spectators, clientID)

	if s.controller == nil && len(s.spectators) == 0 {
		return false
	}
	s.broadcastLocked(s.infoMessageLocked())
	return true
}

// HasClient reports whether the client steers or watches this session.
func (s *Session) HasClient(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controller != nil && s.controller.ID == clientID {
		return true
	}
	_, ok := s.spectators[clientID]
	return ok
}

// Prepare builds the city: background, clock, tram line and population.
// On success the session is playing; the loop is started with StartLoop.
func (s *Session) Prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != game.SessionWaiting {
		return ErrAlreadyStarted
	}
	if err := s.city.SetBackground(s.settings.Basic, s.settings.Large); err != nil {
		return err
	}
	s.city.SetClock(s.settings.StartClock)
	s.city.AddTramStops()
	if err := game.Populate(s.city, s.settings.Population); err != nil {
		return fmt.Errorf("populate city: %w", err)
	}
	if err := s.city.StartGame(); err != nil {
		return err
	}

	s.state = game.SessionPlaying
	s.remaining = s.settings.PlayingTime
	s.stopCh = make(chan struct{})
	s.broadcastLocked(s.stateMessageLocked())

	slog.Info("game prepared", "session", s.Code, "mode", s.Mode.String(),
		"stops", len(s.city.Stops()), "actors", s.city.ActorCount())
	return nil
}

// StartLoop starts the tick goroutine. Must be called after Prepare.
func (s *Session) StartLoop() {
	s.mu.Lock()
	stopCh := s.stopCh
	s.mu.Unlock()
	if stopCh == nil {
		return
	}
	go s.gameLoop(stopCh)
}

// End finishes the game for the given reason. Ending twice has no effect.
func (s *Session) End(reason game.EndReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endLocked(reason)
}

// Close ends the game and releases the city.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endLocked(game.EndQuit)
	s.city.Close()
	s.controller = nil
	clear(s.spectators)
}

// KeyDown marks a steering key as held.
func (s *Session) KeyDown(clientID string, key Key) error {
	return s.setKey(clientID, key, true)
}

// KeyUp releases a steering key.
func (s *Session) KeyUp(clientID string, key Key) error {
	return s.setKey(clientID, key, false)
}

func (s *Session) setKey(clientID string, key Key, down bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkControlLocked(clientID); err != nil {
		return err
	}
	if down {
		s.held[key] = true
	} else {
		delete(s.held, key)
	}
	return nil
}

// SelectType switches the player between walker, biker and tram.
func (s *Session) SelectType(clientID string, t game.PlayerType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkControlLocked(clientID); err != nil {
		return err
	}
	s.player.SetType(t)
	s.player.SyncPassengers(s.city)
	s.broadcastLocked(s.stateMessageLocked())
	slog.Debug("player type selected", "session", s.Code, "type", t.String())
	return nil
}

// ActionResult reports what the action button did.
type ActionResult struct {
	Type      game.PlayerType `json:"type"`
	Destroyed int             `json:"destroyed"`
	Persuaded int             `json:"persuaded"`
	Boarded   int             `json:"boarded"`
	Alighted  int             `json:"alighted"`
	Stats     game.Statistics `json:"stats"`
}

// Action performs the player type's action: walkers destroy nearby buses,
// bikers send nearby passengers to the tram, the tram loads or unloads.
func (s *Session) Action(clientID string) (ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkControlLocked(clientID); err != nil {
		return ActionResult{}, err
	}

	res := ActionResult{Type: s.player.Type()}
	var err error
	switch s.player.Type() {
	case game.TypeWalker:
		res.Destroyed, err = s.player.DestroyBus(s.city)
		for range res.Destroyed {
			s.stats.BusDestroyed()
		}
	case game.TypeBiker:
		res.Persuaded = s.player.PersuadePassengers(s.city)
	case game.TypeTram:
		if !s.player.CanEnterOrExit(s.city) {
			return ActionResult{}, ErrActionUnavailable
		}
		res.Boarded, res.Alighted = s.player.EnterOrExitPassengers(s.city, &s.stats)
	}
	res.Stats = s.stats

	slog.Debug("action", "session", s.Code, "type", res.Type.String(),
		"destroyed", res.Destroyed, "persuaded", res.Persuaded,
		"boarded", res.Boarded, "alighted", res.Alighted)

	if s.Mode == game.ModePassengerGoal && s.stats.GoalReached() {
		s.endLocked(game.EndGoalReached)
	}
	return res, err
}

// Info is a read-only snapshot for the HTTP API.
type Info struct {
	ID         string            `json:"id"`
	Code       string            `json:"code"`
	Mode       game.GameMode     `json:"mode"`
	State      game.SessionState `json:"state"`
	Reason     game.EndReason    `json:"reason"`
	Stats      game.Statistics   `json:"stats"`
	Clock      string            `json:"clock"`
	Spectators int               `json:"spectators"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Info returns a snapshot of the session.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.infoLocked()
}

func (s *Session) infoLocked() Info {
	return Info{
		ID:         s.ID,
		Code:       s.Code,
		Mode:       s.Mode,
		State:      s.state,
		Reason:     s.reason,
		Stats:      s.stats,
		Clock:      s.city.Clock().Format("15:04:05"),
		Spectators: len(s.spectators),
		CreatedAt:  s.CreatedAt,
	}
}

func (s *Session) checkControlLocked(clientID string) error {
	if s.controller == nil || s.controller.ID != clientID {
		return ErrNotController
	}
	if s.state != game.SessionPlaying || s.city.IsGameOver() {
		return ErrNotPlaying
	}
	return nil
}

// endLocked stops the loop and tells every client. Caller must hold s.mu.
func (s *Session) endLocked(reason game.EndReason) {
	if s.state == game.SessionEnded {
		return
	}
	wasPlaying := s.state == game.SessionPlaying

	s.state = game.SessionEnded
	s.reason = reason
	s.city.GameIsOver()
	clear(s.held)
	if s.stopCh != nil {
		close(s.stopCh)
	}
	if !wasPlaying {
		return
	}

	msg, _ := ws.NewMessage(ws.TypeGameOver, gameOverMessage{
		Reason: reason,
		Stats:  s.stats,
	})
	s.broadcastLocked(msg)

	slog.Info("game ended", "session", s.Code, "reason", reason.String(), "score", s.stats.Score)
}

// broadcastLocked sends msg to every client. Sends never block, so holding
// s.mu here is fine. Caller must hold s.mu.
func (s *Session) broadcastLocked(msg ws.Message) {
	if s.controller != nil {
		s.controller.SendMessage(msg)
	}
	for _, c := range s.spectators {
		c.SendMessage(msg)
	}
}

// replayWorldLocked sends the whole current map to a late joiner.
func (s *Session) replayWorldLocked(client *ws.Client) {
	bg, _ := ws.NewMessage(ws.TypeBackgroundReady, backgroundMessage{
		Basic: s.settings.Basic,
		Large: s.settings.Large,
	})
	client.SendMessage(bg)
	for _, tram := range []*game.Stop{s.city.TramStop1(), s.city.TramStop2()} {
		if tram != nil {
			client.SendMessage(newStopMessage(tram, true))
		}
	}
	for _, stop := range s.city.Stops() {
		client.SendMessage(newStopMessage(stop, false))
	}
	for _, actor := range s.city.Actors() {
		client.SendMessage(newActorMessage(ws.TypeActorPlaced, actor))
	}
	client.SendMessage(s.stateMessageLocked())
}

type sessionInfoMessage struct {
	ID         string            `json:"id"`
	Code       string            `json:"code"`
	Mode       game.GameMode     `json:"mode"`
	State      game.SessionState `json:"state"`
	Controlled bool              `json:"controlled"`
	Spectators int               `json:"spectators"`
}

func (s *Session) infoMessageLocked() ws.Message {
	msg, _ := ws.NewMessage(ws.TypeSessionInfo, sessionInfoMessage{
		ID:         s.ID,
		Code:       s.Code,
		Mode:       s.Mode,
		State:      s.state,
		Controlled: s.controller != nil,
		Spectators: len(s.spectators),
	})
	return msg
}

type gameOverMessage struct {
	Reason game.EndReason  `json:"reason"`
	Stats  game.Statistics `json:"stats"`
}

type playerState struct {
	X              int             `json:"x"`
	Y              int             `json:"y"`
	Rotation       float64         `json:"rotation"`
	Type           game.PlayerType `json:"type"`
	Passengers     []game.ActorID  `json:"passengers"`
	CanEnterOrExit bool            `json:"can_enter_or_exit"`
}

type policeState struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Rotation float64 `json:"rotation"`
}

type gameStateMessage struct {
	Player        playerState     `json:"player"`
	Police        policeState     `json:"police"`
	Stats         game.Statistics `json:"stats"`
	Clock         string          `json:"clock"`
	RemainingTime float64         `json:"remaining_time"`
	ElapsedTime   float64         `json:"elapsed_time"`
}

func (s *Session) stateMessageLocked() ws.Message {
	msg, _ := ws.NewMessage(ws.TypeGameState, gameStateMessage{
		Player: playerState{
			X:              s.player.X(),
			Y:              s.player.Y(),
			Rotation:       s.player.Rotation(),
			Type:           s.player.Type(),
			Passengers:     s.player.Passengers(),
			CanEnterOrExit: s.player.CanEnterOrExit(s.city),
		},
		Police: policeState{
			X:        s.police.X(),
			Y:        s.police.Y(),
			Rotation: s.police.Rotation(),
		},
		Stats:         s.stats,
		Clock:         s.city.Clock().Format("15:04:05"),
		RemainingTime: s.remaining.Seconds(),
		ElapsedTime:   s.elapsed.Seconds(),
	})
	return msg
}

// gameLoop drives the city on two cadences: held keys every MoveInterval and
// the playing clock every ClockInterval.
func (s *Session) gameLoop(stopCh chan struct{}) {
	moveTicker := time.NewTicker(game.MoveInterval)
	defer moveTicker.Stop()
	clockTicker := time.NewTicker(game.ClockInterval)
	defer clockTicker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-moveTicker.C:
			s.step()
		case <-clockTicker.C:
			s.clockTick()
		}
	}
}

// step replays the held keys once and broadcasts the new state.
func (s *Session) step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != game.SessionPlaying {
		return
	}
	for _, key := range keyOrder {
		if !s.held[key] || s.city.IsGameOver() {
			continue
		}
		switch key {
		case KeyForward:
			s.movePlayerLocked(1)
		case KeyBackward:
			s.movePlayerLocked(-1)
		case KeyLeft:
			s.rotatePlayerLocked(game.RotationStep)
		case KeyRight:
			s.rotatePlayerLocked(-game.RotationStep)
		}
	}
	if s.state == game.SessionPlaying {
		s.broadcastLocked(s.stateMessageLocked())
	}
}

// movePlayerLocked moves the player, then lets the police aim and close in.
// The police steps even when the player is blocked by a border.
func (s *Session) movePlayerLocked(dir int) {
	if s.player.Move(dir) {
		s.player.SyncPassengers(s.city)
	}
	if s.police.UpdateRotation(s.player.X(), s.player.Y()) {
		s.endLocked(game.EndCaught)
		return
	}
	s.police.Approach()
}

// The tram runs on rails and cannot turn.
func (s *Session) rotatePlayerLocked(deg float64) {
	if s.player.Type() == game.TypeTram {
		return
	}
	s.player.ChangeRotation(deg, true)
}

// clockTick advances the in-game clock and the playing time.
func (s *Session) clockTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != game.SessionPlaying {
		return
	}
	s.city.AdvanceClock(game.ClockInterval)

	switch s.Mode {
	case game.ModeTimeGoal:
		s.remaining -= game.ClockInterval
		if s.remaining <= 0 {
			s.remaining = 0
			s.endLocked(game.EndTimeUp)
		}
	case game.ModePassengerGoal:
		s.elapsed += game.ClockInterval
	}
}

