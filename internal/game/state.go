package game

import "encoding/json"

type CityState int

const (
	StateInit CityState = iota
	StateGame
)

func (s CityState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateGame:
		return "game"
	default:
		return "unknown"
	}
}

type SessionState int

const (
	SessionWaiting SessionState = iota
	SessionPlaying
	SessionEnded
)

func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s SessionState) String() string {
	switch s {
	case SessionWaiting:
		return "waiting"
	case SessionPlaying:
		return "playing"
	case SessionEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason describes why a game finished.
type EndReason int

const (
	EndNone EndReason = iota
	EndCaught
	EndTimeUp
	EndGoalReached
	EndQuit
)

func (r EndReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r EndReason) String() string {
	switch r {
	case EndCaught:
		return "caught"
	case EndTimeUp:
		return "time_up"
	case EndGoalReached:
		return "goal_reached"
	case EndQuit:
		return "quit"
	default:
		return "none"
	}
}

type GameMode int

const (
	ModeTimeGoal GameMode = iota
	ModePassengerGoal
)

func (m GameMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m GameMode) String() string {
	switch m {
	case ModeTimeGoal:
		return "time"
	case ModePassengerGoal:
		return "passengers"
	default:
		return "unknown"
	}
}

// ParseGameMode maps a mode name to a GameMode. Unknown names fall back to ModeTimeGoal.
func ParseGameMode(s string) GameMode {
	if s == "passengers" {
		return ModePassengerGoal
	}
	return ModeTimeGoal
}
