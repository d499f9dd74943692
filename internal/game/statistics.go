package game

// Statistics tracks the score of a single game.
type Statistics struct {
	Score              int `json:"score"`
	BusesDestroyed     int `json:"buses_destroyed"`
	PassengersCaptured int `json:"passengers_captured"`
}

// BusDestroyed records one destroyed bus.
func (s *Statistics) BusDestroyed() {
	s.Score += BusDestroyedPoints
	s.BusesDestroyed++
}

// PassengerCaptured records one passenger delivered to the tram's last stop.
func (s *Statistics) PassengerCaptured() {
	s.Score += PassengerCapturedPoints
	s.PassengersCaptured++
}

// GoalReached reports whether enough passengers have been captured to win.
func (s *Statistics) GoalReached() bool {
	return s.PassengersCaptured >= PassengerGoal
}
