package session

import "errors"

var (
	ErrNotPlaying        = errors.New("session is not playing")
	ErrNotController     = errors.New("only the controlling client may steer")
	ErrUnknownKey        = errors.New("unknown key")
	ErrActionUnavailable = errors.New("action not available here")
	ErrAlreadyStarted    = errors.New("session already started")

	errOutsideScene = errors.New("stop is outside the scene")
)
