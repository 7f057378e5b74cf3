package pomodoro

import "errors"

var (
	ErrSessionActive     = errors.New("a session is already active")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrNoSession         = errors.New("no active session")
	ErrInvalidPhase      = errors.New("invalid phase")
)
