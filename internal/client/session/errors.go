package session

import "errors"

const (
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
)

// Error is returned by Login and Register. Message is what the user sees.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// ErrMissingToken is wrapped when the server accepts a login but returns no token.
var ErrMissingToken = errors.New("login response carries no token")
