package session

import "github.com/dmitrijs2005/gophnotes/internal/client/models"

type State int

const (
	Initializing State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the session at one point in time.
type Snapshot struct {
	State   State
	User    *models.User
	Loading bool
}
