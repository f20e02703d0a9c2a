// Package guard decides whether a view may render in the current session
// state.
package guard

import (
	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
)

// Variant is the access requirement of a route.
type Variant int

const (
	// Public routes render in every state.
	Public Variant = iota
	RequireAuthenticated
	RequireAnonymous
)

func (v Variant) String() string {
	switch v {
	case Public:
		return "public"
	case RequireAuthenticated:
		return "require_authenticated"
	case RequireAnonymous:
		return "require_anonymous"
	default:
		return "unknown"
	}
}

type Outcome int

const (
	Render Outcome = iota
	Placeholder
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Placeholder:
		return "placeholder"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of evaluating a guard. Target and Replace are set
// only for Redirect.
type Decision struct {
	Outcome Outcome
	Target  string
	Replace bool
}

// Evaluate is a pure function of the variant and the session state.
func Evaluate(v Variant, s session.State) Decision {
	if v == Public {
		return Decision{Outcome: Render}
	}
	if s == session.Initializing {
		return Decision{Outcome: Placeholder}
	}

	switch v {
	case RequireAuthenticated:
		if s == session.Authenticated {
			return Decision{Outcome: Render}
		}
		return Decision{Outcome: Redirect, Target: gateway.LoginPath, Replace: true}
	case RequireAnonymous:
		if s == session.Anonymous {
			return Decision{Outcome: Render}
		}
		return Decision{Outcome: Redirect, Target: gateway.DashboardPath, Replace: true}
	}
	// An unknown variant never renders.
	return Decision{Outcome: Redirect, Target: gateway.LoginPath, Replace: true}
}
