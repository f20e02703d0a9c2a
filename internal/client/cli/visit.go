package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/guard"
)

// maxHops bounds redirect chains within one visit.
const maxHops = 8

var ErrRedirectLoop = errors.New("too many redirects")

const placeholderText = "Loading session..."

// Go navigates to path and visits it.
func (a *App) Go(ctx context.Context, path string) error {
	a.Router.Navigate(ctx, path, false)
	return a.Visit(ctx, path)
}

// Back returns to the previous location and visits it.
func (a *App) Back(ctx context.Context) error {
	if !a.Router.Back(ctx) {
		a.printf("Nowhere to go back to.\n")
		return nil
	}
	return a.Visit(ctx, a.Router.Current())
}

// Visit renders the view at path, honouring its guard. It follows redirects
// issued by the guard and navigation performed by the view itself.
func (a *App) Visit(ctx context.Context, path string) error {
	a.Router.TakePending()

	for hop := 0; hop < maxHops; hop++ {
		r, params := a.routes.resolve(path)
		d := guard.Evaluate(r.variant, a.Session.State())
		a.Logger.Debug(ctx, "guard evaluated", "path", path, "variant", r.variant, "outcome", d.Outcome)

		switch d.Outcome {
		case guard.Placeholder:
			a.printf("%s\n", placeholderText)
			select {
			case <-a.Session.Ready():
			case <-ctx.Done():
				return ctx.Err()
			}
			continue

		case guard.Redirect:
			a.Router.Navigate(ctx, d.Target, d.Replace)
			a.Router.TakePending()
			path = d.Target
			continue
		}

		err := r.view(ctx, params)
		if err != nil && !errors.Is(err, ErrCancelled) {
			return fmt.Errorf("%s: %w", r.title, err)
		}

		next, moved := a.Router.TakePending()
		if !moved || next == path {
			return nil
		}
		path = next
	}
	return ErrRedirectLoop
}
