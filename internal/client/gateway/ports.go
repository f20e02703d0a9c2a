package gateway

import "context"

// Route paths the gateway and session logic navigate to.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	HomePath      = "/"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports.go -package=mocks

// Notifier shows transient, global user notifications.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Navigator changes the current view. Navigate reports whether the location
// actually changed; navigating to the current location must be a no-op.
type Navigator interface {
	Navigate(ctx context.Context, path string, replace bool) bool
}

type nopNotifier struct{}

func (nopNotifier) Success(context.Context, string) {}
func (nopNotifier) Error(context.Context, string)   {}

type nopNavigator struct{}

func (nopNavigator) Navigate(context.Context, string, bool) bool { return false }
