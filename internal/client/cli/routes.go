package cli

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/gophnotes/internal/client/guard"
)

// Params carries the URL parameters of a matched route.
type Params map[string]string

type viewFunc func(ctx context.Context, p Params) error

type route struct {
	pattern string
	title   string
	variant guard.Variant
	view    viewFunc
}

// routeTable matches view paths with chi's tree router. Views are not HTTP
// handlers; the mux only stores patterns and resolves parameters.
type routeTable struct {
	mux      *chi.Mux
	routes   map[string]route
	notFound route
}

func newRouteTable(notFound route) *routeTable {
	return &routeTable{
		mux:      chi.NewMux(),
		routes:   make(map[string]route),
		notFound: notFound,
	}
}

func (t *routeTable) add(r route) {
	t.mux.Get(r.pattern, http.NotFound)
	t.routes[r.pattern] = r
}

// resolve returns the route for path, falling back to the not-found route.
func (t *routeTable) resolve(path string) (route, Params) {
	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, path) {
		return t.notFound, Params{"path": path}
	}

	r, ok := t.routes[rctx.RoutePattern()]
	if !ok {
		return t.notFound, Params{"path": path}
	}

	params := make(Params, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return r, params
}

func (t *routeTable) list() []route {
	out := make([]route, 0, len(t.routes))
	_ = chi.Walk(t.mux, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if r, ok := t.routes[pattern]; ok {
			out = append(out, r)
		}
		return nil
	})
	return out
}

func (a *App) buildRoutes() *routeTable {
	t := newRouteTable(route{pattern: "*", title: "Not found", variant: guard.Public, view: a.viewNotFound})

	public := []route{
		{"/", "Home", guard.Public, a.viewLanding},
	}
	anonymous := []route{
		{"/login", "Log in", guard.RequireAnonymous, a.viewLogin},
		{"/register", "Register", guard.RequireAnonymous, a.viewRegister},
	}
	authenticated := []route{
		{"/dashboard", "My notes", guard.RequireAuthenticated, a.viewDashboard},
		{"/new-entry", "New note", guard.RequireAuthenticated, a.viewNewEntry},
		{"/entry/{id}", "Note", guard.RequireAuthenticated, a.viewEntry},
		{"/entry/{id}/edit", "Edit note", guard.RequireAuthenticated, a.viewEditEntry},
		{"/entry/{id}/delete", "Move note to trash", guard.RequireAuthenticated, a.viewDeleteEntry},
		{"/entry/{id}/share", "Share note", guard.RequireAuthenticated, a.viewShareEntry},
		{"/entry/{id}/shares", "Note shares", guard.RequireAuthenticated, a.viewEntryShares},
		{"/share/{id}/remove", "Remove share", guard.RequireAuthenticated, a.viewRemoveShare},
		{"/trash", "Trash", guard.RequireAuthenticated, a.viewTrash},
		{"/trash/{id}/restore", "Restore note", guard.RequireAuthenticated, a.viewRestoreEntry},
		{"/my-shared-notes", "Shared notes", guard.RequireAuthenticated, a.viewMySharedNotes},
		{"/analytics", "Analytics", guard.RequireAuthenticated, a.viewAnalytics},
		{"/ai-assistant", "AI assistant", guard.RequireAuthenticated, a.viewAIAssistant},
		{"/profile", "Profile", guard.RequireAuthenticated, a.viewProfile},
		{"/profile/password", "Change password", guard.RequireAuthenticated, a.viewChangePassword},
		{"/profile/avatar", "Change avatar", guard.RequireAuthenticated, a.viewChangeAvatar},
		{"/session", "Session", guard.RequireAuthenticated, a.viewSession},
		{"/backup", "Backup", guard.RequireAuthenticated, a.viewBackup},
		{"/logout", "Log out", guard.RequireAuthenticated, a.viewLogout},
	}

	for _, group := range [][]route{public, anonymous, authenticated} {
		for _, r := range group {
			t.add(r)
		}
	}
	return t
}
