package cli

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
)

// fakeSession is a sessionAPI with a fixed state. While Initializing, the
// first call to Ready resolves it to the state held in resolveTo.
type fakeSession struct {
	mu        sync.Mutex
	state     session.State
	resolveTo session.State
	user      *models.User
	readyHits int
	logouts   int
	refreshes int
	// refreshed replaces user on RefreshUser when set.
	refreshed *models.User
}

func newFakeSession(s session.State) *fakeSession {
	f := &fakeSession{state: s, resolveTo: s}
	if s == session.Authenticated {
		f.user = &models.User{ID: "u-1", FirstName: "Ava", LastName: "Lind", Username: "ava", Email: "ava@example.com"}
	}
	return f
}

func (f *fakeSession) Start(context.Context) {}

func (f *fakeSession) Ready() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readyHits++
	f.state = f.resolveTo
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (f *fakeSession) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := session.Snapshot{State: f.state, Loading: f.state == session.Initializing}
	if f.user != nil {
		u := *f.user
		s.User = &u
	}
	return s
}

func (f *fakeSession) State() session.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSession) Login(context.Context, string, string, string, string) error { return nil }

func (f *fakeSession) Register(context.Context, models.Registration, string, string) error {
	return nil
}

func (f *fakeSession) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.state = session.Anonymous
	f.user = nil
}

func (f *fakeSession) RefreshUser(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	if f.refreshed != nil && f.user != nil {
		u := *f.refreshed
		f.user = &u
	}
}

func (f *fakeSession) UpdateUser(p models.UserPatch) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user != nil {
		u := f.user.Merge(p)
		f.user = &u
	}
}
