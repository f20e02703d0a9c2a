package gateway

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/credentials"
)

const (
	HeaderAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

// AuthSessionState owns the authorization state shared by every request:
// the credential store, the process-wide default headers, and the listeners
// told when the server rejects the credential.
//
// The session controller is the only component that stores credentials,
// through Install. The gateway only clears them, through Invalidate.
type AuthSessionState struct {
	store credentials.Store

	// swapMu orders credential changes against Invalidate.
	swapMu sync.Mutex

	mu        sync.RWMutex
	headers   http.Header
	listeners []func(ctx context.Context)
}

func NewAuthSessionState(store credentials.Store) *AuthSessionState {
	return &AuthSessionState{
		store:   store,
		headers: make(http.Header),
	}
}

// Credential returns the usable credential, if any.
func (s *AuthSessionState) Credential(ctx context.Context) (credentials.Credential, bool) {
	return s.store.Get(ctx)
}

// SetBearer installs token as the default Authorization header.
func (s *AuthSessionState) SetBearer(token string) {
	s.SetDefaultHeader(HeaderAuthorization, bearerPrefix+token)
}

func (s *AuthSessionState) ClearBearer() {
	s.DeleteDefaultHeader(HeaderAuthorization)
}

func (s *AuthSessionState) SetDefaultHeader(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers.Set(key, value)
}

func (s *AuthSessionState) DeleteDefaultHeader(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers.Del(key)
}

// DefaultHeaders returns a copy of the default headers.
func (s *AuthSessionState) DefaultHeaders() http.Header {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headers.Clone()
}

// OnUnauthorized registers fn to run after every Invalidate.
func (s *AuthSessionState) OnUnauthorized(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Install stores token and makes it the default Authorization header.
func (s *AuthSessionState) Install(ctx context.Context, token string, ttl time.Duration) {
	s.swapMu.Lock()
	defer s.swapMu.Unlock()

	s.store.Set(ctx, token, ttl)
	s.SetBearer(token)
}

// Forget drops the credential and the default Authorization header without
// notifying listeners.
func (s *AuthSessionState) Forget(ctx context.Context) {
	s.swapMu.Lock()
	defer s.swapMu.Unlock()

	s.store.Clear(ctx)
	s.ClearBearer()
}

// Invalidate reacts to the server rejecting rejected, the token a request
// carried ("" when it carried none). If a different credential has been
// installed since, nothing happens and Invalidate reports false. Otherwise
// the credential and default auth header are dropped and listeners run.
// It is safe to call any number of times.
//
// Listeners run while credential changes are held off, so they must not call
// Install, Forget or Invalidate.
func (s *AuthSessionState) Invalidate(ctx context.Context, rejected string) bool {
	s.swapMu.Lock()
	defer s.swapMu.Unlock()

	if cred, ok := s.store.Get(ctx); ok && cred.Token != rejected {
		return false
	}
	s.store.Clear(ctx)

	s.mu.Lock()
	s.headers.Del(HeaderAuthorization)
	listeners := append([]func(context.Context){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx)
	}
	return true
}

// BearerToken returns the token carried by an Authorization header in h.
func BearerToken(h http.Header) string {
	v := h.Get(HeaderAuthorization)
	if !strings.HasPrefix(v, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(v, bearerPrefix)
}
