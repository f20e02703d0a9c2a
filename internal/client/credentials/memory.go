package credentials

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu     sync.Mutex
	cred   *Credential
	secure bool
	now    func() time.Time
}

func NewMemoryStore(secure bool) *MemoryStore {
	return &MemoryStore{secure: secure, now: time.Now}
}

// WithClock replaces the time source. It returns the store for chaining.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Get(_ context.Context) (Credential, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cred == nil {
		return Credential{}, false
	}
	if m.cred.Expired(m.now()) {
		m.cred = nil
		return Credential{}, false
	}
	return *m.cred, true
}

func (m *MemoryStore) Set(_ context.Context, token string, ttl time.Duration) {
	c := newCredential(token, ttl, m.secure, m.now())

	m.mu.Lock()
	m.cred = &c
	m.mu.Unlock()
}

func (m *MemoryStore) Clear(_ context.Context) {
	m.mu.Lock()
	m.cred = nil
	m.mu.Unlock()
}
