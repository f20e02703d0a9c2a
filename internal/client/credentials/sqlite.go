package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// Metadata keys. The token itself lives under "token".
const (
	KeyToken     = "token"
	KeyExpiresAt = "token_expires_at"
	KeySameSite  = "token_same_site"
	KeySecure    = "token_secure"
)

var allKeys = []string{KeyToken, KeyExpiresAt, KeySameSite, KeySecure}

var errIncomplete = errors.New("incomplete credential record")

type SQLiteStore struct {
	db     *sql.DB
	secure bool
	now    func() time.Time
	log    logging.Logger
}

type Option func(*SQLiteStore)

func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *SQLiteStore) { s.log = l }
}

// NewSQLiteStore keeps the credential in db's metadata table. secure is
// recorded on every credential written; see SecureTransport.
func NewSQLiteStore(db *sql.DB, secure bool, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{db: db, secure: secure, now: time.Now, log: logging.Discard()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *SQLiteStore) Get(ctx context.Context) (Credential, bool) {
	var (
		c     Credential
		found bool
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		c, found, err = read(ctx, metadata.NewSQLiteRepository(tx))
		return err
	})
	if err != nil {
		s.log.Warn(ctx, "credential unreadable, treating as absent", "error", err)
		if errors.Is(err, errIncomplete) {
			s.Clear(ctx)
		}
		return Credential{}, false
	}
	if !found {
		return Credential{}, false
	}

	if c.Expired(s.now()) {
		s.log.Info(ctx, "stored credential expired", "expires_at", c.ExpiresAt)
		s.Clear(ctx)
		return Credential{}, false
	}
	return c, true
}

func (s *SQLiteStore) Set(ctx context.Context, token string, ttl time.Duration) {
	c := newCredential(token, ttl, s.secure, s.now())

	secure := []byte("0")
	if c.Secure {
		secure = []byte("1")
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).SetMany(ctx, map[string][]byte{
			KeyToken:     []byte(c.Token),
			KeyExpiresAt: []byte(c.ExpiresAt.Format(time.RFC3339Nano)),
			KeySameSite:  []byte(c.SameSite),
			KeySecure:    secure,
		})
	})
	if err != nil {
		s.log.Error(ctx, "failed to persist credential", "error", err)
	}
}

func (s *SQLiteStore) Clear(ctx context.Context) {
	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, allKeys...); err != nil {
		s.log.Error(ctx, "failed to clear credential", "error", err)
	}
}

func read(ctx context.Context, repo metadata.Repository) (Credential, bool, error) {
	values, err := repo.GetMany(ctx, allKeys...)
	if err != nil {
		return Credential{}, false, err
	}
	token := values[KeyToken]
	if len(token) == 0 {
		return Credential{}, false, nil
	}

	rawExpiry := values[KeyExpiresAt]
	expiresAt, err := time.Parse(time.RFC3339Nano, string(rawExpiry))
	if err != nil {
		return Credential{}, false, fmt.Errorf("%w: expiry %q", errIncomplete, rawExpiry)
	}

	return Credential{
		Token:     string(token),
		ExpiresAt: expiresAt,
		SameSite:  string(values[KeySameSite]),
		Secure:    string(values[KeySecure]) == "1",
	}, true, nil
}
