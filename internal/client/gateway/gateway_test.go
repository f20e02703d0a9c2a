package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dmitrijs2005/gophnotes/internal/client/credentials"
	"github.com/dmitrijs2005/gophnotes/internal/client/gateway/mocks"
	"github.com/dmitrijs2005/gophnotes/internal/client/navigation"
)

type fixture struct {
	gw    *Gateway
	state *AuthSessionState
	store *credentials.MemoryStore
	srv   *httptest.Server
}

func newFixture(t *testing.T, r chi.Router, opts ...Option) *fixture {
	t.Helper()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := credentials.NewMemoryStore(false)
	state := NewAuthSessionState(store)
	gw, err := New(srv.URL+"/api", state, opts...)
	require.NoError(t, err)

	return &fixture{gw: gw, state: state, store: store, srv: srv}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	state := NewAuthSessionState(credentials.NewMemoryStore(false))

	_, err := New("not a url", state)
	assert.Error(t, err)

	_, err = New("://missing-scheme", state)
	assert.Error(t, err)
}

func TestGateway_Success(t *testing.T) {
	var seen http.Header
	r := chi.NewRouter()
	r.Get("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]string{"firstName": "Ava"}})
	})

	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	nav := mocks.NewMockNavigator(ctrl)

	f := newFixture(t, r, WithNotifier(notifier), WithNavigator(nav))
	ctx := context.Background()
	f.store.Set(ctx, "tok-1", time.Hour)
	f.state.SetDefaultHeader("X-Client", "gophnotes")

	var out struct {
		User struct {
			FirstName string `json:"firstName"`
		} `json:"user"`
	}
	err := f.gw.Do(ctx, &Request{Method: http.MethodGet, Path: "/user/profile", Out: &out})
	require.NoError(t, err)

	assert.Equal(t, "Ava", out.User.FirstName)
	assert.Equal(t, "Bearer tok-1", seen.Get(HeaderAuthorization))
	assert.Equal(t, "gophnotes", seen.Get("X-Client"))
	assert.Equal(t, ContentTypeJSON, seen.Get(HeaderAccept))
	_, err = uuid.Parse(seen.Get(HeaderRequestID))
	assert.NoError(t, err)
}

func TestGateway_JSONBodyAndQuery(t *testing.T) {
	var (
		gotBody  map[string]string
		gotQuery string
		gotCT    string
	)
	r := chi.NewRouter()
	r.Post("/api/ai/enhance-text", func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get(HeaderContentType)
		gotQuery = r.URL.Query().Get("mode")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	})

	f := newFixture(t, r)
	err := f.gw.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/ai/enhance-text",
		Query:  map[string][]string{"mode": {"fast"}},
		Body:   map[string]string{"text": "hello"},
		Out:    &struct{}{},
	})
	require.NoError(t, err)

	assert.Equal(t, ContentTypeJSON, gotCT)
	assert.Equal(t, "fast", gotQuery)
	assert.Equal(t, map[string]string{"text": "hello"}, gotBody)
}

func TestGateway_ReaderBody(t *testing.T) {
	var gotCT, gotBody string
	r := chi.NewRouter()
	r.Patch("/api/user/avatar", func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get(HeaderContentType)
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		writeJSON(w, http.StatusOK, map[string]string{})
	})

	f := newFixture(t, r)
	err := f.gw.Do(context.Background(), &Request{
		Method:      http.MethodPatch,
		Path:        "/user/avatar",
		Body:        strings.NewReader("raw-bytes"),
		ContentType: "multipart/form-data; boundary=x",
	})
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data; boundary=x", gotCT)
	assert.Equal(t, "raw-bytes", gotBody)
}

func TestGateway_RequestHeaderOverridesDefault(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Get("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Trace")
		writeJSON(w, http.StatusOK, []any{})
	})

	f := newFixture(t, r)
	f.state.SetDefaultHeader("X-Trace", "default")

	err := f.gw.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/entries",
		Header: http.Header{"X-Trace": {"override"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "override", got)
}

func TestGateway_Unauthorized(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
	})

	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	nav := mocks.NewMockNavigator(ctrl)
	nav.EXPECT().Navigate(gomock.Any(), LoginPath, true).Return(true).Times(1)

	f := newFixture(t, r, WithNotifier(notifier), WithNavigator(nav))
	ctx := context.Background()
	f.store.Set(ctx, "stale", time.Hour)
	f.state.SetBearer("stale")

	var listened atomic.Int32
	f.state.OnUnauthorized(func(context.Context) { listened.Add(1) })

	err := f.gw.Do(ctx, &Request{Method: http.MethodGet, Path: "/entries"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Token expired", msg)

	_, ok = f.store.Get(ctx)
	assert.False(t, ok, "credential must be cleared")
	assert.Empty(t, f.state.DefaultHeaders().Get(HeaderAuthorization))
	assert.Equal(t, int32(1), listened.Load())
}

func TestGateway_SilentUnauthorized(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	ctrl := gomock.NewController(t)
	// No expectations: any notification or navigation fails the test.
	notifier := mocks.NewMockNotifier(ctrl)
	nav := mocks.NewMockNavigator(ctrl)

	f := newFixture(t, r, WithNotifier(notifier), WithNavigator(nav))
	ctx := context.Background()
	f.store.Set(ctx, "stale", time.Hour)

	err := f.gw.Do(ctx, &Request{Method: http.MethodGet, Path: "/user/profile", Silent: true})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, ok := f.store.Get(ctx)
	assert.False(t, ok)
}

func TestGateway_ConcurrentUnauthorizedRedirectOnce(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	r.Get("/api/entries/trash", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	router := navigation.NewRouter("/dashboard", nil)
	f := newFixture(t, r, WithNavigator(router))
	ctx := context.Background()
	f.store.Set(ctx, "tok", time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, p := range []string{"/entries", "/entries/trash"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = f.gw.Do(ctx, &Request{Method: http.MethodGet, Path: p})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
	assert.Equal(t, LoginPath, router.Current())
	assert.Equal(t, 1, router.Redirects())
	_, ok := f.store.Get(ctx)
	assert.False(t, ok)
}

func TestGateway_UnauthorizedForReplacedCredential(t *testing.T) {
	release := make(chan struct{})
	sent := make(chan struct{})
	r := chi.NewRouter()
	r.Get("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		close(sent)
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})

	ctrl := gomock.NewController(t)
	// No expectations: the session was replaced, so there is nothing to react to.
	notifier := mocks.NewMockNotifier(ctrl)
	nav := mocks.NewMockNavigator(ctrl)

	f := newFixture(t, r, WithNotifier(notifier), WithNavigator(nav))
	ctx := context.Background()
	f.state.Install(ctx, "old", time.Hour)

	var listened atomic.Int32
	f.state.OnUnauthorized(func(context.Context) { listened.Add(1) })

	errc := make(chan error, 1)
	go func() {
		errc <- f.gw.Do(ctx, &Request{Method: http.MethodGet, Path: "/entries"})
	}()
	<-sent
	f.state.Install(ctx, "fresh", time.Hour)
	close(release)

	assert.ErrorIs(t, <-errc, ErrUnauthorized)

	cred, ok := f.store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "fresh", cred.Token)
	assert.Equal(t, "Bearer fresh", f.state.DefaultHeaders().Get(HeaderAuthorization))
	assert.Zero(t, listened.Load())
}

func TestGateway_ValidationFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "Validation failed",
			"errors":  map[string]string{"title": "Title is required"},
		})
	})

	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	nav := mocks.NewMockNavigator(ctrl)

	f := newFixture(t, r, WithNotifier(notifier), WithNavigator(nav))
	err := f.gw.Do(context.Background(), &Request{Method: http.MethodPost, Path: "/entries", Body: map[string]string{}})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, map[string]string{"title": "Title is required"}, FieldErrors(err))
}

func TestFieldErrors_ListForm(t *testing.T) {
	err := &Error{
		Class: ValidationFailure,
		Body:  []byte(`{"errors":[{"path":"email","msg":"Invalid email"},{"field":"password","message":"Too short"}]}`),
	}
	assert.Equal(t, map[string]string{"email": "Invalid email", "password": "Too short"}, FieldErrors(err))

	assert.Nil(t, FieldErrors(errors.New("plain")))
	assert.Nil(t, FieldErrors(&Error{Class: ServerError, Body: err.Body}))
}

func TestGateway_ServerError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantMsg string
	}{
		{name: "server message", status: http.StatusInternalServerError, body: map[string]string{"message": "Database unavailable"}, wantMsg: "Database unavailable"},
		{name: "fallback", status: http.StatusBadGateway, body: "<html>", wantMsg: MsgServerFallback},
		{name: "not found", status: http.StatusNotFound, body: map[string]string{"message": "Entry not found"}, wantMsg: "Entry not found"},
		{name: "forbidden", status: http.StatusForbidden, body: map[string]string{}, wantMsg: MsgServerFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/api/entry/{id}", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			ctrl := gomock.NewController(t)
			notifier := mocks.NewMockNotifier(ctrl)
			notifier.EXPECT().Error(gomock.Any(), tt.wantMsg).Times(1)

			f := newFixture(t, r, WithNotifier(notifier))
			err := f.gw.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/entry/42"})

			assert.ErrorIs(t, err, ErrServer)
			var ge *Error
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, tt.status, ge.Status)
			assert.True(t, ge.Sent)
		})
	}
}

func TestGateway_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Error(gomock.Any(), MsgNetworkFailure).Times(1)

	state := NewAuthSessionState(credentials.NewMemoryStore(false))
	gw, err := New(baseURL, state, WithNotifier(notifier))
	require.NoError(t, err)

	err = gw.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/entries"})
	assert.ErrorIs(t, err, ErrNetwork)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.True(t, ge.Sent)
	assert.Zero(t, ge.Status)
}

func TestGateway_SetupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Error(gomock.Any(), MsgUnexpectedError).Times(1)

	f := newFixture(t, chi.NewRouter(), WithNotifier(notifier))
	err := f.gw.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/entries",
		Body:   map[string]any{"bad": make(chan int)},
	})

	assert.ErrorIs(t, err, ErrNetwork)
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.False(t, ge.Sent)
}

func TestGateway_Timeout(t *testing.T) {
	release := make(chan struct{})
	r := chi.NewRouter()
	r.Get("/api/analytics/dashboard", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	t.Cleanup(func() { close(release) })

	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Error(gomock.Any(), MsgNetworkFailure).Times(1)

	f := newFixture(t, r, WithNotifier(notifier), WithTimeout(50*time.Millisecond))

	started := time.Now()
	err := f.gw.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/analytics/dashboard"})
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestGateway_DecodeFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
	})

	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Error(gomock.Any(), MsgUnexpectedError).Times(1)

	f := newFixture(t, r, WithNotifier(notifier))
	var out []any
	err := f.gw.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/entries", Out: &out})
	assert.ErrorIs(t, err, ErrServer)
}
