package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophnotes/internal/client/backup"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/credentials"
	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/navigation"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
)

type viewHarness struct {
	app   *App
	out   *bytes.Buffer
	store *credentials.MemoryStore
	sess  *fakeSession
}

// newViewHarness wires an authenticated App to a test API served by r.
func newViewHarness(t *testing.T, r chi.Router, input ...string) *viewHarness {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	store := credentials.NewMemoryStore(false)
	auth := gateway.NewAuthSessionState(store)
	router := navigation.NewRouter("/", nil)
	notifier := NewTerminalNotifier(out)

	gw, err := gateway.New(srv.URL+"/api", auth, gateway.WithNavigator(router), gateway.WithNotifier(notifier))
	require.NoError(t, err)

	sess := newFakeSession(session.Authenticated)
	notes := services.NewNoteService(gw)
	cfg := &config.Config{APIBaseURL: srv.URL + "/api", RequestTimeout: 5 * time.Second}

	app := newApp(Deps{
		Config:    cfg,
		Session:   sess,
		Auth:      auth,
		Router:    router,
		Notifier:  notifier,
		Notes:     notes,
		Sharing:   services.NewSharingService(gw),
		Analytics: services.NewAnalyticsService(gw),
		AI:        services.NewAIService(gw),
		Profile:   services.NewProfileService(gw, sess),
		Captcha:   services.NewCaptchaService(gw),
		Backup:    backup.NewExporter(notes, cfg.Backup, nil),
		In:        strings.NewReader(strings.Join(input, "\n") + "\n"),
		Out:       out,
	})
	return &viewHarness{app: app, out: out, store: store, sess: sess}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func entryHandler(e models.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"entry": e})
	}
}

func entriesHandler(entries ...models.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	}
}

func TestViewDashboard(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/entries", entriesHandler(
		models.Entry{ID: "n1", Title: "Groceries", Synopsis: "weekly"},
		models.Entry{ID: "n2", Title: "Ideas"},
	))
	h := newViewHarness(t, r)

	require.NoError(t, h.app.Go(context.Background(), "/dashboard"))

	out := h.out.String()
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Ideas")
	assert.Contains(t, out, "2 notes")
}

func TestViewNewEntry(t *testing.T) {
	var created models.CreateEntry
	r := chi.NewRouter()
	r.Post("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&created)
		writeJSON(w, http.StatusCreated, map[string]any{"entry": models.Entry{ID: "n1", Title: created.Title}})
	})
	r.Get("/api/entry/n1", entryHandler(models.Entry{ID: "n1", Title: "Groceries", Content: "- milk\n- eggs"}))
	h := newViewHarness(t, r, "Groceries", "weekly list", "- milk", "- eggs", "")

	require.NoError(t, h.app.Go(context.Background(), "/new-entry"))

	assert.Equal(t, models.CreateEntry{Title: "Groceries", Synopsis: "weekly list", Content: "- milk\n- eggs"}, created)
	assert.Equal(t, "/entry/n1", h.app.Router.Current())
	out := h.out.String()
	assert.Contains(t, out, "[ok] Note created successfully!")
	assert.Contains(t, out, "# Groceries")
}

func TestViewNewEntry_ValidationFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "Validation failed",
			"errors":  []map[string]string{{"field": "content", "message": "Content is required"}},
		})
	})
	h := newViewHarness(t, r, "Empty", "", "")

	require.NoError(t, h.app.Go(context.Background(), "/new-entry"))

	out := h.out.String()
	assert.Contains(t, out, "[error] Failed to create note")
	assert.Contains(t, out, "Validation failed")
	assert.Contains(t, out, "content: Content is required")
	assert.Equal(t, "/new-entry", h.app.Router.Current())
}

func TestViewEntry_NotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/entry/missing", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Entry not found"})
	})
	r.Get("/api/entries", entriesHandler())
	h := newViewHarness(t, r)

	require.NoError(t, h.app.Go(context.Background(), "/entry/missing"))

	out := h.out.String()
	assert.Contains(t, out, "[error] Entry not found")
	assert.Contains(t, out, "[error] Note not found")
	assert.Contains(t, out, "No notes yet.")
	assert.Equal(t, gateway.DashboardPath, h.app.Router.Current())
}

func TestViewEditEntry_SendsOnlyChangedFields(t *testing.T) {
	var patch map[string]any
	r := chi.NewRouter()
	r.Get("/api/entry/7", entryHandler(models.Entry{ID: "7", Title: "Plan", Synopsis: "old", Content: "body"}))
	r.Patch("/api/entry/7", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&patch)
		w.WriteHeader(http.StatusOK)
	})
	h := newViewHarness(t, r, "", "new synopsis", "")

	require.NoError(t, h.app.Go(context.Background(), "/entry/7/edit"))

	assert.Equal(t, map[string]any{"synopsis": "new synopsis"}, patch)
	assert.Contains(t, h.out.String(), "[ok] Note updated successfully!")
	assert.Equal(t, "/entry/7", h.app.Router.Current())
}

func TestViewEditEntry_NothingChanged(t *testing.T) {
	var patched atomic.Bool
	r := chi.NewRouter()
	r.Get("/api/entry/7", entryHandler(models.Entry{ID: "7", Title: "Plan", Content: "body"}))
	r.Patch("/api/entry/7", func(w http.ResponseWriter, r *http.Request) { patched.Store(true) })
	h := newViewHarness(t, r, "", "", "")

	require.NoError(t, h.app.Go(context.Background(), "/entry/7/edit"))

	assert.False(t, patched.Load())
	assert.Contains(t, h.out.String(), "Nothing changed.")
}

func TestViewDeleteEntry(t *testing.T) {
	var deleted atomic.Int32
	r := chi.NewRouter()
	r.Delete("/api/entry/7", func(w http.ResponseWriter, r *http.Request) {
		deleted.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/api/entries", entriesHandler(models.Entry{ID: "8", Title: "Survivor"}))

	t.Run("confirmed", func(t *testing.T) {
		h := newViewHarness(t, r, "y")
		require.NoError(t, h.app.Go(context.Background(), "/entry/7/delete"))

		assert.EqualValues(t, 1, deleted.Load())
		assert.Contains(t, h.out.String(), "[ok] Note moved to trash")
		assert.Contains(t, h.out.String(), "Survivor")
		assert.Equal(t, gateway.DashboardPath, h.app.Router.Current())
		assert.Equal(t, 1, h.app.Router.Redirects())
	})

	t.Run("declined", func(t *testing.T) {
		h := newViewHarness(t, r, "n")
		require.NoError(t, h.app.Go(context.Background(), "/entry/7/delete"))

		assert.EqualValues(t, 1, deleted.Load())
		assert.Equal(t, "/entry/7/delete", h.app.Router.Current())
	})
}

func TestViewRestoreEntry(t *testing.T) {
	var restored atomic.Bool
	r := chi.NewRouter()
	r.Patch("/api/entry/restore/3", func(w http.ResponseWriter, r *http.Request) {
		restored.Store(true)
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/entries/trash", entriesHandler())
	h := newViewHarness(t, r)

	require.NoError(t, h.app.Go(context.Background(), "/trash/3/restore"))

	assert.True(t, restored.Load())
	assert.Contains(t, h.out.String(), "[ok] Note restored successfully")
	assert.Contains(t, h.out.String(), "Trash is empty.")
	assert.Equal(t, "/trash", h.app.Router.Current())
}

func TestViewShareEntry_FieldErrors(t *testing.T) {
	var req models.ShareRequest
	r := chi.NewRouter()
	r.Post("/api/collaboration/share", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "Validation failed",
			"errors":  map[string]string{"shareWithEmail": "User not found"},
		})
	})
	h := newViewHarness(t, r, "bob@example.com", "edit")

	require.NoError(t, h.app.Go(context.Background(), "/entry/5/share"))

	assert.Equal(t, models.ShareRequest{EntryID: "5", ShareWithEmail: "bob@example.com", Permission: models.PermissionEdit}, req)
	out := h.out.String()
	assert.Contains(t, out, "[error] Failed to share note")
	assert.Contains(t, out, "shareWithEmail: User not found")
}

func TestViewShareEntry_BadPermission(t *testing.T) {
	h := newViewHarness(t, chi.NewRouter(), "bob@example.com", "admin")

	require.NoError(t, h.app.Go(context.Background(), "/entry/5/share"))
	assert.Contains(t, h.out.String(), `unknown permission "admin"`)
}

func TestViewMySharedNotes(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/collaboration/my-shared-entries", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"entries": []models.SharedEntry{{
			ID:    "5",
			Title: "Roadmap",
			Shares: []models.Share{{
				ID:         "s1",
				Permission: models.PermissionEdit,
				SharedWith: models.Collaborator{FirstName: "Bob", LastName: "Ek", Email: "bob@example.com"},
			}},
		}}})
	})
	h := newViewHarness(t, r)

	require.NoError(t, h.app.Go(context.Background(), "/my-shared-notes"))

	out := h.out.String()
	assert.Contains(t, out, "Roadmap (1 share)")
	assert.Contains(t, out, "Bob Ek")
	assert.Contains(t, out, "Can Edit")
}

func TestViewAnalytics(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/analytics/dashboard", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Dashboard{
			TotalNotes:      12,
			WritingStreak:   3,
			MonthlyActivity: []models.MonthCount{{Month: "Jan", Count: 4}, {Month: "Feb", Count: 8}},
		})
	})
	r.Get("/api/analytics/insights", func(w http.ResponseWriter, r *http.Request) {
		var ins models.Insights
		ins.WritingPatterns.PeakWritingHour = 14
		ins.MostUsedWords = []models.WordCount{{Word: "gopher", Count: 9}}
		writeJSON(w, http.StatusOK, ins)
	})
	h := newViewHarness(t, r)

	require.NoError(t, h.app.Go(context.Background(), "/analytics"))

	out := h.out.String()
	assert.Contains(t, out, "Total notes")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, strings.Repeat("#", barWidth))
	assert.Contains(t, out, "gopher")
	assert.Contains(t, out, "Peak writing hour: 14:00")
}

func TestViewAIAssistant_GenerateOpensNote(t *testing.T) {
	var req models.GenerateRequest
	r := chi.NewRouter()
	r.Post("/api/ai/generate-note", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusOK, map[string]any{"entry": models.Entry{ID: "g1", Title: "Go tips"}})
	})
	r.Get("/api/entry/g1", entryHandler(models.Entry{ID: "g1", Title: "Go tips", Content: "Use gofmt."}))
	h := newViewHarness(t, r, "4", "Go tips", "technical", "")

	require.NoError(t, h.app.Go(context.Background(), "/ai-assistant"))

	assert.Equal(t, models.GenerateRequest{Topic: "Go tips", Style: models.StyleTechnical, Length: models.LengthMedium}, req)
	assert.Equal(t, "/entry/g1", h.app.Router.Current())
	assert.Contains(t, h.out.String(), "[ok] AI note generated successfully!")
	assert.Contains(t, h.out.String(), "Use gofmt.")
}

func TestViewAIAssistant_MenuLoop(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/ai/content-suggestions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": []string{"Outline", "Examples"}})
	})
	h := newViewHarness(t, r, "9", "5", "", "5", "testing", "q")

	require.NoError(t, h.app.Go(context.Background(), "/ai-assistant"))

	out := h.out.String()
	assert.Contains(t, out, `Unknown choice "9".`)
	assert.Contains(t, out, "[error] Please enter a topic first")
	assert.Contains(t, out, "1. Outline")
	assert.Contains(t, out, "2. Examples")
	assert.Equal(t, "/ai-assistant", h.app.Router.Current())
}

func TestViewProfile_Edit(t *testing.T) {
	var patch models.UserPatch
	r := chi.NewRouter()
	r.Patch("/api/user/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&patch)
		u := models.User{ID: "u-1", FirstName: *patch.FirstName, LastName: *patch.LastName, Username: *patch.Username, Email: *patch.Email}
		writeJSON(w, http.StatusOK, map[string]any{"user": u})
	})
	h := newViewHarness(t, r, "y", "", "Lindqvist", "", "")

	require.NoError(t, h.app.Go(context.Background(), "/profile"))

	require.NotNil(t, patch.LastName)
	assert.Equal(t, "Lindqvist", *patch.LastName)
	assert.Equal(t, "Ava", *patch.FirstName)
	assert.Contains(t, h.out.String(), "[ok] Profile updated successfully!")
	assert.Equal(t, "Lindqvist", h.sess.Snapshot().User.LastName)
}

func TestViewProfile_ShowsRefreshedUser(t *testing.T) {
	h := newViewHarness(t, chi.NewRouter(), "n")
	h.sess.refreshed = &models.User{ID: "u-1", FirstName: "Ava", LastName: "Berg", Username: "ava", Email: "ava@new.example.com"}

	require.NoError(t, h.app.Go(context.Background(), "/profile"))

	assert.Equal(t, 1, h.sess.refreshes)
	out := h.out.String()
	assert.Contains(t, out, "Ava Berg")
	assert.Contains(t, out, "ava@new.example.com")
	assert.NotContains(t, out, "Profile updated")
}

func TestViewChangePassword_Mismatch(t *testing.T) {
	var hit atomic.Bool
	r := chi.NewRouter()
	r.Post("/api/auth/password", func(w http.ResponseWriter, r *http.Request) { hit.Store(true) })
	h := newViewHarness(t, r, "old", "new-1", "new-2")

	require.NoError(t, h.app.Go(context.Background(), "/profile/password"))

	assert.False(t, hit.Load())
	assert.Contains(t, h.out.String(), services.ErrPasswordMismatch.Error())
}

func TestViewSession_ShowsCredentialAndClaims(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	h := newViewHarness(t, chi.NewRouter())
	h.store.Set(context.Background(), token, time.Hour)

	require.NoError(t, h.app.Go(context.Background(), "/session"))

	out := h.out.String()
	assert.Contains(t, out, "authenticated")
	assert.Contains(t, out, "Token subject")
	assert.Contains(t, out, "u-1")
	assert.Contains(t, out, credentials.SameSiteLax)
}

func TestTokenClaims_Opaque(t *testing.T) {
	_, ok := tokenClaims("not-a-jwt")
	assert.False(t, ok)
}

func TestViewBackup_NotConfigured(t *testing.T) {
	h := newViewHarness(t, chi.NewRouter())

	require.NoError(t, h.app.Go(context.Background(), "/backup"))
	assert.Contains(t, h.out.String(), "Backups are not configured.")
}

func TestViewLogout(t *testing.T) {
	h := newViewHarness(t, chi.NewRouter())

	require.NoError(t, h.app.Go(context.Background(), "/logout"))

	assert.Equal(t, 1, h.sess.logouts)
	assert.Equal(t, gateway.HomePath, h.app.Router.Current())
}
