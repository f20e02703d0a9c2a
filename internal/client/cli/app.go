package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/gophnotes/internal/client/backup"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/credentials"
	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/localdb"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/navigation"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// sessionAPI is the part of session.Controller the views use.
type sessionAPI interface {
	Start(ctx context.Context)
	Ready() <-chan struct{}
	Snapshot() session.Snapshot
	State() session.State
	Login(ctx context.Context, identifier, password, captchaID, captchaText string) error
	Register(ctx context.Context, reg models.Registration, captchaID, captchaText string) error
	Logout(ctx context.Context)
	RefreshUser(ctx context.Context)
}

// Deps are the collaborators of an App.
type Deps struct {
	Config    *config.Config
	Logger    logging.Logger
	Session   sessionAPI
	Auth      *gateway.AuthSessionState
	Router    *navigation.Router
	Notifier  gateway.Notifier
	Notes     services.NoteService
	Sharing   services.SharingService
	Analytics services.AnalyticsService
	AI        services.AIService
	Profile   services.ProfileService
	Captcha   services.CaptchaService
	Backup    *backup.Exporter
	In        io.Reader
	Out       io.Writer
}

type App struct {
	Deps
	reader *bufio.Reader
	routes *routeTable
	closer io.Closer
}

// NewApp wires the whole client for cfg: local storage, the credential store,
// the gateway, the session controller and the API services.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, log logging.Logger) (*App, error) {
	secure := credentials.SecureTransport(cfg.APIBaseURL)

	var (
		store credentials.Store
		db    *sql.DB
	)
	if cfg.Ephemeral {
		store = credentials.NewMemoryStore(secure)
	} else {
		var err error
		db, err = localdb.InitDatabase(ctx, filepath.Join(cfg.DataDir, localdb.FileName))
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		store = credentials.NewSQLiteStore(db, secure, credentials.WithLogger(log.With("component", "credentials")))
	}

	notifier := NewTerminalNotifier(out)
	router := navigation.NewRouter("/", log.With("component", "router"))
	auth := gateway.NewAuthSessionState(store)

	gw, err := gateway.New(cfg.APIBaseURL, auth,
		gateway.WithTimeout(cfg.RequestTimeout),
		gateway.WithNotifier(notifier),
		gateway.WithNavigator(router),
		gateway.WithLogger(log.With("component", "gateway")),
	)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	ctrl := session.NewController(gw, auth,
		session.WithNotifier(notifier),
		session.WithLogger(log.With("component", "session")),
		session.WithCredentialTTL(cfg.CredentialTTL),
	)
	notes := services.NewNoteService(gw)

	app := newApp(Deps{
		Config:    cfg,
		Logger:    log,
		Session:   ctrl,
		Auth:      auth,
		Router:    router,
		Notifier:  notifier,
		Notes:     notes,
		Sharing:   services.NewSharingService(gw),
		Analytics: services.NewAnalyticsService(gw),
		AI:        services.NewAIService(gw),
		Profile:   services.NewProfileService(gw, ctrl),
		Captcha:   services.NewCaptchaService(gw),
		Backup:    backup.NewExporter(notes, cfg.Backup, log.With("component", "backup")),
		In:        in,
		Out:       out,
	})
	if db != nil {
		app.closer = db
	}
	return app, nil
}

func newApp(d Deps) *App {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.Notifier == nil {
		d.Notifier = NewTerminalNotifier(d.Out)
	}
	a := &App{Deps: d, reader: bufio.NewReader(d.In)}
	a.routes = a.buildRoutes()
	return a
}

// Run resolves the session in the background and serves the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	go a.Session.Start(ctx)

	a.printf("Welcome to GophNotes CLI (type 'help' for commands)\n")
	if err := a.Visit(ctx, a.Router.Current()); err != nil {
		return err
	}
	runREPL(ctx, a, a.status, a.reader, a.Out)
	return nil
}

func (a *App) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func (a *App) status() string {
	snap := a.Session.Snapshot()
	who := snap.State.String()
	if snap.User != nil {
		who = snap.User.Username
		if who == "" {
			who = snap.User.FullName()
		}
	}
	return fmt.Sprintf("(%s %s)", who, a.Router.Current())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}
