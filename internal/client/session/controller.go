package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/credentials"
	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const (
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
	PathProfile  = "/user/profile"

	MsgLoginSuccess    = "Login successful!"
	MsgRegisterSuccess = "Registration successful! Please login to continue."
	MsgLogoutSuccess   = "Logged out successfully"
)

type loginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
	CaptchaID       string `json:"captchaId"`
	CaptchaText     string `json:"captchaText"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type registerRequest struct {
	models.Registration
	CaptchaID   string `json:"captchaId"`
	CaptchaText string `json:"captchaText"`
}

type profileResponse struct {
	User models.User `json:"user"`
}

type Controller struct {
	gw       gateway.Requester
	auth     *gateway.AuthSessionState
	notifier gateway.Notifier
	log      logging.Logger
	ttl      time.Duration

	mu      sync.RWMutex
	user    *models.User
	loading bool
	// gen is bumped by every transition that invalidates in-flight identity
	// results (login, logout, rejected credential).
	gen uint64

	startOnce sync.Once
	ready     chan struct{}
}

type Option func(*Controller)

func WithNotifier(n gateway.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithCredentialTTL sets the lifetime of credentials issued on login.
func WithCredentialTTL(d time.Duration) Option {
	return func(c *Controller) { c.ttl = d }
}

// NewController creates a controller in the Initializing state. Call Start
// to resolve the identity.
func NewController(gw gateway.Requester, auth *gateway.AuthSessionState, opts ...Option) *Controller {
	c := &Controller{
		gw:       gw,
		auth:     auth,
		notifier: noopNotifier{},
		log:      logging.Discard(),
		ttl:      credentials.DefaultTTL,
		loading:  true,
		ready:    make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	auth.OnUnauthorized(c.onUnauthorized)
	return c
}

// Start verifies a stored credential with a silent profile request. It runs
// at most once; later calls return immediately.
func (c *Controller) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		defer close(c.ready)

		cred, ok := c.auth.Credential(ctx)
		if !ok {
			c.finishLoading(ctx, nil, c.generation())
			return
		}

		c.auth.SetBearer(cred.Token)
		gen := c.generation()

		var resp profileResponse
		err := c.gw.Do(ctx, &gateway.Request{
			Method: http.MethodGet,
			Path:   PathProfile,
			Out:    &resp,
			Silent: true,
		})
		if err != nil {
			c.log.Info(ctx, "stored credential not accepted", "error", err)
			c.finishLoading(ctx, nil, gen)
			return
		}
		c.finishLoading(ctx, &resp.User, gen)
	})
}

func (c *Controller) finishLoading(ctx context.Context, u *models.User, gen uint64) {
	c.mu.Lock()
	if u != nil && gen == c.gen {
		c.user = u
	}
	c.loading = false
	state := c.stateLocked()
	c.mu.Unlock()

	c.log.Info(ctx, "session resolved", "state", state)
}

// Ready is closed once Start has resolved the identity.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{State: c.stateLocked(), Loading: c.loading}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	switch {
	case c.loading:
		return Initializing
	case c.user != nil:
		return Authenticated
	default:
		return Anonymous
	}
}

func (c *Controller) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Login exchanges the user's credentials for a token. On failure the session
// is left as it was and the returned *Error carries the server's message.
func (c *Controller) Login(ctx context.Context, identifier, password, captchaID, captchaText string) error {
	var resp loginResponse
	err := c.gw.Do(ctx, &gateway.Request{
		Method: http.MethodPost,
		Path:   PathLogin,
		Body: loginRequest{
			EmailOrUsername: identifier,
			Password:        password,
			CaptchaID:       captchaID,
			CaptchaText:     captchaText,
		},
		Out: &resp,
	})
	if err != nil {
		return newError("login", MsgLoginFailed, err)
	}
	if resp.Token == "" {
		return &Error{Op: "login", Message: MsgLoginFailed, Err: ErrMissingToken}
	}

	c.auth.Install(ctx, resp.Token, c.ttl)

	c.mu.Lock()
	u := resp.User
	c.user = &u
	c.gen++
	c.mu.Unlock()

	c.log.Info(ctx, "logged in", "user_id", u.ID)
	c.notifier.Success(ctx, MsgLoginSuccess)
	return nil
}

// Register creates an account. It does not log the user in.
func (c *Controller) Register(ctx context.Context, reg models.Registration, captchaID, captchaText string) error {
	err := c.gw.Do(ctx, &gateway.Request{
		Method: http.MethodPost,
		Path:   PathRegister,
		Body: registerRequest{
			Registration: reg,
			CaptchaID:    captchaID,
			CaptchaText:  captchaText,
		},
	})
	if err != nil {
		return newError("register", MsgRegistrationFailed, err)
	}

	c.log.Info(ctx, "registered", "username", reg.Username)
	c.notifier.Success(ctx, MsgRegisterSuccess)
	return nil
}

// Logout forgets the credential and the user. It never fails.
func (c *Controller) Logout(ctx context.Context) {
	c.auth.Forget(ctx)

	c.mu.Lock()
	c.user = nil
	c.gen++
	c.mu.Unlock()

	c.log.Info(ctx, "logged out")
	c.notifier.Success(ctx, MsgLogoutSuccess)
}

// UpdateUser merges p into the current user. Without a user it does nothing.
func (c *Controller) UpdateUser(p models.UserPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return
	}
	u := c.user.Merge(p)
	c.user = &u
}

// RefreshUser reloads the profile. Failures are logged and otherwise ignored.
func (c *Controller) RefreshUser(ctx context.Context) {
	gen := c.generation()

	var resp profileResponse
	err := c.gw.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: PathProfile, Out: &resp})
	if err != nil {
		c.log.Warn(ctx, "failed to refresh user", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	u := resp.User
	c.user = &u
}

func (c *Controller) onUnauthorized(ctx context.Context) {
	c.mu.Lock()
	hadUser := c.user != nil
	c.user = nil
	c.gen++
	c.mu.Unlock()

	if hadUser {
		c.log.Info(ctx, "session ended by server")
	}
}

func newError(op, fallback string, err error) *Error {
	msg, ok := gateway.ServerMessage(err)
	if !ok {
		msg = fallback
	}
	return &Error{Op: op, Message: msg, Err: err}
}

type noopNotifier struct{}

func (noopNotifier) Success(context.Context, string) {}
func (noopNotifier) Error(context.Context, string)   {}
