package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const (
	DefaultTimeout = 10 * time.Second

	HeaderRequestID   = "X-Request-ID"
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
	ContentTypeJSON   = "application/json"
)

// Request describes one call to the API.
type Request struct {
	Method string
	// Path is relative to the API base URL, e.g. "/user/profile".
	Path   string
	Query  url.Values
	Header http.Header
	// Body is JSON-encoded unless it is an io.Reader, in which case it is
	// sent as-is with ContentType.
	Body        any
	ContentType string
	// Out, when non-nil, receives the decoded JSON response of a success.
	Out any
	// Silent suppresses the login redirect on an authorization failure.
	// Only the startup identity probe sets it.
	Silent bool
}

// Requester is what services and the session controller depend on.
type Requester interface {
	Do(ctx context.Context, req *Request) error
}

type Gateway struct {
	baseURL  *url.URL
	client   *http.Client
	timeout  time.Duration
	state    *AuthSessionState
	notifier Notifier
	nav      Navigator
	log      logging.Logger
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(g *Gateway) { g.notifier = n }
}

func WithNavigator(n Navigator) Option {
	return func(g *Gateway) { g.nav = n }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// New creates a gateway for the API rooted at baseURL.
func New(baseURL string, state *AuthSessionState, opts ...Option) (*Gateway, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme and host are required", baseURL)
	}

	g := &Gateway{
		baseURL:  u,
		client:   http.DefaultClient,
		timeout:  DefaultTimeout,
		state:    state,
		notifier: nopNotifier{},
		nav:      nopNavigator{},
		log:      logging.Discard(),
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

func (g *Gateway) State() *AuthSessionState { return g.state }

// Do sends req, classifies the outcome and performs the global reaction for
// that class. A nil error means the server answered 2xx and, if req.Out was
// set, the body was decoded into it.
func (g *Gateway) Do(ctx context.Context, req *Request) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	requestID := uuid.NewString()
	log := g.log.With("method", req.Method, "path", req.Path, "request_id", requestID)

	httpReq, err := g.build(ctx, req, requestID)
	if err != nil {
		log.Error(ctx, "failed to build request", "error", err)
		g.notifier.Error(ctx, MsgUnexpectedError)
		return &Error{Class: NetworkError, Method: req.Method, Path: req.Path, Err: err}
	}

	started := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "elapsed", time.Since(started))
		g.notifier.Error(ctx, MsgNetworkFailure)
		return &Error{Class: NetworkError, Method: req.Method, Path: req.Path, Sent: true, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "failed to read response", "status", resp.StatusCode, "error", err)
		g.notifier.Error(ctx, MsgNetworkFailure)
		return &Error{Class: NetworkError, Method: req.Method, Path: req.Path, Status: resp.StatusCode, Sent: true, Err: err}
	}

	class := Classify(resp.StatusCode)
	log.Debug(ctx, "request classified", "status", resp.StatusCode, "class", class, "elapsed", time.Since(started))

	if class == Success {
		if req.Out == nil || len(bytes.TrimSpace(body)) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, req.Out); err != nil {
			log.Error(ctx, "failed to decode response", "error", err)
			g.notifier.Error(ctx, MsgUnexpectedError)
			return &Error{Class: ServerError, Method: req.Method, Path: req.Path, Status: resp.StatusCode, Sent: true, Err: err}
		}
		return nil
	}

	gerr := &Error{
		Class:   class,
		Method:  req.Method,
		Path:    req.Path,
		Status:  resp.StatusCode,
		Message: extractMessage(body),
		Body:    body,
		Sent:    true,
	}

	switch class {
	case AuthorizationFailure:
		// The caller's context may already be done; the reaction must still run.
		reactCtx := context.WithoutCancel(ctx)
		if !g.state.Invalidate(reactCtx, BearerToken(httpReq.Header)) {
			log.Info(ctx, "superseded credential rejected, session kept")
			break
		}
		log.Info(ctx, "credential rejected, session cleared", "silent", req.Silent)
		if !req.Silent {
			g.nav.Navigate(reactCtx, LoginPath, true)
		}
	case ValidationFailure:
		// Field errors are the caller's to render.
	case ServerError:
		msg := gerr.Message
		if msg == "" {
			msg = MsgServerFallback
		}
		g.notifier.Error(ctx, msg)
	}
	return gerr
}

func (g *Gateway) build(ctx context.Context, req *Request, requestID string) (*http.Request, error) {
	if req.Method == "" {
		return nil, errors.New("request method is empty")
	}

	u := g.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch b := req.Body.(type) {
	case nil:
	case io.Reader:
		body = b
		contentType = req.ContentType
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = ContentTypeJSON
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, err
	}

	for k, vs := range g.state.DefaultHeaders() {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if cred, ok := g.state.Credential(ctx); ok {
		httpReq.Header.Set(HeaderAuthorization, bearerPrefix+cred.Token)
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set(HeaderContentType, contentType)
	}
	httpReq.Header.Set(HeaderAccept, ContentTypeJSON)
	httpReq.Header.Set(HeaderRequestID, requestID)
	return httpReq, nil
}
