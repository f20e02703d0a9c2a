package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
)

// User-facing fallbacks used when the server gives no message.
const (
	MsgServerFallback  = "An error occurred"
	MsgNetworkFailure  = "Network error. Please check your connection."
	MsgUnexpectedError = "An unexpected error occurred."
)

// Error is a classified request failure.
type Error struct {
	Class  Classification
	Method string
	Path   string
	// Status is the HTTP status, zero when no response was received.
	Status int
	// Message is the server-supplied "message" field, if any.
	Message string
	// Body is the raw response body, kept for field-level validation errors.
	Body []byte
	// Sent is false when the request could not even be built.
	Sent bool
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", e.Method, e.Path, e.Class)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Class == AuthorizationFailure
	case ErrValidation:
		return e.Class == ValidationFailure
	case ErrServer:
		return e.Class == ServerError
	case ErrNetwork:
		return e.Class == NetworkError
	}
	return false
}

// ServerMessage extracts the server-supplied message from err, if err is a
// gateway error carrying one.
func ServerMessage(err error) (string, bool) {
	var ge *Error
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message, true
	}
	return "", false
}

// ClassOf returns the classification of err, or false if err did not come
// from the gateway.
func ClassOf(err error) (Classification, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Class, true
	}
	return 0, false
}

// FieldErrors decodes the field-level messages of a validation failure. The
// API returns them either as {"errors": {"field": "msg"}} or as
// {"errors": [{"field": "...", "message": "..."}]}.
func FieldErrors(err error) map[string]string {
	var ge *Error
	if !errors.As(err, &ge) || ge.Class != ValidationFailure || len(ge.Body) == 0 {
		return nil
	}

	var asMap struct {
		Errors map[string]string `json:"errors"`
	}
	if json.Unmarshal(ge.Body, &asMap) == nil && len(asMap.Errors) > 0 {
		return asMap.Errors
	}

	var asList struct {
		Errors []struct {
			Field   string `json:"field"`
			Path    string `json:"path"`
			Message string `json:"message"`
			Msg     string `json:"msg"`
		} `json:"errors"`
	}
	if json.Unmarshal(ge.Body, &asList) != nil || len(asList.Errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(asList.Errors))
	for _, fe := range asList.Errors {
		field := fe.Field
		if field == "" {
			field = fe.Path
		}
		msg := fe.Message
		if msg == "" {
			msg = fe.Msg
		}
		out[field] = msg
	}
	return out
}

func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}
	return payload.Message
}
