package gateway

import "net/http"

// Classification is the outcome bucket assigned to every request.
type Classification int

const (
	Success Classification = iota
	AuthorizationFailure
	ValidationFailure
	ServerError
	NetworkError
)

func (c Classification) String() string {
	switch c {
	case Success:
		return "success"
	case AuthorizationFailure:
		return "authorization_failure"
	case ValidationFailure:
		return "validation_failure"
	case ServerError:
		return "server_error"
	case NetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Classify maps an HTTP status code received from the API to its class.
func Classify(status int) Classification {
	switch {
	case status >= 200 && status < 300:
		return Success
	case status == http.StatusUnauthorized:
		return AuthorizationFailure
	case status == http.StatusUnprocessableEntity:
		return ValidationFailure
	default:
		return ServerError
	}
}
