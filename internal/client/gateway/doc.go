// Package gateway is the single outbound path to the notes API.
//
// Every request goes through (*Gateway).Do, which
//
//  1. attaches the process-wide default headers and, when a credential is
//     stored, an "Authorization: Bearer" header;
//  2. bounds the call with the configured timeout (10s by default);
//  3. classifies the outcome into one of Success, AuthorizationFailure,
//     ValidationFailure, ServerError or NetworkError;
//  4. performs the global reaction for that class: an authorization failure
//     clears the credential and default auth header, tells session listeners,
//     and (unless the request is the silent identity probe) redirects to the
//     login route; server and network failures raise a user notification;
//     validation failures are left to the caller.
//
// Nothing is retried. Corrective actions are idempotent, so concurrent
// authorization failures need no coordination: clearing an absent credential
// and navigating to the current location are both no-ops.
//
// Errors returned by Do are *Error values; match them with errors.Is against
// ErrUnauthorized, ErrValidation, ErrServer and ErrNetwork.
package gateway
