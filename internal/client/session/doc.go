// Package session holds the process-wide authentication state of the client.
//
// The Controller is the single writer of credentials: it stores one on login
// and removes it on logout. The gateway may also drop the credential when the
// server rejects it; the controller learns about that through
// gateway.AuthSessionState listeners and forgets the user.
//
// The observable state is derived, never stored:
//
//	loading            -> Initializing
//	user != nil        -> Authenticated
//	otherwise          -> Anonymous
package session
