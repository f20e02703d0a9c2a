// Package cli provides the interactive notes command-line client.
//
// The client is organised as a set of routes, one per view, each guarded by
// an access requirement (see package guard). The REPL turns commands into
// route paths; App.Visit resolves the path, evaluates the guard and either
// renders the view, waits for the session to finish starting up, or follows
// a redirect. Navigation performed while a view runs, including the forced
// redirect to /login after the server rejects the credential, is followed
// before control returns to the prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
