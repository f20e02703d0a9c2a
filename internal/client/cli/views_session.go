package cli

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims reads the claims of a JWT without verifying it. The client has
// no key to verify with; the claims are shown for information only.
func tokenClaims(token string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func (a *App) viewSession(ctx context.Context, _ Params) error {
	snap := a.Session.Snapshot()

	t := newTable("FIELD", "VALUE")
	t.AddRow("State", snap.State)
	if snap.User != nil {
		t.AddRow("User", snap.User.Username)
		t.AddRow("Email", snap.User.Email)
	}
	t.AddRow("API", a.Config.APIBaseURL)
	t.AddRow("Request timeout", a.Config.RequestTimeout)
	t.AddRow("Redirects", a.Router.Redirects())

	cred, ok := a.Auth.Credential(ctx)
	t.AddRow("Credential", yesNo(ok))
	if ok {
		t.AddRow("Expires", formatTime(cred.ExpiresAt))
		t.AddRow("Expires in", time.Until(cred.ExpiresAt).Round(time.Minute))
		t.AddRow("Secure only", yesNo(cred.Secure))
		t.AddRow("Same-site", cred.SameSite)

		if claims, ok := tokenClaims(cred.Token); ok {
			if sub, err := claims.GetSubject(); err == nil && sub != "" {
				t.AddRow("Token subject", sub)
			}
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				t.AddRow("Token expires", formatTime(exp.Time))
			}
			if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
				t.AddRow("Token issued", formatTime(iat.Time))
			}
		}
	}
	a.printf("%s\n", t)
	return nil
}
