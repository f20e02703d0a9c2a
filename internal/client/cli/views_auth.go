package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

func (a *App) viewLanding(ctx context.Context, _ Params) error {
	a.printf("GophNotes: markdown notes with sharing, analytics and an AI assistant.\n")
	switch a.Session.State() {
	case session.Initializing:
		a.printf("Checking your session in the background...\n")
	case session.Authenticated:
		a.printf("You are logged in. Type 'list' to see your notes or 'help' for all commands.\n")
	default:
		a.printf("Type 'login' or 'register' to get started, or 'help' for all commands.\n")
	}
	return nil
}

func (a *App) viewNotFound(ctx context.Context, p Params) error {
	a.printf("404: nothing lives at %s. Type 'home' to start over.\n", p["path"])
	return nil
}

// solveCaptcha fetches a challenge, saves its image for the user to open and
// reads the answer.
func (a *App) solveCaptcha(ctx context.Context) (id, answer string, err error) {
	c, err := a.Captcha.Generate(ctx)
	if err != nil {
		return "", "", err
	}

	file, err := a.Captcha.SaveImage(c, "")
	if err != nil {
		return "", "", err
	}
	defer os.Remove(file)

	answer, err = GetSimpleText(a.reader, fmt.Sprintf("Open %s and enter the 5 characters shown", file), a.Out)
	if err != nil {
		return "", "", err
	}
	return c.ID, answer, nil
}

func (a *App) viewLogin(ctx context.Context, _ Params) error {
	a.printf("Log in to GophNotes\n")

	identifier, err := GetSimpleText(a.reader, "Email or username", a.Out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.Out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	captchaID, captchaText, err := a.solveCaptcha(ctx)
	if err != nil {
		a.reportError(err)
		return nil
	}

	if err := a.Session.Login(ctx, identifier, string(password), captchaID, captchaText); err != nil {
		a.printf("%s\n", err)
		return nil
	}
	a.Router.Navigate(ctx, gateway.DashboardPath, true)
	return nil
}

func (a *App) viewRegister(ctx context.Context, _ Params) error {
	a.printf("Create a GophNotes account\n")

	var reg models.Registration
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &reg.FirstName},
		{"Last name", &reg.LastName},
		{"Username", &reg.Username},
		{"Email", &reg.Email},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, a.Out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := GetPassword(a.reader, "Password", a.Out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := GetPassword(a.reader, "Confirm password", a.Out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	if string(password) != string(confirm) {
		a.printf("Passwords do not match.\n")
		return nil
	}
	reg.Password = string(password)

	captchaID, captchaText, err := a.solveCaptcha(ctx)
	if err != nil {
		a.reportError(err)
		return nil
	}

	if err := a.Session.Register(ctx, reg, captchaID, captchaText); err != nil {
		a.printf("%s\n", err)
		a.printFieldErrors(err)
		return nil
	}
	a.Router.Navigate(ctx, gateway.LoginPath, true)
	return nil
}

func (a *App) viewLogout(ctx context.Context, _ Params) error {
	a.Session.Logout(ctx)
	a.Router.Navigate(ctx, gateway.HomePath, true)
	return nil
}
