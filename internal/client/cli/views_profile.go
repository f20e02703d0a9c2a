package cli

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

func (a *App) printUser(u *models.User) {
	t := newTable("FIELD", "VALUE")
	t.AddRow("Name", u.FullName())
	t.AddRow("Username", u.Username)
	t.AddRow("Email", u.Email)
	if u.Avatar != "" {
		t.AddRow("Avatar", u.Avatar)
	}
	t.AddRow("Joined", formatTime(u.DateJoined))
	t.AddRow("Profile updated", formatTime(u.LastProfileUpdate))
	a.printf("%s\n", t)
}

func (a *App) viewProfile(ctx context.Context, _ Params) error {
	a.Session.RefreshUser(ctx)
	snap := a.Session.Snapshot()
	if snap.User == nil {
		a.printf("No profile loaded.\n")
		return nil
	}
	u := *snap.User
	a.printUser(&u)

	edit, err := Confirm(a.reader, "Edit profile?", a.Out)
	if err != nil || !edit {
		return err
	}

	fields := []struct {
		prompt string
		value  *string
	}{
		{"First name", &u.FirstName},
		{"Last name", &u.LastName},
		{"Username", &u.Username},
		{"Email", &u.Email},
	}
	for _, f := range fields {
		v, err := GetTextDefault(a.reader, f.prompt, *f.value, a.Out)
		if err != nil {
			return err
		}
		*f.value = v
	}

	patch := models.UserPatch{
		FirstName: &u.FirstName,
		LastName:  &u.LastName,
		Username:  &u.Username,
		Email:     &u.Email,
	}
	updated, err := a.Profile.Update(ctx, patch)
	if err != nil {
		a.fail(ctx, "Failed to update profile", err)
		return nil
	}
	a.Notifier.Success(ctx, "Profile updated successfully!")
	a.printUser(updated)
	return nil
}

func (a *App) viewChangePassword(ctx context.Context, _ Params) error {
	current, err := GetPassword(a.reader, "Current password", a.Out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)
	next, err := GetPassword(a.reader, "New password", a.Out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)
	confirm, err := GetPassword(a.reader, "Confirm new password", a.Out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	pc := models.PasswordChange{
		CurrentPassword: string(current),
		NewPassword:     string(next),
		ConfirmPassword: string(confirm),
	}
	if err := a.Profile.ChangePassword(ctx, pc); err != nil {
		a.fail(ctx, "Failed to update password", err)
		return nil
	}
	a.Notifier.Success(ctx, "Password updated successfully!")
	return nil
}

func (a *App) viewChangeAvatar(ctx context.Context, _ Params) error {
	path, err := GetSimpleText(a.reader, "Path to an image (max 5MB)", a.Out)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	u, err := a.Profile.UploadAvatar(ctx, path)
	if err != nil {
		a.fail(ctx, "Failed to upload profile picture", err)
		return nil
	}
	a.Notifier.Success(ctx, "Profile picture updated successfully!")
	a.printf("Avatar: %s\n", u.Avatar)
	return nil
}
