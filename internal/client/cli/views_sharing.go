package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

func (a *App) viewShareEntry(ctx context.Context, p Params) error {
	id := p["id"]
	email, err := GetSimpleText(a.reader, "Share with (email)", a.Out)
	if err != nil {
		return err
	}
	raw, err := GetSimpleText(a.reader, "Permission: read or edit [read]", a.Out)
	if err != nil {
		return err
	}
	perm, err := models.ParsePermission(raw)
	if err != nil {
		a.printf("%s\n", err)
		return nil
	}

	if err := a.Sharing.Share(ctx, id, email, perm); err != nil {
		a.fail(ctx, "Failed to share note", err)
		return nil
	}
	a.Notifier.Success(ctx, "Note shared successfully!")
	return nil
}

func (a *App) viewEntryShares(ctx context.Context, p Params) error {
	shares, err := a.Sharing.Shares(ctx, p["id"])
	if err != nil {
		a.fail(ctx, "Failed to load shares", err)
		return nil
	}
	if len(shares) == 0 {
		a.printf("This note is not shared with anyone.\n")
		return nil
	}
	a.printf("%s\n", sharesTable(shares))
	a.printf("Type 'unshare <share-id>' to revoke access.\n")
	return nil
}

func (a *App) viewRemoveShare(ctx context.Context, p Params) error {
	id := p["id"]
	ok, err := Confirm(a.reader, fmt.Sprintf("Remove share %s?", id), a.Out)
	if err != nil || !ok {
		return err
	}
	if err := a.Sharing.Unshare(ctx, id); err != nil {
		a.fail(ctx, "Failed to remove share", err)
		return nil
	}
	a.Notifier.Success(ctx, "Share removed successfully")
	return nil
}

func (a *App) viewMySharedNotes(ctx context.Context, _ Params) error {
	entries, err := a.Sharing.MySharedEntries(ctx)
	if err != nil {
		a.fail(ctx, "Failed to load shared notes", err)
		return nil
	}
	if len(entries) == 0 {
		a.printf("You have not shared any notes yet.\n")
		return nil
	}

	for _, e := range entries {
		a.printf("%s  %s (%s)\n", e.ID, e.Title, plural(len(e.Shares), "share"))
		if len(e.Shares) > 0 {
			a.printf("%s\n", sharesTable(e.Shares))
		}
		a.printf("\n")
	}
	return nil
}
