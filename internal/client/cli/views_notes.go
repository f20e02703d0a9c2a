package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

func entryPath(id string) string {
	return "/entry/" + id
}

func (a *App) viewDashboard(ctx context.Context, _ Params) error {
	entries, err := a.Notes.List(ctx)
	if err != nil {
		a.fail(ctx, "Failed to fetch notes", err)
		return nil
	}
	if len(entries) == 0 {
		a.printf("No notes yet. Type 'new' to write your first one.\n")
		return nil
	}
	a.printf("%s\n", entriesTable(entries))
	a.printf("%s\n", plural(len(entries), "note"))
	return nil
}

func (a *App) viewNewEntry(ctx context.Context, _ Params) error {
	title, err := GetSimpleText(a.reader, "Title", a.Out)
	if err != nil {
		return err
	}
	synopsis, err := GetSimpleText(a.reader, "Synopsis", a.Out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content (markdown)", a.Out)
	if err != nil {
		return err
	}

	e, err := a.Notes.Create(ctx, models.CreateEntry{Title: title, Synopsis: synopsis, Content: content})
	if err != nil {
		a.fail(ctx, "Failed to create note", err)
		return nil
	}
	a.Notifier.Success(ctx, "Note created successfully!")
	a.Router.Navigate(ctx, entryPath(e.ID), false)
	return nil
}

// loadEntry fetches a note; a missing note sends the user back to the
// dashboard.
func (a *App) loadEntry(ctx context.Context, id string) (*models.Entry, bool) {
	e, err := a.Notes.Get(ctx, id)
	if err == nil {
		return e, true
	}
	if isNotFound(err) {
		a.Notifier.Error(ctx, "Note not found")
		a.Router.Navigate(ctx, gateway.DashboardPath, true)
		return nil, false
	}
	a.fail(ctx, "Failed to load note", err)
	return nil, false
}

func (a *App) viewEntry(ctx context.Context, p Params) error {
	e, ok := a.loadEntry(ctx, p["id"])
	if !ok {
		return nil
	}
	a.printEntry(e)
	return nil
}

func (a *App) viewEditEntry(ctx context.Context, p Params) error {
	e, ok := a.loadEntry(ctx, p["id"])
	if !ok {
		return nil
	}

	a.printf("Editing %q. Press Enter to keep a value.\n", e.Title)
	title, err := GetTextDefault(a.reader, "Title", e.Title, a.Out)
	if err != nil {
		return err
	}
	synopsis, err := GetTextDefault(a.reader, "Synopsis", e.Synopsis, a.Out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "New content (leave empty to keep the current text)", a.Out)
	if err != nil {
		return err
	}

	var u models.UpdateEntry
	if title != e.Title {
		u.Title = &title
	}
	if synopsis != e.Synopsis {
		u.Synopsis = &synopsis
	}
	if content != "" && content != e.Content {
		u.Content = &content
	}
	if u.Empty() {
		a.printf("Nothing changed.\n")
		return nil
	}

	if err := a.Notes.Update(ctx, e.ID, u); err != nil {
		a.fail(ctx, "Failed to update note", err)
		return nil
	}
	a.Notifier.Success(ctx, "Note updated successfully!")
	a.Router.Navigate(ctx, entryPath(e.ID), false)
	return nil
}

func (a *App) viewDeleteEntry(ctx context.Context, p Params) error {
	id := p["id"]
	ok, err := Confirm(a.reader, fmt.Sprintf("Move note %s to the trash?", id), a.Out)
	if err != nil || !ok {
		return err
	}

	if err := a.Notes.Delete(ctx, id); err != nil {
		a.fail(ctx, "Failed to delete note", err)
		return nil
	}
	a.Notifier.Success(ctx, "Note moved to trash")
	a.Router.Navigate(ctx, gateway.DashboardPath, true)
	return nil
}

func (a *App) viewTrash(ctx context.Context, _ Params) error {
	entries, err := a.Notes.Trash(ctx)
	if err != nil {
		a.fail(ctx, "Failed to fetch deleted notes", err)
		return nil
	}
	if len(entries) == 0 {
		a.printf("Trash is empty.\n")
		return nil
	}
	a.printf("%s\n", entriesTable(entries))
	a.printf("Type 'restore <id>' to bring a note back.\n")
	return nil
}

func (a *App) viewRestoreEntry(ctx context.Context, p Params) error {
	if err := a.Notes.Restore(ctx, p["id"]); err != nil {
		a.fail(ctx, "Failed to restore note", err)
		return nil
	}
	a.Notifier.Success(ctx, "Note restored successfully")
	a.Router.Navigate(ctx, "/trash", true)
	return nil
}
