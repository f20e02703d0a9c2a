package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gosuri/uitable"

	"github.com/dmitrijs2005/gophnotes/internal/client/gateway"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

const dateLayout = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func newTable(header ...any) *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = 50
	t.Wrap = true
	t.AddRow(header...)
	return t
}

func entriesTable(entries []models.Entry) *uitable.Table {
	t := newTable("ID", "TITLE", "SYNOPSIS", "UPDATED")
	for _, e := range entries {
		t.AddRow(e.ID, e.Title, e.Synopsis, formatTime(e.LastUpdated))
	}
	return t
}

func sharesTable(shares []models.Share) *uitable.Table {
	t := newTable("SHARE ID", "WITH", "EMAIL", "PERMISSION", "SHARED")
	for _, s := range shares {
		name := strings.TrimSpace(s.SharedWith.FirstName + " " + s.SharedWith.LastName)
		t.AddRow(s.ID, name, s.SharedWith.Email, s.Permission.Label(), formatTime(s.SharedAt))
	}
	return t
}

func (a *App) printEntry(e *models.Entry) {
	a.printf("# %s\n", e.Title)
	if e.Synopsis != "" {
		a.printf("%s\n", e.Synopsis)
	}
	a.printf("created %s, updated %s, id %s\n\n", formatTime(e.DateCreated), formatTime(e.LastUpdated), e.ID)
	a.printf("%s\n", e.Content)
}

// reportError shows errors the gateway leaves to the caller: field-level
// validation failures and local input errors. Server, network and
// authorization failures were already surfaced globally.
func (a *App) reportError(err error) {
	if err == nil {
		return
	}
	class, fromGateway := gateway.ClassOf(err)
	if !fromGateway {
		a.printf("%s\n", err)
		return
	}
	if class != gateway.ValidationFailure {
		return
	}

	msg, ok := gateway.ServerMessage(err)
	if !ok {
		msg = "The request was rejected as invalid."
	}
	a.printf("%s\n", msg)
	a.printFieldErrors(err)
}

// fail reports a failed action under msg. A 401 was already handled by the
// gateway's redirect, so nothing is printed for it.
func (a *App) fail(ctx context.Context, msg string, err error) {
	if err == nil || errors.Is(err, gateway.ErrUnauthorized) {
		return
	}
	if _, fromGateway := gateway.ClassOf(err); !fromGateway {
		a.printf("%s\n", err)
		return
	}
	a.Notifier.Error(ctx, msg)
	a.reportError(err)
}

func isNotFound(err error) bool {
	var gerr *gateway.Error
	return errors.As(err, &gerr) && gerr.Status == http.StatusNotFound
}

func (a *App) printFieldErrors(err error) {
	fields := gateway.FieldErrors(err)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a.printf("  %s: %s\n", name, fields[name])
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
