package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/client/backup"
)

func (a *App) viewBackup(ctx context.Context, _ Params) error {
	if a.Backup == nil || !a.Backup.Enabled() {
		a.printf("Backups are not configured. Set NOTES_BACKUP_BUCKET or backup.bucket in the config file.\n")
		return nil
	}

	ok, err := Confirm(a.reader, "Export all notes to object storage?", a.Out)
	if err != nil || !ok {
		return err
	}

	report, err := a.Backup.Export(ctx)
	if report != nil {
		a.printf("Uploaded %s to %s.\n", plural(len(report.Uploaded), "note"), report.Bucket)
		for _, key := range report.Failed {
			a.printf("  failed: %s\n", key)
		}
	}
	switch {
	case err == nil:
		a.Notifier.Success(ctx, "Backup completed")
	case errors.Is(err, backup.ErrDisabled):
		a.printf("%s\n", err)
	default:
		a.fail(ctx, "Backup failed", err)
	}
	return nil
}
