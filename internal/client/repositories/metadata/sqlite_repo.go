package metadata

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds the repository to a *sql.DB or a *sql.Tx.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// inClause returns "(?, ?, ...)" for n keys and the keys as query args.
func inClause(keys []string) (string, []any) {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ") + ")", args
}

func (r *SQLiteRepository) GetMany(ctx context.Context, keys ...string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	in, args := inClause(keys)
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata WHERE key IN `+in, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", strings.Join(keys, ","), err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

// SetMany writes values in key order. Run it inside dbx.WithTx to make the
// write atomic.
func (r *SQLiteRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := r.Set(ctx, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	in, args := inClause(keys)
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN `+in, args...); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", strings.Join(keys, ","), err)
	}
	return nil
}
