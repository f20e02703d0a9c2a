// Package metadata is the client's key/value table. The credential store keeps
// the bearer token and its attributes here, one key per attribute.
package metadata

import (
	"context"
)

// Repository reads and writes raw values by key.
type Repository interface {
	// GetMany returns the values of the keys that exist. Absent keys are
	// missing from the map.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	// Delete removes keys; deleting an absent key is not an error.
	Delete(ctx context.Context, keys ...string) error
}
