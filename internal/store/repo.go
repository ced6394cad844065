package store

import "context"

// Repo defines snapshot persistence: the whole state is written and read as
// a flat collection of (identity key, JSON record) pairs.
type Repo interface {
	LoadAll(ctx context.Context) (map[string][]byte, error)
	SaveAll(ctx context.Context, snap map[string][]byte) error
	Close() error
}
