// Package metadata is the client's persistent key/value store. Values are
// opaque strings; a missing key is reported by ok == false, not an error.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Transactional is implemented by repositories that can apply several
// writes atomically. fn receives a repository bound to the transaction.
type Transactional interface {
	Repository
	InTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}
