// Package tx abstracts transaction management so domain code never sees
// the PostgreSQL implementation directly.
package tx

import (
	"context"
)

// Manager runs a function inside a database transaction.
//
// A save or delete, together with every cascade update it triggers, runs
// inside a single outer transaction: either all row changes commit or all
// roll back. Nested calls reuse the transaction already in context.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
