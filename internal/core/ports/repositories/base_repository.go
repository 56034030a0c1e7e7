package repositories

import (
	"context"
)

// TransactionManager runs a function inside a single storage transaction.
// The function receives a context carrying the transaction; every repository
// call made with it joins the same unit of work. The transaction commits when
// fn returns nil and rolls back on any error, so no step is individually
// visible to readers before the whole sequence commits.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
