package database

import "context"

// TxRunner executes a unit of work inside a store transaction. The
// transaction travels to repositories through the context, so every
// repository call made within fn sees the same transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
