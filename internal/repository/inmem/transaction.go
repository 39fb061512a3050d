package inmem

import (
	"context"

	"github.com/DGersmv/personal-227-info-sub000/internal/domain/repositories"
)

// TransactionManager is a pass-through: every in-memory repository call
// is already atomic under the store mutex, so there is nothing to begin
// or commit.
type TransactionManager struct{}

// NewTransactionManager creates a pass-through transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return &TransactionManager{}
}

// ExecTx executes fn directly
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
