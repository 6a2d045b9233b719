package memory

import (
	"context"

	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

// TxManager satisfies database.Transactor without a real database. The memory
// repositories are individually synchronized, so the callback just runs inline.
type TxManager struct{}

func NewTxManager() *TxManager {
	return &TxManager{}
}

var _ database.Transactor = (*TxManager)(nil)

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
