package postgresql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwendo-logistics/payroll-backend-go/internal/pkg/database"
)

func TestGetQuerierReturnsPoolWithoutTransaction(t *testing.T) {
	db := &database.DB{}

	q := GetQuerier(context.Background(), db)

	assert.Equal(t, database.Querier(db.Pool), q)
}

func TestGetQuerierIgnoresForeignContextValues(t *testing.T) {
	db := &database.DB{}

	// A value stored by another package under a string key must not be
	// mistaken for the active transaction.
	ctx := context.WithValue(context.Background(), "tx", "not a transaction") //nolint:staticcheck

	q := GetQuerier(ctx, db)

	assert.Equal(t, database.Querier(db.Pool), q)
}
