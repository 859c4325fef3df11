package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationName(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id, name FROM orders WHERE id = $1", "select_orders"},
		{"INSERT INTO order_works (order_id) VALUES ($1)", "insert_order_works"},
		{"UPDATE users SET first_name = $1", "update_users"},
		{"DELETE FROM work_assignments WHERE work_id = $1", "delete_work_assignments"},
		{"SELECT 1", "select"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, operationName(tt.query))
		})
	}
}

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := Wrap(nil, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db).(*DB))

	tx := fakeTx{}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}
