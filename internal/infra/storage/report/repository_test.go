package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/infra/storage/pgtest"
)

func TestRepository_ListEarnings(t *testing.T) {
	db := pgtest.Setup(t)
	ctx := context.Background()
	repo := NewRepository(db)

	execDate := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	wtID := pgtest.MustInsertID(t, db, `INSERT INTO dictionary_entries (type, code, name) VALUES ('WORK_TYPE', 'T_R', 'Отчетная') RETURNING id`)
	masterID := pgtest.MustInsertID(t, db, `INSERT INTO users (username, first_name, last_name, password_hash) VALUES ('rm', 'Олег', 'Сидоров', 'x') RETURNING id`)

	insertOrder := func(status domain.OrderStatus, at time.Time) {
		orderID := pgtest.MustInsertID(t, db,
			`INSERT INTO orders (client_name, client_phone, execution_date, order_cost, status) VALUES ('Клиент', '1', $1, 100, $2) RETURNING id`,
			at, string(status))
		workID := pgtest.MustInsertID(t, db,
			`INSERT INTO order_works (order_id, position, work_type_id, cost) VALUES ($1, 0, $2, 33.33) RETURNING id`, orderID, wtID)
		pgtest.MustExec(t, db,
			`INSERT INTO work_assignments (work_id, position, master_id, salary_percent) VALUES ($1, 0, $2, 33)`, workID, masterID)
	}
	insertOrder(domain.StatusCompleted, execDate)
	insertOrder(domain.StatusCancelled, execDate)
	insertOrder(domain.StatusNew, execDate.AddDate(0, 0, 14))

	records, err := repo.ListEarnings(ctx, domain.WeekRange(execDate), &masterID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 11.00, records[0].Earning)
	assert.Equal(t, "Отчетная", records[0].WorkTypeName)
	assert.Equal(t, "Олег", records[0].MasterFirstName)
}
