package dictionary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/infra/storage/pgtest"
)

func TestRepository_WorkTypeLifecycle(t *testing.T) {
	db := pgtest.Setup(t)
	ctx := context.Background()
	repo := NewRepository(db)

	wt, err := repo.Create(ctx, &domain.DictionaryEntry{Type: domain.DictionaryTypeWorkType, Code: "T_TINT", Name: "Тонировка", Active: true})
	require.NoError(t, err)
	require.NotZero(t, wt.ID)

	_, err = repo.Create(ctx, &domain.DictionaryEntry{Type: domain.DictionaryTypeWorkType, Code: "T_TINT", Name: "Дубль", Active: true})
	assert.ErrorIs(t, err, ErrDuplicateCode)

	_, err = repo.Create(ctx, &domain.DictionaryEntry{Type: "T_TINT", Code: "REAR", Name: "Заднее стекло", Active: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.DictionaryEntry{Type: "T_TINT", Code: "FRONT", Name: "Боковые", Active: false})
	require.NoError(t, err)

	// активные первыми
	parts, err := repo.ListByType(ctx, "T_TINT")
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "REAR", parts[0].Code)
	assert.Equal(t, domain.KindPart, parts[0].Kind())

	require.NoError(t, repo.RenameType(ctx, "T_TINT", "T_TINT2"))
	parts, err = repo.ListByType(ctx, "T_TINT2")
	require.NoError(t, err)
	assert.Len(t, parts, 2)

	wt.Active = false
	require.NoError(t, repo.Update(ctx, wt))
	got, err := repo.GetByID(ctx, wt.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, repo.DeleteByType(ctx, "T_TINT2"))
	require.NoError(t, repo.Delete(ctx, wt.ID))
	_, err = repo.GetByID(ctx, wt.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, wt.ID), ErrEntryNotFound)
}

func TestRepository_SeededReferenceData(t *testing.T) {
	db := pgtest.Setup(t)
	ctx := context.Background()
	repo := NewRepository(db)

	brands, err := repo.ListCarBrands(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brands)
	for i := 1; i < len(brands); i++ {
		assert.LessOrEqual(t, brands[i-1].Name, brands[i].Name)
	}

	sources, err := repo.ListByType(ctx, domain.DictionaryTypeInfo)
	require.NoError(t, err)
	assert.NotEmpty(t, sources)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Greater(t, len(all), len(sources))
}

func TestRepository_DeleteReferencedEntry(t *testing.T) {
	db := pgtest.Setup(t)
	ctx := context.Background()
	repo := NewRepository(db)

	wtID := pgtest.MustInsertID(t, db, `INSERT INTO dictionary_entries (type, code, name) VALUES ('WORK_TYPE', 'T_USED', 'Используемый') RETURNING id`)
	orderID := pgtest.MustInsertID(t, db, `INSERT INTO orders (client_name, client_phone, execution_date, order_cost) VALUES ('К', '1', NOW(), 1) RETURNING id`)
	pgtest.MustExec(t, db, `INSERT INTO order_works (order_id, position, work_type_id, cost) VALUES ($1, 0, $2, 1)`, orderID, wtID)

	assert.ErrorIs(t, repo.Delete(ctx, wtID), ErrEntryInUse)
}
