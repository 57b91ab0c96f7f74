package postgres

import (
	"context"
	"testing"

	"warranty/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

// whereSQL flattens captured WHERE expressions into "sql -> vars" pairs.
func whereSQL(t *testing.T, exprs []clause.Expression) map[string][]any {
	t.Helper()

	return lo.SliceToMap(exprs, func(e clause.Expression) (string, []any) {
		expr, ok := e.(clause.Expr)
		require.True(t, ok, "unexpected where expression %T", e)
		return expr.SQL, expr.Vars
	})
}

func TestWarrantyRepository_FindWarrantyByID_StoreFilter(t *testing.T) {
	tests := []struct {
		name    string
		storeID uuid.UUID
	}{
		{name: "store given", storeID: uuid.New()},
		{name: "zero store still filters", storeID: uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := &stubRows{}
			repo := NewWarrantyRepository(newStubbedDB(t, rows))
			id := uuid.New()

			_, err := repo.FindWarrantyByID(context.Background(), tt.storeID, id)
			assert.ErrorIs(t, err, repository.ErrWarrantyNotFound)

			where := whereSQL(t, rows.queryWhere)
			assert.Equal(t, []any{tt.storeID}, where["store_id = ?"])
			assert.Equal(t, []any{id}, where["id = ?"])
		})
	}
}

func TestWarrantyRepository_FindWarrantyByIDAnyStore(t *testing.T) {
	rows := &stubRows{}
	repo := NewWarrantyRepository(newStubbedDB(t, rows))
	id := uuid.New()

	_, err := repo.FindWarrantyByIDAnyStore(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrWarrantyNotFound)

	where := whereSQL(t, rows.queryWhere)
	assert.NotContains(t, where, "store_id = ?")
	assert.Equal(t, []any{id}, where["id = ?"])
}

func TestCustomerRepository_FindCustomerByID_ZeroStoreFilters(t *testing.T) {
	rows := &stubRows{}
	repo := NewCustomerRepository(newStubbedDB(t, rows))

	_, err := repo.FindCustomerByID(context.Background(), uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)

	assert.Equal(t, []any{uuid.Nil}, whereSQL(t, rows.queryWhere)["store_id = ?"])
}
