package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"
	"warranty/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func TestTimelineAppendExpr(t *testing.T) {
	actor := uuid.New()
	event := entity.TimelineEvent{
		Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Action:    "Status changed to approved",
		ActorID:   &actor,
		Notes:     "Approved by service desk",
	}

	got, err := timelineAppendExpr(event)
	require.NoError(t, err)

	expr, ok := got.(clause.Expr)
	require.True(t, ok)
	assert.Contains(t, expr.SQL, "||")
	require.Len(t, expr.Vars, 1)

	var decoded []model.TimelineEventJSON
	require.NoError(t, json.Unmarshal([]byte(expr.Vars[0].(string)), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, event.Action, decoded[0].Action)
	assert.Equal(t, actor, *decoded[0].ActorID)
	assert.True(t, event.Timestamp.Equal(decoded[0].Timestamp))
}

func TestClaimMapping_EmptyCollections(t *testing.T) {
	claim := toClaimDomain(&model.ClaimModel{ID: uuid.New(), Status: "pending"})

	assert.NotNil(t, claim.Attachments)
	assert.Empty(t, claim.Timeline)
	assert.Equal(t, entity.ClaimStatusPending, claim.Status)

	back := fromClaimDomain(&entity.Claim{Status: entity.ClaimStatusPending})
	assert.NotNil(t, back.Attachments)
}

// stubRows replaces the update and query callbacks of a gorm handle so the
// repository runs without a database. Updates report `updated` rows and
// queries report `found`.
type stubRows struct {
	updated     int64
	found       int64
	updateWhere []clause.Expression
	queryWhere  []clause.Expression
	queries     int
}

func newStubbedDB(t *testing.T, rows *stubRows) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN: "host=127.0.0.1 user=warranty dbname=warranty sslmode=disable",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	require.NoError(t, db.Callback().Update().Replace("gorm:update", func(tx *gorm.DB) {
		if where, ok := tx.Statement.Clauses["WHERE"].Expression.(clause.Where); ok {
			rows.updateWhere = where.Exprs
		}
		tx.RowsAffected = rows.updated
	}))
	require.NoError(t, db.Callback().Query().Replace("gorm:query", func(tx *gorm.DB) {
		rows.queries++
		if where, ok := tx.Statement.Clauses["WHERE"].Expression.(clause.Where); ok && rows.queryWhere == nil {
			rows.queryWhere = where.Exprs
		}
		if n, ok := tx.Statement.Dest.(*int64); ok {
			*n = rows.found
		}
		tx.RowsAffected = rows.found
		if rows.found == 0 && tx.Statement.RaiseErrorOnNotFound {
			_ = tx.AddError(gorm.ErrRecordNotFound)
		}
	}))

	return db
}

func TestClaimRepository_UpdateClaimStatus(t *testing.T) {
	event := entity.TimelineEvent{Timestamp: time.Now(), Action: "Status changed to approved"}

	tests := []struct {
		name        string
		updated     int64
		found       int64
		wantErr     error
		wantQueries int
	}{
		{name: "expected status matches", updated: 1, found: 1},
		{name: "status already moved", updated: 0, found: 1, wantErr: repository.ErrClaimStatusConflict, wantQueries: 1},
		{name: "claim is gone", updated: 0, found: 0, wantErr: repository.ErrClaimNotFound, wantQueries: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := &stubRows{updated: tt.updated, found: tt.found}
			repo := NewClaimRepository(newStubbedDB(t, rows))
			id := uuid.New()

			err := repo.UpdateClaimStatus(context.Background(), id, entity.ClaimStatusPending, entity.ClaimStatusApproved, event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantQueries, rows.queries)

			require.Len(t, rows.updateWhere, 1)
			guard, ok := rows.updateWhere[0].(clause.Expr)
			require.True(t, ok)
			assert.Equal(t, "id = ? AND status = ?", guard.SQL)
			assert.Equal(t, []any{id, "pending"}, guard.Vars)
		})
	}
}
