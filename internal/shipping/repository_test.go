package shipping

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "code", "label", "cost", "estimated_days", "active", "created_at"}).
			AddRow(1, CodeStandard, "Standard Delivery", int64(150), 5, true, time.Now())

		mock.ExpectQuery("SELECT id, code, label, cost, estimated_days, active").
			WithArgs(CodeStandard).
			WillReturnRows(rows)

		m, err := repo.GetByCode(context.Background(), CodeStandard)
		require.NoError(t, err)
		assert.Equal(t, int64(150), m.Cost)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, code, label, cost, estimated_days, active").
			WithArgs("teleport").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByCode(context.Background(), "teleport")
		assert.ErrorIs(t, err, ErrMethodNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "label", "cost", "estimated_days", "active", "created_at"}).
		AddRow(1, CodeStandard, "Standard Delivery", int64(150), 5, true, time.Now()).
		AddRow(2, CodeExpress, "Express Delivery", int64(350), 2, true, time.Now())

	mock.ExpectQuery("SELECT id, code, label, cost, estimated_days, active").
		WithArgs(true).
		WillReturnRows(rows)

	methods, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, CodeStandard, methods[0].Code)
}
