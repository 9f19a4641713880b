package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		productRows := sqlmock.NewRows([]string{
			"id", "name", "description", "category", "price", "image_url", "active", "created_at", "updated_at",
		}).AddRow("p1", "Denim Jacket", nil, "jackets", int64(4500), nil, true, now, now)

		mock.ExpectQuery("SELECT id, name, description, category").
			WithArgs("p1", true).
			WillReturnRows(productRows)

		sizeRows := sqlmock.NewRows([]string{"size", "stock"}).
			AddRow("M", 4).
			AddRow("S", 2)

		mock.ExpectQuery("SELECT size, stock FROM product_sizes").
			WithArgs("p1").
			WillReturnRows(sizeRows)

		p, err := repo.GetByID(context.Background(), "p1", true)
		require.NoError(t, err)
		assert.Equal(t, "Denim Jacket", p.Name)
		assert.Equal(t, int64(4500), p.Price)
		assert.Len(t, p.Sizes, 2)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, description, category").
			WithArgs("missing", true).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), "missing", true)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_GetSizeStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT stock FROM product_sizes").
			WithArgs("p1", "M").
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(7))

		stock, err := repo.GetSizeStock(context.Background(), "p1", "M")
		require.NoError(t, err)
		assert.Equal(t, 7, stock)
	})

	t.Run("SizeMissing", func(t *testing.T) {
		mock.ExpectQuery("SELECT stock FROM product_sizes").
			WithArgs("p1", "XXL").
			WillReturnRows(sqlmock.NewRows([]string{"stock"}))

		_, err := repo.GetSizeStock(context.Background(), "p1", "XXL")
		assert.ErrorIs(t, err, ErrSizeNotAvailable)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET active = false").
			WithArgs("p1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "p1"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET active = false").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrProductNotFound)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET active = false").
			WillReturnError(errors.New("db error"))

		assert.Error(t, repo.Delete(context.Background(), "p1"))
	})
}
