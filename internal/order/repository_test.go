package order

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{
	"id", "order_id", "session_id", "user_id", "customer", "items",
	"delivery_method", "delivery_cost", "payment_method",
	"subtotal", "discount", "total", "status", "created_at", "updated_at",
}

func sampleOrderRow(orderID string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(orderRowColumns).AddRow(
		1, orderID, nil, nil,
		[]byte(`{"first_name":"Ayesha","last_name":"Khan","email":"ayesha@example.com","phone":"3001234567","address":{"line1":"12 Mall Road","line2":"","city":"Lahore","state":"Punjab","postal_code":"540001","country":"Pakistan"}}`),
		[]byte(`[{"product_id":"p1","name":"Denim Jacket","size":"M","quantity":2,"price":1000,"subtotal":2000}]`),
		"standard", 150, "cod", 2000, 0, 2150, "pending", now, now,
	)
}

func TestRepository_GetByOrderID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT(.+)FROM orders WHERE order_id").
		WithArgs("ORD-1").
		WillReturnRows(sampleOrderRow("ORD-1"))

	repo := NewRepository(db)
	o, err := repo.GetByOrderID(context.Background(), "ORD-1")

	assert.NoError(t, err)
	assert.Equal(t, "ORD-1", o.OrderID)
	assert.Equal(t, "ayesha@example.com", o.Customer.Email)
	assert.Len(t, o.Items, 1)
	assert.Equal(t, int64(2150), o.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByOrderID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT(.+)FROM orders WHERE order_id").
		WithArgs("ORD-MISSING").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	repo := NewRepository(db)
	_, err = repo.GetByOrderID(context.Background(), "ORD-MISSING")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO orders(.+)ON CONFLICT \\(order_id\\) DO UPDATE").
		WillReturnRows(sampleOrderRow("ORD-1"))

	repo := NewRepository(db)
	o, err := repo.Upsert(context.Background(), &Order{
		OrderID:        "ORD-1",
		DeliveryMethod: "standard",
		DeliveryCost:   150,
		PaymentMethod:  "cod",
		Subtotal:       2000,
		Total:          2150,
		Status:         StatusPending,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ORD-1", o.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateFromCheckoutTx_ClearsCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders(.+)ON CONFLICT \\(order_id\\) DO UPDATE").
		WillReturnRows(sampleOrderRow("ORD-1"))
	mock.ExpectExec("DELETE FROM cart_lines WHERE user_id").
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewRepository(db)
	o, err := repo.CreateFromCheckoutTx(context.Background(), &Order{OrderID: "ORD-1"}, 7)

	assert.NoError(t, err)
	assert.Equal(t, "ORD-1", o.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT(.+)FROM orders WHERE customer->>'email'").
		WithArgs("ayesha@example.com").
		WillReturnRows(sampleOrderRow("ORD-1"))

	repo := NewRepository(db)
	orders, err := repo.ListByEmail(context.Background(), "ayesha@example.com")

	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
