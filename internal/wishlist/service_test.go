package wishlist

import (
	"context"
	"testing"
	"time"

	"fashniz-be/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, userID uint) ([]*Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Item), args.Error(1)
}

func (m *MockRepository) Add(ctx context.Context, userID uint, productID string) (*Item, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) Remove(ctx context.Context, userID uint, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func TestService_RemoveLastItemLeavesEmptyList(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, events.NewBus())

	repo.On("Remove", ctx, uint(1), "p1").Return(nil)
	repo.On("List", ctx, uint(1)).Return(nil, nil)

	require.NoError(t, svc.Remove(ctx, 1, "p1"))

	items, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, events.NewBus())

		repo.On("Add", ctx, uint(1), "p1").
			Return(&Item{ID: 1, UserID: 1, ProductID: "p1", AddedAt: time.Now()}, nil)

		it, err := svc.Add(ctx, 1, "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", it.ProductID)
	})

	t.Run("MissingProduct", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, events.NewBus())

		_, err := svc.Add(ctx, 1, "")
		assert.ErrorIs(t, err, ErrMissingProduct)
	})
}

func TestService_RemoveMissing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, events.NewBus())

	repo.On("Remove", ctx, uint(1), "ghost").Return(ErrItemNotFound)

	assert.ErrorIs(t, svc.Remove(ctx, 1, "ghost"), ErrItemNotFound)
}
