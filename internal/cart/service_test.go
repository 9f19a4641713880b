package cart

import (
	"context"
	"database/sql"
	"testing"

	"fashniz-be/internal/events"
	"fashniz-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCart(ctx context.Context, userID uint) ([]*CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CartLine), args.Error(1)
}

func (m *MockRepository) GetLine(ctx context.Context, userID uint, productID, size string) (*CartLine, error) {
	args := m.Called(ctx, userID, productID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartLine), args.Error(1)
}

func (m *MockRepository) CreateLine(ctx context.Context, params AddToCartParams) (*CartLine, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartLine), args.Error(1)
}

func (m *MockRepository) UpdateLineQuantity(ctx context.Context, lineID uint, quantity int) (*CartLine, error) {
	args := m.Called(ctx, lineID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartLine), args.Error(1)
}

func (m *MockRepository) RemoveLine(ctx context.Context, params RemoveFromCartParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockRepository) ClearCart(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) ClearCartTx(ctx context.Context, tx *sql.Tx, userID uint) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

// MockProductRepository is a mock for the product repository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, productID string, onlyActive bool) (*product.Product, error) {
	args := m.Called(ctx, productID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetSizeStock(ctx context.Context, productID, size string) (int, error) {
	args := m.Called(ctx, productID, size)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, params product.CreateProductParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, params product.UpdateProductParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func newTestService(repo *MockRepository, productRepo *MockProductRepository) Service {
	return NewService(repo, productRepo, events.NewBus())
}

func TestService_AddToCart(t *testing.T) {
	ctx := context.Background()
	activeProduct := &product.Product{ID: "p1", Name: "Denim Jacket", Price: 1000, Active: true}

	t.Run("NewLine", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(repo, productRepo)

		params := AddToCartParams{UserID: 1, ProductID: "p1", Size: "M", Quantity: 2}

		productRepo.On("GetByID", ctx, "p1", true).Return(activeProduct, nil)
		repo.On("GetLine", ctx, uint(1), "p1", "M").Return(nil, nil)
		productRepo.On("GetSizeStock", ctx, "p1", "M").Return(10, nil)
		repo.On("CreateLine", ctx, params).
			Return(&CartLine{ID: 1, UserID: 1, ProductID: "p1", Size: "M", Quantity: 2}, nil)

		line, err := svc.AddToCart(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, 2, line.Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("MergesDuplicateProductSize", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(repo, productRepo)

		params := AddToCartParams{UserID: 1, ProductID: "p1", Size: "M", Quantity: 2}
		existing := &CartLine{ID: 7, UserID: 1, ProductID: "p1", Size: "M", Quantity: 3}

		productRepo.On("GetByID", ctx, "p1", true).Return(activeProduct, nil)
		repo.On("GetLine", ctx, uint(1), "p1", "M").Return(existing, nil)
		productRepo.On("GetSizeStock", ctx, "p1", "M").Return(10, nil)
		repo.On("UpdateLineQuantity", ctx, uint(7), 5).
			Return(&CartLine{ID: 7, UserID: 1, ProductID: "p1", Size: "M", Quantity: 5}, nil)

		line, err := svc.AddToCart(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, 5, line.Quantity)

		// merge path never creates a second line for the same (product, size)
		repo.AssertNotCalled(t, "CreateLine", mock.Anything, mock.Anything)
	})

	t.Run("DefaultsToStandardSize", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(repo, productRepo)

		productRepo.On("GetByID", ctx, "p1", true).Return(activeProduct, nil)
		repo.On("GetLine", ctx, uint(1), "p1", product.SizeStandard).Return(nil, nil)
		productRepo.On("GetSizeStock", ctx, "p1", product.SizeStandard).Return(3, nil)
		repo.On("CreateLine", ctx, AddToCartParams{UserID: 1, ProductID: "p1", Size: product.SizeStandard, Quantity: 1}).
			Return(&CartLine{ID: 2, UserID: 1, ProductID: "p1", Size: product.SizeStandard, Quantity: 1}, nil)

		line, err := svc.AddToCart(ctx, AddToCartParams{UserID: 1, ProductID: "p1", Quantity: 1})
		require.NoError(t, err)
		assert.Equal(t, product.SizeStandard, line.Size)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(repo, productRepo)

		existing := &CartLine{ID: 7, UserID: 1, ProductID: "p1", Size: "M", Quantity: 3}

		productRepo.On("GetByID", ctx, "p1", true).Return(activeProduct, nil)
		repo.On("GetLine", ctx, uint(1), "p1", "M").Return(existing, nil)
		productRepo.On("GetSizeStock", ctx, "p1", "M").Return(4, nil)

		_, err := svc.AddToCart(ctx, AddToCartParams{UserID: 1, ProductID: "p1", Size: "M", Quantity: 2})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(repo, productRepo)

		_, err := svc.AddToCart(ctx, AddToCartParams{UserID: 1, ProductID: "p1", Size: "M", Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(repo, productRepo)

		productRepo.On("GetByID", ctx, "ghost", true).Return(nil, product.ErrProductNotFound)

		_, err := svc.AddToCart(ctx, AddToCartParams{UserID: 1, ProductID: "ghost", Size: "M", Quantity: 1})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("ZeroQuantityRemovesLine", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(repo, productRepo)

		repo.On("RemoveLine", ctx, RemoveFromCartParams{UserID: 1, ProductID: "p1", Size: "M"}).Return(nil)

		err := svc.UpdateQuantity(ctx, UpdateQuantityParams{UserID: 1, ProductID: "p1", Size: "M", Quantity: 0})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("PositiveQuantityUpdates", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(repo, productRepo)

		existing := &CartLine{ID: 7, UserID: 1, ProductID: "p1", Size: "M", Quantity: 3}
		repo.On("GetLine", ctx, uint(1), "p1", "M").Return(existing, nil)
		repo.On("UpdateLineQuantity", ctx, uint(7), 4).Return(existing, nil)

		err := svc.UpdateQuantity(ctx, UpdateQuantityParams{UserID: 1, ProductID: "p1", Size: "M", Quantity: 4})
		require.NoError(t, err)
	})

	t.Run("MissingLine", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := newTestService(repo, productRepo)

		repo.On("GetLine", ctx, uint(1), "p1", "M").Return(nil, nil)

		err := svc.UpdateQuantity(ctx, UpdateQuantityParams{UserID: 1, ProductID: "p1", Size: "M", Quantity: 4})
		assert.ErrorIs(t, err, ErrCartLineNotFound)
	})
}

func TestService_ClearCart(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	productRepo := new(MockProductRepository)
	svc := newTestService(repo, productRepo)

	repo.On("ClearCart", ctx, uint(1)).Return(nil)

	assert.NoError(t, svc.ClearCart(ctx, 1))
	repo.AssertExpectations(t)
}
