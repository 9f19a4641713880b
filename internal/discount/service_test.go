package discount

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*Discount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Discount), args.Error(1)
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*Discount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Discount), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params CreateDiscountParams) (*Discount, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Discount), args.Error(1)
}

func (m *MockRepository) Deactivate(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func validCoupon(now time.Time) *Discount {
	return &Discount{
		ID:          1,
		Code:        "SAVE10",
		Type:        TypePercentage,
		Value:       10,
		MinPurchase: 1000,
		StartsAt:    now.Add(-24 * time.Hour),
		EndsAt:      now.Add(24 * time.Hour),
		Active:      true,
	}
}

func TestService_Validate(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("PercentageApplied", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByCode", ctx, "SAVE10").Return(validCoupon(now), nil)

		applied, err := svc.Validate(ctx, "SAVE10", 2150, now)
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", applied.Code)
		assert.Equal(t, int64(215), applied.AppliedValue)
	})

	t.Run("PercentageRoundsHalfUp", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByCode", ctx, "SAVE10").Return(validCoupon(now), nil)

		// 10% of 1005 = 100.5 -> 101
		applied, err := svc.Validate(ctx, "SAVE10", 1005, now)
		require.NoError(t, err)
		assert.Equal(t, int64(101), applied.AppliedValue)
	})

	t.Run("FixedCappedAtSubtotal", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		c := validCoupon(now)
		c.Type = TypeFixed
		c.Value = 5000
		c.MinPurchase = 0
		repo.On("GetByCode", ctx, "SAVE10").Return(c, nil)

		applied, err := svc.Validate(ctx, "SAVE10", 2000, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), applied.AppliedValue)
	})

	t.Run("NotStarted", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		c := validCoupon(now)
		c.StartsAt = now.Add(time.Hour)
		repo.On("GetByCode", ctx, "SAVE10").Return(c, nil)

		_, err := svc.Validate(ctx, "SAVE10", 2000, now)
		assert.ErrorIs(t, err, ErrCouponNotStarted)
	})

	t.Run("Expired", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		c := validCoupon(now)
		c.EndsAt = now.Add(-time.Hour)
		repo.On("GetByCode", ctx, "SAVE10").Return(c, nil)

		_, err := svc.Validate(ctx, "SAVE10", 2000, now)
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("BelowMinPurchase", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByCode", ctx, "SAVE10").Return(validCoupon(now), nil)

		_, err := svc.Validate(ctx, "SAVE10", 500, now)
		assert.ErrorIs(t, err, ErrMinPurchaseNotMet)
	})

	t.Run("Inactive", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		c := validCoupon(now)
		c.Active = false
		repo.On("GetByCode", ctx, "SAVE10").Return(c, nil)

		_, err := svc.Validate(ctx, "SAVE10", 2000, now)
		assert.ErrorIs(t, err, ErrCouponInactive)
	})

	t.Run("Unknown", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByCode", ctx, "GHOST").Return(nil, ErrCouponNotFound)

		_, err := svc.Validate(ctx, "GHOST", 2000, now)
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}

func TestService_CreateDiscount(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsPercentAbove100", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.CreateDiscount(ctx, CreateDiscountParams{
			Code: "TOOMUCH", Type: TypePercentage, Value: 120,
		})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("RejectsNonPositiveValue", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.CreateDiscount(ctx, CreateDiscountParams{
			Code: "ZERO", Type: TypeFixed, Value: 0,
		})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})
}
