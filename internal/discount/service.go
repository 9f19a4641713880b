package discount

import (
	"context"
	"time"

	"fashniz-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Validate(ctx context.Context, code string, subtotal int64, now time.Time) (*Applied, error)
	ListDiscounts(ctx context.Context) ([]*Discount, error)
	CreateDiscount(ctx context.Context, params CreateDiscountParams) (*Discount, error)
	DeactivateDiscount(ctx context.Context, code string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Validate checks the coupon's date window and minimum-purchase threshold
// against the given subtotal and returns the applied snapshot.
func (s *service) Validate(ctx context.Context, code string, subtotal int64, now time.Time) (*Applied, error) {
	log := logger.FromCtx(ctx)

	d, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !d.Active {
		return nil, ErrCouponInactive
	}
	if now.Before(d.StartsAt) {
		return nil, ErrCouponNotStarted
	}
	if now.After(d.EndsAt) {
		return nil, ErrCouponExpired
	}
	if subtotal < d.MinPurchase {
		return nil, ErrMinPurchaseNotMet
	}

	applied := &Applied{
		Code:         d.Code,
		Type:         d.Type,
		Value:        d.Value,
		AppliedValue: appliedValue(d, subtotal),
	}

	log.Info("coupon validated",
		zap.String("code", d.Code),
		zap.String("type", string(d.Type)),
		zap.Int64("subtotal", subtotal),
		zap.Int64("applied_value", applied.AppliedValue),
	)

	return applied, nil
}

// appliedValue computes the PKR amount the coupon takes off the subtotal.
// Percentage math runs through decimal to avoid float drift, rounded half-up
// to whole PKR. A fixed coupon never exceeds the subtotal.
func appliedValue(d *Discount, subtotal int64) int64 {
	switch d.Type {
	case TypePercentage:
		v := decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(d.Value)).
			Div(decimal.NewFromInt(100)).
			Round(0)
		return v.IntPart()
	case TypeFixed:
		if d.Value > subtotal {
			return subtotal
		}
		return d.Value
	default:
		return 0
	}
}

func (s *service) ListDiscounts(ctx context.Context) ([]*Discount, error) {
	return s.repo.List(ctx)
}

func (s *service) CreateDiscount(ctx context.Context, params CreateDiscountParams) (*Discount, error) {
	if params.Value <= 0 {
		return nil, ErrInvalidValue
	}
	if params.Type == TypePercentage && params.Value > 100 {
		return nil, ErrInvalidValue
	}

	return s.repo.Create(ctx, params)
}

func (s *service) DeactivateDiscount(ctx context.Context, code string) error {
	return s.repo.Deactivate(ctx, code)
}
