package product

import (
	"context"

	"fashniz-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListProducts(ctx context.Context, category string) ([]*Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (*Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.List(ctx, ListOptions{Category: category, OnlyActive: true})
}

func (s *service) GetProduct(ctx context.Context, productID string) (*Product, error) {
	return s.repo.GetByID(ctx, productID, true)
}

func (s *service) CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error) {
	if params.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("name", params.Name),
			zap.Error(err),
		)
		return nil, err
	}

	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, params UpdateProductParams) (*Product, error) {
	if params.Price != nil && *params.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	return s.repo.Update(ctx, params)
}

func (s *service) DeleteProduct(ctx context.Context, productID string) error {
	return s.repo.Delete(ctx, productID)
}
