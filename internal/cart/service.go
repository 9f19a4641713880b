package cart

import (
	"context"

	"fashniz-be/internal/events"
	"fashniz-be/internal/logger"
	"fashniz-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddToCartParams) (*CartLine, error)
	GetCart(ctx context.Context, userID uint) ([]*CartLine, error)
	UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error
	RemoveFromCart(ctx context.Context, params RemoveFromCartParams) error
	ClearCart(ctx context.Context, userID uint) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
	bus         *events.Bus
}

func NewService(repo Repository, productRepo product.Repository, bus *events.Bus) Service {
	return &service{repo: repo, productRepo: productRepo, bus: bus}
}

// AddToCart adds a product to a user's cart, merging quantity into an
// existing line for the same (product, size).
func (s *service) AddToCart(ctx context.Context, params AddToCartParams) (*CartLine, error) {
	log := logger.FromCtx(ctx)

	if params.ProductID == "" {
		return nil, ErrMissingProduct
	}
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if params.Size == "" {
		params.Size = product.SizeStandard
	}

	// 1. Product must exist and be active
	p, err := s.productRepo.GetByID(ctx, params.ProductID, true)
	if err != nil {
		return nil, ErrProductNotFound
	}

	// 2. Existing line for (product, size), if any
	line, err := s.repo.GetLine(ctx, params.UserID, params.ProductID, params.Size)
	if err != nil {
		return nil, err
	}

	// 3. Final quantity after merge
	finalQty := params.Quantity
	if line != nil {
		finalQty += line.Quantity
	}

	// 4. Validate stock for the requested size
	stock, err := s.productRepo.GetSizeStock(ctx, params.ProductID, params.Size)
	if err != nil {
		return nil, err
	}
	if stock < finalQty {
		log.Warn("add to cart rejected: insufficient stock",
			zap.String("product_id", p.ID),
			zap.String("size", params.Size),
			zap.Int("requested", finalQty),
			zap.Int("stock", stock),
		)
		return nil, ErrInsufficientStock
	}

	// 5. Create or merge
	if line == nil {
		line, err = s.repo.CreateLine(ctx, params)
	} else {
		line, err = s.repo.UpdateLineQuantity(ctx, line.ID, finalQty)
	}
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicCartUpdated, params.UserID)
	return line, nil
}

func (s *service) GetCart(ctx context.Context, userID uint) ([]*CartLine, error) {
	return s.repo.GetCart(ctx, userID)
}

// UpdateQuantity sets the quantity of a cart line; zero or negative removes it.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error {
	if params.ProductID == "" {
		return ErrMissingProduct
	}
	if params.Size == "" {
		params.Size = product.SizeStandard
	}

	if params.Quantity <= 0 {
		return s.RemoveFromCart(ctx, RemoveFromCartParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
			Size:      params.Size,
		})
	}

	line, err := s.repo.GetLine(ctx, params.UserID, params.ProductID, params.Size)
	if err != nil {
		return err
	}
	if line == nil {
		return ErrCartLineNotFound
	}

	if _, err := s.repo.UpdateLineQuantity(ctx, line.ID, params.Quantity); err != nil {
		return err
	}

	s.bus.Publish(events.TopicCartUpdated, params.UserID)
	return nil
}

func (s *service) RemoveFromCart(ctx context.Context, params RemoveFromCartParams) error {
	if params.ProductID == "" {
		return ErrMissingProduct
	}
	if params.Size == "" {
		params.Size = product.SizeStandard
	}

	if err := s.repo.RemoveLine(ctx, params); err != nil {
		return err
	}

	s.bus.Publish(events.TopicCartUpdated, params.UserID)
	return nil
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return err
	}

	s.bus.Publish(events.TopicCartUpdated, userID)
	return nil
}
