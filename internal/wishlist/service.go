package wishlist

import (
	"context"

	"fashniz-be/internal/events"
)

type Service interface {
	List(ctx context.Context, userID uint) ([]*Item, error)
	Add(ctx context.Context, userID uint, productID string) (*Item, error)
	Remove(ctx context.Context, userID uint, productID string) error
}

type service struct {
	repo Repository
	bus  *events.Bus
}

func NewService(repo Repository, bus *events.Bus) Service {
	return &service{repo: repo, bus: bus}
}

// List always returns a non-nil slice so an emptied wishlist serializes as
// [] rather than null.
func (s *service) List(ctx context.Context, userID uint) ([]*Item, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, userID uint, productID string) (*Item, error) {
	if productID == "" {
		return nil, ErrMissingProduct
	}

	it, err := s.repo.Add(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicWishlistUpdated, userID)
	return it, nil
}

func (s *service) Remove(ctx context.Context, userID uint, productID string) error {
	if productID == "" {
		return ErrMissingProduct
	}

	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return err
	}

	s.bus.Publish(events.TopicWishlistUpdated, userID)
	return nil
}
