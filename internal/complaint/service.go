package complaint

import (
	"context"
	"errors"

	"fashniz-be/internal/utils"
)

var ErrInvalidComplaint = errors.New("email and message are required")

type Service interface {
	Create(ctx context.Context, params CreateComplaintParams) (*Complaint, error)
	List(ctx context.Context) ([]*Complaint, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateComplaintParams) (*Complaint, error) {
	if params.Message == "" || !utils.ValidEmail(params.Email) {
		return nil, ErrInvalidComplaint
	}
	if params.Category == "" {
		params.Category = "general"
	}

	return s.repo.Create(ctx, params)
}

func (s *service) List(ctx context.Context) ([]*Complaint, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id uint, status Status) error {
	if status != StatusOpen && status != StatusResolved {
		return errors.New("invalid complaint status")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
