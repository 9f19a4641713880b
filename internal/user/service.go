package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fashniz-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GoogleLogin(ctx context.Context, email, googleID string) (string, *User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	GetProfile(ctx context.Context, userID uint) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, email, hashed, string(RoleUser))
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return "", nil, ErrEmailExists
		}
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", nil, err
	}

	log.Info("register completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login: email not found", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login: password mismatch", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

// GoogleLogin signs in a Google-backed account and issues the same JWT that
// a password login would. The google_id binds to an account on first create
// and is never rewritten from a login payload: a request for an existing
// email whose stored google_id is absent or different is rejected, so a
// fabricated subject cannot take over a password account or replace a
// linked identity.
func (s *service) GoogleLogin(ctx context.Context, email, googleID string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	if email == "" || googleID == "" {
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if u.GoogleID == nil || *u.GoogleID != googleID {
			log.Warn("google login: subject mismatch", zap.String("email", email))
			return "", nil, ErrInvalidCredentials
		}
	case errors.Is(err, ErrUserNotFound):
		u, err = s.repo.CreateGoogleUser(ctx, email, googleID)
		if err != nil {
			log.Error("failed to create google user", zap.String("email", email), zap.Error(err))
			if strings.Contains(err.Error(), "users_email_key") {
				return "", nil, ErrInvalidCredentials
			}
			return "", nil, err
		}
	default:
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *service) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	if params.UserID == 0 {
		return nil, ErrUserNotFound
	}
	return s.repo.UpsertProfile(ctx, params)
}
