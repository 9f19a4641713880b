package user

import (
	"context"
	"database/sql"
	"errors"

	"fashniz-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, password, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	CreateGoogleUser(ctx context.Context, email, googleID string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	GetProfile(ctx context.Context, userID uint) (*Profile, error)
	UpsertProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, password, role string) (*User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (email, password, role) VALUES ($1, $2, $3) RETURNING id, email, password, role, created_at",
		email, password, role,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password, role, google_id, created_at FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.GoogleID, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateGoogleUser inserts a fresh Google-backed account. It is a plain
// insert on purpose: an existing row's google_id is never rewritten from a
// login payload.
func (r *repository) CreateGoogleUser(ctx context.Context, email, googleID string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, role, google_id)
		VALUES ($1, '', $2, $3)
		RETURNING id, email, password, role, google_id, created_at`,
		email, string(RoleUser), googleID,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.GoogleID, &u.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, email, role, google_id, created_at FROM users ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.GoogleID, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

func (r *repository) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, first_name, last_name, phone, avatar_url,
		       address1, address2, city, state, postal_code, country,
		       created_at, updated_at
		FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Phone, &p.AvatarURL,
		&p.Address1, &p.Address2, &p.City, &p.State, &p.PostalCode, &p.Country,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpsertProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO profiles (user_id, first_name, last_name, phone, avatar_url,
		                      address1, address2, city, state, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name  = COALESCE(EXCLUDED.first_name, profiles.first_name),
			last_name   = COALESCE(EXCLUDED.last_name, profiles.last_name),
			phone       = COALESCE(EXCLUDED.phone, profiles.phone),
			avatar_url  = COALESCE(EXCLUDED.avatar_url, profiles.avatar_url),
			address1    = COALESCE(EXCLUDED.address1, profiles.address1),
			address2    = COALESCE(EXCLUDED.address2, profiles.address2),
			city        = COALESCE(EXCLUDED.city, profiles.city),
			state       = COALESCE(EXCLUDED.state, profiles.state),
			postal_code = COALESCE(EXCLUDED.postal_code, profiles.postal_code),
			country     = COALESCE(EXCLUDED.country, profiles.country),
			updated_at  = NOW()
		RETURNING id, user_id, first_name, last_name, phone, avatar_url,
		          address1, address2, city, state, postal_code, country,
		          created_at, updated_at`,
		params.UserID, params.FirstName, params.LastName, params.Phone, params.AvatarURL,
		params.Address1, params.Address2, params.City, params.State, params.PostalCode, params.Country,
	).Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Phone, &p.AvatarURL,
		&p.Address1, &p.Address2, &p.City, &p.State, &p.PostalCode, &p.Country,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &p, nil
}
