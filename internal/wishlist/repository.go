package wishlist

import (
	"context"
	"database/sql"
)

type Repository interface {
	List(ctx context.Context, userID uint) ([]*Item, error)
	Add(ctx context.Context, userID uint, productID string) (*Item, error)
	Remove(ctx context.Context, userID uint, productID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, userID uint) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, product_id, added_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY added_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}

// Add is idempotent: re-adding an already-wishlisted product keeps the
// original entry and its added_at.
func (r *repository) Add(ctx context.Context, userID uint, productID string) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO UPDATE SET product_id = EXCLUDED.product_id
		RETURNING id, user_id, product_id, added_at`,
		userID, productID,
	).Scan(&it.ID, &it.UserID, &it.ProductID, &it.AddedAt)

	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) Remove(ctx context.Context, userID uint, productID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}
