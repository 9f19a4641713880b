package product

import (
	"context"
	"database/sql"
	"errors"

	"fashniz-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	GetByID(ctx context.Context, productID string, onlyActive bool) (*Product, error)
	GetSizeStock(ctx context.Context, productID, size string) (int, error)
	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	Update(ctx context.Context, params UpdateProductParams) (*Product, error)
	Delete(ctx context.Context, productID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	query := `
		SELECT id, name, description, category, price, image_url, active, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR category = $1)
		  AND (NOT $2 OR active)
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, opts.Category, opts.OnlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Category, &p.Price,
			&p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range products {
		sizes, err := r.getSizes(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Sizes = sizes
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, productID string, onlyActive bool) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, price, image_url, active, created_at, updated_at
		FROM products
		WHERE id = $1 AND (NOT $2 OR active)`,
		productID, onlyActive,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	sizes, err := r.getSizes(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Sizes = sizes

	return &p, nil
}

func (r *repository) getSizes(ctx context.Context, productID string) ([]SizeStock, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT size, stock FROM product_sizes WHERE product_id = $1 ORDER BY size",
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sizes []SizeStock
	for rows.Next() {
		var s SizeStock
		if err := rows.Scan(&s.Size, &s.Stock); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}

	return sizes, rows.Err()
}

func (r *repository) GetSizeStock(ctx context.Context, productID, size string) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx,
		"SELECT stock FROM product_sizes WHERE product_id = $1 AND size = $2",
		productID, size,
	).Scan(&stock)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSizeNotAvailable
	}
	if err != nil {
		return 0, err
	}

	return stock, nil
}

func (r *repository) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	log := logger.FromCtx(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id := uuid.New().String()

	var p Product
	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, category, price, image_url, active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id, name, description, category, price, image_url, active, created_at, updated_at`,
		id, params.Name, params.Description, params.Category, params.Price, params.ImageURL,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		log.Error("db: failed to insert product", zap.String("name", params.Name), zap.Error(err))
		return nil, err
	}

	sizes := params.Sizes
	if len(sizes) == 0 {
		sizes = []SizeStock{{Size: SizeStandard, Stock: 0}}
	}

	for _, s := range sizes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO product_sizes (product_id, size, stock) VALUES ($1, $2, $3)",
			p.ID, s.Size, s.Stock,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	p.Sizes = sizes
	return &p, nil
}

func (r *repository) Update(ctx context.Context, params UpdateProductParams) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		UPDATE products SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			category    = COALESCE($4, category),
			price       = COALESCE($5, price),
			image_url   = COALESCE($6, image_url),
			active      = COALESCE($7, active),
			updated_at  = NOW()
		WHERE id = $1
		RETURNING id, name, description, category, price, image_url, active, created_at, updated_at`,
		params.ProductID, params.Name, params.Description, params.Category,
		params.Price, params.ImageURL, params.Active,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	sizes, err := r.getSizes(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Sizes = sizes

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, productID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET active = false, updated_at = NOW() WHERE id = $1",
		productID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
