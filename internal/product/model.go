package product

import "time"

type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Category    string      `json:"category"`
	Price       int64       `json:"price"`
	ImageURL    *string     `json:"image_url,omitempty"`
	Sizes       []SizeStock `json:"sizes"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// SizeStandard is the implicit size for unsized products.
const SizeStandard = "Standard"

type ListOptions struct {
	Category   string
	OnlyActive bool
}

type CreateProductParams struct {
	Name        string
	Description *string
	Category    string
	Price       int64
	ImageURL    *string
	Sizes       []SizeStock
}

type UpdateProductParams struct {
	ProductID   string
	Name        *string
	Description *string
	Category    *string
	Price       *int64
	ImageURL    *string
	Active      *bool
}
