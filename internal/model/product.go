package model

import "time"

// Product represents a catalog record with an optional uploaded image
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Image     *string   `json:"image,omitempty"` // Stored filename, pointer for optional field
	Path      *string   `json:"path,omitempty"`  // Public path under /img once an image exists
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductForm is the multipart form body for creating or overwriting a product.
// The image file itself arrives as a separate form file part. Quantity and
// price are pointers so that a supplied 0 (out of stock, free item) passes the
// required check; only an absent field is rejected.
type ProductForm struct {
	Name     string   `form:"name" binding:"required"`
	Quantity *int     `form:"quantity" binding:"required"`
	Price    *float64 `form:"price" binding:"required"`
}
