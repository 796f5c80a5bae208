// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/marketbase/catalog/internal/catalog/model"
	"github.com/shopspring/decimal"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// Create inserts the product as a new row and assigns the
	// backend-generated ID. Any ID already set on the product is ignored.
	Create(ctx context.Context, product *model.Product) error

	// Update persists the product's fields to the existing row.
	// Returns a DataValidationError when the product was never created
	// (empty id), ErrProductNotFound when the row no longer exists.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes the product's row permanently and clears its ID.
	// Returns ErrProductNotFound when the row does not exist.
	Delete(ctx context.Context, product *model.Product) error

	// All returns every persisted product.
	// Returns an empty slice if no products exist.
	All(ctx context.Context) ([]model.Product, error)

	// Find retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Find(ctx context.Context, id int64) (*model.Product, error)

	// FindByName returns every product whose name equals the given text.
	FindByName(ctx context.Context, name string) ([]model.Product, error)

	// FindByAvailability returns a lazy result over products with the
	// given availability flag.
	FindByAvailability(ctx context.Context, available bool) Result

	// FindByCategory returns a lazy result over products with the given
	// category.
	FindByCategory(ctx context.Context, category model.Category) Result

	// FindByPrice returns every product whose stored price equals the
	// given decimal value.
	FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error)
}

// Result is a lazily-evaluated, re-iterable query result. Count and All
// execute independent statements, so callers may count first and iterate
// later, any number of times.
type Result interface {
	// Count returns the number of products matching the query.
	Count(ctx context.Context) (int64, error)

	// All materializes the matching products.
	All(ctx context.Context) ([]model.Product, error)
}
