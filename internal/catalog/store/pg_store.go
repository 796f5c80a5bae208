package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	cerrors "github.com/marketbase/catalog/internal/catalog/errors"
	"github.com/marketbase/catalog/internal/catalog/model"
	"github.com/shopspring/decimal"
)

// selectProducts lists the product columns in scan order. The price column
// is cast to text so it round-trips through shopspring decimal without
// loss.
const selectProducts = `SELECT id, name, description, price::text, available, category FROM products`

// PgStore implements ProductStore using PostgreSQL as the data store.
// All operations run as single statements, so each write commits atomically.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// Create inserts the product and assigns the database-generated ID.
func (p *PgStore) Create(ctx context.Context, product *model.Product) error {
	const q = `INSERT INTO products (name, description, price, available, category)
               VALUES ($1, $2, $3::numeric, $4, $5) RETURNING id`
	row := p.db.QueryRow(ctx, q,
		product.Name, product.Description, product.Price.String(), product.Available, product.Category.String())
	// The key is always assigned by the database; a stale ID on the
	// in-memory product is only overwritten once the insert succeeded.
	var id int64
	if err := row.Scan(&id); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = id
	return nil
}

// Update persists the product's fields to its existing row.
// Returns a DataValidationError if the product has no ID yet.
func (p *PgStore) Update(ctx context.Context, product *model.Product) error {
	if product.ID == 0 {
		return model.NewDataValidationError("update called on item with empty id")
	}
	const q = `UPDATE products
               SET name = $2, description = $3, price = $4::numeric, available = $5, category = $6
               WHERE id = $1`
	tag, err := p.db.Exec(ctx, q,
		product.ID, product.Name, product.Description, product.Price.String(), product.Available, product.Category.String())
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cerrors.ErrProductNotFound
	}
	return nil
}

// Delete removes the product's row and clears the in-memory ID, returning
// the entity to its unpersisted state.
func (p *PgStore) Delete(ctx context.Context, product *model.Product) error {
	const q = `DELETE FROM products WHERE id = $1`
	tag, err := p.db.Exec(ctx, q, product.ID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cerrors.ErrProductNotFound
	}
	product.ID = 0
	return nil
}

// All retrieves every persisted product.
func (p *PgStore) All(ctx context.Context) ([]model.Product, error) {
	rows, err := p.db.Query(ctx, selectProducts+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return collectProducts(rows)
}

// Find retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Find(ctx context.Context, id int64) (*model.Product, error) {
	row := p.db.QueryRow(ctx, selectProducts+` WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindByName retrieves every product whose name exactly equals the given
// text. Names carry no unique constraint, so the result may hold any
// number of products.
func (p *PgStore) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	rows, err := p.db.Query(ctx, selectProducts+` WHERE name = $1 ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by name: %w", err)
	}
	return collectProducts(rows)
}

// FindByAvailability returns a lazy result over products with the given
// availability flag.
func (p *PgStore) FindByAvailability(ctx context.Context, available bool) Result {
	return &pgResult{db: p.db, where: `available = $1`, args: []any{available}}
}

// FindByCategory returns a lazy result over products with the given
// category.
func (p *PgStore) FindByCategory(ctx context.Context, category model.Category) Result {
	return &pgResult{db: p.db, where: `category = $1`, args: []any{category.String()}}
}

// FindByPrice retrieves every product whose price equals the given decimal
// value. Callers normalize text input through model.ParsePrice first, so
// "10" and 10 select the same rows.
func (p *PgStore) FindByPrice(ctx context.Context, price decimal.Decimal) ([]model.Product, error) {
	rows, err := p.db.Query(ctx, selectProducts+` WHERE price = $1::numeric ORDER BY id`, price.String())
	if err != nil {
		return nil, fmt.Errorf("failed to find products by price: %w", err)
	}
	return collectProducts(rows)
}

// pgResult implements Result by re-executing the underlying predicate on
// every call, which keeps Count and All independent and repeatable.
type pgResult struct {
	db    *pgxpool.Pool
	where string
	args  []any
}

func (r *pgResult) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM products WHERE `+r.where, r.args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *pgResult) All(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, selectProducts+` WHERE `+r.where+` ORDER BY id`, r.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return collectProducts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one row in selectProducts column order.
func scanProduct(row rowScanner) (*model.Product, error) {
	var product model.Product
	var price, category string
	if err := row.Scan(&product.ID, &product.Name, &product.Description, &price, &product.Available, &category); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("stored price %q is not a decimal: %w", price, err)
	}
	product.Price = parsed
	// The category column carries a CHECK constraint, so the stored tag is
	// always a member of the closed set.
	product.Category = model.Category(category)
	return &product, nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()
	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}
