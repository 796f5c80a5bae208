// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/marketbase/catalog/internal/catalog/model"
	"github.com/marketbase/catalog/internal/catalog/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// Find retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Find(ctx context.Context, id int64) (*ProductDto, error)

	// List returns the products matching the filter, or every product
	// when the filter is empty. Returns a DataValidationError for filter
	// values outside their domain (unknown category, malformed price or
	// availability flag).
	List(ctx context.Context, filter ListFilter) ([]ProductDto, error)

	// Create persists the product and returns it with its assigned ID.
	Create(ctx context.Context, product *model.Product) (*ProductDto, error)

	// Update persists the product's fields to the row identified by id.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product *model.Product) (*ProductDto, error)

	// Delete removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Delete(ctx context.Context, id int64) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductDto represents the serialized form of a product at the transport
// boundary: price as decimal text, category as its tag name.
type ProductDto struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=250"`
	Price       string `json:"price"       validate:"required"`
	Available   bool   `json:"available"`
	Category    string `json:"category"    validate:"required"`
}

// ListFilter narrows List to a single query-by-field operation. At most
// one field is honored; they are checked in declaration order.
type ListFilter struct {
	Name      string
	Category  string
	Available string
	Price     string
}

// Find retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Find(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// List retrieves the products selected by the filter as ProductDTOs.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]ProductDto, error) {
	products, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	productDTOs := make([]ProductDto, len(products))
	for i := range products {
		productDTOs[i] = *toDto(&products[i])
	}
	return productDTOs, nil
}

func (s *Service) list(ctx context.Context, filter ListFilter) ([]model.Product, error) {
	switch {
	case filter.Name != "":
		return s.repository.FindByName(ctx, filter.Name)
	case filter.Category != "":
		category, err := model.ParseCategory(filter.Category)
		if err != nil {
			return nil, err
		}
		return s.repository.FindByCategory(ctx, category).All(ctx)
	case filter.Available != "":
		available, err := strconv.ParseBool(filter.Available)
		if err != nil {
			return nil, model.NewDataValidationError("invalid value for boolean [available]: %s", filter.Available)
		}
		return s.repository.FindByAvailability(ctx, available).All(ctx)
	case filter.Price != "":
		price, err := model.ParsePrice(filter.Price)
		if err != nil {
			return nil, err
		}
		return s.repository.FindByPrice(ctx, price)
	default:
		return s.repository.All(ctx)
	}
}

// Create persists a new product and returns it as a ProductDto.
// Returns an error if the product cannot be created.
func (s *Service) Create(ctx context.Context, product *model.Product) (*ProductDto, error) {
	if err := s.repository.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toDto(product), nil
}

// Update persists the product's fields to the row identified by id and
// returns the updated product as a ProductDto.
func (s *Service) Update(ctx context.Context, id int64, product *model.Product) (*ProductDto, error) {
	product.ID = id
	if err := s.repository.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// Delete deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repository.Delete(ctx, &model.Product{ID: id})
}

// toDto converts a model.Product to a ProductDto.
func toDto(product *model.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.String(),
		Available:   product.Available,
		Category:    product.Category.String(),
	}
}
