package service

import (
	"context"
	"errors"
	"testing"

	cerrors "github.com/marketbase/catalog/internal/catalog/errors"
	"github.com/marketbase/catalog/internal/catalog/model"
	"github.com/marketbase/catalog/internal/catalog/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products  []model.Product
	product   model.Product
	createdID int64
	error     error
}

// Simulate creating a product: assign the configured ID
func (m *mockProductStore) Create(_ context.Context, product *model.Product) error {
	if m.error == nil {
		product.ID = m.createdID
	}
	return m.error
}

// Simulate updating a product
func (m *mockProductStore) Update(_ context.Context, product *model.Product) error {
	if product.ID == 0 {
		return model.NewDataValidationError("update called on item with empty id")
	}
	return m.error
}

// Simulate deleting a product
func (m *mockProductStore) Delete(_ context.Context, _ *model.Product) error {
	return m.error
}

// Simulate listing all products
func (m *mockProductStore) All(_ context.Context) ([]model.Product, error) {
	return m.products, m.error
}

// Simulate finding a product by ID
func (m *mockProductStore) Find(_ context.Context, _ int64) (*model.Product, error) {
	return &m.product, m.error
}

// Simulate finding products by name
func (m *mockProductStore) FindByName(_ context.Context, _ string) ([]model.Product, error) {
	return m.products, m.error
}

// Simulate the lazy availability query
func (m *mockProductStore) FindByAvailability(_ context.Context, _ bool) store.Result {
	return &mockResult{products: m.products, error: m.error}
}

// Simulate the lazy category query
func (m *mockProductStore) FindByCategory(_ context.Context, _ model.Category) store.Result {
	return &mockResult{products: m.products, error: m.error}
}

// Simulate finding products by price
func (m *mockProductStore) FindByPrice(_ context.Context, _ decimal.Decimal) ([]model.Product, error) {
	return m.products, m.error
}

type mockResult struct {
	products []model.Product
	error    error
}

func (r *mockResult) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), r.error
}

func (r *mockResult) All(_ context.Context) ([]model.Product, error) {
	return r.products, r.error
}

func sampleProduct() model.Product {
	return model.Product{
		ID:          1,
		Name:        "Fedora",
		Description: "A red hat",
		Price:       decimal.RequireFromString("12.50"),
		Available:   true,
		Category:    model.CategoryCloths,
	}
}

func sampleDto() ProductDto {
	return ProductDto{
		ID:          1,
		Name:        "Fedora",
		Description: "A red hat",
		Price:       "12.5",
		Available:   true,
		Category:    "CLOTHS",
	}
}

func Test_ProductService_Find(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		productID   int64
		expected    *ProductDto
		expectError error
	}{
		{
			name:        "Success - product found",
			mockStore:   &mockProductStore{product: sampleProduct()},
			productID:   1,
			expected:    func() *ProductDto { d := sampleDto(); return &d }(),
			expectError: nil,
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: cerrors.ErrProductNotFound},
			productID:   1,
			expected:    nil,
			expectError: cerrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.Find(context.Background(), tc.productID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_List(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		filter      ListFilter
		expected    []ProductDto
		expectError error
	}{
		{
			name:      "Success - no filter lists all",
			mockStore: &mockProductStore{products: []model.Product{sampleProduct()}},
			filter:    ListFilter{},
			expected:  []ProductDto{sampleDto()},
		},
		{
			name:      "Success - empty store",
			mockStore: &mockProductStore{products: []model.Product{}},
			filter:    ListFilter{},
			expected:  []ProductDto{},
		},
		{
			name:      "Success - filter by name",
			mockStore: &mockProductStore{products: []model.Product{sampleProduct()}},
			filter:    ListFilter{Name: "Fedora"},
			expected:  []ProductDto{sampleDto()},
		},
		{
			name:      "Success - filter by category",
			mockStore: &mockProductStore{products: []model.Product{sampleProduct()}},
			filter:    ListFilter{Category: "CLOTHS"},
			expected:  []ProductDto{sampleDto()},
		},
		{
			name:      "Success - filter by availability",
			mockStore: &mockProductStore{products: []model.Product{sampleProduct()}},
			filter:    ListFilter{Available: "true"},
			expected:  []ProductDto{sampleDto()},
		},
		{
			name:      "Success - filter by price text",
			mockStore: &mockProductStore{products: []model.Product{sampleProduct()}},
			filter:    ListFilter{Price: "12.50"},
			expected:  []ProductDto{sampleDto()},
		},
		{
			name:        "Error - unknown category",
			mockStore:   &mockProductStore{},
			filter:      ListFilter{Category: "invalid category"},
			expectError: &model.DataValidationError{},
		},
		{
			name:        "Error - malformed availability",
			mockStore:   &mockProductStore{},
			filter:      ListFilter{Available: "False-ish"},
			expectError: &model.DataValidationError{},
		},
		{
			name:        "Error - malformed price",
			mockStore:   &mockProductStore{},
			filter:      ListFilter{Price: "$10"},
			expectError: &model.DataValidationError{},
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{error: ErrStoreError},
			filter:      ListFilter{},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.List(context.Background(), tc.filter)
			// then
			if tc.expectError != nil {
				var dve *model.DataValidationError
				if errors.As(tc.expectError, &dve) {
					assert.ErrorAs(t, err, &dve)
				} else {
					assert.ErrorIs(t, err, tc.expectError)
				}
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_List_MalformedAvailabilityMessage(t *testing.T) {
	// given
	service := NewService(&mockProductStore{})
	// when
	_, err := service.List(context.Background(), ListFilter{Available: "False-ish"})
	// then: the filter message names the bad value, not a Go type
	var dve *model.DataValidationError
	require.ErrorAs(t, err, &dve)
	assert.Equal(t, "invalid value for boolean [available]: False-ish", dve.Error())
}

func Test_ProductService_Create(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name:      "Success - product created with assigned ID",
			mockStore: &mockProductStore{createdID: 7},
			expected: func() *ProductDto {
				d := sampleDto()
				d.ID = 7
				return &d
			}(),
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{error: ErrStoreError},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			product := sampleProduct()
			product.ID = 0
			// when
			created, err := service.Create(context.Background(), &product)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, created)
			assert.Equal(t, int64(7), product.ID, "assigned ID is reflected on the entity")
		})
	}
}

func Test_ProductService_Update(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		id          int64
		expected    *ProductDto
		expectError error
	}{
		{
			name:      "Success - product updated",
			mockStore: &mockProductStore{},
			id:        1,
			expected:  func() *ProductDto { d := sampleDto(); return &d }(),
		},
		{
			name:        "Error - empty id",
			mockStore:   &mockProductStore{},
			id:          0,
			expectError: &model.DataValidationError{},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: cerrors.ErrProductNotFound},
			id:          1,
			expectError: cerrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			product := sampleProduct()
			// when
			updated, err := service.Update(context.Background(), tc.id, &product)
			// then
			if tc.expectError != nil {
				var dve *model.DataValidationError
				if errors.As(tc.expectError, &dve) {
					assert.ErrorAs(t, err, &dve)
				} else {
					assert.ErrorIs(t, err, tc.expectError)
				}
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, updated)
		})
	}
}

func Test_ProductService_Delete(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError error
	}{
		{
			name:      "Success - product deleted",
			mockStore: &mockProductStore{},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: cerrors.ErrProductNotFound},
			expectError: cerrors.ErrProductNotFound,
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{error: ErrStoreError},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			err := service.Delete(context.Background(), 1)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}
