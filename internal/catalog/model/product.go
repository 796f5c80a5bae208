// Package model defines the Product entity, its category vocabulary and
// the (de)serialization contract shared by the store and transport layers.
package model

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a single catalog item. ID is the backend-assigned
// surrogate key; zero means the product has never been persisted (or has
// been deleted).
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Available   bool
	Category    Category
}

// Serialize produces the plain key/value representation of the product.
// Price travels as its canonical string form, the category as its tag name,
// and an unassigned ID as null.
func (p *Product) Serialize() map[string]any {
	var id any
	if p.ID != 0 {
		id = p.ID
	}
	return map[string]any{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

// Deserialize populates the product from a plain key/value representation,
// typically a decoded JSON body. It validates every field and returns a
// DataValidationError on the first violation; the receiver is only written
// to on success. Deserialize never persists anything.
func (p *Product) Deserialize(data map[string]any) error {
	if data == nil {
		return NewDataValidationError("invalid product: body of request contained bad or no data")
	}
	name, err := stringField(data, "name")
	if err != nil {
		return err
	}
	description, err := stringField(data, "description")
	if err != nil {
		return err
	}
	rawPrice, ok := data["price"]
	if !ok {
		return NewDataValidationError("invalid product: missing price")
	}
	price, err := ParsePrice(rawPrice)
	if err != nil {
		return err
	}
	rawAvailable, ok := data["available"]
	if !ok {
		return NewDataValidationError("invalid product: missing available")
	}
	// A genuine JSON boolean is required; string forms like "False" are
	// rejected rather than coerced.
	available, ok := rawAvailable.(bool)
	if !ok {
		return NewDataValidationError("invalid type for boolean [available]: %T", rawAvailable)
	}
	rawCategory, err := stringField(data, "category")
	if err != nil {
		return err
	}
	category, err := ParseCategory(rawCategory)
	if err != nil {
		return err
	}

	p.ID = idField(data)
	p.Name = name
	p.Description = description
	p.Price = price
	p.Available = available
	p.Category = category
	return nil
}

// ParsePrice normalizes the accepted price forms (decimal, text, JSON
// number, integer) to one canonical non-negative decimal, so that "10" and
// 10 compare equal everywhere.
func ParsePrice(value any) (decimal.Decimal, error) {
	var price decimal.Decimal
	var err error
	switch v := value.(type) {
	case decimal.Decimal:
		price = v
	case string:
		price, err = decimal.NewFromString(strings.TrimSpace(v))
	case json.Number:
		price, err = decimal.NewFromString(v.String())
	case float64:
		price = decimal.NewFromFloat(v)
	case int:
		price = decimal.NewFromInt(int64(v))
	case int64:
		price = decimal.NewFromInt(v)
	default:
		return decimal.Decimal{}, NewDataValidationError("invalid product: bad price: %v", value)
	}
	if err != nil {
		return decimal.Decimal{}, NewDataValidationError("invalid product: bad price: %v", value)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, NewDataValidationError("invalid product: negative price: %s", price)
	}
	return price, nil
}

// stringField extracts a required string value from the representation.
func stringField(data map[string]any, key string) (string, error) {
	value, ok := data[key]
	if !ok {
		return "", NewDataValidationError("invalid product: missing %s", key)
	}
	s, ok := value.(string)
	if !ok {
		return "", NewDataValidationError("invalid type for string [%s]: %T", key, value)
	}
	return s, nil
}

// idField reads an optional id. The key is advisory on input: creation
// overwrites it with the backend-assigned value anyway.
func idField(data map[string]any) int64 {
	switch v := data["id"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0
		}
		return id
	default:
		return 0
	}
}
