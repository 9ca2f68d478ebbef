package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// priceDecimals is the precision prices are normalized to.
const priceDecimals = 2

// Product is a stock keeping record.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
}

// TotalValue returns price × quantity.
func (p Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Fields returns the mutable fields of p.
func (p Product) Fields() ProductFields {
	return ProductFields{
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Description: p.Description,
	}
}

// ProductFields holds the mutable fields of a Product, as given to
// AddProduct and UpdateProduct.
type ProductFields struct {
	Name        string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Description string
}

// normalize trims text fields, rounds the price and checks the product invariants.
func (f ProductFields) normalize() (ProductFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
	f.Description = strings.TrimSpace(f.Description)
	f.Price = f.Price.Round(priceDecimals)

	switch {
	case f.Name == "":
		return f, fmt.Errorf("product name is required: %w", ErrInvalidInput)
	case f.Category == "":
		return f, fmt.Errorf("category of %q is required: %w", f.Name, ErrInvalidInput)
	case f.Price.IsNegative():
		return f, fmt.Errorf("price %s is negative: %w", f.Price, ErrInvalidInput)
	case f.Quantity < 0:
		return f, fmt.Errorf("quantity %d is negative: %w", f.Quantity, ErrInvalidInput)
	}
	return f, nil
}

func (f ProductFields) apply(p *Product) {
	p.Name = f.Name
	p.Category = f.Category
	p.Price = f.Price
	p.Quantity = f.Quantity
	p.Description = f.Description
}
