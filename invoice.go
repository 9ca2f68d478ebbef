package inventory

import (
	"time"

	"github.com/etnz/inventory/date"
	"github.com/shopspring/decimal"
)

// Invoice is the immutable record of a completed sale.
//
// ProductID is a weak reference: the product may have been renamed or
// deleted since, ProductName keeps the name it had at the time of sale.
type Invoice struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Date        time.Time       `json:"date"`
}

// UnitPrice returns the price of one unit at the time of sale.
func (inv Invoice) UnitPrice() decimal.Decimal {
	if inv.Quantity == 0 {
		return decimal.Zero
	}
	return inv.TotalPrice.Div(decimal.NewFromInt(int64(inv.Quantity)))
}

// Day returns the local calendar day of the sale.
func (inv Invoice) Day() date.Date { return date.Of(inv.Date.Local()) }
