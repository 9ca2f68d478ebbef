package inventory

import "github.com/shopspring/decimal"

// Aggregates summarizes the ledger for the dashboard.
type Aggregates struct {
	TotalProducts         int
	TotalInventoryValue   decimal.Decimal
	LowStockCount         int
	LowStockThreshold     int
	DistinctCategoryCount int
	TotalSalesValue       decimal.Decimal
	SalesToday            decimal.Decimal
	InvoiceCount          int
}

// Aggregates computes the dashboard figures from the current collections.
// SalesToday only counts invoices of the current local day of the ledger clock.
func (l *Ledger) Aggregates() Aggregates {
	a := Aggregates{
		TotalProducts:         len(l.products),
		LowStockThreshold:     l.lowStock,
		DistinctCategoryCount: len(l.Categories()),
		InvoiceCount:          len(l.invoices),
	}
	for _, p := range l.products {
		a.TotalInventoryValue = a.TotalInventoryValue.Add(p.TotalValue())
		if p.Quantity < l.lowStock {
			a.LowStockCount++
		}
	}
	today := l.Today()
	for _, inv := range l.invoices {
		a.TotalSalesValue = a.TotalSalesValue.Add(inv.TotalPrice)
		if inv.Day() == today {
			a.SalesToday = a.SalesToday.Add(inv.TotalPrice)
		}
	}
	return a
}
