package inventory

import (
	"cmp"
	"slices"

	"github.com/etnz/inventory/date"
	"github.com/shopspring/decimal"
)

// InventoryReport is a snapshot of the stock.
type InventoryReport struct {
	Date              date.Date
	Currency          string
	TotalProducts     int
	TotalValue        Money
	LowStockThreshold int
	LowStock          []Product // products under the threshold, lowest quantity first
	Categories        []CategoryCount
	Products          []Product
}

// CategoryCount is the number of products in a category.
type CategoryCount struct {
	Category string
	Products int
	Units    int
	Value    Money
}

// NewInventoryReport computes the inventory report of the current stock.
func (l *Ledger) NewInventoryReport() *InventoryReport {
	r := &InventoryReport{
		Date:              l.Today(),
		Currency:          l.currency,
		TotalProducts:     len(l.products),
		TotalValue:        l.M(decimal.Zero),
		LowStockThreshold: l.lowStock,
		Products:          slices.Clone(l.products),
	}
	byCat := make(map[string]*CategoryCount)
	for _, p := range l.products {
		r.TotalValue = r.TotalValue.Add(l.M(p.TotalValue()))
		if p.Quantity < l.lowStock {
			r.LowStock = append(r.LowStock, p)
		}
		c, ok := byCat[p.Category]
		if !ok {
			c = &CategoryCount{Category: p.Category, Value: l.M(decimal.Zero)}
			byCat[p.Category] = c
		}
		c.Products++
		c.Units += p.Quantity
		c.Value = c.Value.Add(l.M(p.TotalValue()))
	}
	slices.SortStableFunc(r.LowStock, func(a, b Product) int { return cmp.Compare(a.Quantity, b.Quantity) })
	for _, cat := range l.Categories() {
		r.Categories = append(r.Categories, *byCat[cat])
	}
	return r
}

// SalesReport summarizes the invoices of a date range.
type SalesReport struct {
	Range      date.Range
	Currency   string
	TotalSales Money
	TotalItems int
	ByProduct  []ProductSales // most sold first
	ByDay      []DaySales     // chronological
	Invoices   []Invoice
}

// ProductSales is the quantity and amount sold of a product, identified by
// the name it had on the invoice.
type ProductSales struct {
	ProductName string
	Quantity    int
	Amount      Money
}

// DaySales is the amount sold on a day.
type DaySales struct {
	Day      date.Date
	Invoices int
	Amount   Money
}

// NewSalesReport computes the sales report of the invoices in r.
func (l *Ledger) NewSalesReport(r date.Range) *SalesReport {
	rep := &SalesReport{
		Range:      r,
		Currency:   l.currency,
		TotalSales: l.M(decimal.Zero),
	}
	byProduct := make(map[string]*ProductSales)
	byDay := make(map[date.Date]*DaySales)
	for inv := range l.InvoicesIn(r) {
		amount := l.M(inv.TotalPrice)
		rep.Invoices = append(rep.Invoices, inv)
		rep.TotalSales = rep.TotalSales.Add(amount)
		rep.TotalItems += inv.Quantity

		ps, ok := byProduct[inv.ProductName]
		if !ok {
			ps = &ProductSales{ProductName: inv.ProductName, Amount: l.M(decimal.Zero)}
			byProduct[inv.ProductName] = ps
		}
		ps.Quantity += inv.Quantity
		ps.Amount = ps.Amount.Add(amount)

		day := inv.Day()
		ds, ok := byDay[day]
		if !ok {
			ds = &DaySales{Day: day, Amount: l.M(decimal.Zero)}
			byDay[day] = ds
		}
		ds.Invoices++
		ds.Amount = ds.Amount.Add(amount)
	}

	for _, ps := range byProduct {
		rep.ByProduct = append(rep.ByProduct, *ps)
	}
	slices.SortFunc(rep.ByProduct, func(a, b ProductSales) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductName, b.ProductName)
	})
	for _, ds := range byDay {
		rep.ByDay = append(rep.ByDay, *ds)
	}
	slices.SortFunc(rep.ByDay, func(a, b DaySales) int {
		switch {
		case a.Day.Before(b.Day):
			return -1
		case a.Day.After(b.Day):
			return 1
		}
		return 0
	})
	return rep
}

// MostSold returns the product sold in the largest quantity, ties broken by name.
func (r *SalesReport) MostSold() (ProductSales, bool) {
	if len(r.ByProduct) == 0 {
		return ProductSales{}, false
	}
	return r.ByProduct[0], true
}

// FinancialSummary compares sales over a range with the current stock value.
type FinancialSummary struct {
	Range           date.Range
	Currency        string
	TotalSales      Money
	InvoiceCount    int
	InventoryValue  Money
	EstimatedProfit Money // TotalSales - InventoryValue
}

// NewFinancialSummary computes the financial summary of the invoices in r
// against the current inventory value.
func (l *Ledger) NewFinancialSummary(r date.Range) *FinancialSummary {
	s := &FinancialSummary{
		Range:          r,
		Currency:       l.currency,
		TotalSales:     l.M(decimal.Zero),
		InventoryValue: l.M(decimal.Zero),
	}
	for inv := range l.InvoicesIn(r) {
		s.TotalSales = s.TotalSales.Add(l.M(inv.TotalPrice))
		s.InvoiceCount++
	}
	for _, p := range l.products {
		s.InventoryValue = s.InventoryValue.Add(l.M(p.TotalValue()))
	}
	s.EstimatedProfit = s.TotalSales.Sub(s.InventoryValue)
	return s
}
