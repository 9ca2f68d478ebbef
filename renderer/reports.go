package renderer

import (
	"bytes"
	"cmp"
	"strconv"

	"github.com/etnz/inventory"
	md "github.com/nao1215/markdown"
)

// InventoryReport renders the inventory report.
func InventoryReport(r *inventory.InventoryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1f("Inventory Report on %s", r.Date)
	doc.BulletList(
		"Products: "+md.Bold(strconv.Itoa(r.TotalProducts)),
		"Total value: "+md.Bold(r.TotalValue.String()),
		"Low stock: "+md.Bold(strconv.Itoa(len(r.LowStock))),
	)

	if len(r.Categories) > 0 {
		doc.H2("Categories")
		var rows [][]string
		for _, c := range r.Categories {
			rows = append(rows, []string{cell(c.Category), strconv.Itoa(c.Products), strconv.Itoa(c.Units), c.Value.String()})
		}
		doc.Table(md.TableSet{
			Header: []string{"Category", "Products", "Units", "Value"},
			Rows:   rows,
		})
	}

	if len(r.LowStock) > 0 {
		doc.H2f("Low Stock (under %d)", r.LowStockThreshold)
		var rows [][]string
		for _, p := range r.LowStock {
			rows = append(rows, productRow(p, r.Currency))
		}
		doc.Table(productTable(rows))
	}

	if len(r.Products) > 0 {
		doc.H2("Products")
		var rows [][]string
		for _, p := range r.Products {
			rows = append(rows, productRow(p, r.Currency))
		}
		doc.Table(productTable(rows))
	}
	return doc.String()
}

// SalesReport renders the sales report.
func SalesReport(r *inventory.SalesReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1f("Sales Report (%s)", r.Range)
	if len(r.Invoices) == 0 {
		doc.PlainText("No sales.")
		return doc.String()
	}

	items := []string{
		"Total sales: " + md.Bold(r.TotalSales.String()),
		"Items sold: " + md.Bold(strconv.Itoa(r.TotalItems)),
		"Invoices: " + md.Bold(strconv.Itoa(len(r.Invoices))),
	}
	if most, ok := r.MostSold(); ok {
		items = append(items, "Most sold: "+md.Bold(cmp.Or(most.ProductName, "-"))+" ("+strconv.Itoa(most.Quantity)+")")
	}
	doc.BulletList(items...)

	doc.H2("By Product")
	var rows [][]string
	for _, ps := range r.ByProduct {
		rows = append(rows, []string{cell(ps.ProductName), strconv.Itoa(ps.Quantity), ps.Amount.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Product", "Quantity", "Amount"},
		Rows:   rows,
	})

	doc.H2("By Day")
	rows = nil
	for _, ds := range r.ByDay {
		rows = append(rows, []string{ds.Day.String(), strconv.Itoa(ds.Invoices), ds.Amount.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Day", "Invoices", "Amount"},
		Rows:   rows,
	})

	doc.H2("Invoices")
	rows = nil
	for _, inv := range r.Invoices {
		rows = append(rows, invoiceRow(inv, r.Currency))
	}
	doc.Table(invoiceTable(rows))
	return doc.String()
}

// FinancialSummary renders the financial summary.
func FinancialSummary(s *inventory.FinancialSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1f("Financial Summary (%s)", s.Range)
	doc.Table(md.TableSet{
		Header: []string{"Indicator", "Value"},
		Rows: [][]string{
			{"Total sales", s.TotalSales.String()},
			{"Invoices", strconv.Itoa(s.InvoiceCount)},
			{"Inventory value", s.InventoryValue.String()},
			{"Estimated profit", md.Bold(s.EstimatedProfit.String())},
		},
	})
	doc.PlainText("Estimated profit is the sales of the period minus the current inventory value.")
	return doc.String()
}
