package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/inventory"
	"github.com/etnz/inventory/date"
	md "github.com/nao1215/markdown"
)

// Dashboard renders the dashboard figures of a ledger on day today.
func Dashboard(a inventory.Aggregates, cur string, today date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1f("Dashboard on %s", today)
	doc.Table(md.TableSet{
		Header: []string{"Indicator", "Value"},
		Rows: [][]string{
			{"Products", strconv.Itoa(a.TotalProducts)},
			{"Inventory value", money(a.TotalInventoryValue, cur)},
			{"Low stock (< " + strconv.Itoa(a.LowStockThreshold) + ")", strconv.Itoa(a.LowStockCount)},
			{"Categories", strconv.Itoa(a.DistinctCategoryCount)},
			{"Invoices", strconv.Itoa(a.InvoiceCount)},
			{"Total sales", money(a.TotalSalesValue, cur)},
			{"Sales today", money(a.SalesToday, cur)},
		},
	})
	return doc.String()
}
