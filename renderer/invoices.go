package renderer

import (
	"bytes"
	"iter"
	"strconv"

	"github.com/etnz/inventory"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// Invoices renders a table of invoices under title, with their total.
func Invoices(title string, invoices iter.Seq[inventory.Invoice], cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	var rows [][]string
	total := decimal.Zero
	for inv := range invoices {
		rows = append(rows, invoiceRow(inv, cur))
		total = total.Add(inv.TotalPrice)
	}
	if len(rows) == 0 {
		doc.PlainText("No invoices.")
		return doc.String()
	}
	doc.Table(invoiceTable(rows))
	doc.PlainTextf("%s, total %s", plural(len(rows), "invoice"), md.Bold(money(total, cur)))
	return doc.String()
}

func invoiceTable(rows [][]string) md.TableSet {
	return md.TableSet{
		Header: []string{"ID", "Product", "Quantity", "Total", "Date"},
		Rows:   rows,
	}
}

func invoiceRow(inv inventory.Invoice, cur string) []string {
	return []string{
		strconv.FormatInt(inv.ID, 10),
		cell(inv.ProductName),
		strconv.Itoa(inv.Quantity),
		money(inv.TotalPrice, cur),
		inv.Date.Local().Format(timeFormat),
	}
}
