package renderer

import (
	"bytes"
	"iter"
	"strconv"

	"github.com/etnz/inventory"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// Products renders a table of products followed by their count and total value.
func Products(products iter.Seq[inventory.Product], cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Products")

	var rows [][]string
	total := decimal.Zero
	for p := range products {
		rows = append(rows, productRow(p, cur))
		total = total.Add(p.TotalValue())
	}
	if len(rows) == 0 {
		doc.PlainText("No products.")
		return doc.String()
	}
	doc.Table(productTable(rows))
	doc.PlainTextf("%s, total value %s", plural(len(rows), "product"), md.Bold(money(total, cur)))
	return doc.String()
}

func productTable(rows [][]string) md.TableSet {
	return md.TableSet{
		Header: []string{"ID", "Name", "Category", "Price", "Quantity", "Total"},
		Rows:   rows,
	}
}

func productRow(p inventory.Product, cur string) []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		cell(p.Name),
		cell(p.Category),
		money(p.Price, cur),
		strconv.Itoa(p.Quantity),
		money(p.TotalValue(), cur),
	}
}
