// Package renderer turns ledger state into markdown, ready to be printed
// raw or styled for a terminal.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/inventory"
	"github.com/shopspring/decimal"
)

//go:embed templates/*
var templates embed.FS

// invoiceView is the data of the invoice templates.
type invoiceView struct {
	ID          int64
	ProductName string
	Quantity    int
	UnitPrice   string
	TotalPrice  string
	Date        string
}

func newInvoiceView(inv inventory.Invoice, cur string) invoiceView {
	return invoiceView{
		ID:          inv.ID,
		ProductName: inv.ProductName,
		Quantity:    inv.Quantity,
		UnitPrice:   money(inv.UnitPrice(), cur),
		TotalPrice:  money(inv.TotalPrice, cur),
		Date:        inv.Date.Local().Format(timeFormat),
	}
}

// Invoice renders the detail of an invoice as markdown.
func Invoice(inv inventory.Invoice, cur string) string {
	return renderTemplate("invoice", "invoice.md", newInvoiceView(inv, cur))
}

// InvoiceText renders an invoice as the plain text document handed to a customer.
func InvoiceText(inv inventory.Invoice, cur string) string {
	return renderTemplate("invoiceText", "invoice.txt", newInvoiceView(inv, cur))
}

// renderTemplate renders an embedded template file with data.
func renderTemplate(templateName, file string, data any) string {
	content, err := fs.ReadFile(templates, "templates/"+file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(templateName).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

const timeFormat = "2006-01-02 15:04"

// money formats an amount in cur.
func money(d decimal.Decimal, cur string) string { return inventory.M(d, cur).String() }

// cell escapes text for a table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

// plural returns "1 product", "2 products".
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
