package cmd

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"os"

	"github.com/etnz/inventory"
	"github.com/etnz/inventory/date"
	"github.com/etnz/inventory/renderer"
	"github.com/google/subcommands"
)

type sellCmd struct {
	id       int64
	quantity int
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a quantity of a product and record the invoice" }
func (*sellCmd) Usage() string {
	return `inv sell -id <id> -q <quantity>

  Decrements the stock of the product and records an invoice at the current
  price. A sale exceeding the stock is rejected and changes nothing.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Product id (required)")
	f.IntVar(&c.quantity, "q", 1, "Quantity sold")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	inv, err := l.Sell(c.id, c.quantity)
	if err != nil {
		return failure(err)
	}
	fmt.Printf("Sold %d %q for %s: invoice %d\n", inv.Quantity, inv.ProductName, l.M(inv.TotalPrice), inv.ID)
	return saved(l)
}

type invoicesCmd struct {
	search string
	date   string
	period string
}

func (*invoicesCmd) Name() string     { return "invoices" }
func (*invoicesCmd) Synopsis() string { return "list invoices, optionally filtered" }
func (*invoicesCmd) Usage() string {
	return `inv invoices [-s <text>] [-d <date>] [-p <period>]

  Lists the invoices whose product name or id contains text. With -d or -p,
  only the invoices of the period (default day) containing the date (default
  today) are listed.
`
}

func (c *invoicesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "s", "", "Text to search in product names or invoice ids")
	f.StringVar(&c.date, "d", "", "A day of the period to list (e.g. 2025-08-15, -1d)")
	f.StringVar(&c.period, "p", "", "Period to list (day, week, month, quarter, year)")
}

func (c *invoicesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()

	title := "Invoices"
	var r date.Range
	if c.date != "" || c.period != "" {
		on := l.Today()
		if c.date != "" {
			if on, err = date.ParseFrom(c.date, l.Today()); err != nil {
				return failure(fmt.Errorf("%w: %w", err, inventory.ErrInvalidInput))
			}
		}
		period := date.Daily
		if c.period != "" {
			if period, err = date.ParsePeriod(c.period); err != nil {
				return failure(fmt.Errorf("%w: %w", err, inventory.ErrInvalidInput))
			}
		}
		r = date.NewRange(on, period)
		title = fmt.Sprintf("Invoices (%s)", r)
	}

	printMarkdown(renderer.Invoices(title, within(l.SearchInvoices(c.search), r), l.Currency()))
	return subcommands.ExitSuccess
}

// within filters invoices of the range r.
func within(invoices iter.Seq[inventory.Invoice], r date.Range) iter.Seq[inventory.Invoice] {
	return func(yield func(inventory.Invoice) bool) {
		for inv := range invoices {
			if r.Contains(inv.Day()) && !yield(inv) {
				return
			}
		}
	}
}

type invoiceCmd struct {
	id     int64
	output string
}

func (*invoiceCmd) Name() string     { return "invoice" }
func (*invoiceCmd) Synopsis() string { return "show an invoice or write it to a text file" }
func (*invoiceCmd) Usage() string {
	return `inv invoice -id <id> [-o <file>]

  Shows the detail of an invoice. With -o the invoice is written as a plain
  text document instead, "-o -" uses invoice-<id>.txt.
`
}

func (c *invoiceCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Invoice id (required)")
	f.StringVar(&c.output, "o", "", "Write the invoice as text to this file")
}

func (c *invoiceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	inv, ok := l.Invoice(c.id)
	if !ok {
		return failure(fmt.Errorf("invoice %d: %w", c.id, inventory.ErrNotFound))
	}
	if c.output == "" {
		printMarkdown(renderer.Invoice(inv, l.Currency()))
		return subcommands.ExitSuccess
	}

	path := c.output
	if path == "-" {
		path = fmt.Sprintf("invoice-%d.txt", inv.ID)
	}
	if err := os.WriteFile(path, []byte(renderer.InvoiceText(inv, l.Currency())), 0644); err != nil {
		return failure(fmt.Errorf("could not write invoice: %w", err))
	}
	fmt.Fprintf(os.Stderr, "Invoice %d written to %s\n", inv.ID, path)
	return subcommands.ExitSuccess
}
