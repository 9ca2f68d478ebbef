package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/inventory"
	"github.com/etnz/inventory/date"
	"github.com/etnz/inventory/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the dashboard figures" }
func (*dashboardCmd) Usage() string {
	return `inv dashboard

  Displays the number of products, the inventory value, the products low on
  stock, the number of categories, the total sales and the sales of today.
`
}

func (*dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	printMarkdown(renderer.Dashboard(l.Aggregates(), l.Currency(), l.Today()))
	return subcommands.ExitSuccess
}

type reportCmd struct {
	kind   string
	period string
	start  string
	end    string
}

func (*reportCmd) Name() string { return "report" }
func (*reportCmd) Synopsis() string {
	return "display the inventory, sales or financial report"
}
func (*reportCmd) Usage() string {
	return `inv report [-t inventory|sales|financial] [-p <period> | -s <start_date>] [-d <end_date>]

  inventory: stock value, products per category and products low on stock.
  sales:     sales of the range, by product and by day.
  financial: sales of the range against the current inventory value.

  The range is the period (default month, "all" for all time) containing the
  end date (default today), or from the start date to the end date.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "t", "inventory", "Report type: inventory, sales or financial")
	f.StringVar(&c.period, "p", "month", "Period of the report (day, week, month, quarter, year, all)")
	f.StringVar(&c.start, "s", "", "Start date of a custom range. Overrides -p.")
	f.StringVar(&c.end, "d", "0d", "End date of the range")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()

	switch c.kind {
	case "inventory":
		printMarkdown(renderer.InventoryReport(l.NewInventoryReport()))
		return subcommands.ExitSuccess
	case "sales", "financial":
	default:
		return failure(fmt.Errorf("unknown report type %q: %w", c.kind, inventory.ErrInvalidInput))
	}

	r, err := c.reportRange(l.Today())
	if err != nil {
		return failure(fmt.Errorf("%w: %w", err, inventory.ErrInvalidInput))
	}
	if c.kind == "sales" {
		printMarkdown(renderer.SalesReport(l.NewSalesReport(r)))
	} else {
		printMarkdown(renderer.FinancialSummary(l.NewFinancialSummary(r)))
	}
	return subcommands.ExitSuccess
}

func (c *reportCmd) reportRange(today date.Date) (date.Range, error) {
	end, err := date.ParseFrom(c.end, today)
	if err != nil {
		return date.Range{}, fmt.Errorf("error parsing end date: %w", err)
	}
	if c.start != "" {
		start, err := date.ParseFrom(c.start, today)
		if err != nil {
			return date.Range{}, fmt.Errorf("error parsing start date: %w", err)
		}
		return date.Range{From: start, To: end}, nil
	}
	if c.period == "all" {
		return date.Range{}, nil
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		return date.Range{}, err
	}
	return date.NewRange(end, period), nil
}
