package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/inventory"
	"github.com/etnz/inventory/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	name        string
	category    string
	price       string
	quantity    int
	description string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a product to the inventory" }
func (*addCmd) Usage() string {
	return `inv add -n <name> -c <category> -p <price> -q <quantity> [-desc <description>]

  Adds a product with a new id. The price is rounded to two decimals.

Usage Examples:
$ inv add -n Widget -c Tools -p 10 -q 5
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Product name (required)")
	f.StringVar(&c.category, "c", "", "Product category (required)")
	f.StringVar(&c.price, "p", "0", "Unit price")
	f.IntVar(&c.quantity, "q", 0, "Quantity in stock")
	f.StringVar(&c.description, "desc", "", "Optional description")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	price, err := parsePrice(c.price)
	if err != nil {
		return failure(err)
	}
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	p, err := l.AddProduct(inventory.ProductFields{
		Name:        c.name,
		Category:    c.category,
		Price:       price,
		Quantity:    c.quantity,
		Description: c.description,
	})
	if err != nil {
		return failure(err)
	}
	fmt.Printf("Added product %d %q: %d in stock at %s\n", p.ID, p.Name, p.Quantity, l.M(p.Price))
	return saved(l)
}

type updateCmd struct {
	id          int64
	name        string
	category    string
	price       string
	quantity    int
	description string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "update the fields of a product" }
func (*updateCmd) Usage() string {
	return `inv update -id <id> [-n <name>] [-c <category>] [-p <price>] [-q <quantity>] [-desc <description>]

  Replaces the fields of a product. Fields without a flag keep their current value.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Product id (required)")
	f.StringVar(&c.name, "n", "", "New name")
	f.StringVar(&c.category, "c", "", "New category")
	f.StringVar(&c.price, "p", "", "New unit price")
	f.IntVar(&c.quantity, "q", 0, "New quantity in stock")
	f.StringVar(&c.description, "desc", "", "New description")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	p, ok := l.Product(c.id)
	if !ok {
		return failure(fmt.Errorf("product %d: %w", c.id, inventory.ErrNotFound))
	}

	fields := p.Fields()
	var perr error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "n":
			fields.Name = c.name
		case "c":
			fields.Category = c.category
		case "p":
			fields.Price, perr = parsePrice(c.price)
		case "q":
			fields.Quantity = c.quantity
		case "desc":
			fields.Description = c.description
		}
	})
	if perr != nil {
		return failure(perr)
	}

	p, err = l.UpdateProduct(c.id, fields)
	if err != nil {
		return failure(err)
	}
	fmt.Printf("Updated product %d %q: %d in stock at %s\n", p.ID, p.Name, p.Quantity, l.M(p.Price))
	return saved(l)
}

type deleteCmd struct {
	id int64
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a product, its invoices are kept" }
func (*deleteCmd) Usage() string {
	return `inv delete -id <id>

  Deletes a product. Invoices of past sales of this product are kept.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Product id (required)")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	if !l.DeleteProduct(c.id) {
		return failure(fmt.Errorf("product %d: %w", c.id, inventory.ErrNotFound))
	}
	fmt.Printf("Deleted product %d\n", c.id)
	return saved(l)
}

type productsCmd struct {
	search   string
	category string
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "list products, optionally filtered" }
func (*productsCmd) Usage() string {
	return `inv products [-s <text>] [-c <category>]

  Lists the products whose name contains text (case insensitive), in the
  given category if any.
`
}

func (c *productsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "s", "", "Text to search in product names")
	f.StringVar(&c.category, "c", "", "Exact category")
}

func (c *productsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	printMarkdown(renderer.Products(l.Filter(c.search, c.category), l.Currency()))
	return subcommands.ExitSuccess
}

// parsePrice parses a decimal price, "$" signs and spaces are ignored.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.NewReplacer("$", "", " ", "").Replace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, inventory.ErrInvalidInput)
	}
	return d, nil
}
