package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/inventory"
	"github.com/google/subcommands"
)

type importCmd struct {
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import products from a CSV file" }
func (*importCmd) Usage() string {
	return `inv import -f <file.csv>

  Adds every product of a CSV file "id,name,category,price,quantity" with a
  header row. Ids are reassigned. Rows with a missing or invalid field are
  skipped. Use "-f -" to read the standard input.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV file to import (required)")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		return failure(fmt.Errorf("missing -f: %w", inventory.ErrInvalidInput))
	}
	var r io.Reader = os.Stdin
	if c.file != "-" {
		file, err := os.Open(c.file)
		if err != nil {
			return failure(err)
		}
		defer file.Close()
		r = file
	}

	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	added, skipped, err := l.ImportProductsCSV(r)
	if err != nil {
		return failure(err)
	}
	fmt.Printf("Imported %d products, skipped %d rows\n", added, skipped)
	return saved(l)
}

type exportCmd struct {
	file     string
	invoices bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export products or invoices as CSV, or everything as XLSX" }
func (*exportCmd) Usage() string {
	return `inv export [-f <file>] [-invoices]

  Exports the products (or the invoices with -invoices) as CSV to the file, or
  to the standard output. A file ending with .xlsx receives a workbook with an
  Inventory and an Invoices sheet.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Output file, standard output by default")
	f.BoolVar(&c.invoices, "invoices", false, "Export the invoices instead of the products")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()

	write := func(w io.Writer) error { return inventory.ExportProductsCSV(w, l.Products()) }
	switch {
	case strings.EqualFold(filepath.Ext(c.file), ".xlsx"):
		write = l.ExportXLSX
	case c.invoices:
		write = func(w io.Writer) error { return inventory.ExportInvoicesCSV(w, l.Invoices()) }
	}

	if c.file == "" {
		err = write(os.Stdout)
	} else {
		err = writeFile(c.file, write)
	}
	if err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}

// writeFile creates path and fills it with write. The file is only complete
// once closed, so a failed close is an error too.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", path, err)
	}
	return nil
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the ledger" }
func (*queryCmd) Usage() string {
	return `inv query <jsonpath>

  Evaluates a JSONPath expression on {"products": [...], "invoices": [...]}
  and prints the result as JSON.

Usage Examples:
$ inv query '$.products[?(@.quantity < 10)].name'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return failure(fmt.Errorf("expected one JSONPath expression, got %d arguments: %w", f.NArg(), inventory.ErrInvalidInput))
	}
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	v, err := l.Query(f.Arg(0))
	if err != nil {
		return failure(fmt.Errorf("%w: %w", err, inventory.ErrInvalidInput))
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrite the store in its canonical form"
}
func (*fmtCmd) Usage() string {
	return `inv fmt

  Loads the products and invoices and saves them back as JSONL, one record
  per line. Collections saved as a JSON array, like a browser localStorage
  dump, are migrated this way.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := OpenLedger(ctx)
	if err != nil {
		return failure(err)
	}
	defer l.Close()
	if err := l.Save(); err != nil {
		return failure(err)
	}
	a := l.Aggregates()
	fmt.Fprintf(os.Stderr, "Formatted %d products and %d invoices.\n", a.TotalProducts, a.InvoiceCount)
	return subcommands.ExitSuccess
}
