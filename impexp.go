package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// This file handles the exchange formats: CSV for products and invoices,
// and an XLSX workbook holding both.

var (
	productsHeader = []string{"ID", "Name", "Category", "Price", "Quantity", "TotalValue"}
	invoicesHeader = []string{"ID", "Product", "Quantity", "TotalPrice", "Date"}
)

// invoiceTimeFormat is the layout of invoice dates in exports.
const invoiceTimeFormat = "2006-01-02 15:04:05"

// ExportProductsCSV writes products as CSV with a header row.
func ExportProductsCSV(w io.Writer, products iter.Seq[Product]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(productsHeader); err != nil {
		return err
	}
	for p := range products {
		err := cw.Write([]string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Category,
			p.Price.StringFixed(priceDecimals),
			strconv.Itoa(p.Quantity),
			p.TotalValue().StringFixed(priceDecimals),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportInvoicesCSV writes invoices as CSV with a header row.
func ExportInvoicesCSV(w io.Writer, invoices iter.Seq[Invoice]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(invoicesHeader); err != nil {
		return err
	}
	for inv := range invoices {
		err := cw.Write([]string{
			strconv.FormatInt(inv.ID, 10),
			inv.ProductName,
			strconv.Itoa(inv.Quantity),
			inv.TotalPrice.StringFixed(priceDecimals),
			exportTime(inv.Date),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseProductsCSV reads products from CSV rows "id,name,category,price,quantity".
//
// The first row is a header and is ignored, so is the id column and any
// column after quantity. Rows with an empty name, category, price or
// quantity, or whose price or quantity is not a valid non-negative number,
// are skipped and counted.
func ParseProductsCSV(r io.Reader) (fields []ProductFields, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("could not read csv: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		f, ok := parseProductRecord(record)
		if !ok {
			line, _ := cr.FieldPos(0)
			log.Printf("import-skip line=%d record=%q", line, record)
			skipped++
			continue
		}
		fields = append(fields, f)
	}
	return fields, skipped, nil
}

func parseProductRecord(record []string) (ProductFields, bool) {
	if len(record) < 5 {
		return ProductFields{}, false
	}
	for _, v := range record[1:5] {
		if strings.TrimSpace(v) == "" {
			return ProductFields{}, false
		}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil || price.IsNegative() {
		return ProductFields{}, false
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil || quantity < 0 {
		return ProductFields{}, false
	}
	return ProductFields{
		Name:     record[1],
		Category: record[2],
		Price:    price,
		Quantity: quantity,
	}, true
}

// ImportProductsCSV adds every valid product of the CSV in r to the ledger,
// each with a new id, then persists the product collection once.
// It returns the number of products added and the number of rows skipped.
func (l *Ledger) ImportProductsCSV(r io.Reader) (added, skipped int, err error) {
	fields, skipped, err := ParseProductsCSV(r)
	if err != nil {
		return 0, 0, err
	}
	for _, f := range fields {
		if _, err := l.addProduct(f); err != nil {
			skipped++
			continue
		}
		added++
	}
	if added > 0 {
		l.persist(ProductsKey)
	}
	log.Printf("import-products added=%d skipped=%d", added, skipped)
	return added, skipped, nil
}

// Sheet names of the XLSX export.
const (
	InventorySheet = "Inventory"
	InvoicesSheet  = "Invoices"
)

// ExportXLSX writes a workbook with an Inventory sheet listing the
// products and an Invoices sheet listing the invoices.
func (l *Ledger) ExportXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", InventorySheet, err)
	}
	if err := setRow(f, InventorySheet, 1, productsHeader); err != nil {
		return err
	}
	row := 2
	for p := range l.Products() {
		err := setRow(f, InventorySheet, row, []any{
			p.ID, p.Name, p.Category, p.Price.InexactFloat64(), p.Quantity, p.TotalValue().InexactFloat64(),
		})
		if err != nil {
			return err
		}
		row++
	}

	if _, err := f.NewSheet(InvoicesSheet); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", InvoicesSheet, err)
	}
	if err := setRow(f, InvoicesSheet, 1, invoicesHeader); err != nil {
		return err
	}
	row = 2
	for inv := range l.Invoices() {
		err := setRow(f, InvoicesSheet, row, []any{
			inv.ID, inv.ProductName, inv.Quantity, inv.TotalPrice.InexactFloat64(), exportTime(inv.Date),
		})
		if err != nil {
			return err
		}
		row++
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("could not write workbook: %w", err)
	}
	return nil
}

func setRow[T any](f *excelize.File, sheet string, row int, values []T) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("could not write row %d of %q: %w", row, sheet, err)
	}
	return nil
}

// exportTime formats an invoice date in local time.
func exportTime(t time.Time) string { return t.Local().Format(invoiceTimeFormat) }
