// Package inventory keeps the stock and the sales of a small shop.
//
// It is local-first: the products and invoices collections are loaded from
// a key-value Store when the Ledger is opened, and every mutation saves the
// collections it changed before returning.
//
// The main functionalities are:
//   - Products: add, update, delete and filter stock records.
//   - Sales: Sell decrements the stock and appends an immutable Invoice
//     capturing the price at that instant. The stock never goes negative.
//   - Dashboard and reports: Aggregates, inventory, sales and financial
//     reports computed on demand from the collections.
//   - Exchange: CSV import/export, XLSX export and JSONPath queries.
//
// This package is the foundational logic of the `inv` command-line tool.
package inventory
