package inventory

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against the document
//
//	{"products": [...], "invoices": [...]}
//
// where records have the same fields as in the store. For instance
// "$.products[?(@.quantity < 10)].name" lists the names of products low on stock.
func (l *Ledger) Query(path string) (any, error) {
	doc, err := l.document()
	if err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return v, nil
}

// document returns the ledger as generic json values.
func (l *Ledger) document() (any, error) {
	data, err := json.Marshal(struct {
		Products []Product `json:"products"`
		Invoices []Invoice `json:"invoices"`
	}{
		Products: nonNil(l.products),
		Invoices: nonNil(l.invoices),
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal ledger: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not unmarshal ledger: %w", err)
	}
	return doc, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
