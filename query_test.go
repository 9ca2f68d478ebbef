package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	l, _, _ := newTestLedger(t)
	w := mustAdd(t, l, "Widget", "Tools", "10.00", 5)
	mustAdd(t, l, "Apple", "Food", "0.40", 100)
	_, err := l.Sell(w.ID, 2)
	require.NoError(t, err)

	tests := []struct {
		path string
		want any
	}{
		{"$.products[0].name", "Widget"},
		{"$.products[*].category", []any{"Tools", "Food"}},
		{"$.products[?(@.quantity < 10)].name", []any{"Widget"}},
		{"$.invoices[0].totalPrice", 20.0},
		{"$.invoices[0].productName", "Widget"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := l.Query(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = l.Query("$.products[")
	assert.Error(t, err)
}

func TestQueryEmptyLedger(t *testing.T) {
	l, _, _ := newTestLedger(t)
	got, err := l.Query("$.products[*].name")
	require.NoError(t, err)
	assert.Empty(t, got)
}
