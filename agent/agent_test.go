package agent

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/etnz/inventory"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

func newLedger(t *testing.T) *inventory.Ledger {
	t.Helper()
	now := time.Date(2025, time.August, 15, 10, 0, 0, 0, time.Local)
	l, err := inventory.Open(inventory.NewMemoryStore(), inventory.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	w, err := l.AddProduct(inventory.ProductFields{Name: "Widget", Category: "Tools", Price: decimal.NewFromInt(10), Quantity: 5})
	if err != nil {
		t.Fatalf("AddProduct() failed: %v", err)
	}
	if _, err := l.AddProduct(inventory.ProductFields{Name: "Apple", Category: "Food", Price: decimal.NewFromInt(1), Quantity: 50}); err != nil {
		t.Fatalf("AddProduct() failed: %v", err)
	}
	if _, err := l.Sell(w.ID, 2); err != nil {
		t.Fatalf("Sell() failed: %v", err)
	}
	return l
}

func call(lib Library, name string, args map[string]any) *genai.FunctionResponse {
	return lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
}

func TestClerkFunctions(t *testing.T) {
	lib := NewLibrary(ClerkFunctions(newLedger(t)))

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"Dashboard", nil, "| Sales today | $20.00 |"},
		{"SearchProducts", map[string]any{"search": "widg"}, "| Widget | Tools | $10.00 | 3 | $30.00 |"},
		{"SearchProducts", map[string]any{"category": "Food"}, "| Apple | Food |"},
		{"SalesReport", map[string]any{"period": "week"}, "Most sold: **Widget** (2)"},
		{"SalesReport", map[string]any{"period": "day", "date": "-1d"}, "No sales."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(lib, tt.name, tt.args)
			if resp.ID != "1" || resp.Name != tt.name {
				t.Errorf("response is for %s/%s, want 1/%s", resp.ID, resp.Name, tt.name)
			}
			out, ok := resp.Response["output"].(string)
			if !ok {
				t.Fatalf("no output in %v", resp.Response)
			}
			if strings.HasPrefix(tt.want, "|") && !hasRow(out, tt.want) || !strings.HasPrefix(tt.want, "|") && !strings.Contains(out, tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestLibraryErrors(t *testing.T) {
	lib := NewLibrary(ClerkFunctions(newLedger(t)))

	for _, tt := range []struct {
		name string
		args map[string]any
	}{
		{"Unknown", nil},
		{"SalesReport", map[string]any{"period": "decade"}},
		{"SalesReport", map[string]any{"date": "yesterday-ish"}},
	} {
		resp := call(lib, tt.name, tt.args)
		if _, ok := resp.Response["error"]; !ok {
			t.Errorf("%s(%v) = %v, want an error", tt.name, tt.args, resp.Response)
		}
	}
}

func TestDeclarations(t *testing.T) {
	clerk := NewClerk(newLedger(t))
	f := newFacilitator(clerk)
	decls := f.Config.Tools[0].FunctionDeclarations
	if len(decls) != 1 || decls[0].Name != "Clerk" {
		t.Fatalf("facilitator tools = %v, want the Clerk", decls)
	}
	var names []string
	for _, d := range clerk.Config.Tools[0].FunctionDeclarations {
		names = append(names, d.Name)
	}
	if got := strings.Join(names, ","); got != "Dashboard,SearchProducts,SalesReport" {
		t.Errorf("clerk tools = %s", got)
	}
}

func TestExpertCallInvalidQuestion(t *testing.T) {
	e := &Expert{Name: "Clerk"}
	resp := e.Call(context.Background(), "1", map[string]any{"question": 42})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call() = %v, want an error", resp.Response)
	}
	resp = e.Call(context.Background(), "1", map[string]any{"question": "how many widgets?"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call() on a stopped expert = %v, want an error", resp.Response)
	}
}

// hasRow reports whether a table line of out holds the cells of row, in
// order, whatever the padding of the cells.
func hasRow(out, row string) bool {
	want := tableCells(row)
	for line := range strings.Lines(out) {
		got := tableCells(line)
		for i := 0; i+len(want) <= len(got); i++ {
			if slices.Equal(got[i:i+len(want)], want) {
				return true
			}
		}
	}
	return false
}

func tableCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	var cells []string
	for _, c := range strings.Split(line, "|") {
		cells = append(cells, strings.TrimSpace(c))
	}
	return cells
}
