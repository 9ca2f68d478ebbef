package inventory

import (
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// dec is a helper for test to create a decimal from a literal.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// testClock is a settable clock, its zero value is 2025-08-15 10:00 local time.
type testClock struct{ t time.Time }

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, time.August, 15, 10, 0, 0, 0, time.Local)}
}

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestLedger opens a ledger on an empty MemoryStore with a test clock.
func newTestLedger(t *testing.T, opts ...Option) (*Ledger, *MemoryStore, *testClock) {
	t.Helper()
	store := NewMemoryStore()
	clock := newTestClock()
	l, err := Open(store, append([]Option{WithClock(clock.Now)}, opts...)...)
	require.NoError(t, err)
	return l, store, clock
}

// mustAdd adds a product or fails the test.
func mustAdd(t *testing.T, l *Ledger, name, category, price string, quantity int) Product {
	t.Helper()
	p, err := l.AddProduct(ProductFields{Name: name, Category: category, Price: dec(price), Quantity: quantity})
	require.NoError(t, err)
	return p
}

// failingStore is a Store whose Save always fails.
type failingStore struct {
	*MemoryStore
	err error
}

func (s failingStore) Save(key string, data []byte) error { return s.err }

func strconvID(id int64) string { return strconv.FormatInt(id, 10) }

// closingStore counts its Close calls.
type closingStore struct {
	*MemoryStore
	closed int
}

func (s *closingStore) Close() error {
	s.closed++
	return nil
}
