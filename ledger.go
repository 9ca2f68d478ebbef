package inventory

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/inventory/date"
	"github.com/shopspring/decimal"
)

// Store keys of the two persisted collections.
const (
	ProductsKey = "products"
	InvoicesKey = "invoices"
)

// DefaultLowStockThreshold is the quantity under which a product counts as low stock.
const DefaultLowStockThreshold = 10

// DefaultCurrency is the reporting currency of a ledger opened without WithCurrency.
const DefaultCurrency = "USD"

// Ledger holds the products and invoices collections and applies every
// operation on them. Each mutation is persisted to the Store before the
// operation returns.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	store    Store
	products []Product
	invoices []Invoice

	now       func() time.Time
	lowStock  int
	currency  string
	lastID    int64
	persistEr error
}

// Option configures a Ledger in Open.
type Option func(*Ledger)

// WithClock replaces the wall clock used for ids, invoice dates and "today".
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLowStockThreshold sets the quantity under which a product is low on stock.
func WithLowStockThreshold(n int) Option {
	return func(l *Ledger) { l.lowStock = n }
}

// WithCurrency sets the reporting currency used to format amounts.
func WithCurrency(cur string) Option {
	return func(l *Ledger) { l.currency = strings.ToUpper(cur) }
}

// Open loads both collections from store. A missing key is an empty
// collection, any other load or decode error is returned.
func Open(store Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:    store,
		now:      time.Now,
		lowStock: DefaultLowStockThreshold,
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(l)
	}

	var err error
	if l.products, err = loadCollection[Product](store, ProductsKey); err != nil {
		return nil, err
	}
	if l.invoices, err = loadCollection[Invoice](store, InvoicesKey); err != nil {
		return nil, err
	}
	for _, p := range l.products {
		l.lastID = max(l.lastID, p.ID)
	}
	for _, inv := range l.invoices {
		l.lastID = max(l.lastID, inv.ID)
	}
	log.Printf("open-ledger products=%d invoices=%d", len(l.products), len(l.invoices))
	return l, nil
}

func loadCollection[T any](store Store, key string) ([]T, error) {
	data, err := store.Load(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load %q: %w", key, err)
	}
	records, err := Decode[T](data)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", key, err)
	}
	return records, nil
}

// Currency returns the reporting currency of the ledger.
func (l *Ledger) Currency() string { return l.currency }

// LowStockThreshold returns the quantity under which a product is low on stock.
func (l *Ledger) LowStockThreshold() int { return l.lowStock }

// Today returns the current local day according to the ledger clock.
func (l *Ledger) Today() date.Date { return date.Of(l.now().Local()) }

// M returns amount as Money in the ledger currency.
func (l *Ledger) M(amount decimal.Decimal) Money { return M(amount, l.currency) }

// nextID returns a new id, derived from the clock but always greater than
// any id issued before, products and invoices alike.
func (l *Ledger) nextID() int64 {
	l.lastID = max(l.now().UnixMilli(), l.lastID+1)
	return l.lastID
}

// AddProduct creates a product from f and persists the product collection.
func (l *Ledger) AddProduct(f ProductFields) (Product, error) {
	p, err := l.addProduct(f)
	if err != nil {
		return Product{}, err
	}
	l.persist(ProductsKey)
	return p, nil
}

func (l *Ledger) addProduct(f ProductFields) (Product, error) {
	f, err := f.normalize()
	if err != nil {
		return Product{}, err
	}
	p := Product{ID: l.nextID()}
	f.apply(&p)
	l.products = append(l.products, p)
	log.Printf("add-product id=%d name=%q quantity=%d", p.ID, p.Name, p.Quantity)
	return p, nil
}

// UpdateProduct replaces the mutable fields of product id with f.
// Applying the same fields twice is the same as applying them once.
func (l *Ledger) UpdateProduct(id int64, f ProductFields) (Product, error) {
	i := l.productIndex(id)
	if i < 0 {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	f, err := f.normalize()
	if err != nil {
		return Product{}, err
	}
	f.apply(&l.products[i])
	log.Printf("update-product id=%d name=%q quantity=%d", id, f.Name, f.Quantity)
	l.persist(ProductsKey)
	return l.products[i], nil
}

// DeleteProduct removes product id and reports whether it existed.
// Invoices referring to it are kept.
func (l *Ledger) DeleteProduct(id int64) bool {
	i := l.productIndex(id)
	if i < 0 {
		return false
	}
	l.products = slices.Delete(l.products, i, i+1)
	log.Printf("delete-product id=%d", id)
	l.persist(ProductsKey)
	return true
}

// Sell records the sale of quantity units of product productID. The stock is
// decremented and an invoice capturing the current price is appended. Nothing
// changes when an error is returned.
func (l *Ledger) Sell(productID int64, quantity int) (Invoice, error) {
	if quantity <= 0 {
		return Invoice{}, fmt.Errorf("quantity %d must be positive: %w", quantity, ErrInvalidInput)
	}
	i := l.productIndex(productID)
	if i < 0 {
		return Invoice{}, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	p := &l.products[i]
	if p.Quantity < quantity {
		return Invoice{}, fmt.Errorf("cannot sell %d %q, only %d in stock: %w", quantity, p.Name, p.Quantity, ErrInsufficientStock)
	}

	p.Quantity -= quantity
	inv := Invoice{
		ID:          l.nextID(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		TotalPrice:  p.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Date:        l.now(),
	}
	l.invoices = append(l.invoices, inv)
	log.Printf("sell product=%d quantity=%d invoice=%d total=%s", p.ID, quantity, inv.ID, inv.TotalPrice)
	l.persist(ProductsKey, InvoicesKey)
	return inv, nil
}

// Filter returns the products whose name contains search (case
// insensitive) and, when category is not empty, whose category is exactly
// category. Products are yielded in collection order.
func (l *Ledger) Filter(search, category string) iter.Seq[Product] {
	search = strings.ToLower(search)
	return func(yield func(Product) bool) {
		for _, p := range l.products {
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			if category != "" && p.Category != category {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Products iterates over all products in collection order.
func (l *Ledger) Products() iter.Seq[Product] { return slices.Values(l.products) }

// Invoices iterates over all invoices in creation order.
func (l *Ledger) Invoices() iter.Seq[Invoice] { return slices.Values(l.invoices) }

// Product returns the product with the given id.
func (l *Ledger) Product(id int64) (Product, bool) {
	i := l.productIndex(id)
	if i < 0 {
		return Product{}, false
	}
	return l.products[i], true
}

// Invoice returns the invoice with the given id.
func (l *Ledger) Invoice(id int64) (Invoice, bool) {
	i := slices.IndexFunc(l.invoices, func(inv Invoice) bool { return inv.ID == id })
	if i < 0 {
		return Invoice{}, false
	}
	return l.invoices[i], true
}

// Categories returns the sorted distinct categories of all products.
func (l *Ledger) Categories() []string {
	var cats []string
	for _, p := range l.products {
		cats = append(cats, p.Category)
	}
	slices.Sort(cats)
	return slices.Compact(cats)
}

// SearchInvoices returns invoices whose product name contains text (case
// insensitive) or whose id contains text.
func (l *Ledger) SearchInvoices(text string) iter.Seq[Invoice] {
	text = strings.ToLower(text)
	return func(yield func(Invoice) bool) {
		for _, inv := range l.invoices {
			if text != "" &&
				!strings.Contains(strings.ToLower(inv.ProductName), text) &&
				!strings.Contains(strconv.FormatInt(inv.ID, 10), text) {
				continue
			}
			if !yield(inv) {
				return
			}
		}
	}
}

// InvoicesIn returns the invoices whose local day falls in r.
func (l *Ledger) InvoicesIn(r date.Range) iter.Seq[Invoice] {
	return func(yield func(Invoice) bool) {
		for _, inv := range l.invoices {
			if !r.Contains(inv.Day()) {
				continue
			}
			if !yield(inv) {
				return
			}
		}
	}
}

func (l *Ledger) productIndex(id int64) int {
	return slices.IndexFunc(l.products, func(p Product) bool { return p.ID == id })
}

// Close releases the store when it holds a connection, like a RedisStore.
func (l *Ledger) Close() error {
	if c, ok := l.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// PersistErr returns the error of the last save, or nil if it succeeded.
func (l *Ledger) PersistErr() error { return l.persistEr }

// Save writes both collections to the store, regardless of changes.
func (l *Ledger) Save() error {
	l.persist(ProductsKey, InvoicesKey)
	return l.persistEr
}

// persist encodes and saves the given collections. A failure is logged
// and kept for PersistErr, the in-memory state is left as is.
func (l *Ledger) persist(keys ...string) {
	var errs []error
	for _, key := range keys {
		var data []byte
		var err error
		var n int
		switch key {
		case ProductsKey:
			data, err = Encode(l.products)
			n = len(l.products)
		case InvoicesKey:
			data, err = Encode(l.invoices)
			n = len(l.invoices)
		}
		if err == nil {
			err = l.store.Save(key, data)
		}
		if err != nil {
			log.Printf("save-collection key=%q error=%q", key, err)
			errs = append(errs, fmt.Errorf("could not save %q: %w", key, err))
			continue
		}
		log.Printf("save-collection key=%q records=%d", key, n)
	}
	l.persistEr = errors.Join(errs...)
}
