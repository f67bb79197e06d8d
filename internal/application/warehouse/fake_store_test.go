package warehouse_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Base de datos en memoria con transacciones serializables: cada Run toma el
// mutex global, trabaja sobre una copia del estado y solo la publica en Commit.
// ──────────────────────────────────────────────────────────────────────────────

type state struct {
	products   map[int]decimal.Decimal
	warehouses map[int]bool
	orders     map[int]entity.Order
	receipts   map[int]entity.StockReceipt
	nextID     int
}

func (s *state) clone() *state {
	c := &state{
		products:   make(map[int]decimal.Decimal, len(s.products)),
		warehouses: make(map[int]bool, len(s.warehouses)),
		orders:     make(map[int]entity.Order, len(s.orders)),
		receipts:   make(map[int]entity.StockReceipt, len(s.receipts)),
		nextID:     s.nextID,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	return c
}

type fakeStore struct {
	mu        sync.Mutex
	st        *state
	now       time.Time
	commits   int
	rollbacks int

	// failOn hace fallar la operación indicada ("MarkFulfilled", "Create", "GetProduct", "Commit").
	failOn  string
	failErr error
	// block retiene la transacción hasta que el contexto expire.
	block bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		st: &state{
			products:   map[int]decimal.Decimal{},
			warehouses: map[int]bool{},
			orders:     map[int]entity.Order{},
			receipts:   map[int]entity.StockReceipt{},
			nextID:     1,
		},
		now:     time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
		failErr: errors.New("conexión perdida"),
	}
}

func (f *fakeStore) addProduct(id int, price string) {
	f.st.products[id] = decimal.RequireFromString(price)
}

func (f *fakeStore) addWarehouse(id int) { f.st.warehouses[id] = true }

func (f *fakeStore) addOrder(id, productID, amount int, createdAt time.Time) {
	f.st.orders[id] = entity.Order{ID: id, ProductID: productID, Amount: amount, CreatedAt: createdAt}
}

func (f *fakeStore) receipts() []entity.StockReceipt {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.StockReceipt, 0, len(f.st.receipts))
	for _, r := range f.st.receipts {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeStore) order(id int) entity.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.orders[id]
}

func (f *fakeStore) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
	receiptRepo repository.StockReceiptRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		f.rollbacks++
		return ctx.Err()
	}

	tx := &fakeTx{store: f, st: f.st.clone()}
	if err := fn(productView{tx}, warehouseView{tx}, orderView{tx}, receiptView{tx}); err != nil {
		f.rollbacks++
		return err
	}
	if f.failOn == "Commit" {
		f.rollbacks++
		return f.failErr
	}
	f.st = tx.st
	f.commits++
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int) (*entity.StockReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.st.receipts[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeStore) ExistsForOrder(context.Context, int) (bool, error) {
	return false, errors.New("solo lectura fuera de la transacción")
}

func (f *fakeStore) Create(context.Context, *entity.StockReceipt) (int, error) {
	return 0, errors.New("solo lectura fuera de la transacción")
}

func (f *fakeStore) Ping(context.Context) error { return nil }

// fakeTx implementa los cuatro repositorios sobre la copia de la transacción.
type fakeTx struct {
	store *fakeStore
	st    *state
}

func (t *fakeTx) fail(op string) error {
	if t.store.failOn == op {
		return t.store.failErr
	}
	return nil
}

func (t *fakeTx) Exists(_ context.Context, id int) (bool, error) {
	_, ok := t.st.products[id]
	return ok, nil
}

func (t *fakeTx) FindMatchingForUpdate(_ context.Context, productID, amount int, before time.Time) (*entity.Order, error) {
	var candidates []entity.Order
	for _, o := range t.st.orders {
		if o.ProductID == productID && o.Amount == amount && o.CreatedAt.Before(before) {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsPending() != b.IsPending() {
			return a.IsPending()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	o := candidates[0]
	return &o, nil
}

func (t *fakeTx) MarkFulfilled(_ context.Context, orderID int) error {
	if err := t.fail("MarkFulfilled"); err != nil {
		return err
	}
	o := t.st.orders[orderID]
	now := t.store.now
	o.FulfilledAt = &now
	t.st.orders[orderID] = o
	return nil
}

func (t *fakeTx) ExistsForOrder(_ context.Context, orderID int) (bool, error) {
	for _, r := range t.st.receipts {
		if r.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) Create(_ context.Context, r *entity.StockReceipt) (int, error) {
	if err := t.fail("Create"); err != nil {
		return 0, err
	}
	for _, existing := range t.st.receipts {
		if existing.OrderID == r.OrderID {
			return 0, domain.ErrConflict
		}
	}
	rec := *r
	rec.ID = t.st.nextID
	rec.CreatedAt = t.store.now
	t.st.nextID++
	t.st.receipts[rec.ID] = rec
	return rec.ID, nil
}

func (t *fakeTx) GetByID(context.Context, int) (*entity.StockReceipt, error) {
	return nil, errors.New("no usado dentro de la transacción")
}

// Cada vista expone el conjunto de métodos de un repositorio sobre la misma fakeTx.
var (
	_ repository.ProductRepository      = productView{}
	_ repository.WarehouseRepository    = warehouseView{}
	_ repository.OrderRepository        = orderView{}
	_ repository.StockReceiptRepository = receiptView{}
)

type productView struct{ *fakeTx }

func (v productView) GetByID(_ context.Context, id int) (*entity.Product, error) {
	if err := v.fail("GetProduct"); err != nil {
		return nil, err
	}
	p, ok := v.st.products[id]
	if !ok {
		return nil, nil
	}
	return &entity.Product{ID: id, Price: p}, nil
}

type warehouseView struct{ *fakeTx }

func (v warehouseView) GetByID(_ context.Context, id int) (*entity.Warehouse, error) {
	if !v.st.warehouses[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id}, nil
}

type orderView struct{ *fakeTx }

func (v orderView) GetByID(_ context.Context, id int) (*entity.Order, error) {
	o, ok := v.st.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

type receiptView struct{ *fakeTx }

// fakeProcedure simula la rutina del servidor.
type fakeProcedure struct {
	id    int
	err   error
	calls int
	block bool
}

func (p *fakeProcedure) AddProductToWarehouse(ctx context.Context, _, _, _ int, _ time.Time) (int, error) {
	p.calls++
	if p.block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	return p.id, p.err
}

// fakeRecorder captura los resultados observados.
type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *fakeRecorder) ObserveFulfillment(variant, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, variant+":"+outcome)
}
