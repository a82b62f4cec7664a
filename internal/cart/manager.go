// Package cart holds the in-progress sale of each cashier session.
package cart

import (
	"sync"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pricing"
	"github.com/shopspring/decimal"
)

// Snapshot is a detached copy of a cart.
type Snapshot struct {
	Items          []model.CartItem
	GlobalDiscount decimal.Decimal
}

// Manager is one mutable cart. Safe for concurrent use.
type Manager struct {
	mu             sync.Mutex
	items          []model.CartItem
	globalDiscount decimal.Decimal

	obsMu     sync.Mutex
	observers map[int]func(Snapshot)
	nextObs   int
}

func NewManager() *Manager {
	return &Manager{
		globalDiscount: decimal.Zero,
		observers:      make(map[int]func(Snapshot)),
	}
}

func (m *Manager) indexOf(productID string) int {
	for i := range m.items {
		if m.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem bumps the quantity of an existing line or appends a new line with
// qty 1 and no discount. Stock and active checks belong to the caller.
func (m *Manager) AddItem(p model.Product) {
	m.mu.Lock()
	if i := m.indexOf(p.ID); i >= 0 {
		m.items[i].Qty++
	} else {
		m.items = append(m.items, model.CartItem{
			Product:       p,
			Qty:           1,
			DiscountType:  model.DiscountPercent,
			DiscountValue: decimal.Zero,
		})
	}
	m.mu.Unlock()
	m.Notify()
}

// SetQty sets the line quantity; qty <= 0 removes the line. It reports
// whether the product was in the cart.
func (m *Manager) SetQty(productID string, qty int) bool {
	m.mu.Lock()
	i := m.indexOf(productID)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	if qty <= 0 {
		m.items = append(m.items[:i], m.items[i+1:]...)
	} else {
		m.items[i].Qty = qty
	}
	m.mu.Unlock()
	m.Notify()
	return true
}

// SetLineDiscount replaces the discount descriptor of a line.
func (m *Manager) SetLineDiscount(productID string, dt model.DiscountType, value decimal.Decimal) bool {
	m.mu.Lock()
	i := m.indexOf(productID)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.items[i].DiscountType = dt
	m.items[i].DiscountValue = value
	m.mu.Unlock()
	m.Notify()
	return true
}

// RemoveItem is a no-op when the product is absent.
func (m *Manager) RemoveItem(productID string) {
	m.mu.Lock()
	i := m.indexOf(productID)
	if i < 0 {
		m.mu.Unlock()
		return
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	m.mu.Unlock()
	m.Notify()
}

// Clear empties the cart and resets the global discount.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.clearLocked()
	m.mu.Unlock()
	m.Notify()
}

func (m *Manager) clearLocked() {
	m.items = nil
	m.globalDiscount = decimal.Zero
}

func (m *Manager) SetGlobalDiscount(pct decimal.Decimal) {
	m.mu.Lock()
	m.globalDiscount = pricing.ClampPercent(pct)
	m.mu.Unlock()
	m.Notify()
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		Items:          append([]model.CartItem(nil), m.items...),
		GlobalDiscount: m.globalDiscount,
	}
}

// Drain hands a snapshot to fn while holding the cart lock and clears the
// cart if fn succeeds. Observers are not notified; call Notify once the
// surrounding work has released its own locks.
func (m *Manager) Drain(fn func(Snapshot) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := fn(m.snapshotLocked()); err != nil {
		return err
	}
	m.clearLocked()
	return nil
}

// Subscribe registers fn to receive the cart after every mutation. The
// returned func removes the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.obsMu.Lock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	m.obsMu.Unlock()

	return func() {
		m.obsMu.Lock()
		delete(m.observers, id)
		m.obsMu.Unlock()
	}
}

// Notify pushes the current cart to observers.
func (m *Manager) Notify() {
	m.obsMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.observers))
	for _, fn := range m.observers {
		fns = append(fns, fn)
	}
	m.obsMu.Unlock()
	if len(fns) == 0 {
		return
	}

	snap := m.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}
