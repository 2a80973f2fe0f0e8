package cartsvc

import (
	"sync"
	"time"

	"github.com/talkincode/toughshop/internal/cart"
)

// View is a consistent read of one cart: items and the totals derived
// from exactly those items.
type View struct {
	Items      []cart.LineItem `json:"items"`
	TotalPrice int64           `json:"totalPrice"`
	TotalCount int             `json:"totalCount"`
}

func viewOf(c *cart.Cart) View {
	return View{
		Items:      c.Items(),
		TotalPrice: c.TotalPrice(),
		TotalCount: c.TotalCount(),
	}
}

// SessionCart serialises every operation on the cart of one session
type SessionCart struct {
	mu      sync.Mutex
	id      string
	cart    *cart.Cart
	touched time.Time
	now     func() time.Time
}

func newSessionCart(id string, now func() time.Time) *SessionCart {
	return &SessionCart{id: id, cart: cart.New(), touched: now(), now: now}
}

func (s *SessionCart) ID() string {
	return s.id
}

func (s *SessionCart) touch() {
	s.touched = s.now()
}

// Touched returns when the cart was last used
func (s *SessionCart) Touched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func (s *SessionCart) AddItem(p cart.Product) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.cart.AddItem(p)
	return viewOf(s.cart)
}

func (s *SessionCart) UpdateQuantity(id int64, quantity int) (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	changed := s.cart.UpdateQuantity(id, quantity)
	return viewOf(s.cart), changed
}

func (s *SessionCart) RemoveItem(id int64) (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	changed := s.cart.RemoveItem(id)
	return viewOf(s.cart), changed
}

func (s *SessionCart) Clear() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.cart.Clear()
	return viewOf(s.cart)
}

func (s *SessionCart) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return viewOf(s.cart)
}

// Checkout snapshots and clears the cart in one critical section
func (s *SessionCart) Checkout() (*cart.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return cart.Checkout(s.cart, s.now())
}
