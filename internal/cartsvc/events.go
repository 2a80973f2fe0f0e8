package cartsvc

import "github.com/talkincode/toughshop/internal/cart"

// Event bus topics
const (
	TopicCartChanged = "cart:changed"
	TopicCheckout    = "cart:checkout"
)

// CartChangedEvent is published after a mutation that changed a cart
type CartChangedEvent struct {
	SessionID  string
	Op         string // add, update, remove, clear
	ProductID  int64
	TotalPrice int64
	TotalCount int
}

// CheckoutEvent is published after a successful checkout
type CheckoutEvent struct {
	SessionID string
	Receipt   *cart.Receipt
	Summary   string
}
