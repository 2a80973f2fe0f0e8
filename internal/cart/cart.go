package cart

// MaxQuantity caps the quantity of a single line. Mutations that would
// exceed it are ignored like any other invalid input.
const MaxQuantity = 9999

// Product is the catalog snapshot accepted by AddItem.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // smallest currency unit
	Category string `json:"category"`
}

// LineItem is one product entry in the cart with its quantity
type LineItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// Subtotal returns price * quantity
func (i LineItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart holds an ordered set of line items unique by ID.
// Totals are never stored, they are computed from items on every read.
// A Cart is not safe for concurrent use; see cartsvc.SessionCart.
type Cart struct {
	items []LineItem
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(id int64) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem increments the quantity of an existing item or appends a new one
// with quantity 1. Name, price and category of an existing entry are kept.
// A line already at MaxQuantity is left unchanged.
func (c *Cart) AddItem(p Product) {
	if idx := c.indexOf(p.ID); idx >= 0 {
		if c.items[idx].Quantity < MaxQuantity {
			c.items[idx].Quantity++
		}
		return
	}
	c.items = append(c.items, LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		Quantity: 1,
	})
}

// UpdateQuantity sets the quantity of item id to exactly quantity.
// Quantities outside [1, MaxQuantity] and unknown ids are ignored; the
// result reports whether the cart changed.
func (c *Cart) UpdateQuantity(id int64, quantity int) bool {
	if quantity < 1 || quantity > MaxQuantity {
		return false
	}
	idx := c.indexOf(id)
	if idx < 0 || c.items[idx].Quantity == quantity {
		return false
	}
	c.items[idx].Quantity = quantity
	return true
}

// RemoveItem drops item id, keeping the order of the remaining items
func (c *Cart) RemoveItem(id int64) bool {
	idx := c.indexOf(id)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the line items in insertion order
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the line item with the given id
func (c *Cart) Item(id int64) (LineItem, bool) {
	if idx := c.indexOf(id); idx >= 0 {
		return c.items[idx], true
	}
	return LineItem{}, false
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalPrice is the sum of price * quantity over the current items
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// TotalCount is the sum of quantities over the current items
func (c *Cart) TotalCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
