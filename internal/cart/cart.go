// Package cart holds the in-memory shopping cart and the checkout
// orchestration against the store API. Carts live only for the duration of a
// browser session; nothing here is persisted.
package cart

import (
	"sync"

	"github.com/techstore/storefront/pkg/models"
)

// Item is one cart line: a product snapshot plus a quantity. Line identity
// is the product id.
type Item struct {
	models.Product
	Quantity int `json:"quantity"`
}

// Cart is an ordered list of lines with merge-on-add semantics: no two lines
// ever share a product id. Safe for concurrent handler access.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Add puts a product in the cart. If a line for the product already exists
// its quantity goes up by one, otherwise a new line with quantity 1 is
// appended.
func (c *Cart) Add(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{Product: p, Quantity: 1})
}

// SetQuantity sets a line's quantity exactly; zero or negative removes the
// line. The quantity is not clamped against stock here, the stock check
// happens at checkout.
func (c *Cart) SetQuantity(productID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes a line unconditionally.
func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the lines.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

const (
	freeShippingOver = 100.0
	flatShipping     = 10.0
)

// Shipping is the flat fee applied below the free-shipping threshold. The
// threshold is exclusive: a subtotal of exactly 100 still pays shipping.
func Shipping(subtotal float64) float64 {
	if subtotal > freeShippingOver {
		return 0
	}
	return flatShipping
}

// Totals returns subtotal, shipping and total for the current lines.
func (c *Cart) Totals() (subtotal, shipping, total float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		subtotal += item.Price * float64(item.Quantity)
	}
	shipping = Shipping(subtotal)
	return subtotal, shipping, subtotal + shipping
}
