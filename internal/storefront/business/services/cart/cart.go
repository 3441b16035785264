// Package cart keeps the client-side cart: at most one line per product and
// never a line with zero quantity.
package cart

import (
	"errors"
	"sync"

	"storefront_api/internal/storefront/business/models"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func New() *Cart {
	return &Cart{}
}

// Add merges qty into the existing line for the product or appends a new line.
func (c *Cart) Add(product models.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(product.ID); i >= 0 {
		c.items[i].Quantity += qty
		return nil
	}
	c.items = append(c.items, models.CartItem{Product: product, Quantity: qty})
	return nil
}

// Remove takes one unit away; the line disappears with its last unit.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(productID)
	if i < 0 {
		return
	}
	if c.items[i].Quantity <= 1 {
		c.drop(i)
		return
	}
	c.items[i].Quantity--
}

// SetQuantity overwrites the quantity of an existing line; qty <= 0 removes it.
func (c *Cart) SetQuantity(productID int64, qty int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(productID)
	if i < 0 {
		return false
	}
	if qty <= 0 {
		c.drop(i)
		return true
	}
	c.items[i].Quantity = qty
	return true
}

func (c *Cart) Delete(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(productID); i >= 0 {
		c.drop(i)
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem{}, c.items...)
}

func (c *Cart) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums default variant price times quantity, in VND.
func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

func (c *Cart) Quote() models.Quote {
	items := c.Items()
	return models.Quote{
		Items:         items,
		TotalQuantity: c.TotalQuantity(),
		TotalPrice:    c.TotalPrice(),
	}
}

func (c *Cart) index(productID int64) int {
	for i, item := range c.items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) drop(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}
