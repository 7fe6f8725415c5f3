// Package cart holds the in-progress selection of menu items for one customer.
// A Cart is never persisted on its own; it lives until it is submitted as an order
// or abandoned.
package cart

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is the catalog data captured when an item is first added.
type Item struct {
	ID       uuid.UUID
	Name     string
	Category string
	Tier     string
	Price    decimal.Decimal
}

// Line is one distinct menu item in the cart.
type Line struct {
	MenuItemID uuid.UUID
	Name       string
	Category   string
	Tier       string
	Price      decimal.Decimal
	Quantity   int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps at most one line per menu item, in insertion order. It is not safe
// for concurrent use.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) index(id uuid.UUID) int {
	for i := range c.lines {
		if c.lines[i].MenuItemID == id {
			return i
		}
	}
	return -1
}

// AddItem increments the quantity of the item's line, or appends a new line
// with quantity 1 and a snapshot of the item.
func (c *Cart) AddItem(item Item) {
	if i := c.index(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		Category:   item.Category,
		Tier:       item.Tier,
		Price:      item.Price,
		Quantity:   1,
	})
}

// Merge adds a line carrying its own quantity. An existing line for the same
// item keeps its snapshot and absorbs the quantity, saturating at math.MaxInt.
// Non-positive quantities are ignored.
func (c *Cart) Merge(line Line) {
	if line.Quantity <= 0 {
		return
	}
	if i := c.index(line.MenuItemID); i >= 0 {
		if c.lines[i].Quantity > math.MaxInt-line.Quantity {
			c.lines[i].Quantity = math.MaxInt
			return
		}
		c.lines[i].Quantity += line.Quantity
		return
	}
	c.lines = append(c.lines, line)
}

// SetQuantity sets the line's quantity, removing the line when n <= 0.
// Absent items are ignored.
func (c *Cart) SetQuantity(id uuid.UUID, n int) {
	i := c.index(id)
	if i < 0 {
		return
	}
	if n <= 0 {
		c.removeAt(i)
		return
	}
	c.lines[i].Quantity = n
}

func (c *Cart) RemoveItem(id uuid.UUID) {
	if i := c.index(id); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Total is the sum of price x quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount is the sum of quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Line(id uuid.UUID) (Line, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
