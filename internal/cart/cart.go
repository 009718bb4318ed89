// Package cart implements the session-local cart aggregator. A cart lives in
// the client (browser session or CLI run); the server only ever sees the
// final checkout payload.
package cart

import (
	"github.com/google/uuid"

	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

// Line is one cart row. UnitPrice is snapshotted when the line is first
// added; later catalog price changes do not touch lines already in the cart.
type Line struct {
	BookID    uuid.UUID `json:"book_id"`
	Title     string    `json:"title"`
	UnitPrice int       `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// Subtotal is the line's unit price times its quantity.
func (l Line) Subtotal() int {
	return l.UnitPrice * l.Quantity
}

// Cart aggregates lines keyed by book id, preserving the order in which
// books were first added. Not safe for concurrent use; a cart belongs to a
// single session.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddLine merges quantity into the line for the given book, creating the
// line (and snapshotting unitPrice) if the book is not in the cart yet.
// Non-positive quantities are rejected and leave the cart unchanged.
func (c *Cart) AddLine(bookID uuid.UUID, title string, unitPrice, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	for i := range c.lines {
		if c.lines[i].BookID == bookID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		BookID:    bookID,
		Title:     title,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	})
	return nil
}

// RemoveLine drops the line for the given book. Removing a book that is not
// in the cart is a no-op.
func (c *Cart) RemoveLine(bookID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].BookID == bookID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity outright. A non-positive quantity
// removes the line, matching RemoveLine. Updating an absent book is a no-op.
func (c *Cart) UpdateQuantity(bookID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveLine(bookID)
		return
	}
	for i := range c.lines {
		if c.lines[i].BookID == bookID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart rows in first-added order.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// TotalItems sums quantities across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums line subtotals using the snapshotted unit prices.
func (c *Cart) TotalPrice() int {
	total := 0
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}
