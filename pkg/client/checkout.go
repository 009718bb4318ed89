package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/pustakaid/bookstore-backend/internal/cart"
	txnsvc "github.com/pustakaid/bookstore-backend/internal/transactions"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

// CheckoutSession couples a local cart with an authenticated client. Lines
// accumulate locally; Checkout submits them in one call. Like the cart it
// wraps, a session is not safe for concurrent use.
type CheckoutSession struct {
	client *Client
	cart   *cart.Cart
}

// NewCheckoutSession starts an empty session on top of the given client.
func NewCheckoutSession(client *Client) *CheckoutSession {
	return &CheckoutSession{client: client, cart: cart.New()}
}

// AddBook fetches the book and adds it to the cart at its current price.
func (s *CheckoutSession) AddBook(ctx context.Context, bookID uuid.UUID, quantity int) error {
	book, err := s.client.GetBook(ctx, bookID)
	if err != nil {
		return err
	}
	return s.cart.AddLine(book.ID, book.Title, book.Price, quantity)
}

// RemoveBook drops a line from the cart.
func (s *CheckoutSession) RemoveBook(bookID uuid.UUID) {
	s.cart.RemoveLine(bookID)
}

// SetQuantity sets a line's quantity outright; zero or less removes the line.
func (s *CheckoutSession) SetQuantity(bookID uuid.UUID, quantity int) {
	s.cart.UpdateQuantity(bookID, quantity)
}

// Lines returns the cart's current contents.
func (s *CheckoutSession) Lines() []cart.Line {
	return s.cart.Lines()
}

// TotalItems reports the summed quantities across all lines.
func (s *CheckoutSession) TotalItems() int {
	return s.cart.TotalItems()
}

// TotalPrice reports the cart total at the snapshotted unit prices.
func (s *CheckoutSession) TotalPrice() int {
	return s.cart.TotalPrice()
}

// Checkout submits the cart in a single transaction. The cart is cleared only
// on success; any failure leaves it intact for a retry.
func (s *CheckoutSession) Checkout(ctx context.Context) (*txnsvc.Transaction, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	items := make([]TransactionItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, TransactionItem{BookID: line.BookID, Quantity: line.Quantity})
	}
	txn, err := s.client.CreateTransaction(ctx, items)
	if err != nil {
		return nil, err
	}
	s.cart.Clear()
	return txn, nil
}
