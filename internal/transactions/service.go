package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/pustakaid/bookstore-backend/internal/catalog"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

// Service exposes the checkout and ledger-read operations.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, items []CheckoutItem) (*Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, q Query) (Result, error)
}

// CheckoutItem is one requested purchase line: which book, how many copies.
type CheckoutItem struct {
	BookID   uuid.UUID
	Quantity int
}

type service struct {
	repo    *Repository
	catalog *catalog.Repository
	now     func() time.Time
}

// NewService wires the ledger service over its own store and the catalog it
// draws stock and prices from.
func NewService(repo *Repository, catalogRepo *catalog.Repository) Service {
	return &service{repo: repo, catalog: catalogRepo, now: time.Now}
}

// Checkout turns a cart payload into a ledger record. Prices are read from
// the catalog at this moment and frozen into the record; stock is
// decremented for all lines or none. An empty item list is rejected.
func (s *service) Checkout(_ context.Context, userID uuid.UUID, items []CheckoutItem) (*Transaction, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout requires at least one item")
	}

	lines := make([]Item, 0, len(items))
	adjustments := make([]catalog.StockAdjustment, 0, len(items))
	totalItems, totalPrice := 0, 0
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if seen[item.BookID] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate book in checkout items")
		}
		seen[item.BookID] = true

		book, err := s.catalog.Get(item.BookID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, Item{
			BookID:          book.ID,
			Title:           book.Title,
			PriceAtPurchase: book.Price,
			Quantity:        item.Quantity,
		})
		adjustments = append(adjustments, catalog.StockAdjustment{BookID: book.ID, Quantity: item.Quantity})
		totalItems += item.Quantity
		totalPrice += book.Price * item.Quantity
	}

	// all-or-nothing: any line short on stock fails the whole checkout
	// before the ledger is touched
	if err := s.catalog.AdjustStock(adjustments); err != nil {
		return nil, err
	}

	txn := Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		Items:      lines,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
		Status:     StatusCompleted,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Append(txn); err != nil {
		// put the decremented stock back so a failed ledger write leaves
		// the catalog as it was before the checkout
		if restoreErr := s.catalog.RestoreStock(adjustments); restoreErr != nil {
			return nil, multierr.Append(err, restoreErr)
		}
		return nil, err
	}
	return &txn, nil
}

func (s *service) GetTransaction(_ context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.Get(id)
}

func (s *service) ListTransactions(_ context.Context, q Query) (Result, error) {
	return RunQuery(s.repo.List(), q), nil
}
