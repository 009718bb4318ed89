package transactions

import (
	"time"

	"github.com/google/uuid"
)

// StatusCompleted is the only status the ledger records today; checkout
// either fully succeeds or writes nothing.
const StatusCompleted = "completed"

// Item is one purchased line. PriceAtPurchase freezes the catalog price at
// checkout time; later price edits never rewrite history.
type Item struct {
	BookID          uuid.UUID `json:"bookId"`
	Title           string    `json:"title"`
	PriceAtPurchase int       `json:"priceAtPurchase"`
	Quantity        int       `json:"quantity"`
}

// Transaction is the ledger record persisted to transactions.json.
type Transaction struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Items      []Item    `json:"items"`
	TotalItems int       `json:"totalItems"`
	TotalPrice int       `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
