// Package transactions records completed checkouts in an append-only ledger.
package transactions

import (
	"path/filepath"

	"github.com/google/uuid"

	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
	"github.com/pustakaid/bookstore-backend/pkg/jsonstore"
)

const transactionsFile = "transactions.json"

// Repository owns the flat-file transaction ledger. The ledger is
// append-only; records are never edited or removed.
type Repository struct {
	store *jsonstore.Store[Transaction]
}

// NewRepository opens the ledger under dataDir. No seed; the ledger starts
// empty.
func NewRepository(dataDir string) (*Repository, error) {
	store, err := jsonstore.Open[Transaction](filepath.Join(dataDir, transactionsFile), nil)
	if err != nil {
		return nil, err
	}
	return &Repository{store: store}, nil
}

// List returns a snapshot of the ledger in insertion (checkout) order.
func (r *Repository) List() []Transaction {
	return r.store.Snapshot()
}

// Get returns the transaction with the given id.
func (r *Repository) Get(id uuid.UUID) (*Transaction, error) {
	for _, txn := range r.store.Snapshot() {
		if txn.ID == id {
			t := txn
			return &t, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
}

// Append writes a new ledger record.
func (r *Repository) Append(txn Transaction) error {
	return r.store.Update(func(records []Transaction) ([]Transaction, error) {
		return append(records, txn), nil
	})
}
