package catalog

import (
	"path/filepath"

	"github.com/google/uuid"

	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
	"github.com/pustakaid/bookstore-backend/pkg/jsonstore"
)

const booksFile = "books.json"

// StockAdjustment asks for a book's stock to drop by Quantity.
type StockAdjustment struct {
	BookID   uuid.UUID
	Quantity int
}

// Repository owns the flat-file catalog collection. All writes serialize
// through the underlying store lock.
type Repository struct {
	store *jsonstore.Store[Book]
}

// NewRepository opens (and seeds, when empty) the catalog under dataDir.
func NewRepository(dataDir string) (*Repository, error) {
	store, err := jsonstore.Open(filepath.Join(dataDir, booksFile), seedBooks())
	if err != nil {
		return nil, err
	}
	return &Repository{store: store}, nil
}

// List returns a snapshot of the catalog in insertion order.
func (r *Repository) List() []Book {
	return r.store.Snapshot()
}

// Get returns the book with the given id.
func (r *Repository) Get(id uuid.UUID) (*Book, error) {
	for _, b := range r.store.Snapshot() {
		if b.ID == id {
			book := b
			return &book, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
}

// Insert appends a new book and flushes.
func (r *Repository) Insert(book Book) error {
	return r.store.Update(func(records []Book) ([]Book, error) {
		return append(records, book), nil
	})
}

// Replace swaps the stored record with the same id.
func (r *Repository) Replace(book Book) error {
	return r.store.Update(func(records []Book) ([]Book, error) {
		for i := range records {
			if records[i].ID == book.ID {
				records[i] = book
				return records, nil
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
	})
}

// Delete removes the book with the given id.
func (r *Repository) Delete(id uuid.UUID) error {
	return r.store.Update(func(records []Book) ([]Book, error) {
		for i := range records {
			if records[i].ID == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
	})
}

// RestoreStock adds the adjustment quantities back, undoing a prior
// AdjustStock for the same batch.
func (r *Repository) RestoreStock(adjustments []StockAdjustment) error {
	return r.store.Update(func(records []Book) ([]Book, error) {
		index := make(map[uuid.UUID]int, len(records))
		for i, b := range records {
			index[b.ID] = i
		}
		for _, adj := range adjustments {
			i, ok := index[adj.BookID]
			if !ok {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
			}
			records[i].Stock += adj.Quantity
		}
		return records, nil
	})
}

// AdjustStock decrements stock for every adjustment in one locked pass. Any
// unknown book or insufficient stock fails the whole batch; nothing is
// written and nothing is partially applied.
func (r *Repository) AdjustStock(adjustments []StockAdjustment) error {
	return r.store.Update(func(records []Book) ([]Book, error) {
		index := make(map[uuid.UUID]int, len(records))
		for i, b := range records {
			index[b.ID] = i
		}
		for _, adj := range adjustments {
			i, ok := index[adj.BookID]
			if !ok {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
			}
			if records[i].Stock < adj.Quantity {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock for "+records[i].Title)
			}
			records[i].Stock -= adj.Quantity
		}
		return records, nil
	})
}
