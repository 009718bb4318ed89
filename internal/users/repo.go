// Package users persists account records to the flat-file store.
package users

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
	"github.com/pustakaid/bookstore-backend/pkg/jsonstore"
)

const usersFile = "users.json"

// Repository owns the flat-file user collection.
type Repository struct {
	store *jsonstore.Store[User]
}

// NewRepository opens the user collection under dataDir. There is no seed;
// accounts only exist once registered.
func NewRepository(dataDir string) (*Repository, error) {
	store, err := jsonstore.Open[User](filepath.Join(dataDir, usersFile), nil)
	if err != nil {
		return nil, err
	}
	return &Repository{store: store}, nil
}

// GetByID returns the user with the given id.
func (r *Repository) GetByID(id uuid.UUID) (*User, error) {
	for _, u := range r.store.Snapshot() {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

// GetByEmail returns the user registered under the given email address.
// Emails compare case-insensitively.
func (r *Repository) GetByEmail(email string) (*User, error) {
	email = NormalizeEmail(email)
	for _, u := range r.store.Snapshot() {
		if NormalizeEmail(u.Email) == email {
			user := u
			return &user, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

// Insert appends a new user, rejecting a duplicate email inside the store
// lock so two concurrent registrations cannot both win.
func (r *Repository) Insert(user User) error {
	email := NormalizeEmail(user.Email)
	return r.store.Update(func(records []User) ([]User, error) {
		for _, u := range records {
			if NormalizeEmail(u.Email) == email {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "email already registered")
			}
		}
		return append(records, user), nil
	})
}

// NormalizeEmail lowercases and trims an address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
