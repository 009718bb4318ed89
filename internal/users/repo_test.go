package users

import (
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(t.TempDir())
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	return repo
}

func testUser(email string) User {
	return User{
		ID:           uuid.New(),
		Name:         "Test",
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestInsertAndGetByEmailIsCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	u := testUser("Reader@Example.com")
	if err := repo.Insert(u); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.GetByEmail("reader@example.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("wrong user: %v", got.ID)
	}
}

func TestInsertRejectsDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Insert(testUser("reader@example.com")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	err := repo.Insert(testUser("READER@example.com"))
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByIDUnknown(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(uuid.New())
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestProfileStripsCredentials(t *testing.T) {
	u := testUser("reader@example.com")
	p := u.Profile()
	if p.ID != u.ID || p.Email != u.Email || p.Name != u.Name {
		t.Fatalf("profile fields mismatch: %+v", p)
	}
}
