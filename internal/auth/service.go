// Package auth implements account registration and credential login on top
// of the user store.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pustakaid/bookstore-backend/internal/users"
	pkgauth "github.com/pustakaid/bookstore-backend/pkg/auth"
	"github.com/pustakaid/bookstore-backend/pkg/config"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
	"github.com/pustakaid/bookstore-backend/pkg/security"
)

const minPasswordLen = 8

// Service exposes the auth operations the HTTP layer consumes.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
}

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries a credential pair.
type LoginInput struct {
	Email    string
	Password string
}

// Session is what a successful register or login hands back to the client.
type Session struct {
	Token string        `json:"token"`
	User  users.Profile `json:"user"`
}

type service struct {
	repo        *users.Repository
	jwtConfig   config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService wires the auth service over the user repository.
func NewService(repo *users.Repository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) Service {
	return &service{
		repo:        repo,
		jwtConfig:   jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}
}

func (s *service) Register(_ context.Context, input RegisterInput) (*Session, error) {
	name := strings.TrimSpace(input.Name)
	email := users.NormalizeEmail(input.Email)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if len(input.Password) < minPasswordLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := users.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Insert(user); err != nil {
		return nil, err
	}

	return s.session(user)
}

func (s *service) Login(_ context.Context, input LoginInput) (*Session, error) {
	email := users.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	// unknown email and wrong password answer identically so the endpoint
	// does not leak which addresses are registered
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, invalidCredentials()
	}
	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, invalidCredentials()
	}

	return s.session(*user)
}

func (s *service) session(user users.User) (*Session, error) {
	token, err := pkgauth.MintAccessToken(s.jwtConfig, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}
	return &Session{Token: token, User: user.Profile()}, nil
}

// mismatches answer 400, matching the public contract; 401 is reserved for
// missing or invalid bearer tokens on guarded routes
func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid email or password")
}
