package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	authsvc "github.com/pustakaid/bookstore-backend/internal/auth"
	"github.com/pustakaid/bookstore-backend/internal/users"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

type stubAuthService struct {
	registerInput *authsvc.RegisterInput
	loginInput    *authsvc.LoginInput
	session       *authsvc.Session
	err           error
}

func (s *stubAuthService) Register(_ context.Context, input authsvc.RegisterInput) (*authsvc.Session, error) {
	s.registerInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubAuthService) Login(_ context.Context, input authsvc.LoginInput) (*authsvc.Session, error) {
	s.loginInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func testSession() *authsvc.Session {
	return &authsvc.Session{
		Token: "signed.jwt.token",
		User:  users.Profile{ID: uuid.New(), Name: "Rina", Email: "rina@example.com"},
	}
}

func TestAuthRegisterReturns201WithSession(t *testing.T) {
	stub := &stubAuthService{session: testSession()}

	body := `{"name":"Rina","email":"rina@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AuthRegister(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body)
	}
	if stub.registerInput == nil || stub.registerInput.Email != "rina@example.com" {
		t.Fatalf("input not threaded through: %+v", stub.registerInput)
	}

	var got authsvc.Session
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Token == "" || got.User.Email != "rina@example.com" {
		t.Fatalf("unexpected session body: %+v", got)
	}
}

func TestAuthRegisterValidatesPayload(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.co","password":"longenough"}`},
		{"bad email", `{"name":"n","email":"nope","password":"longenough"}`},
		{"short password", `{"name":"n","email":"a@b.co","password":"short"}`},
		{"unknown field", `{"name":"n","email":"a@b.co","password":"longenough","role":"admin"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			AuthRegister(&stubAuthService{session: testSession()}, testLogger()).ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", rec.Code)
			}
		})
	}
}

func TestAuthRegisterDuplicateEmailIs400(t *testing.T) {
	stub := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeValidation, "email already registered")}

	body := `{"name":"Rina","email":"rina@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AuthRegister(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var got map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["message"] != "email already registered" {
		t.Fatalf("unexpected error body: %v", got)
	}
}

func TestAuthLoginReturnsSession(t *testing.T) {
	stub := &stubAuthService{session: testSession()}

	body := `{"email":"rina@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AuthLogin(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body)
	}
	if stub.loginInput == nil || stub.loginInput.Email != "rina@example.com" {
		t.Fatalf("input not threaded through: %+v", stub.loginInput)
	}
}

func TestAuthLoginBadCredentialsIs400(t *testing.T) {
	stub := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeValidation, "invalid email or password")}

	body := `{"email":"rina@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AuthLogin(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
