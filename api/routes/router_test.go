package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	authsvc "github.com/pustakaid/bookstore-backend/internal/auth"
	"github.com/pustakaid/bookstore-backend/internal/catalog"
	txnsvc "github.com/pustakaid/bookstore-backend/internal/transactions"
	"github.com/pustakaid/bookstore-backend/internal/uploads"
	"github.com/pustakaid/bookstore-backend/internal/users"
	"github.com/pustakaid/bookstore-backend/pkg/config"
	"github.com/pustakaid/bookstore-backend/pkg/logger"
	"github.com/pustakaid/bookstore-backend/pkg/pagination"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Env: "dev", LogLevel: "debug"},
		Store: config.StoreConfig{
			DataDir:     t.TempDir(),
			AssetsDir:   t.TempDir(),
			MaxUploadMB: 5,
		},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "bookstore-api", ExpirationMinutes: 60},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig(t)
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	catalogRepo, err := catalog.NewRepository(cfg.Store.DataDir)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	userRepo, err := users.NewRepository(cfg.Store.DataDir)
	if err != nil {
		t.Fatalf("open users: %v", err)
	}
	txnRepo, err := txnsvc.NewRepository(cfg.Store.DataDir)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	uploadService, err := uploads.NewService(cfg.Store.AssetsDir)
	if err != nil {
		t.Fatalf("open uploads: %v", err)
	}

	return NewRouter(
		cfg,
		logg,
		nil,
		catalog.NewService(catalogRepo),
		authsvc.NewService(userRepo, cfg.JWT, cfg.Password),
		txnsvc.NewService(txnRepo, catalogRepo),
		uploadService,
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Rina",
		"email":    "rina@example.com",
		"password": "correct horse",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body)
	}
	var session authsvc.Session
	if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session.Token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestBooksAreReadableWithoutAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/books", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body)
	}

	var body struct {
		Data []catalog.Book  `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Meta.Total == 0 || len(body.Data) == 0 {
		t.Fatalf("expected the seeded catalog, got %+v", body.Meta)
	}
}

func TestCatalogMutationsRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	payload := map[string]any{
		"title": "Buku Baru", "writer": "Dewi", "price": 100000,
		"stock": 2, "genreId": 1, "condition": "new",
	}
	rec := doJSON(t, router, http.MethodPost, "/api/books", "", payload)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token := registerAndLogin(t, router)
	rec = doJSON(t, router, http.MethodPost, "/api/books", token, payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with token, got %d: %s", rec.Code, rec.Body)
	}
}

func TestCheckoutFlowEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router)

	// find a seeded book to buy
	rec := doJSON(t, router, http.MethodGet, "/api/books?limit=1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list books: %d", rec.Code)
	}
	var listing struct {
		Data []catalog.Book `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	book := listing.Data[0]

	rec = doJSON(t, router, http.MethodPost, "/api/transactions", token, map[string]any{
		"items": []map[string]any{{"bookId": book.ID.String(), "quantity": 2}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: %d %s", rec.Code, rec.Body)
	}
	var txn txnsvc.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&txn); err != nil {
		t.Fatalf("decode transaction: %v", err)
	}
	if txn.TotalPrice != 2*book.Price {
		t.Fatalf("wrong total: %d", txn.TotalPrice)
	}

	// stock must have dropped on the public listing
	rec = doJSON(t, router, http.MethodGet, "/api/books/"+book.ID.String(), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get book: %d", rec.Code)
	}
	var after catalog.Book
	if err := json.NewDecoder(rec.Body).Decode(&after); err != nil {
		t.Fatalf("decode book: %v", err)
	}
	if after.Stock != book.Stock-2 {
		t.Fatalf("stock not decremented: %d -> %d", book.Stock, after.Stock)
	}

	// and the ledger must list the record
	rec = doJSON(t, router, http.MethodGet, "/api/transactions?mine=true", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list transactions: %d %s", rec.Code, rec.Body)
	}
	var ledger txnsvc.Result
	if err := json.NewDecoder(rec.Body).Decode(&ledger); err != nil {
		t.Fatalf("decode ledger: %v", err)
	}
	if ledger.Meta.Total != 1 || ledger.Data[0].ID != txn.ID {
		t.Fatalf("ledger mismatch: %+v", ledger)
	}
}

func TestGenresEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/genres", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var genres []catalog.GenreCount
	if err := json.NewDecoder(rec.Body).Decode(&genres); err != nil {
		t.Fatalf("decode genres: %v", err)
	}
	if len(genres) != 9 {
		t.Fatalf("expected the fixed genre set, got %d entries", len(genres))
	}
}

func TestTransactionsRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/transactions", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
