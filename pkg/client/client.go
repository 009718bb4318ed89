// Package client is the Go storefront client for the bookstore API. It
// mirrors the endpoints the web storefront consumes and keeps the bearer
// token from login/register for subsequent calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/pustakaid/bookstore-backend/internal/auth"
	"github.com/pustakaid/bookstore-backend/internal/catalog"
	txnsvc "github.com/pustakaid/bookstore-backend/internal/transactions"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

const defaultTimeout = 15 * time.Second

// Client talks to one bookstore API instance. Safe for sequential use from a
// single session; the token field is mutated by Login and Register.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithToken seeds an existing bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token currently in use, empty when anonymous.
func (c *Client) Token() string {
	return c.token
}

// BookListQuery mirrors the browse endpoint's query string.
type BookListQuery struct {
	Search    string
	Condition string
	GenreID   int
	Sort      string
	Page      int
	Limit     int
}

func (q BookListQuery) values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Condition != "" {
		values.Set("condition", q.Condition)
	}
	if q.GenreID > 0 {
		values.Set("genreId", strconv.Itoa(q.GenreID))
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}

func (c *Client) ListBooks(ctx context.Context, q BookListQuery) (*catalog.Result, error) {
	var result catalog.Result
	if err := c.do(ctx, http.MethodGet, "/api/books?"+q.values().Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetBook(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, http.MethodGet, "/api/books/"+id.String(), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBookRequest is the catalog-add payload.
type CreateBookRequest struct {
	Title           string  `json:"title"`
	Writer          string  `json:"writer"`
	Publisher       string  `json:"publisher,omitempty"`
	Price           int     `json:"price"`
	Stock           int     `json:"stock"`
	GenreID         int     `json:"genreId"`
	Condition       string  `json:"condition"`
	PublicationYear *int    `json:"publication_year,omitempty"`
	Description     string  `json:"description,omitempty"`
	ISBN            string  `json:"isbn,omitempty"`
	ImageURL        *string `json:"image_url,omitempty"`
}

func (c *Client) CreateBook(ctx context.Context, req CreateBookRequest) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, http.MethodPost, "/api/books", req, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBookRequest carries the fields to change; nil fields are left alone.
type UpdateBookRequest struct {
	Title           *string `json:"title,omitempty"`
	Writer          *string `json:"writer,omitempty"`
	Publisher       *string `json:"publisher,omitempty"`
	Price           *int    `json:"price,omitempty"`
	Stock           *int    `json:"stock,omitempty"`
	GenreID         *int    `json:"genreId,omitempty"`
	Condition       *string `json:"condition,omitempty"`
	PublicationYear *int    `json:"publication_year,omitempty"`
	Description     *string `json:"description,omitempty"`
	ISBN            *string `json:"isbn,omitempty"`
	ImageURL        *string `json:"image_url,omitempty"`
}

func (c *Client) UpdateBook(ctx context.Context, id uuid.UUID, req UpdateBookRequest) (*catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, http.MethodPut, "/api/books/"+id.String(), req, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+id.String(), nil, nil)
}

func (c *Client) ListGenres(ctx context.Context) ([]catalog.GenreCount, error) {
	var genres []catalog.GenreCount
	if err := c.do(ctx, http.MethodGet, "/api/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*authsvc.Session, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}
	var session authsvc.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", payload, &session); err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// Login authenticates and keeps the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*authsvc.Session, error) {
	payload := map[string]string{"email": email, "password": password}
	var session authsvc.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &session); err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// TransactionItem is one checkout line.
type TransactionItem struct {
	BookID   uuid.UUID `json:"bookId"`
	Quantity int       `json:"quantity"`
}

func (c *Client) CreateTransaction(ctx context.Context, items []TransactionItem) (*txnsvc.Transaction, error) {
	payload := map[string]any{"items": items}
	var txn txnsvc.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", payload, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// TransactionListQuery mirrors the ledger endpoint's query string.
type TransactionListQuery struct {
	Search string
	Sort   string
	Page   int
	Limit  int
	Mine   bool
}

func (c *Client) ListTransactions(ctx context.Context, q TransactionListQuery) (*txnsvc.Result, error) {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Mine {
		values.Set("mine", "true")
	}
	var result txnsvc.Result
	if err := c.do(ctx, http.MethodGet, "/api/transactions?"+values.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetTransaction(ctx context.Context, id uuid.UUID) (*txnsvc.Transaction, error) {
	var txn txnsvc.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions/"+id.String(), nil, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UploadImage sends a cover image and returns its served asset path.
func (c *Client) UploadImage(ctx context.Context, filename string, data io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("copying upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", errorFromResponse(resp)
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	return body.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errorFromResponse(resp)
	}
	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func errorFromResponse(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		body.Message = strings.TrimSpace(string(raw))
	}
	if body.Message == "" {
		body.Message = resp.Status
	}
	return pkgerrors.New(codeForStatus(resp.StatusCode), body.Message)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	case http.StatusServiceUnavailable:
		return pkgerrors.CodeDependency
	}
	return pkgerrors.CodeInternal
}
