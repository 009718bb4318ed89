package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

// Service exposes the catalog operations the HTTP layer consumes.
type Service interface {
	ListBooks(ctx context.Context, q Query) (Result, error)
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
	CreateBook(ctx context.Context, input CreateBookInput) (*Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ListGenres(ctx context.Context) ([]GenreCount, error)
}

// CreateBookInput carries a validated create request.
type CreateBookInput struct {
	Title           string
	Writer          string
	Publisher       string
	Price           int
	Stock           int
	GenreID         int
	Condition       Condition
	PublicationYear *int
	Description     string
	ISBN            string
	ImageURL        *string
}

// UpdateBookInput carries the fields an edit may change; nil means keep.
type UpdateBookInput struct {
	Title           *string
	Writer          *string
	Publisher       *string
	Price           *int
	Stock           *int
	GenreID         *int
	Condition       *Condition
	PublicationYear *int
	Description     *string
	ISBN            *string
	ImageURL        *string
}

type service struct {
	repo *Repository
}

// NewService wires the catalog service over its repository.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListBooks(_ context.Context, q Query) (Result, error) {
	return RunQuery(s.repo.List(), q), nil
}

func (s *service) GetBook(_ context.Context, id uuid.UUID) (*Book, error) {
	return s.repo.Get(id)
}

func (s *service) CreateBook(_ context.Context, input CreateBookInput) (*Book, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	book := Book{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(input.Title),
		Writer:          strings.TrimSpace(input.Writer),
		Publisher:       strings.TrimSpace(input.Publisher),
		Price:           input.Price,
		Stock:           input.Stock,
		Genre:           ResolveGenre(input.GenreID),
		Condition:       input.Condition,
		PublicationYear: input.PublicationYear,
		Description:     input.Description,
		ISBN:            strings.TrimSpace(input.ISBN),
		ImageURL:        input.ImageURL,
	}
	if err := s.repo.Insert(book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *service) UpdateBook(_ context.Context, id uuid.UUID, input UpdateBookInput) (*Book, error) {
	book, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = strings.TrimSpace(*input.Title)
	}
	if input.Writer != nil {
		book.Writer = strings.TrimSpace(*input.Writer)
	}
	if input.Publisher != nil {
		book.Publisher = strings.TrimSpace(*input.Publisher)
	}
	if input.Price != nil {
		book.Price = *input.Price
	}
	if input.Stock != nil {
		book.Stock = *input.Stock
	}
	if input.GenreID != nil {
		book.Genre = ResolveGenre(*input.GenreID)
	}
	if input.Condition != nil {
		book.Condition = *input.Condition
	}
	if input.PublicationYear != nil {
		book.PublicationYear = input.PublicationYear
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.ISBN != nil {
		book.ISBN = strings.TrimSpace(*input.ISBN)
	}
	if input.ImageURL != nil {
		book.ImageURL = input.ImageURL
	}

	if book.Title == "" || book.Writer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and writer cannot be empty")
	}
	if book.Price <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if book.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	if err := s.repo.Replace(*book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) DeleteBook(_ context.Context, id uuid.UUID) error {
	return s.repo.Delete(id)
}

func (s *service) ListGenres(_ context.Context) ([]GenreCount, error) {
	return CountGenres(s.repo.List()), nil
}

func validateCreate(input CreateBookInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Writer) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "writer is required")
	}
	if input.Price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if input.Condition != ConditionNew && input.Condition != ConditionUsed {
		return pkgerrors.New(pkgerrors.CodeValidation, "condition must be new or used")
	}
	return nil
}
