package controllers

import (
	"net/http"
	"strings"

	"github.com/pustakaid/bookstore-backend/api/responses"
	"github.com/pustakaid/bookstore-backend/api/validators"
	"github.com/pustakaid/bookstore-backend/internal/catalog"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
	"github.com/pustakaid/bookstore-backend/pkg/logger"
)

// ListBooks serves the catalog browse endpoint: search, filters, sort, and
// pagination in one query string.
func ListBooks(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseBookQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListBooks(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func GetBook(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.GetBook(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, book)
	}
}

func CreateBook(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.CreateBook(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, book)
	}
}

func UpdateBook(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.UpdateBook(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, book)
	}
}

func DeleteBook(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteBook(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "book deleted"})
	}
}

func parseBookQuery(r *http.Request) (catalog.Query, error) {
	params, err := validators.ParsePagination(r)
	if err != nil {
		return catalog.Query{}, err
	}

	query := catalog.Query{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Sort:   strings.TrimSpace(r.URL.Query().Get("sort")),
		Page:   params,
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("condition")); raw != "" {
		condition, err := catalog.ParseCondition(raw)
		if err != nil {
			return catalog.Query{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition").
				WithDetails(map[string]any{"field": "condition"})
		}
		query.Condition = condition
	}

	genreID, err := validators.ParseQueryInt(r, "genreId", 0, 0, 1_000_000)
	if err != nil {
		return catalog.Query{}, err
	}
	query.GenreID = genreID

	return query, nil
}

type createBookRequest struct {
	Title           string  `json:"title" validate:"required"`
	Writer          string  `json:"writer" validate:"required"`
	Publisher       string  `json:"publisher,omitempty"`
	Price           int     `json:"price" validate:"required,min=1"`
	Stock           int     `json:"stock" validate:"min=0"`
	GenreID         int     `json:"genreId" validate:"required,min=1"`
	Condition       string  `json:"condition" validate:"required,oneof=new used"`
	PublicationYear *int    `json:"publication_year,omitempty" validate:"omitempty,min=1450"`
	Description     string  `json:"description,omitempty"`
	ISBN            string  `json:"isbn,omitempty"`
	ImageURL        *string `json:"image_url,omitempty"`
}

func (p createBookRequest) toCreateInput() (catalog.CreateBookInput, error) {
	condition, err := catalog.ParseCondition(p.Condition)
	if err != nil {
		return catalog.CreateBookInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
	}
	return catalog.CreateBookInput{
		Title:           p.Title,
		Writer:          p.Writer,
		Publisher:       p.Publisher,
		Price:           p.Price,
		Stock:           p.Stock,
		GenreID:         p.GenreID,
		Condition:       condition,
		PublicationYear: p.PublicationYear,
		Description:     p.Description,
		ISBN:            p.ISBN,
		ImageURL:        p.ImageURL,
	}, nil
}

type updateBookRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Writer          *string `json:"writer,omitempty" validate:"omitempty,min=1"`
	Publisher       *string `json:"publisher,omitempty"`
	Price           *int    `json:"price,omitempty" validate:"omitempty,min=1"`
	Stock           *int    `json:"stock,omitempty" validate:"omitempty,min=0"`
	GenreID         *int    `json:"genreId,omitempty" validate:"omitempty,min=1"`
	Condition       *string `json:"condition,omitempty" validate:"omitempty,oneof=new used"`
	PublicationYear *int    `json:"publication_year,omitempty" validate:"omitempty,min=1450"`
	Description     *string `json:"description,omitempty"`
	ISBN            *string `json:"isbn,omitempty"`
	ImageURL        *string `json:"image_url,omitempty"`
}

func (p updateBookRequest) toUpdateInput() (catalog.UpdateBookInput, error) {
	input := catalog.UpdateBookInput{
		Title:           p.Title,
		Writer:          p.Writer,
		Publisher:       p.Publisher,
		Price:           p.Price,
		Stock:           p.Stock,
		GenreID:         p.GenreID,
		PublicationYear: p.PublicationYear,
		Description:     p.Description,
		ISBN:            p.ISBN,
		ImageURL:        p.ImageURL,
	}
	if p.Condition != nil {
		condition, err := catalog.ParseCondition(*p.Condition)
		if err != nil {
			return catalog.UpdateBookInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		input.Condition = &condition
	}
	return input, nil
}
