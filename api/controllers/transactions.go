package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pustakaid/bookstore-backend/api/middleware"
	"github.com/pustakaid/bookstore-backend/api/responses"
	"github.com/pustakaid/bookstore-backend/api/validators"
	txnsvc "github.com/pustakaid/bookstore-backend/internal/transactions"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
	"github.com/pustakaid/bookstore-backend/pkg/logger"
)

// CreateTransaction handles checkout: the client submits its cart lines and
// the server prices, stocks, and records them atomically.
func CreateTransaction(svc txnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]txnsvc.CheckoutItem, 0, len(payload.Items))
		for _, item := range payload.Items {
			bookID, err := uuid.Parse(item.BookID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid book id"))
				return
			}
			items = append(items, txnsvc.CheckoutItem{BookID: bookID, Quantity: item.Quantity})
		}

		txn, err := svc.Checkout(r.Context(), userID, items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

func GetTransaction(svc txnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "transactionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.GetTransaction(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, txn)
	}
}

// ListTransactions serves the ledger view with id search, sorting, and
// pagination.
func ListTransactions(svc txnsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := txnsvc.Query{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Sort:   strings.TrimSpace(r.URL.Query().Get("sort")),
			Page:   params,
		}
		if strings.EqualFold(r.URL.Query().Get("mine"), "true") {
			userID, err := authenticatedUserID(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			query.UserID = userID
		}

		result, err := svc.ListTransactions(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func authenticatedUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}

type checkoutRequest struct {
	Items []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

type checkoutItemRequest struct {
	BookID   string `json:"bookId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}
