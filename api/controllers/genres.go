package controllers

import (
	"net/http"

	"github.com/pustakaid/bookstore-backend/api/responses"
	"github.com/pustakaid/bookstore-backend/internal/catalog"
	"github.com/pustakaid/bookstore-backend/pkg/logger"
)

// ListGenres returns the fixed genre set with live per-genre book counts.
func ListGenres(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genres, err := svc.ListGenres(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, genres)
	}
}
