package controllers

import (
	"net/http"

	"github.com/pustakaid/bookstore-backend/api/responses"
	"github.com/pustakaid/bookstore-backend/internal/uploads"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
	"github.com/pustakaid/bookstore-backend/pkg/logger"
)

const uploadFieldName = "file"

// UploadImage accepts a multipart cover-image upload and returns the stored
// asset path.
func UploadImage(svc uploads.Service, maxUploadMB int, logg *logger.Logger) http.HandlerFunc {
	maxBytes := int64(maxUploadMB) << 20
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+4096)

		file, _, err := r.FormFile(uploadFieldName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image file is required").
				WithDetails(map[string]any{"field": uploadFieldName}))
			return
		}
		defer file.Close()

		upload, err := svc.SaveImage(r.Context(), file, maxBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// the stored record carries more, but the wire contract is just the path
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"url": upload.URL})
	}
}
