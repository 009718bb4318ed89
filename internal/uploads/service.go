// Package uploads stores book cover images on local disk and hands back the
// public asset path.
package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

// URLPrefix is where the router serves stored assets from.
const URLPrefix = "/assets/"

// allowed image types; anything else is rejected regardless of the uploaded
// filename or declared content type
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Upload describes a stored asset.
type Upload struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Service exposes the image-storage operation.
type Service interface {
	SaveImage(ctx context.Context, r io.Reader, maxBytes int64) (*Upload, error)
}

type service struct {
	assetsDir string
}

// NewService wires the upload service over the assets directory, creating it
// if missing.
func NewService(assetsDir string) (Service, error) {
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating assets dir: %w", err)
	}
	return &service{assetsDir: assetsDir}, nil
}

// SaveImage sniffs the payload's real content type, rejects anything that is
// not an image, and writes it under a generated name. The uploaded filename
// is never trusted; the extension comes from the detected type.
func (s *service) SaveImage(_ context.Context, r io.Reader, maxBytes int64) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading upload")
	}
	if int64(len(data)) > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file too large")
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empty upload")
	}

	mtype := mimetype.Detect(data)
	if !isAllowedImage(mtype) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only image uploads are allowed").
			WithDetails(map[string]string{"detected_type": mtype.String()})
	}

	filename := uuid.New().String() + mtype.Extension()
	if err := os.WriteFile(filepath.Join(s.assetsDir, filename), data, 0o644); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing asset")
	}

	return &Upload{
		URL:         URLPrefix + filename,
		Filename:    filename,
		ContentType: mtype.String(),
		Size:        int64(len(data)),
	}, nil
}

func isAllowedImage(mtype *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}
