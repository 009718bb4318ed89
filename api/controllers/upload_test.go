package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pustakaid/bookstore-backend/internal/uploads"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

type stubUploadService struct {
	received []byte
	upload   *uploads.Upload
	err      error
}

func (s *stubUploadService) SaveImage(_ context.Context, r io.Reader, _ int64) (*uploads.Upload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.received = data
	if s.err != nil {
		return nil, s.err
	}
	return s.upload, nil
}

func multipartBody(t *testing.T, field string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "cover.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadImageReturns201WithURL(t *testing.T) {
	stub := &stubUploadService{
		upload: &uploads.Upload{URL: "/assets/abc.png", Filename: "abc.png", ContentType: "image/png", Size: 4},
	}

	body, contentType := multipartBody(t, "file", []byte("fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	UploadImage(stub, 5, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body)
	}
	if string(stub.received) != "fake" {
		t.Fatalf("file bytes not threaded through: %q", stub.received)
	}

	var got map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["url"] != "/assets/abc.png" {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestUploadImageMissingFileIs400(t *testing.T) {
	body, contentType := multipartBody(t, "attachment", []byte("fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	UploadImage(&stubUploadService{}, 5, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestUploadImageServiceRejectionIs400(t *testing.T) {
	stub := &stubUploadService{err: pkgerrors.New(pkgerrors.CodeValidation, "only image uploads are allowed")}

	body, contentType := multipartBody(t, "file", []byte("#!/bin/sh"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	UploadImage(stub, 5, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
