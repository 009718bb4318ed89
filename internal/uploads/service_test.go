package uploads

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
)

// minimal valid 1x1 PNG
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func newTestService(t *testing.T) (Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewService(dir)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, dir
}

func TestSaveImageStoresPNGUnderGeneratedName(t *testing.T) {
	svc, dir := newTestService(t)

	up, err := svc.SaveImage(context.Background(), bytes.NewReader(pngBytes), 1<<20)
	if err != nil {
		t.Fatalf("save image: %v", err)
	}

	if !strings.HasPrefix(up.URL, URLPrefix) {
		t.Fatalf("url missing asset prefix: %q", up.URL)
	}
	if !strings.HasSuffix(up.Filename, ".png") {
		t.Fatalf("expected .png extension, got %q", up.Filename)
	}
	if up.ContentType != "image/png" {
		t.Fatalf("wrong detected type: %q", up.ContentType)
	}
	if up.Size != int64(len(pngBytes)) {
		t.Fatalf("wrong size: %d", up.Size)
	}

	stored, err := os.ReadFile(filepath.Join(dir, up.Filename))
	if err != nil {
		t.Fatalf("read stored asset: %v", err)
	}
	if !bytes.Equal(stored, pngBytes) {
		t.Fatal("stored bytes differ from upload")
	}
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	svc, dir := newTestService(t)

	_, err := svc.SaveImage(context.Background(), strings.NewReader("#!/bin/sh\necho pwned\n"), 1<<20)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	// nothing may be written for a rejected upload
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected upload left files behind: %v", entries)
	}
}

func TestSaveImageRejectsOversizedPayload(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveImage(context.Background(), bytes.NewReader(pngBytes), int64(len(pngBytes)-1))
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveImageRejectsEmptyPayload(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveImage(context.Background(), bytes.NewReader(nil), 1<<20)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveImageGeneratesUniqueNames(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.SaveImage(context.Background(), bytes.NewReader(pngBytes), 1<<20)
	if err != nil {
		t.Fatalf("save image: %v", err)
	}
	second, err := svc.SaveImage(context.Background(), bytes.NewReader(pngBytes), 1<<20)
	if err != nil {
		t.Fatalf("save image: %v", err)
	}
	if first.Filename == second.Filename {
		t.Fatalf("identical names for separate uploads: %q", first.Filename)
	}
}
