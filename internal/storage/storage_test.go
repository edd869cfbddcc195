package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalProvider(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	p, err := NewLocalProvider(root)
	if err != nil {
		t.Fatalf("NewLocalProvider: %v", err)
	}

	url, err := p.Upload(ctx, "f1/report.txt", strings.NewReader("hello"), 5, "text/plain")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "/exports/f1/report.txt" {
		t.Fatalf("url %s", url)
	}
	data, err := os.ReadFile(filepath.Join(root, "f1", "report.txt"))
	if err != nil || string(data) != "hello" {
		t.Fatalf("stored %q, %v", data, err)
	}

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "hello" {
		t.Fatalf("serve %s: %d %q", url, rec.Code, rec.Body.String())
	}

	if err := p.Delete(ctx, "f1/report.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := p.Delete(ctx, "f1/report.txt"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	rec = httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted archive served: %d", rec.Code)
	}
	if _, err := p.Upload(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain"); err == nil {
		t.Fatalf("names outside the root must be rejected")
	}
}
