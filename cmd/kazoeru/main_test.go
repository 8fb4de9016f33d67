package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kazoeru/internal/config"
	"github.com/hyperjump/kazoeru/internal/server"
	"go.uber.org/zap"
)

func TestAnalyzeLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello world\nsecond line"), 0600); err != nil {
		t.Fatal(err)
	}

	result, err := analyzeLocal(path)
	if err != nil {
		t.Fatalf("analyzeLocal: %v", err)
	}
	if result.Filename != "notes.txt" {
		t.Errorf("filename: got %q", result.Filename)
	}
	if result.WordCount != 4 || result.LineCount != 2 {
		t.Errorf("got %+v", result)
	}
}

func TestAnalyzeLocal_unsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := analyzeLocal(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestAnalyzeRemote(t *testing.T) {
	cfg := config.Default()
	cfg.Upload.TempDir = t.TempDir()
	srv, err := server.NewServer(cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0600); err != nil {
		t.Fatal(err)
	}

	result, err := analyzeRemote(ts.URL, path)
	if err != nil {
		t.Fatalf("analyzeRemote: %v", err)
	}
	if result.WordCount != 2 || result.CharacterCount != 11 {
		t.Errorf("got %+v", result)
	}
}

func TestAnalyzeRemote_serverError(t *testing.T) {
	cfg := config.Default()
	cfg.Upload.TempDir = t.TempDir()
	srv, err := server.NewServer(cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "scan.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := analyzeRemote(ts.URL, path); err == nil {
		t.Error("expected error for unsupported format")
	}
}
