package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNeedsRefreshMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	if !NeedsRefresh(dir, false) {
		t.Error("missing directory should need a refresh")
	}
}

func TestNeedsRefreshEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if !NeedsRefresh(dir, false) {
		t.Error("empty directory should need a refresh")
	}
}

func TestNeedsRefreshPopulatedDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Doc.txt"), []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}
	if NeedsRefresh(dir, false) {
		t.Error("populated directory should be fresh")
	}
}

func TestNeedsRefreshForced(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Doc.txt"), []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !NeedsRefresh(dir, true) {
		t.Error("force must override a fresh cache")
	}
}

func TestResetClearsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	if err := Ensure(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Stale.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Reset(dir); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("directory should exist after reset: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory, found %d entries", len(entries))
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	if err := Ensure(dir); err != nil {
		t.Fatal(err)
	}
	if err := Ensure(dir); err != nil {
		t.Errorf("second ensure should succeed: %v", err)
	}
}
