package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	frErrors "friede/internal/errors"
)

func TestValidateAndReadFiles(t *testing.T) {
	dir := t.TempDir()

	resumePath := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(resumePath, []byte("Software engineer with Go experience."), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	sourcePath := filepath.Join(dir, "solution.py")
	if err := os.WriteFile(sourcePath, []byte("print(42)\n"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	fp := NewFileProcessor(nil)

	contents, err := fp.ValidateAndReadFiles(resumePath, sourcePath)
	if err != nil {
		t.Fatalf("ValidateAndReadFiles failed: %v", err)
	}
	if len(contents) != 2 {
		t.Fatalf("Expected 2 contents, got %d", len(contents))
	}
	if contents[1] != "print(42)\n" {
		t.Errorf("Unexpected source content: %q", contents[1])
	}
}

func TestValidateAndReadFilesMissing(t *testing.T) {
	fp := NewFileProcessor(nil)

	_, err := fp.ValidateAndReadFiles(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	var appErr *frErrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "reports", "out.json")

	fp := NewFileProcessor(nil)
	if err := fp.WriteFile(target, "{}"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Unexpected content: %q", data)
	}
}
