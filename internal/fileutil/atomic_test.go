package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic_WriteAndOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stats.json")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading back: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Content = %q, want %q", data, "second")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("Permissions = %o, want 644", info.Mode().Perm())
	}
}

func TestWriteFileAtomic_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := WriteFileAtomic(filepath.Join(dir, "out.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.txt" {
		t.Errorf("Unexpected directory contents: %v", entries)
	}
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic("/nonexistent/dir/test.txt", []byte("data"), 0o644)
	if err == nil {
		t.Error("Expected error for missing directory")
	}
}
