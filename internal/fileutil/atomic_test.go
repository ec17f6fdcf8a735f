package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic_WritesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	if err := WriteFileAtomic(path, []byte("hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("unexpected content: %q", data)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after successful write")
	}
}

func TestWriteFileAtomic_CrashBeforeSwapLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "record.md")

	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Simulate a crash between temp-write and swap: the temp file exists
	// but the rename never happened.
	if err := os.WriteFile(path+".tmp", []byte("half-written"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Errorf("original modified by interrupted write: %q", data)
	}

	// A later write replaces both cleanly.
	if err := WriteFileAtomic(path, []byte("updated")); err != nil {
		t.Fatalf("rewrite after crash: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "updated" {
		t.Errorf("unexpected content after rewrite: %q", data)
	}
}

func TestWriteFileAtomic_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestRemoveTemp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path+".tmp", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	RemoveTemp(path)

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file not removed")
	}

	// Removing a missing temp file is a no-op.
	RemoveTemp(path)
}
