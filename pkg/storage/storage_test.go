package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T, s KeyValueStore) {
	t.Helper()

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	value := []byte{0x01, 0x02, 0x03}
	if err := s.Set("TETRIS-0123", value); err != nil {
		t.Fatal(err)
	}
	value[0] = 0xFF // the store keeps its own copy

	got, err := s.Get("TETRIS-0123")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("expected 010203, got %x", got)
	}

	if err := s.Set("TETRIS-0123", []byte{0x04}); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get("TETRIS-0123"); !bytes.Equal(got, []byte{0x04}) {
		t.Errorf("expected overwrite, got %x", got)
	}
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestDir(t *testing.T) {
	d, err := NewDir(filepath.Join(t.TempDir(), "saves"))
	if err != nil {
		t.Fatal(err)
	}
	testStore(t, d)

	// no temporary files are left behind
	entries, err := os.ReadDir(d.path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "TETRIS-0123.sav" {
		t.Errorf("unexpected directory contents: %v", entries)
	}
}

func TestDir_Sanitize(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Set("a/b", []byte{1}); err != nil {
		t.Fatal(err)
	}
	if filepath.Base(d.Path("a/b")) != "a_b.sav" {
		t.Errorf("unexpected path %s", d.Path("a/b"))
	}
	if got, err := d.Get("a/b"); err != nil || !bytes.Equal(got, []byte{1}) {
		t.Errorf("expected 01, got %x %v", got, err)
	}
}

func TestDir_Keys(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"old", "new"} {
		if err := d.Set(key, []byte{0}); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(d.Path("old"), past, past); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(d.path, "notes.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	keys, err := d.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "new" || keys[1] != "old" {
		t.Errorf("expected [new old], got %v", keys)
	}
}
