package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())

	if err := s.Save("progress:42", []byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	data, err := s.Load("progress:42")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("loaded %q", data)
	}
}

func TestFileStore_AbsentKey(t *testing.T) {
	s := NewFileStore(t.TempDir())

	data, err := s.Load("progress:missing")
	if err != nil {
		t.Fatalf("absent key returned error: %v", err)
	}
	if data != nil {
		t.Errorf("absent key returned %q, want nil", data)
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	s := NewFileStore(t.TempDir())

	s.Save("shop:1", []byte("old"))
	s.Save("shop:1", []byte("new"))

	data, err := s.Load("shop:1")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("loaded %q, want new", data)
	}
}

func TestFileStore_KeyEscaping(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	if err := s.Save("progress:7", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "progress_7.json")); err != nil {
		t.Errorf("expected colon-escaped filename: %v", err)
	}
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	s.Save("progress:1", []byte("x"))
	matches, _ := filepath.Glob(filepath.Join(dir, ".doc-*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

// failStore errors on every call, simulating an unreachable database.
type failStore struct{}

func (failStore) Load(string) ([]byte, error) { return nil, errors.New("connection refused") }
func (failStore) Save(string, []byte) error   { return errors.New("connection refused") }

func TestFallback_DegradesToLocal(t *testing.T) {
	local := NewFileStore(t.TempDir())
	f := NewFallback(failStore{}, local)

	if err := f.Save("progress:1", []byte("saved")); err != nil {
		t.Fatalf("save did not degrade to local: %v", err)
	}
	data, err := f.Load("progress:1")
	if err != nil {
		t.Fatalf("load did not degrade to local: %v", err)
	}
	if string(data) != "saved" {
		t.Errorf("loaded %q", data)
	}
}

// emptyStore answers every load with (nil, nil).
type emptyStore struct{}

func (emptyStore) Load(string) ([]byte, error) { return nil, nil }
func (emptyStore) Save(string, []byte) error   { return nil }

func TestFallback_LocalFillsPrimaryMiss(t *testing.T) {
	local := NewFileStore(t.TempDir())
	local.Save("progress:1", []byte("offline"))

	f := NewFallback(emptyStore{}, local)
	data, err := f.Load("progress:1")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "offline" {
		t.Errorf("loaded %q, want the local record", data)
	}
}

func TestKeys(t *testing.T) {
	if got := ProgressKey("42"); got != "progress:42" {
		t.Errorf("ProgressKey = %q", got)
	}
	if got := ShopKey("42"); got != "shop:42" {
		t.Errorf("ShopKey = %q", got)
	}
}
