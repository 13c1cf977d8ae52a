package store

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/dctree/pkg/errors"
)

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	// Get always returns miss
	data, hit, err := s.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullStore.Get should always return a nil miss")
	}

	if err := s.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = s.Get(ctx, "key"); hit {
		t.Error("NullStore should not store data")
	}
	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, hit, err := s.Get(ctx, "tree"); hit || err != nil {
		t.Fatalf("empty store Get = hit %v, err %v", hit, err)
	}

	payload := []byte{0, 1, 2, 255}
	if err := s.Set(ctx, "tree", payload, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := s.Get(ctx, "tree")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != string(payload) {
		t.Errorf("Get = %v, want %v", data, payload)
	}

	if err := s.Delete(ctx, "tree"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "tree"); hit {
		t.Error("entry survived Delete")
	}
	if err := s.Delete(ctx, "tree"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := s.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(s.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path := s.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := s.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry Get = hit %v, err %v, want miss", hit, err)
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("default backend = %T, want *FileStore", s)
	}

	s, err = Open(ctx, Options{Backend: BackendNone})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*NullStore); !ok {
		t.Errorf("none backend = %T, want *NullStore", s)
	}

	for _, opts := range []Options{
		{Backend: "etcd"},
		{Backend: BackendFile},
		{Backend: BackendRedis},
		{Backend: BackendMongo},
	} {
		if _, err := Open(ctx, opts); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Open(%+v) = %v, want INVALID_CONFIG", opts, err)
		}
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()

	ctx := context.Background()
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 3 {
			return Retryable(stderrors.New("flaky"))
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("retryable: err %v after %d calls, want success after 3", err, calls)
	}

	calls = 0
	permanent := stderrors.New("permanent")
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return permanent
	})
	if !stderrors.Is(err, permanent) || calls != 1 {
		t.Errorf("permanent: err %v after %d calls", err, calls)
	}

	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}
