package store

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/dctree/pkg/errors"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), mr.Addr(), 0)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	data, hit, err := s.Get(ctx, "tree")
	if err != nil {
		t.Fatalf("Get error on missing key: %v", err)
	}
	if hit || data != nil {
		t.Error("missing key should be a nil miss")
	}

	want := []byte{0, 1, 2, 0xff}
	if err := s.Set(ctx, "tree", want, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err = s.Get(ctx, "tree")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v; want hit", hit, err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Get = %v, want %v", data, want)
	}
	if ttl := mr.TTL("tree"); ttl != 0 {
		t.Errorf("TTL = %v, want no expiry", ttl)
	}

	if err := s.Delete(ctx, "tree"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if mr.Exists("tree") {
		t.Error("key still present after Delete")
	}
	if err := s.Delete(ctx, "tree"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	if err := s.Set(ctx, "tree", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := s.Get(ctx, "tree"); !hit {
		t.Fatal("fresh entry should hit")
	}

	mr.FastForward(2 * time.Minute)
	data, hit, err := s.Get(ctx, "tree")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("expired entry should be a miss")
	}
}

func TestRedisStoreEmptyValue(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)

	if err := s.Set(ctx, "empty", []byte{}, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, err := s.Get(ctx, "empty"); err != nil || !hit {
		t.Errorf("Get = hit %v, err %v; want hit", hit, err)
	}
}

func TestOpenRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	s, err := Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if Name(s) != BackendRedis {
		t.Errorf("Name = %q, want %q", Name(s), BackendRedis)
	}

	_, err = Open(ctx, Options{Backend: BackendRedis})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Open without address: code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), addr, 0)
	if !errors.Is(err, errors.ErrCodeStore) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeStore)
	}
}
