package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeLockStore struct {
	values map[string]string
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{values: map[string]string{}}
}

func (f *fakeLockStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeLockStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeLockStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestRedisLockIsExclusive(t *testing.T) {
	store := newFakeLockStore()
	first, err := NewRedisLock(store, "pf:lock:cron:test", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	second, err := NewRedisLock(store, "pf:lock:cron:test", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	ctx := context.Background()

	if ok, err := first.Acquire(ctx); err != nil || !ok {
		t.Fatalf("first acquire = %v, %v", ok, err)
	}
	if ok, err := second.Acquire(ctx); err != nil || ok {
		t.Fatalf("second acquire should fail while held, got %v, %v", ok, err)
	}
	// a non-owner release must not free the lock
	if err := second.Release(ctx); err != nil {
		t.Fatalf("second release: %v", err)
	}
	if _, ok := store.values["pf:lock:cron:test"]; !ok {
		t.Fatal("lock released by non-owner")
	}
	if err := first.Release(ctx); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if ok, err := second.Acquire(ctx); err != nil || !ok {
		t.Fatalf("acquire after release = %v, %v", ok, err)
	}
}

func TestNewRedisLockValidates(t *testing.T) {
	if _, err := NewRedisLock(nil, "key", time.Minute); err == nil {
		t.Fatal("expected error without client")
	}
	if _, err := NewRedisLock(newFakeLockStore(), "", time.Minute); err == nil {
		t.Fatal("expected error without key")
	}
	lock, err := NewRedisLock(newFakeLockStore(), "key", 0)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	if lock.ttl != defaultLockTTL {
		t.Fatalf("expected default ttl, got %v", lock.ttl)
	}
}
