package services

import (
	"testing"
	"time"
)

func TestOTPStorePutGet(t *testing.T) {
	store := NewMemoryOTPStore()
	store.Put("254700000001", "123456", time.Minute)

	code, ok := store.Get("254700000001")
	if !ok || code != "123456" {
		t.Fatalf("expected 123456, got %q (ok=%v)", code, ok)
	}

	if _, ok := store.Get("254700000002"); ok {
		t.Fatal("expected miss for unknown phone")
	}
}

func TestOTPStoreExpiry(t *testing.T) {
	store := NewMemoryOTPStore()
	store.Put("254700000001", "123456", 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Get("254700000001"); ok {
		t.Fatal("expected expired code to be gone")
	}
}

func TestOTPStoreDelete(t *testing.T) {
	store := NewMemoryOTPStore()
	store.Put("254700000001", "123456", time.Minute)
	store.Delete("254700000001")

	if _, ok := store.Get("254700000001"); ok {
		t.Fatal("expected deleted code to be gone")
	}
}

func TestOTPStoreSweep(t *testing.T) {
	store := NewMemoryOTPStore()
	store.Put("a", "111111", 5*time.Millisecond)
	store.Put("b", "222222", time.Minute)

	time.Sleep(10 * time.Millisecond)
	store.Sweep()

	if _, ok := store.Get("a"); ok {
		t.Fatal("expected swept code to be gone")
	}
	if code, ok := store.Get("b"); !ok || code != "222222" {
		t.Fatal("expected live code to survive sweep")
	}
}
