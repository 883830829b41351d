package cache_test

import (
	"testing"
	"time"

	"github.com/overtimepog/traycer-internship/internal/cache"
)

func TestKey_Deterministic(t *testing.T) {
	mtime := time.Unix(1700000000, 123456789)
	k1 := cache.Key("/repo/main.go", mtime)
	k2 := cache.Key("/repo/main.go", mtime)
	if k1 != k2 {
		t.Errorf("same path+mtime produced different keys: %q vs %q", k1, k2)
	}
	if len(k1) != 16 {
		t.Errorf("key length = %d, want 16 hex digits", len(k1))
	}
}

func TestKey_ChangesWithMtime(t *testing.T) {
	mtime := time.Unix(1700000000, 0)
	k1 := cache.Key("/repo/main.go", mtime)
	k2 := cache.Key("/repo/main.go", mtime.Add(time.Nanosecond))
	if k1 == k2 {
		t.Error("mtime change did not change the key")
	}
}

func TestKey_ChangesWithPath(t *testing.T) {
	mtime := time.Unix(1700000000, 0)
	k1 := cache.Key("/repo/a.go", mtime)
	k2 := cache.Key("/repo/b.go", mtime)
	if k1 == k2 {
		t.Error("different paths produced the same key")
	}
}
