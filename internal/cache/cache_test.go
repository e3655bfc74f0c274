package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_GetSet(t *testing.T) {
	c := NewMemory(time.Minute, 10)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || got != "v" {
		t.Fatalf("Get = %q ok=%v err=%v", got, ok, err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory(10*time.Millisecond, 10)
	ctx := context.Background()

	_ = c.Set(ctx, "k", "v")
	time.Sleep(25 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry should be removed on read, len=%d", c.Len())
	}
}

func TestMemory_EvictsWhenFull(t *testing.T) {
	c := NewMemory(time.Minute, 2)
	ctx := context.Background()

	_ = c.Set(ctx, "a", "1")
	time.Sleep(time.Millisecond)
	_ = c.Set(ctx, "b", "2")
	time.Sleep(time.Millisecond)
	_ = c.Set(ctx, "c", "3")

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if _, ok, _ := c.Get(ctx, "c"); !ok {
		t.Fatalf("expected newest entry to be present")
	}
}

func TestMemory_OverwriteDoesNotEvict(t *testing.T) {
	c := NewMemory(time.Minute, 2)
	ctx := context.Background()

	_ = c.Set(ctx, "a", "1")
	_ = c.Set(ctx, "b", "2")
	_ = c.Set(ctx, "b", "3")

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if v, _, _ := c.Get(ctx, "b"); v != "3" {
		t.Fatalf("b = %q, want 3", v)
	}
}
