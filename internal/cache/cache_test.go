package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestCache_GetMissOnEmpty(t *testing.T) {
	c := New[string](time.Minute, 10)
	if _, ok := c.Get("absent"); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestCache_SetThenGet(t *testing.T) {
	c := New[string](time.Minute, 10)
	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != "v" {
		t.Fatalf("got %q, want %q", got, "v")
	}
}

func TestCache_ExpiredEntryMisses(t *testing.T) {
	c := New[string](time.Minute, 10)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("k", "v")

	// Advance past the TTL.
	c.now = func() time.Time { return now.Add(time.Minute + time.Second) }

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after TTL expiry")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry should be removed, len = %d", c.Len())
	}
}

func TestCache_EvictsOldestInserted(t *testing.T) {
	const capacity = 5
	c := New[int](time.Minute, capacity)

	for i := 0; i < capacity+1; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}

	if c.Len() != capacity {
		t.Fatalf("len = %d, want %d", c.Len(), capacity)
	}
	if _, ok := c.Get("key-0"); ok {
		t.Fatal("first-inserted key should have been evicted")
	}
	for i := 1; i <= capacity; i++ {
		if _, ok := c.Get(fmt.Sprintf("key-%d", i)); !ok {
			t.Fatalf("key-%d should still be present", i)
		}
	}
}

func TestCache_OverwriteMovesToBackOfEvictionOrder(t *testing.T) {
	c := New[int](time.Minute, 3)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Set("a", 10) // re-insertion: "b" is now the oldest
	c.Set("d", 4)  // evicts "b"

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if got, ok := c.Get("a"); !ok || got != 10 {
		t.Fatalf("a = %d (hit=%v), want 10", got, ok)
	}
}

func TestCache_ReadDoesNotRefreshOrder(t *testing.T) {
	c := New[int](time.Minute, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")     // must not move "a" to the back
	c.Set("c", 3)  // evicts "a", the oldest inserted

	if _, ok := c.Get("a"); ok {
		t.Fatal("a should have been evicted despite the recent read")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("b should still be present")
	}
}

func TestCache_InvalidatePrefix(t *testing.T) {
	c := New[int](time.Minute, 10)

	c.Set("posts:new:20:", 1)
	c.Set("posts:top:20:", 2)
	c.Set("stats", 3)

	if dropped := c.Invalidate("posts:"); dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if _, ok := c.Get("posts:new:20:"); ok {
		t.Fatal("posts entry should be gone")
	}
	if _, ok := c.Get("stats"); !ok {
		t.Fatal("stats entry should be untouched")
	}
}

func TestCache_InvalidateAll(t *testing.T) {
	c := New[int](time.Minute, 10)
	c.Set("a", 1)
	c.Set("b", 2)

	c.InvalidateAll()

	if c.Len() != 0 {
		t.Fatalf("len = %d, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after InvalidateAll")
	}
}

func TestCache_DefaultsApplied(t *testing.T) {
	c := New[int](0, 0)
	if c.Capacity() != DefaultCapacity {
		t.Fatalf("capacity = %d, want %d", c.Capacity(), DefaultCapacity)
	}
	if c.ttl != DefaultTTL {
		t.Fatalf("ttl = %s, want %s", c.ttl, DefaultTTL)
	}
}
