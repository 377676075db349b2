package cache

import "testing"

func TestSetAndGet(t *testing.T) {
	c := New[string, int](3)

	c.Set("a", 1)
	c.Set("b", 2)

	e := c.Get("a")
	if e == nil || e.Val != 1 {
		t.Fatalf("expected a=1, got %v", e)
	}
	if c.Get("missing") != nil {
		t.Fatalf("expected nil for missing key")
	}
}

func TestSetExistingUpdates(t *testing.T) {
	c := New[string, int](3)

	c.Set("a", 1)
	c.Set("a", 5)

	if e := c.Get("a"); e.Val != 5 {
		t.Fatalf("expected a=5, got %d", e.Val)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
}

func TestEvictsOldest(t *testing.T) {
	c := New[string, int](2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if c.Get("a") != nil {
		t.Fatalf("expected oldest entry a to be evicted")
	}
	if c.Get("b") == nil || c.Get("c") == nil {
		t.Fatalf("expected b and c to remain")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestDel(t *testing.T) {
	c := New[string, int](3)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Del("a")

	if c.Get("a") != nil {
		t.Fatalf("expected a to be deleted")
	}
	// Deleting a missing key is a no-op
	c.Del("zzz")
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := New[string, int](3)
	c.Set("a", 1)
	c.Clear()
	if c.Len() != 0 || c.Get("a") != nil {
		t.Fatalf("expected empty cache after clear")
	}
}
