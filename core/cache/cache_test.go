package cache

import (
	"context"
	"testing"
	"time"
)

var ctx = context.Background()

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set(ctx, "k", []byte("val"), 0, nil)
	got, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if string(got) != "val" {
		t.Errorf("Get = %q, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get(ctx, "nonexistent-key-xyz"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestSet_Expires(t *testing.T) {
	c := NewCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.Set(ctx, "ttl", []byte("x"), time.Minute, nil)
	if _, ok := c.Get(ctx, "ttl"); !ok {
		t.Fatal("Get before expiry: want true")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "ttl"); ok {
		t.Error("Get after expiry: want false")
	}
}

func TestSweep(t *testing.T) {
	c := NewCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.Set(ctx, "session|abc", []byte("x"), time.Minute, []string{"sessions"})
	c.Set(ctx, "row|1", []byte("y"), time.Hour, []string{"rows"})
	c.Set(ctx, "forever", []byte("z"), 0, nil)

	now = now.Add(2 * time.Minute)
	if n := c.Sweep(); n != 1 {
		t.Fatalf("Sweep removed %d entries, want 1", n)
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len after sweep = %d, want 2", got)
	}
	if keys := c.GetKeysByTag("sessions"); len(keys) != 0 {
		t.Errorf("sessions tag still holds %v", keys)
	}
	if keys := c.GetKeysByTag("rows"); len(keys) != 1 {
		t.Errorf("rows tag = %v, want one key", keys)
	}
}

func TestRunSweeper_StopsOnCancel(t *testing.T) {
	c := NewCache()
	cctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.RunSweeper(cctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSweeper did not return after cancel")
	}
}

func TestDelete(t *testing.T) {
	c := NewCache()
	c.Set(ctx, "a", []byte("1"), 0, nil)
	c.Set(ctx, "b", []byte("2"), 0, nil)
	c.Delete(ctx, "a", "b")
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestDeleteByTag(t *testing.T) {
	c := NewCache()
	c.Set(ctx, "t1", []byte("1"), 0, []string{"table:719"})
	c.Set(ctx, "t2", []byte("2"), 0, []string{"table:719", "table:720"})
	c.Set(ctx, "t3", []byte("3"), 0, []string{"table:720"})

	if keys := c.GetKeysByTag("table:719"); len(keys) != 2 {
		t.Fatalf("GetKeysByTag = %v, want 2 keys", keys)
	}
	c.DeleteByTag(ctx, "table:719")
	if _, ok := c.Get(ctx, "t1"); ok {
		t.Error("t1 should be gone")
	}
	if _, ok := c.Get(ctx, "t2"); ok {
		t.Error("t2 should be gone")
	}
	if _, ok := c.Get(ctx, "t3"); !ok {
		t.Error("t3 should survive")
	}
}

func TestJSONHelpers(t *testing.T) {
	c := NewCache()
	in := map[string]int{"count": 3}
	if err := SetJSON(ctx, c, Key("list", 719, 1), in, 0); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var out map[string]int
	if !GetJSON(ctx, c, "list|719|1", &out) {
		t.Fatal("GetJSON: want true")
	}
	if out["count"] != 3 {
		t.Errorf("count = %d, want 3", out["count"])
	}
}
