package registry

import "testing"

func TestRegistry_SetGet(t *testing.T) {
	r := New()
	r.SetGlobal("k", 42)
	v, ok := r.GetGlobal("k")
	if !ok || v.(int) != 42 {
		t.Fatalf("GetGlobal = %v, %v; want 42, true", v, ok)
	}
	if _, ok := r.GetGlobal("missing"); ok {
		t.Error("GetGlobal(missing): want false")
	}
}

func TestRegistry_LockedSetPanics(t *testing.T) {
	r := New()
	r.SetGlobal("k", 1)
	r.Lock("k")
	if !r.IsLocked("k") {
		t.Fatal("IsLocked: want true")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic on locked key")
		}
	}()
	r.SetGlobal("k", 2)
}

func TestRegistry_UnlockForTesting(t *testing.T) {
	r := New()
	r.Lock("k")
	r.UnlockForTesting("k")
	r.SetGlobal("k", "v")
	if v, _ := r.GetGlobal("k"); v != "v" {
		t.Errorf("GetGlobal = %v, want v", v)
	}
}
