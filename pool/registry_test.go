package pool

import (
	"errors"
	"sort"
	"testing"
)

func TestRegistryGetOrCreate(t *testing.T) {
	var prepared []string
	r := NewRegistry(RegistryConfig[*widget]{
		Prepare: func(name string, _ *ObjectPool[*widget]) { prepared = append(prepared, name) },
	})

	p, err := r.GetOrCreate("row", &widget{}, 0)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if got := p.Capacity(); got != 1 {
		t.Errorf("Capacity() = %d, want 1 (count is raised to at least one)", got)
	}

	again, err := r.GetOrCreate("row", &widget{}, 10)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if again != p {
		t.Error("GetOrCreate() returned a different pool for the same name")
	}
	if len(prepared) != 1 {
		t.Errorf("Prepare ran %d times, want 1", len(prepared))
	}

	if _, ok := r.TryGet("missing"); ok {
		t.Error("TryGet(missing) = true")
	}
	if got, ok := r.TryGet("row"); !ok || got != p {
		t.Error("TryGet(row) did not return the created pool")
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry(RegistryConfig[*widget]{})
	p, _ := r.GetOrCreate("a", &widget{}, 2)
	if _, err := r.GetOrCreate("b", &widget{}, 1); err != nil {
		t.Fatalf("GetOrCreate(b) error = %v", err)
	}

	names := r.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}

	if !r.Remove("a") {
		t.Error("Remove(a) = false")
	}
	if r.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	if p.Capacity() != 0 {
		t.Errorf("removed pool Capacity() = %d, want 0", p.Capacity())
	}
	if p.Template() == nil {
		t.Error("Remove destroyed the template")
	}

	r.RemoveAll()
	if len(r.Names()) != 0 {
		t.Errorf("Names() after RemoveAll = %v", r.Names())
	}
}

func TestRegistryClose(t *testing.T) {
	r := NewRegistry(RegistryConfig[*widget]{})
	if _, err := r.GetOrCreate("a", &widget{}, 1); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	r.Close()
	if _, err := r.GetOrCreate("a", &widget{}, 1); !errors.Is(err, ErrClosed) {
		t.Errorf("GetOrCreate() after Close error = %v, want ErrClosed", err)
	}
}
