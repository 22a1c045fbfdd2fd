package pool

import (
	"errors"
	"testing"
)

type widget struct {
	id       int
	created  int
	spawned  int
	recycled int
	pinned   bool
}

var nextWidgetID int

func (w *widget) Clone() *widget {
	nextWidgetID++
	return &widget{id: nextWidgetID}
}

func (w *widget) OnCreated()       { w.created++ }
func (w *widget) OnSpawned()       { w.spawned++ }
func (w *widget) OnRecycled()      { w.recycled++ }
func (w *widget) CanReclaim() bool { return !w.pinned }

func newWidgetPool(t *testing.T, count int, mode Mode) *ObjectPool[*widget] {
	t.Helper()
	p, err := New(Config[*widget]{Template: &widget{}, Count: count, Mode: mode})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func checkResidue[T comparable](t *testing.T, p *ObjectPool[T]) {
	t.Helper()
	used := 0
	if err := p.Each(func(_ T, u bool) bool {
		if u {
			used++
		}
		return true
	}); err != nil {
		t.Fatalf("Each() error = %v", err)
	}
	if got := p.ResidueCount() + used; got != p.Capacity() {
		t.Errorf("ResidueCount + used = %d, want Capacity %d", got, p.Capacity())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config[widget]{}); !errors.Is(err, ErrValueType) {
		t.Errorf("New(value type) error = %v, want ErrValueType", err)
	}
	if _, err := New(Config[*widget]{Count: -1}); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("New(count -1) error = %v, want ErrNegativeCount", err)
	}
}

func TestSpawnWithoutBuilder(t *testing.T) {
	type plain struct{ n int }
	p, err := New(Config[*plain]{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := p.Spawn(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Spawn() error = %v, want ErrUnsupported", err)
	}
}

func TestSpawnRecycleRoundTrip(t *testing.T) {
	p := newWidgetPool(t, 2, ModeAdd)

	first, err := p.Spawn()
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if !p.Recycle(first) {
		t.Fatal("Recycle() = false, want true")
	}
	again, err := p.Spawn()
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if again != first {
		t.Errorf("Spawn() after Recycle returned %d, want %d", again.id, first.id)
	}
	if first.spawned != 2 || first.recycled != 1 {
		t.Errorf("hooks spawned=%d recycled=%d, want 2 and 1", first.spawned, first.recycled)
	}
	checkResidue(t, p)
}

func TestRecycleIdempotent(t *testing.T) {
	p := newWidgetPool(t, 1, ModeAdd)
	w, _ := p.Spawn()

	if !p.Recycle(w) {
		t.Fatal("first Recycle() = false")
	}
	if !p.Recycle(w) {
		t.Error("second Recycle() = false, want true")
	}
	if w.recycled != 1 {
		t.Errorf("recycled hook ran %d times, want 1", w.recycled)
	}
	if got := p.ResidueCount(); got != 1 {
		t.Errorf("ResidueCount() = %d, want 1", got)
	}
	if p.Recycle(&widget{}) {
		t.Error("Recycle(untracked) = true, want false")
	}
}

func TestGrowthModes(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		mode    Mode
		spawns  int
		wantCap int
	}{
		{name: "add grows by original count", count: 3, mode: ModeAdd, spawns: 4, wantCap: 6},
		{name: "add from empty grows by one", count: 0, mode: ModeAdd, spawns: 2, wantCap: 2},
		{name: "multiple doubles", count: 2, mode: ModeMultiple, spawns: 5, wantCap: 8},
		{name: "multiple from empty", count: 0, mode: ModeMultiple, spawns: 1, wantCap: 2},
		{name: "custom increment", count: 1, mode: Mode(5), spawns: 2, wantCap: 6},
		{name: "recovery never grows", count: 2, mode: ModeRecovery, spawns: 5, wantCap: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newWidgetPool(t, tt.count, tt.mode)
			for i := 0; i < tt.spawns; i++ {
				if _, err := p.Spawn(); err != nil {
					t.Fatalf("Spawn() #%d error = %v", i, err)
				}
			}
			if got := p.Capacity(); got != tt.wantCap {
				t.Errorf("Capacity() = %d, want %d", got, tt.wantCap)
			}
			checkResidue(t, p)
		})
	}
}

func TestRecoveryRoundRobin(t *testing.T) {
	p := newWidgetPool(t, 2, ModeRecovery)
	a, _ := p.Spawn()
	b, _ := p.Spawn()

	c, err := p.Spawn()
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if c != a {
		t.Errorf("first reclaim returned %d, want %d", c.id, a.id)
	}
	d, _ := p.Spawn()
	if d != b {
		t.Errorf("second reclaim returned %d, want %d", d.id, b.id)
	}
	if a.recycled != 1 || b.recycled != 1 {
		t.Errorf("reclaimed instances recycled %d/%d times, want 1/1", a.recycled, b.recycled)
	}
}

func TestRecoveryStarvation(t *testing.T) {
	p := newWidgetPool(t, 2, ModeRecovery)
	a, _ := p.Spawn()
	b, _ := p.Spawn()
	a.pinned = true
	b.pinned = true

	if _, err := p.Spawn(); !errors.Is(err, ErrPoolStarved) {
		t.Errorf("Spawn() error = %v, want ErrPoolStarved", err)
	}

	b.pinned = false
	got, err := p.Spawn()
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if got != b {
		t.Errorf("Spawn() reclaimed %d, want %d", got.id, b.id)
	}
}

func TestCapacityOnlyGrows(t *testing.T) {
	p := newWidgetPool(t, 4, ModeAdd)
	if err := p.SetCapacity(2); err != nil {
		t.Fatalf("SetCapacity(2) error = %v", err)
	}
	if got := p.Capacity(); got != 4 {
		t.Errorf("Capacity() after shrink = %d, want 4", got)
	}
	if err := p.SetCapacity(7); err != nil {
		t.Fatalf("SetCapacity(7) error = %v", err)
	}
	if got := p.Capacity(); got != 7 {
		t.Errorf("Capacity() after grow = %d, want 7", got)
	}
	if got := p.ResidueCount(); got != 7 {
		t.Errorf("ResidueCount() = %d, want 7", got)
	}
}

func TestDestroyAll(t *testing.T) {
	var destroyed []*widget
	tpl := &widget{}
	p, err := New(Config[*widget]{
		Template: tpl,
		Count:    3,
		Destroy:  func(w *widget) { destroyed = append(destroyed, w) },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var dropping int
	p.OnDestroying(func(*widget) { dropping++ })

	w, _ := p.Spawn()
	before := p.Version()
	p.DestroyAll(true)

	if w.recycled != 1 {
		t.Errorf("spawned instance recycled %d times before destroy, want 1", w.recycled)
	}
	if dropping != 3 {
		t.Errorf("OnDestroying fired %d times, want 3", dropping)
	}
	if len(destroyed) != 4 {
		t.Errorf("Destroy called %d times, want 4 (3 instances + template)", len(destroyed))
	}
	if p.Capacity() != 0 || p.ResidueCount() != 0 {
		t.Errorf("Capacity=%d ResidueCount=%d after DestroyAll, want 0/0", p.Capacity(), p.ResidueCount())
	}
	if p.Version() == before {
		t.Error("Version() unchanged after DestroyAll")
	}
	if p.Template() != nil {
		t.Error("Template() retained after DestroyAll(true)")
	}
}

func TestEachDetectsModification(t *testing.T) {
	p := newWidgetPool(t, 2, ModeAdd)
	err := p.Each(func(*widget, bool) bool {
		p.DestroyAll(false)
		return true
	})
	if !errors.Is(err, ErrModified) {
		t.Errorf("Each() error = %v, want ErrModified", err)
	}
}

func TestListenersFireOutsideLock(t *testing.T) {
	p := newWidgetPool(t, 1, ModeAdd)
	var reentered bool
	p.OnSpawned(func(w *widget) {
		// Re-entrant calls must not deadlock.
		reentered = p.Recycle(w)
	})
	if _, err := p.Spawn(); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if !reentered {
		t.Error("re-entrant Recycle from OnSpawned failed")
	}
	if got := p.ResidueCount(); got != 1 {
		t.Errorf("ResidueCount() = %d, want 1", got)
	}
}

func TestAdoptInstances(t *testing.T) {
	a, b := &widget{id: 100}, &widget{id: 101}
	p, err := New(Config[*widget]{Instances: []*widget{a, nil, b}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := p.Capacity(); got != 2 {
		t.Errorf("Capacity() = %d, want 2", got)
	}
	if a.created != 1 || b.created != 1 {
		t.Errorf("created hooks = %d/%d, want 1/1", a.created, b.created)
	}
	got, _ := p.Spawn()
	if got != a {
		t.Errorf("Spawn() = %d, want %d", got.id, a.id)
	}
}
