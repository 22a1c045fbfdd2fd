// Package pool provides a generic object cache with spawn/recycle semantics
// and configurable growth, plus a named registry of pools that can be shared
// between lists.
package pool

import (
	"fmt"
	"reflect"
	"sync"
)

// ============================================================================
// Item Hooks
// ============================================================================
//
// Pooled types may implement any of these to observe their own lifecycle.
// Hooks run after the pool lock is released, so they may call back into
// the pool (for example recycling a sibling from OnSpawned).

// Created is implemented by instances that want to know when a pool built them.
type Created interface{ OnCreated() }

// Spawned is implemented by instances that want to know when they are handed out.
type Spawned interface{ OnSpawned() }

// Recycled is implemented by instances that want to know when they return to the pool.
type Recycled interface{ OnRecycled() }

// Destroying is implemented by instances that want to know when the pool drops them.
type Destroying interface{ OnDestroying() }

// Reclaimable lets an in-use instance refuse being reclaimed by ModeRecovery.
// It is consulted while the pool lock is held and must not call into the pool.
type Reclaimable interface{ CanReclaim() bool }

// Cloner is implemented by templates that can produce copies of themselves.
type Cloner[T any] interface{ Clone() T }

// Config describes how a pool builds and tears down instances.
type Config[T comparable] struct {
	// Template is passed to Builder, or cloned when it implements Cloner[T].
	Template T
	// Count instances are built up front. It is also the ModeAdd increment.
	Count int
	// Mode selects the growth policy. The zero value is ModeAdd.
	Mode Mode
	// Builder creates a new instance. Nil means clone Template.
	// Builder runs with the pool lock held and must not call into the pool.
	Builder func(template T) (T, error)
	// Destroy releases an instance dropped by DestroyAll.
	Destroy func(instance T)
	// Instances are adopted as unused slots instead of building Count new ones.
	Instances []T
}

type slot[T comparable] struct {
	instance T
	used     bool
}

type noticeKind uint8

const (
	noticeCreated noticeKind = iota
	noticeSpawned
	noticeRecycled
	noticeDestroying
	noticeBuilt
)

type notice[T comparable] struct {
	kind     noticeKind
	instance T
}

// ObjectPool caches instances of T. All slot mutations and derived counts are
// guarded by one mutex; listeners and hooks fire after it is released.
type ObjectPool[T comparable] struct {
	mu          sync.Mutex
	template    T
	builder     func(T) (T, error)
	destroy     func(T)
	mode        Mode
	originCount int
	slots       []slot[T]
	stopIndex   int
	residue     int
	version     uint64

	created    []func(T)
	spawned    []func(T)
	recycled   []func(T)
	destroying []func(T)
	built      []func()
}

// New creates a pool. It fails with ErrValueType when T is not a reference
// type and with ErrNegativeCount when cfg.Count is negative.
func New[T comparable](cfg Config[T]) (*ObjectPool[T], error) {
	if !isReferenceType[T]() {
		var zero T
		return nil, fmt.Errorf("%w: %T", ErrValueType, zero)
	}
	if cfg.Count < 0 {
		return nil, ErrNegativeCount
	}

	p := &ObjectPool[T]{
		template:    cfg.Template,
		builder:     cfg.Builder,
		destroy:     cfg.Destroy,
		mode:        cfg.Mode,
		originCount: cfg.Count,
	}

	var notices []notice[T]
	if cfg.Instances != nil {
		p.originCount = len(cfg.Instances)
		p.slots = make([]slot[T], 0, len(cfg.Instances))
		for _, inst := range cfg.Instances {
			if isNil(inst) {
				continue
			}
			p.slots = append(p.slots, slot[T]{instance: inst})
			p.residue++
			notices = append(notices, notice[T]{kind: noticeCreated, instance: inst})
		}
		p.version++
		notices = append(notices, notice[T]{kind: noticeBuilt})
	} else if cfg.Count > 0 {
		p.slots = make([]slot[T], 0, cfg.Count)
		var err error
		notices, err = p.rebuild(cfg.Count, nil)
		if err != nil {
			return nil, err
		}
	}
	p.dispatch(notices)
	return p, nil
}

// Must is like New but panics on error. Intended for package-level pools.
func Must[T comparable](cfg Config[T]) *ObjectPool[T] {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// ============================================================================
// Listeners
// ============================================================================

// OnCreated registers fn to run for every newly built instance.
func (p *ObjectPool[T]) OnCreated(fn func(T)) {
	p.mu.Lock()
	p.created = append(p.created, fn)
	p.mu.Unlock()
}

// OnSpawned registers fn to run every time an instance is handed out.
func (p *ObjectPool[T]) OnSpawned(fn func(T)) {
	p.mu.Lock()
	p.spawned = append(p.spawned, fn)
	p.mu.Unlock()
}

// OnRecycled registers fn to run every time an instance returns to the pool.
func (p *ObjectPool[T]) OnRecycled(fn func(T)) {
	p.mu.Lock()
	p.recycled = append(p.recycled, fn)
	p.mu.Unlock()
}

// OnDestroying registers fn to run before DestroyAll drops an instance.
func (p *ObjectPool[T]) OnDestroying(fn func(T)) {
	p.mu.Lock()
	p.destroying = append(p.destroying, fn)
	p.mu.Unlock()
}

// OnBuilt registers fn to run after each growth pass.
func (p *ObjectPool[T]) OnBuilt(fn func()) {
	p.mu.Lock()
	p.built = append(p.built, fn)
	p.mu.Unlock()
}

// ============================================================================
// Operations
// ============================================================================

// Spawn returns the first unused instance, growing the pool according to its
// mode when none is free.
func (p *ObjectPool[T]) Spawn() (T, error) {
	p.mu.Lock()
	inst, notices, err := p.spawnLocked()
	p.mu.Unlock()

	p.dispatch(notices)
	return inst, err
}

func (p *ObjectPool[T]) spawnLocked() (T, []notice[T], error) {
	var notices []notice[T]
	var zero T

	if inst, ok := p.takeFree(); ok {
		return inst, append(notices, notice[T]{kind: noticeSpawned, instance: inst}), nil
	}

	var err error
	switch {
	case p.mode == ModeRecovery:
		notices, err = p.reclaim(notices)
	case p.mode == ModeMultiple:
		notices, err = p.rebuild(max(1, len(p.slots))*2, notices)
	case p.mode > 0:
		notices, err = p.rebuild(len(p.slots)+int(p.mode), notices)
	default:
		notices, err = p.rebuild(len(p.slots)+max(1, p.originCount), notices)
	}
	if err != nil {
		return zero, notices, err
	}

	inst, ok := p.takeFree()
	if !ok {
		return zero, notices, ErrPoolStarved
	}
	return inst, append(notices, notice[T]{kind: noticeSpawned, instance: inst}), nil
}

func (p *ObjectPool[T]) takeFree() (T, bool) {
	for i := range p.slots {
		if !p.slots[i].used {
			p.slots[i].used = true
			p.residue--
			return p.slots[i].instance, true
		}
	}
	var zero T
	return zero, false
}

// reclaim force-recycles the next in-use slot after stopIndex. It scans every
// slot at most once, so a pool whose instances all refuse reclamation reports
// ErrPoolStarved instead of spinning.
func (p *ObjectPool[T]) reclaim(notices []notice[T]) ([]notice[T], error) {
	if len(p.slots) == 0 {
		if !p.canBuild() {
			var zero T
			return notices, fmt.Errorf("%w: %T", ErrUnsupported, zero)
		}
		return p.rebuild(1, notices)
	}

	n := len(p.slots)
	for step := 0; step < n; step++ {
		i := (p.stopIndex + step) % n
		s := &p.slots[i]
		if !s.used {
			continue
		}
		if r, ok := any(s.instance).(Reclaimable); ok && !r.CanReclaim() {
			continue
		}
		s.used = false
		p.residue++
		p.stopIndex = (i + 1) % n
		return append(notices, notice[T]{kind: noticeRecycled, instance: s.instance}), nil
	}
	return notices, ErrPoolStarved
}

// Recycle returns instance to the pool. Recycling an unused instance is a
// no-op that still reports true; false means the instance is not tracked.
func (p *ObjectPool[T]) Recycle(instance T) bool {
	p.mu.Lock()
	var notices []notice[T]
	found := false
	for i := range p.slots {
		s := &p.slots[i]
		if s.instance != instance {
			continue
		}
		found = true
		if s.used {
			s.used = false
			p.residue++
			notices = append(notices, notice[T]{kind: noticeRecycled, instance: instance})
		}
		break
	}
	p.mu.Unlock()

	p.dispatch(notices)
	return found
}

// RecycleAll returns every in-use instance to the pool.
func (p *ObjectPool[T]) RecycleAll() {
	p.mu.Lock()
	notices := p.recycleAllLocked(nil)
	p.mu.Unlock()

	p.dispatch(notices)
}

func (p *ObjectPool[T]) recycleAllLocked(notices []notice[T]) []notice[T] {
	for i := range p.slots {
		s := &p.slots[i]
		if s.used {
			s.used = false
			p.residue++
			notices = append(notices, notice[T]{kind: noticeRecycled, instance: s.instance})
		}
	}
	return notices
}

// DestroyAll recycles everything, then drops every instance (and the
// template when destroyTemplate is set). Running iterations are invalidated.
func (p *ObjectPool[T]) DestroyAll(destroyTemplate bool) {
	p.mu.Lock()
	if len(p.slots) == 0 {
		p.mu.Unlock()
		return
	}

	notices := p.recycleAllLocked(nil)
	dropped := make([]T, 0, len(p.slots)+1)
	for _, s := range p.slots {
		if isNil(s.instance) {
			continue
		}
		notices = append(notices, notice[T]{kind: noticeDestroying, instance: s.instance})
		dropped = append(dropped, s.instance)
	}
	p.slots = nil
	p.stopIndex = 0

	if destroyTemplate && !isNil(p.template) {
		dropped = append(dropped, p.template)
		var zero T
		p.template = zero
	}

	p.version++
	p.residue = 0
	destroy := p.destroy
	p.mu.Unlock()

	p.dispatch(notices)
	if destroy != nil {
		for _, inst := range dropped {
			destroy(inst)
		}
	}
}

// ============================================================================
// Properties
// ============================================================================

// Capacity returns the total slot count.
func (p *ObjectPool[T]) Capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots)
}

// SetCapacity grows the pool to n slots. It never shrinks.
func (p *ObjectPool[T]) SetCapacity(n int) error {
	p.mu.Lock()
	if n <= len(p.slots) {
		p.mu.Unlock()
		return nil
	}
	notices, err := p.rebuild(n, nil)
	p.mu.Unlock()

	p.dispatch(notices)
	return err
}

// ResidueCount returns the number of unused slots.
func (p *ObjectPool[T]) ResidueCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.residue
}

// Mode returns the growth policy.
func (p *ObjectPool[T]) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SetMode changes the growth policy.
func (p *ObjectPool[T]) SetMode(m Mode) {
	p.mu.Lock()
	p.mode = m
	p.mu.Unlock()
}

// Template returns the instance new entries are built from.
func (p *ObjectPool[T]) Template() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.template
}

// Version changes whenever the slot list is rebuilt or destroyed.
func (p *ObjectPool[T]) Version() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// Each calls fn for every cached instance with its used flag until fn returns
// false. It returns ErrModified if the pool grows or is destroyed meanwhile.
func (p *ObjectPool[T]) Each(fn func(instance T, used bool) bool) error {
	p.mu.Lock()
	version := p.version
	p.mu.Unlock()

	for i := 0; ; i++ {
		p.mu.Lock()
		if p.version != version {
			p.mu.Unlock()
			return ErrModified
		}
		if i >= len(p.slots) {
			p.mu.Unlock()
			return nil
		}
		s := p.slots[i]
		p.mu.Unlock()

		if !fn(s.instance, s.used) {
			return nil
		}
	}
}

// ============================================================================
// Internal
// ============================================================================

func (p *ObjectPool[T]) canBuild() bool {
	if p.builder != nil {
		return true
	}
	_, ok := any(p.template).(Cloner[T])
	return ok && !isNil(p.template)
}

func (p *ObjectPool[T]) rebuild(count int, notices []notice[T]) ([]notice[T], error) {
	grew := false
	for len(p.slots) < count {
		inst, err := p.build()
		if err != nil {
			if grew {
				p.version++
			}
			return notices, err
		}
		p.slots = append(p.slots, slot[T]{instance: inst})
		p.residue++
		grew = true
		notices = append(notices, notice[T]{kind: noticeCreated, instance: inst})
	}
	if grew {
		p.version++
	}
	return append(notices, notice[T]{kind: noticeBuilt}), nil
}

func (p *ObjectPool[T]) build() (T, error) {
	var zero T
	if p.builder != nil {
		inst, err := p.builder(p.template)
		if err != nil {
			return zero, fmt.Errorf("pool: build: %w", err)
		}
		if isNil(inst) {
			return zero, fmt.Errorf("%w: builder returned nil %T", ErrUnsupported, zero)
		}
		return inst, nil
	}
	if c, ok := any(p.template).(Cloner[T]); ok && !isNil(p.template) {
		if inst := c.Clone(); !isNil(inst) {
			return inst, nil
		}
	}
	return zero, fmt.Errorf("%w: %T", ErrUnsupported, zero)
}

func (p *ObjectPool[T]) dispatch(notices []notice[T]) {
	if len(notices) == 0 {
		return
	}

	p.mu.Lock()
	created := p.created
	spawned := p.spawned
	recycled := p.recycled
	destroying := p.destroying
	built := p.built
	p.mu.Unlock()

	for _, n := range notices {
		switch n.kind {
		case noticeCreated:
			if h, ok := any(n.instance).(Created); ok {
				h.OnCreated()
			}
			for _, fn := range created {
				fn(n.instance)
			}
		case noticeSpawned:
			if h, ok := any(n.instance).(Spawned); ok {
				h.OnSpawned()
			}
			for _, fn := range spawned {
				fn(n.instance)
			}
		case noticeRecycled:
			if h, ok := any(n.instance).(Recycled); ok {
				h.OnRecycled()
			}
			for _, fn := range recycled {
				fn(n.instance)
			}
		case noticeDestroying:
			if h, ok := any(n.instance).(Destroying); ok {
				h.OnDestroying()
			}
			for _, fn := range destroying {
				fn(n.instance)
			}
		case noticeBuilt:
			for _, fn := range built {
				fn()
			}
		}
	}
}

func isReferenceType[T any]() bool {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Map, reflect.Slice, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
