package pool

import (
	"sync"

	"github.com/rs/zerolog"
)

// RegistryConfig configures the pools a Registry creates.
type RegistryConfig[T comparable] struct {
	// Builder is forwarded to every pool created by GetOrCreate.
	Builder func(template T) (T, error)
	// Destroy is forwarded to every pool created by GetOrCreate.
	Destroy func(instance T)
	// Mode is the growth policy for new pools.
	Mode Mode
	// Prepare runs once for every new pool, before it is returned.
	Prepare func(name string, p *ObjectPool[T])
	// Logger receives pool lifecycle diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Registry is an explicitly owned set of named pools. One registry may be
// shared by several lists that spawn from the same templates.
type Registry[T comparable] struct {
	mu     sync.RWMutex
	pools  map[string]*ObjectPool[T]
	cfg    RegistryConfig[T]
	log    zerolog.Logger
	closed bool
}

// NewRegistry creates an empty registry.
func NewRegistry[T comparable](cfg RegistryConfig[T]) *Registry[T] {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "pool").Logger()
	}
	return &Registry[T]{
		pools: make(map[string]*ObjectPool[T]),
		cfg:   cfg,
		log:   log,
	}
}

// TryGet returns the pool registered under name.
func (r *Registry[T]) TryGet(name string) (*ObjectPool[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pools[name]
	return p, ok
}

// GetOrCreate returns the pool registered under name, creating it from
// template with at least one prebuilt instance when missing.
func (r *Registry[T]) GetOrCreate(name string, template T, count int) (*ObjectPool[T], error) {
	r.mu.RLock()
	p, ok := r.pools[name]
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if ok {
		return p, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if p, ok := r.pools[name]; ok {
		return p, nil
	}

	p, err := New(Config[T]{
		Template: template,
		Count:    max(1, count),
		Mode:     r.cfg.Mode,
		Builder:  r.cfg.Builder,
		Destroy:  r.cfg.Destroy,
	})
	if err != nil {
		r.log.Error().Err(err).Str("pool", name).Msg("create pool failed")
		return nil, err
	}
	if r.cfg.Prepare != nil {
		r.cfg.Prepare(name, p)
	}
	r.pools[name] = p
	r.log.Debug().Str("pool", name).Int("capacity", p.Capacity()).Msg("pool created")
	return p, nil
}

// Remove destroys and unregisters the pool under name. The template is kept.
func (r *Registry[T]) Remove(name string) bool {
	r.mu.Lock()
	p, ok := r.pools[name]
	delete(r.pools, name)
	r.mu.Unlock()

	if !ok {
		return false
	}
	p.DestroyAll(false)
	r.log.Debug().Str("pool", name).Msg("pool removed")
	return true
}

// RemoveAll destroys and unregisters every pool.
func (r *Registry[T]) RemoveAll() {
	r.mu.Lock()
	pools := r.pools
	r.pools = make(map[string]*ObjectPool[T])
	r.mu.Unlock()

	for name, p := range pools {
		p.DestroyAll(false)
		r.log.Debug().Str("pool", name).Msg("pool removed")
	}
}

// Names returns the registered pool names in no particular order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pools))
	for name := range r.pools {
		names = append(names, name)
	}
	return names
}

// Close removes every pool and rejects further creation.
func (r *Registry[T]) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.RemoveAll()
}
