package plugin

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrInvalidTransformer is returned when registering a nil or unnamed transformer.
	ErrInvalidTransformer = errors.New("plugin: invalid transformer")
	// ErrDuplicateTransformer is returned when a name is already registered.
	ErrDuplicateTransformer = errors.New("plugin: transformer already registered")
	// ErrUnknownTransformer is returned when a name has no registration.
	ErrUnknownTransformer = errors.New("plugin: unknown transformer")
)

// Registry manages named transformers.
type Registry struct {
	mu           sync.RWMutex
	transformers map[string]Transformer
}

// NewRegistry constructs an empty transformer registry.
func NewRegistry() *Registry {
	return &Registry{transformers: make(map[string]Transformer)}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register stores t under its name. Names are case-insensitive.
func (r *Registry) Register(t Transformer) error {
	if t == nil {
		return ErrInvalidTransformer
	}
	key := normalizeName(t.Name())
	if key == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTransformer)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.transformers[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTransformer, key)
	}
	r.transformers[key] = t
	return nil
}

// Replace stores t under its name, overwriting any previous registration.
func (r *Registry) Replace(t Transformer) error {
	if t == nil {
		return ErrInvalidTransformer
	}
	key := normalizeName(t.Name())
	if key == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTransformer)
	}
	r.mu.Lock()
	r.transformers[key] = t
	r.mu.Unlock()
	return nil
}

// Get returns the transformer registered under name.
func (r *Registry) Get(name string) (Transformer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transformers[normalizeName(name)]
	return t, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.transformers))
	for name := range r.transformers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the transformers for names in the given order.
func (r *Registry) Resolve(names ...string) ([]Transformer, error) {
	out := make([]Transformer, 0, len(names))
	for _, name := range names {
		t, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTransformer, name)
		}
		out = append(out, t)
	}
	return out, nil
}

var defaultRegistry = NewRegistry()

// Default exposes the package-level registry for shared use.
func Default() *Registry {
	return defaultRegistry
}

// Register attaches t to the default registry.
func Register(t Transformer) error {
	return defaultRegistry.Register(t)
}
