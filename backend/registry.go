package backend

import (
	"sync"

	"github.com/wippyai/cl-runtime/errors"
)

// Factory creates a new backend platform instance.
type Factory func() (Platform, error)

// registry holds registered backend factories. Registration order is
// preserved: the object model publishes platforms in the order backends
// registered.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	order      []string
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced
// in place, keeping its position in the order.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := factories[name]; !ok {
		order = append(order, name)
	}
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := factories[name]; !ok {
		return
	}
	delete(factories, name)
	for i, n := range order {
		if n == name {
			order = append(order[:i], order[i+1:]...)
			break
		}
	}
}

// Available returns the registered backend names in registration order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get instantiates a backend platform by name.
func Get(name string) (Platform, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.Newf(errors.InvalidPlatform, "backend.Get", "backend %q not registered", name)
	}
	return factory()
}

// Platforms instantiates every registered backend in registration order.
// A backend whose factory fails is skipped; initialization proceeds with
// the remaining backends.
func Platforms() []Platform {
	registryMu.RLock()
	names := make([]string, len(order))
	copy(names, order)
	facs := make([]Factory, 0, len(names))
	for _, name := range names {
		facs = append(facs, factories[name])
	}
	registryMu.RUnlock()

	platforms := make([]Platform, 0, len(facs))
	for _, factory := range facs {
		p, err := factory()
		if err != nil || p == nil {
			continue
		}
		platforms = append(platforms, p)
	}
	return platforms
}
