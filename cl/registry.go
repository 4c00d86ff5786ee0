package cl

import (
	"sync"

	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
	"github.com/wippyai/cl-runtime/errors"
	"github.com/wippyai/cl-runtime/handle"
)

// Registry is the process-wide root of the object model. It enumerates the
// available backends once, wraps each in a Platform and publishes a stable
// platform list. Every incoming handle is validated through the registry's
// ownership scans before any dereference, so stale, foreign or corrupted
// handles are rejected with an error code instead of undefined behavior.
//
// The platform list is immutable after construction and requires no locking
// for reads.
type Registry struct {
	handles   *handle.Table
	dispatch  *clruntime.Dispatch
	platforms []*Platform
}

// NewRegistry builds a registry over the given backend platforms. Tests
// substitute a deterministic backend here instead of relying on process
// globals.
func NewRegistry(impls ...backend.Platform) (*Registry, error) {
	r := &Registry{handles: handle.NewTable()}
	r.dispatch = newDispatch(r)

	for _, impl := range impls {
		p, err := newPlatform(r, impl)
		if err != nil {
			Logger().Warn("platform initialization failed",
				zap.String("name", impl.Info().Name), zap.Error(err))
			continue
		}
		r.platforms = append(r.platforms, p)
		Logger().Info("platform published",
			zap.String("name", p.info.Name), zap.Int("devices", len(p.devices)))
	}
	return r, nil
}

var (
	defaultRegistry *Registry
	defaultErr      error
	defaultOnce     sync.Once
)

// Initialize builds the default registry from every registered backend,
// once per process. Subsequent calls return the same registry.
func Initialize() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = NewRegistry(backend.Platforms()...)
	})
	return defaultRegistry, defaultErr
}

// Default returns the default registry, initializing it if needed.
// Initialization errors surface through Initialize.
func Default() *Registry {
	r, _ := Initialize()
	return r
}

// Platforms returns the published platform list in backend registration
// order. The returned slice is a copy; the underlying list never changes.
func (r *Registry) Platforms() []*Platform {
	out := make([]*Platform, len(r.platforms))
	copy(out, r.platforms)
	return out
}

// Dispatch returns the registry's entry-point table. Every object created
// under this registry embeds the same table.
func (r *Registry) Dispatch() *clruntime.Dispatch { return r.dispatch }

// Ownership scans. Each predicate reports whether some platform currently
// owns a live object of the expected kind with the given handle.

// IsPlatform reports whether h is a live platform handle.
func (r *Registry) IsPlatform(h clruntime.Handle) bool {
	for _, p := range r.platforms {
		if p.handle == h {
			return true
		}
	}
	return false
}

// IsDevice reports whether h is a live device handle.
func (r *Registry) IsDevice(h clruntime.Handle) bool {
	for _, p := range r.platforms {
		if p.hasDevice(h) {
			return true
		}
	}
	return false
}

// IsContext reports whether h is a live context handle.
func (r *Registry) IsContext(h clruntime.Handle) bool {
	for _, p := range r.platforms {
		if p.hasContext(h) {
			return true
		}
	}
	return false
}

// IsCommandQueue reports whether h is a live command queue handle.
func (r *Registry) IsCommandQueue(h clruntime.Handle) bool {
	for _, p := range r.platforms {
		if p.hasCommandQueue(h) {
			return true
		}
	}
	return false
}

// IsMemory reports whether h is a live memory object handle.
func (r *Registry) IsMemory(h clruntime.Handle) bool {
	for _, p := range r.platforms {
		if p.hasMemory(h) {
			return true
		}
	}
	return false
}

// IsSampler reports whether h is a live sampler handle.
func (r *Registry) IsSampler(h clruntime.Handle) bool {
	for _, p := range r.platforms {
		if p.hasSampler(h) {
			return true
		}
	}
	return false
}

// IsProgram reports whether h is a live program handle.
func (r *Registry) IsProgram(h clruntime.Handle) bool {
	for _, p := range r.platforms {
		if p.hasProgram(h) {
			return true
		}
	}
	return false
}

// Typed lookups used by the dispatch layer. Each resolves the handle
// through the table, then confirms ownership before returning the object.

func (r *Registry) lookupPlatform(h clruntime.Handle, op string) (*Platform, error) {
	if v, ok := r.handles.GetKind(h, clruntime.KindPlatform); ok && r.IsPlatform(h) {
		return v.(*Platform), nil
	}
	return nil, errors.InvalidHandle(errors.InvalidPlatform, op)
}

func (r *Registry) lookupDevice(h clruntime.Handle, op string) (*Device, error) {
	if v, ok := r.handles.GetKind(h, clruntime.KindDevice); ok && r.IsDevice(h) {
		return v.(*Device), nil
	}
	return nil, errors.InvalidHandle(errors.InvalidDevice, op)
}

func (r *Registry) lookupContext(h clruntime.Handle, op string) (*Context, error) {
	if v, ok := r.handles.GetKind(h, clruntime.KindContext); ok && r.IsContext(h) {
		return v.(*Context), nil
	}
	return nil, errors.InvalidHandle(errors.InvalidContext, op)
}

func (r *Registry) lookupCommandQueue(h clruntime.Handle, op string) (*CommandQueue, error) {
	if v, ok := r.handles.GetKind(h, clruntime.KindCommandQueue); ok && r.IsCommandQueue(h) {
		return v.(*CommandQueue), nil
	}
	return nil, errors.InvalidHandle(errors.InvalidCommandQueue, op)
}

func (r *Registry) lookupMemory(h clruntime.Handle, op string) (*Memory, error) {
	if v, ok := r.handles.GetKind(h, clruntime.KindMemory); ok && r.IsMemory(h) {
		return v.(*Memory), nil
	}
	return nil, errors.InvalidHandle(errors.InvalidMemObject, op)
}

func (r *Registry) lookupSampler(h clruntime.Handle, op string) (*Sampler, error) {
	if v, ok := r.handles.GetKind(h, clruntime.KindSampler); ok && r.IsSampler(h) {
		return v.(*Sampler), nil
	}
	return nil, errors.InvalidHandle(errors.InvalidSampler, op)
}

func (r *Registry) lookupProgram(h clruntime.Handle, op string) (*Program, error) {
	if v, ok := r.handles.GetKind(h, clruntime.KindProgram); ok && r.IsProgram(h) {
		return v.(*Program), nil
	}
	return nil, errors.InvalidHandle(errors.InvalidProgram, op)
}
