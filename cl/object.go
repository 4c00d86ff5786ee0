package cl

import (
	"sync/atomic"

	clruntime "github.com/wippyai/cl-runtime"
)

// Object is the capability shared by every API object kind. Handle validity
// is checked against owner-collection membership, never by casting.
type Object interface {
	// Kind reports the concrete object kind.
	Kind() clruntime.ObjectKind

	// Handle returns the object's opaque handle.
	Handle() clruntime.Handle

	// Dispatch returns the shared entry-point table.
	Dispatch() *clruntime.Dispatch

	// RefCount returns the current reference count.
	RefCount() uint32

	// Retain increments the reference count. It has no failure mode.
	Retain()

	// Release decrements the reference count and destroys the object when
	// the count reaches zero. This is the only path by which release of
	// the last reference may destroy an object.
	Release() error
}

// object is the embedded base of every API object. The dispatch pointer
// stays the first field: generic callers resolve any object to the table
// without knowing its kind.
type object struct {
	dispatch *clruntime.Dispatch
	handle   clruntime.Handle
	refs     atomic.Int32
}

// init sets the dispatch pointer and the initial reference count of one.
// The returned handle to the caller is the first reference.
func (o *object) init(d *clruntime.Dispatch) {
	o.dispatch = d
	o.refs.Store(1)
}

func (o *object) Handle() clruntime.Handle { return o.handle }

func (o *object) Dispatch() *clruntime.Dispatch { return o.dispatch }

func (o *object) RefCount() uint32 { return uint32(o.refs.Load()) }

func (o *object) Retain() { o.refs.Add(1) }

// removeRef decrements the count and reports whether this call made it
// reach zero. Exactly one caller observes true, so the destroy race is
// decided deterministically.
func (o *object) removeRef() bool {
	return o.refs.Add(-1) == 0
}
