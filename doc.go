// Package clruntime provides a Go implementation of the host-side object
// model for an OpenCL-compatible compute API.
//
// This library manages the reference-counted graph of API objects (platforms,
// contexts, command queues, memory objects, samplers, programs) and delegates
// all device work to pluggable backend implementations. It reproduces the
// lifetime, reference-counting and error-code contract of the OpenCL
// specification while staying safe under concurrent retain/release from
// client code.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	cl-runtime/          Root package with the shared handle, bitmask and
//	                     dispatch-table ABI types
//	├── cl/              The object model: platforms, contexts, queues,
//	                     memory objects, samplers, programs
//	├── backend/         Backend implementation interfaces and the backend
//	                     factory registry
//	├── backend/soft/    Pure-Go software backend (default, also used in tests)
//	├── backend/wasm/    wazero-backed backend treating program IL as
//	                     WebAssembly modules
//	├── handle/          Kind-tagged handle table mapping opaque handles to
//	                     live objects
//	├── errors/          CL error codes and structured error types
//	└── cmd/clinfo/      Platform and device enumeration CLI
//
// # Quick Start
//
// Initialize the platform registry and create a context:
//
//	reg, err := cl.Initialize()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	platform := reg.Platforms()[0]
//	devices := platform.Devices()
//
//	ctx, err := platform.CreateContext(nil, devices, nil, nil, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Release()
//
//	queue, err := ctx.CreateCommandQueue(devices[0], 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer queue.Release()
//
// # Handles
//
// Every object carries an opaque Handle issued by a process-wide handle
// table. Handles are what crosses the API boundary; they are validated
// against platform ownership before any dereference, so stale or foreign
// handles produce error codes instead of undefined behavior.
//
// # Dispatch Table
//
// Every object exposes the same fixed-layout Dispatch table through its
// Dispatch method. The table carries the raw handle-based entry points, so
// generic callers can operate on any object kind without resolving its
// concrete type first.
//
// # Reference Counting
//
// Objects are created with a reference count of one; the returned value is
// the first reference. Retain increments, Release decrements and destroys
// the object when the count reaches zero. Child objects never outlive their
// owning context: releasing a context that still has live children forces
// their backend resources to be released and invalidates their handles.
//
// # Thread Safety
//
// All entry points may be called from multiple goroutines concurrently.
// Reference counts are atomic, per-context child collections are guarded by
// a per-context lock, and the platform list is immutable after Initialize.
package clruntime
