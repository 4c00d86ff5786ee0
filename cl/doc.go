// Package cl implements the host-side object model: platforms, devices,
// contexts, command queues, memory objects, samplers and programs, wired
// together by reference counting and delegating device work to a backend.
//
// # Registry
//
// A Registry is the root of one complete object graph. The package default
// enumerates every compiled-in backend once per process:
//
//	reg := cl.Default()
//	for _, p := range reg.Platforms() {
//		fmt.Println(p.Info().Name)
//	}
//
// Tests construct private registries over explicit backends with
// NewRegistry, so no state leaks between tests.
//
// # Ownership
//
// Platforms own devices and contexts; contexts own command queues, memory
// objects, samplers and programs. A child holds references to the objects
// it was created from, and releasing the last reference walks the object
// back through its owner, which removes it from the owner's collections
// before destruction. Handle validity is decided by those collections:
// a handle is valid exactly while some owner still lists its object.
//
// # Reference Counting
//
// Every object starts with a count of one, held by the creating caller.
// Retain and Release adjust the count; the release that brings it to zero
// destroys the object. Platforms and devices are root objects: their
// retain and release entry points validate the handle and otherwise do
// nothing destructive.
//
// # Info Queries
//
// Every object kind answers GetInfo with the same protocol: pass a nil
// buffer to probe the required size, then call again with a buffer at
// least that large. A too-small buffer fails without partial output.
package cl
