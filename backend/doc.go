// Package backend defines the implementation interfaces the object model
// delegates device work to, and the registry through which backend
// implementations are discovered.
//
// The object model never performs device work itself. Each API object owns
// an implementation handle created through the owning parent's factory
// method: a Platform creates Context implementations, a Context creates
// queue, memory, sampler and program implementations. Backends report
// failures as *errors.Error values so the exact API code propagates
// unchanged through the object model.
//
// Backends register a factory under a name, typically from an init
// function in the backend package:
//
//	func init() {
//	    backend.Register(Name, func() (backend.Platform, error) {
//	        return New(DefaultConfig())
//	    })
//	}
//
// The object model enumerates every registered backend once at
// initialization and publishes one API platform per backend, in
// registration order.
package backend
