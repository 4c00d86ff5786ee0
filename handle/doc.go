// Package handle implements the kind-tagged handle table backing the object
// model's opaque API handles.
//
// Every live API object is registered in a table and identified by a Handle.
// Handle 0 is reserved and always invalid. Freed slots are recycled through
// a free list, so the table does not grow with churn.
//
// # Kind Tagging
//
// Each entry records the ObjectKind it was inserted with. Lookups can demand
// a kind, which is how the runtime rejects a caller passing, say, a sampler
// handle where a context handle is expected:
//
//	table := handle.NewTable()
//	h := table.Insert(clruntime.KindContext, ctx)
//
//	v, ok := table.GetKind(h, clruntime.KindContext) // ok
//	v, ok = table.GetKind(h, clruntime.KindSampler)  // !ok
//
// # Lifetime
//
// Remove invalidates a handle; subsequent lookups fail. The table never
// destroys the stored value itself, the owner performing teardown does.
package handle
