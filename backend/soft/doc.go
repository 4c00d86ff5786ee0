// Package soft provides a pure-Go software backend.
//
// The soft backend performs no device work; it materializes every
// implementation object in host memory. Buffers are byte slices, programs
// store their inputs, queues are bookkeeping only. It exists so the object
// model always has at least one live platform, and so tests can exercise
// the full ownership and error contract against a deterministic device set.
//
// The default configuration publishes one virtual GPU (images and IL
// supported) and one virtual CPU (no IL). Tests needing a specific
// capability mix construct a platform directly:
//
//	p, err := soft.New(soft.Config{
//	    Devices: []backend.DeviceInfo{{Type: clruntime.DeviceTypeGPU, ILVersion: "SPIR-V_1.2"}},
//	})
package soft
