package cl

import (
	"sync"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
)

// CommandQueue is the per-device execution-ordering handle. It holds
// non-owning references to its context and device; both outlive the queue
// because the context owns the queue and is destroyed after it.
type CommandQueue struct {
	object
	context *Context
	device  *Device

	// propArray is the copied raw property array from the with-properties
	// constructor; nil for the legacy constructor.
	propArray []uint64
	size      uint32
	impl      backend.CommandQueue

	mu         sync.Mutex
	properties clruntime.QueueProperties
}

func (q *CommandQueue) Kind() clruntime.ObjectKind { return clruntime.KindCommandQueue }

// Context returns the owning context.
func (q *CommandQueue) Context() *Context { return q.context }

// Device returns the queue's device.
func (q *CommandQueue) Device() *Device { return q.device }

// Properties returns the current properties bitmask.
func (q *CommandQueue) Properties() clruntime.QueueProperties {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.properties
}

// Release decrements the reference count; on reaching zero the owning
// context removes the queue from its list and performs destruction.
func (q *CommandQueue) Release() error {
	if q.removeRef() {
		q.context.destroyCommandQueue(q)
	}
	return nil
}

// destroy clears the device default-queue registration if this queue still
// holds it, then releases the backend queue. Called by the owning context.
func (q *CommandQueue) destroy() {
	q.device.clearDefaultQueue(q)
	q.impl.Release()
	q.context.platform.registry.handles.Remove(q.handle)
	logObject("command queue destroyed", q.handle, "releaseCommandQueue")
}

// GetInfo implements the uniform info query protocol for command queues.
func (q *CommandQueue) GetInfo(name clruntime.CommandQueueInfo, value []byte, sizeRet *int) error {
	const op = "getCommandQueueInfo"

	var src []byte
	switch name {
	case clruntime.QueueContext:
		src = infoHandle(q.context.handle)
	case clruntime.QueueDevice:
		src = infoHandle(q.device.handle)
	case clruntime.QueueReferenceCount:
		src = infoUint32(q.RefCount())
	case clruntime.QueuePropertiesInfo:
		src = infoUint64(uint64(q.Properties()))
	case clruntime.QueuePropertiesArray:
		src = infoUint64s(q.propArray)
	case clruntime.QueueSize:
		src = infoUint32(q.size)
	case clruntime.QueueDeviceDefault:
		var h clruntime.Handle
		if dq := q.device.DefaultQueue(); dq != nil {
			h = dq.handle
		}
		src = infoHandle(h)
	default:
		return unknownInfoName(op, uint32(name))
	}
	return copyInfo(op, src, value, sizeRet)
}

// SetProperty enables or disables property bits. The prior bitmask is
// written through oldProperties unconditionally, even when the backend
// rejects the change; the cached bitmask is updated only on success.
func (q *CommandQueue) SetProperty(properties clruntime.QueueProperties, enable bool, oldProperties *clruntime.QueueProperties) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if oldProperties != nil {
		*oldProperties = q.properties
	}

	if err := q.impl.SetProperty(properties, enable); err != nil {
		return err
	}

	if enable {
		q.properties = q.properties.Set(properties)
	} else {
		q.properties = q.properties.Clear(properties)
	}
	return nil
}
