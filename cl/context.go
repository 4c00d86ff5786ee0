package cl

import (
	"sync"

	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
	"github.com/wippyai/cl-runtime/errors"
)

// Context owns a fixed device set and arbitrates creation and destruction
// of every child object (command queues, memory objects, samplers,
// programs) for that set. The device list is immutable after construction
// and therefore lock-free to read; the child collections are guarded by the
// context lock because two goroutines may create or release children
// concurrently.
type Context struct {
	object
	platform   *Platform
	properties []uint64
	notify     clruntime.NotifyFunc
	userData   any
	userSync   bool
	impl       backend.Context
	devices    []*Device

	mu       sync.Mutex
	queues   []*CommandQueue
	memories []*Memory
	samplers []*Sampler
	programs []*Program
}

func (c *Context) Kind() clruntime.ObjectKind { return clruntime.KindContext }

// Platform returns the platform this context was created against.
func (c *Context) Platform() *Platform { return c.platform }

// Devices returns the context's immutable device set.
func (c *Context) Devices() []*Device {
	out := make([]*Device, len(c.devices))
	copy(out, c.devices)
	return out
}

// HasDevice reports whether device is a member of the context's device set.
func (c *Context) HasDevice(device *Device) bool {
	for _, d := range c.devices {
		if d == device {
			return true
		}
	}
	return false
}

// Notify invokes the context's error notification callback, if one was
// supplied at creation.
func (c *Context) Notify(errInfo string, privateInfo []byte) {
	if c.notify != nil {
		c.notify(errInfo, privateInfo, c.userData)
	}
}

// Capability predicates over the device set.

func (c *Context) supportsImages() bool {
	for _, d := range c.devices {
		if d.info.ImageSupport {
			return true
		}
	}
	return false
}

func (c *Context) supportsIL() bool {
	for _, d := range c.devices {
		if d.info.ILVersion != "" {
			return true
		}
	}
	return false
}

func (c *Context) supportsBuiltInKernel(name string) bool {
	for _, d := range c.devices {
		if d.supportsBuiltInKernel(name) {
			return true
		}
	}
	return false
}

// maxMemAllocSize is the largest allocation any context device accepts.
func (c *Context) maxMemAllocSize() uint64 {
	var max uint64
	for _, d := range c.devices {
		if d.info.MaxMemAllocSize > max {
			max = d.info.MaxMemAllocSize
		}
	}
	return max
}

// Membership predicates over the owned collections.

func (c *Context) hasCommandQueue(h clruntime.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range c.queues {
		if q.handle == h {
			return true
		}
	}
	return false
}

func (c *Context) hasMemory(h clruntime.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.memories {
		if m.handle == h {
			return true
		}
	}
	return false
}

func (c *Context) hasSampler(h clruntime.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.samplers {
		if s.handle == h {
			return true
		}
	}
	return false
}

func (c *Context) hasProgram(h clruntime.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.programs {
		if p.handle == h {
			return true
		}
	}
	return false
}

// GetInfo implements the uniform info query protocol for contexts.
func (c *Context) GetInfo(name clruntime.ContextInfo, value []byte, sizeRet *int) error {
	const op = "getContextInfo"

	var src []byte
	switch name {
	case clruntime.ContextReferenceCount:
		src = infoUint32(c.RefCount())
	case clruntime.ContextNumDevices:
		src = infoUint32(uint32(len(c.devices)))
	case clruntime.ContextDevices:
		handles := make([]clruntime.Handle, len(c.devices))
		for i, d := range c.devices {
			handles[i] = d.handle
		}
		src = infoHandles(handles)
	case clruntime.ContextProperties:
		src = infoUint64s(c.properties)
	default:
		return unknownInfoName(op, uint32(name))
	}
	return copyInfo(op, src, value, sizeRet)
}

// Release decrements the reference count and destroys the context when it
// reaches zero. Any children still alive at that point were leaked by the
// caller: their backend resources are force-released and their handles
// invalidated during teardown.
func (c *Context) Release() error {
	if c.removeRef() {
		c.platform.destroyContext(c)
	}
	return nil
}

// destroy tears the context down: remaining children first, then the
// backend context, then the device retains. Called with the context already
// removed from its platform's list.
func (c *Context) destroy() {
	c.mu.Lock()
	queues := c.queues
	memories := c.memories
	samplers := c.samplers
	programs := c.programs
	c.queues, c.memories, c.samplers, c.programs = nil, nil, nil, nil
	c.mu.Unlock()

	leaked := len(queues) + len(memories) + len(samplers) + len(programs)
	if leaked > 0 {
		Logger().Warn("context released with live children",
			zap.Uint64("handle", uint64(c.handle)), zap.Int("children", leaked))
	}

	for _, q := range queues {
		q.destroy()
	}
	for _, m := range memories {
		m.destroy()
	}
	for _, s := range samplers {
		s.destroy()
	}
	for _, p := range programs {
		p.destroy()
	}

	c.impl.Release()

	for _, d := range c.devices {
		d.Release()
	}

	c.platform.registry.handles.Remove(c.handle)
	logObject("context destroyed", c.handle, "releaseContext")
}

// CreateCommandQueue creates a command queue with the legacy bitmask-only
// properties form.
func (c *Context) CreateCommandQueue(device *Device, properties clruntime.QueueProperties) (*CommandQueue, error) {
	return c.createQueue("createCommandQueue", device, nil, properties, 0)
}

// CreateCommandQueueWithProperties creates a command queue from a caller
// property array. The array is copied and parsed locally; the backend only
// sees the parsed-out bitmask and queue size.
func (c *Context) CreateCommandQueueWithProperties(device *Device, properties []uint64) (*CommandQueue, error) {
	const op = "createCommandQueueWithProperties"

	opts, err := parseQueueProperties(op, properties)
	if err != nil {
		return nil, err
	}
	if opts.sizeSet && !opts.properties.IsSet(clruntime.QueueOnDevice) {
		return nil, errors.New(errors.InvalidValue, op, "queue size given for host queue")
	}
	return c.createQueue(op, device, copyPropArray(properties), opts.properties, opts.size)
}

func (c *Context) createQueue(op string, device *Device, propArray []uint64, properties clruntime.QueueProperties, size uint32) (*CommandQueue, error) {
	if device == nil || !c.HasDevice(device) {
		return nil, errors.New(errors.InvalidDevice, op, "device not in context device set")
	}

	const knownBits = clruntime.QueueOutOfOrderExecMode | clruntime.QueueProfilingEnable |
		clruntime.QueueOnDevice | clruntime.QueueOnDeviceDefault
	if properties&^knownBits != 0 {
		return nil, errors.Newf(errors.InvalidValue, op, "unknown queue property bits 0x%x", uint64(properties&^knownBits))
	}
	if properties.IsSet(clruntime.QueueOnDeviceDefault) && !properties.IsSet(clruntime.QueueOnDevice) {
		return nil, errors.New(errors.InvalidValue, op, "on-device-default requires on-device")
	}
	if properties.IsSet(clruntime.QueueOnDevice) {
		if !properties.IsSet(clruntime.QueueOutOfOrderExecMode) {
			return nil, errors.New(errors.InvalidValue, op, "on-device requires out-of-order execution")
		}
		if device.info.QueueOnDeviceMaxSize == 0 {
			return nil, errors.New(errors.InvalidQueueProperties, op, "device does not support on-device queues")
		}
		if size > device.info.QueueOnDeviceMaxSize {
			return nil, errors.Newf(errors.InvalidValue, op, "queue size %d exceeds device maximum %d",
				size, device.info.QueueOnDeviceMaxSize)
		}
	}

	impl, err := c.impl.CreateCommandQueue(device.impl, properties, size)
	if err != nil {
		return nil, err
	}

	q := &CommandQueue{
		context:    c,
		device:     device,
		properties: properties,
		propArray:  propArray,
		size:       size,
		impl:       impl,
	}
	q.init(c.dispatch)
	q.handle = c.platform.registry.handles.Insert(clruntime.KindCommandQueue, q)

	c.mu.Lock()
	c.queues = append(c.queues, q)
	c.mu.Unlock()

	if properties.IsSet(clruntime.QueueOnDeviceDefault) {
		device.setDefaultQueue(q)
	}

	logObject("command queue created", q.handle, op)
	return q, nil
}

func (c *Context) destroyCommandQueue(q *CommandQueue) {
	c.mu.Lock()
	for i, have := range c.queues {
		if have == q {
			c.queues = append(c.queues[:i], c.queues[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	q.destroy()
}

func (c *Context) destroyMemory(m *Memory) {
	c.mu.Lock()
	for i, have := range c.memories {
		if have == m {
			c.memories = append(c.memories[:i], c.memories[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	m.destroy()
}

func (c *Context) destroySampler(s *Sampler) {
	c.mu.Lock()
	for i, have := range c.samplers {
		if have == s {
			c.samplers = append(c.samplers[:i], c.samplers[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	s.destroy()
}

func (c *Context) destroyProgram(p *Program) {
	c.mu.Lock()
	for i, have := range c.programs {
		if have == p {
			c.programs = append(c.programs[:i], c.programs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	p.destroy()
}
