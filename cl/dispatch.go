package cl

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// The dispatch layer translates between the raw handle-and-code ABI and
// the typed object model: every entry point resolves its handles through
// the registry, calls the typed method and folds the error back into a
// signed code. Creation entry points additionally report through an
// optional errcode out parameter.

func code(err error) int32 { return int32(errors.CodeOf(err)) }

func setCode(errcode *int32, err error) {
	if errcode != nil {
		*errcode = code(err)
	}
}

func newDispatch(r *Registry) *clruntime.Dispatch {
	return &clruntime.Dispatch{
		GetPlatformIDs:  r.getPlatformIDs,
		GetPlatformInfo: r.getPlatformInfo,
		GetDeviceIDs:    r.getDeviceIDs,
		GetDeviceInfo:   r.getDeviceInfo,

		CreateContext:         r.createContext,
		CreateContextFromType: r.createContextFromType,
		RetainContext:         r.retainContext,
		ReleaseContext:        r.releaseContext,
		GetContextInfo:        r.getContextInfo,

		CreateCommandQueue:               r.createCommandQueue,
		CreateCommandQueueWithProperties: r.createCommandQueueWithProperties,
		RetainCommandQueue:               r.retainCommandQueue,
		ReleaseCommandQueue:              r.releaseCommandQueue,
		GetCommandQueueInfo:              r.getCommandQueueInfo,
		SetCommandQueueProperty:          r.setCommandQueueProperty,

		CreateBuffer:     r.createBuffer,
		CreateImage:      r.createImage,
		RetainMemObject:  r.retainMemObject,
		ReleaseMemObject: r.releaseMemObject,
		GetMemObjectInfo: r.getMemObjectInfo,

		CreateSampler:               r.createSampler,
		CreateSamplerWithProperties: r.createSamplerWithProperties,
		RetainSampler:               r.retainSampler,
		ReleaseSampler:              r.releaseSampler,
		GetSamplerInfo:              r.getSamplerInfo,

		CreateProgramWithSource:         r.createProgramWithSource,
		CreateProgramWithIL:             r.createProgramWithIL,
		CreateProgramWithBinary:         r.createProgramWithBinary,
		CreateProgramWithBuiltInKernels: r.createProgramWithBuiltInKernels,
		RetainProgram:                   r.retainProgram,
		ReleaseProgram:                  r.releaseProgram,
		GetProgramInfo:                  r.getProgramInfo,
	}
}

// Platform and device queries.

func (r *Registry) getPlatformIDs(platforms []clruntime.Handle, numPlatforms *uint32) int32 {
	if platforms == nil && numPlatforms == nil {
		return code(errors.Invalid("getPlatformIDs", "no output requested"))
	}
	if numPlatforms != nil {
		*numPlatforms = uint32(len(r.platforms))
	}
	for i := range platforms {
		if i >= len(r.platforms) {
			break
		}
		platforms[i] = r.platforms[i].handle
	}
	return code(nil)
}

func (r *Registry) getPlatformInfo(platform clruntime.Handle, name clruntime.PlatformInfo, value []byte, sizeRet *int) int32 {
	p, err := r.lookupPlatform(platform, "getPlatformInfo")
	if err != nil {
		return code(err)
	}
	return code(p.GetInfo(name, value, sizeRet))
}

func (r *Registry) getDeviceIDs(platform clruntime.Handle, deviceType clruntime.DeviceType, devices []clruntime.Handle, numDevices *uint32) int32 {
	const op = "getDeviceIDs"

	p, err := r.lookupPlatform(platform, op)
	if err != nil {
		return code(err)
	}
	if devices == nil && numDevices == nil {
		return code(errors.Invalid(op, "no output requested"))
	}

	matched := p.DevicesForType(deviceType)
	if len(matched) == 0 {
		return code(errors.New(errors.DeviceNotFound, op, "no device matches the requested type"))
	}
	if numDevices != nil {
		*numDevices = uint32(len(matched))
	}
	for i := range devices {
		if i >= len(matched) {
			break
		}
		devices[i] = matched[i].handle
	}
	return code(nil)
}

func (r *Registry) getDeviceInfo(device clruntime.Handle, name clruntime.DeviceInfo, value []byte, sizeRet *int) int32 {
	d, err := r.lookupDevice(device, "getDeviceInfo")
	if err != nil {
		return code(err)
	}
	return code(d.GetInfo(name, value, sizeRet))
}

// Context lifetime.

// contextPlatform resolves the platform a context creation call targets:
// an explicit platform property wins, otherwise the first device's
// platform, otherwise the first published platform.
func (r *Registry) contextPlatform(op string, properties []uint64, devices []*Device) (*Platform, error) {
	key, ok, err := contextPlatformKey(op, properties)
	if err != nil {
		return nil, err
	}
	if ok {
		return r.lookupPlatform(clruntime.Handle(key), op)
	}
	if len(devices) > 0 {
		return devices[0].platform, nil
	}
	if len(r.platforms) == 0 {
		return nil, errors.New(errors.InvalidPlatform, op, "no platform available")
	}
	return r.platforms[0], nil
}

func (r *Registry) createContext(properties []uint64, devices []clruntime.Handle, notify clruntime.NotifyFunc, userData any, errcode *int32) clruntime.Handle {
	const op = "createContext"

	resolved := make([]*Device, len(devices))
	for i, h := range devices {
		d, err := r.lookupDevice(h, op)
		if err != nil {
			setCode(errcode, err)
			return 0
		}
		resolved[i] = d
	}

	p, err := r.contextPlatform(op, properties, resolved)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	c, err := p.CreateContext(properties, resolved, notify, userData, false)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return c.handle
}

func (r *Registry) createContextFromType(properties []uint64, deviceType clruntime.DeviceType, notify clruntime.NotifyFunc, userData any, errcode *int32) clruntime.Handle {
	const op = "createContextFromType"

	p, err := r.contextPlatform(op, properties, nil)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	c, err := p.CreateContextFromType(properties, deviceType, notify, userData, false)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return c.handle
}

func (r *Registry) retainContext(context clruntime.Handle) int32 {
	c, err := r.lookupContext(context, "retainContext")
	if err != nil {
		return code(err)
	}
	c.Retain()
	return code(nil)
}

func (r *Registry) releaseContext(context clruntime.Handle) int32 {
	c, err := r.lookupContext(context, "releaseContext")
	if err != nil {
		return code(err)
	}
	return code(c.Release())
}

func (r *Registry) getContextInfo(context clruntime.Handle, name clruntime.ContextInfo, value []byte, sizeRet *int) int32 {
	c, err := r.lookupContext(context, "getContextInfo")
	if err != nil {
		return code(err)
	}
	return code(c.GetInfo(name, value, sizeRet))
}

// Command queue lifetime.

func (r *Registry) createCommandQueue(context, device clruntime.Handle, properties clruntime.QueueProperties, errcode *int32) clruntime.Handle {
	const op = "createCommandQueue"

	c, err := r.lookupContext(context, op)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	d, err := r.lookupDevice(device, op)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	q, err := c.CreateCommandQueue(d, properties)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return q.handle
}

func (r *Registry) createCommandQueueWithProperties(context, device clruntime.Handle, properties []uint64, errcode *int32) clruntime.Handle {
	const op = "createCommandQueueWithProperties"

	c, err := r.lookupContext(context, op)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	d, err := r.lookupDevice(device, op)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	q, err := c.CreateCommandQueueWithProperties(d, properties)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return q.handle
}

func (r *Registry) retainCommandQueue(queue clruntime.Handle) int32 {
	q, err := r.lookupCommandQueue(queue, "retainCommandQueue")
	if err != nil {
		return code(err)
	}
	q.Retain()
	return code(nil)
}

func (r *Registry) releaseCommandQueue(queue clruntime.Handle) int32 {
	q, err := r.lookupCommandQueue(queue, "releaseCommandQueue")
	if err != nil {
		return code(err)
	}
	return code(q.Release())
}

func (r *Registry) getCommandQueueInfo(queue clruntime.Handle, name clruntime.CommandQueueInfo, value []byte, sizeRet *int) int32 {
	q, err := r.lookupCommandQueue(queue, "getCommandQueueInfo")
	if err != nil {
		return code(err)
	}
	return code(q.GetInfo(name, value, sizeRet))
}

func (r *Registry) setCommandQueueProperty(queue clruntime.Handle, properties clruntime.QueueProperties, enable bool, oldProperties *clruntime.QueueProperties) int32 {
	q, err := r.lookupCommandQueue(queue, "setCommandQueueProperty")
	if err != nil {
		return code(err)
	}
	return code(q.SetProperty(properties, enable, oldProperties))
}

// Memory objects.

func (r *Registry) createBuffer(context clruntime.Handle, flags clruntime.MemFlags, size uint64, hostPtr []byte, errcode *int32) clruntime.Handle {
	c, err := r.lookupContext(context, "createBuffer")
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	m, err := c.CreateBuffer(flags, size, hostPtr)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return m.handle
}

func (r *Registry) createImage(context clruntime.Handle, flags clruntime.MemFlags, format clruntime.ImageFormat, desc clruntime.ImageDesc, hostPtr []byte, errcode *int32) clruntime.Handle {
	c, err := r.lookupContext(context, "createImage")
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	m, err := c.CreateImage(flags, format, desc, hostPtr)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return m.handle
}

func (r *Registry) retainMemObject(mem clruntime.Handle) int32 {
	m, err := r.lookupMemory(mem, "retainMemObject")
	if err != nil {
		return code(err)
	}
	m.Retain()
	return code(nil)
}

func (r *Registry) releaseMemObject(mem clruntime.Handle) int32 {
	m, err := r.lookupMemory(mem, "releaseMemObject")
	if err != nil {
		return code(err)
	}
	return code(m.Release())
}

func (r *Registry) getMemObjectInfo(mem clruntime.Handle, name clruntime.MemInfo, value []byte, sizeRet *int) int32 {
	m, err := r.lookupMemory(mem, "getMemObjectInfo")
	if err != nil {
		return code(err)
	}
	return code(m.GetInfo(name, value, sizeRet))
}

// Samplers.

func (r *Registry) createSampler(context clruntime.Handle, normalizedCoords bool, addressingMode clruntime.AddressingMode, filterMode clruntime.FilterMode, errcode *int32) clruntime.Handle {
	c, err := r.lookupContext(context, "createSampler")
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	s, err := c.CreateSampler(normalizedCoords, addressingMode, filterMode)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return s.handle
}

func (r *Registry) createSamplerWithProperties(context clruntime.Handle, properties []uint64, errcode *int32) clruntime.Handle {
	c, err := r.lookupContext(context, "createSamplerWithProperties")
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	s, err := c.CreateSamplerWithProperties(properties)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return s.handle
}

func (r *Registry) retainSampler(sampler clruntime.Handle) int32 {
	s, err := r.lookupSampler(sampler, "retainSampler")
	if err != nil {
		return code(err)
	}
	s.Retain()
	return code(nil)
}

func (r *Registry) releaseSampler(sampler clruntime.Handle) int32 {
	s, err := r.lookupSampler(sampler, "releaseSampler")
	if err != nil {
		return code(err)
	}
	return code(s.Release())
}

func (r *Registry) getSamplerInfo(sampler clruntime.Handle, name clruntime.SamplerInfo, value []byte, sizeRet *int) int32 {
	s, err := r.lookupSampler(sampler, "getSamplerInfo")
	if err != nil {
		return code(err)
	}
	return code(s.GetInfo(name, value, sizeRet))
}

// Programs.

func (r *Registry) createProgramWithSource(context clruntime.Handle, sources []string, errcode *int32) clruntime.Handle {
	c, err := r.lookupContext(context, "createProgramWithSource")
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	p, err := c.CreateProgramWithSource(sources)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return p.handle
}

func (r *Registry) createProgramWithIL(context clruntime.Handle, il []byte, errcode *int32) clruntime.Handle {
	c, err := r.lookupContext(context, "createProgramWithIL")
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	p, err := c.CreateProgramWithIL(il)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return p.handle
}

func (r *Registry) createProgramWithBinary(context clruntime.Handle, devices []clruntime.Handle, binaries [][]byte, binaryStatus []int32, errcode *int32) clruntime.Handle {
	const op = "createProgramWithBinary"

	c, err := r.lookupContext(context, op)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	resolved := make([]*Device, len(devices))
	for i, h := range devices {
		d, err := r.lookupDevice(h, op)
		if err != nil {
			setCode(errcode, err)
			return 0
		}
		resolved[i] = d
	}

	var status []errors.Code
	if binaryStatus != nil {
		status = make([]errors.Code, len(binaryStatus))
	}
	p, err := c.CreateProgramWithBinary(resolved, binaries, status)
	// Per-device statuses are only defined once the binaries were actually
	// examined; argument validation failures leave the caller's slots
	// untouched.
	if err == nil || errors.IsCode(err, errors.InvalidBinary) {
		for i := range status {
			binaryStatus[i] = int32(status[i])
		}
	}
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return p.handle
}

func (r *Registry) createProgramWithBuiltInKernels(context clruntime.Handle, devices []clruntime.Handle, kernelNames string, errcode *int32) clruntime.Handle {
	const op = "createProgramWithBuiltInKernels"

	c, err := r.lookupContext(context, op)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	resolved := make([]*Device, len(devices))
	for i, h := range devices {
		d, err := r.lookupDevice(h, op)
		if err != nil {
			setCode(errcode, err)
			return 0
		}
		resolved[i] = d
	}
	p, err := c.CreateProgramWithBuiltInKernels(resolved, kernelNames)
	if err != nil {
		setCode(errcode, err)
		return 0
	}
	setCode(errcode, nil)
	return p.handle
}

func (r *Registry) retainProgram(program clruntime.Handle) int32 {
	p, err := r.lookupProgram(program, "retainProgram")
	if err != nil {
		return code(err)
	}
	p.Retain()
	return code(nil)
}

func (r *Registry) releaseProgram(program clruntime.Handle) int32 {
	p, err := r.lookupProgram(program, "releaseProgram")
	if err != nil {
		return code(err)
	}
	return code(p.Release())
}

func (r *Registry) getProgramInfo(program clruntime.Handle, name clruntime.ProgramInfo, value []byte, sizeRet *int) int32 {
	p, err := r.lookupProgram(program, "getProgramInfo")
	if err != nil {
		return code(err)
	}
	return code(p.GetInfo(name, value, sizeRet))
}
