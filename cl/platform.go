package cl

import (
	"sync"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
	"github.com/wippyai/cl-runtime/errors"
)

// Platform is the root API object of one backend. It owns the backend's
// device list and the set of live contexts created against it. Platforms
// are created at registry initialization and live for the process lifetime;
// they are not reference-counted.
type Platform struct {
	object
	registry *Registry
	impl     backend.Platform
	info     backend.PlatformInfo
	devices  []*Device

	mu       sync.Mutex
	contexts []*Context
}

func newPlatform(r *Registry, impl backend.Platform) (*Platform, error) {
	p := &Platform{registry: r, impl: impl, info: impl.Info()}
	p.init(r.dispatch)

	devs, err := impl.CreateDevices()
	if err != nil {
		return nil, err
	}

	p.handle = r.handles.Insert(clruntime.KindPlatform, p)
	for _, d := range devs {
		p.devices = append(p.devices, newDevice(p, d))
	}
	return p, nil
}

func (p *Platform) Kind() clruntime.ObjectKind { return clruntime.KindPlatform }

// Retain is a no-op: platforms are not reference-counted.
func (p *Platform) Retain() {}

// Release is a no-op: platforms live until process teardown.
func (p *Platform) Release() error { return nil }

// Info returns the backend's platform description.
func (p *Platform) Info() backend.PlatformInfo { return p.info }

// Devices returns the platform's device list in enumeration order.
func (p *Platform) Devices() []*Device {
	out := make([]*Device, len(p.devices))
	copy(out, p.devices)
	return out
}

// DevicesForType returns the platform devices selected by a device type
// query. DeviceTypeDefault selects the first device.
func (p *Platform) DevicesForType(t clruntime.DeviceType) []*Device {
	var out []*Device
	for i, d := range p.devices {
		if t == clruntime.DeviceTypeDefault {
			if i == 0 {
				out = append(out, d)
			}
			continue
		}
		if d.info.Type.Matches(t) {
			out = append(out, d)
		}
	}
	return out
}

// deviceFor maps a backend device identity back to the platform's API
// device object.
func (p *Platform) deviceFor(impl backend.Device) (*Device, bool) {
	for _, d := range p.devices {
		if d.impl == impl {
			return d, true
		}
	}
	return nil, false
}

// GetInfo implements the uniform info query protocol for platforms.
func (p *Platform) GetInfo(name clruntime.PlatformInfo, value []byte, sizeRet *int) error {
	const op = "getPlatformInfo"

	var src []byte
	switch name {
	case clruntime.PlatformProfile:
		src = infoString(p.info.Profile)
	case clruntime.PlatformVersion:
		src = infoString(p.info.Version)
	case clruntime.PlatformName:
		src = infoString(p.info.Name)
	case clruntime.PlatformVendor:
		src = infoString(p.info.Vendor)
	case clruntime.PlatformExtensions:
		src = infoString(p.info.Extensions)
	default:
		return unknownInfoName(op, uint32(name))
	}
	return copyInfo(op, src, value, sizeRet)
}

// Membership predicates backing the registry's platform-wide validity
// scans.

func (p *Platform) hasDevice(h clruntime.Handle) bool {
	for _, d := range p.devices {
		if d.handle == h {
			return true
		}
	}
	return false
}

func (p *Platform) hasContext(h clruntime.Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.contexts {
		if c.handle == h {
			return true
		}
	}
	return false
}

func (p *Platform) hasCommandQueue(h clruntime.Handle) bool {
	p.mu.Lock()
	contexts := make([]*Context, len(p.contexts))
	copy(contexts, p.contexts)
	p.mu.Unlock()

	for _, c := range contexts {
		if c.hasCommandQueue(h) {
			return true
		}
	}
	return false
}

func (p *Platform) hasMemory(h clruntime.Handle) bool {
	p.mu.Lock()
	contexts := make([]*Context, len(p.contexts))
	copy(contexts, p.contexts)
	p.mu.Unlock()

	for _, c := range contexts {
		if c.hasMemory(h) {
			return true
		}
	}
	return false
}

func (p *Platform) hasSampler(h clruntime.Handle) bool {
	p.mu.Lock()
	contexts := make([]*Context, len(p.contexts))
	copy(contexts, p.contexts)
	p.mu.Unlock()

	for _, c := range contexts {
		if c.hasSampler(h) {
			return true
		}
	}
	return false
}

func (p *Platform) hasProgram(h clruntime.Handle) bool {
	p.mu.Lock()
	contexts := make([]*Context, len(p.contexts))
	copy(contexts, p.contexts)
	p.mu.Unlock()

	for _, c := range contexts {
		if c.hasProgram(h) {
			return true
		}
	}
	return false
}

// CreateContext creates a context over an explicit device subset. The
// device list must be a non-empty subset of this platform's devices.
// Devices are retained for the context's lifetime.
func (p *Platform) CreateContext(properties []uint64, devices []*Device, notify clruntime.NotifyFunc, userData any, userSync bool) (*Context, error) {
	const op = "createContext"

	if len(devices) == 0 {
		return nil, errors.New(errors.InvalidValue, op, "empty device list")
	}
	impls := make([]backend.Device, len(devices))
	for i, d := range devices {
		if d == nil || d.platform != p {
			return nil, errors.New(errors.InvalidDevice, op, "device does not belong to platform")
		}
		impls[i] = d.impl
	}

	impl, err := p.impl.CreateContext(impls, userSync)
	if err != nil {
		return nil, err
	}
	return p.adoptContext(op, properties, devices, notify, userData, userSync, impl), nil
}

// CreateContextFromType creates a context over every platform device
// matching the requested category, resolved by the backend. An empty
// resolution fails with DeviceNotFound and yields no live context.
func (p *Platform) CreateContextFromType(properties []uint64, deviceType clruntime.DeviceType, notify clruntime.NotifyFunc, userData any, userSync bool) (*Context, error) {
	const op = "createContextFromType"

	impl, implDevs, err := p.impl.CreateContextForType(deviceType, userSync)
	if err != nil {
		return nil, err
	}
	if len(implDevs) == 0 {
		impl.Release()
		return nil, errors.New(errors.DeviceNotFound, op, "device type resolved to zero devices")
	}

	devices := make([]*Device, 0, len(implDevs))
	for _, di := range implDevs {
		d, ok := p.deviceFor(di)
		if !ok {
			impl.Release()
			return nil, errors.New(errors.InvalidDevice, op, "backend resolved unknown device")
		}
		devices = append(devices, d)
	}
	return p.adoptContext(op, properties, devices, notify, userData, userSync, impl), nil
}

func (p *Platform) adoptContext(op string, properties []uint64, devices []*Device, notify clruntime.NotifyFunc, userData any, userSync bool, impl backend.Context) *Context {
	c := &Context{
		platform:   p,
		properties: copyPropArray(properties),
		notify:     notify,
		userData:   userData,
		userSync:   userSync,
		impl:       impl,
		devices:    append([]*Device(nil), devices...),
	}
	c.init(p.dispatch)

	for _, d := range devices {
		d.Retain()
	}

	c.handle = p.registry.handles.Insert(clruntime.KindContext, c)

	p.mu.Lock()
	p.contexts = append(p.contexts, c)
	p.mu.Unlock()

	logObject("context created", c.handle, op)
	return c
}

func (p *Platform) destroyContext(c *Context) {
	p.mu.Lock()
	for i, have := range p.contexts {
		if have == c {
			p.contexts = append(p.contexts[:i], p.contexts[i+1:]...)
			break
		}
	}
	p.mu.Unlock()

	c.destroy()
}
