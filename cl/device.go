package cl

import (
	"strings"
	"sync"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
)

// Device describes one compute device. Devices are owned by exactly one
// platform and live for the process lifetime; Retain and Release adjust the
// count for bookkeeping but a root device is never destroyed.
//
// The default command queue slot is the only mutable shared state: it is
// set by queue construction and cleared by queue destruction, both under
// the device lock, so a concurrent info query never observes a torn value.
type Device struct {
	object
	platform *Platform
	impl     backend.Device
	info     backend.DeviceInfo

	mu           sync.Mutex
	defaultQueue *CommandQueue
}

func newDevice(p *Platform, impl backend.Device) *Device {
	d := &Device{platform: p, impl: impl, info: impl.Info()}
	d.init(p.dispatch)
	d.handle = p.registry.handles.Insert(clruntime.KindDevice, d)
	return d
}

func (d *Device) Kind() clruntime.ObjectKind { return clruntime.KindDevice }

// Release decrements the bookkeeping count but never destroys a root
// device. The count never drops below one, even under concurrent
// releases.
func (d *Device) Release() error {
	for {
		n := d.refs.Load()
		if n <= 1 {
			return nil
		}
		if d.refs.CompareAndSwap(n, n-1) {
			return nil
		}
	}
}

// Platform returns the owning platform.
func (d *Device) Platform() *Platform { return d.platform }

// Info returns the cached capability description.
func (d *Device) Info() backend.DeviceInfo { return d.info }

// DefaultQueue returns the device's registered default command queue, or
// nil when none is registered.
func (d *Device) DefaultQueue() *CommandQueue {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.defaultQueue
}

func (d *Device) setDefaultQueue(q *CommandQueue) {
	d.mu.Lock()
	d.defaultQueue = q
	d.mu.Unlock()
}

// clearDefaultQueue clears the registration only if q is still the
// registered default.
func (d *Device) clearDefaultQueue(q *CommandQueue) {
	d.mu.Lock()
	if d.defaultQueue == q {
		d.defaultQueue = nil
	}
	d.mu.Unlock()
}

func (d *Device) supportsBuiltInKernel(name string) bool {
	for _, k := range d.info.BuiltInKernels {
		if k == name {
			return true
		}
	}
	return false
}

// GetInfo implements the uniform info query protocol for devices.
func (d *Device) GetInfo(name clruntime.DeviceInfo, value []byte, sizeRet *int) error {
	const op = "getDeviceInfo"

	var src []byte
	switch name {
	case clruntime.DeviceTypeInfo:
		src = infoUint64(uint64(d.info.Type))
	case clruntime.DeviceMaxComputeUnits:
		src = infoUint32(d.info.MaxComputeUnits)
	case clruntime.DeviceMaxMemAllocSize:
		src = infoUint64(d.info.MaxMemAllocSize)
	case clruntime.DeviceImageSupport:
		src = infoBool(d.info.ImageSupport)
	case clruntime.DeviceName:
		src = infoString(d.info.Name)
	case clruntime.DeviceVendor:
		src = infoString(d.info.Vendor)
	case clruntime.DeviceVersion:
		src = infoString(d.info.Version)
	case clruntime.DeviceProfile:
		src = infoString(d.info.Profile)
	case clruntime.DeviceExtensions:
		src = infoString(d.info.Extensions)
	case clruntime.DevicePlatform:
		src = infoHandle(d.platform.handle)
	case clruntime.DeviceBuiltInKernels:
		src = infoString(strings.Join(d.info.BuiltInKernels, ";"))
	case clruntime.DeviceQueueOnDeviceMaxSize:
		src = infoUint32(d.info.QueueOnDeviceMaxSize)
	case clruntime.DeviceILVersion:
		src = infoString(d.info.ILVersion)
	default:
		return unknownInfoName(op, uint32(name))
	}
	return copyInfo(op, src, value, sizeRet)
}
