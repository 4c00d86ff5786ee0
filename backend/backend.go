package backend

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// PlatformInfo describes a backend platform. The strings are returned
// verbatim by platform info queries.
type PlatformInfo struct {
	Profile    string
	Version    string
	Name       string
	Vendor     string
	Extensions string
}

// DeviceInfo describes the capabilities of one backend device. The object
// model caches it at enumeration time; capability checks (images, IL,
// built-in kernels) read the cached copy.
type DeviceInfo struct {
	Type    clruntime.DeviceType
	Name    string
	Vendor  string
	Version string
	Profile string

	// ImageSupport reports whether the device can create image objects.
	ImageSupport bool

	// ILVersion is the supported intermediate-language version string.
	// Empty means the device does not accept IL programs.
	ILVersion string

	// BuiltInKernels lists the kernels the device ships precompiled.
	BuiltInKernels []string

	MaxComputeUnits uint32
	MaxMemAllocSize uint64

	// QueueOnDeviceMaxSize is the maximum on-device queue size in bytes.
	// Zero means the device does not support on-device queues.
	QueueOnDeviceMaxSize uint32

	Extensions string
}

// Platform is the per-backend root implementation object.
type Platform interface {
	// Info returns the platform description.
	Info() PlatformInfo

	// CreateDevices enumerates the backend's devices. Called once when the
	// platform is published; the returned order is the platform's device
	// order for the process lifetime.
	CreateDevices() ([]Device, error)

	// CreateContext materializes a context over an explicit device subset.
	CreateContext(devices []Device, userSync bool) (Context, error)

	// CreateContextForType materializes a context over all devices matching
	// the requested category, returning the resolved device set. An empty
	// resolution is a DeviceNotFound error.
	CreateContextForType(deviceType clruntime.DeviceType, userSync bool) (Context, []Device, error)
}

// Device is the backend identity of one compute device.
type Device interface {
	// Info returns the device capability description.
	Info() DeviceInfo
}

// Context is the backend implementation of one API context. All factory
// methods are synchronous from the object model's point of view.
type Context interface {
	CreateCommandQueue(device Device, properties clruntime.QueueProperties, size uint32) (CommandQueue, error)

	CreateBuffer(flags clruntime.MemFlags, size uint64, hostPtr []byte) (Memory, error)
	CreateImage(flags clruntime.MemFlags, format clruntime.ImageFormat, desc clruntime.ImageDesc, hostPtr []byte) (Memory, error)

	CreateSampler(normalizedCoords bool, addressingMode clruntime.AddressingMode, filterMode clruntime.FilterMode) (Sampler, error)

	CreateProgramWithSource(source string) (Program, error)
	CreateProgramWithIL(il []byte) (Program, error)

	// CreateProgramWithBinary loads one binary per device. status has the
	// same length and order as devices and is populated per device even
	// when the overall call fails.
	CreateProgramWithBinary(devices []Device, binaries [][]byte, status []errors.Code) (Program, error)

	CreateProgramWithBuiltInKernels(devices []Device, kernelNames []string) (Program, error)

	// Release frees the backend context. Called exactly once, after all
	// child implementations have been released.
	Release()
}

// CommandQueue is the backend implementation of one command queue.
type CommandQueue interface {
	// SetProperty enables or disables property bits on the live queue.
	SetProperty(properties clruntime.QueueProperties, enable bool) error

	Release()
}

// Memory is the backend implementation of one memory object.
type Memory interface {
	// Size returns the allocation size in bytes.
	Size() uint64

	Release()
}

// Sampler is the backend implementation of one sampler.
type Sampler interface {
	Release()
}

// Program is the backend implementation of one program object.
type Program interface {
	// BinarySizes returns the per-device binary sizes, in the program's
	// device order. Programs without binaries return nil.
	BinarySizes() []uint64

	Release()
}
