package clruntime

// NotifyFunc is the context error notification callback. The runtime invokes
// it with a human-readable message, optional binary diagnostic data and the
// opaque user data supplied at context creation.
type NotifyFunc func(errInfo string, privateInfo []byte, userData any)

// Dispatch is the fixed-layout table of entry points shared by every API
// object. The field order is part of the ABI and must not change; generic
// callers resolve an object to this table before knowing its concrete kind.
//
// All entry points operate on raw handles and return a signed error code
// (0 on success, negative on failure). Creation entry points return the new
// object's handle and write the code through errcode when it is non-nil.
type Dispatch struct {
	// Platform and device queries.
	GetPlatformIDs  func(platforms []Handle, numPlatforms *uint32) int32
	GetPlatformInfo func(platform Handle, name PlatformInfo, value []byte, sizeRet *int) int32
	GetDeviceIDs    func(platform Handle, deviceType DeviceType, devices []Handle, numDevices *uint32) int32
	GetDeviceInfo   func(device Handle, name DeviceInfo, value []byte, sizeRet *int) int32

	// Context lifetime.
	CreateContext         func(properties []uint64, devices []Handle, notify NotifyFunc, userData any, errcode *int32) Handle
	CreateContextFromType func(properties []uint64, deviceType DeviceType, notify NotifyFunc, userData any, errcode *int32) Handle
	RetainContext         func(context Handle) int32
	ReleaseContext        func(context Handle) int32
	GetContextInfo        func(context Handle, name ContextInfo, value []byte, sizeRet *int) int32

	// Command queue lifetime.
	CreateCommandQueue               func(context, device Handle, properties QueueProperties, errcode *int32) Handle
	CreateCommandQueueWithProperties func(context, device Handle, properties []uint64, errcode *int32) Handle
	RetainCommandQueue               func(queue Handle) int32
	ReleaseCommandQueue              func(queue Handle) int32
	GetCommandQueueInfo              func(queue Handle, name CommandQueueInfo, value []byte, sizeRet *int) int32
	SetCommandQueueProperty          func(queue Handle, properties QueueProperties, enable bool, oldProperties *QueueProperties) int32

	// Memory objects.
	CreateBuffer     func(context Handle, flags MemFlags, size uint64, hostPtr []byte, errcode *int32) Handle
	CreateImage      func(context Handle, flags MemFlags, format ImageFormat, desc ImageDesc, hostPtr []byte, errcode *int32) Handle
	RetainMemObject  func(mem Handle) int32
	ReleaseMemObject func(mem Handle) int32
	GetMemObjectInfo func(mem Handle, name MemInfo, value []byte, sizeRet *int) int32

	// Samplers.
	CreateSampler               func(context Handle, normalizedCoords bool, addressingMode AddressingMode, filterMode FilterMode, errcode *int32) Handle
	CreateSamplerWithProperties func(context Handle, properties []uint64, errcode *int32) Handle
	RetainSampler               func(sampler Handle) int32
	ReleaseSampler              func(sampler Handle) int32
	GetSamplerInfo              func(sampler Handle, name SamplerInfo, value []byte, sizeRet *int) int32

	// Programs.
	CreateProgramWithSource         func(context Handle, sources []string, errcode *int32) Handle
	CreateProgramWithIL             func(context Handle, il []byte, errcode *int32) Handle
	CreateProgramWithBinary         func(context Handle, devices []Handle, binaries [][]byte, binaryStatus []int32, errcode *int32) Handle
	CreateProgramWithBuiltInKernels func(context Handle, devices []Handle, kernelNames string, errcode *int32) Handle
	RetainProgram                   func(program Handle) int32
	ReleaseProgram                  func(program Handle) int32
	GetProgramInfo                  func(program Handle, name ProgramInfo, value []byte, sizeRet *int) int32
}
