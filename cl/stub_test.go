package cl

import (
	"testing"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
	"github.com/wippyai/cl-runtime/errors"
)

// stubPlatform is a deterministic in-memory backend for these tests. The
// fail* knobs force specific backend failures so the object model's
// failure paths can be exercised.
type stubPlatform struct {
	info    backend.PlatformInfo
	devices []backend.Device

	failQueueCreate bool
	failSetProperty bool
	failIL          bool

	lastContext *stubContext
}

func stubGPUInfo() backend.DeviceInfo {
	return backend.DeviceInfo{
		Type:                 clruntime.DeviceTypeGPU,
		Name:                 "stub-gpu",
		Vendor:               "stub",
		Version:              "OpenCL 3.0",
		Profile:              "FULL_PROFILE",
		ImageSupport:         true,
		ILVersion:            "SPIR-V_1.2",
		BuiltInKernels:       []string{"copy_buffer", "fill_buffer"},
		MaxComputeUnits:      4,
		MaxMemAllocSize:      1 << 20,
		QueueOnDeviceMaxSize: 4096,
	}
}

func stubCPUInfo() backend.DeviceInfo {
	return backend.DeviceInfo{
		Type:            clruntime.DeviceTypeCPU,
		Name:            "stub-cpu",
		Vendor:          "stub",
		Version:         "OpenCL 3.0",
		Profile:         "FULL_PROFILE",
		MaxComputeUnits: 2,
		MaxMemAllocSize: 1 << 20,
	}
}

func newStubPlatform(infos ...backend.DeviceInfo) *stubPlatform {
	p := &stubPlatform{
		info: backend.PlatformInfo{
			Profile:    "FULL_PROFILE",
			Version:    "OpenCL 3.0 stub",
			Name:       "stub platform",
			Vendor:     "stub",
			Extensions: "cl_khr_icd",
		},
	}
	for i := range infos {
		p.devices = append(p.devices, &stubDevice{info: infos[i]})
	}
	return p
}

func (p *stubPlatform) Info() backend.PlatformInfo               { return p.info }
func (p *stubPlatform) CreateDevices() ([]backend.Device, error) { return p.devices, nil }

func (p *stubPlatform) CreateContext(devices []backend.Device, userSync bool) (backend.Context, error) {
	c := &stubContext{p: p}
	p.lastContext = c
	return c, nil
}

func (p *stubPlatform) CreateContextForType(deviceType clruntime.DeviceType, userSync bool) (backend.Context, []backend.Device, error) {
	var selected []backend.Device
	for i, d := range p.devices {
		if deviceType == clruntime.DeviceTypeDefault {
			if i == 0 {
				selected = append(selected, d)
			}
			continue
		}
		if d.Info().Type.Matches(deviceType) {
			selected = append(selected, d)
		}
	}
	if len(selected) == 0 {
		return nil, nil, errors.New(errors.DeviceNotFound, "createContextForType", "no matching stub device")
	}
	c := &stubContext{p: p}
	p.lastContext = c
	return c, selected, nil
}

type stubDevice struct{ info backend.DeviceInfo }

func (d *stubDevice) Info() backend.DeviceInfo { return d.info }

type stubContext struct {
	p        *stubPlatform
	released bool
}

func (c *stubContext) CreateCommandQueue(dev backend.Device, properties clruntime.QueueProperties, size uint32) (backend.CommandQueue, error) {
	if c.p.failQueueCreate {
		return nil, errors.New(errors.OutOfResources, "createCommandQueue", "stub queue creation disabled")
	}
	return &stubQueue{p: c.p}, nil
}

func (c *stubContext) CreateBuffer(flags clruntime.MemFlags, size uint64, hostPtr []byte) (backend.Memory, error) {
	return &stubMemory{size: size}, nil
}

func (c *stubContext) CreateImage(flags clruntime.MemFlags, format clruntime.ImageFormat, desc clruntime.ImageDesc, hostPtr []byte) (backend.Memory, error) {
	depth := desc.Depth
	if depth == 0 {
		depth = 1
	}
	height := desc.Height
	if height == 0 {
		height = 1
	}
	return &stubMemory{size: desc.Width * height * depth * 4}, nil
}

func (c *stubContext) CreateSampler(normalizedCoords bool, addressingMode clruntime.AddressingMode, filterMode clruntime.FilterMode) (backend.Sampler, error) {
	return &stubSampler{}, nil
}

func (c *stubContext) CreateProgramWithSource(source string) (backend.Program, error) {
	return &stubProgram{}, nil
}

func (c *stubContext) CreateProgramWithIL(il []byte) (backend.Program, error) {
	if c.p.failIL {
		return nil, errors.New(errors.InvalidValue, "createProgramWithIL", "stub IL loading disabled")
	}
	return &stubProgram{}, nil
}

func (c *stubContext) CreateProgramWithBinary(devices []backend.Device, binaries [][]byte, status []errors.Code) (backend.Program, error) {
	failed := false
	sizes := make([]uint64, len(binaries))
	for i, bin := range binaries {
		if len(bin) == 0 {
			status[i] = errors.InvalidBinary
			failed = true
			continue
		}
		status[i] = errors.Success
		sizes[i] = uint64(len(bin))
	}
	if failed {
		return nil, errors.New(errors.InvalidBinary, "createProgramWithBinary", "empty stub binary")
	}
	return &stubProgram{binarySizes: sizes}, nil
}

func (c *stubContext) CreateProgramWithBuiltInKernels(devices []backend.Device, kernelNames []string) (backend.Program, error) {
	return &stubProgram{}, nil
}

func (c *stubContext) Release() { c.released = true }

type stubQueue struct {
	p          *stubPlatform
	properties clruntime.QueueProperties
}

func (q *stubQueue) SetProperty(properties clruntime.QueueProperties, enable bool) error {
	if q.p.failSetProperty {
		return errors.New(errors.InvalidOperation, "setCommandQueueProperty", "stub property changes disabled")
	}
	if enable {
		q.properties = q.properties.Set(properties)
	} else {
		q.properties = q.properties.Clear(properties)
	}
	return nil
}

func (q *stubQueue) Release() {}

type stubMemory struct{ size uint64 }

func (m *stubMemory) Size() uint64 { return m.size }
func (m *stubMemory) Release()     {}

type stubSampler struct{}

func (s *stubSampler) Release() {}

type stubProgram struct{ binarySizes []uint64 }

func (p *stubProgram) BinarySizes() []uint64 { return p.binarySizes }
func (p *stubProgram) Release()              {}

// newTestRegistry builds a private registry over a two-device stub
// platform: a GPU with IL, image and on-device queue support, and a CPU
// without any of those.
func newTestRegistry(t *testing.T) (*Registry, *stubPlatform) {
	t.Helper()

	impl := newStubPlatform(stubGPUInfo(), stubCPUInfo())
	r, err := NewRegistry(impl)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if len(r.Platforms()) != 1 {
		t.Fatalf("expected 1 platform, got %d", len(r.Platforms()))
	}
	return r, impl
}

func newTestContext(t *testing.T) (*Registry, *Context) {
	t.Helper()

	r, _ := newTestRegistry(t)
	p := r.Platforms()[0]
	ctx, err := p.CreateContext(nil, p.Devices(), nil, nil, false)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	return r, ctx
}

func expectCode(t *testing.T, err error, want errors.Code) {
	t.Helper()
	if got := errors.CodeOf(err); got != want {
		t.Fatalf("error code = %v, want %v (err: %v)", got, want, err)
	}
}
