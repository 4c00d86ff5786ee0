package soft

import (
	"sync"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
	"github.com/wippyai/cl-runtime/errors"
)

// Name is the backend identifier used in the backend registry.
const Name = "soft"

func init() {
	backend.Register(Name, func() (backend.Platform, error) {
		return New(DefaultConfig())
	})
}

// Config describes the virtual device set a soft platform publishes.
type Config struct {
	// Devices are the capability descriptions of the virtual devices.
	// Order is the platform's device order.
	Devices []backend.DeviceInfo

	// Vendor overrides the platform vendor string.
	Vendor string
}

// DefaultConfig returns the stock two-device configuration: a virtual GPU
// with image and IL support, and a virtual CPU without IL.
func DefaultConfig() Config {
	return Config{
		Devices: []backend.DeviceInfo{
			{
				Type:                 clruntime.DeviceTypeGPU,
				Name:                 "soft-gpu",
				Vendor:               "wippy",
				Version:              "OpenCL 3.0",
				Profile:              "FULL_PROFILE",
				ImageSupport:         true,
				ILVersion:            "SPIR-V_1.2",
				BuiltInKernels:       []string{"copy_buffer", "fill_buffer"},
				MaxComputeUnits:      16,
				MaxMemAllocSize:      1 << 30,
				QueueOnDeviceMaxSize: 256 * 1024,
			},
			{
				Type:            clruntime.DeviceTypeCPU,
				Name:            "soft-cpu",
				Vendor:          "wippy",
				Version:         "OpenCL 3.0",
				Profile:         "FULL_PROFILE",
				ImageSupport:    true,
				MaxComputeUnits: 8,
				MaxMemAllocSize: 1 << 30,
			},
		},
	}
}

// Platform is the soft backend's platform implementation.
type Platform struct {
	info    backend.PlatformInfo
	devices []backend.DeviceInfo

	devOnce sync.Once
	devs    []backend.Device
}

// New creates a soft platform from the given configuration.
func New(cfg Config) (*Platform, error) {
	vendor := cfg.Vendor
	if vendor == "" {
		vendor = "wippy"
	}
	return &Platform{
		info: backend.PlatformInfo{
			Profile:    "FULL_PROFILE",
			Version:    "OpenCL 3.0 soft",
			Name:       "cl-runtime soft",
			Vendor:     vendor,
			Extensions: "cl_khr_icd",
		},
		devices: cfg.Devices,
	}, nil
}

func (p *Platform) Info() backend.PlatformInfo { return p.info }

// CreateDevices enumerates the virtual devices. The same device instances
// are handed out on every call so identity survives type resolution.
func (p *Platform) CreateDevices() ([]backend.Device, error) {
	p.devOnce.Do(func() {
		p.devs = make([]backend.Device, len(p.devices))
		for i := range p.devices {
			p.devs[i] = &device{info: p.devices[i]}
		}
	})
	return p.devs, nil
}

func (p *Platform) CreateContext(devices []backend.Device, userSync bool) (backend.Context, error) {
	return &context{}, nil
}

func (p *Platform) CreateContextForType(deviceType clruntime.DeviceType, userSync bool) (backend.Context, []backend.Device, error) {
	devs, _ := p.CreateDevices()

	var selected []backend.Device
	for i, d := range devs {
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
		return nil, nil, errors.Newf(errors.DeviceNotFound, "soft.CreateContextForType",
			"no device matches type 0x%x", uint64(deviceType))
	}
	return &context{}, selected, nil
}

type device struct {
	info backend.DeviceInfo
}

func (d *device) Info() backend.DeviceInfo { return d.info }

type context struct{}

func (c *context) CreateCommandQueue(dev backend.Device, properties clruntime.QueueProperties, size uint32) (backend.CommandQueue, error) {
	return &queue{properties: properties}, nil
}

func (c *context) CreateBuffer(flags clruntime.MemFlags, size uint64, hostPtr []byte) (backend.Memory, error) {
	if size == 0 {
		return nil, errors.New(errors.InvalidBufferSize, "soft.CreateBuffer", "size is zero")
	}
	if flags.IsSet(clruntime.MemCopyHostPtr) && hostPtr == nil {
		return nil, errors.New(errors.InvalidHostPtr, "soft.CreateBuffer", "copy-host-ptr without host pointer")
	}

	data := make([]byte, size)
	if hostPtr != nil && flags&(clruntime.MemCopyHostPtr|clruntime.MemUseHostPtr) != 0 {
		copy(data, hostPtr)
	}
	return &memory{data: data}, nil
}

func (c *context) CreateImage(flags clruntime.MemFlags, format clruntime.ImageFormat, desc clruntime.ImageDesc, hostPtr []byte) (backend.Memory, error) {
	if desc.Width == 0 {
		return nil, errors.New(errors.InvalidImageDescriptor, "soft.CreateImage", "zero width")
	}
	height, depth := desc.Height, desc.Depth
	if height == 0 {
		height = 1
	}
	if depth == 0 {
		depth = 1
	}

	// Flat RGBA allocation; the soft backend does not model pitch.
	size := desc.Width * height * depth * 4
	data := make([]byte, size)
	if hostPtr != nil && flags&(clruntime.MemCopyHostPtr|clruntime.MemUseHostPtr) != 0 {
		copy(data, hostPtr)
	}
	return &memory{data: data}, nil
}

func (c *context) CreateSampler(normalizedCoords bool, addressingMode clruntime.AddressingMode, filterMode clruntime.FilterMode) (backend.Sampler, error) {
	return &sampler{}, nil
}

func (c *context) CreateProgramWithSource(source string) (backend.Program, error) {
	if source == "" {
		return nil, errors.New(errors.InvalidValue, "soft.CreateProgramWithSource", "empty source")
	}
	return &program{source: source}, nil
}

func (c *context) CreateProgramWithIL(il []byte) (backend.Program, error) {
	if len(il) == 0 {
		return nil, errors.New(errors.InvalidValue, "soft.CreateProgramWithIL", "empty IL")
	}
	return &program{il: append([]byte(nil), il...)}, nil
}

func (c *context) CreateProgramWithBinary(devices []backend.Device, binaries [][]byte, status []errors.Code) (backend.Program, error) {
	prog := &program{binaries: make([][]byte, len(binaries))}
	var failed bool
	for i, bin := range binaries {
		if len(bin) == 0 {
			status[i] = errors.InvalidBinary
			failed = true
			continue
		}
		status[i] = errors.Success
		prog.binaries[i] = append([]byte(nil), bin...)
	}
	if failed {
		return nil, errors.New(errors.InvalidBinary, "soft.CreateProgramWithBinary", "one or more binaries rejected")
	}
	return prog, nil
}

func (c *context) CreateProgramWithBuiltInKernels(devices []backend.Device, kernelNames []string) (backend.Program, error) {
	return &program{kernels: append([]string(nil), kernelNames...)}, nil
}

func (c *context) Release() {}

type queue struct {
	properties clruntime.QueueProperties
}

func (q *queue) SetProperty(properties clruntime.QueueProperties, enable bool) error {
	if enable {
		q.properties = q.properties.Set(properties)
	} else {
		q.properties = q.properties.Clear(properties)
	}
	return nil
}

func (q *queue) Release() {}

type memory struct {
	data []byte
}

func (m *memory) Size() uint64 { return uint64(len(m.data)) }

func (m *memory) Release() { m.data = nil }

type sampler struct{}

func (s *sampler) Release() {}

type program struct {
	source   string
	il       []byte
	binaries [][]byte
	kernels  []string
}

func (p *program) BinarySizes() []uint64 {
	if p.binaries == nil {
		return nil
	}
	sizes := make([]uint64, len(p.binaries))
	for i, bin := range p.binaries {
		sizes[i] = uint64(len(bin))
	}
	return sizes
}

func (p *program) Release() {
	p.il = nil
	p.binaries = nil
}
