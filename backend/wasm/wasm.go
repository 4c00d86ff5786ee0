// Package wasm implements a backend whose programs are WebAssembly
// modules executed through wazero. Intermediate-language payloads and
// per-device binaries are core wasm binaries; creation compiles them, so
// an invalid module is rejected at program creation rather than at first
// use.
package wasm

import (
	"context"
	"runtime"
	"sync"

	"github.com/tetratelabs/wazero"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
	"github.com/wippyai/cl-runtime/errors"
)

// Name is the backend identifier used in the backend registry.
const Name = "wasm"

func init() {
	backend.Register(Name, func() (backend.Platform, error) {
		return New(context.Background(), DefaultConfig())
	})
}

// Config holds configuration for platform creation.
type Config struct {
	// MemoryLimitPages caps instance memory in 64KB pages. 0 means the
	// wazero default of 65536 pages (4GB).
	MemoryLimitPages uint32
}

// DefaultConfig returns the stock configuration: a 64MB memory cap.
func DefaultConfig() Config {
	return Config{MemoryLimitPages: 1024}
}

// Platform is the wasm backend's platform implementation. It publishes a
// single accelerator-type device backed by the host CPU.
type Platform struct {
	ctx  context.Context
	cfg  Config
	info backend.PlatformInfo

	devOnce sync.Once
	devs    []backend.Device
}

// New creates a wasm platform. ctx bounds the lifetime of every wazero
// runtime the platform's contexts create.
func New(ctx context.Context, cfg Config) (*Platform, error) {
	return &Platform{
		ctx: ctx,
		cfg: cfg,
		info: backend.PlatformInfo{
			Profile:    "EMBEDDED_PROFILE",
			Version:    "OpenCL 3.0 wasm",
			Name:       "cl-runtime wasm",
			Vendor:     "wippy",
			Extensions: "cl_khr_icd cl_khr_il_program",
		},
	}, nil
}

func (p *Platform) Info() backend.PlatformInfo { return p.info }

func (p *Platform) CreateDevices() ([]backend.Device, error) {
	p.devOnce.Do(func() {
		memLimit := uint64(p.cfg.MemoryLimitPages) * 64 * 1024
		if memLimit == 0 {
			memLimit = 4 << 30
		}
		p.devs = []backend.Device{&device{info: backend.DeviceInfo{
			Type:            clruntime.DeviceTypeAccelerator,
			Name:            "wazero",
			Vendor:          "wippy",
			Version:         "OpenCL 3.0",
			Profile:         "EMBEDDED_PROFILE",
			ILVersion:       "wasm-core-2",
			MaxComputeUnits: uint32(runtime.NumCPU()),
			MaxMemAllocSize: memLimit,
			Extensions:      "cl_khr_il_program",
		}}}
	})
	return p.devs, nil
}

func (p *Platform) CreateContext(devices []backend.Device, userSync bool) (backend.Context, error) {
	return p.newContext(), nil
}

func (p *Platform) CreateContextForType(deviceType clruntime.DeviceType, userSync bool) (backend.Context, []backend.Device, error) {
	devs, _ := p.CreateDevices()

	accel := devs[0]
	if deviceType != clruntime.DeviceTypeDefault && !accel.Info().Type.Matches(deviceType) {
		return nil, nil, errors.Newf(errors.DeviceNotFound, "wasm.CreateContextForType",
			"no device matches type 0x%x", uint64(deviceType))
	}
	return p.newContext(), []backend.Device{accel}, nil
}

func (p *Platform) newContext() *wasmContext {
	cfg := wazero.NewRuntimeConfig()
	if p.cfg.MemoryLimitPages > 0 {
		cfg = cfg.WithMemoryLimitPages(p.cfg.MemoryLimitPages)
	}
	return &wasmContext{
		ctx:     p.ctx,
		runtime: wazero.NewRuntimeWithConfig(p.ctx, cfg),
	}
}

type device struct {
	info backend.DeviceInfo
}

func (d *device) Info() backend.DeviceInfo { return d.info }

// wasmContext owns one wazero runtime. Compiled modules belong to the
// runtime and are reclaimed when it closes.
type wasmContext struct {
	ctx     context.Context
	runtime wazero.Runtime
}

func (c *wasmContext) CreateCommandQueue(dev backend.Device, properties clruntime.QueueProperties, size uint32) (backend.CommandQueue, error) {
	return &queue{properties: properties}, nil
}

func (c *wasmContext) CreateBuffer(flags clruntime.MemFlags, size uint64, hostPtr []byte) (backend.Memory, error) {
	if size == 0 {
		return nil, errors.New(errors.InvalidBufferSize, "wasm.CreateBuffer", "size is zero")
	}
	data := make([]byte, size)
	if hostPtr != nil && flags&(clruntime.MemCopyHostPtr|clruntime.MemUseHostPtr) != 0 {
		copy(data, hostPtr)
	}
	return &memory{data: data}, nil
}

func (c *wasmContext) CreateImage(flags clruntime.MemFlags, format clruntime.ImageFormat, desc clruntime.ImageDesc, hostPtr []byte) (backend.Memory, error) {
	return nil, errors.New(errors.InvalidOperation, "wasm.CreateImage", "wasm device has no image support")
}

func (c *wasmContext) CreateSampler(normalizedCoords bool, addressingMode clruntime.AddressingMode, filterMode clruntime.FilterMode) (backend.Sampler, error) {
	return nil, errors.New(errors.InvalidOperation, "wasm.CreateSampler", "wasm device has no image support")
}

func (c *wasmContext) CreateProgramWithSource(source string) (backend.Program, error) {
	// No text-format compiler is wired in; sources can be stored but not
	// built, which the API reports at build time.
	if source == "" {
		return nil, errors.New(errors.InvalidValue, "wasm.CreateProgramWithSource", "empty source")
	}
	return &program{}, nil
}

func (c *wasmContext) CreateProgramWithIL(il []byte) (backend.Program, error) {
	compiled, err := c.runtime.CompileModule(c.ctx, il)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidValue, "wasm.CreateProgramWithIL", err)
	}
	return &program{ctx: c.ctx, compiled: []wazero.CompiledModule{compiled}}, nil
}

func (c *wasmContext) CreateProgramWithBinary(devices []backend.Device, binaries [][]byte, status []errors.Code) (backend.Program, error) {
	prog := &program{ctx: c.ctx, binaries: make([][]byte, len(binaries))}
	var failed bool
	for i, bin := range binaries {
		compiled, err := c.runtime.CompileModule(c.ctx, bin)
		if err != nil {
			status[i] = errors.InvalidBinary
			failed = true
			continue
		}
		status[i] = errors.Success
		prog.binaries[i] = append([]byte(nil), bin...)
		prog.compiled = append(prog.compiled, compiled)
	}
	if failed {
		prog.Release()
		return nil, errors.New(errors.InvalidBinary, "wasm.CreateProgramWithBinary", "one or more modules failed to compile")
	}
	return prog, nil
}

func (c *wasmContext) CreateProgramWithBuiltInKernels(devices []backend.Device, kernelNames []string) (backend.Program, error) {
	return nil, errors.New(errors.InvalidValue, "wasm.CreateProgramWithBuiltInKernels", "wasm device has no built-in kernels")
}

func (c *wasmContext) Release() {
	_ = c.runtime.Close(c.ctx)
}

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

type program struct {
	ctx      context.Context
	binaries [][]byte
	compiled []wazero.CompiledModule
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
	for _, c := range p.compiled {
		if c != nil {
			_ = c.Close(p.ctx)
		}
	}
	p.compiled = nil
	p.binaries = nil
}
