package cl

import (
	"strings"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
	"github.com/wippyai/cl-runtime/errors"
)

// Program is a compiled or loadable kernel container owned by exactly one
// context. Depending on the constructor it carries concatenated source
// text, an intermediate-language payload, per-device binaries, or a set of
// built-in kernel names. The association list is immutable after
// construction.
type Program struct {
	object
	context *Context

	// devices is the association list: the devices this program can be
	// built for. Defaults to the full context device set.
	devices []*Device

	source      string
	il          []byte
	kernelNames []string
	impl        backend.Program
}

func (p *Program) Kind() clruntime.ObjectKind { return clruntime.KindProgram }

// Context returns the owning context.
func (p *Program) Context() *Context { return p.context }

// Devices returns the program's device association list.
func (p *Program) Devices() []*Device {
	out := make([]*Device, len(p.devices))
	copy(out, p.devices)
	return out
}

// Release decrements the reference count; on reaching zero the owning
// context removes the program from its list and performs destruction.
func (p *Program) Release() error {
	if p.removeRef() {
		p.context.destroyProgram(p)
	}
	return nil
}

func (p *Program) destroy() {
	p.impl.Release()
	p.context.platform.registry.handles.Remove(p.handle)
	logObject("program destroyed", p.handle, "releaseProgram")
}

// GetInfo implements the uniform info query protocol for programs.
func (p *Program) GetInfo(name clruntime.ProgramInfo, value []byte, sizeRet *int) error {
	const op = "getProgramInfo"

	var src []byte
	switch name {
	case clruntime.ProgramReferenceCount:
		src = infoUint32(p.RefCount())
	case clruntime.ProgramContext:
		src = infoHandle(p.context.handle)
	case clruntime.ProgramNumDevices:
		src = infoUint32(uint32(len(p.devices)))
	case clruntime.ProgramDevices:
		handles := make([]clruntime.Handle, len(p.devices))
		for i, d := range p.devices {
			handles[i] = d.handle
		}
		src = infoHandles(handles)
	case clruntime.ProgramSource:
		src = infoString(p.source)
	case clruntime.ProgramIL:
		src = append([]byte(nil), p.il...)
	case clruntime.ProgramBinarySizes:
		src = infoUint64s(p.impl.BinarySizes())
	case clruntime.ProgramKernelNames:
		src = infoString(strings.Join(p.kernelNames, ";"))
	default:
		return unknownInfoName(op, uint32(name))
	}
	return copyInfo(op, src, value, sizeRet)
}

// CreateProgramWithSource creates a program from source fragments, which
// are concatenated in order into a single source string.
func (c *Context) CreateProgramWithSource(sources []string) (*Program, error) {
	const op = "createProgramWithSource"

	if len(sources) == 0 {
		return nil, errors.New(errors.InvalidValue, op, "empty source list")
	}
	source := strings.Join(sources, "")

	impl, err := c.impl.CreateProgramWithSource(source)
	if err != nil {
		return nil, err
	}
	return c.adoptProgram(op, &Program{
		context: c,
		devices: c.Devices(),
		source:  source,
		impl:    impl,
	}), nil
}

// CreateProgramWithIL creates a program from an intermediate-language
// payload. At least one context device must advertise IL support.
func (c *Context) CreateProgramWithIL(il []byte) (*Program, error) {
	const op = "createProgramWithIL"

	if len(il) == 0 {
		return nil, errors.New(errors.InvalidValue, op, "empty IL payload")
	}
	if !c.supportsIL() {
		return nil, errors.New(errors.InvalidOperation, op, "no context device supports IL programs")
	}

	impl, err := c.impl.CreateProgramWithIL(il)
	if err != nil {
		return nil, err
	}
	return c.adoptProgram(op, &Program{
		context: c,
		devices: c.Devices(),
		il:      append([]byte(nil), il...),
		impl:    impl,
	}), nil
}

// CreateProgramWithBinary loads one binary per named device. binaryStatus,
// when non-nil, must have the same length as devices and receives a
// per-device load result even when the overall call fails.
func (c *Context) CreateProgramWithBinary(devices []*Device, binaries [][]byte, binaryStatus []errors.Code) (*Program, error) {
	const op = "createProgramWithBinary"

	if len(devices) == 0 {
		return nil, errors.New(errors.InvalidValue, op, "empty device list")
	}
	if len(binaries) != len(devices) {
		return nil, errors.Newf(errors.InvalidValue, op, "%d binaries for %d devices", len(binaries), len(devices))
	}
	if binaryStatus != nil && len(binaryStatus) != len(devices) {
		return nil, errors.Newf(errors.InvalidValue, op, "%d status slots for %d devices", len(binaryStatus), len(devices))
	}

	impls := make([]backend.Device, len(devices))
	for i, d := range devices {
		if d == nil || !c.HasDevice(d) {
			return nil, errors.New(errors.InvalidDevice, op, "device is not associated with the context")
		}
		impls[i] = d.impl
	}

	status := binaryStatus
	if status == nil {
		status = make([]errors.Code, len(devices))
	}
	impl, err := c.impl.CreateProgramWithBinary(impls, binaries, status)
	if err != nil {
		return nil, err
	}
	return c.adoptProgram(op, &Program{
		context: c,
		devices: append([]*Device(nil), devices...),
		impl:    impl,
	}), nil
}

// CreateProgramWithBuiltInKernels creates a program exposing the named
// built-in kernels. kernelNames is a semicolon-separated list, and every
// name must be supported by at least one of the named devices.
func (c *Context) CreateProgramWithBuiltInKernels(devices []*Device, kernelNames string) (*Program, error) {
	const op = "createProgramWithBuiltInKernels"

	if len(devices) == 0 {
		return nil, errors.New(errors.InvalidValue, op, "empty device list")
	}
	if kernelNames == "" {
		return nil, errors.New(errors.InvalidValue, op, "empty kernel name list")
	}

	impls := make([]backend.Device, len(devices))
	for i, d := range devices {
		if d == nil || !c.HasDevice(d) {
			return nil, errors.New(errors.InvalidDevice, op, "device is not associated with the context")
		}
		impls[i] = d.impl
	}

	names := strings.Split(kernelNames, ";")
	for _, name := range names {
		supported := false
		for _, d := range devices {
			if d.supportsBuiltInKernel(name) {
				supported = true
				break
			}
		}
		if !supported {
			return nil, errors.Newf(errors.InvalidValue, op, "built-in kernel %q not supported by any named device", name)
		}
	}

	impl, err := c.impl.CreateProgramWithBuiltInKernels(impls, names)
	if err != nil {
		return nil, err
	}
	return c.adoptProgram(op, &Program{
		context:     c,
		devices:     append([]*Device(nil), devices...),
		kernelNames: names,
		impl:        impl,
	}), nil
}

func (c *Context) adoptProgram(op string, p *Program) *Program {
	p.init(c.dispatch)
	p.handle = c.platform.registry.handles.Insert(clruntime.KindProgram, p)

	c.mu.Lock()
	c.programs = append(c.programs, p)
	c.mu.Unlock()

	logObject("program created", p.handle, op)
	return p
}
