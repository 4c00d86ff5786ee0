package cl

import (
	"testing"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

func TestCreateProgramWithSource(t *testing.T) {
	r, ctx := newTestContext(t)
	defer ctx.Release()

	p, err := ctx.CreateProgramWithSource([]string{"kernel void a() {}\n", "kernel void b() {}\n"})
	if err != nil {
		t.Fatalf("CreateProgramWithSource: %v", err)
	}
	if !r.IsProgram(p.Handle()) {
		t.Fatal("program handle not recognized")
	}

	// The fragments are concatenated in order and reported with a
	// trailing NUL.
	want := "kernel void a() {}\nkernel void b() {}\n"
	var size int
	if err := p.GetInfo(clruntime.ProgramSource, nil, &size); err != nil {
		t.Fatalf("source probe: %v", err)
	}
	if size != len(want)+1 {
		t.Fatalf("source size = %d, want %d", size, len(want)+1)
	}
	buf := make([]byte, size)
	if err := p.GetInfo(clruntime.ProgramSource, buf, nil); err != nil {
		t.Fatalf("source fetch: %v", err)
	}
	if string(buf[:len(want)]) != want || buf[len(want)] != 0 {
		t.Fatalf("source = %q", buf)
	}

	// A source program associates with the full context device set.
	small := make([]byte, 4)
	if err := p.GetInfo(clruntime.ProgramNumDevices, small, nil); err != nil {
		t.Fatalf("num devices: %v", err)
	}
	if decodeUint32(small) != 2 {
		t.Fatalf("num devices = %d", decodeUint32(small))
	}
	p.Release()

	_, err = ctx.CreateProgramWithSource(nil)
	expectCode(t, err, errors.InvalidValue)
}

func TestCreateProgramWithIL(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()

	il := []byte{0x03, 0x02, 0x23, 0x07}
	p, err := ctx.CreateProgramWithIL(il)
	if err != nil {
		t.Fatalf("CreateProgramWithIL: %v", err)
	}

	var size int
	if err := p.GetInfo(clruntime.ProgramIL, nil, &size); err != nil {
		t.Fatalf("IL probe: %v", err)
	}
	if size != len(il) {
		t.Fatalf("IL size = %d, want %d", size, len(il))
	}
	buf := make([]byte, size)
	if err := p.GetInfo(clruntime.ProgramIL, buf, nil); err != nil {
		t.Fatalf("IL fetch: %v", err)
	}
	for i := range il {
		if buf[i] != il[i] {
			t.Fatalf("IL[%d] = %#x, want %#x", i, buf[i], il[i])
		}
	}
	p.Release()

	_, err = ctx.CreateProgramWithIL(nil)
	expectCode(t, err, errors.InvalidValue)
}

func TestCreateProgramWithILRequiresSupport(t *testing.T) {
	// A CPU-only context has no IL-capable device.
	r, err := NewRegistry(newStubPlatform(stubCPUInfo()))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	p := r.Platforms()[0]
	ctx, err := p.CreateContext(nil, p.Devices(), nil, nil, false)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	defer ctx.Release()

	_, err = ctx.CreateProgramWithIL([]byte{1, 2, 3})
	expectCode(t, err, errors.InvalidOperation)
}

func TestCreateProgramWithILMixedDevices(t *testing.T) {
	// One IL-capable device in the set is enough even when the other
	// device has no IL support.
	_, ctx := newTestContext(t)
	defer ctx.Release()

	p, err := ctx.CreateProgramWithIL([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("CreateProgramWithIL: %v", err)
	}
	p.Release()
}

func TestCreateProgramWithBinary(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()
	devs := ctx.Devices()

	bins := [][]byte{{1, 2, 3}, {4, 5}}
	status := make([]errors.Code, 2)
	p, err := ctx.CreateProgramWithBinary(devs, bins, status)
	if err != nil {
		t.Fatalf("CreateProgramWithBinary: %v", err)
	}
	for i, s := range status {
		if s != errors.Success {
			t.Fatalf("status[%d] = %v", i, s)
		}
	}

	var size int
	if err := p.GetInfo(clruntime.ProgramBinarySizes, nil, &size); err != nil {
		t.Fatalf("binary sizes probe: %v", err)
	}
	if size != 2*8 {
		t.Fatalf("binary sizes size = %d", size)
	}
	buf := make([]byte, size)
	if err := p.GetInfo(clruntime.ProgramBinarySizes, buf, nil); err != nil {
		t.Fatalf("binary sizes fetch: %v", err)
	}
	sizes := decodeUint64s(buf)
	if sizes[0] != 3 || sizes[1] != 2 {
		t.Fatalf("binary sizes = %v", sizes)
	}
	p.Release()
}

func TestCreateProgramWithBinaryPerDeviceStatus(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()
	devs := ctx.Devices()

	// One good and one empty binary: the call fails overall, but the
	// status array still reports each device individually.
	status := make([]errors.Code, 2)
	_, err := ctx.CreateProgramWithBinary(devs, [][]byte{{1}, {}}, status)
	expectCode(t, err, errors.InvalidBinary)
	if status[0] != errors.Success {
		t.Fatalf("status[0] = %v", status[0])
	}
	if status[1] != errors.InvalidBinary {
		t.Fatalf("status[1] = %v", status[1])
	}
}

func TestCreateProgramWithBinaryValidation(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()
	devs := ctx.Devices()

	_, err := ctx.CreateProgramWithBinary(nil, nil, nil)
	expectCode(t, err, errors.InvalidValue)

	_, err = ctx.CreateProgramWithBinary(devs, [][]byte{{1}}, nil)
	expectCode(t, err, errors.InvalidValue)

	_, err = ctx.CreateProgramWithBinary(devs, [][]byte{{1}, {2}}, make([]errors.Code, 1))
	expectCode(t, err, errors.InvalidValue)

	// A device outside the context's set is rejected.
	r2, _ := newTestRegistry(t)
	foreign := r2.Platforms()[0].Devices()[0]
	_, err = ctx.CreateProgramWithBinary([]*Device{foreign}, [][]byte{{1}}, nil)
	expectCode(t, err, errors.InvalidDevice)
}

func TestCreateProgramWithBuiltInKernels(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()
	gpu := ctx.Devices()[0]

	p, err := ctx.CreateProgramWithBuiltInKernels([]*Device{gpu}, "copy_buffer;fill_buffer")
	if err != nil {
		t.Fatalf("CreateProgramWithBuiltInKernels: %v", err)
	}
	var size int
	if err := p.GetInfo(clruntime.ProgramKernelNames, nil, &size); err != nil {
		t.Fatalf("kernel names probe: %v", err)
	}
	buf := make([]byte, size)
	if err := p.GetInfo(clruntime.ProgramKernelNames, buf, nil); err != nil {
		t.Fatalf("kernel names fetch: %v", err)
	}
	if string(buf[:size-1]) != "copy_buffer;fill_buffer" {
		t.Fatalf("kernel names = %q", buf)
	}
	p.Release()

	_, err = ctx.CreateProgramWithBuiltInKernels([]*Device{gpu}, "copy_buffer;no_such_kernel")
	expectCode(t, err, errors.InvalidValue)

	_, err = ctx.CreateProgramWithBuiltInKernels([]*Device{gpu}, "")
	expectCode(t, err, errors.InvalidValue)

	_, err = ctx.CreateProgramWithBuiltInKernels(nil, "copy_buffer")
	expectCode(t, err, errors.InvalidValue)
}

func TestProgramDevicesInfo(t *testing.T) {
	_, ctx := newTestContext(t)
	defer ctx.Release()
	gpu := ctx.Devices()[0]

	p, err := ctx.CreateProgramWithBinary([]*Device{gpu}, [][]byte{{1, 2}}, nil)
	if err != nil {
		t.Fatalf("CreateProgramWithBinary: %v", err)
	}
	defer p.Release()

	buf := make([]byte, 8)
	if err := p.GetInfo(clruntime.ProgramDevices, buf, nil); err != nil {
		t.Fatalf("devices fetch: %v", err)
	}
	if clruntime.Handle(decodeUint64(buf)) != gpu.Handle() {
		t.Fatal("program device mismatch")
	}
}
