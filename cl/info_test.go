package cl

import (
	"encoding/binary"
	"testing"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

func decodeUint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func decodeUint64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func decodeUint64s(b []byte) []uint64 {
	out := make([]uint64, len(b)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return out
}

func TestCopyInfoProbe(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5}

	var size int
	if err := copyInfo("test", src, nil, &size); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if size != 5 {
		t.Fatalf("size = %d", size)
	}
}

func TestCopyInfoShortBuffer(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5}

	buf := []byte{9, 9}
	size := -1
	err := copyInfo("test", src, buf, &size)
	expectCode(t, err, errors.InvalidValue)
	if buf[0] != 9 || buf[1] != 9 {
		t.Fatal("short buffer was written")
	}
	if size != -1 {
		t.Fatal("sizeRet written on failure")
	}
}

func TestCopyInfoExactAndOversized(t *testing.T) {
	src := []byte{1, 2, 3}

	exact := make([]byte, 3)
	var size int
	if err := copyInfo("test", src, exact, &size); err != nil {
		t.Fatalf("exact: %v", err)
	}
	if size != 3 || exact[2] != 3 {
		t.Fatalf("exact copy: size %d buf %v", size, exact)
	}

	// An oversized buffer receives exactly the source bytes; the rest is
	// untouched and sizeRet still reports the source length.
	big := []byte{7, 7, 7, 7, 7}
	if err := copyInfo("test", src, big, &size); err != nil {
		t.Fatalf("oversized: %v", err)
	}
	if size != 3 || big[3] != 7 || big[4] != 7 {
		t.Fatalf("oversized copy: size %d buf %v", size, big)
	}
}

func TestInfoEncoders(t *testing.T) {
	if got := infoString("abc"); len(got) != 4 || got[3] != 0 {
		t.Fatalf("infoString = %v", got)
	}
	if got := infoBool(true); len(got) != 4 || decodeUint32(got) != 1 {
		t.Fatalf("infoBool(true) = %v", got)
	}
	if got := infoBool(false); decodeUint32(got) != 0 {
		t.Fatalf("infoBool(false) = %v", got)
	}
	if got := infoHandle(clruntime.Handle(7)); decodeUint64(got) != 7 {
		t.Fatalf("infoHandle = %v", got)
	}
	got := infoHandles([]clruntime.Handle{3, 4})
	if len(got) != 16 || decodeUint64(got) != 3 || decodeUint64(got[8:]) != 4 {
		t.Fatalf("infoHandles = %v", got)
	}
	if got := infoUint64s(nil); len(got) != 0 {
		t.Fatalf("empty infoUint64s = %v", got)
	}
}

func TestPlatformInfo(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := r.Platforms()[0]

	var size int
	if err := p.GetInfo(clruntime.PlatformName, nil, &size); err != nil {
		t.Fatalf("name probe: %v", err)
	}
	buf := make([]byte, size)
	if err := p.GetInfo(clruntime.PlatformName, buf, nil); err != nil {
		t.Fatalf("name fetch: %v", err)
	}
	if string(buf[:size-1]) != "stub platform" {
		t.Fatalf("platform name = %q", buf)
	}

	err := p.GetInfo(clruntime.PlatformInfo(0xFFFF), nil, &size)
	expectCode(t, err, errors.InvalidValue)
}

func TestDeviceInfo(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := r.Platforms()[0]
	gpu := p.Devices()[0]

	wide := make([]byte, 8)
	if err := gpu.GetInfo(clruntime.DeviceTypeInfo, wide, nil); err != nil {
		t.Fatalf("type: %v", err)
	}
	if clruntime.DeviceType(decodeUint64(wide)) != clruntime.DeviceTypeGPU {
		t.Fatal("device type mismatch")
	}

	if err := gpu.GetInfo(clruntime.DevicePlatform, wide, nil); err != nil {
		t.Fatalf("platform: %v", err)
	}
	if clruntime.Handle(decodeUint64(wide)) != p.Handle() {
		t.Fatal("device platform handle mismatch")
	}

	var size int
	if err := gpu.GetInfo(clruntime.DeviceBuiltInKernels, nil, &size); err != nil {
		t.Fatalf("kernels probe: %v", err)
	}
	buf := make([]byte, size)
	if err := gpu.GetInfo(clruntime.DeviceBuiltInKernels, buf, nil); err != nil {
		t.Fatalf("kernels fetch: %v", err)
	}
	if string(buf[:size-1]) != "copy_buffer;fill_buffer" {
		t.Fatalf("built-in kernels = %q", buf)
	}

	small := make([]byte, 4)
	if err := gpu.GetInfo(clruntime.DeviceImageSupport, small, nil); err != nil {
		t.Fatalf("image support: %v", err)
	}
	if decodeUint32(small) != 1 {
		t.Fatal("image support should be true")
	}
}
