package cl

import (
	"encoding/binary"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// The info query protocol is identical across all object kinds: resolve the
// selector to a source byte sequence, then
//
//  1. a nil value buffer is a size probe only,
//  2. a non-nil buffer shorter than the source is InvalidValue with no copy
//     and no sizeRet write (fail closed),
//  3. on success exactly len(src) bytes are copied and sizeRet, when
//     non-nil, receives len(src) whether or not a buffer was given.
func copyInfo(op string, src []byte, value []byte, sizeRet *int) error {
	if value != nil {
		if len(value) < len(src) {
			return errors.Newf(errors.InvalidValue, op,
				"buffer of %d bytes smaller than required %d", len(value), len(src))
		}
		copy(value, src)
	}
	if sizeRet != nil {
		*sizeRet = len(src)
	}
	return nil
}

func unknownInfoName(op string, name uint32) error {
	return errors.Newf(errors.InvalidValue, op, "unknown info selector 0x%04x", name)
}

// Scalar and aggregate encoders. All binary values are little-endian;
// booleans are 4-byte values per the external ABI; strings carry a
// terminating NUL; handles are 8-byte values.

func infoUint32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func infoUint64(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

func infoBool(v bool) []byte {
	if v {
		return infoUint32(1)
	}
	return infoUint32(0)
}

func infoString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

func infoHandle(h clruntime.Handle) []byte {
	return infoUint64(uint64(h))
}

func infoHandles(hs []clruntime.Handle) []byte {
	b := make([]byte, 8*len(hs))
	for i, h := range hs {
		binary.LittleEndian.PutUint64(b[i*8:], uint64(h))
	}
	return b
}

func infoUint64s(vs []uint64) []byte {
	b := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(b[i*8:], v)
	}
	return b
}
