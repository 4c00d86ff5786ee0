package cl

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
	"github.com/wippyai/cl-runtime/errors"
)

// Memory is a buffer or image owned by exactly one context.
type Memory struct {
	object
	context *Context
	memType clruntime.MemObjectType
	flags   clruntime.MemFlags
	size    uint64
	impl    backend.Memory
}

func (m *Memory) Kind() clruntime.ObjectKind { return clruntime.KindMemory }

// Context returns the owning context.
func (m *Memory) Context() *Context { return m.context }

// Size returns the allocation size in bytes.
func (m *Memory) Size() uint64 { return m.size }

// Release decrements the reference count; on reaching zero the owning
// context removes the object from its list and performs destruction.
func (m *Memory) Release() error {
	if m.removeRef() {
		m.context.destroyMemory(m)
	}
	return nil
}

func (m *Memory) destroy() {
	m.impl.Release()
	m.context.platform.registry.handles.Remove(m.handle)
	logObject("memory destroyed", m.handle, "releaseMemObject")
}

// GetInfo implements the uniform info query protocol for memory objects.
func (m *Memory) GetInfo(name clruntime.MemInfo, value []byte, sizeRet *int) error {
	const op = "getMemObjectInfo"

	var src []byte
	switch name {
	case clruntime.MemTypeInfo:
		src = infoUint32(uint32(m.memType))
	case clruntime.MemFlagsInfo:
		src = infoUint64(uint64(m.flags))
	case clruntime.MemSize:
		src = infoUint64(m.size)
	case clruntime.MemMapCount:
		src = infoUint32(0)
	case clruntime.MemReferenceCount:
		src = infoUint32(m.RefCount())
	case clruntime.MemContext:
		src = infoHandle(m.context.handle)
	case clruntime.MemOffset:
		src = infoUint64(0)
	default:
		return unknownInfoName(op, uint32(name))
	}
	return copyInfo(op, src, value, sizeRet)
}

// validateMemFlags rejects contradictory flag combinations before the
// backend is involved.
func validateMemFlags(op string, flags clruntime.MemFlags, hostPtr []byte) error {
	access := 0
	for _, f := range []clruntime.MemFlags{clruntime.MemReadWrite, clruntime.MemWriteOnly, clruntime.MemReadOnly} {
		if flags.IsSet(f) {
			access++
		}
	}
	if access > 1 {
		return errors.New(errors.InvalidValue, op, "conflicting access flags")
	}
	if flags.IsSet(clruntime.MemUseHostPtr) && flags.IsSet(clruntime.MemCopyHostPtr) {
		return errors.New(errors.InvalidValue, op, "use-host-ptr excludes copy-host-ptr")
	}
	if flags.IsSet(clruntime.MemUseHostPtr) && flags.IsSet(clruntime.MemAllocHostPtr) {
		return errors.New(errors.InvalidValue, op, "use-host-ptr excludes alloc-host-ptr")
	}

	wantsHost := flags&(clruntime.MemUseHostPtr|clruntime.MemCopyHostPtr) != 0
	if wantsHost && hostPtr == nil {
		return errors.New(errors.InvalidHostPtr, op, "flags require a host pointer")
	}
	if !wantsHost && hostPtr != nil {
		return errors.New(errors.InvalidHostPtr, op, "host pointer given without use or copy flag")
	}
	return nil
}

// CreateBuffer creates a buffer object.
func (c *Context) CreateBuffer(flags clruntime.MemFlags, size uint64, hostPtr []byte) (*Memory, error) {
	const op = "createBuffer"

	if err := validateMemFlags(op, flags, hostPtr); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, errors.New(errors.InvalidBufferSize, op, "size is zero")
	}
	if max := c.maxMemAllocSize(); max > 0 && size > max {
		return nil, errors.Newf(errors.InvalidBufferSize, op, "size %d exceeds device maximum %d", size, max)
	}
	if hostPtr != nil && uint64(len(hostPtr)) < size {
		return nil, errors.New(errors.InvalidHostPtr, op, "host pointer smaller than size")
	}

	impl, err := c.impl.CreateBuffer(flags, size, hostPtr)
	if err != nil {
		return nil, err
	}
	return c.adoptMemory(op, clruntime.MemObjectBuffer, flags, impl), nil
}

// CreateImage creates an image from a full descriptor. At least one context
// device must report image support.
func (c *Context) CreateImage(flags clruntime.MemFlags, format clruntime.ImageFormat, desc clruntime.ImageDesc, hostPtr []byte) (*Memory, error) {
	return c.createImage("createImage", flags, format, desc, hostPtr)
}

// CreateImage2D is the legacy two-dimensional image constructor.
func (c *Context) CreateImage2D(flags clruntime.MemFlags, format clruntime.ImageFormat, width, height, rowPitch uint64, hostPtr []byte) (*Memory, error) {
	desc := clruntime.ImageDesc{
		Type:     clruntime.MemObjectImage2D,
		Width:    width,
		Height:   height,
		RowPitch: rowPitch,
	}
	return c.createImage("createImage2D", flags, format, desc, hostPtr)
}

// CreateImage3D is the legacy three-dimensional image constructor.
func (c *Context) CreateImage3D(flags clruntime.MemFlags, format clruntime.ImageFormat, width, height, depth, rowPitch, slicePitch uint64, hostPtr []byte) (*Memory, error) {
	desc := clruntime.ImageDesc{
		Type:       clruntime.MemObjectImage3D,
		Width:      width,
		Height:     height,
		Depth:      depth,
		RowPitch:   rowPitch,
		SlicePitch: slicePitch,
	}
	return c.createImage("createImage3D", flags, format, desc, hostPtr)
}

func (c *Context) createImage(op string, flags clruntime.MemFlags, format clruntime.ImageFormat, desc clruntime.ImageDesc, hostPtr []byte) (*Memory, error) {
	if err := validateMemFlags(op, flags, hostPtr); err != nil {
		return nil, err
	}
	if !c.supportsImages() {
		return nil, errors.New(errors.InvalidOperation, op, "no context device supports images")
	}
	if desc.Width == 0 {
		return nil, errors.New(errors.InvalidImageDescriptor, op, "zero width")
	}
	if desc.Type == clruntime.MemObjectImage3D && desc.Depth < 2 {
		return nil, errors.New(errors.InvalidImageDescriptor, op, "3D image needs depth of at least 2")
	}

	impl, err := c.impl.CreateImage(flags, format, desc, hostPtr)
	if err != nil {
		return nil, err
	}
	return c.adoptMemory(op, desc.Type, flags, impl), nil
}

func (c *Context) adoptMemory(op string, memType clruntime.MemObjectType, flags clruntime.MemFlags, impl backend.Memory) *Memory {
	m := &Memory{
		context: c,
		memType: memType,
		flags:   flags,
		size:    impl.Size(),
		impl:    impl,
	}
	m.init(c.dispatch)
	m.handle = c.platform.registry.handles.Insert(clruntime.KindMemory, m)

	c.mu.Lock()
	c.memories = append(c.memories, m)
	c.mu.Unlock()

	logObject("memory created", m.handle, op)
	return m
}
