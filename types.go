package clruntime

// Handle is an opaque reference to an API object.
// Handle 0 is reserved and always invalid.
type Handle uint64

// ObjectKind identifies the concrete kind of an API object.
type ObjectKind uint8

const (
	KindPlatform ObjectKind = iota + 1
	KindDevice
	KindContext
	KindCommandQueue
	KindMemory
	KindSampler
	KindProgram
)

func (k ObjectKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindDevice:
		return "device"
	case KindContext:
		return "context"
	case KindCommandQueue:
		return "command-queue"
	case KindMemory:
		return "memory"
	case KindSampler:
		return "sampler"
	case KindProgram:
		return "program"
	default:
		return "unknown"
	}
}

// DeviceType is the bitfield selecting device categories at context creation.
type DeviceType uint64

const (
	DeviceTypeDefault     DeviceType = 1 << 0
	DeviceTypeCPU         DeviceType = 1 << 1
	DeviceTypeGPU         DeviceType = 1 << 2
	DeviceTypeAccelerator DeviceType = 1 << 3
	DeviceTypeCustom      DeviceType = 1 << 4
	DeviceTypeAll         DeviceType = 0xFFFFFFFF
)

// Matches reports whether a device of type t is selected by the query q.
// DeviceTypeDefault and DeviceTypeAll select through special rules handled
// by the caller; Matches covers the plain category bits.
func (t DeviceType) Matches(q DeviceType) bool {
	if q == DeviceTypeAll {
		return t != DeviceTypeCustom
	}
	return t&q != 0
}

// QueueProperties is the command queue properties bitfield.
type QueueProperties uint64

const (
	QueueOutOfOrderExecMode QueueProperties = 1 << 0
	QueueProfilingEnable    QueueProperties = 1 << 1
	QueueOnDevice           QueueProperties = 1 << 2
	QueueOnDeviceDefault    QueueProperties = 1 << 3
)

// IsSet reports whether all bits of p are set.
func (q QueueProperties) IsSet(p QueueProperties) bool { return q&p == p }

// Set returns q with the bits of p set.
func (q QueueProperties) Set(p QueueProperties) QueueProperties { return q | p }

// Clear returns q with the bits of p cleared.
func (q QueueProperties) Clear(p QueueProperties) QueueProperties { return q &^ p }

// MemFlags is the memory object creation flags bitfield.
type MemFlags uint64

const (
	MemReadWrite     MemFlags = 1 << 0
	MemWriteOnly     MemFlags = 1 << 1
	MemReadOnly      MemFlags = 1 << 2
	MemUseHostPtr    MemFlags = 1 << 3
	MemAllocHostPtr  MemFlags = 1 << 4
	MemCopyHostPtr   MemFlags = 1 << 5
	MemHostWriteOnly MemFlags = 1 << 7
	MemHostReadOnly  MemFlags = 1 << 8
	MemHostNoAccess  MemFlags = 1 << 9
)

// IsSet reports whether all bits of p are set.
func (f MemFlags) IsSet(p MemFlags) bool { return f&p == p }

// MemObjectType identifies the shape of a memory object.
type MemObjectType uint32

const (
	MemObjectBuffer  MemObjectType = 0x10F0
	MemObjectImage2D MemObjectType = 0x10F1
	MemObjectImage3D MemObjectType = 0x10F2
	MemObjectImage1D MemObjectType = 0x10F4
)

// AddressingMode selects sampler addressing behavior.
type AddressingMode uint32

const (
	AddressNone           AddressingMode = 0x1130
	AddressClampToEdge    AddressingMode = 0x1131
	AddressClamp          AddressingMode = 0x1132
	AddressRepeat         AddressingMode = 0x1133
	AddressMirroredRepeat AddressingMode = 0x1134
)

// FilterMode selects sampler filtering behavior.
type FilterMode uint32

const (
	FilterNearest FilterMode = 0x1140
	FilterLinear  FilterMode = 0x1141
)

// ImageFormat describes the channel layout of an image.
type ImageFormat struct {
	ChannelOrder    uint32
	ChannelDataType uint32
}

// ImageDesc describes the dimensions of an image.
type ImageDesc struct {
	Type       MemObjectType
	Width      uint64
	Height     uint64
	Depth      uint64
	ArraySize  uint64
	RowPitch   uint64
	SlicePitch uint64
}

// Property-list keys. Creation calls accept a caller-owned, zero-terminated
// array of {key, value} pairs; the keys below are the ones parsed locally.
const (
	// ContextPropPlatform selects the platform a context is created against.
	ContextPropPlatform uint64 = 0x1084

	// QueuePropProperties carries the QueueProperties bitmask in a
	// with-properties queue creation call.
	QueuePropProperties uint64 = 0x1093

	// QueuePropSize carries the on-device queue size in bytes.
	QueuePropSize uint64 = 0x1094

	// SamplerPropNormalizedCoords, SamplerPropAddressingMode and
	// SamplerPropFilterMode configure sampler creation.
	SamplerPropNormalizedCoords uint64 = 0x1152
	SamplerPropAddressingMode   uint64 = 0x1153
	SamplerPropFilterMode       uint64 = 0x1154
)
