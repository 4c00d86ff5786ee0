package clruntime

// Info selector codes. Values match the external API enumeration so clients
// branching on raw selector values keep working.

// PlatformInfo selects a platform attribute in GetPlatformInfo.
type PlatformInfo uint32

const (
	PlatformProfile    PlatformInfo = 0x0900
	PlatformVersion    PlatformInfo = 0x0901
	PlatformName       PlatformInfo = 0x0902
	PlatformVendor     PlatformInfo = 0x0903
	PlatformExtensions PlatformInfo = 0x0904
)

// DeviceInfo selects a device attribute in GetDeviceInfo.
type DeviceInfo uint32

const (
	DeviceTypeInfo             DeviceInfo = 0x1000
	DeviceMaxComputeUnits      DeviceInfo = 0x1002
	DeviceMaxMemAllocSize      DeviceInfo = 0x1010
	DeviceImageSupport         DeviceInfo = 0x1016
	DeviceName                 DeviceInfo = 0x102B
	DeviceVendor               DeviceInfo = 0x102C
	DeviceProfile              DeviceInfo = 0x102E
	DeviceVersion              DeviceInfo = 0x102F
	DeviceExtensions           DeviceInfo = 0x1030
	DevicePlatform             DeviceInfo = 0x1031
	DeviceBuiltInKernels       DeviceInfo = 0x103F
	DeviceQueueOnDeviceMaxSize DeviceInfo = 0x1052
	DeviceILVersion            DeviceInfo = 0x105B
)

// ContextInfo selects a context attribute in GetContextInfo.
type ContextInfo uint32

const (
	ContextReferenceCount ContextInfo = 0x1080
	ContextDevices        ContextInfo = 0x1081
	ContextProperties     ContextInfo = 0x1082
	ContextNumDevices     ContextInfo = 0x1083
)

// CommandQueueInfo selects a queue attribute in GetCommandQueueInfo.
type CommandQueueInfo uint32

const (
	QueueContext         CommandQueueInfo = 0x1090
	QueueDevice          CommandQueueInfo = 0x1091
	QueueReferenceCount  CommandQueueInfo = 0x1092
	QueuePropertiesInfo  CommandQueueInfo = 0x1093
	QueueSize            CommandQueueInfo = 0x1094
	QueueDeviceDefault   CommandQueueInfo = 0x1095
	QueuePropertiesArray CommandQueueInfo = 0x1098
)

// MemInfo selects a memory object attribute in GetMemObjectInfo.
type MemInfo uint32

const (
	MemTypeInfo       MemInfo = 0x1100
	MemFlagsInfo      MemInfo = 0x1101
	MemSize           MemInfo = 0x1102
	MemMapCount       MemInfo = 0x1104
	MemReferenceCount MemInfo = 0x1105
	MemContext        MemInfo = 0x1106
	MemOffset         MemInfo = 0x1108
)

// SamplerInfo selects a sampler attribute in GetSamplerInfo.
type SamplerInfo uint32

const (
	SamplerReferenceCount   SamplerInfo = 0x1150
	SamplerContext          SamplerInfo = 0x1151
	SamplerNormalizedCoords SamplerInfo = 0x1152
	SamplerAddressingMode   SamplerInfo = 0x1153
	SamplerFilterMode       SamplerInfo = 0x1154
	SamplerPropertiesArray  SamplerInfo = 0x1155
)

// ProgramInfo selects a program attribute in GetProgramInfo.
type ProgramInfo uint32

const (
	ProgramReferenceCount ProgramInfo = 0x1160
	ProgramContext        ProgramInfo = 0x1161
	ProgramNumDevices     ProgramInfo = 0x1162
	ProgramDevices        ProgramInfo = 0x1163
	ProgramSource         ProgramInfo = 0x1164
	ProgramBinarySizes    ProgramInfo = 0x1165
	ProgramKernelNames    ProgramInfo = 0x1168
	ProgramIL             ProgramInfo = 0x1169
)
