package errors

import (
	"fmt"
	"strings"
)

// Code is a signed API error code. Success is zero and every failure code is
// negative, matching the external specification; client code branches on the
// exact values, so they must never change.
type Code int32

const (
	Success Code = 0

	DeviceNotFound             Code = -1
	DeviceNotAvailable         Code = -2
	CompilerNotAvailable       Code = -3
	MemObjectAllocationFailure Code = -4
	OutOfResources             Code = -5
	OutOfHostMemory            Code = -6
	ProfilingInfoNotAvailable  Code = -7
	BuildProgramFailure        Code = -11

	InvalidValue                 Code = -30
	InvalidDeviceType            Code = -31
	InvalidPlatform              Code = -32
	InvalidDevice                Code = -33
	InvalidContext               Code = -34
	InvalidQueueProperties       Code = -35
	InvalidCommandQueue          Code = -36
	InvalidHostPtr               Code = -37
	InvalidMemObject             Code = -38
	InvalidImageFormatDescriptor Code = -39
	InvalidImageSize             Code = -40
	InvalidSampler               Code = -41
	InvalidBinary                Code = -42
	InvalidBuildOptions          Code = -43
	InvalidProgram               Code = -44
	InvalidProgramExecutable     Code = -45
	InvalidKernelName            Code = -46
	InvalidOperation             Code = -59
	InvalidBufferSize            Code = -61
	InvalidProperty              Code = -64
	InvalidImageDescriptor       Code = -65
	InvalidDeviceQueue           Code = -70
)

var codeNames = map[Code]string{
	Success:                      "CL_SUCCESS",
	DeviceNotFound:               "CL_DEVICE_NOT_FOUND",
	DeviceNotAvailable:           "CL_DEVICE_NOT_AVAILABLE",
	CompilerNotAvailable:         "CL_COMPILER_NOT_AVAILABLE",
	MemObjectAllocationFailure:   "CL_MEM_OBJECT_ALLOCATION_FAILURE",
	OutOfResources:               "CL_OUT_OF_RESOURCES",
	OutOfHostMemory:              "CL_OUT_OF_HOST_MEMORY",
	ProfilingInfoNotAvailable:    "CL_PROFILING_INFO_NOT_AVAILABLE",
	BuildProgramFailure:          "CL_BUILD_PROGRAM_FAILURE",
	InvalidValue:                 "CL_INVALID_VALUE",
	InvalidDeviceType:            "CL_INVALID_DEVICE_TYPE",
	InvalidPlatform:              "CL_INVALID_PLATFORM",
	InvalidDevice:                "CL_INVALID_DEVICE",
	InvalidContext:               "CL_INVALID_CONTEXT",
	InvalidQueueProperties:       "CL_INVALID_QUEUE_PROPERTIES",
	InvalidCommandQueue:          "CL_INVALID_COMMAND_QUEUE",
	InvalidHostPtr:               "CL_INVALID_HOST_PTR",
	InvalidMemObject:             "CL_INVALID_MEM_OBJECT",
	InvalidImageFormatDescriptor: "CL_INVALID_IMAGE_FORMAT_DESCRIPTOR",
	InvalidImageSize:             "CL_INVALID_IMAGE_SIZE",
	InvalidSampler:               "CL_INVALID_SAMPLER",
	InvalidBinary:                "CL_INVALID_BINARY",
	InvalidBuildOptions:          "CL_INVALID_BUILD_OPTIONS",
	InvalidProgram:               "CL_INVALID_PROGRAM",
	InvalidProgramExecutable:     "CL_INVALID_PROGRAM_EXECUTABLE",
	InvalidKernelName:            "CL_INVALID_KERNEL_NAME",
	InvalidOperation:             "CL_INVALID_OPERATION",
	InvalidBufferSize:            "CL_INVALID_BUFFER_SIZE",
	InvalidProperty:              "CL_INVALID_PROPERTY",
	InvalidImageDescriptor:       "CL_INVALID_IMAGE_DESCRIPTOR",
	InvalidDeviceQueue:           "CL_INVALID_DEVICE_QUEUE",
}

// String returns the CL_ constant name of the code, or a numeric form for
// codes outside the known set.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CL_ERROR(%d)", int32(c))
}

// Error is the structured error type used throughout the runtime. It carries
// the exact API code plus the failing operation and a detail message for
// debugging.
type Error struct {
	Cause  error
	Op     string
	Detail string
	Code   Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(e.Code.String())
	b.WriteByte(']')

	if e.Op != "" {
		b.WriteByte(' ')
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two errors match when their
// codes are equal, so stdlib errors.Is can compare against a bare
// New(code, "", "") sentinel. IsCode is the shorter form.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with the given code, operation and detail.
func New(code Code, op, detail string) *Error {
	return &Error{Code: code, Op: op, Detail: detail}
}

// Newf creates an error with a formatted detail message.
func Newf(code Code, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a code and operation. The cause is
// preserved for debugging; the code is what crosses the API boundary.
func Wrap(code Code, op string, cause error) *Error {
	return &Error{Code: code, Op: op, Cause: cause}
}

// CodeOf extracts the API code from an error. A nil error is Success. An
// error that does not carry a code anywhere in its chain reports
// OutOfResources, the generic backend-failure code.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	for e := err; e != nil; {
		if ce, ok := e.(*Error); ok {
			return ce.Code
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return OutOfResources
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Invalid creates an InvalidValue error with a formatted detail. Malformed
// size/buffer/property combinations all funnel through this one.
func Invalid(op, format string, args ...any) *Error {
	return Newf(InvalidValue, op, format, args...)
}

// InvalidHandle creates the invalid-handle error for an operation. The code
// is the kind-specific one for the handle the caller claimed to pass, such
// as InvalidContext or InvalidMemObject.
func InvalidHandle(code Code, op string) *Error {
	return &Error{Code: code, Op: op, Detail: "invalid handle"}
}
