// Package errors provides the API error codes and structured error types
// used throughout the runtime.
//
// Every fallible operation in the object model reports failure through an
// *Error carrying one code from the fixed enumeration (Success is 0, all
// failure codes are negative). The numeric values match the external
// specification verbatim because client code branches on them.
//
// # Creating Errors
//
//	return errors.Newf(errors.InvalidDevice, "createCommandQueue",
//	    "device %d does not belong to context", dev.Handle())
//
// Backend failures are wrapped so the code crosses the API boundary while
// the cause stays available for debugging:
//
//	return errors.Wrap(errors.OutOfResources, "createBuffer", err)
//
// # Inspecting Errors
//
// The dispatch layer reduces any error to its raw code:
//
//	code := errors.CodeOf(err) // Success for nil
//
// Tests and callers match codes with IsCode or stdlib errors.Is:
//
//	if errors.IsCode(err, errors.InvalidValue) { ... }
package errors
