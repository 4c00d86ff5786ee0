package cl

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// Property arrays are caller-owned, zero-terminated {key, value} lists.
// They are copied, never retained: the caller may reuse its buffer the
// moment the creation call returns.

// copyPropArray copies a caller property array verbatim, including the
// terminating zero. A nil array stays nil.
func copyPropArray(props []uint64) []uint64 {
	if props == nil {
		return nil
	}
	return append([]uint64(nil), props...)
}

// parsePropArray splits a zero-terminated {key, value, ..., 0} array into a
// key/value map, rejecting truncated arrays and duplicate keys.
func parsePropArray(op string, props []uint64) (map[uint64]uint64, error) {
	parsed := make(map[uint64]uint64)
	if len(props) == 0 {
		return parsed, nil
	}

	i := 0
	for i < len(props) && props[i] != 0 {
		if i+1 >= len(props) {
			return nil, errors.New(errors.InvalidValue, op, "property array truncated before value")
		}
		key := props[i]
		if _, dup := parsed[key]; dup {
			return nil, errors.Newf(errors.InvalidValue, op, "property 0x%04x specified twice", key)
		}
		parsed[key] = props[i+1]
		i += 2
	}
	if i >= len(props) {
		return nil, errors.New(errors.InvalidValue, op, "property array missing terminator")
	}
	return parsed, nil
}

// queueOptions is the parsed form of a with-properties queue creation call.
type queueOptions struct {
	properties clruntime.QueueProperties
	size       uint32
	sizeSet    bool
}

// parseQueueProperties parses the recognized queue creation keys. Unknown
// keys report InvalidValue: the backend is never asked to understand array
// framing.
func parseQueueProperties(op string, props []uint64) (queueOptions, error) {
	var opts queueOptions

	parsed, err := parsePropArray(op, props)
	if err != nil {
		return opts, err
	}

	for key, value := range parsed {
		switch key {
		case clruntime.QueuePropProperties:
			opts.properties = clruntime.QueueProperties(value)
		case clruntime.QueuePropSize:
			opts.size = uint32(value)
			opts.sizeSet = true
		default:
			return opts, errors.Newf(errors.InvalidValue, op, "unknown queue property 0x%04x", key)
		}
	}
	return opts, nil
}

// samplerOptions is the parsed form of a with-properties sampler creation.
type samplerOptions struct {
	normalizedCoords bool
	addressingMode   clruntime.AddressingMode
	filterMode       clruntime.FilterMode
}

func defaultSamplerOptions() samplerOptions {
	return samplerOptions{
		normalizedCoords: true,
		addressingMode:   clruntime.AddressClamp,
		filterMode:       clruntime.FilterNearest,
	}
}

func parseSamplerProperties(op string, props []uint64) (samplerOptions, error) {
	opts := defaultSamplerOptions()

	parsed, err := parsePropArray(op, props)
	if err != nil {
		return opts, err
	}

	for key, value := range parsed {
		switch key {
		case clruntime.SamplerPropNormalizedCoords:
			opts.normalizedCoords = value != 0
		case clruntime.SamplerPropAddressingMode:
			opts.addressingMode = clruntime.AddressingMode(value)
		case clruntime.SamplerPropFilterMode:
			opts.filterMode = clruntime.FilterMode(value)
		default:
			return opts, errors.Newf(errors.InvalidValue, op, "unknown sampler property 0x%04x", key)
		}
	}
	return opts, nil
}

// contextPlatformKey extracts the platform selection key from a context
// property array, if present.
func contextPlatformKey(op string, props []uint64) (clruntime.Handle, bool, error) {
	parsed, err := parsePropArray(op, props)
	if err != nil {
		return 0, false, err
	}
	for key := range parsed {
		if key != clruntime.ContextPropPlatform {
			return 0, false, errors.Newf(errors.InvalidProperty, op, "unknown context property 0x%04x", key)
		}
	}
	if value, ok := parsed[clruntime.ContextPropPlatform]; ok {
		return clruntime.Handle(value), true, nil
	}
	return 0, false, nil
}
