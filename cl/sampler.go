package cl

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/backend"
)

// Sampler is an image sampling configuration owned by exactly one context.
type Sampler struct {
	object
	context          *Context
	normalizedCoords bool
	addressingMode   clruntime.AddressingMode
	filterMode       clruntime.FilterMode

	// propArray is the copied raw property array from the with-properties
	// constructor; nil for the positional constructor.
	propArray []uint64
	impl      backend.Sampler
}

func (s *Sampler) Kind() clruntime.ObjectKind { return clruntime.KindSampler }

// Context returns the owning context.
func (s *Sampler) Context() *Context { return s.context }

// Release decrements the reference count; on reaching zero the owning
// context removes the sampler from its list and performs destruction.
func (s *Sampler) Release() error {
	if s.removeRef() {
		s.context.destroySampler(s)
	}
	return nil
}

func (s *Sampler) destroy() {
	s.impl.Release()
	s.context.platform.registry.handles.Remove(s.handle)
	logObject("sampler destroyed", s.handle, "releaseSampler")
}

// GetInfo implements the uniform info query protocol for samplers.
func (s *Sampler) GetInfo(name clruntime.SamplerInfo, value []byte, sizeRet *int) error {
	const op = "getSamplerInfo"

	var src []byte
	switch name {
	case clruntime.SamplerReferenceCount:
		src = infoUint32(s.RefCount())
	case clruntime.SamplerContext:
		src = infoHandle(s.context.handle)
	case clruntime.SamplerNormalizedCoords:
		src = infoBool(s.normalizedCoords)
	case clruntime.SamplerAddressingMode:
		src = infoUint32(uint32(s.addressingMode))
	case clruntime.SamplerFilterMode:
		src = infoUint32(uint32(s.filterMode))
	case clruntime.SamplerPropertiesArray:
		src = infoUint64s(s.propArray)
	default:
		return unknownInfoName(op, uint32(name))
	}
	return copyInfo(op, src, value, sizeRet)
}

// CreateSampler creates a sampler from positional arguments.
func (c *Context) CreateSampler(normalizedCoords bool, addressingMode clruntime.AddressingMode, filterMode clruntime.FilterMode) (*Sampler, error) {
	return c.createSampler("createSampler", nil, samplerOptions{
		normalizedCoords: normalizedCoords,
		addressingMode:   addressingMode,
		filterMode:       filterMode,
	})
}

// CreateSamplerWithProperties creates a sampler from a caller property
// array. Unspecified keys take their documented defaults.
func (c *Context) CreateSamplerWithProperties(properties []uint64) (*Sampler, error) {
	const op = "createSamplerWithProperties"

	opts, err := parseSamplerProperties(op, properties)
	if err != nil {
		return nil, err
	}
	return c.createSampler(op, copyPropArray(properties), opts)
}

func (c *Context) createSampler(op string, propArray []uint64, opts samplerOptions) (*Sampler, error) {
	impl, err := c.impl.CreateSampler(opts.normalizedCoords, opts.addressingMode, opts.filterMode)
	if err != nil {
		return nil, err
	}

	s := &Sampler{
		context:          c,
		normalizedCoords: opts.normalizedCoords,
		addressingMode:   opts.addressingMode,
		filterMode:       opts.filterMode,
		propArray:        propArray,
		impl:             impl,
	}
	s.init(c.dispatch)
	s.handle = c.platform.registry.handles.Insert(clruntime.KindSampler, s)

	c.mu.Lock()
	c.samplers = append(c.samplers, s)
	c.mu.Unlock()

	logObject("sampler created", s.handle, op)
	return s, nil
}
