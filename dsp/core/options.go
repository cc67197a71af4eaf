package core

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec is returned by ProcessSpec.Validate.
var ErrInvalidSpec = errors.New("core: invalid process spec")

// ProcessSpec describes the stream a processor is prepared for. It is fixed
// for a session; changing any field requires preparing again.
type ProcessSpec struct {
	SampleRate   float64
	Channels     int
	MaxBlockSize int
}

// ProcessorOption mutates a ProcessSpec.
type ProcessorOption func(*ProcessSpec)

// DefaultProcessSpec returns sensible defaults for offline and streaming use.
func DefaultProcessSpec() ProcessSpec {
	return ProcessSpec{
		SampleRate:   48000,
		Channels:     2,
		MaxBlockSize: 512,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(spec *ProcessSpec) {
		if sampleRate > 0 {
			spec.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the channel count.
func WithChannels(channels int) ProcessorOption {
	return func(spec *ProcessSpec) {
		if channels > 0 {
			spec.Channels = channels
		}
	}
}

// WithBlockSize sets the maximum processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(spec *ProcessSpec) {
		if blockSize > 0 {
			spec.MaxBlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default spec.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessSpec {
	spec := DefaultProcessSpec()
	for _, opt := range opts {
		if opt != nil {
			opt(&spec)
		}
	}
	return spec
}

// Validate reports whether the spec can be used to prepare a processor.
func (s ProcessSpec) Validate() error {
	if s.SampleRate <= 0 || !IsFinite(s.SampleRate) {
		return fmt.Errorf("%w: sample rate must be positive and finite: %f", ErrInvalidSpec, s.SampleRate)
	}

	if s.Channels <= 0 {
		return fmt.Errorf("%w: channel count must be positive: %d", ErrInvalidSpec, s.Channels)
	}

	if s.MaxBlockSize <= 0 {
		return fmt.Errorf("%w: block size must be positive: %d", ErrInvalidSpec, s.MaxBlockSize)
	}

	return nil
}
