package core

import (
	"errors"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	spec := ApplyProcessorOptions(WithSampleRate(96000), WithChannels(1), WithBlockSize(2048))
	if spec.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", spec.SampleRate)
	}
	if spec.Channels != 1 {
		t.Fatalf("channels = %d, want 1", spec.Channels)
	}
	if spec.MaxBlockSize != 2048 {
		t.Fatalf("block size = %d, want 2048", spec.MaxBlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	spec := ApplyProcessorOptions(WithSampleRate(0), WithChannels(0), WithBlockSize(-1))
	def := DefaultProcessSpec()
	if spec != def {
		t.Fatalf("spec = %#v, want %#v", spec, def)
	}
}

func TestProcessSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ProcessSpec
		wantErr bool
	}{
		{"default", DefaultProcessSpec(), false},
		{"zero rate", ProcessSpec{SampleRate: 0, Channels: 2, MaxBlockSize: 64}, true},
		{"negative rate", ProcessSpec{SampleRate: -44100, Channels: 2, MaxBlockSize: 64}, true},
		{"no channels", ProcessSpec{SampleRate: 44100, Channels: 0, MaxBlockSize: 64}, true},
		{"no block", ProcessSpec{SampleRate: 44100, Channels: 2, MaxBlockSize: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("Validate() error = %v, want ErrInvalidSpec", err)
			}
		})
	}
}
