// Package wavio reads and writes PCM WAV files as planar float64 audio.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
)

// ErrUnsupportedFormat is returned for files that are not integer PCM WAV
// with 16, 24 or 32 bits per sample.
var ErrUnsupportedFormat = errors.New("wavio: unsupported format")

const (
	wavFormatPCM = 1
	// Extensible headers are accepted when the sample depth is an integer
	// PCM depth; the sub-format GUID is not inspected.
	wavFormatExtensible = 0xFFFE
)

// Audio is a decoded file: one slice per channel, samples in [-1, 1].
type Audio struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// Frames returns the number of samples per channel.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// Duration returns the length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}

	return float64(a.Frames()) / float64(a.SampleRate)
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: open %s: %w", path, err)
	}
	defer f.Close()

	a, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

// Read decodes a WAV stream.
func Read(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrUnsupportedFormat)
	}

	depth := int(dec.BitDepth)
	if (dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible) || !supportedDepth(depth) {
		return nil, fmt.Errorf("%w: format %d, %d bit", ErrUnsupportedFormat, dec.WavAudioFormat, depth)
	}

	numCh := int(dec.NumChans)
	if numCh <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, numCh)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	scale := 1 / fullScale(depth)
	interleaved := make([]float64, len(buf.Data))

	for i, v := range buf.Data {
		interleaved[i] = float64(v) * scale
	}

	frames := len(interleaved) / numCh
	channels := make([][]float64, numCh)

	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}

	core.Deinterleave(channels, interleaved)

	return &Audio{
		SampleRate: int(dec.SampleRate),
		BitDepth:   depth,
		Channels:   channels,
	}, nil
}

// WriteFile encodes a to a new file at path, replacing any existing file.
func WriteFile(path string, a *Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %s: %w", path, err)
	}

	if err := Write(f, a); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}

// Write encodes a as integer PCM at a.BitDepth, or 24 bit when unset.
// Samples outside [-1, 1] are clipped.
func Write(w io.WriteSeeker, a *Audio) error {
	depth := a.BitDepth
	if depth == 0 {
		depth = 24
	}

	numCh := len(a.Channels)
	if !supportedDepth(depth) || numCh == 0 || a.SampleRate <= 0 {
		return fmt.Errorf("%w: %d channels, %d Hz, %d bit", ErrUnsupportedFormat, numCh, a.SampleRate, depth)
	}

	frames := a.Frames()
	interleaved := make([]float64, frames*numCh)
	core.Interleave(interleaved, a.Channels, frames)

	peak := fullScale(depth)
	data := make([]int, len(interleaved))

	for i, v := range interleaved {
		data[i] = quantize(v, peak)
	}

	enc := wav.NewEncoder(w, a.SampleRate, depth, numCh, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numCh, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: depth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}

	return nil
}

func supportedDepth(bits int) bool {
	return bits == 16 || bits == 24 || bits == 32
}

func fullScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}

func quantize(v, peak float64) int {
	if !core.IsFinite(v) {
		return 0
	}

	return int(core.Clamp(math.Round(v*peak), -peak, peak-1))
}
