// Package playback streams processed audio to the system output through
// ebiten's audio player.
package playback

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// bytesPerFrame is one stereo frame of little-endian float32.
const bytesPerFrame = 8

// SampleSource fills dst with interleaved stereo float32 samples.
type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource that can signal the end of playback.
// Once Finished returns true the stream returns io.EOF after the current
// read.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

// StreamReader adapts a SampleSource to the byte stream ebiten pulls from
// its audio goroutine.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

// NewStreamReader wraps source.
func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

// Read fills p with whole frames. Trailing bytes that do not form a full
// frame are left untouched.
func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}

	r.buf = r.buf[:need]
	r.source.Process(r.buf)

	for i, v := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}

	n := frames * bytesPerFrame
	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return n, io.EOF
	}

	return n, nil
}

// Close implements io.Closer.
func (r *StreamReader) Close() error { return nil }

// Player plays one SampleSource.
type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// sharedAudioContext returns the process-wide audio context. ebiten allows
// only one, so later callers must ask for the same rate.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})

	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}

	return audioContext, nil
}

// NewPlayer creates a paused player pulling from source at sampleRate.
func NewPlayer(sampleRate int, source SampleSource) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}

	reader := NewStreamReader(source)

	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("create audio player: %w", err)
	}

	// Small buffers keep the meter close to what is heard.
	pl.SetBufferSize(50 * time.Millisecond)

	return &Player{player: pl, reader: reader}, nil
}

// Play starts or resumes playback.
func (p *Player) Play() { p.player.Play() }

// Pause pauses playback.
func (p *Player) Pause() { p.player.Pause() }

// IsPlaying reports whether the player is running.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Position returns the playback position the listener hears.
func (p *Player) Position() time.Duration { return p.player.Position() }

// Stop halts playback and releases the player.
func (p *Player) Stop() error {
	p.player.Pause()

	if err := p.player.Close(); err != nil {
		return fmt.Errorf("close audio player: %w", err)
	}

	return p.reader.Close()
}
