package playback

import (
	"sync/atomic"

	"github.com/cwbudde/algo-fetcomp/dsp/core"
)

// Processor processes planar blocks in place.
type Processor interface {
	Process(channels [][]float64)
}

// latencyReporter is implemented by processors that delay their output,
// such as dynamics.FETCompressor.
type latencyReporter interface {
	LatencySamples() int
}

// FileSource plays planar audio through a Processor in stereo blocks of at
// most the configured size. Mono input is copied to both sides and channels
// beyond the second are ignored. Without looping, the end of the file is
// followed by the processor's latency in silence so its delayed output is
// heard in full.
type FileSource struct {
	input  [][]float64
	frames int
	proc   Processor
	loop   bool
	tail   int // silent frames still to flush

	block   [][]float64
	view    [][]float64 // block trimmed to the valid frames
	size    int         // valid frames in block
	offset  int         // frames of block already played
	pos     int         // next input frame to load
	played  atomic.Int64
	drained atomic.Bool
}

// NewFileSource creates a source over input, processed in blocks of
// blockSize frames. With loop set the file repeats forever.
func NewFileSource(input [][]float64, proc Processor, blockSize int, loop bool) *FileSource {
	blockSize = max(blockSize, 1)

	frames := 0
	if len(input) > 0 {
		frames = len(input[0])
		for _, ch := range input[1:] {
			frames = min(frames, len(ch))
		}
	}

	tail := 0
	if lr, ok := proc.(latencyReporter); ok && frames > 0 {
		tail = max(lr.LatencySamples(), 0)
	}

	return &FileSource{
		input:  input,
		frames: frames,
		proc:   proc,
		loop:   loop && frames > 0,
		tail:   tail,
		block:  [][]float64{make([]float64, blockSize), make([]float64, blockSize)},
		view:   make([][]float64, 2),
	}
}

// Process fills dst with interleaved stereo samples.
func (s *FileSource) Process(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		if s.offset >= s.size && !s.nextBlock() {
			dst[i], dst[i+1] = 0, 0
			continue
		}

		dst[i] = float32(s.block[0][s.offset])
		dst[i+1] = float32(s.block[1][s.offset])
		s.offset++
		s.played.Add(1)
	}
}

// nextBlock loads and processes the next block. It reports false once the
// input and the latency tail are exhausted.
func (s *FileSource) nextBlock() bool {
	if s.pos >= s.frames {
		switch {
		case s.loop:
			s.pos = 0
		case s.tail > 0:
			return s.flushTail()
		default:
			s.drained.Store(true)
			return false
		}
	}

	n := min(len(s.block[0]), s.frames-s.pos)
	left := s.input[0]
	right := left

	if len(s.input) > 1 {
		right = s.input[1]
	}

	copy(s.block[0], left[s.pos:s.pos+n])
	copy(s.block[1], right[s.pos:s.pos+n])

	s.pos += n
	s.process(n)

	return true
}

// flushTail processes a block of silence to drain the processor's delay.
func (s *FileSource) flushTail() bool {
	n := min(len(s.block[0]), s.tail)
	core.Zero(s.block[0][:n])
	core.Zero(s.block[1][:n])

	s.tail -= n
	s.process(n)

	return true
}

// process runs the first n frames of the block through the processor.
func (s *FileSource) process(n int) {
	if s.proc != nil {
		s.view[0] = s.block[0][:n]
		s.view[1] = s.block[1][:n]
		s.proc.Process(s.view)
	}

	s.size = n
	s.offset = 0
}

// Finished reports whether every input frame has been played.
func (s *FileSource) Finished() bool {
	return s.drained.Load()
}

// PlayedFrames returns the number of frames handed to the player.
func (s *FileSource) PlayedFrames() int64 {
	return s.played.Load()
}
