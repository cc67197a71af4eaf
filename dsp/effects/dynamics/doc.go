// Package dynamics implements a FET limiting amplifier model in the style of
// the classic 1176 compressor.
//
// FETCompressor is the block processor. It runs each channel oversampled
// through:
//   - input trim plus internal headroom
//   - optional all-buttons drive and transient-driven threshold/ratio
//     modulation
//   - the smoothed gain cell followed by a fast peak detector
//   - lookup-table FET saturation (see FETTable)
//   - a dynamic low/high shelf makeup pair
//   - output trim and SoftClip
//
// Knob positions map to times with MapAttackMs and MapReleaseMs, the static
// curve is ComputeGain, and FETParameterRanges lists host control ranges.
// Controls are atomics and may be changed from any goroutine while another
// goroutine calls Process.
//
// Build with -tags fastmath to use approximate exp and log in the detector
// and gain computer.
package dynamics
