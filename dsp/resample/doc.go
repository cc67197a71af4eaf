// Package resample provides block oversampling with polyphase FIR
// anti-aliasing filters.
//
// An [Oversampler] cascades 2x stages to reach factors 2, 4, 8 or 16. Each
// stage uses a Kaiser-windowed sinc lowpass; interpolation runs the even and
// odd polyphase branches, decimation evaluates the filter only at the kept
// samples. Buffers are preallocated for a maximum block size so the
// per-block path is allocation free.
//
// Quality modes:
//   - QualityFast: lower CPU, lower attenuation
//   - QualityBalanced: default mode
//   - QualityBest: higher attenuation and flatter passband
//
// Default quality/performance matrix:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
package resample
