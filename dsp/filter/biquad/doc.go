// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections can be cascaded
// via [Chain]; the makeup equalizer of the FET compressor runs its low and
// high shelf as a two-section chain.
//
// Coefficient design lives in dsp/filter/design. Sections start out as the
// identity filter, so a stage whose coefficients have not been committed yet
// passes audio through unchanged.
package biquad
