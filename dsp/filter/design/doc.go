// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing. Shelving filters follow the RBJ
// audio EQ cookbook. The Gain variants take a linear amplitude factor
// instead of decibels, which is how the compressor's makeup equalizer
// derives its boost.
//
// Designers return the zero value of biquad.Coefficients when the corner
// frequency is not strictly between 0 and Nyquist.
package design
