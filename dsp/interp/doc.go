// Package interp provides interpolation primitives for sampled curves.
//
// [Hermite4] is 4-point cubic Hermite (Catmull-Rom) interpolation.
// [Table] samples a function on a uniform grid once and reconstructs it with
// [Hermite4], clamping indices at the edges instead of wrapping. It is used
// for waveshaping curves that are too expensive to evaluate per sample.
package interp
