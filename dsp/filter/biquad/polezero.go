package biquad

import "math/cmplx"

// Poles returns the roots of the denominator z^2 + A1*z + A2.
func (c *Coefficients) Poles() [2]complex128 {
	sqrtDisc := cmplx.Sqrt(complex(c.A1*c.A1-4*c.A2, 0))
	b := complex(-c.A1, 0)

	return [2]complex128{(b + sqrtDisc) / 2, (b - sqrtDisc) / 2}
}

// PoleRadius returns the largest pole magnitude of the section.
func (c *Coefficients) PoleRadius() float64 {
	p := c.Poles()
	return max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// IsStable reports whether both poles lie strictly inside the unit circle.
func (c *Coefficients) IsStable() bool {
	return c.PoleRadius() < 1
}

// PoleRadius returns the largest pole magnitude over all sections.
func (c *Chain) PoleRadius() float64 {
	r := 0.0
	for i := range c.sections {
		r = max(r, c.sections[i].PoleRadius())
	}

	return r
}
