package biquad

// Chain is an ordered cascade of biquad sections processed in series,
// preceded by an input gain.
type Chain struct {
	sections []Section
	gain     float64
}

// NewIdentityChain creates a cascade of n passthrough sections. The
// sections can be retuned later with UpdateCoefficients without allocating.
func NewIdentityChain(n int) *Chain {
	c := &Chain{sections: make([]Section, n)}
	c.ResetToIdentity()

	return c
}

// ProcessSample scales x by the chain gain and cascades it through all
// sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ResetToIdentity clears all section states and restores passthrough
// coefficients and unity gain.
func (c *Chain) ResetToIdentity() {
	c.gain = 1
	for i := range c.sections {
		c.sections[i].Coefficients = Identity()
		c.sections[i].Reset()
	}
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// UpdateCoefficients replaces the filter coefficients and gain.
// If the number of sections is unchanged the delay lines are kept and
// nothing is allocated. Otherwise the sections are replaced with fresh
// state.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients, gain float64) {
	c.gain = gain

	if len(coeffs) != len(c.sections) {
		c.sections = make([]Section, len(coeffs))
	}

	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// Section returns the i-th section.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}
