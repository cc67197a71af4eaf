package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}

// Deinterleave splits frame-interleaved samples into per-channel slices.
// Each channel slice must hold at least len(interleaved)/len(channels)
// values. It returns the number of frames written.
func Deinterleave(channels [][]float64, interleaved []float64) int {
	numCh := len(channels)
	if numCh == 0 {
		return 0
	}

	frames := len(interleaved) / numCh
	for ch := range channels {
		if len(channels[ch]) < frames {
			frames = len(channels[ch])
		}
	}

	for i := range frames {
		base := i * numCh
		for ch := range channels {
			channels[ch][i] = interleaved[base+ch]
		}
	}

	return frames
}

// Interleave writes frames frames of the per-channel slices into dst.
// It returns the number of frames written.
func Interleave(dst []float64, channels [][]float64, frames int) int {
	numCh := len(channels)
	if numCh == 0 {
		return 0
	}

	if limit := len(dst) / numCh; frames > limit {
		frames = limit
	}

	for ch := range channels {
		if len(channels[ch]) < frames {
			frames = len(channels[ch])
		}
	}

	for i := range frames {
		base := i * numCh
		for ch := range channels {
			dst[base+ch] = channels[ch][i]
		}
	}

	return frames
}
