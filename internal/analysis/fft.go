package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// VelocitySpectrum returns the magnitude spectrum of v, zero-padded to the
// next power of two. Only the non-negative frequency half is returned.
func VelocitySpectrum(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	n := nextPow2(len(v))
	padded := make([]float64, n)
	copy(padded, v)

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency of v in cycles
// per frame unit, given the frame delta the samples were taken at.
func DominantFrequency(v []float64, delta float64) float64 {
	ps := VelocitySpectrum(v)
	if len(ps) < 2 || delta <= 0 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	n := float64(len(ps) * 2)
	return float64(best) / (n * delta)
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << uint(math.Ceil(math.Log2(float64(n))))
}
