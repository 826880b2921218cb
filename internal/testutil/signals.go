package testutil

import (
	"math"
	"math/rand"
)

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for
// reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// GaussianPulse generates a Gaussian pulse profile centered at pos with the
// given width in samples, a stand-in for a single pulsar pulse.
func GaussianPulse(length, pos int, width float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		d := float64(i - pos)
		out[i] = math.Exp(-d * d / (2 * width * width))
	}
	return out
}

// ZeroSelfConjugate removes the mean and, for even lengths, the
// Nyquist-frequency component from row. Spectral phase rotations treat
// those two bins as real scalars, so stripping them keeps a
// rotate-then-counter-rotate round trip exact.
func ZeroSelfConjugate(row []float64) {
	n := len(row)
	if n == 0 {
		return
	}
	var mean float64
	for _, v := range row {
		mean += v
	}
	mean /= float64(n)
	for i := range row {
		row[i] -= mean
	}
	if n%2 != 0 {
		return
	}
	var nyq float64
	sign := 1.0
	for _, v := range row {
		nyq += sign * v
		sign = -sign
	}
	nyq /= float64(n)
	sign = 1.0
	for i := range row {
		row[i] -= sign * nyq
		sign = -sign
	}
}

// FillGaussianPulses writes a GaussianPulse into every row of a sample
// matrix.
func FillGaussianPulses(data [][]float64, pos int, width float64) {
	for _, row := range data {
		copy(row, GaussianPulse(len(row), pos, width))
	}
}
