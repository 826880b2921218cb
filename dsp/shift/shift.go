// Package shift applies sub-sample time delays to uniformly sampled rows.
//
// The shift is performed in the frequency domain by multiplying the spectrum
// with a linear phase ramp, which supports fractional and negative delays of
// arbitrary magnitude and is exact (to FFT round-trip precision) for
// delay = 0. The shift is circular: samples pushed past the end of the row
// wrap around to the front.
//
// The self-conjugate spectral bins cannot be rotated while keeping the row
// real. The DC bin carries zero phase and is never moved; for even-length
// rows the Nyquist bin is scaled by cos(pi d) for a fractional delay of d
// samples, the sampled values of its band-limited continuation. Integer
// delays are exact at every length.
//
// Two strategies are used, selected automatically by row length:
//
//   - Power-of-two rows go through an algo-fft plan.
//   - All other lengths use the gonum real-input FFT, which accepts any
//     length.
package shift

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/pulsarkit/pulsim/units"
)

// Errors returned by shift operations.
var (
	ErrEmptyInput      = errors.New("shift: empty input row")
	ErrInvalidInterval = errors.New("shift: sample interval must be > 0")
)

// Apply delays row in place by delay, where dt is the interval between
// consecutive samples. A positive delay moves the waveform toward later
// samples; a negative delay moves it earlier. delay = 0 leaves the row
// untouched.
func Apply(row []float64, delay, dt units.Time) error {
	if len(row) == 0 {
		return ErrEmptyInput
	}
	if dt <= 0 {
		return fmt.Errorf("%w: %v s", ErrInvalidInterval, dt.Seconds())
	}
	d := delay.Seconds() / dt.Seconds()
	if d == 0 || len(row) == 1 {
		return nil
	}
	if isPowerOfTwo(len(row)) {
		return applyPlanned(row, d)
	}
	applyReal(row, d)
	return nil
}

// applyPlanned shifts via a full complex FFT plan. Negative-frequency bins
// take the conjugate phase so the result stays real.
func applyPlanned(row []float64, d float64) error {
	n := len(row)
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return fmt.Errorf("shift: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range row {
		in[i] = complex(v, 0)
	}

	freq := make([]complex128, n)
	if err := plan.Forward(freq, in); err != nil {
		return err
	}

	for k := range freq {
		kk := k
		if k > n/2 {
			kk = k - n
		}
		theta := -2 * math.Pi * float64(kk) * d / float64(n)
		if n%2 == 0 && k == n/2 {
			// Nyquist bin: no conjugate partner, scale instead of rotate.
			freq[k] *= complex(math.Cos(theta), 0)
			continue
		}
		freq[k] *= cmplx.Exp(complex(0, theta))
	}

	if err := plan.Inverse(in, freq); err != nil {
		return err
	}
	for i := range row {
		row[i] = real(in[i])
	}
	return nil
}

// applyReal shifts via the gonum real-input FFT, which handles any row
// length. The inverse transform is unnormalized, hence the 1/n scale.
func applyReal(row []float64, d float64) {
	n := len(row)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, row)
	for k := range coeffs {
		theta := -2 * math.Pi * float64(k) * d / float64(n)
		if n%2 == 0 && k == n/2 {
			// Nyquist bin: no conjugate partner, scale instead of rotate.
			coeffs[k] *= complex(math.Cos(theta), 0)
			continue
		}
		coeffs[k] *= cmplx.Exp(complex(0, theta))
	}
	fft.Sequence(row, coeffs)
	vecmath.ScaleBlockInPlace(row, 1/float64(n))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
