package ism

import (
	"fmt"
	"math"
	"math/cmplx"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/pulsarkit/pulsim/dsp/shift"
	"github.com/pulsarkit/pulsim/phys"
	"github.com/pulsarkit/pulsim/signal"
	"github.com/pulsarkit/pulsim/units"
)

// Disperse applies the interstellar dispersion delay for the given
// dispersion measure to sig, recording dm on the signal. The signal must be
// in the raw state; dispersing twice fails with
// [signal.ErrAlreadyDispersed] without touching any samples.
func (e *Engine) Disperse(sig signal.Signal, dm units.DispersionMeasure) error {
	switch sig.(type) {
	case *signal.FilterBank, *signal.Baseband:
	default:
		return fmt.Errorf("%w: %T", ErrUnknownSignal, sig)
	}

	if err := sig.MarkDispersed(dm); err != nil {
		return err
	}

	switch s := sig.(type) {
	case *signal.FilterBank:
		return e.disperseFilterBank(s)
	case *signal.Baseband:
		return e.disperseBaseband(s)
	}
	return nil
}

// disperseFilterBank shifts every channel row by its dispersion delay
// relative to infinite frequency.
func (e *Engine) disperseFilterBank(s *signal.FilterBank) error {
	delays := DispersionDelays(s.DM(), s.Freqs())
	dt := s.SampleInterval()
	data := s.Data()

	return e.eachChannel("disperse", len(data), func(i int) error {
		return shift.Apply(data[i], delays[i], dt)
	})
}

// disperseBaseband multiplies each segment's spectrum with the dispersion
// chirp H(f) = exp(i 2π DMK dm f² / ((f+f0) f0²)), Lorimer & Kramer 2006,
// eqn. 5.21. f runs over [-bw/2, +bw/2] around the band center f0, on the
// same one-sided transform grid the reference treatment uses. The chirp
// reproduces broadening and delay exactly, with no per-sample
// interpolation. The self-conjugate DC and Nyquist bins take the cos of
// the chirp phase, so only the band-interior content inverts exactly
// under the opposite dispersion measure.
func (e *Engine) disperseBaseband(s *signal.Baseband) error {
	dm := s.DM().PcPerCm3()
	f0 := s.CenterFreq().MHz()
	bw := s.Bandwidth().MHz()
	dt := s.SampleInterval().Seconds()
	data := s.Data()

	return e.eachChannel("disperse", len(data), func(i int) error {
		row := data[i]
		n := len(row)
		if n == 0 {
			return shift.ErrEmptyInput
		}

		fft := fourier.NewFFT(n)
		coeffs := fft.Coefficients(nil, row)

		// Bin spacing of the one-sided spectrum, in MHz.
		m := 2*len(coeffs) - 1
		df := 1 / (float64(m) * dt * 1e6)

		for k := range coeffs {
			f := float64(k)*df - bw/2
			// DMK dm f²/((f+f0) f0²) comes out in s·MHz; the 1e6
			// makes the exponent radians.
			phase := 2 * math.Pi * phys.DMK * dm * f * f / ((f + f0) * f0 * f0) * 1e6
			if k == 0 || (n%2 == 0 && k == len(coeffs)-1) {
				// DC and Nyquist bins have no conjugate partners; on a
				// real row the chirp reduces to a cos scale there.
				coeffs[k] *= complex(math.Cos(phase), 0)
				continue
			}
			coeffs[k] *= cmplx.Exp(complex(0, phase))
		}

		fft.Sequence(row, coeffs)
		vecmath.ScaleBlockInPlace(row, 1/float64(n))
		return nil
	})
}
