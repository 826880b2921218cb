package ism

import (
	"math"

	"github.com/pulsarkit/pulsim/phys"
	"github.com/pulsarkit/pulsim/scaling"
	"github.com/pulsarkit/pulsim/units"
)

// fdReferenceFreq is the fixed reference frequency of the NANOGrav FD
// convention.
var fdReferenceFreq = units.MHz(1000)

// DispersionDelays returns the per-channel dispersion delay relative to
// infinite frequency, DMK*dm/f², one entry per channel frequency. For
// dm > 0 the delay decreases monotonically with frequency.
func DispersionDelays(dm units.DispersionMeasure, freqs []units.Frequency) []units.Time {
	out := make([]units.Time, len(freqs))
	for i, f := range freqs {
		fMHz := f.MHz()
		out[i] = units.Seconds(phys.DMK * dm.PcPerCm3() / (fMHz * fMHz))
	}
	return out
}

// FDDelays returns the per-channel delay of an FD parameter list. fd[k] is
// the order k+1 coefficient in seconds; the delay at frequency f is
//
//	sum_k -fd[k] * ln(f/1000 MHz)^(k+1)
//
// following Arzoumanian et al. 2016.
func FDDelays(fd []units.Time, freqs []units.Frequency) []units.Time {
	out := make([]units.Time, len(freqs))
	for i, f := range freqs {
		lf := math.Log(f.Hz() / fdReferenceFreq.Hz())
		var delay float64
		term := 1.0
		for _, c := range fd {
			term *= lf
			delay -= c.Seconds() * term
		}
		out[i] = units.Seconds(delay)
	}
	return out
}

// ScatterDelays returns the scattering timescale rescaled to every channel
// frequency from its value tauD measured at refFreq, using the spectral
// index beta.
func ScatterDelays(tauD units.Time, refFreq units.Frequency, freqs []units.Frequency, beta float64) ([]units.Time, error) {
	return scaling.ScatterTimescaleAcross(tauD, refFreq, freqs, beta)
}
