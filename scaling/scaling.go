// Package scaling provides the frequency power laws for interstellar
// scintillation and scattering quantities.
//
// Each function rescales a quantity measured at one frequency to another
// frequency via quantity * (to/from)^exp, where the exponent depends on the
// quantity and on the turbulence spectral index beta (Stinebring & Condon
// 1990). The default beta for a Kolmogorov medium is 11/3, giving the
// familiar exponents 22/5 (scintillation bandwidth), 6/5 (scintillation
// timescale) and -22/5 (scattering timescale).
//
// The power-law exponents are discontinuous at beta = 4, where both branch
// formulas diverge. That value is rejected with [ErrCriticalBeta] rather
// than silently producing a garbage exponent.
package scaling

import (
	"errors"
	"fmt"
	"math"

	"github.com/pulsarkit/pulsim/units"
)

// Errors returned by the scaling laws.
var (
	// ErrCriticalBeta reports a spectral index at which the scaling-law
	// exponents are undefined.
	ErrCriticalBeta = errors.New("scaling: scaling laws are undefined at beta = 4")

	// ErrInvalidReference reports a non-positive reference frequency.
	ErrInvalidReference = errors.New("scaling: reference frequency must be > 0")
)

func checkReference(from units.Frequency) error {
	if from <= 0 {
		return fmt.Errorf("%w: %v Hz", ErrInvalidReference, from.Hz())
	}
	return nil
}

func scintBandwidthExponent(beta float64) (float64, error) {
	if beta == 4 {
		return 0, ErrCriticalBeta
	}
	if beta < 4 {
		return 2 * beta / (beta - 2), nil
	}
	return 8 / (6 - beta), nil
}

func scintTimescaleExponent(beta float64) (float64, error) {
	if beta == 4 {
		return 0, ErrCriticalBeta
	}
	if beta < 4 {
		return 2 / (beta - 2), nil
	}
	return (beta - 2) / (6 - beta), nil
}

func scatterTimescaleExponent(beta float64) (float64, error) {
	if beta == 4 {
		return 0, ErrCriticalBeta
	}
	if beta < 4 {
		return -2 * beta / (beta - 2), nil
	}
	return -8 / (6 - beta), nil
}

// ScintBandwidth rescales a scintillation bandwidth measured at from to the
// frequency to.
func ScintBandwidth(dnu units.Frequency, from, to units.Frequency, beta float64) (units.Frequency, error) {
	exp, err := scintBandwidthExponent(beta)
	if err != nil {
		return 0, err
	}
	if err := checkReference(from); err != nil {
		return 0, err
	}
	return units.Frequency(float64(dnu) * math.Pow(to.Hz()/from.Hz(), exp)), nil
}

// ScintTimescale rescales a scintillation timescale measured at from to the
// frequency to.
func ScintTimescale(dt units.Time, from, to units.Frequency, beta float64) (units.Time, error) {
	exp, err := scintTimescaleExponent(beta)
	if err != nil {
		return 0, err
	}
	if err := checkReference(from); err != nil {
		return 0, err
	}
	return units.Time(float64(dt) * math.Pow(to.Hz()/from.Hz(), exp)), nil
}

// ScatterTimescale rescales a scattering timescale measured at from to the
// frequency to. The exponent is negative, so the timescale shrinks toward
// higher frequencies.
func ScatterTimescale(tau units.Time, from, to units.Frequency, beta float64) (units.Time, error) {
	exp, err := scatterTimescaleExponent(beta)
	if err != nil {
		return 0, err
	}
	if err := checkReference(from); err != nil {
		return 0, err
	}
	return units.Time(float64(tau) * math.Pow(to.Hz()/from.Hz(), exp)), nil
}

// ScatterTimescaleAcross rescales a scattering timescale measured at from to
// every frequency in to, the broadcast form used for per-channel delays.
func ScatterTimescaleAcross(tau units.Time, from units.Frequency, to []units.Frequency, beta float64) ([]units.Time, error) {
	exp, err := scatterTimescaleExponent(beta)
	if err != nil {
		return nil, err
	}
	if err := checkReference(from); err != nil {
		return nil, err
	}
	out := make([]units.Time, len(to))
	for i, f := range to {
		out[i] = units.Time(float64(tau) * math.Pow(f.Hz()/from.Hz(), exp))
	}
	return out, nil
}
