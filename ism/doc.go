// Package ism models propagation of a pulsar signal through the ionized
// interstellar medium.
//
// The [Engine] is stateless; every operation takes a caller-owned signal and
// mutates its sample matrix in place. Three transformations are provided:
//
//   - [Engine.Disperse] applies the 1/f² cold-plasma dispersion delay,
//     per channel for filterbank signals and as a frequency-domain chirp
//     filter (Lorimer & Kramer 2006, eqn. 5.21) for baseband signals.
//     A signal can be dispersed exactly once; the attempt is guarded by the
//     signal's state transition.
//   - [Engine.FDShift] applies the NANOGrav FD polynomial-in-log-frequency
//     delay correction (Arzoumanian et al. 2016). Repeated corrections
//     accumulate.
//   - [Engine.ScatterBroaden] shifts every channel by its scattering
//     timescale, rescaled from the measurement frequency with the
//     scaling-law package. The convolution form of scatter broadening is
//     deliberately unimplemented and fails with
//     [ErrUnsupportedConvolution].
//
// Per-channel work touches only that channel's row, so the engines may run
// the channel loop across workers (see [WithWorkers]); results are identical
// to sequential execution. Progress reporting is an optional side channel
// injected with [WithProgress] and is not part of any contract.
//
// # Usage
//
// Disperse a filterbank signal and inspect the applied delays:
//
//	sig, _ := signal.NewFilterBank(signal.FilterBankConfig{
//		Freqs:      []units.Frequency{units.MHz(1200), units.MHz(1400)},
//		SampleRate: units.KHz(1),
//		NumSamples: 2048,
//	})
//	// ... fill sig.Data() with pulse profiles ...
//	eng := ism.New()
//	if err := eng.Disperse(sig, units.PcPerCm3(10)); err != nil { ... }
//	delays := ism.DispersionDelays(sig.DM(), sig.Freqs())
package ism
