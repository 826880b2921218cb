package ism

import (
	"github.com/pulsarkit/pulsim/dsp/shift"
	"github.com/pulsarkit/pulsim/phys"
	"github.com/pulsarkit/pulsim/signal"
	"github.com/pulsarkit/pulsim/units"
)

// scatterConfig holds the resolved scatter-broadening parameters.
type scatterConfig struct {
	beta     float64
	convolve bool
}

// ScatterOption configures [Engine.ScatterBroaden].
type ScatterOption func(*scatterConfig)

// WithBeta overrides the turbulence spectral index used for the
// scattering-timescale scaling law. The default is the Kolmogorov value
// 11/3; beta = 4 is rejected by the scaling law.
func WithBeta(beta float64) ScatterOption {
	return func(cfg *scatterConfig) {
		cfg.beta = beta
	}
}

// WithConvolution requests scatter broadening by convolving each channel
// with a one-sided exponential tail instead of a plain time shift. That
// path is not implemented: how the tails interact with upstream profile
// generation is unresolved, so ScatterBroaden fails with
// [ErrUnsupportedConvolution] rather than approximating.
func WithConvolution() ScatterOption {
	return func(cfg *scatterConfig) {
		cfg.convolve = true
	}
}

// ScatterBroaden delays every channel of a filterbank signal by its
// scattering timescale, rescaled from tauD as measured at refFreq to each
// channel's frequency. Options select the spectral index and the (refused)
// convolution form. The signal is only mutated once all parameters have
// validated.
func (e *Engine) ScatterBroaden(s *signal.FilterBank, tauD units.Time, refFreq units.Frequency, opts ...ScatterOption) error {
	cfg := scatterConfig{beta: phys.KolmogorovBeta}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.convolve {
		return ErrUnsupportedConvolution
	}

	delays, err := ScatterDelays(tauD, refFreq, s.Freqs(), cfg.beta)
	if err != nil {
		return err
	}

	dt := s.SampleInterval()
	data := s.Data()
	return e.eachChannel("scatter", len(data), func(i int) error {
		return shift.Apply(data[i], delays[i], dt)
	})
}
