package ism

import (
	"github.com/pulsarkit/pulsim/dsp/shift"
	"github.com/pulsarkit/pulsim/signal"
	"github.com/pulsarkit/pulsim/units"
)

// FDShift applies the frequency-dependent FD delay correction to a
// filterbank signal. fd lists the polynomial coefficients in seconds,
// lowest order first; at least one is required. The correction is not
// idempotent: calling FDShift again shifts the profiles further. The
// signal's FD bookkeeping flag is set on success.
func (e *Engine) FDShift(s *signal.FilterBank, fd []units.Time) error {
	if len(fd) == 0 {
		return ErrNoFDParameters
	}

	delays := FDDelays(fd, s.Freqs())
	dt := s.SampleInterval()
	data := s.Data()

	err := e.eachChannel("fd shift", len(data), func(i int) error {
		return shift.Apply(data[i], delays[i], dt)
	})
	if err != nil {
		return err
	}

	s.MarkFDShifted()
	return nil
}
