// Package signal holds the sampled pulsar signals the propagation engines
// operate on.
//
// Two concrete variants exist: [FilterBank], a channelized signal with one
// real-valued sample row per frequency channel, and [Baseband], full-band
// segments around a single center frequency. Both carry their dispersion
// state as an explicit Raw -> Dispersed transition; [Signal.MarkDispersed]
// records the dispersion measure and performs the transition in one step, so
// the two can never disagree and a second dispersion attempt fails before
// touching any samples.
package signal

import (
	"errors"
	"fmt"

	"github.com/pulsarkit/pulsim/units"
)

// Errors returned by signal construction and state transitions.
var (
	ErrAlreadyDispersed = errors.New("signal: signal has already been dispersed")
	ErrNoChannels       = errors.New("signal: at least one channel is required")
	ErrInvalidLength    = errors.New("signal: sample count must be > 0")
	ErrInvalidRate      = errors.New("signal: sample rate must be > 0")
	ErrInvalidBand      = errors.New("signal: band must satisfy 0 < bandwidth/2 < center frequency")
)

// State is the dispersion state of a signal.
type State int

const (
	// StateRaw marks a signal that has not been dispersed.
	StateRaw State = iota
	// StateDispersed marks a signal whose samples include the dispersion
	// delay.
	StateDispersed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRaw:
		return "raw"
	case StateDispersed:
		return "dispersed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Signal is the read/write surface the propagation engines need. Data
// returns the backing sample matrix, one row per channel or segment; rows
// are mutated in place.
type Signal interface {
	Data() [][]float64
	SampleRate() units.Frequency
	SampleInterval() units.Time
	State() State
	DM() units.DispersionMeasure
	MarkDispersed(dm units.DispersionMeasure) error
}

// state is the transition guard shared by both variants.
type state struct {
	st State
	dm units.DispersionMeasure
}

func (s *state) State() State { return s.st }

// DM returns the dispersion measure recorded by MarkDispersed. Zero until
// the signal is dispersed.
func (s *state) DM() units.DispersionMeasure { return s.dm }

// MarkDispersed records dm and moves the signal from StateRaw to
// StateDispersed. The two are set together, exactly once; any further call
// fails with ErrAlreadyDispersed.
func (s *state) MarkDispersed(dm units.DispersionMeasure) error {
	if s.st != StateRaw {
		return ErrAlreadyDispersed
	}
	s.dm = dm
	s.st = StateDispersed
	return nil
}

// FilterBankConfig configures a channelized signal.
type FilterBankConfig struct {
	// Freqs lists the per-channel center frequencies, one row of samples
	// per entry.
	Freqs []units.Frequency
	// SampleRate is the per-channel sampling rate.
	SampleRate units.Frequency
	// NumSamples is the row length.
	NumSamples int
}

// FilterBank is a channelized (filterbank) signal: a matrix of real samples
// with one row per frequency channel.
type FilterBank struct {
	state
	data      [][]float64
	freqs     []units.Frequency
	rate      units.Frequency
	fdShifted bool
}

// NewFilterBank allocates a zeroed filterbank signal.
func NewFilterBank(cfg FilterBankConfig) (*FilterBank, error) {
	if len(cfg.Freqs) == 0 {
		return nil, ErrNoChannels
	}
	if cfg.NumSamples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, cfg.NumSamples)
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v Hz", ErrInvalidRate, cfg.SampleRate.Hz())
	}
	data := make([][]float64, len(cfg.Freqs))
	for i := range data {
		data[i] = make([]float64, cfg.NumSamples)
	}
	freqs := make([]units.Frequency, len(cfg.Freqs))
	copy(freqs, cfg.Freqs)
	return &FilterBank{data: data, freqs: freqs, rate: cfg.SampleRate}, nil
}

// Data returns the sample matrix. Rows are independent and may be written
// in place.
func (s *FilterBank) Data() [][]float64 { return s.data }

// NumChannels returns the channel count.
func (s *FilterBank) NumChannels() int { return len(s.freqs) }

// Freqs returns the per-channel center frequencies.
func (s *FilterBank) Freqs() []units.Frequency { return s.freqs }

// SampleRate returns the per-channel sampling rate.
func (s *FilterBank) SampleRate() units.Frequency { return s.rate }

// SampleInterval returns the time between consecutive samples.
func (s *FilterBank) SampleInterval() units.Time { return s.rate.Interval() }

// FDShifted reports whether an FD delay correction has been applied at
// least once.
func (s *FilterBank) FDShifted() bool { return s.fdShifted }

// MarkFDShifted records that an FD delay correction has been applied. It is
// bookkeeping only; repeated corrections are allowed and accumulate.
func (s *FilterBank) MarkFDShifted() { s.fdShifted = true }

// BasebandConfig configures a baseband signal.
type BasebandConfig struct {
	// NumSegments is the number of independent full-band sample rows.
	NumSegments int
	// NumSamples is the row length.
	NumSamples int
	// CenterFreq is the band center.
	CenterFreq units.Frequency
	// Bandwidth is the full width of the band around CenterFreq.
	Bandwidth units.Frequency
	// SampleRate is the sampling rate of each row.
	SampleRate units.Frequency
}

// Baseband is a signal sampled across its full bandwidth, dispersed in the
// frequency domain with a chirp filter rather than per-channel time shifts.
type Baseband struct {
	state
	data   [][]float64
	center units.Frequency
	bw     units.Frequency
	rate   units.Frequency
}

// NewBaseband allocates a zeroed baseband signal.
func NewBaseband(cfg BasebandConfig) (*Baseband, error) {
	if cfg.NumSegments <= 0 {
		return nil, ErrNoChannels
	}
	if cfg.NumSamples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, cfg.NumSamples)
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v Hz", ErrInvalidRate, cfg.SampleRate.Hz())
	}
	if cfg.Bandwidth <= 0 || cfg.CenterFreq <= cfg.Bandwidth/2 {
		return nil, fmt.Errorf("%w: center %v MHz, bandwidth %v MHz",
			ErrInvalidBand, cfg.CenterFreq.MHz(), cfg.Bandwidth.MHz())
	}
	data := make([][]float64, cfg.NumSegments)
	for i := range data {
		data[i] = make([]float64, cfg.NumSamples)
	}
	return &Baseband{data: data, center: cfg.CenterFreq, bw: cfg.Bandwidth, rate: cfg.SampleRate}, nil
}

// Data returns the sample matrix, one row per segment.
func (s *Baseband) Data() [][]float64 { return s.data }

// NumSegments returns the segment count.
func (s *Baseband) NumSegments() int { return len(s.data) }

// CenterFreq returns the band center.
func (s *Baseband) CenterFreq() units.Frequency { return s.center }

// Bandwidth returns the full bandwidth around the center frequency.
func (s *Baseband) Bandwidth() units.Frequency { return s.bw }

// SampleRate returns the sampling rate.
func (s *Baseband) SampleRate() units.Frequency { return s.rate }

// SampleInterval returns the time between consecutive samples.
func (s *Baseband) SampleInterval() units.Time { return s.rate.Interval() }
