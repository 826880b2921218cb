// Package units provides the scalar quantities shared by all pulsim packages.
//
// Each quantity is a float64 held in a single canonical unit (seconds, hertz,
// pc cm^-3) with explicit constructors and accessors for the units that
// appear in the pulsar literature. Conversions are exact scale factors, so
// quantities can be compared and combined without unit bookkeeping at the
// call site, in the same spirit as time.Duration.
package units

// Time is a time quantity stored in seconds.
type Time float64

// Seconds returns a Time of v seconds.
func Seconds(v float64) Time { return Time(v) }

// Milliseconds returns a Time of v milliseconds.
func Milliseconds(v float64) Time { return Time(v * 1e-3) }

// Microseconds returns a Time of v microseconds.
func Microseconds(v float64) Time { return Time(v * 1e-6) }

// Seconds returns the value in seconds.
func (t Time) Seconds() float64 { return float64(t) }

// Milliseconds returns the value in milliseconds.
func (t Time) Milliseconds() float64 { return float64(t) * 1e3 }

// Microseconds returns the value in microseconds.
func (t Time) Microseconds() float64 { return float64(t) * 1e6 }

// Frequency is a frequency quantity stored in hertz.
//
// It doubles as a sampling rate; Interval returns the corresponding sample
// interval.
type Frequency float64

// Hz returns a Frequency of v hertz.
func Hz(v float64) Frequency { return Frequency(v) }

// KHz returns a Frequency of v kilohertz.
func KHz(v float64) Frequency { return Frequency(v * 1e3) }

// MHz returns a Frequency of v megahertz.
func MHz(v float64) Frequency { return Frequency(v * 1e6) }

// GHz returns a Frequency of v gigahertz.
func GHz(v float64) Frequency { return Frequency(v * 1e9) }

// Hz returns the value in hertz.
func (f Frequency) Hz() float64 { return float64(f) }

// KHz returns the value in kilohertz.
func (f Frequency) KHz() float64 { return float64(f) * 1e-3 }

// MHz returns the value in megahertz.
func (f Frequency) MHz() float64 { return float64(f) * 1e-6 }

// GHz returns the value in gigahertz.
func (f Frequency) GHz() float64 { return float64(f) * 1e-9 }

// Interval returns 1/f as a Time. For a sampling rate this is the sample
// interval. Interval of a zero frequency is +Inf.
func (f Frequency) Interval() Time { return Time(1 / float64(f)) }

// DispersionMeasure is an integrated electron column density stored in
// pc cm^-3.
type DispersionMeasure float64

// PcPerCm3 returns a DispersionMeasure of v pc cm^-3.
func PcPerCm3(v float64) DispersionMeasure { return DispersionMeasure(v) }

// PcPerCm3 returns the value in pc cm^-3.
func (dm DispersionMeasure) PcPerCm3() float64 { return float64(dm) }
