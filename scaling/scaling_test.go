package scaling

import (
	"errors"
	"math"
	"testing"

	"github.com/pulsarkit/pulsim/phys"
	"github.com/pulsarkit/pulsim/units"
)

func TestScintBandwidthKolmogorov(t *testing.T) {
	// For beta = 11/3 the exponent is 22/5, so doubling the frequency
	// scales the bandwidth by 2^(22/5).
	got, err := ScintBandwidth(units.MHz(1), units.MHz(1000), units.MHz(2000), phys.KolmogorovBeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Pow(2, 22.0/5)
	if math.Abs(got.MHz()-want) > 1e-12 {
		t.Errorf("ScintBandwidth = %v MHz, want %v", got.MHz(), want)
	}
}

func TestScintTimescaleKolmogorov(t *testing.T) {
	// Exponent 2/(beta-2) = 6/5 for a Kolmogorov medium.
	got, err := ScintTimescale(units.Seconds(100), units.MHz(1000), units.MHz(2000), phys.KolmogorovBeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 100 * math.Pow(2, 6.0/5)
	if math.Abs(got.Seconds()-want) > 1e-10 {
		t.Errorf("ScintTimescale = %v s, want %v", got.Seconds(), want)
	}
}

func TestScatterTimescaleShrinksWithFrequency(t *testing.T) {
	tau := units.Microseconds(50)
	hi, err := ScatterTimescale(tau, units.MHz(1000), units.MHz(2000), phys.KolmogorovBeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lo, err := ScatterTimescale(tau, units.MHz(1000), units.MHz(500), phys.KolmogorovBeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(hi < tau && tau < lo) {
		t.Errorf("scattering timescale should fall with frequency: lo=%v tau=%v hi=%v",
			lo.Microseconds(), tau.Microseconds(), hi.Microseconds())
	}
	want := tau.Seconds() * math.Pow(2, -22.0/5)
	if math.Abs(hi.Seconds()-want) > 1e-18 {
		t.Errorf("ScatterTimescale = %v s, want %v", hi.Seconds(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	betas := []float64{3.0, phys.KolmogorovBeta, 3.9, 4.5, 5.5}
	f1 := units.MHz(820)
	f2 := units.MHz(1400)

	for _, beta := range betas {
		there, err := ScatterTimescale(units.Milliseconds(3), f1, f2, beta)
		if err != nil {
			t.Fatalf("beta=%v: %v", beta, err)
		}
		back, err := ScatterTimescale(there, f2, f1, beta)
		if err != nil {
			t.Fatalf("beta=%v: %v", beta, err)
		}
		if math.Abs(back.Milliseconds()-3) > 1e-12 {
			t.Errorf("beta=%v: round trip = %v ms, want 3", beta, back.Milliseconds())
		}

		dnu, err := ScintBandwidth(units.KHz(20), f1, f2, beta)
		if err != nil {
			t.Fatalf("beta=%v: %v", beta, err)
		}
		dnuBack, err := ScintBandwidth(dnu, f2, f1, beta)
		if err != nil {
			t.Fatalf("beta=%v: %v", beta, err)
		}
		if math.Abs(dnuBack.KHz()-20) > 1e-9 {
			t.Errorf("beta=%v: bandwidth round trip = %v kHz, want 20", beta, dnuBack.KHz())
		}
	}
}

func TestCriticalBeta(t *testing.T) {
	if _, err := ScintBandwidth(units.MHz(1), units.MHz(1000), units.MHz(2000), 4); !errors.Is(err, ErrCriticalBeta) {
		t.Errorf("ScintBandwidth(beta=4) error = %v, want ErrCriticalBeta", err)
	}
	if _, err := ScintTimescale(units.Seconds(1), units.MHz(1000), units.MHz(2000), 4); !errors.Is(err, ErrCriticalBeta) {
		t.Errorf("ScintTimescale(beta=4) error = %v, want ErrCriticalBeta", err)
	}
	if _, err := ScatterTimescale(units.Seconds(1), units.MHz(1000), units.MHz(2000), 4); !errors.Is(err, ErrCriticalBeta) {
		t.Errorf("ScatterTimescale(beta=4) error = %v, want ErrCriticalBeta", err)
	}
	if _, err := ScatterTimescaleAcross(units.Seconds(1), units.MHz(1000), []units.Frequency{units.MHz(1200)}, 4); !errors.Is(err, ErrCriticalBeta) {
		t.Errorf("ScatterTimescaleAcross(beta=4) error = %v, want ErrCriticalBeta", err)
	}
}

func TestScatterTimescaleAcross(t *testing.T) {
	freqs := []units.Frequency{units.MHz(1200), units.MHz(1300), units.MHz(1400), units.MHz(1500)}
	tau := units.Microseconds(100)
	ref := units.MHz(1400)

	got, err := ScatterTimescaleAcross(tau, ref, freqs, phys.KolmogorovBeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(freqs) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(freqs))
	}
	for i, f := range freqs {
		want, err := ScatterTimescale(tau, ref, f, phys.KolmogorovBeta)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(got[i].Seconds()-want.Seconds()) > 1e-18 {
			t.Errorf("channel %d: got %v, want %v", i, got[i], want)
		}
	}
	// At the reference frequency the timescale is unchanged.
	if math.Abs(got[2].Microseconds()-100) > 1e-9 {
		t.Errorf("reference channel = %v us, want 100", got[2].Microseconds())
	}
	// Lower frequencies scatter more.
	for i := 1; i < len(got); i++ {
		if !(got[i] < got[i-1]) {
			t.Errorf("timescales should decrease with frequency: %v", got)
		}
	}
}

func TestBadReferenceFrequency(t *testing.T) {
	for _, from := range []units.Frequency{0, units.MHz(-1)} {
		if _, err := ScintBandwidth(units.MHz(1), from, units.MHz(1400), phys.KolmogorovBeta); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("ScintBandwidth(from=%v) error = %v, want ErrInvalidReference", from, err)
		}
		if _, err := ScintTimescale(units.Seconds(1), from, units.MHz(1400), phys.KolmogorovBeta); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("ScintTimescale(from=%v) error = %v, want ErrInvalidReference", from, err)
		}
		if _, err := ScatterTimescale(units.Seconds(1), from, units.MHz(1400), phys.KolmogorovBeta); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("ScatterTimescale(from=%v) error = %v, want ErrInvalidReference", from, err)
		}
		if _, err := ScatterTimescaleAcross(units.Seconds(1), from, []units.Frequency{units.MHz(1400)}, phys.KolmogorovBeta); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("ScatterTimescaleAcross(from=%v) error = %v, want ErrInvalidReference", from, err)
		}
	}
}
