package shift

import (
	"errors"
	"math"
	"testing"

	"github.com/pulsarkit/pulsim/internal/testutil"
	"github.com/pulsarkit/pulsim/units"
)

func TestApplyIntegerDelay(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		pos     int
		samples float64
		wantPos int
	}{
		{"pow2 forward", 64, 10, 3, 13},
		{"pow2 backward", 64, 10, -4, 6},
		{"pow2 wraparound", 64, 60, 8, 4},
		{"odd length forward", 101, 20, 5, 25},
		{"odd length backward", 101, 20, -5, 15},
		{"non-pow2 even", 100, 0, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := testutil.Impulse(tt.length, tt.pos)
			dt := units.Milliseconds(1)
			delay := units.Milliseconds(tt.samples)

			if err := Apply(row, delay, dt); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := testutil.Impulse(tt.length, tt.wantPos)
			testutil.RequireSliceNearlyEqual(t, row, want, 1e-9)
		})
	}
}

func TestApplyZeroDelayIsIdentity(t *testing.T) {
	row := testutil.DeterministicNoise(7, 1, 100)
	orig := append([]float64(nil), row...)

	if err := Apply(row, 0, units.Milliseconds(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, row, orig, 0)
}

func TestApplyTinyDelayIsStable(t *testing.T) {
	// A delay many orders of magnitude below the sample interval must not
	// blow up or visibly distort the row.
	row := testutil.DeterministicNoise(11, 1, 128)
	orig := append([]float64(nil), row...)

	if err := Apply(row, units.Seconds(1e-15), units.Milliseconds(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireFinite(t, row)
	testutil.RequireSliceNearlyEqual(t, row, orig, 1e-9)
}

func TestApplyFractionalDelayRoundTrip(t *testing.T) {
	// Fractional delays scale the Nyquist bin by cos(pi d) instead of
	// rotating it, so the round trip is exact only for rows without
	// Nyquist content.
	for _, length := range []int{64, 100, 101} {
		row := testutil.DeterministicNoise(3, 1, length)
		testutil.ZeroSelfConjugate(row)
		orig := append([]float64(nil), row...)
		dt := units.Milliseconds(1)

		if err := Apply(row, units.Microseconds(370), dt); err != nil {
			t.Fatalf("length %d: %v", length, err)
		}
		if err := Apply(row, units.Microseconds(-370), dt); err != nil {
			t.Fatalf("length %d: %v", length, err)
		}
		testutil.RequireSliceNearlyEqual(t, row, orig, 1e-9)
	}
}

func TestApplyDelayLargerThanRow(t *testing.T) {
	// Shifts beyond one row wrap circularly: a full-row delay is the
	// identity.
	row := testutil.Impulse(64, 5)
	want := append([]float64(nil), row...)

	if err := Apply(row, units.Milliseconds(64), units.Milliseconds(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, row, want, 1e-9)
}

func TestApplyStrategiesAgree(t *testing.T) {
	// The planned (power-of-two) and generic paths implement the same
	// phase ramp; fold the pow2 row through both and compare.
	rowPlanned := testutil.DeterministicNoise(5, 1, 128)
	rowGeneric := append([]float64(nil), rowPlanned...)
	d := 2.25

	if err := applyPlanned(rowPlanned, d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	applyReal(rowGeneric, d)

	testutil.RequireSliceNearlyEqual(t, rowPlanned, rowGeneric, 1e-9)
}

func TestApplyErrors(t *testing.T) {
	if err := Apply(nil, units.Milliseconds(1), units.Milliseconds(1)); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty row error = %v, want ErrEmptyInput", err)
	}
	if err := Apply([]float64{1, 2}, units.Milliseconds(1), 0); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("zero interval error = %v, want ErrInvalidInterval", err)
	}
	if err := Apply([]float64{1, 2}, units.Milliseconds(1), units.Seconds(-1)); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("negative interval error = %v, want ErrInvalidInterval", err)
	}
}

func TestApplyNyquistToneAttenuation(t *testing.T) {
	// A pure Nyquist tone delayed by d samples becomes the sampled values
	// of cos(pi (i - d)), which is the original tone scaled by cos(pi d).
	const n = 64
	const d = 0.37
	row := make([]float64, n)
	want := make([]float64, n)
	sign := 1.0
	for i := range row {
		row[i] = sign
		want[i] = sign * math.Cos(math.Pi*d)
		sign = -sign
	}

	if err := Apply(row, units.Microseconds(370), units.Milliseconds(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, row, want, 1e-9)
}

func TestApplyPreservesEnergy(t *testing.T) {
	// Phase rotation preserves energy bin by bin; only the cos scale on
	// the Nyquist bin can remove any, so strip that component first.
	row := testutil.DeterministicNoise(13, 1, 100)
	testutil.ZeroSelfConjugate(row)
	var before float64
	for _, v := range row {
		before += v * v
	}

	if err := Apply(row, units.Microseconds(512), units.Milliseconds(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var after float64
	for _, v := range row {
		after += v * v
	}
	if math.Abs(after-before) > 1e-9*before {
		t.Errorf("energy changed: before %v, after %v", before, after)
	}
}
