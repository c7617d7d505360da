package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsquie/jdsp/internal/testutil"
)

func TestKaiser(t *testing.T) {
	expected := []float64{
		0.78984831, 0.86980546, 0.93237871, 0.97536552, 0.99724655,
		0.99724655, 0.97536552, 0.93237871, 0.86980546, 0.78984831,
	}

	got := Kaiser(10, 1.0)

	testutil.AssertMatchesTable(t, expected, got, testutil.DesignTolerance)
	testutil.AssertSymmetric(t, got, testutil.DefaultTolerance)
}

func TestHann(t *testing.T) {
	expected := []float64{
		0, 0.11697778, 0.41317591, 0.75, 0.96984631,
		0.96984631, 0.75, 0.41317591, 0.11697778, 0,
	}

	got := Hann(10)

	testutil.AssertMatchesTable(t, expected, got, testutil.DesignTolerance)
	testutil.AssertSymmetric(t, got, testutil.DefaultTolerance)
}

func TestSinc(t *testing.T) {
	expected := []float64{
		1.27323954e-01, 0, -2.12206591e-01, 0, 6.36619772e-01,
		1.0,
		6.36619772e-01, 0, -2.12206591e-01, 0, 1.27323954e-01,
	}

	got := Sinc(11, 0.5)

	require.Len(t, got, 11)
	testutil.AssertMatchesTable(t, expected, got, testutil.DesignTolerance)
	assert.Equal(t, 1.0, got[5], "center sample must be exactly 1")
}

func TestHalfbandTapsDefault(t *testing.T) {
	// Even-index taps of the 63-tap design; every odd-index tap except the
	// center is an exact zero of the half-rate sinc.
	expectedEven := []float64{
		0, 3.02847249e-07, -4.27782121e-06, 2.51688452e-05,
		-9.81020621e-05, 2.97363887e-04, -7.57236871e-04, 1.69370522e-03,
		-3.42579205e-03, 6.40195196e-03, -1.12548285e-02, 1.89561539e-02,
		-3.13042338e-02, 5.26963461e-02, -9.91563379e-02, 3.15929813e-01,
		3.15929813e-01, -9.91563379e-02, 5.26963461e-02, -3.13042338e-02,
		1.89561539e-02, -1.12548285e-02, 6.40195196e-03, -3.42579205e-03,
		1.69370522e-03, -7.57236871e-04, 2.97363887e-04, -9.81020621e-05,
		2.51688452e-05, -4.27782121e-06, 3.02847249e-07, 0,
	}

	taps, err := HalfbandTaps(DefaultHalfbandTaps, DefaultKaiserBeta)
	require.NoError(t, err)
	require.Len(t, taps, DefaultHalfbandTaps)

	even := make([]float64, 0, len(expectedEven))
	for i := 0; i < len(taps); i += 2 {
		even = append(even, taps[i])
	}
	testutil.AssertMatchesTable(t, expectedEven, even, testutil.DesignTolerance)

	// Odd-offset taps vanish and the center carries exactly half the gain.
	for i := 1; i < len(taps); i += 2 {
		if i == len(taps)/2 {
			continue
		}
		assert.InDelta(t, 0.0, taps[i], testutil.DesignTolerance, "odd tap %d", i)
	}
	assert.InDelta(t, 0.5, taps[len(taps)/2], testutil.DesignTolerance)

	testutil.AssertSymmetric(t, taps, testutil.DefaultTolerance)
	testutil.AssertDCGain(t, taps, 1.0, testutil.DefaultTolerance)
	testutil.AssertCenterIsMax(t, taps)
}

func TestHalfbandTapsOtherLengths(t *testing.T) {
	for _, length := range []int{7, 31, 127} {
		taps, err := HalfbandTaps(length, DefaultKaiserBeta)
		require.NoError(t, err, "length %d", length)
		require.Len(t, taps, length)

		testutil.AssertSymmetric(t, taps, testutil.DefaultTolerance)
		testutil.AssertDCGain(t, taps, 1.0, testutil.DefaultTolerance)
		assert.InDelta(t, 0.5, taps[length/2], 1e-3, "length %d center", length)
	}
}

func TestHalfbandTapsRejectsBadLengths(t *testing.T) {
	_, err := HalfbandTaps(5, DefaultKaiserBeta)
	assert.ErrorIs(t, err, ErrInvalidSize, "too short")

	_, err = HalfbandTaps(64, DefaultKaiserBeta)
	assert.ErrorIs(t, err, ErrInvalidSize, "even length")
}

func TestDefault(t *testing.T) {
	taps := Default()
	require.Len(t, taps, DefaultHalfbandTaps)
	testutil.AssertDCGain(t, taps, 1.0, testutil.DefaultTolerance)
}
