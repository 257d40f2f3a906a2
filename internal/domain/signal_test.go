package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSignalFirstWindow(t *testing.T) {
	closes := []float64{10, 12, 14, 16, 18, 99}
	sig, err := ComputeSignal(closes, 5, 5, 3)
	require.NoError(t, err)

	// mean of the first 5 valid closes, not the trailing ones
	assert.InDelta(t, 14.0, sig.Mean, 1e-9)
	assert.InDelta(t, 14.0*0.95, sig.BuyThreshold, 1e-9)
	assert.InDelta(t, 14.0*1.03, sig.SellThreshold, 1e-9)
}

func TestComputeSignalSkipsInvalidRuns(t *testing.T) {
	// the NaN breaks the first run; the window anchors after it
	closes := []float64{10, 12, math.NaN(), 20, 20, 20, 20, 20}
	sig, err := ComputeSignal(closes, 5, 5, 3)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, sig.Mean, 1e-9)
}

func TestComputeSignalInsufficientHistory(t *testing.T) {
	cases := [][]float64{
		nil,
		{10, 11},
		{10, math.NaN(), 11, math.NaN(), 12, math.NaN(), 13},
	}
	for _, closes := range cases {
		_, err := ComputeSignal(closes, 5, 5, 3)
		assert.ErrorIs(t, err, ErrInsufficientHistory)
	}
}

func TestComputeSignalRejectsNonPositiveWindow(t *testing.T) {
	_, err := ComputeSignal([]float64{1, 2, 3}, 0, 5, 3)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestROI(t *testing.T) {
	roi, err := ROI(100, 103)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, roi, 1e-9)

	roi, err = ROI(100, 95)
	require.NoError(t, err)
	assert.InDelta(t, -5.0, roi, 1e-9)
}

func TestROIZeroPrice(t *testing.T) {
	roi, err := ROI(0, 103)
	assert.ErrorIs(t, err, ErrZeroPrice)
	assert.Zero(t, roi)
}
