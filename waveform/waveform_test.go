package waveform_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/magcore/waveform"
)

func sineWave(amplitude, frequency float64, samples int) waveform.Signal {
	period := 1 / frequency
	signal := waveform.Signal{Time: make([]float64, samples), Data: make([]float64, samples)}
	for i := 0; i < samples; i++ {
		t := period * float64(i) / float64(samples)
		signal.Time[i] = t
		signal.Data[i] = amplitude * math.Sin(2*math.Pi*frequency*t)
	}
	return signal
}

func TestProcessSignalSine(t *testing.T) {
	signal := sineWave(10, 1000, 256)
	processed := waveform.ProcessSignal(signal, "magnetic_flux_density")

	assert.InDelta(t, 0, processed.Offset, 1e-9)
	assert.InDelta(t, 10, processed.Peak, 1e-9)
	assert.InDelta(t, 20, processed.PeakToPeak, 1e-9)
	assert.InDelta(t, 10/math.Sqrt2, processed.RMS, 1e-2)
}

func TestStandardizeWaveformPowerOfTwo(t *testing.T) {
	signal := sineWave(1, 1000, 100) // not already a power of two
	standardized, err := waveform.StandardizeWaveform(signal, 1000, 64)
	require.NoError(t, err)

	assert.Equal(t, 128, len(standardized.Data)) // nextPowerOfTwo(100) = 128
	assert.Equal(t, float64(0), standardized.Time[0])
	for i := 1; i < len(standardized.Time); i++ {
		assert.Greater(t, standardized.Time[i], standardized.Time[i-1])
	}
}

func TestStandardizeWaveformRejectsNonPositiveFrequency(t *testing.T) {
	signal := sineWave(1, 1000, 64)
	_, err := waveform.StandardizeWaveform(signal, 0, 64)
	assert.Error(t, err)
}

func TestCalculateHarmonicsDataFundamental(t *testing.T) {
	const frequency = 1000.0
	signal := sineWave(5, frequency, 256)
	standardized, err := waveform.StandardizeWaveform(signal, frequency, 256)
	require.NoError(t, err)

	harmonics, err := waveform.CalculateHarmonicsData(standardized, frequency)
	require.NoError(t, err)

	assert.InDelta(t, 0, harmonics.Frequencies[0], 1e-9)
	assert.InDelta(t, frequency, harmonics.Frequencies[1], 1e-9)
	assert.InDelta(t, 5, harmonics.Amplitudes[1], 1e-2)
	for k := 2; k < 10; k++ {
		assert.Less(t, harmonics.Amplitudes[k], 0.1)
	}
}

func TestCalculateHarmonicsDataRejectsNonPowerOfTwo(t *testing.T) {
	signal := waveform.Signal{Time: []float64{0, 1, 2}, Data: []float64{0, 1, 0}}
	_, err := waveform.CalculateHarmonicsData(signal, 1)
	assert.Error(t, err)
}

func TestAmplitudeAboveThreshold(t *testing.T) {
	h := waveform.Harmonics{Amplitudes: []float64{1, 10, 1, 0.05}}
	keep := waveform.AmplitudeAboveThreshold(h, 0.1)
	assert.Equal(t, []bool{true, true, true, false}, keep)
}
