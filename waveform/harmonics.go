package waveform

import (
	"math"

	"github.com/edp1096/magcore/magerr"
	"gonum.org/v1/gonum/dsp/fourier"
)

// CalculateHarmonicsData implements spec §4.1: a real FFT of the
// sampled waveform, returning frequencies k*f, amplitudes, and phases,
// with DC at index 0. sampled must already be standardized (power-of-
// two length).
func CalculateHarmonicsData(sampled Signal, frequency float64) (Harmonics, error) {
	n := len(sampled.Data)
	if n == 0 || n&(n-1) != 0 {
		return Harmonics{}, magerr.New(magerr.InvalidInput, "waveform length must be a power of two")
	}

	fft := fourier.NewFFT(n)
	coefficients := fft.Coefficients(nil, sampled.Data)

	bins := len(coefficients) // n/2 + 1
	frequencies := make([]float64, bins)
	amplitudes := make([]float64, bins)
	phases := make([]float64, bins)

	for k, c := range coefficients {
		frequencies[k] = float64(k) * frequency
		magnitude := math.Hypot(real(c), imag(c)) / float64(n)
		if k != 0 && !(n%2 == 0 && k == bins-1) {
			magnitude *= 2
		}
		amplitudes[k] = magnitude
		phases[k] = math.Atan2(imag(c), real(c))
	}

	return Harmonics{Frequencies: frequencies, Amplitudes: amplitudes, Phases: phases}, nil
}

// Reconstruct synthesises a time-domain Signal of length numSamples
// over one period (1/fundamentalFrequency) from a set of harmonics,
// used to validate the round-trip invariant of spec §8: reconstruct
// (harmonics(waveform)) ~= waveform within the configured threshold.
func Reconstruct(h Harmonics, fundamentalFrequency float64, numSamples int) Signal {
	period := 1 / fundamentalFrequency
	signal := Signal{Time: make([]float64, numSamples), Data: make([]float64, numSamples)}
	step := period / float64(numSamples)

	for i := 0; i < numSamples; i++ {
		t := float64(i) * step
		signal.Time[i] = t
		sum := 0.0
		for k := range h.Frequencies {
			omega := 2 * math.Pi * h.Frequencies[k] * t
			sum += h.Amplitudes[k] * math.Cos(omega+h.Phases[k])
		}
		signal.Data[i] = sum
	}
	return signal
}

// AmplitudeAboveThreshold reports which harmonics reach at least ratio
// times the largest non-DC amplitude, the "quick mode" drop rule of
// spec §4.1.
func AmplitudeAboveThreshold(h Harmonics, ratio float64) []bool {
	keep := make([]bool, len(h.Amplitudes))
	largest := 0.0
	for k := 1; k < len(h.Amplitudes); k++ {
		if h.Amplitudes[k] > largest {
			largest = h.Amplitudes[k]
		}
	}
	for k := range h.Amplitudes {
		if k == 0 {
			keep[k] = true
			continue
		}
		keep[k] = largest == 0 || h.Amplitudes[k] >= ratio*largest
	}
	return keep
}
