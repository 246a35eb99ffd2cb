package waveform

import (
	"math"

	"github.com/edp1096/magcore/magerr"
)

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// isMonotoneIncreasing reports whether t is strictly increasing.
func isMonotoneIncreasing(t []float64) bool {
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return false
		}
	}
	return true
}

// StandardizeWaveform implements spec §4.1: the result covers exactly
// one period starting at t=0, has a sample count that is a power of two
// no smaller than minSamples, and a strictly increasing time vector. A
// missing time vector is treated as already uniformly sampled over one
// period (the common shape of simulated excitation data).
func StandardizeWaveform(signal Signal, frequency float64, minSamples int) (Signal, error) {
	if frequency <= 0 {
		return Signal{}, magerr.New(magerr.InvalidInput, "frequency must be positive")
	}
	if len(signal.Data) < 2 {
		return Signal{}, magerr.New(magerr.InvalidInput, "waveform must have at least two samples")
	}

	period := 1 / frequency

	time := signal.Time
	if len(time) != len(signal.Data) {
		time = make([]float64, len(signal.Data))
		step := period / float64(len(signal.Data))
		for i := range time {
			time[i] = float64(i) * step
		}
	} else if !isMonotoneIncreasing(time) {
		return Signal{}, magerr.New(magerr.InvalidInput, "waveform time must be strictly increasing")
	}

	targetSamples := nextPowerOfTwo(minSamples)
	if nextPowerOfTwo(len(signal.Data)) > targetSamples {
		targetSamples = nextPowerOfTwo(len(signal.Data))
	}

	standardized := Signal{
		Time: make([]float64, targetSamples),
		Data: make([]float64, targetSamples),
	}
	step := period / float64(targetSamples)
	for i := 0; i < targetSamples; i++ {
		t := float64(i) * step
		standardized.Time[i] = t
		standardized.Data[i] = periodicLinearInterp(time, signal.Data, t, period)
	}

	if !isMonotoneIncreasing(standardized.Time) || standardized.Time[0] != 0 {
		return Signal{}, magerr.New(magerr.InvalidInput, "standardized waveform failed its own invariants")
	}

	return standardized, nil
}

// periodicLinearInterp linearly interpolates data(time) at t, treating
// the signal as periodic with period `period`: querying past the last
// sample wraps back to the first.
func periodicLinearInterp(time, data []float64, t, period float64) float64 {
	n := len(time)
	if n == 1 {
		return data[0]
	}

	tMod := math.Mod(t, period)
	if tMod < 0 {
		tMod += period
	}

	if tMod <= time[0] {
		// Wrap segment between the last sample and the first (period later).
		t0, t1 := time[n-1]-period, time[0]
		if t1 == t0 {
			return data[0]
		}
		frac := (tMod - t0) / (t1 - t0)
		return data[n-1] + frac*(data[0]-data[n-1])
	}

	for i := 1; i < n; i++ {
		if tMod <= time[i] {
			frac := (tMod - time[i-1]) / (time[i] - time[i-1])
			return data[i-1] + frac*(data[i]-data[i-1])
		}
	}

	// tMod beyond the last sample: wrap to the first.
	t0, t1 := time[n-1], time[0]+period
	frac := (tMod - t0) / (t1 - t0)
	return data[n-1] + frac*(data[0]-data[n-1])
}
