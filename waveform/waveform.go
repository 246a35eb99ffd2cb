// Package waveform is the waveform toolkit (spec §4.1, component C1):
// it normalises time-domain signals into a common representation and
// extracts their harmonic content, so every downstream physical model
// works against the same shape of data.
package waveform

// Signal is a sampled time-domain waveform. Time[0] must be 0 and Time
// must be strictly increasing once standardised.
type Signal struct {
	Time []float64
	Data []float64
}

// Harmonics is the frequency-domain view of a Signal produced by a real
// FFT: Frequencies[k] = k*f, DC at index 0.
type Harmonics struct {
	Frequencies []float64
	Amplitudes  []float64
	Phases      []float64
}

// Processed is the scalar summary of a Signal (spec §4.1).
type Processed struct {
	Label        string
	Peak         float64
	PeakToPeak   float64
	Offset       float64
	RMS          float64
	DutyCycle    float64
}
