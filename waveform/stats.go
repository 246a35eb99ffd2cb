package waveform

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ProcessSignal implements spec §4.1's `processed(signal)`: offset is
// the mean, peak is the sample maximum, peak-to-peak is max-min, RMS is
// the L2 norm normalised by sample count, and duty_cycle is the
// fraction of samples above the offset when label suggests a
// rectangular-like waveform.
func ProcessSignal(signal Signal, label string) Processed {
	data := signal.Data
	offset := stat.Mean(data, nil)
	peak := floats.Max(data)
	trough := floats.Min(data)

	sumSquares := 0.0
	above := 0
	for _, v := range data {
		sumSquares += v * v
		if v > offset {
			above++
		}
	}
	rms := 0.0
	if len(data) > 0 {
		rms = math.Sqrt(sumSquares / float64(len(data)))
	}

	dutyCycle := 0.0
	if isRectangularLabel(label) && len(data) > 0 {
		dutyCycle = float64(above) / float64(len(data))
	}

	return Processed{
		Label:      label,
		Peak:       peak,
		PeakToPeak: peak - trough,
		Offset:     offset,
		RMS:        rms,
		DutyCycle:  dutyCycle,
	}
}

func isRectangularLabel(label string) bool {
	l := strings.ToLower(label)
	return strings.Contains(l, "square") || strings.Contains(l, "rectangular") || strings.Contains(l, "pwm") || strings.Contains(l, "flyback") || strings.Contains(l, "forward")
}

