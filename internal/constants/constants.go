// Package constants holds the physical and numerical constants shared by
// every layer of the physical-model stack.
package constants

import "math"

const (
	// VacuumPermeability is mu0, in H/m.
	VacuumPermeability = 4 * math.Pi * 1e-7

	// ResidualGap is the default minimum length given to a RESIDUAL gap
	// when no explicit length is supplied, in meters.
	ResidualGap = 5e-6

	// SpacerProtrudingPercentage is the fraction by which a spacer gap is
	// allowed to protrude past the column it sits on.
	SpacerProtrudingPercentage = 0.02

	// RoshenMagneticFieldStrengthStep is a field-strength step, in A/m,
	// for walking the Roshen hysteresis loop; the Roshen loop integration
	// in package coreloss takes a fixed 500 steps and does not read it.
	RoshenMagneticFieldStrengthStep = 1.0

	// MinimumDistributedFringingFactor / MaximumDistributedFringingFactor
	// bound each segment's fringing factor when the distributed-gap
	// solver adapts the number of segments.
	MinimumDistributedFringingFactor = 1.01
	MaximumDistributedFringingFactor = 1.15

	// DefaultSaturationProportion is applied to saturation_flux_density
	// when the caller asks for a de-rated (proportional) value.
	DefaultSaturationProportion = 0.9

	// DefaultHarmonicAmplitudeThreshold is the ratio, relative to the
	// largest non-DC harmonic amplitude, below which a harmonic may be
	// dropped in quick mode.
	DefaultHarmonicAmplitudeThreshold = 5e-3

	// DefaultNumberPointsSampledWaveforms is 2^M, M=10.
	DefaultNumberPointsSampledWaveforms = 1024

	// AmbientTemperature is the default ambient temperature, Celsius.
	AmbientTemperature = 25.0

	// CoreAdviserFrequencyReference is the frequency used when no
	// operating point is supplied to a reluctance/inductance query.
	CoreAdviserFrequencyReference = 100000.0

	// InitialGapLengthForSearching is the first step size the gap-length
	// binary search takes, in meters, before it starts halving.
	InitialGapLengthForSearching = 1e-3
)
