// Package config holds the recognised options the physical-model stack
// consumes (spec §6). It is a plain struct: loading it from a file or
// flags is out of scope, the caller's job.
package config

// CoreLossesModel selects the core-loss dispatch (spec §4.5).
type CoreLossesModel int

const (
	CoreLossesSteinmetz CoreLossesModel = iota
	CoreLossesIGSE
	CoreLossesMSE
	CoreLossesNSE
	CoreLossesAlbach
	CoreLossesBarg
	CoreLossesRoshen
	CoreLossesLossFactor
	CoreLossesProprietary
)

// GapReluctanceModel selects the air-gap reluctance dispatch (spec §4.3).
type GapReluctanceModel int

const (
	GapReluctanceZhang GapReluctanceModel = iota
	GapReluctancePartridge
	GapReluctanceEffectiveArea
	GapReluctanceEffectiveLength
	GapReluctanceMuehlethaler
	GapReluctanceStenglein
	GapReluctanceBalakrishnan
	GapReluctanceClassic
	GapReluctanceMcLyman
)

// GappingModel selects the physical gap distribution the
// gapping-from-turns-and-inductance search tries (spec §4.4).
type GappingModel int

const (
	GappingGround GappingModel = iota
	GappingSpacer
	GappingResidual
	GappingDistributed
)

// CoreTemperatureModel selects the thermal-resistance dispatch (spec §4.7).
type CoreTemperatureModel int

const (
	CoreTemperatureManiktala CoreTemperatureModel = iota
)

// Settings bundles every recognised configuration knob from spec §6.
type Settings struct {
	CoreLosses      CoreLossesModel
	GapReluctance   GapReluctanceModel
	CoreTemperature CoreTemperatureModel

	HarmonicAmplitudeThreshold          float64
	HarmonicAmplitudeThresholdQuickMode bool

	InputsNumberPointsSampledWaveforms int

	MagnetizingInductanceIncludeAirInductance bool
	MagneticFieldIncludeFringing               bool
}

// Default returns the Settings the stack uses when the caller has no
// opinion, mirroring the defaults called out in spec §4 and §6.
func Default() Settings {
	return Settings{
		CoreLosses:      CoreLossesSteinmetz,
		GapReluctance:   GapReluctanceZhang,
		CoreTemperature: CoreTemperatureManiktala,

		HarmonicAmplitudeThreshold:          5e-3,
		HarmonicAmplitudeThresholdQuickMode: false,

		InputsNumberPointsSampledWaveforms: 1024,

		MagnetizingInductanceIncludeAirInductance: false,
		MagneticFieldIncludeFringing:               true,
	}
}
