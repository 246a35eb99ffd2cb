// Package material exposes physical properties of core materials as
// pure functions of (material, temperature, bias?, frequency?), per
// spec §4.2. The core never opens the material database itself; callers
// resolve a name to a CoreMaterial via their own lookup and pass the
// struct in here.
package material

// Point is one (x, y) sample of a material curve.
type Point struct {
	X, Y float64
}

// SteinmetzRange is one frequency range's fitted (or declared)
// Steinmetz-family coefficients (spec §4.5).
type SteinmetzRange struct {
	MinimumFrequency float64
	MaximumFrequency float64
	K, Alpha, Beta   float64
	Ct0, Ct1, Ct2     float64 // temperature polynomial coefficients; Ct0 defaults to 1
	HasTemperatureCoefficients bool
}

// ProprietaryCoefficients holds the per-manufacturer closed-form
// coefficients named in spec §6.
type ProprietaryCoefficients struct {
	Manufacturer string // "Micrometals", "Magnetics", "Poco", "TDG", "Magnetec"
	A, B, C, D   float64
}

// ComplexPermeabilityData is the material's declared (real, imaginary)
// permeability-vs-frequency curve, when available directly rather than
// synthesised from the frequency-dependent initial permeability.
type ComplexPermeabilityData struct {
	Real      []Point
	Imaginary []Point
}

// CoreMaterial is the resolved material record the physical-model stack
// consumes. Every curve is optional; operations that need a missing
// curve fail with MATERIAL_DATA_MISSING.
type CoreMaterial struct {
	Name string

	InitialPermeability float64 // DC, room-temperature default
	PermeabilityVsTemperature []Point
	PermeabilityVsFrequency   []Point // ratio relative to InitialPermeability
	PermeabilityVsDCBias      []Point // H (A/m) -> permeability, clamped >= 1

	SaturationFluxDensityVsTemperature []Point // Tesla

	ResistivityVsTemperature []Point // Ohm*m

	Complex *ComplexPermeabilityData

	// Roshen hysteresis-loop parameters (spec §4.5 ROSHEN).
	CoerciveForce           float64 // A/m
	RemanenceFlux           float64 // Tesla
	SaturationFlux          float64 // Tesla, B_sat used by the hysteresis-loop builder
	SaturationFieldStrength float64 // A/m, H_sat paired with SaturationFlux
	ExcessLossFactor        float64 // N0 in the excess-loss term

	CoreLossesMethod      string // "STEINMETZ", "IGSE", ..., see config.CoreLossesModel
	SteinmetzCoefficients []SteinmetzRange
	VolumetricLossSamples []VolumetricLossPoint // used to fit missing Steinmetz coefficients
	Proprietary           *ProprietaryCoefficients

	LossTangent *LossTangentData // for LOSS_FACTOR method
}

// VolumetricLossPoint is one measured (frequency, B_peak, temperature) ->
// volumetric-loss sample used by the Steinmetz fitter.
type VolumetricLossPoint struct {
	Frequency        float64
	MagneticFluxDensityPeak float64
	Temperature      float64
	VolumetricLosses float64
}

// LossTangentData is tan(delta) as a function of frequency, used by the
// LOSS_FACTOR core-loss model.
type LossTangentData struct {
	VsFrequency []Point
}
