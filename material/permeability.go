package material

import (
	"fmt"
	"math"

	"github.com/edp1096/magcore/internal/constants"
	"github.com/edp1096/magcore/magerr"
)

// InitialPermeability implements spec §4.2: default is the material's
// stated initial permeability; a temperature curve replaces it if the
// material carries one; a frequency curve applies a ratio correction if
// the material carries one; a DC-bias curve, if the material carries
// one, replaces the result with its own value, clamped to >= 1.
func InitialPermeability(m CoreMaterial, temperature float64, hDCBias *float64, frequency *float64) (float64, error) {
	value := m.InitialPermeability

	if len(m.PermeabilityVsTemperature) > 0 {
		var err error
		value, err = evaluate(m.Name+"#mu_T", m.PermeabilityVsTemperature, temperature)
		if err != nil {
			return 0, err
		}
	}

	if frequency != nil && len(m.PermeabilityVsFrequency) > 0 {
		ratio, err := evaluate(m.Name+"#mu_f", m.PermeabilityVsFrequency, *frequency)
		if err != nil {
			return 0, err
		}
		value *= ratio
	}

	if hDCBias != nil && len(m.PermeabilityVsDCBias) > 0 {
		biased, err := evaluate(m.Name+"#mu_H", m.PermeabilityVsDCBias, *hDCBias)
		if err != nil {
			return 0, err
		}
		value = math.Max(1, biased)
	}

	if math.IsNaN(value) {
		return 0, magerr.New(magerr.CalculationNaNResult, "initial permeability evaluated to NaN")
	}
	return value, nil
}

// SaturationFluxDensity implements spec §4.2: a spline over temperature
// samples, optionally de-rated by constants.DefaultSaturationProportion
// when proportion is requested.
func SaturationFluxDensity(m CoreMaterial, temperature float64, proportion bool) (float64, error) {
	if len(m.SaturationFluxDensityVsTemperature) == 0 {
		return 0, magerr.Newf(magerr.MaterialDataMissing, "material %q has no saturation flux density curve", m.Name)
	}
	value, err := evaluate(m.Name+"#bsat_T", m.SaturationFluxDensityVsTemperature, temperature)
	if err != nil {
		return 0, err
	}
	if proportion {
		value *= constants.DefaultSaturationProportion
	}
	return value, nil
}

// Resistivity implements spec §4.2: a spline over temperature samples.
func Resistivity(m CoreMaterial, temperature float64) (float64, error) {
	if len(m.ResistivityVsTemperature) == 0 {
		return 0, magerr.Newf(magerr.MaterialDataMissing, "material %q has no resistivity curve", m.Name)
	}
	return evaluate(m.Name+"#rho_T", m.ResistivityVsTemperature, temperature)
}

// HasFrequencyDependentPermeability reports whether the material
// carries a permeability-vs-frequency curve, the precondition for
// synthesising complex permeability from it (spec §4.2).
func HasFrequencyDependentPermeability(m CoreMaterial) bool {
	return len(m.PermeabilityVsFrequency) >= 2
}

// FrequencyForPermeabilityDrop searches the material's permeability-vs-
// frequency ratio curve for the frequency at which the ratio first
// drops to the given fraction of its DC value (1.0 at f=0). This is the
// reference frequency the complex-permeability synthesis normalises
// against (supplemented from original_source:
// InitialPermeability::calculate_frequency_for_initial_permeability_drop,
// not spelled out by spec.md's distillation).
func FrequencyForPermeabilityDrop(m CoreMaterial, ratio float64) (float64, error) {
	curve := m.PermeabilityVsFrequency
	if len(curve) < 2 {
		return 0, magerr.Newf(magerr.MaterialDataMissing, "material %q has no frequency-dependent permeability curve", m.Name)
	}
	xs, ys := dedupeSorted(curve)
	for i := 1; i < len(xs); i++ {
		if ys[i-1] >= ratio && ys[i] < ratio {
			// Linear interpolation between the bracketing samples.
			t := (ratio - ys[i-1]) / (ys[i] - ys[i-1])
			return xs[i-1] + t*(xs[i]-xs[i-1]), nil
		}
	}
	return xs[len(xs)-1], nil
}

// ComplexPermeability implements spec §4.2: returns (real, imaginary)
// permeability at frequency. If the material declares a complex curve
// directly, it is splined; otherwise, if the material has a frequency-
// dependent initial permeability, the standard eddy-current model is
// used to synthesise one.
func ComplexPermeability(m CoreMaterial, frequency float64) (real float64, imag float64, err error) {
	if m.Complex != nil {
		realValue, err := evaluate(m.Name+"#mu_complex_re", m.Complex.Real, frequency)
		if err != nil {
			return 0, 0, err
		}
		imagValue, err := evaluate(m.Name+"#mu_complex_im", m.Complex.Imaginary, frequency)
		if err != nil {
			return 0, 0, err
		}
		return math.Max(1, realValue), imagValue, nil
	}

	if !HasFrequencyDependentPermeability(m) {
		return 0, 0, magerr.Newf(magerr.MaterialDataMissing, "material %q has no complex permeability data", m.Name)
	}

	referenceFrequency, err := FrequencyForPermeabilityDrop(m, 0.6778)
	if err != nil {
		return 0, 0, err
	}
	if referenceFrequency <= 0 {
		return 0, 0, magerr.New(magerr.CalculationNaNResult, "reference frequency for complex permeability synthesis is non-positive")
	}

	x := frequency / referenceFrequency
	sqrtX := math.Sqrt(x)
	sinTerm := math.Sin(2 * sqrtX)
	sinhTerm := math.Sinh(2 * sqrtX)
	cosTerm := math.Cos(2 * sqrtX)
	coshTerm := math.Cosh(2 * sqrtX)
	denominator := 2 * sqrtX * (cosTerm + coshTerm)

	if denominator == 0 || math.IsNaN(denominator) {
		return 0, 0, magerr.New(magerr.CalculationNaNResult, fmt.Sprintf("complex permeability synthesis denominator invalid at f=%g", frequency))
	}

	muReal := (sinTerm + sinhTerm) / denominator
	muImag := -(sinTerm - sinhTerm) / denominator

	real = math.Max(1, m.InitialPermeability*muReal)
	imag = m.InitialPermeability * muImag

	if math.IsNaN(real) || math.IsNaN(imag) {
		return 0, 0, magerr.New(magerr.CalculationNaNResult, "synthesised complex permeability is NaN")
	}
	return real, imag, nil
}
