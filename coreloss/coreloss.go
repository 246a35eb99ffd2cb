// Package coreloss is the core-loss engine (spec §4.5, component C5):
// volumetric or mass losses from a material, an excitation, and a
// temperature, dispatched across the Steinmetz family, Roshen, the
// loss-factor model, and per-manufacturer proprietary fits. Grounded on
// _examples/original_source/src/physical_models/CoreLosses.cpp.
package coreloss

import (
	"math"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/model"
	"github.com/edp1096/magcore/waveform"
)

// Excitation is the piece of an operating point the core-loss engine
// needs: a magnetic-flux-density waveform plus the exciting frequency.
type Excitation struct {
	MagneticFluxDensity waveform.Signal
	Frequency           float64
}

// Geometry is the subset of a core's processed description the
// volumetric-to-total conversion and the Roshen model need. Mass is
// only required by mass-loss proprietary formulas (Magnetec).
type Geometry struct {
	EffectiveVolume float64
	ColumnArea      float64
	Mass            float64
}

// CoreLosses implements spec §4.5's dispatch: modelKind selects the
// model; the material's CoreLossesMethod field is not consulted. The
// result always reports CoreLosses in watts, with VolumetricLosses and
// the loop's B(t) waveform attached when the model computed them.
func CoreLosses(m material.CoreMaterial, modelKind config.CoreLossesModel, excitation Excitation, temperature float64, geometry Geometry) (model.CoreLossesOutput, error) {
	processed := waveform.ProcessSignal(excitation.MagneticFluxDensity, "magnetic_flux_density")
	bPeak := processed.PeakToPeak / 2
	bAC := bPeak // without a separately decomposed AC component, peak-of-AC == peak.

	var volumetric float64
	var hysteresis, eddy *float64
	var err error

	switch modelKind {
	case config.CoreLossesSteinmetz:
		volumetric, err = Steinmetz(m, excitation.Frequency, bPeak, bAC, temperature)
	case config.CoreLossesIGSE:
		volumetric, err = IGSE(m, excitation.MagneticFluxDensity, excitation.Frequency, temperature)
	case config.CoreLossesMSE:
		volumetric, err = MSE(m, excitation.MagneticFluxDensity, excitation.Frequency, temperature)
	case config.CoreLossesNSE:
		volumetric, err = NSE(m, excitation.MagneticFluxDensity, excitation.Frequency, temperature)
	case config.CoreLossesAlbach:
		volumetric, err = Albach(m, excitation.MagneticFluxDensity, excitation.Frequency, temperature)
	case config.CoreLossesBarg:
		volumetric, err = Barg(m, excitation.MagneticFluxDensity, excitation.Frequency, temperature, processed.DutyCycle)
	case config.CoreLossesRoshen:
		var h, e float64
		h, e, err = Roshen(m, excitation.MagneticFluxDensity, excitation.Frequency, geometry)
		hysteresis, eddy = &h, &e
		volumetric = h + e
	case config.CoreLossesLossFactor:
		volumetric, err = 0, magerr.New(magerr.InvalidInput, "LOSS_FACTOR core losses require an RMS current and magnetizing inductance; use LossFactorLosses directly")
	case config.CoreLossesProprietary:
		volumetric, err = Proprietary(m, excitation.Frequency, bPeak)
	default:
		return model.CoreLossesOutput{}, magerr.New(magerr.ModelNotAvailable, "unknown core losses model")
	}
	if err != nil {
		return model.CoreLossesOutput{}, err
	}
	if math.IsNaN(volumetric) {
		return model.CoreLossesOutput{}, magerr.New(magerr.CalculationNaNResult, "core losses evaluated to NaN")
	}

	// Magnetec's proprietary formula is a mass-loss density (W/kg), not
	// a volumetric one; every other model reports W/m^3.
	isMassLoss := modelKind == config.CoreLossesProprietary && m.Proprietary != nil && m.Proprietary.Manufacturer == "Magnetec"

	var total float64
	output := model.CoreLossesOutput{
		MagneticFluxDensity: excitation.MagneticFluxDensity,
		MethodUsed:          methodNames[modelKind],
		Temperature:         temperature,
		Origin:              model.OriginSimulation,
	}
	if isMassLoss {
		total = volumetric * geometry.Mass
		output.MassLosses = &volumetric
	} else {
		total = volumetric * geometry.EffectiveVolume
		output.VolumetricLosses = &volumetric
	}
	output.CoreLosses = total
	if hysteresis != nil {
		hysteresisTotal := *hysteresis * geometry.EffectiveVolume
		eddyTotal := *eddy * geometry.EffectiveVolume
		output.HysteresisCoreLosses = &hysteresisTotal
		output.EddyCurrentCoreLosses = &eddyTotal
	}
	return output, nil
}

var methodNames = map[config.CoreLossesModel]string{
	config.CoreLossesSteinmetz:   "Steinmetz",
	config.CoreLossesIGSE:        "iGSE",
	config.CoreLossesMSE:         "MSE",
	config.CoreLossesNSE:         "NSE",
	config.CoreLossesAlbach:      "Albach",
	config.CoreLossesBarg:        "Barg",
	config.CoreLossesRoshen:      "Roshen",
	config.CoreLossesLossFactor:  "LossFactor",
	config.CoreLossesProprietary: "Proprietary",
}

// temperatureFactor implements the Steinmetz-family temperature
// polynomial `(ct0 - ct1*T + ct2*T^2)`, clipped to a minimum of zero
// (spec §4.5). Materials without declared coefficients use ct0=1 and
// no temperature correction.
func temperatureFactor(r material.SteinmetzRange, temperature float64) float64 {
	if !r.HasTemperatureCoefficients {
		return 1
	}
	factor := r.Ct0 - r.Ct1*temperature + r.Ct2*temperature*temperature
	return math.Max(0, factor)
}

// selectRange picks the declared Steinmetz range covering frequency,
// falling back to the nearest range's bounds, or fitting fresh
// coefficients from volumetric-loss samples when none are declared.
func selectRange(m material.CoreMaterial, frequency float64) (material.SteinmetzRange, error) {
	for _, r := range m.SteinmetzCoefficients {
		if frequency >= r.MinimumFrequency && frequency <= r.MaximumFrequency {
			return r, nil
		}
	}
	if len(m.SteinmetzCoefficients) > 0 {
		nearest := m.SteinmetzCoefficients[0]
		bestDistance := math.Inf(1)
		for _, r := range m.SteinmetzCoefficients {
			d := math.Min(math.Abs(frequency-r.MinimumFrequency), math.Abs(frequency-r.MaximumFrequency))
			if d < bestDistance {
				bestDistance = d
				nearest = r
			}
		}
		return nearest, nil
	}
	if len(m.VolumetricLossSamples) > 0 {
		return FitSteinmetzCoefficients(m.VolumetricLossSamples, frequency)
	}
	return material.SteinmetzRange{}, magerr.Newf(magerr.MaterialDataMissing, "material %q has no Steinmetz coefficients or volumetric loss samples", m.Name)
}
