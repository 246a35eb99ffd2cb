// Package inductance is the magnetizing-inductance solver (spec §4.4,
// component C4): a coupled fixed-point iteration between the
// reluctance engine's permeability dependence and the flux-density
// waveform's own dependence on inductance, grounded on
// _examples/original_source/src/physical_models/MagnetizingInductance.cpp.
package inductance

import (
	"math"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/internal/constants"
	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/model"
	"github.com/edp1096/magcore/reluctance"
	"github.com/edp1096/magcore/waveform"
)

const (
	inductanceConvergenceTolerance  = 0.01
	permeabilityConvergenceAbsolute = 1.0
	maxOuterIterations              = 10
	maxInnerIterations              = 10
)

// Resolved bundles everything CalculateInductanceAndFluxDensity needs
// already resolved from the model's variant references, so the solver
// itself never touches a lookup function.
type Resolved struct {
	Core              model.Core
	Processed         model.ProcessedDescription
	Material          material.CoreMaterial
	NumberTurnsPrimary int
	NumberWindings    int
}

// CalculateInductanceAndFluxDensity implements spec §4.4's primary
// operation: the outer loop re-derives the magnetizing inductance from
// the latest permeability estimate, the inner loop re-derives the
// permeability from the latest DC-bias field strength, until both
// stabilize or the iteration budget is exhausted.
//
// operatingPoint is optional; without one the solver reports the
// inductance at zero bias and no flux-density waveform.
func CalculateInductanceAndFluxDensity(resolved Resolved, operatingPoint *model.OperatingPoint, settings config.Settings) (model.MagnetizingInductanceOutput, *model.SignalDescriptor, error) {
	frequency := constants.CoreAdviserFrequencyReference
	temperature := constants.AmbientTemperature

	var excitation *model.OperatingPointExcitation
	if operatingPoint != nil {
		temperature = operatingPoint.Conditions.AmbientTemperature
		if len(operatingPoint.ExcitationsPerWinding) > 0 {
			e, _ := operatingPoint.PrimaryExcitation()
			excitation = &e
			frequency = e.Frequency
		}
	}

	currentPermeability, err := material.InitialPermeability(resolved.Material, temperature, nil, &frequency)
	if err != nil {
		return model.MagnetizingInductanceOutput{}, nil, err
	}

	var result model.MagnetizingInductanceOutput
	var fluxDensitySignal *waveform.Signal
	modifiedInductance := 5e-3

	for outer := 0; outer < maxOuterIterations; outer++ {
		currentInductance := modifiedInductance

		var modifiedPermeability float64
		for inner := 0; inner < maxInnerIterations; inner++ {
			currentPermeabilityInner := currentPermeability

			result, err = reluctance.CoreReluctance(resolved.Core, resolved.Processed, currentPermeabilityInner, settings.GapReluctance)
			if err != nil {
				return model.MagnetizingInductanceOutput{}, nil, err
			}

			modifiedInductance = math.Pow(float64(resolved.NumberTurnsPrimary), 2) / result.CoreReluctance

			if excitation == nil {
				break
			}

			magnetizingCurrent, err := magnetizingCurrentFor(*excitation, resolved.NumberWindings, modifiedInductance)
			if err != nil {
				return model.MagnetizingInductanceOutput{}, nil, err
			}

			flux := make([]float64, len(magnetizingCurrent.Data))
			for i, current := range magnetizingCurrent.Data {
				flux[i] = float64(resolved.NumberTurnsPrimary) * current / result.CoreReluctance
			}
			fluxDensity := waveform.Signal{Time: magnetizingCurrent.Time, Data: make([]float64, len(flux))}
			for i, phi := range flux {
				fluxDensity.Data[i] = phi / resolved.Processed.EffectiveArea
			}
			fluxDensitySignal = &fluxDensity

			fieldStrength := make([]float64, len(fluxDensity.Data))
			for i, b := range fluxDensity.Data {
				fieldStrength[i] = b / (constants.VacuumPermeability * currentPermeabilityInner)
			}
			hDCBias := waveform.ProcessSignal(waveform.Signal{Data: fieldStrength}, "field_strength").Offset

			modifiedPermeability, err = material.InitialPermeability(resolved.Material, temperature, &hDCBias, &frequency)
			if err != nil {
				return model.MagnetizingInductanceOutput{}, nil, err
			}

			if math.Abs(currentPermeabilityInner-modifiedPermeability) < permeabilityConvergenceAbsolute {
				currentPermeability = modifiedPermeability
				break
			}
			currentPermeability = modifiedPermeability
		}

		if excitation == nil {
			break
		}
		if math.Abs(currentInductance-modifiedInductance)/modifiedInductance < inductanceConvergenceTolerance {
			break
		}
	}

	if settings.MagnetizingInductanceIncludeAirInductance {
		air := AirInductance(resolved.NumberTurnsPrimary, resolved.Core)
		modifiedInductance += air
	}

	result.MagnetizingInductance = modifiedInductance
	result.Origin = model.OriginSimulation

	var descriptor *model.SignalDescriptor
	if fluxDensitySignal != nil {
		descriptor = &model.SignalDescriptor{Waveform: fluxDensitySignal}
	}

	return result, descriptor, nil
}

// magnetizingCurrentFor implements spec §4.4's magnetizing-current
// derivation for one excitation: a single-winding inductor with a
// current waveform uses that current directly; otherwise a supplied
// magnetizing-current waveform is used, then a voltage waveform
// integrated as v/L, then the excitation's current. Currents of other
// windings are not reflected or summed.
func magnetizingCurrentFor(excitation model.OperatingPointExcitation, numberWindings int, inductance float64) (waveform.Signal, error) {
	if numberWindings == 1 && excitation.Current != nil && excitation.Current.Waveform != nil {
		return *excitation.Current.Waveform, nil
	}
	if excitation.MagnetizingCurrent != nil && excitation.MagnetizingCurrent.Waveform != nil {
		return *excitation.MagnetizingCurrent.Waveform, nil
	}
	if excitation.Voltage != nil && excitation.Voltage.Waveform != nil {
		return integrateVoltage(*excitation.Voltage.Waveform, inductance)
	}
	if excitation.Current != nil && excitation.Current.Waveform != nil {
		return *excitation.Current.Waveform, nil
	}
	return waveform.Signal{}, magerr.New(magerr.MissingData, "operating point excitation has no current, magnetizing current, or voltage waveform")
}

// integrateVoltage derives i(t) = (1/L) * integral(v dt) by trapezoidal
// rule, then removes the resulting DC offset so the excitation stays
// centered (the inductor current's average is set by circuit context
// this stack does not model, per spec §2 Non-goals).
func integrateVoltage(voltage waveform.Signal, inductance float64) (waveform.Signal, error) {
	n := len(voltage.Data)
	if n < 2 {
		return waveform.Signal{}, magerr.New(magerr.InvalidInput, "voltage waveform must have at least two samples")
	}
	current := waveform.Signal{Time: voltage.Time, Data: make([]float64, n)}
	accumulated := 0.0
	for i := 1; i < n; i++ {
		dt := voltage.Time[i] - voltage.Time[i-1]
		accumulated += (voltage.Data[i] + voltage.Data[i-1]) / 2 * dt / inductance
		current.Data[i] = accumulated
	}

	mean := 0.0
	for _, v := range current.Data {
		mean += v
	}
	mean /= float64(n)
	for i := range current.Data {
		current.Data[i] -= mean
	}

	if math.IsNaN(current.Data[0]) {
		return waveform.Signal{}, magerr.New(magerr.CalculationNaNResult, "integrated magnetizing current is NaN")
	}
	return current, nil
}
