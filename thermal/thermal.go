// Package thermal is the thermal solver (spec §4.7, component C7): it
// converts a core's total losses into a steady-state temperature rise.
// Grounded on
// _examples/original_source/src/physical_models/ThermalResistance.cpp.
package thermal

import (
	"math"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/model"
)

// ThermalResistance implements `53*V_eff^(-0.54)` (Maniktala), unless
// the core's processed description already carries one.
func ThermalResistance(core model.Core, lookups model.Lookups) (float64, error) {
	_, processed, err := model.Processed(core, lookups)
	if err != nil {
		return 0, magerr.Wrap(magerr.CoreNotProcessed, err, "processing core for thermal resistance")
	}
	if processed.ThermalResistance != nil {
		return *processed.ThermalResistance, nil
	}
	if processed.EffectiveVolume <= 0 {
		return 0, magerr.New(magerr.InvalidInput, "core effective volume must be positive")
	}
	return 53 * math.Pow(processed.EffectiveVolume, -0.54), nil
}

// TemperatureRise implements `R_th*P_total`.
func TemperatureRise(core model.Core, lookups model.Lookups, totalLosses float64) (float64, error) {
	rth, err := ThermalResistance(core, lookups)
	if err != nil {
		return 0, err
	}
	return rth * totalLosses, nil
}

// SteadyStateTemperature adds the rise to ambient to get the core's
// absolute steady-state temperature.
func SteadyStateTemperature(core model.Core, lookups model.Lookups, totalLosses, ambientTemperature float64) (float64, error) {
	rise, err := TemperatureRise(core, lookups, totalLosses)
	if err != nil {
		return 0, err
	}
	return ambientTemperature + rise, nil
}
