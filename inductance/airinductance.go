package inductance

import (
	"math"

	"github.com/edp1096/magcore/internal/constants"
	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/model"
)

// AirInductance implements spec §4.4's optional air-inductance term,
// grounded on MagnetizingInductance.cpp's calculate_air_inductance: the
// extra inductance contributed by flux that closes through the air
// inside the winding window rather than through the core, estimated
// from the bobbin's mean turn radius.
func AirInductance(numberTurnsPrimary int, core model.Core) float64 {
	if core.Processed == nil || len(core.Processed.Columns) == 0 || len(core.Processed.WindingWindows) == 0 {
		return 0
	}

	column := core.Processed.Columns[0]
	window := core.Processed.WindingWindows[0]

	meanLengthRadius := (column.Depth+column.Width)/2 + window.Width/4
	coilInternalArea := math.Pi * meanLengthRadius * meanLengthRadius
	coreColumnArea := column.Area

	airAreaProportion := (coilInternalArea - coreColumnArea) / coilInternalArea

	return constants.VacuumPermeability * math.Pow(float64(numberTurnsPrimary), 2) * (coilInternalArea * airAreaProportion * 2) / window.Height
}

// AirCoredReluctance is the reluctance of a bobbin with no core at all,
// the denominator CalculateInductanceAirSolenoid divides N^2 by.
func AirCoredReluctance(bobbin model.Bobbin) (float64, error) {
	if bobbin.WindingWindowHeight <= 0 {
		return 0, magerr.New(magerr.MissingData, "bobbin winding window height is not set")
	}
	meanLengthRadius := (bobbin.ColumnDepth+bobbin.ColumnWidth)/2 + bobbin.WindingWindowWidth/4
	area := math.Pi * meanLengthRadius * meanLengthRadius
	return bobbin.WindingWindowHeight / (constants.VacuumPermeability * area), nil
}

// CalculateInductanceAirSolenoid implements spec §4.4's air-core
// solenoid check: L = N^2 / R_air, independent of any core material.
func CalculateInductanceAirSolenoid(numberTurnsPrimary int, bobbin model.Bobbin) (float64, error) {
	reluctance, err := AirCoredReluctance(bobbin)
	if err != nil {
		return 0, err
	}
	if reluctance <= 0 {
		return 0, magerr.New(magerr.CalculationNaNResult, "air-cored reluctance is non-positive")
	}
	return math.Pow(float64(numberTurnsPrimary), 2) / reluctance, nil
}
