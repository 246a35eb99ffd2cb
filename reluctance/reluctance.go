// Package reluctance is the reluctance engine (spec §4.3, component
// C3): it computes core and air-gap reluctance under a choice of
// published gap models, grounded on
// _examples/original_source/src/physical_models/Reluctance.cpp.
package reluctance

import (
	"math"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/internal/constants"
	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/model"
)

// UngappedCoreReluctance implements spec §4.3:
// R = l_eff / (mu0 * mu_abs * A_eff).
func UngappedCoreReluctance(processed model.ProcessedDescription, absolutePermeability float64) (float64, error) {
	if absolutePermeability <= 0 {
		return 0, magerr.New(magerr.InvalidInput, "absolute permeability must be positive")
	}
	reluctance := processed.EffectiveLength / (constants.VacuumPermeability * absolutePermeability * processed.EffectiveArea)
	if math.IsNaN(reluctance) {
		return 0, magerr.New(magerr.CalculationNaNResult, "ungapped core reluctance is NaN")
	}
	return reluctance, nil
}

// GapReluctance dispatches a single gap to the configured model (spec
// §4.3's model catalogue).
func GapReluctance(gap model.CoreGap, modelName config.GapReluctanceModel) (model.AirGapReluctanceOutput, error) {
	switch modelName {
	case config.GapReluctanceZhang:
		return zhang(gap)
	case config.GapReluctanceMuehlethaler:
		return muehlethaler(gap)
	case config.GapReluctanceEffectiveArea:
		return effectiveArea(gap)
	case config.GapReluctanceEffectiveLength:
		return effectiveLength(gap)
	case config.GapReluctanceMcLyman:
		return mcLyman(gap)
	case config.GapReluctancePartridge:
		return partridge(gap)
	case config.GapReluctanceStenglein:
		return stenglein(gap)
	case config.GapReluctanceBalakrishnan:
		return balakrishnan(gap)
	case config.GapReluctanceClassic:
		return classic(gap)
	default:
		return model.AirGapReluctanceOutput{}, magerr.New(magerr.ModelNotAvailable, "unknown gap reluctance model")
	}
}

// GapMaximumStorableEnergy is E = 1/2 * B_sat^2 / (mu0 * k) * A * l,
// the closed form shared by every model (named in original_source but
// not spelled out by spec.md's distillation; see SPEC_FULL.md §5).
// The per-gap model functions in this package have no material
// saturation value and pass zero, so the energy they report is zero.
func GapMaximumStorableEnergy(gap model.CoreGap, fringingFactor float64, saturationFluxDensity float64) float64 {
	area := 0.0
	if gap.Area != nil {
		area = *gap.Area
	}
	return 0.5 * saturationFluxDensity * saturationFluxDensity / (constants.VacuumPermeability * fringingFactor) * area * gap.Length
}

func requireArea(gap model.CoreGap) (float64, error) {
	if gap.Area == nil {
		return 0, magerr.New(magerr.MissingData, "gap area is not set")
	}
	return *gap.Area, nil
}

func requireSectionDimensions(gap model.CoreGap) (width, depth float64, err error) {
	if gap.SectionDimensions == nil {
		return 0, 0, magerr.New(magerr.MissingData, "gap section dimensions are not set")
	}
	return gap.SectionDimensions[0], gap.SectionDimensions[1], nil
}

func requireShape(gap model.CoreGap) (model.ColumnShape, error) {
	if gap.Shape == nil {
		return "", magerr.New(magerr.MissingData, "gap shape is not set")
	}
	return *gap.Shape, nil
}

func requireDistanceNormal(gap model.CoreGap) (float64, error) {
	if gap.DistanceClosestNormalSurface == nil {
		return 0, magerr.New(magerr.MissingData, "gap distance to closest normal surface is not set")
	}
	if *gap.DistanceClosestNormalSurface < 0 {
		return 0, magerr.New(magerr.GapInvalidDimensions, "gap distance to closest normal surface is negative")
	}
	return *gap.DistanceClosestNormalSurface, nil
}

func output(reluctance, fringingFactor float64, gap model.CoreGap, method string) model.AirGapReluctanceOutput {
	if fringingFactor < 1 {
		fringingFactor = 1
	}
	saturationFluxDensity := 0.0 // unknown at this layer; see GapMaximumStorableEnergy doc.
	return model.AirGapReluctanceOutput{
		Reluctance:                    reluctance,
		FringingFactor:                fringingFactor,
		MaximumStorableMagneticEnergy: GapMaximumStorableEnergy(gap, fringingFactor, saturationFluxDensity),
		MethodUsed:                    method,
		Origin:                        model.OriginSimulation,
	}
}

// zhang implements ReluctanceZhangModel::get_gap_reluctance.
func zhang(gap model.CoreGap) (model.AirGapReluctanceOutput, error) {
	area, err := requireArea(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	shape, err := requireShape(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	width, depth, err := requireSectionDimensions(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	distanceNormal, err := requireDistanceNormal(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}

	if gap.Length <= 0 {
		return output(0, 1, gap, "Zhang"), nil
	}

	var perimeter float64
	if shape == model.ColumnShapeRound {
		perimeter = math.Pi * width
	} else {
		perimeter = 2*width + 2*depth
	}

	reluctanceInternal := gap.Length / (constants.VacuumPermeability * area)
	reluctanceFringing := math.Pi / (constants.VacuumPermeability * perimeter * math.Log((2*distanceNormal+gap.Length)/gap.Length))

	if math.IsNaN(reluctanceInternal) || reluctanceInternal == 0 || math.IsNaN(reluctanceFringing) || reluctanceFringing == 0 {
		return model.AirGapReluctanceOutput{}, magerr.New(magerr.CalculationNaNResult, "Zhang reluctance components invalid")
	}

	reluctance := 1 / (1/reluctanceInternal + 1/reluctanceFringing)
	fringingFactor := gap.Length / (constants.VacuumPermeability * area * reluctance)

	return output(reluctance, fringingFactor, gap, "Zhang"), nil
}

// basicReluctance implements ReluctanceMuehlethalerModel::get_basic_reluctance.
func basicReluctance(l, w, h float64) float64 {
	return 1 / (constants.VacuumPermeability * (w/(2*l) + 2/math.Pi*(1+math.Log(math.Pi*h/(4*l)))))
}

// reluctanceType1 implements ReluctanceMuehlethalerModel::get_reluctance_type_1.
func reluctanceType1(l, w, h float64) float64 {
	basic := basicReluctance(l, w, h)
	return 1 / (1/(basic+basic) + 1/(basic+basic))
}

// muehlethaler implements ReluctanceMuehlethalerModel::get_gap_reluctance.
func muehlethaler(gap model.CoreGap) (model.AirGapReluctanceOutput, error) {
	shape, err := requireShape(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	width, depth, err := requireSectionDimensions(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	distanceNormal, err := requireDistanceNormal(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}

	if gap.Length <= 0 {
		return output(0, 1, gap, "Muehlethaler"), nil
	}

	var reluctanceValue, fringingFactor float64
	if shape == model.ColumnShapeRound {
		gammaR := reluctanceType1(gap.Length/2, width/2, distanceNormal) / (gap.Length / constants.VacuumPermeability / (width / 2))
		reluctanceValue = gammaR * gammaR * gap.Length / (constants.VacuumPermeability * math.Pi * (width / 2) * (width / 2))
		fringingFactor = 1 / gammaR
	} else {
		gammaX := reluctanceType1(gap.Length/2, width, distanceNormal) / (gap.Length / constants.VacuumPermeability / width)
		gammaY := reluctanceType1(gap.Length/2, depth, distanceNormal) / (gap.Length / constants.VacuumPermeability / depth)
		gamma := gammaX * gammaY
		reluctanceValue = gamma * gap.Length / (constants.VacuumPermeability * depth * width)
		fringingFactor = 1 / gamma
	}

	return output(reluctanceValue, fringingFactor, gap, "Muehlethaler"), nil
}

// effectiveArea implements ReluctanceEffectiveAreaModel::get_gap_reluctance.
func effectiveArea(gap model.CoreGap) (model.AirGapReluctanceOutput, error) {
	area, err := requireArea(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	shape, err := requireShape(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	width, depth, err := requireSectionDimensions(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}

	fringingFactor := 1.0
	if gap.Length > 0 {
		if shape == model.ColumnShapeRound {
			fringingFactor = math.Pow(1+gap.Length/width, 2)
		} else {
			fringingFactor = (depth + gap.Length) * (width + gap.Length) / (depth * width)
		}
	}

	reluctance := gap.Length / (constants.VacuumPermeability * area * fringingFactor)
	return output(reluctance, fringingFactor, gap, "EffectiveArea"), nil
}

// effectiveLength implements ReluctanceEffectiveLengthModel::get_gap_reluctance.
func effectiveLength(gap model.CoreGap) (model.AirGapReluctanceOutput, error) {
	area, err := requireArea(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	shape, err := requireShape(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	width, depth, err := requireSectionDimensions(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}

	fringingFactor := 1.0
	if gap.Length > 0 {
		if shape == model.ColumnShapeRound {
			fringingFactor = math.Pow(1+gap.Length/width, 2)
		} else {
			fringingFactor = (1 + gap.Length/depth) * (1 + gap.Length/width)
		}
	}

	reluctance := gap.Length / (constants.VacuumPermeability * area * fringingFactor)
	return output(reluctance, fringingFactor, gap, "EffectiveLength"), nil
}

// mcLyman implements the McLyman fringing-factor formula (spec §4.3):
// k = 1 + (l/sqrt(A)) * ln(4*D_n/l).
func mcLyman(gap model.CoreGap) (model.AirGapReluctanceOutput, error) {
	area, err := requireArea(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	distanceNormal, err := requireDistanceNormal(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}

	fringingFactor := 1.0
	if gap.Length > 0 {
		fringingFactor = 1 + (gap.Length/math.Sqrt(area))*math.Log(4*distanceNormal/gap.Length)
	}

	reluctance := gap.Length / (constants.VacuumPermeability * area * fringingFactor)
	return output(reluctance, fringingFactor, gap, "McLyman"), nil
}

// partridge implements ReluctancePartridgeModel::get_gap_reluctance.
func partridge(gap model.CoreGap) (model.AirGapReluctanceOutput, error) {
	area, err := requireArea(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	distanceNormal, err := requireDistanceNormal(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}

	fringingFactor := 1.0
	if gap.Length > 0 {
		fringingFactor = 1 + gap.Length/math.Sqrt(area)*math.Log(4*distanceNormal/gap.Length)
	}

	reluctance := gap.Length / (constants.VacuumPermeability * area * fringingFactor)
	return output(reluctance, fringingFactor, gap, "Partridge"), nil
}

// alphaStenglein is the small empirical correction term used by the
// Stenglein model's fringing factor.
func alphaStenglein(rx, l1, lg float64) float64 {
	return 0.3 * math.Exp(-lg/l1) * math.Log(rx/lg+1)
}

// stenglein implements ReluctanceStengleinModel::get_gap_reluctance.
func stenglein(gap model.CoreGap) (model.AirGapReluctanceOutput, error) {
	area, err := requireArea(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	width, _, err := requireSectionDimensions(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	distanceNormal, err := requireDistanceNormal(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	distanceParallel := width / 2
	if gap.DistanceClosestParallelSurface != nil {
		distanceParallel = *gap.DistanceClosestParallelSurface
	}
	y := 0.0
	if gap.Coordinates != nil {
		y = gap.Coordinates.Y
	}

	fringingFactor := 1.0
	if gap.Length > 0 {
		c := width/2 + distanceParallel
		b := width/2 + 0.001
		l1 := distanceNormal * 2
		rc := width / 2
		rx := width / 2

		aux1 := 1 + 2/math.Sqrt(math.Pi)*gap.Length/(2*rc)*math.Log(2.1*rx/gap.Length)
		aux2 := 1.0 / 6.0 * (c*c + 2*c*b + b*b) / (b * b)
		gamma := aux1 + (aux2-aux1)*math.Pow(gap.Length/l1, 2*math.Pi)

		fringingFactor = alphaStenglein(rx, l1, gap.Length)*math.Pow(y/l1, 2) + gamma
	}

	reluctance := gap.Length / (constants.VacuumPermeability * area * fringingFactor)
	return output(reluctance, fringingFactor, gap, "Stenglein"), nil
}

// classic implements ReluctanceClassicModel::get_gap_reluctance: no
// fringing correction at all.
func classic(gap model.CoreGap) (model.AirGapReluctanceOutput, error) {
	area, err := requireArea(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	reluctance := gap.Length / (constants.VacuumPermeability * area)
	return output(reluctance, 1, gap, "Classic"), nil
}

// balakrishnan implements ReluctanceBalakrishnanModel::get_gap_reluctance.
func balakrishnan(gap model.CoreGap) (model.AirGapReluctanceOutput, error) {
	area, err := requireArea(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	_, depth, err := requireSectionDimensions(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}
	distanceNormal, err := requireDistanceNormal(gap)
	if err != nil {
		return model.AirGapReluctanceOutput{}, err
	}

	reluctance := 1 / (constants.VacuumPermeability * (area/gap.Length + 2*depth/math.Pi*(1+math.Log(math.Pi*distanceNormal/(2*gap.Length)))))

	fringingFactor := 1.0
	if gap.Length > 0 {
		fringingFactor = gap.Length / (constants.VacuumPermeability * area * reluctance)
	}

	return output(reluctance, fringingFactor, gap, "Balakrishnan"), nil
}
