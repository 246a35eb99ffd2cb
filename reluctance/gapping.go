package reluctance

import (
	"math"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/internal/constants"
	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/model"
)

// modelNames maps a GapReluctanceModel to the label its per-gap
// functions record in AirGapReluctanceOutput.MethodUsed.
var modelNames = map[config.GapReluctanceModel]string{
	config.GapReluctanceZhang:          "Zhang",
	config.GapReluctanceMuehlethaler:   "Muehlethaler",
	config.GapReluctanceEffectiveArea:  "EffectiveArea",
	config.GapReluctanceEffectiveLength: "EffectiveLength",
	config.GapReluctanceMcLyman:        "McLyman",
	config.GapReluctancePartridge:      "Partridge",
	config.GapReluctanceStenglein:      "Stenglein",
	config.GapReluctanceBalakrishnan:   "Balakrishnan",
	config.GapReluctanceClassic:        "Classic",
}

// FillGapGeometry completes a gap's area/shape/section-dimensions/
// distance-to-closest-surface fields from the column it sits on, when
// the caller has not already supplied them. This stands in for the
// source's core.process_gap() step, which derives the same fields from
// the column geometry once a gap length is assigned to it.
func FillGapGeometry(gap model.CoreGap, column model.ColumnElement) model.CoreGap {
	if gap.Type == model.GapResidual && gap.Length == 0 {
		gap.Length = constants.ResidualGap
	}
	if gap.Area == nil {
		area := column.Area
		gap.Area = &area
	}
	if gap.Shape == nil {
		shape := column.Shape
		gap.Shape = &shape
	}
	if gap.SectionDimensions == nil {
		dims := [2]float64{column.Width, column.Depth}
		gap.SectionDimensions = &dims
	}
	if gap.DistanceClosestNormalSurface == nil {
		distance := column.Height/2 - gap.Length/2
		if distance < 0 {
			distance = 0
		}
		gap.DistanceClosestNormalSurface = &distance
	}
	if gap.DistanceClosestParallelSurface == nil {
		distance := column.Width / 2
		gap.DistanceClosestParallelSurface = &distance
	}
	if gap.Coordinates == nil {
		gap.Coordinates = &model.Vec3{}
	}
	return gap
}

// columnGaps partitions a core's gaps by the column they sit on. By
// convention (matching how the gapping solvers in package inductance
// build Functional.Gapping) one gap trails the list per lateral
// column; everything before that is on the central column, which may
// itself carry several gaps when the distribution is DISTRIBUTED.
func columnGaps(core model.Core, processed model.ProcessedDescription) (central, lateral [][]model.CoreGap) {
	lateralColumns := 0
	for _, c := range processed.Columns {
		if c.Type == model.ColumnLateral {
			lateralColumns++
		}
	}

	gaps := core.Functional.Gapping
	if len(gaps) == 0 {
		return nil, nil
	}

	var centralColumn model.ColumnElement
	var lateralColumnList []model.ColumnElement
	for _, c := range processed.Columns {
		if c.Type == model.ColumnCentral {
			centralColumn = c
		} else {
			lateralColumnList = append(lateralColumnList, c)
		}
	}

	if lateralColumns == 0 || lateralColumns >= len(gaps) {
		filled := make([]model.CoreGap, len(gaps))
		for i, gap := range gaps {
			filled[i] = FillGapGeometry(gap, centralColumn)
		}
		return [][]model.CoreGap{filled}, nil
	}

	split := len(gaps) - lateralColumns
	filledCentral := make([]model.CoreGap, split)
	for i, gap := range gaps[:split] {
		filledCentral[i] = FillGapGeometry(gap, centralColumn)
	}

	lateral = make([][]model.CoreGap, lateralColumns)
	for i, gap := range gaps[split:] {
		column := centralColumn
		if i < len(lateralColumnList) {
			column = lateralColumnList[i]
		}
		lateral[i] = []model.CoreGap{FillGapGeometry(gap, column)}
	}
	return [][]model.CoreGap{filledCentral}, lateral
}

// GappingReluctance implements spec §4.3's combination rule: gaps on
// the central column are summed in series; each lateral column's gaps
// are summed in series, the lateral columns are then combined with
// each other in parallel, and that parallel term is added in series to
// the central reluctance.
func GappingReluctance(core model.Core, processed model.ProcessedDescription, modelName config.GapReluctanceModel) (model.MagnetizingInductanceOutput, error) {
	central, lateral := columnGaps(core, processed)

	var outputs []model.AirGapReluctanceOutput
	var centralReluctance float64
	maxFringing := 1.0

	for _, column := range central {
		for _, gap := range column {
			result, err := GapReluctance(gap, modelName)
			if err != nil {
				return model.MagnetizingInductanceOutput{}, err
			}
			outputs = append(outputs, result)
			centralReluctance += result.Reluctance
			if result.FringingFactor > maxFringing {
				maxFringing = result.FringingFactor
			}
		}
	}

	totalReluctance := centralReluctance
	if len(lateral) > 0 {
		var inverseSum float64
		for _, column := range lateral {
			var columnReluctance float64
			for _, gap := range column {
				result, err := GapReluctance(gap, modelName)
				if err != nil {
					return model.MagnetizingInductanceOutput{}, err
				}
				outputs = append(outputs, result)
				columnReluctance += result.Reluctance
				if result.FringingFactor > maxFringing {
					maxFringing = result.FringingFactor
				}
			}
			if columnReluctance > 0 {
				inverseSum += 1 / columnReluctance
			}
		}
		if inverseSum > 0 {
			totalReluctance = centralReluctance + 1/inverseSum
		}
	}

	if math.IsNaN(totalReluctance) {
		return model.MagnetizingInductanceOutput{}, magerr.New(magerr.CalculationNaNResult, "gapping reluctance is NaN")
	}

	var maxEnergy float64
	for _, o := range outputs {
		maxEnergy += o.MaximumStorableMagneticEnergy
	}

	return model.MagnetizingInductanceOutput{
		GappingReluctance:                    totalReluctance,
		ReluctancePerGap:                     outputs,
		MaximumFringingFactor:                maxFringing,
		MaximumStorableMagneticEnergyGapping: maxEnergy,
		Origin:                               model.OriginSimulation,
	}, nil
}

// CoreReluctance implements spec §4.3's top-level entry point: total
// reluctance is the ungapped core reluctance plus the gapping
// reluctance, both referred to the same magnetic path.
func CoreReluctance(core model.Core, processed model.ProcessedDescription, absolutePermeability float64, modelName config.GapReluctanceModel) (model.MagnetizingInductanceOutput, error) {
	ungapped, err := UngappedCoreReluctance(processed, absolutePermeability)
	if err != nil {
		return model.MagnetizingInductanceOutput{}, err
	}

	result, err := GappingReluctance(core, processed, modelName)
	if err != nil {
		return model.MagnetizingInductanceOutput{}, err
	}

	result.UngappedCoreReluctance = ungapped
	result.CoreReluctance = ungapped + result.GappingReluctance
	result.MethodUsed = modelNames[modelName]
	result.Origin = model.OriginSimulation

	return result, nil
}
