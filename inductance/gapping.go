package inductance

import (
	"math"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/internal/constants"
	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/model"
	"github.com/edp1096/magcore/reluctance"
)

// NumberTurnsFromInductance implements spec §4.4's
// number_turns_from_inductance: the turns count sqrt(L*R) rounded to
// the nearest integer (at least 1), re-evaluating the permeability at
// zero DC bias until it converges.
func NumberTurnsFromInductance(resolved Resolved, desiredInductance float64, settings config.Settings) (int, error) {
	if desiredInductance <= 0 {
		return 0, magerr.New(magerr.InvalidInput, "desired magnetizing inductance must be positive")
	}

	frequency := constants.CoreAdviserFrequencyReference
	temperature := constants.AmbientTemperature
	currentPermeability, err := material.InitialPermeability(resolved.Material, temperature, nil, &frequency)
	if err != nil {
		return 0, err
	}

	numberTurns := 1
	for i := 0; i < maxInnerIterations; i++ {
		result, err := reluctance.CoreReluctance(resolved.Core, resolved.Processed, currentPermeability, settings.GapReluctance)
		if err != nil {
			return 0, err
		}
		numberTurns = int(math.Round(math.Sqrt(desiredInductance * result.CoreReluctance)))
		if numberTurns < 1 {
			numberTurns = 1
		}

		fieldStrengthOffset := 0.0 // no excitation supplied; zero DC bias.
		modifiedPermeability, err := material.InitialPermeability(resolved.Material, temperature, &fieldStrengthOffset, &frequency)
		if err != nil {
			return 0, err
		}
		if math.Abs(currentPermeability-modifiedPermeability) < permeabilityConvergenceAbsolute {
			break
		}
		currentPermeability = modifiedPermeability
	}

	return numberTurns, nil
}

// GappingType selects which physical gap distribution
// GappingFromTurnsAndInductance searches over (spec §4.4).
type GappingType string

const (
	GappingGround      GappingType = "GROUND"
	GappingSpacer      GappingType = "SPACER"
	GappingDistributed GappingType = "DISTRIBUTED"
)

func lateralColumnCount(processed model.ProcessedDescription) int {
	count := 0
	for _, c := range processed.Columns {
		if c.Type == model.ColumnLateral {
			count++
		}
	}
	return count
}

// buildGapping constructs the Functional.Gapping slice for a candidate
// central gap length, following the column-assignment convention
// columnGaps in package reluctance expects: central gap(s) first, one
// residual (or, for SPACER, matching-length) gap per lateral column
// trailing.
func buildGapping(gappingType GappingType, length float64, numberDistributedGaps int, numberLateralColumns int) []model.CoreGap {
	var central []model.CoreGap
	switch gappingType {
	case GappingSpacer:
		central = []model.CoreGap{{Type: model.GapAdditive, Length: length}}
	case GappingDistributed:
		for i := 0; i < numberDistributedGaps; i++ {
			central = append(central, model.CoreGap{Type: model.GapSubtractive, Length: length})
		}
	default: // GappingGround
		central = []model.CoreGap{{Type: model.GapSubtractive, Length: length}}
	}

	lateralLength := constants.ResidualGap
	lateralType := model.GapResidual
	if gappingType == GappingSpacer {
		lateralLength = length
		lateralType = model.GapAdditive
	}

	gapping := make([]model.CoreGap, 0, len(central)+numberLateralColumns)
	gapping = append(gapping, central...)
	for i := 0; i < numberLateralColumns; i++ {
		gapping = append(gapping, model.CoreGap{Type: lateralType, Length: lateralLength})
	}
	return gapping
}

// GappingFromTurnsAndInductance implements spec §4.4's
// gapping_from_turns_and_inductance: a binary search over a single
// gap-length parameter; for DISTRIBUTED the segment count is first
// adapted once by fringing factor and then held fixed during the search,
// until the resulting core reluctance matches the reluctance the
// desired inductance and turns count imply.
func GappingFromTurnsAndInductance(resolved Resolved, numberTurnsPrimary int, desiredInductance float64, gappingType config.GappingModel, settings config.Settings) ([]model.CoreGap, error) {
	if gappingType == config.GappingResidual {
		return nil, magerr.New(magerr.InvalidInput, "RESIDUAL cannot be chosen to compute a needed gapping")
	}
	if desiredInductance <= 0 {
		return nil, magerr.New(magerr.InvalidInput, "desired magnetizing inductance must be positive")
	}

	neededReluctance := math.Pow(float64(numberTurnsPrimary), 2) / desiredInductance

	frequency := constants.CoreAdviserFrequencyReference
	temperature := constants.AmbientTemperature
	currentPermeability, err := material.InitialPermeability(resolved.Material, temperature, nil, &frequency)
	if err != nil {
		return nil, err
	}

	searchType := GappingGround
	if gappingType == config.GappingSpacer {
		searchType = GappingSpacer
	} else if gappingType == config.GappingDistributed {
		searchType = GappingDistributed
	}

	numberLateralColumns := lateralColumnCount(resolved.Processed)
	numberDistributedGaps := 3

	gapLength := constants.ResidualGap
	gapLengthStep := constants.InitialGapLengthForSearching
	increasing := true

	if searchType == GappingDistributed {
		numberDistributedGaps, gapLength = adaptDistributedSegments(resolved, numberLateralColumns, numberDistributedGaps, gapLength, settings)
	}

	var lastGapping []model.CoreGap
	for i := 0; i < 100; i++ {
		gapping := buildGapping(searchType, gapLength, numberDistributedGaps, numberLateralColumns)
		lastGapping = gapping

		candidate := resolved.Core
		candidate.Functional.Gapping = gapping
		candidate.Processed = resolved.Core.Processed

		result, err := reluctance.CoreReluctance(candidate, resolved.Processed, currentPermeability, settings.GapReluctance)
		if err != nil {
			return nil, err
		}

		if math.Abs(neededReluctance-result.CoreReluctance)/neededReluctance < 0.001 {
			break
		}

		if neededReluctance < result.CoreReluctance && increasing {
			increasing = false
			gapLengthStep = math.Max(gapLengthStep/2, constants.ResidualGap)
		}
		if neededReluctance > result.CoreReluctance && !increasing {
			increasing = true
			gapLengthStep = math.Max(gapLengthStep/2, constants.ResidualGap)
		}
		if increasing {
			gapLength += gapLengthStep
		} else {
			gapLength -= gapLengthStep
			if gapLength < constants.ResidualGap {
				gapLength = constants.ResidualGap
			}
		}
	}

	return lastGapping, nil
}

// adaptDistributedSegments implements the DISTRIBUTED-only pre-pass
// from MagnetizingInductance.cpp: shrink the segment count while a
// single segment's fringing factor sits below the allowed minimum,
// then grow it while the factor sits above the allowed maximum,
// keeping the total gap length constant across the adaptation.
func adaptDistributedSegments(resolved Resolved, numberLateralColumns int, numberDistributedGaps int, gapLength float64, settings config.Settings) (int, float64) {
	centralColumn := resolved.Processed.Columns[0]

	oneSegmentFringingFactor := func(length float64, segments int) (float64, error) {
		gapping := buildGapping(GappingDistributed, length, segments, numberLateralColumns)
		filled := reluctance.FillGapGeometry(gapping[0], centralColumn)
		result, err := reluctance.GapReluctance(filled, settings.GapReluctance)
		return result.FringingFactor, err
	}

	for numberDistributedGaps > 3 {
		fringing, err := oneSegmentFringingFactor(gapLength, numberDistributedGaps)
		if err != nil || fringing >= constants.MinimumDistributedFringingFactor {
			break
		}
		gapLength *= float64(numberDistributedGaps)
		numberDistributedGaps -= 2
		gapLength /= float64(numberDistributedGaps)
	}

	for {
		fringing, err := oneSegmentFringingFactor(gapLength, numberDistributedGaps)
		if err != nil || fringing <= constants.MaximumDistributedFringingFactor {
			break
		}
		gapLength *= float64(numberDistributedGaps)
		numberDistributedGaps += 2
		gapLength /= float64(numberDistributedGaps)
	}

	return numberDistributedGaps, gapLength
}
