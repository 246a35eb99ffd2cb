package reluctance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/model"
	"github.com/edp1096/magcore/reluctance"
)

func ungappedPQ2820() model.ProcessedDescription {
	return model.ProcessedDescription{
		EffectiveLength: 0.0573,
		EffectiveArea:   0.000119,
		EffectiveVolume: 0.0573 * 0.000119,
	}
}

func roundGap(length float64) model.CoreGap {
	area := 0.000119
	shape := model.ColumnShapeRound
	dims := [2]float64{0.0123, 0.0123}
	distance := 0.01
	return model.CoreGap{
		Type:                         model.GapAdditive,
		Length:                       length,
		Area:                         &area,
		Shape:                        &shape,
		SectionDimensions:            &dims,
		DistanceClosestNormalSurface: &distance,
	}
}

func TestUngappedCoreReluctance(t *testing.T) {
	processed := ungappedPQ2820()
	r, err := reluctance.UngappedCoreReluctance(processed, 2500)
	require.NoError(t, err)
	assert.Greater(t, r, 0.0)
}

func TestUngappedCoreReluctanceRejectsNonPositivePermeability(t *testing.T) {
	_, err := reluctance.UngappedCoreReluctance(ungappedPQ2820(), 0)
	assert.Error(t, err)
}

func TestGapReluctanceModelsAgreeOnSignAndMonotonicity(t *testing.T) {
	models := []config.GapReluctanceModel{
		config.GapReluctanceZhang,
		config.GapReluctanceMuehlethaler,
		config.GapReluctanceEffectiveArea,
		config.GapReluctanceEffectiveLength,
		config.GapReluctanceMcLyman,
		config.GapReluctancePartridge,
		config.GapReluctanceStenglein,
		config.GapReluctanceBalakrishnan,
		config.GapReluctanceClassic,
	}

	for _, m := range models {
		small, err := reluctance.GapReluctance(roundGap(0.0005), m)
		require.NoError(t, err, "model %v", m)
		large, err := reluctance.GapReluctance(roundGap(0.002), m)
		require.NoError(t, err, "model %v", m)

		assert.Greater(t, small.Reluctance, 0.0, "model %v", m)
		assert.Greater(t, large.Reluctance, small.Reluctance, "model %v: a longer gap must have higher reluctance", m)
		assert.GreaterOrEqual(t, small.FringingFactor, 1.0, "model %v", m)
		assert.NotEmpty(t, small.MethodUsed, "model %v", m)
	}
}

func TestGapReluctanceUnknownModel(t *testing.T) {
	_, err := reluctance.GapReluctance(roundGap(0.001), config.GapReluctanceModel(99))
	assert.Error(t, err)
}

func TestGapReluctanceMissingAreaFails(t *testing.T) {
	gap := roundGap(0.001)
	gap.Area = nil
	_, err := reluctance.GapReluctance(gap, config.GapReluctanceZhang)
	assert.Error(t, err)
}

func TestGapMaximumStorableEnergyScalesWithArea(t *testing.T) {
	small := roundGap(0.001)
	large := roundGap(0.001)
	largeArea := *large.Area * 4
	large.Area = &largeArea

	smallEnergy := reluctance.GapMaximumStorableEnergy(small, 1, 0.39)
	largeEnergy := reluctance.GapMaximumStorableEnergy(large, 1, 0.39)
	assert.InDelta(t, 4*smallEnergy, largeEnergy, 1e-12)
}

// pq2820WithCentralAndLateralGaps builds a PQ 28/20-like core with one
// central gap and numberLateralGaps identical lateral gaps, one per
// lateral column, matching the spec §8 scenario 1 layout.
func pq2820WithCentralAndLateralGaps(centralLength, lateralLength float64, numberLateralGaps int) (model.Core, model.ProcessedDescription) {
	processed := model.ProcessedDescription{
		EffectiveLength: 0.0573,
		EffectiveArea:   0.000119,
		EffectiveVolume: 0.0573 * 0.000119,
		Columns: []model.ColumnElement{
			{Type: model.ColumnCentral, Shape: model.ColumnShapeRound, Area: 0.000119, Width: 0.0123, Depth: 0.0123, Height: 0.02},
		},
	}
	for i := 0; i < numberLateralGaps; i++ {
		processed.Columns = append(processed.Columns, model.ColumnElement{
			Type: model.ColumnLateral, Shape: model.ColumnShapeRound, Area: 0.000119 / 2, Width: 0.0123, Depth: 0.0123, Height: 0.02,
		})
	}

	gaps := []model.CoreGap{{Type: model.GapAdditive, Length: centralLength}}
	for i := 0; i < numberLateralGaps; i++ {
		gaps = append(gaps, model.CoreGap{Type: model.GapResidual, Length: lateralLength})
	}

	core := model.Core{Functional: model.FunctionalDescription{Gapping: gaps}}
	return core, processed
}

func TestGappingReluctanceAddsLateralParallelTermInSeriesWithCentral(t *testing.T) {
	core, processed := pq2820WithCentralAndLateralGaps(0.0004, 5e-6, 3)

	result, err := reluctance.GappingReluctance(core, processed, config.GapReluctanceClassic)
	require.NoError(t, err)

	central := result.ReluctancePerGap[0].Reluctance
	var inverseSum float64
	for _, g := range result.ReluctancePerGap[1:] {
		inverseSum += 1 / g.Reluctance
	}
	expected := central + 1/inverseSum

	assert.InDelta(t, expected, result.GappingReluctance, expected*1e-9)
	// The lateral branch must be a genuine parallel combination, not
	// folded into the same reciprocal sum as the central reluctance:
	// with a macroscopic central gap and microscopic lateral gaps, the
	// total is dominated by the central term, not crushed by it.
	assert.Greater(t, result.GappingReluctance, central)
	assert.InDelta(t, central, result.GappingReluctance, central*0.01)
}

func TestGappingReluctanceIdenticalLateralGapsCombineAsOneOverN(t *testing.T) {
	const numberLateralGaps = 4
	core, processed := pq2820WithCentralAndLateralGaps(0.0004, 0.0004, numberLateralGaps)

	result, err := reluctance.GappingReluctance(core, processed, config.GapReluctanceClassic)
	require.NoError(t, err)

	oneGap := result.ReluctancePerGap[1].Reluctance
	for _, g := range result.ReluctancePerGap[2:] {
		assert.InDelta(t, oneGap, g.Reluctance, oneGap*1e-9)
	}

	central := result.ReluctancePerGap[0].Reluctance
	expectedLateral := oneGap / numberLateralGaps
	assert.InDelta(t, central+expectedLateral, result.GappingReluctance, (central+expectedLateral)*1e-9)
}
