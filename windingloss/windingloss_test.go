package windingloss_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/magcore/model"
	"github.com/edp1096/magcore/waveform"
	"github.com/edp1096/magcore/windingloss"
)

func copperRoundWire() model.Wire {
	return model.Wire{
		Name:                   "AWG28",
		Type:                   model.WireRound,
		ConductorDiameter:      3.2e-4,
		Resistivity20C:         1.68e-8,
		TemperatureCoefficient: 0.00393,
	}
}

func singleLayerCoil(numberTurns int, wire model.Wire) model.Coil {
	turns := make([]model.Turn, numberTurns)
	for i := range turns {
		turns[i] = model.Turn{
			Name:          "turn" + string(rune('a'+i)),
			Winding:       "primary",
			Layer:         "L1",
			Section:       "S1",
			LengthPerTurn: 0.02,
		}
	}
	return model.Coil{
		Functional: []model.WindingDescription{
			{Name: "primary", NumberTurns: numberTurns, NumberParallels: 1, Wire: model.WireRef{Inline: &wire}},
		},
		Turns: turns,
	}
}

func neverLookup(name string) (model.Wire, error) {
	return model.Wire{}, nil
}

func sineCurrent(peak, frequency float64, samples int) waveform.Signal {
	period := 1 / frequency
	signal := waveform.Signal{Time: make([]float64, samples), Data: make([]float64, samples)}
	for i := 0; i < samples; i++ {
		t := period * float64(i) / float64(samples)
		signal.Time[i] = t
		signal.Data[i] = peak * math.Sin(2*math.Pi*frequency*t)
	}
	return signal
}

func TestCalculateLossesReportsPerTurnOhmicAndWindingTotal(t *testing.T) {
	wire := copperRoundWire()
	coil := singleLayerCoil(4, wire)
	current := sineCurrent(1, 100e3, 128)

	output, err := windingloss.CalculateLosses(coil, neverLookup, map[string]waveform.Signal{"primary": current}, 25)
	require.NoError(t, err)

	require.Len(t, output.WindingLossesPerTurn, 4)
	assert.Greater(t, output.WindingLosses, 0.0)
	for _, turn := range output.WindingLossesPerTurn {
		assert.Greater(t, turn.OhmicLosses, 0.0)
	}
	require.Len(t, output.WindingLossesPerWinding, 1)
	assert.InDelta(t, output.WindingLosses, output.WindingLossesPerWinding[0].Total(), 1e-9)
}

func TestCalculateLossesSkipsWindingsWithoutExcitation(t *testing.T) {
	wire := copperRoundWire()
	coil := singleLayerCoil(2, wire)

	output, err := windingloss.CalculateLosses(coil, neverLookup, map[string]waveform.Signal{}, 25)
	require.NoError(t, err)
	assert.Equal(t, 0.0, output.WindingLosses)
}

func TestEffectiveResistanceRisesWithFrequency(t *testing.T) {
	wire := copperRoundWire()
	coil := singleLayerCoil(4, wire)

	low, err := windingloss.EffectiveResistance(coil, neverLookup, "primary", 1e3, 25)
	require.NoError(t, err)
	high, err := windingloss.EffectiveResistance(coil, neverLookup, "primary", 5e6, 25)
	require.NoError(t, err)

	assert.Greater(t, low, 0.0)
	assert.GreaterOrEqual(t, high, low)
}

func TestResistanceMatrixDiagonalMatchesEffectiveResistance(t *testing.T) {
	wire := copperRoundWire()
	primary := singleLayerCoil(4, wire)
	secondaryWinding := model.WindingDescription{Name: "secondary", NumberTurns: 2, NumberParallels: 1, Wire: model.WireRef{Inline: &wire}}
	secondaryTurns := []model.Turn{
		{Name: "s1", Winding: "secondary", Layer: "L2", Section: "S1", LengthPerTurn: 0.02},
		{Name: "s2", Winding: "secondary", Layer: "L2", Section: "S1", LengthPerTurn: 0.02},
	}
	coil := model.Coil{
		Functional: append(primary.Functional, secondaryWinding),
		Turns:      append(primary.Turns, secondaryTurns...),
	}

	matrix, names, err := windingloss.ResistanceMatrix(coil, neverLookup, 100e3, 25)
	require.NoError(t, err)
	require.Equal(t, []string{"primary", "secondary"}, names)

	primaryR, err := windingloss.EffectiveResistance(coil, neverLookup, "primary", 100e3, 25)
	require.NoError(t, err)
	assert.InDelta(t, primaryR, matrix.At(0, 0), 1e-12)
	assert.InDelta(t, matrix.At(0, 1), matrix.At(1, 0), 1e-12)
}
