package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/model"
)

func TestProcessedComputesAndCachesOnce(t *testing.T) {
	core := model.Core{
		Functional: model.FunctionalDescription{
			Shape: model.ShapeRef{Inline: &model.Shape{
				Name: "PQ 28/20",
				Dimensions: map[string]float64{
					"effective_area":   0.000119,
					"effective_length": 0.0573,
				},
			}},
			Type: model.CoreTypeTwoPieceSet,
		},
	}

	updated, processed, err := model.Processed(core, model.Lookups{})
	require.NoError(t, err)
	assert.InDelta(t, 0.000119, processed.EffectiveArea, 1e-12)
	require.NotNil(t, updated.Processed)

	// Once cached, Processed must return the stored value even if the
	// lookup would now fail.
	again, reprocessed, err := model.Processed(updated, model.Lookups{})
	require.NoError(t, err)
	assert.Equal(t, processed, reprocessed)
	assert.Same(t, updated.Processed, again.Processed)
}

func TestShapeRefResolveNamedGoesThroughLookup(t *testing.T) {
	lookup := func(name string) (model.Shape, error) {
		return model.Shape{Name: name}, nil
	}
	ref := model.ShapeRef{Name: "PQ 28/20"}
	shape, err := ref.Resolve(lookup)
	require.NoError(t, err)
	assert.Equal(t, "PQ 28/20", shape.Name)
}

func TestMaterialRefResolveInlineBypassesLookup(t *testing.T) {
	ref := model.MaterialRef{Inline: &material.CoreMaterial{Name: "N87"}}
	m, err := ref.Resolve(func(string) (material.CoreMaterial, error) {
		t.Fatal("lookup should not be called for an inline reference")
		return material.CoreMaterial{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "N87", m.Name)
}

func TestWireRefResolveNamedGoesThroughLookup(t *testing.T) {
	called := false
	lookup := func(name string) (model.Wire, error) {
		called = true
		return model.Wire{Name: name, Type: model.WireRound}, nil
	}
	wire, err := model.WireRef{Name: "AWG28"}.Resolve(lookup)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, model.WireRound, wire.Type)
}

func coilWithThreeTurns() model.Coil {
	return model.Coil{
		Functional: []model.WindingDescription{{Name: "primary", NumberTurns: 3, NumberParallels: 1}},
		Turns: []model.Turn{
			{Name: "t1", Winding: "primary", Layer: "L1", Section: "S1"},
			{Name: "t2", Winding: "primary", Layer: "L1", Section: "S1"},
			{Name: "t3", Winding: "primary", Layer: "L2", Section: "S1"},
		},
	}
}

func TestTurnsIndexesByWindingLayerSection(t *testing.T) {
	coil := coilWithThreeTurns()

	byWinding := coil.TurnsIndexesByWinding()
	assert.Equal(t, []int{0, 1, 2}, byWinding["primary"])

	byLayer := coil.TurnsIndexesByLayer()
	assert.Equal(t, []int{0, 1}, byLayer["L1"])
	assert.Equal(t, []int{2}, byLayer["L2"])

	bySection := coil.TurnsIndexesBySection()
	assert.Equal(t, []int{0, 1, 2}, bySection["S1"])
}

func TestCoilNumberTurnsIsThePrimaryWinding(t *testing.T) {
	coil := coilWithThreeTurns()
	assert.Equal(t, 3, coil.NumberTurns())
	assert.Equal(t, 0, model.Coil{}.NumberTurns())
}
