package crossref_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/magcore/config"
	"github.com/edp1096/magcore/crossref"
	"github.com/edp1096/magcore/material"
	"github.com/edp1096/magcore/model"
)

func coreWithDims(name string, effectiveArea, wwWidth, wwHeight, width, height, depth float64) model.Core {
	return model.Core{
		Functional: model.FunctionalDescription{
			Shape: model.ShapeRef{Inline: &model.Shape{
				Name:   name,
				Family: "PQ",
				Dimensions: map[string]float64{
					"effective_area":       effectiveArea,
					"effective_length":     0.0573,
					"winding_window_width": wwWidth,
					"winding_window_height": wwHeight,
					"width":                width,
					"height":               height,
					"depth":                depth,
				},
			}},
			Type: model.CoreTypeTwoPieceSet,
		},
	}
}

func ferriteN87() material.CoreMaterial {
	return material.CoreMaterial{Name: "N87", InitialPermeability: 2200}
}

func baseConfig() crossref.Config {
	return crossref.Config{
		Weights: map[crossref.FilterKind]float64{
			crossref.FilterEffectiveArea:     1,
			crossref.FilterWindingWindowArea: 1,
			crossref.FilterPermeance:         1,
		},
		MaximumNumberResults: 1,
		GapReluctanceModel:   config.GapReluctanceClassic,
	}
}

func TestRankPrefersCloserMatch(t *testing.T) {
	reference := crossref.Candidate{
		Name:     "PQ 28/20",
		Core:     coreWithDims("PQ 28/20", 0.000119, 0.0093, 0.0079, 0.028, 0.020, 0.028),
		Material: ferriteN87(),
	}
	close := crossref.Candidate{
		Name:     "PQ 28/23",
		Core:     coreWithDims("PQ 28/23", 0.000121, 0.0094, 0.0080, 0.028, 0.023, 0.028),
		Material: ferriteN87(),
	}
	far := crossref.Candidate{
		Name:     "PQ 50/50",
		Core:     coreWithDims("PQ 50/50", 0.00068, 0.0197, 0.0197, 0.050, 0.050, 0.050),
		Material: ferriteN87(),
	}

	ranked, err := crossref.Rank(reference, []crossref.Candidate{far, close}, model.Inputs{}, 10, model.Lookups{}, baseConfig())
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "PQ 28/23", ranked[0].Candidate.Name)
}

func TestRankWidensLimitUntilEnoughSurvive(t *testing.T) {
	reference := crossref.Candidate{
		Name:     "PQ 28/20",
		Core:     coreWithDims("PQ 28/20", 0.000119, 0.0093, 0.0079, 0.028, 0.020, 0.028),
		Material: ferriteN87(),
	}
	far := crossref.Candidate{
		Name:     "PQ 50/50",
		Core:     coreWithDims("PQ 50/50", 0.00068, 0.0197, 0.0197, 0.050, 0.050, 0.050),
		Material: ferriteN87(),
	}

	cfg := baseConfig()
	cfg.MaximumNumberResults = 1
	ranked, err := crossref.Rank(reference, []crossref.Candidate{far}, model.Inputs{}, 10, model.Lookups{}, cfg)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "PQ 50/50", ranked[0].Candidate.Name)
}

func TestRankRejectsZeroMaximumResults(t *testing.T) {
	reference := crossref.Candidate{
		Name: "PQ 28/20",
		Core: coreWithDims("PQ 28/20", 0.000119, 0.0093, 0.0079, 0.028, 0.020, 0.028),
	}
	cfg := baseConfig()
	cfg.MaximumNumberResults = 0
	_, err := crossref.Rank(reference, nil, model.Inputs{}, 10, model.Lookups{}, cfg)
	assert.Error(t, err)
}
