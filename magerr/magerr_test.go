package magerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edp1096/magcore/magerr"
)

func TestErrorMessageIncludesKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := magerr.Wrap(magerr.MaterialDataMissing, cause, "material %q", "N87")

	assert.Contains(t, err.Error(), "MATERIAL_DATA_MISSING")
	assert.Contains(t, err.Error(), "N87")
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesByKindOnly(t *testing.T) {
	err := magerr.New(magerr.InvalidInput, "bad gap length")
	assert.True(t, errors.Is(err, magerr.KindError(magerr.InvalidInput)))
	assert.False(t, errors.Is(err, magerr.KindError(magerr.MissingData)))
}

func TestWithAttachesContext(t *testing.T) {
	err := magerr.New(magerr.GapInvalidDimensions, "missing area").With("gap", 2)
	assert.Equal(t, 2, err.Context["gap"])
}

func TestUnknownKindStringsAsUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", magerr.Kind(999).String())
}
