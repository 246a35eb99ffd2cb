package model

import (
	"math"

	"github.com/edp1096/magcore/magerr"
	"github.com/edp1096/magcore/material"
)

// MaterialRef is the `Named(String) | Inline(CoreMaterial)` variant from
// spec design note §9, applied to materials exactly as ShapeRef applies
// it to shapes.
type MaterialRef struct {
	Name   string
	Inline *material.CoreMaterial
}

// MaterialLookup resolves a material reference by name; supplied by the
// (out-of-scope) persistent material database (spec §6,
// find_core_material_by_name).
type MaterialLookup func(name string) (material.CoreMaterial, error)

// Resolve returns the guaranteed CoreMaterial, consuming the variant.
func (r MaterialRef) Resolve(lookup MaterialLookup) (material.CoreMaterial, error) {
	if r.Inline != nil {
		return *r.Inline, nil
	}
	return lookup(r.Name)
}

// FunctionalDescription is the designer's choice of shape, material,
// stacking, core type, and gapping (spec §3).
type FunctionalDescription struct {
	Shape        ShapeRef
	Material     MaterialRef
	NumberStacks int
	Type         CoreType
	Gapping      []CoreGap
}

// Core is a magnetic core: a functional description plus the geometry
// derived (and cached) from it. Processed is nil until it is set by the
// caller or taken from the Core that Processed() returns.
type Core struct {
	Functional FunctionalDescription
	Processed  *ProcessedDescription
}

// Lookups bundles the two external lookup functions the core consumes;
// it never opens files itself (spec §6).
type Lookups struct {
	Shape    ShapeLookup
	Material MaterialLookup
}

// Processed returns a Core guaranteed to carry a ProcessedDescription,
// computing and attaching one if it is missing, plus the view itself.
// This is the explicit, non-mutating rendering of the source's lazy
// cyclic mutation (spec design note §9): the caller threads the
// returned Core forward instead of relying on hidden state.
func Processed(core Core, lookups Lookups) (Core, ProcessedDescription, error) {
	if core.Processed != nil {
		return core, *core.Processed, nil
	}

	shape, err := core.Functional.Shape.Resolve(lookups.Shape)
	if err != nil {
		return core, ProcessedDescription{}, magerr.Wrap(magerr.MissingData, err, "resolving core shape")
	}

	numberStacks := core.Functional.NumberStacks
	if numberStacks < 1 {
		numberStacks = 1
	}

	processed, err := computeProcessedDescription(shape, core.Functional.Type, numberStacks)
	if err != nil {
		return core, ProcessedDescription{}, err
	}

	core.Processed = &processed
	return core, processed, nil
}

// EffectiveArea returns the effective area, triggering processing once
// if it is missing (spec §7, CORE_NOT_PROCESSED).
func EffectiveArea(core Core, lookups Lookups) (float64, error) {
	_, processed, err := Processed(core, lookups)
	if err != nil {
		return 0, magerr.Wrap(magerr.CoreNotProcessed, err, "processing core for effective area")
	}
	return processed.EffectiveArea, nil
}

// EffectiveLength returns the effective length, triggering processing
// once if it is missing.
func EffectiveLength(core Core, lookups Lookups) (float64, error) {
	_, processed, err := Processed(core, lookups)
	if err != nil {
		return 0, magerr.Wrap(magerr.CoreNotProcessed, err, "processing core for effective length")
	}
	return processed.EffectiveLength, nil
}

// computeProcessedDescription derives effective geometry from a
// resolved Shape. Named shapes are expected to carry precomputed
// effective_area/effective_length/effective_volume in their Dimensions
// (as the out-of-scope shape database does); TOROIDAL shapes missing
// those are derived from inner/outer diameter and height, the one
// family simple enough to not need a database round-trip.
func computeProcessedDescription(shape Shape, coreType CoreType, numberStacks int) (ProcessedDescription, error) {
	dims := shape.Dimensions

	effArea, haveArea := dims["effective_area"]
	effLength, haveLength := dims["effective_length"]
	effVolume, haveVolume := dims["effective_volume"]

	if (!haveArea || !haveLength) && coreType == CoreTypeToroidal {
		outerDiameter, okOD := dims["outer_diameter"]
		innerDiameter, okID := dims["inner_diameter"]
		height, okH := dims["height"]
		if !okOD || !okID || !okH {
			return ProcessedDescription{}, magerr.New(magerr.MissingData, "toroidal shape missing outer_diameter/inner_diameter/height and no precomputed effective parameters")
		}
		if !haveArea {
			effArea = height * (outerDiameter - innerDiameter) / 2
			haveArea = true
		}
		if !haveLength {
			effLength = math.Pi * (outerDiameter + innerDiameter) / 2
			haveLength = true
		}
	}

	if !haveArea {
		return ProcessedDescription{}, magerr.Newf(magerr.MissingData, "shape %q has no effective_area", shape.Name)
	}
	if !haveLength {
		return ProcessedDescription{}, magerr.Newf(magerr.MissingData, "shape %q has no effective_length", shape.Name)
	}
	if !haveVolume {
		effVolume = effArea * effLength
	}

	minimumArea, haveMinimum := dims["minimum_area"]
	if !haveMinimum {
		minimumArea = effArea
	}

	width := dims["width"]
	height := dims["height"]
	depth := dims["depth"]

	processed := ProcessedDescription{
		EffectiveLength: effLength,
		EffectiveArea:   effArea * float64(numberStacks),
		MinimumArea:     minimumArea * float64(numberStacks),
		EffectiveVolume: effVolume * float64(numberStacks),
		Width:           width,
		Height:          height,
		Depth:           depth * float64(numberStacks),
	}

	if wwWidth, ok := dims["winding_window_width"]; ok {
		wwHeight := dims["winding_window_height"]
		processed.WindingWindows = []WindingWindowElement{{
			Area:   wwWidth * wwHeight,
			Width:  wwWidth,
			Height: wwHeight,
		}}
	}

	centralArea := effArea * float64(numberStacks)
	centralWidth := dims["column_width"]
	centralDepth := dims["column_depth"] * float64(numberStacks)
	centralShape := ColumnShapeRound
	if coreType == CoreTypeToroidal {
		centralShape = ColumnShapeRound
	} else if s, ok := dims["column_is_rectangular"]; ok && s != 0 {
		centralShape = ColumnShapeRectangular
	}

	processed.Columns = []ColumnElement{{
		Type:   ColumnCentral,
		Shape:  centralShape,
		Area:   centralArea,
		Width:  centralWidth,
		Depth:  centralDepth,
		Height: height,
	}}

	if coreType != CoreTypeToroidal {
		numberLateral := 2
		if n, ok := dims["number_lateral_columns"]; ok {
			numberLateral = int(n)
		}
		if numberLateral > 0 {
			lateralArea, ok := dims["lateral_column_area"]
			if !ok {
				lateralArea = centralArea / float64(numberLateral)
			} else {
				lateralArea *= float64(numberStacks)
			}
			for i := 0; i < numberLateral; i++ {
				processed.Columns = append(processed.Columns, ColumnElement{
					Type:   ColumnLateral,
					Shape:  centralShape,
					Area:   lateralArea,
					Width:  centralWidth,
					Depth:  centralDepth,
					Height: height,
				})
			}
		}
	}

	return processed, nil
}
