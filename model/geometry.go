// Package model holds the data model consumed and produced by the
// physical-model stack (spec §3): cores, coils, magnetics, operating
// points, and their outputs. Types here are plain data; the physical
// packages (waveform, material, reluctance, inductance, coreloss,
// windingloss, thermal, crossref) operate on them as pure functions.
package model

// Vec3 is a 3-vector in core-local space; by convention the y-axis is
// the column axis (spec §3, CoreGap).
type Vec3 struct {
	X, Y, Z float64
}

// ColumnShape distinguishes round from rectangular cross-sections,
// shared by columns and gaps.
type ColumnShape string

const (
	ColumnShapeRound       ColumnShape = "ROUND"
	ColumnShapeRectangular ColumnShape = "RECTANGULAR"
	ColumnShapeIrregular   ColumnShape = "IRREGULAR"
)

// ColumnType distinguishes the central column from the lateral return
// columns, used by the reluctance engine to decide series vs. parallel
// combination (spec §4.3).
type ColumnType string

const (
	ColumnCentral ColumnType = "CENTRAL"
	ColumnLateral ColumnType = "LATERAL"
)

// CoreType is the functional_description.type enum (spec §3).
type CoreType string

const (
	CoreTypeToroidal      CoreType = "TOROIDAL"
	CoreTypeTwoPieceSet   CoreType = "TWO_PIECE_SET"
	CoreTypePieceAndPlate CoreType = "PIECE_AND_PLATE"
	CoreTypeClosedShape   CoreType = "CLOSED_SHAPE"
)

// GapType is the CoreGap.type enum (spec §3).
type GapType string

const (
	GapAdditive    GapType = "ADDITIVE"
	GapSubtractive GapType = "SUBTRACTIVE"
	GapResidual    GapType = "RESIDUAL"
)

// CoreGap describes one gap along a column. Lengths are strictly
// non-negative; a RESIDUAL gap without an explicit length is given
// constants.ResidualGap by reluctance.FillGapGeometry.
type CoreGap struct {
	Type                           GapType
	Length                         float64
	Coordinates                    *Vec3
	Shape                          *ColumnShape
	Area                           *float64
	SectionDimensions              *[2]float64 // width, depth
	DistanceClosestNormalSurface   *float64
	DistanceClosestParallelSurface *float64
}

// Shape is either resolved from a named lookup or supplied inline, with
// a family (e.g. "PQ", "ETD", "TOROIDAL") and a free-form dimension map,
// mirroring spec design note §9's CoreMaterialDataOrName variant applied
// identically to CoreShape.
type Shape struct {
	Name       string
	Family     string
	Dimensions map[string]float64
}

// ShapeRef is the `Named(String) | Inline(Shape)` variant from spec §9.
type ShapeRef struct {
	Name   string
	Inline *Shape
}

// ShapeLookup resolves a shape reference by name; supplied by the
// (out-of-scope) persistent shape database.
type ShapeLookup func(name string) (Shape, error)

// Resolve returns the guaranteed Shape, consuming the variant.
func (r ShapeRef) Resolve(lookup ShapeLookup) (Shape, error) {
	if r.Inline != nil {
		return *r.Inline, nil
	}
	return lookup(r.Name)
}

// ColumnElement is one processed column (central or lateral).
type ColumnElement struct {
	Type        ColumnType
	Shape       ColumnShape
	Area        float64
	Width       float64
	Depth       float64
	Height      float64
	Coordinates Vec3
}

// WindingWindowElement is one processed winding-window region.
type WindingWindowElement struct {
	Area   float64
	Width  float64
	Height float64
}

// ProcessedDescription is the cached derived geometry (spec §3).
type ProcessedDescription struct {
	EffectiveLength      float64
	EffectiveArea        float64
	MinimumArea          float64
	EffectiveVolume       float64
	Width, Height, Depth float64 // outer bounding box
	Columns              []ColumnElement
	WindingWindows        []WindingWindowElement
	ThermalResistance     *float64
}
